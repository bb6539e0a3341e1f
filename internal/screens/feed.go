package screens

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
	"github.com/emilythestrangee/hackernews-client/internal/visibility"
)

// Feed is the main list of submissions minus the ones the viewer hid.
type Feed struct {
	lifecycle

	api     Backend
	session *session.Session
	log     logrus.FieldLogger
	rec     *visibility.Reconciler

	unsubscribe func()
}

type FeedView struct {
	Submissions []models.Submission `json:"submissions"`
	HiddenCount int                 `json:"hidden_count"`
	Query       string              `json:"query,omitempty"`
}

func NewFeed(api Backend, sess *session.Session, log logrus.FieldLogger) *Feed {
	return &Feed{
		api:     api,
		session: sess,
		log:     log.WithField("screen", "feed"),
		rec:     visibility.NewReconciler(),
	}
}

// Mount starts listening for viewer changes. A login refetches the hidden
// list for the new viewer and a logout clears it.
func (f *Feed) Mount() {
	f.mount()
	f.unsubscribe = f.session.Subscribe(func(v session.Viewer) {
		go f.viewerChanged(f.background(), v)
	})
}

func (f *Feed) Unmount() {
	if f.unsubscribe != nil {
		f.unsubscribe()
		f.unsubscribe = nil
	}
	f.unmount()
}

// Refresh fetches the submissions and the viewer's hidden list concurrently.
// Each result is applied as soon as it arrives; neither waits for the other.
func (f *Feed) Refresh(ctx context.Context) []Notice {
	r, ok := f.beginLoad()
	if !ok {
		return nil
	}
	gen := r.gen

	var (
		wg      sync.WaitGroup
		notices [2]Notice
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		subs, err := f.api.ListSubmissions(ctx)
		if err != nil {
			f.log.WithError(err).Warn("⚠️ could not load submissions")
			notices[0] = NoticeFor("load submissions", err)
			return
		}
		f.applyLoad(r, func() { f.rec.SetSubmissions(subs) })
	}()

	viewer := f.session.Current()
	if viewer.LoggedIn() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f.loadHidden(ctx, gen, viewer); err != nil {
				notices[1] = NoticeFor("load hidden submissions", err)
			}
		}()
	} else {
		f.apply(gen, func() { f.rec.SetHidden(nil) })
	}

	wg.Wait()

	out := make([]Notice, 0, len(notices))
	for _, n := range notices {
		if !n.Empty() {
			out = append(out, n)
		}
	}
	return out
}

func (f *Feed) viewerChanged(ctx context.Context, v session.Viewer) {
	gen, ok := f.begin()
	if !ok {
		return
	}
	if !v.LoggedIn() {
		f.apply(gen, func() { f.rec.SetHidden(nil) })
		return
	}
	_ = f.loadHidden(ctx, gen, v)
}

// loadHidden applies the hidden list only if viewer is still the current
// viewer when the response arrives.
func (f *Feed) loadHidden(ctx context.Context, gen uint64, viewer session.Viewer) error {
	hidden, err := f.api.ListHidden(ctx, viewer.Token)
	if err != nil {
		f.log.WithError(err).WithField("user_id", viewer.ID).Warn("⚠️ could not load hidden submissions")
		return err
	}
	f.apply(gen, func() {
		if cur := f.session.Current(); cur.ID != viewer.ID || cur.Token != viewer.Token {
			return
		}
		f.rec.SetHidden(hidden)
	})
	return nil
}

// View returns the visible submissions whose title contains query.
func (f *Feed) View(query string) FeedView {
	return FeedView{
		Submissions: visibility.FilterTitle(f.rec.Visible(), query),
		HiddenCount: len(f.rec.Hidden()),
		Query:       query,
	}
}

// Hide removes the submission from the feed once the backend confirms it.
func (f *Feed) Hide(ctx context.Context, submissionID int) Notice {
	viewer := f.session.Current()
	gen, ok := f.begin()
	if !ok {
		return Notice{}
	}
	if err := f.api.Hide(ctx, viewer.Token, submissionID); err != nil {
		return NoticeFor("hide", err)
	}
	f.apply(gen, func() {
		f.rec.ApplyHide(models.HiddenRecord{UserID: viewer.ID, SubmissionID: submissionID})
	})
	return Info("Submission hidden.")
}

func (f *Feed) Unhide(ctx context.Context, submissionID int) Notice {
	viewer := f.session.Current()
	gen, ok := f.begin()
	if !ok {
		return Notice{}
	}
	if err := f.api.Unhide(ctx, viewer.Token, submissionID); err != nil {
		return NoticeFor("unhide", err)
	}
	f.apply(gen, func() { f.rec.ApplyUnhide(submissionID) })
	return Info("Submission restored.")
}

func (f *Feed) Vote(ctx context.Context, submissionID int) Notice {
	viewer := f.session.Current()
	gen, ok := f.begin()
	if !ok {
		return Notice{}
	}
	res, err := f.api.VoteSubmission(ctx, viewer.Token, submissionID)
	if err != nil {
		return NoticeFor("vote", err)
	}
	f.apply(gen, func() {
		f.rec.UpdateSubmission(submissionID, func(s models.Submission) models.Submission {
			if res.TotalVotes != nil {
				s.TotalVotes = *res.TotalVotes
			} else {
				s.TotalVotes++
			}
			return s
		})
	})
	return Info("Vote recorded.")
}

func (f *Feed) Favorite(ctx context.Context, submissionID int) Notice {
	viewer := f.session.Current()
	gen, ok := f.begin()
	if !ok {
		return Notice{}
	}
	res, err := f.api.FavoriteSubmission(ctx, viewer.Token, submissionID)
	if err != nil {
		return NoticeFor("favorite", err)
	}
	if res.TotalVotes != nil {
		f.apply(gen, func() {
			f.rec.UpdateSubmission(submissionID, func(s models.Submission) models.Submission {
				s.TotalVotes = *res.TotalVotes
				return s
			})
		})
	}
	return Info("Added to favorites.")
}
