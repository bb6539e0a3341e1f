package screens

import (
	"context"
	"net/http"

	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

// CreateSubmission validates the draft locally before posting it. Feeds pick
// the new submission up on their next refresh.
func CreateSubmission(ctx context.Context, api Backend, sess *session.Session, draft models.SubmissionDraft) (*models.Submission, Notice) {
	if err := draft.Validate(); err != nil {
		return nil, NoticeFor("submit", err)
	}
	sub, err := api.CreateSubmission(ctx, sess.Current().Token, draft.Normalized())
	if err != nil {
		return nil, NoticeFor("submit", err)
	}
	return sub, Info("Submission created.")
}

// EditSubmission replaces the submission on the thread screen with the
// edited version.
func (t *Thread) EditSubmission(ctx context.Context, draft models.SubmissionDraft) Notice {
	if err := draft.Validate(); err != nil {
		return NoticeFor("edit", err)
	}
	if n := t.requireOwner("edit"); n.Failed() {
		return n
	}
	gen, ok := t.begin()
	if !ok {
		return Notice{}
	}
	sub, err := t.api.UpdateSubmission(ctx, t.session.Current().Token, t.submissionID, draft.Normalized())
	if err != nil {
		return NoticeFor("edit", err)
	}
	t.apply(gen, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.submission == nil {
			return
		}
		edited := *t.submission
		edited.Title = sub.Title
		edited.URL = sub.URL
		edited.Content = sub.Content
		t.submission = &edited
	})
	return Info("Submission updated.")
}

// DeleteSubmission removes the submission. The screen shows nothing after a
// successful delete.
func (t *Thread) DeleteSubmission(ctx context.Context) Notice {
	if n := t.requireOwner("delete"); n.Failed() {
		return n
	}
	gen, ok := t.begin()
	if !ok {
		return Notice{}
	}
	if err := t.api.DeleteSubmission(ctx, t.session.Current().Token, t.submissionID); err != nil {
		return NoticeFor("delete", err)
	}
	t.apply(gen, func() {
		t.mu.Lock()
		t.submission = nil
		t.roots = nil
		t.mu.Unlock()
	})
	return Info("Submission deleted.")
}

func (t *Thread) requireOwner(action string) Notice {
	t.mu.RLock()
	sub := t.submission
	t.mu.RUnlock()
	if sub == nil {
		return NoticeFor(action, models.ErrSubmissionMissing)
	}
	viewer := t.session.Current()
	if viewer.LoggedIn() && sub.CreatedBy.Known() && sub.CreatedBy.ID != 0 && sub.CreatedBy.ID != viewer.ID {
		return failure(http.StatusForbidden, "You can only %s your own submissions.", action)
	}
	return Notice{}
}
