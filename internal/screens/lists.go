package screens

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/emilythestrangee/hackernews-client/internal/commenttree"
	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

type SubmissionListKind string

const (
	ListAsk                 SubmissionListKind = "ask"
	ListFavoriteSubmissions SubmissionListKind = "favorite_submissions"
	ListUpvotedSubmissions  SubmissionListKind = "upvoted_submissions"
)

// SubmissionList is a read-only list of submissions: the ask feed or one of
// the viewer's own lists.
type SubmissionList struct {
	lifecycle

	kind    SubmissionListKind
	api     Backend
	session *session.Session
	log     logrus.FieldLogger

	mu    sync.RWMutex
	items []models.Submission
}

func NewSubmissionList(kind SubmissionListKind, api Backend, sess *session.Session, log logrus.FieldLogger) *SubmissionList {
	return &SubmissionList{kind: kind, api: api, session: sess, log: log.WithField("screen", string(kind))}
}

func (l *SubmissionList) Mount()   { l.mount() }
func (l *SubmissionList) Unmount() { l.unmount() }

func (l *SubmissionList) fetch(ctx context.Context) ([]models.Submission, error) {
	token := l.session.Current().Token
	switch l.kind {
	case ListFavoriteSubmissions:
		return l.api.ListFavoriteSubmissions(ctx, token)
	case ListUpvotedSubmissions:
		return l.api.ListUpvotedSubmissions(ctx, token)
	default:
		return l.api.ListAsk(ctx)
	}
}

func (l *SubmissionList) Refresh(ctx context.Context) Notice {
	r, ok := l.beginLoad()
	if !ok {
		return Notice{}
	}
	items, err := l.fetch(ctx)
	if err != nil {
		l.log.WithError(err).Warn("⚠️ could not load list")
		return NoticeFor("load the list", err)
	}
	l.applyLoad(r, func() {
		l.mu.Lock()
		l.items = items
		l.mu.Unlock()
	})
	return Notice{}
}

func (l *SubmissionList) Items() []models.Submission {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Submission, len(l.items))
	copy(out, l.items)
	return out
}

type CommentListKind string

const (
	ListAllComments      CommentListKind = "comments"
	ListFavoriteComments CommentListKind = "favorite_comments"
	ListUpvotedComments  CommentListKind = "upvoted_comments"
)

// CommentList shows comments flat, one row each, regardless of nesting.
type CommentList struct {
	lifecycle

	kind    CommentListKind
	api     Backend
	session *session.Session
	log     logrus.FieldLogger

	mu    sync.RWMutex
	items []models.Comment
}

func NewCommentList(kind CommentListKind, api Backend, sess *session.Session, log logrus.FieldLogger) *CommentList {
	return &CommentList{kind: kind, api: api, session: sess, log: log.WithField("screen", string(kind))}
}

func (l *CommentList) Mount()   { l.mount() }
func (l *CommentList) Unmount() { l.unmount() }

func (l *CommentList) fetch(ctx context.Context) ([]models.Comment, error) {
	token := l.session.Current().Token
	switch l.kind {
	case ListFavoriteComments:
		return l.api.ListFavoriteComments(ctx, token)
	case ListUpvotedComments:
		return l.api.ListUpvotedComments(ctx, token)
	default:
		return l.api.ListComments(ctx)
	}
}

func (l *CommentList) Refresh(ctx context.Context) Notice {
	r, ok := l.beginLoad()
	if !ok {
		return Notice{}
	}
	items, err := l.fetch(ctx)
	if err != nil {
		l.log.WithError(err).Warn("⚠️ could not load comments")
		return NoticeFor("load comments", err)
	}
	flat := make([]models.Comment, 0, len(items))
	for _, c := range items {
		c.Replies = nil
		c.ParentID = nil
		flat = append(flat, c)
	}
	l.applyLoad(r, func() {
		l.mu.Lock()
		l.items = flat
		l.mu.Unlock()
	})
	return Notice{}
}

// Items renders every comment at depth zero with the viewer's actions.
func (l *CommentList) Items() []commenttree.Node {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return commenttree.Build(l.items, l.session.Current(), commenttree.NewMarks())
}

// Activity is everything the viewer favorited or upvoted.
type Activity struct {
	FavoriteSubmissions []models.Submission `json:"favorite_submissions"`
	UpvotedSubmissions  []models.Submission `json:"upvoted_submissions"`
	FavoriteComments    []models.Comment    `json:"favorite_comments"`
	UpvotedComments     []models.Comment    `json:"upvoted_comments"`
}

// LoadActivity fetches the viewer's four personal lists at once. The first
// failure cancels the remaining calls and nothing is returned.
func LoadActivity(ctx context.Context, api Backend, sess *session.Session) (*Activity, Notice) {
	token := sess.Current().Token
	var out Activity

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.FavoriteSubmissions, err = api.ListFavoriteSubmissions(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		out.UpvotedSubmissions, err = api.ListUpvotedSubmissions(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		out.FavoriteComments, err = api.ListFavoriteComments(gctx, token)
		return err
	})
	g.Go(func() (err error) {
		out.UpvotedComments, err = api.ListUpvotedComments(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, NoticeFor("load your activity", err)
	}
	return &out, Notice{}
}
