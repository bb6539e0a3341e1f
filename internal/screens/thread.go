package screens

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/commenttree"
	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

// comments is the comment state shared by the submission detail screen and
// the single comment thread screen.
type comments struct {
	lifecycle

	api     Backend
	session *session.Session
	log     logrus.FieldLogger

	// load fetches the screen's data and returns a commit that installs it.
	// The commit runs with mu held and only while the load is current. It is
	// also used to resync after a mutation whose response cannot be patched in.
	load func(ctx context.Context) (func(), error)

	mu           sync.RWMutex
	submissionID int
	roots        []models.Comment
	marks        commenttree.Marks
}

func (c *comments) init(api Backend, sess *session.Session, log logrus.FieldLogger) {
	c.api = api
	c.session = sess
	c.log = log
	c.marks = commenttree.NewMarks()
}

// refetch runs load and commits its result if nothing superseded it.
func (c *comments) refetch(ctx context.Context, r reload) error {
	commit, err := c.load(ctx)
	if err != nil {
		return err
	}
	c.applyLoad(r, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		commit()
	})
	return nil
}

// Nodes is the rendered tree for the current viewer.
func (c *comments) Nodes() []commenttree.Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return commenttree.Build(c.roots, c.session.Current(), c.marks)
}

func (c *comments) find(id int) (models.Comment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return commenttree.Find(c.roots, id)
}

func (c *comments) Contains(id int) bool {
	_, ok := c.find(id)
	return ok
}

func (c *comments) patch(gen uint64, fn func(roots []models.Comment) ([]models.Comment, bool)) bool {
	applied := false
	c.apply(gen, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if next, ok := fn(c.roots); ok {
			c.roots = next
			applied = true
		}
	})
	return applied
}

func (c *comments) resync(ctx context.Context, gen uint64) {
	r, ok := c.beginLoad()
	if !ok || r.gen != gen {
		return
	}
	if err := c.refetch(ctx, r); err != nil {
		c.log.WithError(err).Warn("⚠️ could not refresh comments")
	}
}

// Comment posts a top-level comment on the screen's submission.
func (c *comments) Comment(ctx context.Context, content string) Notice {
	if strings.TrimSpace(content) == "" {
		return NoticeFor("comment", models.ErrContentRequired)
	}
	gen, ok := c.begin()
	if !ok {
		return Notice{}
	}
	c.mu.RLock()
	submissionID := c.submissionID
	c.mu.RUnlock()

	viewer := c.session.Current()
	created, err := c.api.CreateComment(ctx, viewer.Token, models.CreateCommentRequest{SubmissionID: submissionID, Content: content})
	if err != nil {
		return NoticeFor("comment", err)
	}
	if created == nil || created.ID == 0 {
		c.resync(ctx, gen)
		return Info("Comment posted.")
	}
	c.patch(gen, func(roots []models.Comment) ([]models.Comment, bool) {
		return commenttree.AppendTopLevel(roots, *created), true
	})
	return Info("Comment posted.")
}

func (c *comments) Reply(ctx context.Context, parentID int, content string) Notice {
	if strings.TrimSpace(content) == "" {
		return NoticeFor("reply", models.ErrContentRequired)
	}
	parent, found := c.find(parentID)
	if !found {
		return failure(http.StatusNotFound, "That comment no longer exists.")
	}
	gen, ok := c.begin()
	if !ok {
		return Notice{}
	}

	viewer := c.session.Current()
	req := models.CreateCommentRequest{SubmissionID: parent.SubmissionID, Content: content}
	reply, err := c.api.ReplyComment(ctx, viewer.Token, parentID, req)
	if err != nil {
		return NoticeFor("reply", err)
	}
	if reply == nil || reply.ID == 0 {
		c.resync(ctx, gen)
		return Info("Reply posted.")
	}
	if !c.patch(gen, func(roots []models.Comment) ([]models.Comment, bool) {
		return commenttree.AppendReply(roots, parentID, *reply)
	}) {
		c.resync(ctx, gen)
	}
	return Info("Reply posted.")
}

func (c *comments) Edit(ctx context.Context, id int, content string) Notice {
	if strings.TrimSpace(content) == "" {
		return NoticeFor("edit", models.ErrContentRequired)
	}
	target, found := c.find(id)
	if !found {
		return failure(http.StatusNotFound, "That comment no longer exists.")
	}
	viewer := c.session.Current()
	if viewer.LoggedIn() && !commenttree.IsAuthor(viewer, target.CreatedBy) {
		return failure(http.StatusForbidden, "You can only edit your own comments.")
	}
	gen, ok := c.begin()
	if !ok {
		return Notice{}
	}

	edited, err := c.api.UpdateComment(ctx, viewer.Token, id, models.CreateCommentRequest{SubmissionID: target.SubmissionID, Content: content})
	if err != nil {
		return NoticeFor("edit", err)
	}
	if edited == nil || edited.ID != id || !c.patch(gen, func(roots []models.Comment) ([]models.Comment, bool) {
		return commenttree.ReplaceContent(roots, *edited)
	}) {
		c.resync(ctx, gen)
	}
	return Info("Comment updated.")
}

func (c *comments) Delete(ctx context.Context, id int) Notice {
	target, found := c.find(id)
	if !found {
		return failure(http.StatusNotFound, "That comment no longer exists.")
	}
	viewer := c.session.Current()
	if viewer.LoggedIn() && !commenttree.IsAuthor(viewer, target.CreatedBy) {
		return failure(http.StatusForbidden, "You can only delete your own comments.")
	}
	gen, ok := c.begin()
	if !ok {
		return Notice{}
	}

	if err := c.api.DeleteComment(ctx, viewer.Token, id); err != nil {
		return NoticeFor("delete", err)
	}
	c.patch(gen, func(roots []models.Comment) ([]models.Comment, bool) {
		return commenttree.Remove(roots, id)
	})
	return Info("Comment deleted.")
}

func (c *comments) Vote(ctx context.Context, id int) Notice {
	target, found := c.find(id)
	if !found {
		return failure(http.StatusNotFound, "That comment no longer exists.")
	}
	viewer := c.session.Current()
	if commenttree.IsAuthor(viewer, target.CreatedBy) {
		return failure(http.StatusForbidden, "You cannot vote your own comment.")
	}
	gen, ok := c.begin()
	if !ok {
		return Notice{}
	}

	res, err := c.api.VoteComment(ctx, viewer.Token, id)
	if err != nil {
		return NoticeFor("vote", err)
	}
	c.patch(gen, func(roots []models.Comment) ([]models.Comment, bool) {
		next, ok := commenttree.ApplyVote(roots, res)
		if ok {
			c.marks.Voted[id] = true
		}
		return next, ok
	})
	return Info("Vote recorded.")
}

func (c *comments) Favorite(ctx context.Context, id int) Notice {
	target, found := c.find(id)
	if !found {
		return failure(http.StatusNotFound, "That comment no longer exists.")
	}
	viewer := c.session.Current()
	if commenttree.IsAuthor(viewer, target.CreatedBy) {
		return failure(http.StatusForbidden, "You cannot favorite your own comment.")
	}
	gen, ok := c.begin()
	if !ok {
		return Notice{}
	}

	res, err := c.api.FavoriteComment(ctx, viewer.Token, id)
	if err != nil {
		return NoticeFor("favorite", err)
	}
	c.patch(gen, func(roots []models.Comment) ([]models.Comment, bool) {
		next, ok := commenttree.ApplyFavorite(roots, res)
		if ok {
			c.marks.Favorited[id] = true
		}
		return next, ok
	})
	return Info("Added to favorites.")
}

// Thread is the submission detail screen: the submission and its comments.
type Thread struct {
	comments

	submission *models.Submission
}

type ThreadView struct {
	Submission *models.Submission `json:"submission"`
	IsAuthor   bool               `json:"is_author"`
	Comments   []commenttree.Node `json:"comments"`
}

func NewThread(api Backend, sess *session.Session, log logrus.FieldLogger, submissionID int) *Thread {
	t := &Thread{}
	t.init(api, sess, log.WithFields(logrus.Fields{"screen": "thread", "submission_id": submissionID}))
	t.submissionID = submissionID
	t.load = t.fetch
	return t
}

func (t *Thread) Mount()   { t.mount() }
func (t *Thread) Unmount() { t.unmount() }

// fetch loads the submission with its comments. submissionID is fixed for
// the life of the screen.
func (t *Thread) fetch(ctx context.Context) (func(), error) {
	sub, err := t.api.GetSubmission(ctx, t.submissionID)
	if err != nil {
		return nil, err
	}
	roots := commenttree.ForSubmission(commenttree.Nest(sub.Comments), t.submissionID)
	return func() {
		t.submission = sub
		t.roots = roots
	}, nil
}

func (t *Thread) Refresh(ctx context.Context) Notice {
	r, ok := t.beginLoad()
	if !ok {
		return Notice{}
	}
	if err := t.refetch(ctx, r); err != nil {
		t.log.WithError(err).Warn("⚠️ could not load submission")
		return NoticeFor("load the submission", err)
	}
	return Notice{}
}

func (t *Thread) View() ThreadView {
	t.mu.RLock()
	var sub *models.Submission
	if t.submission != nil {
		s := *t.submission
		s.Comments = nil
		sub = &s
	}
	t.mu.RUnlock()

	view := ThreadView{Submission: sub, Comments: t.Nodes()}
	if sub != nil {
		view.IsAuthor = commenttree.IsAuthor(t.session.Current(), sub.CreatedBy)
	}
	return view
}

func (t *Thread) VoteSubmission(ctx context.Context) Notice {
	gen, ok := t.begin()
	if !ok {
		return Notice{}
	}
	res, err := t.api.VoteSubmission(ctx, t.session.Current().Token, t.submissionID)
	if err != nil {
		return NoticeFor("vote", err)
	}
	t.apply(gen, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.submission == nil {
			return
		}
		if res.TotalVotes != nil {
			t.submission.TotalVotes = *res.TotalVotes
		} else {
			t.submission.TotalVotes++
		}
	})
	return Info("Vote recorded.")
}

func (t *Thread) FavoriteSubmission(ctx context.Context) Notice {
	gen, ok := t.begin()
	if !ok {
		return Notice{}
	}
	res, err := t.api.FavoriteSubmission(ctx, t.session.Current().Token, t.submissionID)
	if err != nil {
		return NoticeFor("favorite", err)
	}
	if res.TotalVotes != nil {
		t.apply(gen, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.submission != nil {
				t.submission.TotalVotes = *res.TotalVotes
			}
		})
	}
	return Info("Added to favorites.")
}

// CommentThread is the screen rooted at a single comment.
type CommentThread struct {
	comments

	commentID int
}

func NewCommentThread(api Backend, sess *session.Session, log logrus.FieldLogger, commentID int) *CommentThread {
	t := &CommentThread{commentID: commentID}
	t.init(api, sess, log.WithFields(logrus.Fields{"screen": "comment", "comment_id": commentID}))
	t.load = t.fetch
	return t
}

func (t *CommentThread) Mount()   { t.mount() }
func (t *CommentThread) Unmount() { t.unmount() }

func (t *CommentThread) fetch(ctx context.Context) (func(), error) {
	root, err := t.api.GetComment(ctx, t.commentID)
	if err != nil {
		return nil, err
	}
	r := *root
	r.ParentID = nil
	roots := commenttree.Nest([]models.Comment{r})
	return func() {
		t.submissionID = root.SubmissionID
		t.roots = roots
	}, nil
}

func (t *CommentThread) Refresh(ctx context.Context) Notice {
	r, ok := t.beginLoad()
	if !ok {
		return Notice{}
	}
	if err := t.refetch(ctx, r); err != nil {
		t.log.WithError(err).Warn("⚠️ could not load comment")
		return NoticeFor("load the comment", err)
	}
	return Notice{}
}

// Comment on a comment thread replies to its root.
func (t *CommentThread) Comment(ctx context.Context, content string) Notice {
	return t.Reply(ctx, t.commentID, content)
}

func (t *CommentThread) View() []commenttree.Node {
	return t.Nodes()
}
