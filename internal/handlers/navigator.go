package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

// commentScreen is a screen that can act on the comments it shows.
type commentScreen interface {
	Contains(id int) bool
	Reply(ctx context.Context, parentID int, content string) screens.Notice
	Edit(ctx context.Context, id int, content string) screens.Notice
	Delete(ctx context.Context, id int) screens.Notice
	Vote(ctx context.Context, id int) screens.Notice
	Favorite(ctx context.Context, id int) screens.Notice
}

// navigator keeps at most one open screen of each kind. Opening a screen
// unmounts the one it replaces. Screens are loaded outside mu and swapped in
// once loaded.
type navigator struct {
	api     screens.Backend
	session *session.Session
	log     logrus.FieldLogger

	mu        sync.Mutex
	closed    bool
	thread    *screens.Thread
	threadID  int
	comment   *screens.CommentThread
	commentID int
	hidden    *screens.HiddenList
}

func newNavigator(api screens.Backend, sess *session.Session, log logrus.FieldLogger) *navigator {
	return &navigator{api: api, session: sess, log: log}
}

// openThread always mounts a fresh thread for id. A thread that fails its
// first load is not kept open.
func (n *navigator) openThread(ctx context.Context, id int) (*screens.Thread, screens.Notice) {
	t := screens.NewThread(n.api, n.session, n.log, id)
	t.Mount()
	notice := t.Refresh(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.thread != nil {
		n.thread.Unmount()
	}
	n.thread, n.threadID = nil, 0
	if notice.Failed() {
		t.Unmount()
		return nil, notice
	}
	if n.closed {
		t.Unmount()
		return t, notice
	}
	n.thread, n.threadID = t, id
	return t, screens.Notice{}
}

// threadFor reuses the open thread when it shows id.
func (n *navigator) threadFor(ctx context.Context, id int) (*screens.Thread, screens.Notice) {
	if t := n.currentThread(id); t != nil {
		return t, screens.Notice{}
	}
	return n.openThread(ctx, id)
}

// currentThread returns the open thread if it shows id.
func (n *navigator) currentThread(id int) *screens.Thread {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.thread != nil && n.threadID == id {
		return n.thread
	}
	return nil
}

func (n *navigator) openComment(ctx context.Context, id int) (*screens.CommentThread, screens.Notice) {
	t := screens.NewCommentThread(n.api, n.session, n.log, id)
	t.Mount()
	notice := t.Refresh(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.comment != nil {
		n.comment.Unmount()
	}
	n.comment, n.commentID = nil, 0
	if notice.Failed() {
		t.Unmount()
		return nil, notice
	}
	if n.closed {
		t.Unmount()
		return t, notice
	}
	n.comment, n.commentID = t, id
	return t, screens.Notice{}
}

// openScreenFor returns the open screen that shows comment id, if any.
func (n *navigator) openScreenFor(id int) commentScreen {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.comment != nil && n.comment.Contains(id) {
		return n.comment
	}
	if n.thread != nil && n.thread.Contains(id) {
		return n.thread
	}
	return nil
}

// screenFor finds an open screen showing comment id, opening a comment
// thread for it when none does.
func (n *navigator) screenFor(ctx context.Context, id int) (commentScreen, screens.Notice) {
	if s := n.openScreenFor(id); s != nil {
		return s, screens.Notice{}
	}
	t, notice := n.openComment(ctx, id)
	if notice.Failed() {
		return nil, notice
	}
	if !t.Contains(id) {
		return nil, screens.Notice{Level: screens.LevelError, Text: "That comment no longer exists.", Status: http.StatusNotFound}
	}
	return t, screens.Notice{}
}

func (n *navigator) openHidden(ctx context.Context) (*screens.HiddenList, screens.Notice) {
	h := screens.NewHiddenList(n.api, n.session, n.log)
	h.Mount()
	notice := h.Refresh(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.hidden != nil {
		n.hidden.Unmount()
	}
	n.hidden = nil
	if n.closed {
		h.Unmount()
		return h, notice
	}
	n.hidden = h
	return h, notice
}

func (n *navigator) hiddenList(ctx context.Context) (*screens.HiddenList, screens.Notice) {
	n.mu.Lock()
	h := n.hidden
	n.mu.Unlock()
	if h != nil {
		return h, screens.Notice{}
	}
	return n.openHidden(ctx)
}

func (n *navigator) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	if n.thread != nil {
		n.thread.Unmount()
	}
	if n.comment != nil {
		n.comment.Unmount()
	}
	if n.hidden != nil {
		n.hidden.Unmount()
	}
}
