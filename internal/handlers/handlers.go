package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

// Handler combines all handler types
type Handler struct {
	Session    *SessionHandler
	Feed       *FeedHandler
	Submission *SubmissionHandler
	Comment    *CommentHandler
	User       *UserHandler

	nav *navigator
}

// NewHandler wires every handler to the same backend, session and set of
// open screens.
func NewHandler(api screens.Backend, sess *session.Session, log logrus.FieldLogger) *Handler {
	nav := newNavigator(api, sess, log)

	return &Handler{
		Session:    NewSessionHandler(api, sess),
		Feed:       NewFeedHandler(api, sess, log, nav),
		Submission: NewSubmissionHandler(api, sess, nav),
		Comment:    NewCommentHandler(api, sess, log, nav),
		User:       NewUserHandler(api, sess, log),
		nav:        nav,
	}
}

// Close unmounts every open screen.
func (h *Handler) Close() {
	h.Feed.feed.Unmount()
	h.nav.close()
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func noticeStatus(n screens.Notice) int {
	if n.Status == 0 {
		return http.StatusBadGateway
	}
	if n.Status >= http.StatusInternalServerError {
		return http.StatusBadGateway
	}
	return n.Status
}

// fail writes an error notice and reports whether it did.
func fail(c *gin.Context, n screens.Notice) bool {
	if !n.Failed() {
		return false
	}
	c.JSON(noticeStatus(n), gin.H{"error": n.Text})
	return true
}

// respond answers a mutation with its notice.
func respond(c *gin.Context, n screens.Notice) {
	if fail(c, n) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": n.Text})
}
