package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

// FeedHandler serves the home feed, the ask feed and the hidden list. The
// home feed stays mounted for the life of the process.
type FeedHandler struct {
	api     screens.Backend
	session *session.Session
	log     logrus.FieldLogger
	feed    *screens.Feed
	nav     *navigator
}

func NewFeedHandler(api screens.Backend, sess *session.Session, log logrus.FieldLogger, nav *navigator) *FeedHandler {
	feed := screens.NewFeed(api, sess, log)
	feed.Mount()
	return &FeedHandler{api: api, session: sess, log: log, feed: feed, nav: nav}
}

// GetFeed refetches and returns visible submissions. Failed fetches are
// reported as notices next to whatever the feed already had.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	notices := h.feed.Refresh(c.Request.Context())
	view := h.feed.View(c.Query("q"))

	c.JSON(http.StatusOK, gin.H{
		"submissions":  view.Submissions,
		"hidden_count": view.HiddenCount,
		"query":        view.Query,
		"notices":      notices,
	})
}

func (h *FeedHandler) Hide(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	respond(c, h.feed.Hide(c.Request.Context(), id))
}

func (h *FeedHandler) Unhide(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	respond(c, h.feed.Unhide(c.Request.Context(), id))
}

// GetHidden opens the hidden list
func (h *FeedHandler) GetHidden(c *gin.Context) {
	list, notice := h.nav.openHidden(c.Request.Context())
	if fail(c, notice) {
		return
	}
	c.JSON(http.StatusOK, list.Items())
}

// RestoreHidden unhides from the hidden list screen.
func (h *FeedHandler) RestoreHidden(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, notice := h.nav.hiddenList(c.Request.Context())
	if fail(c, notice) {
		return
	}
	notice = list.Unhide(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": notice.Text, "hidden": list.Items()})
}

func (h *FeedHandler) GetAsk(c *gin.Context) {
	h.submissionList(c, screens.ListAsk)
}

func (h *FeedHandler) GetFavoriteSubmissions(c *gin.Context) {
	h.submissionList(c, screens.ListFavoriteSubmissions)
}

func (h *FeedHandler) GetUpvotedSubmissions(c *gin.Context) {
	h.submissionList(c, screens.ListUpvotedSubmissions)
}

func (h *FeedHandler) submissionList(c *gin.Context, kind screens.SubmissionListKind) {
	list := screens.NewSubmissionList(kind, h.api, h.session, h.log)
	list.Mount()
	defer list.Unmount()

	if fail(c, list.Refresh(c.Request.Context())) {
		return
	}
	c.JSON(http.StatusOK, list.Items())
}

// Screen is the mounted home feed.
func (h *FeedHandler) Screen() *screens.Feed {
	return h.feed
}
