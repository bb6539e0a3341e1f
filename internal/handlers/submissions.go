package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

type SubmissionHandler struct {
	api     screens.Backend
	session *session.Session
	nav     *navigator
}

func NewSubmissionHandler(api screens.Backend, sess *session.Session, nav *navigator) *SubmissionHandler {
	return &SubmissionHandler{api: api, session: sess, nav: nav}
}

type draftInput struct {
	Title   string  `json:"title"`
	URL     *string `json:"url"`
	Content *string `json:"content"`
}

func (in draftInput) draft() models.SubmissionDraft {
	return models.SubmissionDraft{Title: in.Title, URL: in.URL, Content: in.Content}
}

// CreateSubmission validates the draft before anything is sent upstream
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var input draftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, notice := screens.CreateSubmission(c.Request.Context(), h.api, h.session, input.draft())
	if fail(c, notice) {
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// GetSubmission opens the thread for a submission, replacing the one that
// was open.
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	thread, notice := h.nav.openThread(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}

	c.JSON(http.StatusOK, thread.View())
}

func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input draftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, notice := h.nav.threadFor(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}
	notice = thread.EditSubmission(c.Request.Context(), input.draft())
	if fail(c, notice) {
		return
	}

	c.JSON(http.StatusOK, thread.View())
}

func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	thread, notice := h.nav.threadFor(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}
	respond(c, thread.DeleteSubmission(c.Request.Context()))
}

// VoteSubmission votes through the open thread when it shows this
// submission, otherwise through the feed.
func (h *SubmissionHandler) VoteSubmission(feed *screens.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if thread := h.nav.currentThread(id); thread != nil {
			respond(c, thread.VoteSubmission(c.Request.Context()))
			return
		}
		respond(c, feed.Vote(c.Request.Context(), id))
	}
}

func (h *SubmissionHandler) FavoriteSubmission(feed *screens.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		if thread := h.nav.currentThread(id); thread != nil {
			respond(c, thread.FavoriteSubmission(c.Request.Context()))
			return
		}
		respond(c, feed.Favorite(c.Request.Context(), id))
	}
}

type contentInput struct {
	Content string `json:"content" binding:"required"`
}

// CreateComment posts a top-level comment on a submission
func (h *SubmissionHandler) CreateComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input contentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	thread, notice := h.nav.threadFor(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}
	notice = thread.Comment(c.Request.Context(), input.Content)
	if fail(c, notice) {
		return
	}

	c.JSON(http.StatusCreated, thread.View())
}
