package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

type CommentHandler struct {
	api     screens.Backend
	session *session.Session
	log     logrus.FieldLogger
	nav     *navigator
}

func NewCommentHandler(api screens.Backend, sess *session.Session, log logrus.FieldLogger, nav *navigator) *CommentHandler {
	return &CommentHandler{api: api, session: sess, log: log, nav: nav}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	h.commentList(c, screens.ListAllComments)
}

func (h *CommentHandler) GetFavoriteComments(c *gin.Context) {
	h.commentList(c, screens.ListFavoriteComments)
}

func (h *CommentHandler) GetUpvotedComments(c *gin.Context) {
	h.commentList(c, screens.ListUpvotedComments)
}

func (h *CommentHandler) commentList(c *gin.Context, kind screens.CommentListKind) {
	list := screens.NewCommentList(kind, h.api, h.session, h.log)
	list.Mount()
	defer list.Unmount()

	if fail(c, list.Refresh(c.Request.Context())) {
		return
	}
	c.JSON(http.StatusOK, list.Items())
}

// GetComment opens the reply screen rooted at one comment
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	thread, notice := h.nav.openComment(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}

	c.JSON(http.StatusOK, thread.View())
}

// ReplyComment answers a comment on whichever open screen shows it
func (h *CommentHandler) ReplyComment(c *gin.Context) {
	h.withContent(c, func(s commentScreen, id int, content string) screens.Notice {
		return s.Reply(c.Request.Context(), id, content)
	})
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	h.withContent(c, func(s commentScreen, id int, content string) screens.Notice {
		return s.Edit(c.Request.Context(), id, content)
	})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	h.act(c, commentScreen.Delete)
}

func (h *CommentHandler) VoteComment(c *gin.Context) {
	h.act(c, commentScreen.Vote)
}

func (h *CommentHandler) FavoriteComment(c *gin.Context) {
	h.act(c, commentScreen.Favorite)
}

func (h *CommentHandler) withContent(c *gin.Context, fn func(s commentScreen, id int, content string) screens.Notice) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input contentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	s, notice := h.nav.screenFor(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}
	respond(c, fn(s, id, input.Content))
}

func (h *CommentHandler) act(c *gin.Context, fn func(s commentScreen, ctx context.Context, id int) screens.Notice) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s, notice := h.nav.screenFor(c.Request.Context(), id)
	if fail(c, notice) {
		return
	}
	respond(c, fn(s, c.Request.Context(), id))
}
