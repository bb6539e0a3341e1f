package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

type UserHandler struct {
	api     screens.Backend
	session *session.Session
	log     logrus.FieldLogger
}

func NewUserHandler(api screens.Backend, sess *session.Session, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{api: api, session: sess, log: log}
}

// GetUserProfile returns a public profile by ID
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, notice := screens.Profile(c.Request.Context(), h.api, id)
	if fail(c, notice) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"is_self": h.session.Current().LoggedIn() && h.session.Current().ID == user.ID,
	})
}

// UpdateUserProfile changes the viewer's own profile
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, notice := screens.UpdateProfile(c.Request.Context(), h.api, h.session, id, input)
	if fail(c, notice) {
		return
	}

	h.log.WithField("user_id", id).Info("✅ profile updated")
	c.JSON(http.StatusOK, user)
}

// GetActivity returns everything the viewer favorited or upvoted
func (h *UserHandler) GetActivity(c *gin.Context) {
	activity, notice := screens.LoadActivity(c.Request.Context(), h.api, h.session)
	if fail(c, notice) {
		return
	}
	c.JSON(http.StatusOK, activity)
}
