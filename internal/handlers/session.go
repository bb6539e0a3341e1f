package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/hackernews-client/internal/screens"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

type SessionHandler struct {
	api     screens.Backend
	session *session.Session
}

func NewSessionHandler(api screens.Backend, sess *session.Session) *SessionHandler {
	return &SessionHandler{api: api, session: sess}
}

func viewerJSON(v session.Viewer) gin.H {
	if !v.LoggedIn() {
		return gin.H{"logged_in": false}
	}
	return gin.H{
		"logged_in": true,
		"id":        v.ID,
		"username":  v.Username,
		"profile":   v.Profile,
	}
}

// GetSession returns the current viewer
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, viewerJSON(h.session.Current()))
}

// Login makes the user behind user_id the current viewer. The api key is
// kept for authenticated calls.
func (h *SessionHandler) Login(c *gin.Context) {
	var input struct {
		UserID int    `json:"user_id" binding:"required"`
		APIKey string `json:"api_key" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and api_key are required"})
		return
	}

	viewer, notice := screens.Login(c.Request.Context(), h.api, h.session, input.UserID, input.APIKey)
	if fail(c, notice) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": notice.Text,
		"viewer":  viewerJSON(viewer),
	})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	respond(c, screens.Logout(h.session))
}
