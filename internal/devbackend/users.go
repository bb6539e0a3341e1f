package devbackend

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// karma is the number of votes received on the user's submissions and
// comments.
func (h *UserHandler) karma(userID int) int64 {
	var onSubmissions, onComments int64
	h.db.Model(&Vote{}).
		Joins("JOIN submissions ON submissions.id = votes.target_id").
		Where("votes.target_kind = ? AND submissions.user_id = ?", KindSubmission, userID).
		Count(&onSubmissions)
	h.db.Model(&Vote{}).
		Joins("JOIN comments ON comments.id = votes.target_id").
		Where("votes.target_kind = ? AND comments.user_id = ?", KindComment, userID).
		Count(&onComments)
	return onSubmissions + onComments
}

func (h *UserHandler) userJSON(u User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"about":      u.About,
		"avatar":     u.Avatar,
		"banner":     u.Banner,
		"karma":      h.karma(u.ID),
		"created_at": u.CreatedAt,
	}
}

// GetUserProfile returns a user's public profile
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var user User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, h.userJSON(user))
}

// UpdateUserProfile updates the caller's own profile (PROTECTED)
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	userID, _ := extractUserID(c)
	if userID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own profile"})
		return
	}

	var input struct {
		About  *string `json:"about"`
		Avatar *string `json:"avatar"`
		Banner *string `json:"banner"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Only update provided fields
	if input.About != nil {
		user.About = *input.About
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}
	if input.Banner != nil {
		user.Banner = input.Banner
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, h.userJSON(user))
}
