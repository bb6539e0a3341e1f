package devbackend

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HiddenHandler struct {
	db *gorm.DB
}

func NewHiddenHandler(db *gorm.DB) *HiddenHandler {
	return &HiddenHandler{db: db}
}

// GetHidden lists the caller's hidden submissions with the submission inlined
func (h *HiddenHandler) GetHidden(c *gin.Context) {
	userID, _ := extractUserID(c)

	var rows []Hidden
	if err := h.db.Preload("Submission.User").Where("user_id = ?", userID).Order("created_at desc").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hidden submissions"})
		return
	}

	subs := make([]Submission, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, r.Submission)
	}
	rendered := renderSubmissions(h.db, subs)

	out := make([]gin.H, 0, len(rows))
	for i, r := range rows {
		out = append(out, gin.H{
			"id":         r.ID,
			"user":       r.UserID,
			"submission": rendered[i],
		})
	}
	c.JSON(http.StatusOK, out)
}

// HideSubmission hides a submission for the caller
func (h *HiddenHandler) HideSubmission(c *gin.Context) {
	var input struct {
		SubmissionID int `json:"submission_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"submission_id": []string{"This field is required."}})
		return
	}

	var sub Submission
	if err := h.db.First(&sub, input.SubmissionID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"submission_id": []string{"Invalid submission."}})
		return
	}

	userID, _ := extractUserID(c)
	row := Hidden{UserID: userID, SubmissionID: sub.ID}
	if err := h.db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Submission is already hidden"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hide submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": row.ID, "user": userID, "submission_id": sub.ID})
}

// UnhideSubmission removes the caller's hidden record for a submission
func (h *HiddenHandler) UnhideSubmission(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	userID, _ := extractUserID(c)

	res := h.db.Where("user_id = ? AND submission_id = ?", userID, id).Delete(&Hidden{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unhide submission"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission is not hidden"})
		return
	}

	c.Status(http.StatusNoContent)
}
