package devbackend

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// GetComments returns every comment flat, newest first
func (h *CommentHandler) GetComments(c *gin.Context) {
	var comments []Comment

	if err := h.db.Preload("User").Order("created_at desc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, renderComments(h.db, comments))
}

// GetComment returns one comment with its replies nested under it
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var root Comment
	if err := h.db.Preload("User").First(&root, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var thread []Comment
	if err := h.db.Preload("User").Where("submission_id = ?", root.SubmissionID).Order("created_at asc").Find(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	out := commentJSON(root, countVotes(h.db, KindComment, []int{root.ID})[root.ID])
	out["replies"] = nestComments(h.db, thread, &root.ID)
	c.JSON(http.StatusOK, out)
}

type commentInput struct {
	SubmissionID int    `json:"submission"`
	Content      string `json:"content"`
}

func (h *CommentHandler) create(c *gin.Context, input commentInput, parentID *int) {
	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"content": []string{"This field may not be blank."}})
		return
	}

	var sub Submission
	if err := h.db.First(&sub, input.SubmissionID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"submission": []string{"Invalid submission."}})
		return
	}

	userID, _ := extractUserID(c)
	comment := Comment{
		Content:      input.Content,
		UserID:       userID,
		SubmissionID: sub.ID,
		ParentID:     parentID,
	}

	if err := h.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	h.db.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, commentJSON(comment, 0))
}

// CreateComment creates a top-level comment (PROTECTED)
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.create(c, input, nil)
}

// ReplyComment answers an existing comment (PROTECTED)
func (h *CommentHandler) ReplyComment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var parent Comment
	if err := h.db.First(&parent, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	// A reply always belongs to its parent's submission
	input.SubmissionID = parent.SubmissionID
	h.create(c, input, &parent.ID)
}

func (h *CommentHandler) owned(c *gin.Context, action string) (Comment, bool) {
	var comment Comment
	id, ok := paramID(c)
	if !ok {
		return comment, false
	}
	if err := h.db.Preload("User").First(&comment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return comment, false
	}

	userID, _ := extractUserID(c)
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only " + action + " your own comments"})
		return comment, false
	}
	return comment, true
}

// UpdateComment edits a comment (PROTECTED - requires ownership)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, ok := h.owned(c, "edit")
	if !ok {
		return
	}

	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"content": []string{"This field may not be blank."}})
		return
	}

	comment.Content = input.Content
	if err := h.db.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, commentJSON(comment, countVotes(h.db, KindComment, []int{comment.ID})[comment.ID]))
}

// DeleteComment deletes a comment and all replies under it
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	comment, ok := h.owned(c, "delete")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		ids := []int{comment.ID}
		for frontier := ids; len(frontier) > 0; {
			var next []int
			if err := tx.Model(&Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &next).Error; err != nil {
				return err
			}
			ids = append(ids, next...)
			frontier = next
		}

		if err := deleteTargets(tx, KindComment, ids); err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&Comment{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) VoteComment(c *gin.Context) {
	h.mark(c, &Vote{}, "voted")
}

func (h *CommentHandler) FavoriteComment(c *gin.Context) {
	h.mark(c, &Favorite{}, "favorited")
}

func (h *CommentHandler) mark(c *gin.Context, record any, verb string) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var comment Comment
	if err := h.db.First(&comment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	userID, _ := extractUserID(c)

	markID, err := createMark(h.db, record, userID, KindComment, comment.ID)
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already " + verb + " this comment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          markID,
		"comment":     comment.ID,
		"total_votes": countVotes(h.db, KindComment, []int{comment.ID})[comment.ID],
	})
}

// GetFavoriteComments lists the caller's favorites as {comment: {...}} rows
func (h *CommentHandler) GetFavoriteComments(c *gin.Context) {
	h.markedRows(c, &Favorite{})
}

func (h *CommentHandler) GetVotedComments(c *gin.Context) {
	h.markedRows(c, &Vote{})
}

func (h *CommentHandler) markedRows(c *gin.Context, model any) {
	userID, _ := extractUserID(c)

	var ids []int
	if err := h.db.Model(model).Where("user_id = ? AND target_kind = ?", userID, KindComment).Order("created_at desc").Pluck("target_id", &ids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	var comments []Comment
	if len(ids) > 0 {
		if err := h.db.Preload("User").Where("id IN ?", ids).Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
	}

	rows := make([]gin.H, 0, len(comments))
	for _, r := range renderComments(h.db, comments) {
		rows = append(rows, gin.H{"comment": r})
	}
	c.JSON(http.StatusOK, rows)
}
