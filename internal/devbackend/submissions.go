package devbackend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

type SubmissionHandler struct {
	db *gorm.DB
}

func NewSubmissionHandler(db *gorm.DB) *SubmissionHandler {
	return &SubmissionHandler{db: db}
}

// GetSubmissions returns every submission, newest first
func (h *SubmissionHandler) GetSubmissions(c *gin.Context) {
	var subs []Submission

	if err := h.db.Preload("User").Order("created_at desc").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, renderSubmissions(h.db, subs))
}

// GetAsk returns text submissions only
func (h *SubmissionHandler) GetAsk(c *gin.Context) {
	var subs []Submission

	if err := h.db.Preload("User").Where("url IS NULL OR url = ''").Order("created_at desc").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, renderSubmissions(h.db, subs))
}

// GetSubmission returns one submission with its nested comments
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var sub Submission
	if err := h.db.Preload("User").First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	var comments []Comment
	if err := h.db.Preload("User").Where("submission_id = ?", sub.ID).Order("created_at asc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	out := submissionJSON(sub, countVotes(h.db, KindSubmission, []int{sub.ID})[sub.ID])
	out["comments"] = nestComments(h.db, comments, nil)
	c.JSON(http.StatusOK, out)
}

type submissionInput struct {
	Title   string  `json:"title"`
	URL     *string `json:"url"`
	Content *string `json:"content"`
}

func (in submissionInput) validate() (models.SubmissionDraft, error) {
	draft := models.SubmissionDraft{Title: in.Title, URL: in.URL, Content: in.Content}
	if err := draft.Validate(); err != nil {
		return draft, err
	}
	return draft.Normalized(), nil
}

func fieldErrors(err error) gin.H {
	out := gin.H{}
	if errors.Is(err, models.ErrTitleRequired) {
		out["title"] = []string{"This field is required."}
	}
	if errors.Is(err, models.ErrInvalidURL) {
		out["url"] = []string{"Enter a valid URL."}
	}
	if errors.Is(err, models.ErrURLOrContent) {
		out["non_field_errors"] = []string{"Provide either a url or content."}
	}
	if len(out) == 0 {
		out["error"] = err.Error()
	}
	return out
}

// CreateSubmission creates a link or text submission (PROTECTED)
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var input submissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := input.validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	userID, _ := extractUserID(c)
	sub := Submission{Title: draft.Title, URL: draft.URL, Content: draft.Content, UserID: userID}

	if err := h.db.Create(&sub).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"url": []string{"submission with this url already exists."}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	h.db.Preload("User").First(&sub, sub.ID)
	c.JSON(http.StatusCreated, submissionJSON(sub, 0))
}

// owned loads the submission and checks it belongs to the caller.
func (h *SubmissionHandler) owned(c *gin.Context, action string) (Submission, bool) {
	var sub Submission
	id, ok := paramID(c)
	if !ok {
		return sub, false
	}
	if err := h.db.Preload("User").First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return sub, false
	}

	userID, _ := extractUserID(c)
	if sub.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only " + action + " your own submissions"})
		return sub, false
	}
	return sub, true
}

// UpdateSubmission edits a submission (PROTECTED - requires ownership)
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	var input submissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, ok := h.owned(c, "edit")
	if !ok {
		return
	}

	draft, err := input.validate()
	if err != nil {
		c.JSON(http.StatusBadRequest, fieldErrors(err))
		return
	}

	sub.Title, sub.URL, sub.Content = draft.Title, draft.URL, draft.Content
	if err := h.db.Save(&sub).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"url": []string{"submission with this url already exists."}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	c.JSON(http.StatusOK, submissionJSON(sub, countVotes(h.db, KindSubmission, []int{sub.ID})[sub.ID]))
}

// DeleteSubmission deletes a submission and everything hanging off it
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	sub, ok := h.owned(c, "delete")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []int
		if err := tx.Model(&Comment{}).Where("submission_id = ?", sub.ID).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if err := deleteTargets(tx, KindComment, commentIDs); err != nil {
			return err
		}
		if err := deleteTargets(tx, KindSubmission, []int{sub.ID}); err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", sub.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id = ?", sub.ID).Delete(&Hidden{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sub).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete submission"})
		return
	}

	c.Status(http.StatusNoContent)
}

// deleteTargets drops votes and favorites pointing at ids.
func deleteTargets(tx *gorm.DB, kind string, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&Vote{}).Error; err != nil {
		return err
	}
	return tx.Where("target_kind = ? AND target_id IN ?", kind, ids).Delete(&Favorite{}).Error
}

func (h *SubmissionHandler) VoteSubmission(c *gin.Context) {
	h.mark(c, &Vote{}, "voted")
}

func (h *SubmissionHandler) FavoriteSubmission(c *gin.Context) {
	h.mark(c, &Favorite{}, "favorited")
}

func (h *SubmissionHandler) mark(c *gin.Context, record any, verb string) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var sub Submission
	if err := h.db.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	userID, _ := extractUserID(c)

	markID, err := createMark(h.db, record, userID, KindSubmission, sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already " + verb + " this submission"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          markID,
		"submission":  sub.ID,
		"total_votes": countVotes(h.db, KindSubmission, []int{sub.ID})[sub.ID],
	})
}

// createMark inserts a vote or favorite and returns its id.
func createMark(db *gorm.DB, record any, userID int, kind string, targetID int) (int, error) {
	switch r := record.(type) {
	case *Vote:
		*r = Vote{UserID: userID, TargetKind: kind, TargetID: targetID}
		err := db.Create(r).Error
		return r.ID, err
	case *Favorite:
		*r = Favorite{UserID: userID, TargetKind: kind, TargetID: targetID}
		err := db.Create(r).Error
		return r.ID, err
	default:
		return 0, errors.New("unknown mark")
	}
}

// GetFavoriteSubmissions lists the caller's favorites as {submission: {...}} rows
func (h *SubmissionHandler) GetFavoriteSubmissions(c *gin.Context) {
	h.markedRows(c, &Favorite{})
}

// GetVotedSubmissions lists the caller's submission votes as vote records that
// reference the submission by id
func (h *SubmissionHandler) GetVotedSubmissions(c *gin.Context) {
	userID, _ := extractUserID(c)

	var votes []Vote
	if err := h.db.Where("user_id = ? AND target_kind = ?", userID, KindSubmission).Order("created_at desc").Find(&votes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch votes"})
		return
	}

	rows := make([]gin.H, 0, len(votes))
	for _, v := range votes {
		rows = append(rows, gin.H{"id": v.ID, "submission": v.TargetID, "user": v.UserID})
	}
	c.JSON(http.StatusOK, rows)
}

func (h *SubmissionHandler) markedRows(c *gin.Context, model any) {
	userID, _ := extractUserID(c)

	var ids []int
	if err := h.db.Model(model).Where("user_id = ? AND target_kind = ?", userID, KindSubmission).Order("created_at desc").Pluck("target_id", &ids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	var subs []Submission
	if len(ids) > 0 {
		if err := h.db.Preload("User").Where("id IN ?", ids).Find(&subs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
			return
		}
	}

	rows := make([]gin.H, 0, len(subs))
	for _, s := range renderSubmissions(h.db, subs) {
		rows = append(rows, gin.H{"submission": s})
	}
	c.JSON(http.StatusOK, rows)
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return id, true
}
