package devbackend

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func creatorJSON(u User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username}
}

func countVotes(db *gorm.DB, kind string, ids []int) map[int]int {
	counts := make(map[int]int, len(ids))
	if len(ids) == 0 {
		return counts
	}

	var rows []struct {
		TargetID int
		Total    int
	}
	db.Model(&Vote{}).
		Select("target_id, count(*) as total").
		Where("target_kind = ? AND target_id IN ?", kind, ids).
		Group("target_id").
		Scan(&rows)

	for _, r := range rows {
		counts[r.TargetID] = r.Total
	}
	return counts
}

func submissionJSON(s Submission, votes int) gin.H {
	return gin.H{
		"id":          s.ID,
		"title":       s.Title,
		"url":         s.URL,
		"content":     s.Content,
		"created_by":  creatorJSON(s.User),
		"created_at":  s.CreatedAt,
		"total_votes": votes,
	}
}

func renderSubmissions(db *gorm.DB, subs []Submission) []gin.H {
	ids := make([]int, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	votes := countVotes(db, KindSubmission, ids)

	out := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		out = append(out, submissionJSON(s, votes[s.ID]))
	}
	return out
}

func commentJSON(c Comment, votes int) gin.H {
	return gin.H{
		"id":          c.ID,
		"content":     c.Content,
		"created_by":  creatorJSON(c.User),
		"created_at":  c.CreatedAt,
		"total_votes": votes,
		"submission":  c.SubmissionID,
		"parent":      c.ParentID,
	}
}

func renderComments(db *gorm.DB, comments []Comment) []gin.H {
	ids := make([]int, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	votes := countVotes(db, KindComment, ids)

	out := make([]gin.H, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentJSON(c, votes[c.ID]))
	}
	return out
}

// nestComments renders the subtree under root (nil for the whole forest)
// with children in "replies".
func nestComments(db *gorm.DB, comments []Comment, root *int) []gin.H {
	ids := make([]int, 0, len(comments))
	children := make(map[int][]Comment)
	var tops []Comment
	for _, c := range comments {
		ids = append(ids, c.ID)
		if c.ParentID == nil {
			tops = append(tops, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}
	votes := countVotes(db, KindComment, ids)

	var build func(c Comment) gin.H
	build = func(c Comment) gin.H {
		node := commentJSON(c, votes[c.ID])
		replies := make([]gin.H, 0, len(children[c.ID]))
		for _, child := range children[c.ID] {
			replies = append(replies, build(child))
		}
		node["replies"] = replies
		return node
	}

	start := tops
	if root != nil {
		start = children[*root]
	}
	out := make([]gin.H, 0, len(start))
	for _, c := range start {
		out = append(out, build(c))
	}
	return out
}
