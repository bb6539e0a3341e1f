package commenttree

import (
	"github.com/emilythestrangee/hackernews-client/internal/models"
)

// Find returns the comment with id at any depth.
func Find(roots []models.Comment, id int) (models.Comment, bool) {
	for _, c := range roots {
		if c.ID == id {
			return c, true
		}
		if found, ok := Find(c.Replies, id); ok {
			return found, true
		}
	}
	return models.Comment{}, false
}

// update copies the path from the root to the node with id and replaces that
// node with fn(node). Untouched subtrees are shared, which is safe because
// nothing in this package mutates a tree in place.
func update(roots []models.Comment, id int, fn func(models.Comment) models.Comment) ([]models.Comment, bool) {
	for i, c := range roots {
		if c.ID == id {
			out := make([]models.Comment, len(roots))
			copy(out, roots)
			out[i] = fn(c)
			return out, true
		}
		if replies, ok := update(c.Replies, id, fn); ok {
			out := make([]models.Comment, len(roots))
			copy(out, roots)
			c.Replies = replies
			out[i] = c
			return out, true
		}
	}
	return roots, false
}

// ApplyVote sets total_votes on the voted comment. Without a count in the
// response the local count goes up by one.
func ApplyVote(roots []models.Comment, res models.VoteResult) ([]models.Comment, bool) {
	return update(roots, res.TargetID, func(c models.Comment) models.Comment {
		if res.TotalVotes != nil {
			c.TotalVotes = *res.TotalVotes
		} else {
			c.TotalVotes++
		}
		return c
	})
}

// ApplyFavorite only touches total_votes when the response reports it.
func ApplyFavorite(roots []models.Comment, res models.VoteResult) ([]models.Comment, bool) {
	return update(roots, res.TargetID, func(c models.Comment) models.Comment {
		if res.TotalVotes != nil {
			c.TotalVotes = *res.TotalVotes
		}
		return c
	})
}

// Remove drops the node with id together with its subtree.
func Remove(roots []models.Comment, id int) ([]models.Comment, bool) {
	for i, c := range roots {
		if c.ID == id {
			out := make([]models.Comment, 0, len(roots)-1)
			out = append(out, roots[:i]...)
			out = append(out, roots[i+1:]...)
			return out, true
		}
		if replies, ok := Remove(c.Replies, id); ok {
			out := make([]models.Comment, len(roots))
			copy(out, roots)
			c.Replies = replies
			out[i] = c
			return out, true
		}
	}
	return roots, false
}

// AppendReply attaches reply as the last child of parentID.
func AppendReply(roots []models.Comment, parentID int, reply models.Comment) ([]models.Comment, bool) {
	p := parentID
	reply.ParentID = &p
	return update(roots, parentID, func(c models.Comment) models.Comment {
		replies := make([]models.Comment, 0, len(c.Replies)+1)
		replies = append(replies, c.Replies...)
		c.Replies = append(replies, reply)
		return c
	})
}

// AppendTopLevel adds a new top-level comment at the end of the roots.
func AppendTopLevel(roots []models.Comment, comment models.Comment) []models.Comment {
	comment.ParentID = nil
	out := make([]models.Comment, 0, len(roots)+1)
	out = append(out, roots...)
	return append(out, comment)
}

// ReplaceContent applies an edited comment. Replies of the local node are
// kept since the edit response does not carry them.
func ReplaceContent(roots []models.Comment, edited models.Comment) ([]models.Comment, bool) {
	return update(roots, edited.ID, func(c models.Comment) models.Comment {
		c.Content = edited.Content
		if edited.TotalVotes != 0 {
			c.TotalVotes = edited.TotalVotes
		}
		return c
	})
}
