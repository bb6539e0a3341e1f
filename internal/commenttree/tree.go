// Package commenttree turns comment payloads into a renderable, depth-indexed
// tree and applies local patches after successful mutations.
//
// Every function here is pure: inputs are never modified and the returned
// slices share no mutable state with them.
package commenttree

import (
	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

// Action is something a viewer can do on a comment node.
type Action string

const (
	ActionReply    Action = "reply"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionVote     Action = "vote"
	ActionFavorite Action = "favorite"
)

// Node is one rendered comment. Comment.Replies is always empty; the tree
// shape is carried by Depth and ParentID.
type Node struct {
	models.Comment
	Depth      int      `json:"depth"`
	ParentID   *int     `json:"parent"`
	IsAuthor   bool     `json:"is_author"`
	ReplyCount int      `json:"reply_count"`
	Voted      bool     `json:"voted"`
	Favorited  bool     `json:"favorited"`
	Actions    []Action `json:"actions"`
}

// Marks records which comments the viewer has voted or favorited during the
// lifetime of a screen.
type Marks struct {
	Voted     map[int]bool
	Favorited map[int]bool
}

// NewMarks returns empty marks ready for use.
func NewMarks() Marks {
	return Marks{Voted: map[int]bool{}, Favorited: map[int]bool{}}
}

// Nest assembles a forest from flat records, pre-nested records, or a mix of
// both. Duplicate ids keep their first occurrence. A record without ParentID
// found inside another record's replies is attached to that record. Records
// whose parent chain does not reach a top-level comment are dropped, so the
// result is acyclic.
func Nest(comments []models.Comment) []models.Comment {
	var (
		order    []int
		byID     = map[int]models.Comment{}
		children = map[int][]int{}
	)

	var collect func(list []models.Comment, inferred *int)
	collect = func(list []models.Comment, inferred *int) {
		for _, c := range list {
			if c.ID == 0 {
				continue
			}
			if _, dup := byID[c.ID]; dup {
				continue
			}
			replies := c.Replies
			c.Replies = nil
			if c.ParentID == nil && inferred != nil {
				p := *inferred
				c.ParentID = &p
			}
			byID[c.ID] = c
			order = append(order, c.ID)

			id := c.ID
			collect(replies, &id)
		}
	}
	collect(comments, nil)

	var roots []int
	for _, id := range order {
		c := byID[id]
		if c.ParentID == nil {
			roots = append(roots, id)
			continue
		}
		if *c.ParentID == id {
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], id)
	}

	var assemble func(id int) models.Comment
	assemble = func(id int) models.Comment {
		c := byID[id]
		kids := children[id]
		if len(kids) > 0 {
			c.Replies = make([]models.Comment, 0, len(kids))
			for _, kid := range kids {
				c.Replies = append(c.Replies, assemble(kid))
			}
		}
		return c
	}

	out := make([]models.Comment, 0, len(roots))
	for _, id := range roots {
		out = append(out, assemble(id))
	}
	return out
}

// ForSubmission keeps the top-level comments that belong to submissionID.
// Comments with an unknown (zero) submission reference are kept.
func ForSubmission(roots []models.Comment, submissionID int) []models.Comment {
	out := make([]models.Comment, 0, len(roots))
	for _, c := range roots {
		if c.SubmissionID == 0 || c.SubmissionID == submissionID {
			out = append(out, c)
		}
	}
	return out
}

// Build flattens the forest in pre-order.
func Build(roots []models.Comment, viewer session.Viewer, marks Marks) []Node {
	var out []Node
	var walk func(list []models.Comment, depth int, parent *int)
	walk = func(list []models.Comment, depth int, parent *int) {
		for _, c := range list {
			replies := c.Replies
			c.Replies = nil

			n := Node{
				Comment:    c,
				Depth:      depth,
				ParentID:   copyID(parent),
				IsAuthor:   IsAuthor(viewer, c.CreatedBy),
				ReplyCount: len(replies),
				Voted:      marks.Voted[c.ID],
				Favorited:  marks.Favorited[c.ID],
			}
			n.Actions = Actions(n, viewer)
			out = append(out, n)

			id := c.ID
			walk(replies, depth+1, &id)
		}
	}
	walk(roots, 0, nil)
	if out == nil {
		out = []Node{}
	}
	return out
}

// IsAuthor is false for anonymous viewers and for creators without an id.
func IsAuthor(viewer session.Viewer, creator models.Creator) bool {
	if !viewer.LoggedIn() || creator.ID == 0 {
		return false
	}
	return viewer.ID == creator.ID
}

// Actions lists what the viewer may do on a node.
func Actions(n Node, viewer session.Viewer) []Action {
	if !viewer.LoggedIn() {
		return []Action{}
	}
	if n.IsAuthor {
		return []Action{ActionReply, ActionEdit, ActionDelete}
	}
	acts := []Action{ActionReply}
	if !n.Voted {
		acts = append(acts, ActionVote)
	}
	if !n.Favorited {
		acts = append(acts, ActionFavorite)
	}
	return acts
}

// Depths returns the number of distinct depth levels in nodes.
func Depths(nodes []Node) int {
	seen := map[int]struct{}{}
	for _, n := range nodes {
		seen[n.Depth] = struct{}{}
	}
	return len(seen)
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
