package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Comment is a reply attached to a submission (ParentID nil) or to another comment.
type Comment struct {
	ID           int       `json:"id"`
	Content      string    `json:"content"`
	CreatedBy    Creator   `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	TotalVotes   int       `json:"total_votes"`
	SubmissionID int       `json:"submission"`
	ParentID     *int      `json:"parent"`
	Replies      []Comment `json:"replies,omitempty"`
}

// IsTopLevel reports whether the comment hangs directly off a submission.
func (c Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// CreateCommentRequest is used for POST /comments/, POST /comments/{id}/reply/ and PUT /comments/{id}/
type CreateCommentRequest struct {
	SubmissionID int    `json:"submission"`
	Content      string `json:"content"`
}

// unwrap returns the object stored under key when data is {"<key>": {...}},
// and data itself otherwise. Several list endpoints wrap rows that way.
func unwrap(data []byte, key string) []byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return data
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return data
	}
	if inner, ok := fields[key]; ok {
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '{' {
			return inner
		}
	}
	return data
}

// CommentRow decodes list rows that are either a comment or {"comment": {...}}.
type CommentRow struct {
	Comment
}

func (r *CommentRow) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(unwrap(data, "comment"), &r.Comment)
}

// SubmissionRow decodes list rows that are either a submission or {"submission": {...}}.
type SubmissionRow struct {
	Submission
}

func (r *SubmissionRow) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(unwrap(data, "submission"), &r.Submission)
}

// VotedSubmissionRow is one row of the viewer's upvoted submissions. The
// backend answers with vote records ({id, submission: <id>, user}) that only
// reference the submission; rows carrying the submission inline are also
// accepted. Submission is nil until the reference is resolved.
type VotedSubmissionRow struct {
	SubmissionID int
	Submission   *Submission
}

func (r *VotedSubmissionRow) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("voted submission row: %w", err)
	}

	ref, ok := fields["submission"]
	ref = bytes.TrimSpace(ref)
	if !ok || len(ref) == 0 || ref[0] == '{' {
		var s Submission
		if err := json.Unmarshal(unwrap(data, "submission"), &s); err != nil {
			return fmt.Errorf("voted submission row: %w", err)
		}
		*r = VotedSubmissionRow{SubmissionID: s.ID, Submission: &s}
		return nil
	}

	id, _, err := parseID(ref)
	if err != nil {
		return fmt.Errorf("voted submission row submission: %w", err)
	}
	*r = VotedSubmissionRow{SubmissionID: id}
	return nil
}

func CommentsFromRows(rows []CommentRow) []Comment {
	out := make([]Comment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Comment)
	}
	return out
}

func SubmissionsFromRows(rows []SubmissionRow) []Submission {
	out := make([]Submission, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Submission)
	}
	return out
}
