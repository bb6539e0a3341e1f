package models

import (
	"encoding/json"
	"fmt"
)

type TargetKind string

const (
	TargetSubmission TargetKind = "submission"
	TargetComment    TargetKind = "comment"
)

// HiddenRecord marks a submission as excluded from one user's feed.
// At most one record exists per (UserID, SubmissionID).
type HiddenRecord struct {
	UserID       int         `json:"user_id"`
	SubmissionID int         `json:"submission_id"`
	Submission   *Submission `json:"submission,omitempty"`
}

// UnmarshalJSON accepts the list shape ({"user": 1, "submission": {...}}) as
// well as flat ids ({"user_id": 1, "submission_id": 2} or "submission": 2).
func (h *HiddenRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		User         json.RawMessage `json:"user"`
		UserID       json.RawMessage `json:"user_id"`
		Submission   json.RawMessage `json:"submission"`
		SubmissionID json.RawMessage `json:"submission_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hidden record: %w", err)
	}

	out := HiddenRecord{}

	for _, candidate := range []json.RawMessage{raw.UserID, raw.User} {
		if len(candidate) == 0 {
			continue
		}
		var creator Creator
		if err := json.Unmarshal(candidate, &creator); err != nil {
			return fmt.Errorf("hidden record user: %w", err)
		}
		if creator.ID != 0 {
			out.UserID = creator.ID
			break
		}
	}

	if len(raw.Submission) > 0 && raw.Submission[0] == '{' {
		var s Submission
		if err := json.Unmarshal(raw.Submission, &s); err != nil {
			return fmt.Errorf("hidden record submission: %w", err)
		}
		out.Submission = &s
		out.SubmissionID = s.ID
	}
	if out.SubmissionID == 0 {
		for _, candidate := range []json.RawMessage{raw.SubmissionID, raw.Submission} {
			if len(candidate) == 0 || candidate[0] == '{' {
				continue
			}
			id, _, err := parseID(candidate)
			if err != nil {
				return fmt.Errorf("hidden record submission_id: %w", err)
			}
			if id != 0 {
				out.SubmissionID = id
				break
			}
		}
	}

	*h = out
	return nil
}

// HideRequest is the body of POST /hidden/
type HideRequest struct {
	SubmissionID int `json:"submission_id"`
}

// VoteRecord and FavoriteRecord are join records owned by the backend. The
// client only sees them through VoteResult and the personal list endpoints.
type VoteRecord struct {
	UserID   int        `json:"user_id"`
	TargetID int        `json:"target_id"`
	Target   TargetKind `json:"target"`
}

type FavoriteRecord struct {
	UserID   int        `json:"user_id"`
	TargetID int        `json:"target_id"`
	Target   TargetKind `json:"target"`
}

// VoteResult is the normalized answer to a vote or addFav call.
// TotalVotes is nil when the backend did not report the new count.
type VoteResult struct {
	TargetID   int  `json:"target_id"`
	TotalVotes *int `json:"total_votes,omitempty"`
}

func (v *VoteResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Some endpoints answer with an empty body or a bare string.
		*v = VoteResult{}
		return nil
	}

	out := VoteResult{}
	for _, key := range []string{"target_id", "comment", "submission", "id"} {
		candidate, ok := raw[key]
		if !ok {
			continue
		}
		id, _, err := parseID(candidate)
		if err == nil && id != 0 {
			out.TargetID = id
			break
		}
	}
	if candidate, ok := raw["total_votes"]; ok {
		total, _, err := parseID(candidate)
		if err != nil {
			return fmt.Errorf("vote result total_votes: %w", err)
		}
		out.TotalVotes = &total
	}

	*v = out
	return nil
}
