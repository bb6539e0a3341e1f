package models

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

type Submission struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	URL        *string   `json:"url,omitempty"`
	Content    *string   `json:"content,omitempty"`
	CreatedBy  Creator   `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	TotalVotes int       `json:"total_votes"`

	// Comments is only filled by the detail endpoint.
	Comments []Comment `json:"comments,omitempty"`
}

// IsAsk reports whether the submission is a text post rather than a link.
func (s Submission) IsAsk() bool {
	return s.URL == nil || *s.URL == ""
}

var (
	ErrTitleRequired     = errors.New("title is required")
	ErrURLOrContent      = errors.New("exactly one of url or content must be provided")
	ErrInvalidURL        = errors.New("url must be an absolute http(s) address")
	ErrContentRequired   = errors.New("content must not be blank")
	ErrNothingToUpdate   = errors.New("nothing to update")
	ErrSubmissionMissing = errors.New("submission id is required")
)

// SubmissionDraft is the body of POST /submissions/ and PUT /submissions/{id}/
type SubmissionDraft struct {
	Title   string  `json:"title"`
	URL     *string `json:"url,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Validate collects every problem with the draft instead of stopping at the first one.
func (d SubmissionDraft) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(d.Title) == "" {
		result = multierror.Append(result, ErrTitleRequired)
	}

	hasURL := d.URL != nil && strings.TrimSpace(*d.URL) != ""
	hasContent := d.Content != nil && strings.TrimSpace(*d.Content) != ""

	switch {
	case hasURL == hasContent:
		result = multierror.Append(result, ErrURLOrContent)
	case hasURL && !validURL(strings.TrimSpace(*d.URL)):
		result = multierror.Append(result, ErrInvalidURL)
	}

	return result.ErrorOrNil()
}

// Normalized trims the draft and drops blank optional fields.
func (d SubmissionDraft) Normalized() SubmissionDraft {
	out := SubmissionDraft{Title: strings.TrimSpace(d.Title)}
	if d.URL != nil && strings.TrimSpace(*d.URL) != "" {
		u := strings.TrimSpace(*d.URL)
		out.URL = &u
	}
	if d.Content != nil && strings.TrimSpace(*d.Content) != "" {
		c := *d.Content
		out.Content = &c
	}
	return out
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
