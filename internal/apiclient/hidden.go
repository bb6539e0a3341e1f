package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

// ListHidden returns the viewer's hidden records.
func (c *Client) ListHidden(ctx context.Context, token string) ([]models.HiddenRecord, error) {
	var records []models.HiddenRecord
	err := c.do(ctx, request{Op: "list_hidden", Method: http.MethodGet, Path: "/hidden/", Token: token, Auth: true}, &records)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.HiddenRecord{}
	}
	return records, nil
}

func (c *Client) Hide(ctx context.Context, token string, submissionID int) error {
	return c.do(ctx, request{
		Op:     "hide_submission",
		Method: http.MethodPost,
		Path:   "/hidden/",
		Token:  token,
		Auth:   true,
		Body:   models.HideRequest{SubmissionID: submissionID},
	}, nil)
}

// Unhide deletes the hidden record for submissionID.
func (c *Client) Unhide(ctx context.Context, token string, submissionID int) error {
	return c.do(ctx, request{
		Op:     "unhide_submission",
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/hidden/%d/", submissionID),
		Token:  token,
		Auth:   true,
	}, nil)
}
