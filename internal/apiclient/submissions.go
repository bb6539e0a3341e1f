package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

func (c *Client) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	var rows []models.SubmissionRow
	err := c.do(ctx, request{Op: "list_submissions", Method: http.MethodGet, Path: "/submissions/"}, &rows)
	if err != nil {
		return nil, err
	}
	return models.SubmissionsFromRows(rows), nil
}

func (c *Client) ListAsk(ctx context.Context) ([]models.Submission, error) {
	var rows []models.SubmissionRow
	err := c.do(ctx, request{Op: "list_ask", Method: http.MethodGet, Path: "/submissions/ask/"}, &rows)
	if err != nil {
		return nil, err
	}
	return models.SubmissionsFromRows(rows), nil
}

// GetSubmission returns the submission; Comments is filled when the backend
// embeds the thread.
func (c *Client) GetSubmission(ctx context.Context, id int) (*models.Submission, error) {
	var s models.Submission
	err := c.do(ctx, request{
		Op:     "get_submission",
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/submissions/%d/", id),
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreateSubmission(ctx context.Context, token string, draft models.SubmissionDraft) (*models.Submission, error) {
	var s models.Submission
	err := c.do(ctx, request{
		Op:     "create_submission",
		Method: http.MethodPost,
		Path:   "/submissions/",
		Token:  token,
		Auth:   true,
		Body:   draft,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSubmission(ctx context.Context, token string, id int, draft models.SubmissionDraft) (*models.Submission, error) {
	var s models.Submission
	err := c.do(ctx, request{
		Op:     "update_submission",
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/submissions/%d/", id),
		Token:  token,
		Auth:   true,
		Body:   draft,
	}, &s)
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		s.ID = id
	}
	return &s, nil
}

func (c *Client) DeleteSubmission(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{
		Op:     "delete_submission",
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/submissions/%d/", id),
		Token:  token,
		Auth:   true,
	}, nil)
}

func (c *Client) VoteSubmission(ctx context.Context, token string, id int) (models.VoteResult, error) {
	return c.voteLike(ctx, "vote_submission", fmt.Sprintf("/submissions/%d/vote/", id), token, id, map[string]int{"submission": id})
}

func (c *Client) FavoriteSubmission(ctx context.Context, token string, id int) (models.VoteResult, error) {
	return c.voteLike(ctx, "favorite_submission", fmt.Sprintf("/submissions/%d/addFav/", id), token, id, struct{}{})
}

func (c *Client) ListFavoriteSubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	return c.submissionRows(ctx, "list_favorite_submissions", "/submissions/favorites/", token)
}

// ListUpvotedSubmissions resolves the viewer's vote records into submissions.
// Records that only reference a submission are fetched one by one; a record
// whose submission can no longer be loaded is left out.
func (c *Client) ListUpvotedSubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	var rows []models.VotedSubmissionRow
	err := c.do(ctx, request{
		Op:     "list_upvoted_submissions",
		Method: http.MethodGet,
		Path:   "/submissions/votes/",
		Token:  token,
		Auth:   true,
	}, &rows)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	for i := range rows {
		if rows[i].Submission != nil {
			continue
		}
		wg.Add(1)
		go func(row *models.VotedSubmissionRow) {
			defer wg.Done()
			sub, err := c.GetSubmission(ctx, row.SubmissionID)
			if err != nil {
				c.logger.WithError(err).WithField("submission_id", row.SubmissionID).Warn("dropping upvoted submission")
				return
			}
			row.Submission = sub
		}(&rows[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Submission, 0, len(rows))
	for _, row := range rows {
		if row.Submission != nil {
			out = append(out, *row.Submission)
		}
	}
	return out, nil
}

func (c *Client) submissionRows(ctx context.Context, op, path, token string) ([]models.Submission, error) {
	var rows []models.SubmissionRow
	err := c.do(ctx, request{Op: op, Method: http.MethodGet, Path: path, Token: token, Auth: true}, &rows)
	if err != nil {
		return nil, err
	}
	return models.SubmissionsFromRows(rows), nil
}

// voteLike posts to a vote or addFav endpoint. The target id always comes
// from the path since some responses carry the id of the vote record instead.
func (c *Client) voteLike(ctx context.Context, op, path, token string, id int, body any) (models.VoteResult, error) {
	var res models.VoteResult
	err := c.do(ctx, request{Op: op, Method: http.MethodPost, Path: path, Token: token, Auth: true, Body: body}, &res)
	if err != nil {
		return models.VoteResult{}, err
	}
	res.TargetID = id
	return res, nil
}
