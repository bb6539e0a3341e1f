package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

func (c *Client) ListComments(ctx context.Context) ([]models.Comment, error) {
	var rows []models.CommentRow
	err := c.do(ctx, request{Op: "list_comments", Method: http.MethodGet, Path: "/comments/"}, &rows)
	if err != nil {
		return nil, err
	}
	return models.CommentsFromRows(rows), nil
}

// GetComment returns one comment with its nested replies.
func (c *Client) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, request{
		Op:     "get_comment",
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/comments/%d/", id),
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) CreateComment(ctx context.Context, token string, req models.CreateCommentRequest) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, request{
		Op:     "create_comment",
		Method: http.MethodPost,
		Path:   "/comments/",
		Token:  token,
		Auth:   true,
		Body:   req,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ReplyComment answers parentID. The returned comment has a zero ID when the
// backend did not echo the created object.
func (c *Client) ReplyComment(ctx context.Context, token string, parentID int, req models.CreateCommentRequest) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, request{
		Op:     "reply_comment",
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/comments/%d/reply/", parentID),
		Token:  token,
		Auth:   true,
		Body:   req,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, token string, id int, req models.CreateCommentRequest) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, request{
		Op:     "update_comment",
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/comments/%d/", id),
		Token:  token,
		Auth:   true,
		Body:   req,
	}, &comment)
	if err != nil {
		return nil, err
	}
	if comment.ID == 0 {
		comment.ID = id
		comment.Content = req.Content
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{
		Op:     "delete_comment",
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/comments/%d/", id),
		Token:  token,
		Auth:   true,
	}, nil)
}

func (c *Client) VoteComment(ctx context.Context, token string, id int) (models.VoteResult, error) {
	return c.voteLike(ctx, "vote_comment", fmt.Sprintf("/comments/%d/vote/", id), token, id, map[string]int{"comment": id})
}

func (c *Client) FavoriteComment(ctx context.Context, token string, id int) (models.VoteResult, error) {
	return c.voteLike(ctx, "favorite_comment", fmt.Sprintf("/comments/%d/addFav/", id), token, id, struct{}{})
}

func (c *Client) ListFavoriteComments(ctx context.Context, token string) ([]models.Comment, error) {
	return c.commentRows(ctx, "list_favorite_comments", "/comments/favorites/", token)
}

func (c *Client) ListUpvotedComments(ctx context.Context, token string) ([]models.Comment, error) {
	return c.commentRows(ctx, "list_upvoted_comments", "/comments/votes/", token)
}

func (c *Client) commentRows(ctx context.Context, op, path, token string) ([]models.Comment, error) {
	var rows []models.CommentRow
	err := c.do(ctx, request{Op: op, Method: http.MethodGet, Path: path, Token: token, Auth: true}, &rows)
	if err != nil {
		return nil, err
	}
	return models.CommentsFromRows(rows), nil
}
