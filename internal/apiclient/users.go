package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

func (c *Client) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := c.do(ctx, request{Op: "get_user", Method: http.MethodGet, Path: fmt.Sprintf("/users/%d/", id)}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int, req models.UpdateUserRequest) (*models.User, error) {
	var u models.User
	err := c.do(ctx, request{
		Op:     "update_user",
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/users/%d/", id),
		Token:  token,
		Auth:   true,
		Body:   req,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
