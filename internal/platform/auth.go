package platform

import (
	"context"
	"net/http"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/session"
)

// SignIn exchanges credentials for the principal profile, including its
// access token.
func (c *Client) SignIn(ctx context.Context, creds domain.Credentials) (*session.Principal, error) {
	var resp envelope[session.Principal]
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/sign-in",
		body:   creds,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Body, nil
}

// SignUp registers a new participant on behalf of an administrator.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	var user User
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/v1/auth/sign-up",
		body:   req,
		auth:   true,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a participant.
func (c *Client) DeleteUser(ctx context.Context, id domain.ID) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/v1/auth/users/" + pathID(id),
		auth:   true,
	}, nil)
}
