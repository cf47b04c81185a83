package platform

import (
	"context"
	"net/http"
)

// ListParticipants returns every registered user.
func (c *Client) ListParticipants(ctx context.Context) ([]User, error) {
	return list[User](ctx, c, "/api/v1/admin/all")
}

// ListUsers returns the users an administrator can assign as lecturers.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return list[User](ctx, c, "/api/v1/admin/users/all")
}

// ListTeachers is ListUsers restricted to users holding the teacher role.
func (c *Client) ListTeachers(ctx context.Context) ([]User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	teachers := make([]User, 0, len(users))
	for _, u := range users {
		if u.IsTeacher() {
			teachers = append(teachers, u)
		}
	}
	return teachers, nil
}

// list fetches a bare JSON array, mapping null to an empty slice.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var items []T
	if err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// listBody fetches a {body: [...]} envelope, mapping null to an empty slice.
func listBody[T any](ctx context.Context, c *Client, req request) ([]T, error) {
	var resp envelope[[]T]
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if resp.Body == nil {
		resp.Body = []T{}
	}
	return resp.Body, nil
}
