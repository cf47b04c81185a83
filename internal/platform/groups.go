package platform

import (
	"context"
	"net/http"

	"github.com/felixgeelhaar/uniattend/internal/domain"
)

// ListGroups returns every group.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	return list[Group](ctx, c, "/api/v1/teacher/group")
}

// CreateGroup adds a group.
func (c *Client) CreateGroup(ctx context.Context, name string) (*Group, error) {
	var g Group
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/v1/teacher/group",
		body:   nameRequest{Name: name},
		auth:   true,
	}, &g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGroup removes a group.
func (c *Client) DeleteGroup(ctx context.Context, id domain.ID) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/v1/teacher/group/" + pathID(id),
		auth:   true,
	}, nil)
}

// GroupMembers returns the students and teachers of a group.
func (c *Client) GroupMembers(ctx context.Context, id domain.ID) ([]User, error) {
	return list[User](ctx, c, "/api/v1/teacher/group/"+pathID(id))
}

// ListSubjects returns every subject.
func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	return list[Subject](ctx, c, "/api/v1/teacher/subject")
}

// CreateSubject adds a subject.
func (c *Client) CreateSubject(ctx context.Context, name string) (*Subject, error) {
	var s Subject
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/v1/teacher/subject",
		body:   nameRequest{Name: name},
		auth:   true,
	}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSubject removes a subject.
func (c *Client) DeleteSubject(ctx context.Context, id domain.ID) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/v1/teacher/subject/" + pathID(id),
		auth:   true,
	}, nil)
}
