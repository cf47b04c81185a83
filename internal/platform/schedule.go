package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/felixgeelhaar/uniattend/internal/domain"
)

// CreateSchedule creates a class session, or with recurring a weekly
// series, and returns the backend's confirmation message.
func (c *Client) CreateSchedule(ctx context.Context, req CreateScheduleRequest, recurring bool) (string, error) {
	path := "/api/v1/teacher/schedule/create"
	if recurring {
		path = "/api/v1/teacher/schedule/create-recurring"
	}
	var resp envelope[any]
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: req, auth: true}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// LecturerSchedule returns the sessions taught by userID.
func (c *Client) LecturerSchedule(ctx context.Context, userID domain.ID) ([]Schedule, error) {
	return listBody[Schedule](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/v1/teacher/schedule/lecturer/" + pathID(userID),
		auth:   true,
	})
}

// GroupSchedule returns the sessions attended by groupID.
func (c *Client) GroupSchedule(ctx context.Context, groupID domain.ID) ([]Schedule, error) {
	return listBody[Schedule](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/v1/student/schedule/group/" + pathID(groupID),
		auth:   true,
	})
}

// ScheduleStats returns attendance of one session.
func (c *Client) ScheduleStats(ctx context.Context, scheduleID domain.ID) (*ScheduleStats, error) {
	var resp envelope[ScheduleStats]
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/v1/teacher/schedule/" + pathID(scheduleID),
		auth:   true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Body, nil
}

// Journal returns the assessments of a group in a subject.
func (c *Client) Journal(ctx context.Context, groupID, subjectID domain.ID) ([]JournalEntry, error) {
	return listBody[JournalEntry](ctx, c, request{
		method: http.MethodGet,
		path:   "/api/v1/teacher/journal/" + pathID(groupID),
		query:  url.Values{"subjectId": {subjectID.String()}},
		auth:   true,
	})
}

// GenerateQR asks the backend for a fresh attendance code for scheduleID
// and returns its image as sent (data URI or bare base64).
func (c *Client) GenerateQR(ctx context.Context, scheduleID domain.ID) (string, error) {
	var resp envelope[qrCodeBody]
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/v1/teacher/qr/generate/" + pathID(scheduleID),
		body:   struct{}{},
		auth:   true,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Body.QRCode, nil
}
