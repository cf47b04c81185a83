package platform

import (
	"github.com/felixgeelhaar/uniattend/internal/domain"
)

// Group is a student group.
type Group struct {
	ID   domain.ID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
}

// Subject is a taught course.
type Subject struct {
	ID   domain.ID `json:"id" yaml:"id"`
	Name string    `json:"name" yaml:"name"`
}

// User is a participant as listed by the admin and group endpoints.
type User struct {
	ID          domain.ID    `json:"id" yaml:"id"`
	Email       string       `json:"email" yaml:"email"`
	Name        string       `json:"name" yaml:"name"`
	PhoneNumber string       `json:"phoneNumber,omitempty" yaml:"phoneNumber,omitempty"`
	Birthday    string       `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	GroupID     domain.ID    `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	GroupName   string       `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	RoleID      domain.ID    `json:"roleId,omitempty" yaml:"roleId,omitempty"`
	Roles       domain.Roles `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// IsTeacher reports whether the user holds the teacher role.
func (u User) IsTeacher() bool {
	return u.Roles.Has(domain.RoleTeacher)
}

// Schedule is one class session.
type Schedule struct {
	ID          domain.ID `json:"id" yaml:"id"`
	Subject     string    `json:"subject" yaml:"subject"`
	SubjectID   domain.ID `json:"subjectId,omitempty" yaml:"subjectId,omitempty"`
	GroupID     domain.ID `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	GroupName   string    `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	LecturerID  domain.ID `json:"lecturerId,omitempty" yaml:"lecturerId,omitempty"`
	TeacherName string    `json:"teacherName,omitempty" yaml:"teacherName,omitempty"`
	StartTime   string    `json:"startTime" yaml:"startTime"`
	EndTime     string    `json:"endTime" yaml:"endTime"`
}

// JournalEntry is one assessment of one student on one day.
type JournalEntry struct {
	UserID     domain.ID `json:"userId" yaml:"userId"`
	Name       string    `json:"name" yaml:"name"`
	Email      string    `json:"email" yaml:"email"`
	DateCreate string    `json:"dateCreate" yaml:"dateCreate"`
	Assessment string    `json:"assessment" yaml:"assessment"`
}

// StudentAttendance is a student row of the schedule statistics.
type StudentAttendance struct {
	ID      domain.ID `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Email   string    `json:"email,omitempty" yaml:"email,omitempty"`
	Present bool      `json:"present" yaml:"present"`
}

// ScheduleStats is the attendance summary of one schedule.
type ScheduleStats struct {
	Schedule     Schedule            `json:"scheduleDTO" yaml:"schedule"`
	Students     []StudentAttendance `json:"studentDTO" yaml:"students"`
	PresentCount int                 `json:"presentCount" yaml:"presentCount"`
	TotalCount   int                 `json:"totalCount" yaml:"totalCount"`
	Statistic    any                 `json:"statistic,omitempty" yaml:"statistic,omitempty"`
}

// SignUpRequest registers a participant. Every field is required.
type SignUpRequest struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Password    string    `json:"password"`
	PhoneNumber string    `json:"phoneNumber"`
	Birthday    string    `json:"birthday"`
	GroupID     domain.ID `json:"groupId"`
	RoleID      domain.ID `json:"roleId"`
}

// CreateScheduleRequest creates one class session, or a recurring series.
type CreateScheduleRequest struct {
	SubjectID  domain.ID `json:"subjectId"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	GroupID    domain.ID `json:"groupId"`
	LecturerID domain.ID `json:"lecturerId"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type qrCodeBody struct {
	QRCode string `json:"qrCode"`
}
