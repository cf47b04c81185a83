package cmd

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/attendance"
	"github.com/felixgeelhaar/uniattend/internal/i18n"
	"github.com/felixgeelhaar/uniattend/internal/platform"
	"github.com/felixgeelhaar/uniattend/internal/session"
	"github.com/felixgeelhaar/uniattend/internal/ux"
)

// view pairs the data written for json and yaml with its text table.
type view struct {
	data  any
	table ux.Table
}

func (v view) Table() ux.Table { return v.table }

func (v view) MarshalJSON() ([]byte, error) { return json.Marshal(v.data) }

func (v view) MarshalYAML() (any, error) { return v.data, nil }

// message is the result of commands that change something.
type message struct {
	Message string `json:"message" yaml:"message"`
}

func (m message) String() string { return m.Message }

func namedView(tr *i18n.Translator, title string, ids []string, names []string, data any) view {
	rows := make([][]string, len(ids))
	for i := range ids {
		rows[i] = []string{ids[i], names[i]}
	}
	return view{
		data: data,
		table: ux.Table{
			Title:   title,
			Headers: []string{tr.T(i18n.HeaderID), tr.T(i18n.HeaderName)},
			Rows:    rows,
			Empty:   tr.T(i18n.NoData),
		},
	}
}

func groupsView(tr *i18n.Translator, groups []platform.Group) view {
	ids, names := make([]string, len(groups)), make([]string, len(groups))
	for i, g := range groups {
		ids[i], names[i] = g.ID.String(), g.Name
	}
	return namedView(tr, tr.T(i18n.HeaderGroup), ids, names, groups)
}

func subjectsView(tr *i18n.Translator, subjects []platform.Subject) view {
	ids, names := make([]string, len(subjects)), make([]string, len(subjects))
	for i, s := range subjects {
		ids[i], names[i] = s.ID.String(), s.Name
	}
	return namedView(tr, tr.T(i18n.HeaderSubject), ids, names, subjects)
}

// usersView lists participants. Teachers get a role badge.
func usersView(tr *i18n.Translator, users []platform.User) view {
	rows := make([][]string, len(users))
	for i, u := range users {
		role := ""
		switch {
		case u.IsTeacher():
			role = tr.RoleLabel("teacher")
		case len(u.Roles) > 0:
			labels := make([]string, 0, len(u.Roles))
			for _, name := range u.Roles.Names() {
				labels = append(labels, tr.RoleLabel(name))
			}
			role = strings.Join(labels, ", ")
		}
		rows[i] = []string{u.ID.String(), u.Name, u.Email, u.GroupName, role}
	}
	return view{
		data: users,
		table: ux.Table{
			Headers: []string{
				tr.T(i18n.HeaderID), tr.T(i18n.HeaderName), tr.T(i18n.HeaderEmail),
				tr.T(i18n.HeaderGroup), tr.T(i18n.HeaderRole),
			},
			Rows:  rows,
			Empty: tr.T(i18n.NoData),
		},
	}
}

func schedulesView(tr *i18n.Translator, schedules []platform.Schedule, loc *time.Location) view {
	rows := make([][]string, len(schedules))
	for i, s := range schedules {
		rows[i] = []string{
			s.ID.String(),
			s.Subject,
			s.GroupName,
			s.TeacherName,
			attendance.FormatDate(s.StartTime, loc) + " " + attendance.FormatClock(s.StartTime, loc),
			attendance.FormatClock(s.EndTime, loc),
		}
	}
	return view{
		data: schedules,
		table: ux.Table{
			Headers: []string{
				tr.T(i18n.HeaderID), tr.T(i18n.HeaderSubject), tr.T(i18n.HeaderGroup),
				tr.T(i18n.HeaderTeacher), tr.T(i18n.HeaderStart), tr.T(i18n.HeaderEnd),
			},
			Rows:  rows,
			Empty: tr.T(i18n.ScheduleEmpty),
		},
	}
}

func slotsView(tr *i18n.Translator, slots []attendance.Slot) view {
	rows := make([][]string, len(slots))
	for i, s := range slots {
		rows[i] = []string{s.Start, s.End}
	}
	return view{
		data: slots,
		table: ux.Table{
			Title:   tr.T(i18n.ScheduleSlots),
			Headers: []string{tr.T(i18n.HeaderStart), tr.T(i18n.HeaderEnd)},
			Rows:    rows,
		},
	}
}

func journalView(tr *i18n.Translator, j attendance.Journal) view {
	headers := append([]string{tr.T(i18n.HeaderStudent)}, j.Dates...)
	rows := make([][]string, len(j.Rows))
	for i, r := range j.Rows {
		row := make([]string, 0, len(headers))
		row = append(row, r.Name)
		for _, d := range j.Dates {
			row = append(row, r.Mark(d))
		}
		rows[i] = row
	}
	return view{
		data: j,
		table: ux.Table{
			Headers: headers,
			Rows:    rows,
			Empty:   tr.T(i18n.NoData),
		},
	}
}

// statsResult is the attendance of one schedule.
type statsResult struct {
	Schedule platform.Schedule            `json:"schedule" yaml:"schedule"`
	Summary  attendance.Summary           `json:"summary" yaml:"summary"`
	Students []platform.StudentAttendance `json:"students" yaml:"students"`
}

func statsView(tr *i18n.Translator, stats *platform.ScheduleStats) view {
	summary := attendance.Summarize(*stats)
	students := stats.Students
	if students == nil {
		students = []platform.StudentAttendance{}
	}
	rows := make([][]string, len(students))
	for i, s := range students {
		mark := "✗"
		if s.Present {
			mark = "✓"
		}
		rows[i] = []string{s.ID.String(), s.Name, s.Email, mark}
	}
	return view{
		data: statsResult{Schedule: stats.Schedule, Summary: summary, Students: students},
		table: ux.Table{
			Title: stats.Schedule.Subject,
			Headers: []string{
				tr.T(i18n.HeaderID), tr.T(i18n.HeaderStudent), tr.T(i18n.HeaderEmail), "",
			},
			Rows:   rows,
			Empty:  tr.T(i18n.NoData),
			Footer: tr.T(i18n.StatsSummary, summary.Present, summary.Total, summary.Percent),
		},
	}
}

// profile is what whoami shows.
type profile struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Email       string   `json:"email" yaml:"email"`
	PhoneNumber string   `json:"phoneNumber,omitempty" yaml:"phoneNumber,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	GroupID     string   `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	GroupName   string   `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	Roles       []string `json:"roles" yaml:"roles"`
}

func profileView(tr *i18n.Translator, sess *session.Session, loc *time.Location) view {
	p := profile{
		ID:          sess.SubjectID.String(),
		Name:        sess.DisplayName,
		Email:       sess.Email,
		PhoneNumber: sess.PhoneNumber,
		DateOfBirth: sess.DateOfBirth,
		GroupID:     sess.GroupID.String(),
		GroupName:   sess.GroupName,
		Roles:       sess.Roles.Names(),
	}
	if p.Roles == nil {
		p.Roles = []string{}
	}

	orNotSet := func(s string) string {
		if s == "" {
			return tr.T(i18n.NotSet)
		}
		return s
	}
	roles := tr.T(i18n.ProfileNoRoles)
	if len(p.Roles) > 0 {
		labels := make([]string, len(p.Roles))
		for i, r := range p.Roles {
			labels[i] = tr.RoleLabel(r)
		}
		roles = strings.Join(labels, ", ")
	}
	birthday := ""
	if p.DateOfBirth != "" {
		birthday = attendance.FormatDate(p.DateOfBirth, loc)
	}

	return view{
		data: p,
		table: ux.Table{
			Title: tr.T(i18n.ProfileHello, orNotSet(p.Name)),
			Rows: [][]string{
				{tr.T(i18n.HeaderID), p.ID},
				{tr.T(i18n.HeaderEmail), orNotSet(p.Email)},
				{tr.T(i18n.HeaderPhone), orNotSet(p.PhoneNumber)},
				{tr.T(i18n.HeaderBirthday), orNotSet(birthday)},
				{tr.T(i18n.HeaderGroup), orNotSet(p.GroupName)},
				{tr.T(i18n.HeaderRole), roles},
			},
		},
	}
}
