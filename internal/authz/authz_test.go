package authz

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/session"
	"github.com/felixgeelhaar/uniattend/internal/storage"
)

func sessionWith(roles ...string) *session.Session {
	rs := make(domain.Roles, 0, len(roles))
	for _, r := range roles {
		rs = append(rs, domain.NamedRole(r))
	}
	return &session.Session{SubjectID: "7", Roles: rs, AccessToken: "tok"}
}

func TestEvaluateDefaultPolicies(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name    string
		roles   []string
		action  Action
		allowed bool
	}{
		{"teacher generates codes", []string{"teacher"}, ActionQRGenerate, true},
		{"teacher creates schedule", []string{"teacher"}, ActionScheduleCreate, true},
		{"teacher manages groups", []string{"Teacher"}, ActionGroupWrite, true},
		{"teacher cannot register users", []string{"teacher"}, ActionUserWrite, false},
		{"teacher cannot assign lecturers", []string{"teacher"}, ActionScheduleAssign, false},
		{"student reads schedule", []string{"student"}, ActionScheduleRead, true},
		{"student cannot generate codes", []string{"student"}, ActionQRGenerate, false},
		{"student cannot see dashboard", []string{"STUDENT"}, ActionDashboardView, false},
		{"admin does everything", []string{"admin"}, ActionUserWrite, true},
		{"admin assigns lecturers", []string{"admin"}, ActionScheduleAssign, true},
		{"anyone reads own profile", nil, ActionProfileRead, true},
		{"no roles cannot read schedule", nil, ActionScheduleRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := engine.Evaluate(sessionWith(tt.roles...), tt.action)
			assert.Equal(t, tt.allowed, d.Allowed, d.Reason)
			if tt.allowed {
				assert.NotEmpty(t, d.PolicyIDs)
			}
		})
	}
}

func TestEvaluateNilSession(t *testing.T) {
	d := NewEngine(nil).Evaluate(nil, ActionProfileRead)
	assert.False(t, d.Allowed)
	assert.Equal(t, "no authenticated subject", d.Reason)
}

func TestExplicitDenyWins(t *testing.T) {
	engine := NewEngine(nil,
		NewAdminPolicy(),
		NewPolicyBuilder("freeze", "Freeze Users").
			WithEffect(EffectDeny).
			AllowRole(domain.RoleAdmin).
			OnResource("user").
			Build(),
	)

	d := engine.Evaluate(sessionWith("admin"), ActionUserWrite)
	assert.False(t, d.Allowed)
	assert.Equal(t, []string{"freeze"}, d.PolicyIDs)

	assert.True(t, engine.Evaluate(sessionWith("admin"), ActionGroupWrite).Allowed)
}

func TestDisabledPolicyIsIgnored(t *testing.T) {
	engine := NewEngine(nil, NewPolicyBuilder("off", "Off").AllowRole("student").OnAllActions().Disabled().Build())
	assert.False(t, engine.Evaluate(sessionWith("student"), ActionScheduleRead).Allowed)
}

func TestActionMatches(t *testing.T) {
	tests := []struct {
		pattern string
		action  Action
		want    bool
	}{
		{"*", ActionUserWrite, true},
		{"qr:generate", ActionQRGenerate, true},
		{"qr:generate", ActionQRGenerate + "x", false},
		{"group:*", ActionGroupMembers, true},
		{"group:*", ActionSubjectRead, false},
		{"*:read", ActionJournalRead, true},
		{"*:read", ActionGroupWrite, false},
	}
	for _, tt := range tests {
		if got := actionMatches([]string{tt.pattern}, tt.action); got != tt.want {
			t.Errorf("actionMatches(%q, %q) = %v, want %v", tt.pattern, tt.action, got, tt.want)
		}
	}
}

func TestRolesFor(t *testing.T) {
	engine := NewEngine(nil)

	assert.Equal(t, []string{"admin", "teacher"}, engine.RolesFor(ActionQRGenerate))
	assert.Equal(t, []string{"admin"}, engine.RolesFor(ActionUserWrite))
	assert.Equal(t, []string{"admin", "teacher", "student"}, engine.RolesFor(ActionScheduleRead))
	assert.Nil(t, engine.RolesFor(ActionProfileRead))
	assert.Equal(t, "qr", ActionQRGenerate.Resource())
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(storage.NewMemoryStore())
	engine := NewEngine(nil)

	_, err := engine.Require(ctx, store, ActionQRGenerate)
	assert.True(t, errors.HasCode(err, errors.ErrCodeSessionLoading))

	require.NoError(t, store.Hydrate(ctx))
	_, err = engine.Require(ctx, store, ActionQRGenerate)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotLoggedIn))

	_, err = store.Login(ctx, session.Principal{
		ID:          "9",
		Roles:       json.RawMessage(`["student"]`),
		AccessToken: "tok",
	})
	require.NoError(t, err)

	_, err = engine.Require(ctx, store, ActionQRGenerate)
	require.True(t, errors.HasCode(err, errors.ErrCodeForbidden))
	assert.Contains(t, err.Error(), "admin or teacher")

	sess, err := engine.Require(ctx, store, ActionScheduleRead)
	require.NoError(t, err)
	assert.Equal(t, domain.ID("9"), sess.SubjectID)
}
