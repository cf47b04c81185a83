package authz

import (
	"github.com/felixgeelhaar/uniattend/internal/domain"
)

// PolicyBuilder provides a fluent API for building authorization policies.
type PolicyBuilder struct {
	policy *Policy
}

// NewPolicyBuilder creates a new policy builder.
func NewPolicyBuilder(id, name string) *PolicyBuilder {
	return &PolicyBuilder{
		policy: &Policy{
			ID:      id,
			Name:    name,
			Effect:  EffectAllow,
			Roles:   []string{},
			Actions: []string{},
			Enabled: true,
		},
	}
}

// WithDescription sets the policy description.
func (b *PolicyBuilder) WithDescription(description string) *PolicyBuilder {
	b.policy.Description = description
	return b
}

// WithEffect sets the policy effect (allow or deny).
func (b *PolicyBuilder) WithEffect(effect Effect) *PolicyBuilder {
	b.policy.Effect = effect
	return b
}

// AllowRole adds a role the policy applies to.
func (b *PolicyBuilder) AllowRole(roles ...string) *PolicyBuilder {
	b.policy.Roles = append(b.policy.Roles, roles...)
	return b
}

// OnActions adds actions to the policy.
func (b *PolicyBuilder) OnActions(actions ...Action) *PolicyBuilder {
	for _, a := range actions {
		b.policy.Actions = append(b.policy.Actions, string(a))
	}
	return b
}

// OnResource covers every action on resource.
func (b *PolicyBuilder) OnResource(resource string) *PolicyBuilder {
	b.policy.Actions = append(b.policy.Actions, resource+":*")
	return b
}

// OnAllActions covers every action.
func (b *PolicyBuilder) OnAllActions() *PolicyBuilder {
	b.policy.Actions = []string{"*"}
	return b
}

// Disabled marks the policy as disabled.
func (b *PolicyBuilder) Disabled() *PolicyBuilder {
	b.policy.Enabled = false
	return b
}

// Build returns the constructed policy.
func (b *PolicyBuilder) Build() *Policy {
	return b.policy
}

// NewAdminPolicy gives administrators every action.
func NewAdminPolicy() *Policy {
	return NewPolicyBuilder("admin-full-access", "Admin Full Access").
		WithDescription("Administrators manage participants, groups, subjects and schedules").
		AllowRole(domain.RoleAdmin).
		OnAllActions().
		Build()
}

// NewTeacherPolicy covers teaching: schedules, attendance codes, journals
// and the groups and subjects taught.
func NewTeacherPolicy() *Policy {
	return NewPolicyBuilder("teacher", "Teacher Policy").
		WithDescription("Teachers run classes and issue attendance codes").
		AllowRole(domain.RoleTeacher).
		OnActions(
			ActionDashboardView,
			ActionScheduleRead,
			ActionScheduleCreate,
			ActionQRGenerate,
			ActionJournalRead,
			ActionStatsRead,
			ActionGroupMembers,
		).
		OnResource("group").
		OnResource("subject").
		Build()
}

// NewStudentPolicy lets students see their group's schedule.
func NewStudentPolicy() *Policy {
	return NewPolicyBuilder("student", "Student Policy").
		WithDescription("Students see the schedule of their group").
		AllowRole(domain.RoleStudent).
		OnActions(ActionScheduleRead).
		Build()
}

// NewProfilePolicy lets any signed-in principal read its own profile.
func NewProfilePolicy() *Policy {
	return NewPolicyBuilder("profile", "Own Profile").
		OnActions(ActionProfileRead).
		Build()
}

// DefaultPolicies returns the built-in policy set.
func DefaultPolicies() []*Policy {
	return []*Policy{
		NewAdminPolicy(),
		NewTeacherPolicy(),
		NewStudentPolicy(),
		NewProfilePolicy(),
	}
}
