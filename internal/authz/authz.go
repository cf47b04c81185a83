// Package authz decides which roles may perform which actions.
package authz

import (
	"context"
	"slices"
	"strings"

	"github.com/felixgeelhaar/uniattend/internal/errors"
	"github.com/felixgeelhaar/uniattend/internal/log"
	"github.com/felixgeelhaar/uniattend/internal/session"
)

// Effect represents the effect of a policy decision (allow or deny).
type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

// Action is a "resource:verb" pair such as "qr:generate".
type Action string

const (
	ActionDashboardView  Action = "dashboard:view"
	ActionProfileRead    Action = "profile:read"
	ActionScheduleRead   Action = "schedule:read"
	ActionScheduleCreate Action = "schedule:create"
	ActionScheduleAssign Action = "schedule:assign"
	ActionQRGenerate     Action = "qr:generate"
	ActionJournalRead    Action = "journal:read"
	ActionStatsRead      Action = "stats:read"
	ActionGroupRead      Action = "group:read"
	ActionGroupMembers   Action = "group:members"
	ActionGroupWrite     Action = "group:write"
	ActionSubjectRead    Action = "subject:read"
	ActionSubjectWrite   Action = "subject:write"
	ActionUserRead       Action = "user:read"
	ActionUserWrite      Action = "user:write"
)

// Resource returns the part before the colon.
func (a Action) Resource() string {
	s := string(a)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[:i]
	}
	return s
}

// Policy grants or denies actions to roles.
type Policy struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Effect      Effect   `json:"effect" yaml:"effect"`
	Roles       []string `json:"roles" yaml:"roles"`     // empty matches any signed-in principal
	Actions     []string `json:"actions" yaml:"actions"` // e.g. ["qr:generate", "group:*", "*:read"]
	Enabled     bool     `json:"enabled" yaml:"enabled"`
}

// Decision represents the result of an authorization evaluation.
type Decision struct {
	Allowed   bool     `json:"allowed"`
	Reason    string   `json:"reason"`
	PolicyIDs []string `json:"policy_ids"`
}

// Engine evaluates actions against a fixed set of policies.
type Engine struct {
	policies []*Policy
	logger   *log.Logger
}

// NewEngine creates an engine. With no policies it uses DefaultPolicies.
func NewEngine(logger *log.Logger, policies ...*Policy) *Engine {
	if len(policies) == 0 {
		policies = DefaultPolicies()
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Engine{policies: policies, logger: logger}
}

// Evaluate decides whether sess may perform action.
//
// Evaluation follows the usual IAM order:
// 1. Default decision: deny
// 2. Any matching deny policy denies
// 3. Otherwise any matching allow policy allows
func (e *Engine) Evaluate(sess *session.Session, action Action) Decision {
	decision := Decision{
		Reason:    "no matching policy found (default deny)",
		PolicyIDs: []string{},
	}
	if sess == nil {
		decision.Reason = "no authenticated subject"
		return decision
	}

	var denyPolicies, allowPolicies []string
	for _, p := range e.policies {
		if !p.Enabled || !rolesMatch(p.Roles, sess) || !actionMatches(p.Actions, action) {
			continue
		}
		switch p.Effect {
		case EffectDeny:
			denyPolicies = append(denyPolicies, p.ID)
		case EffectAllow:
			allowPolicies = append(allowPolicies, p.ID)
		}
	}

	switch {
	case len(denyPolicies) > 0:
		decision.Reason = "access explicitly denied by policy"
		decision.PolicyIDs = denyPolicies
	case len(allowPolicies) > 0:
		decision.Allowed = true
		decision.Reason = "access granted by policy"
		decision.PolicyIDs = allowPolicies
	}
	return decision
}

// RolesFor lists the roles some allow policy grants action to, in policy
// order. An allow policy without roles yields nil.
func (e *Engine) RolesFor(action Action) []string {
	var roles []string
	for _, p := range e.policies {
		if !p.Enabled || p.Effect != EffectAllow || !actionMatches(p.Actions, action) {
			continue
		}
		if len(p.Roles) == 0 {
			return nil
		}
		for _, r := range p.Roles {
			if !slices.Contains(roles, r) {
				roles = append(roles, r)
			}
		}
	}
	return roles
}

// Require returns the current session when it may perform action. It
// fails with the store's loading or not-logged-in error, or with a
// forbidden error naming the roles that would be accepted.
func (e *Engine) Require(ctx context.Context, store *session.Store, action Action) (*session.Session, error) {
	sess, err := store.Require()
	if err != nil {
		return nil, err
	}

	decision := e.Evaluate(sess, action)
	e.logger.DebugContext(ctx, "authorization decision",
		"action", string(action),
		"allowed", decision.Allowed,
		"reason", decision.Reason,
		"policies", decision.PolicyIDs,
	)
	if !decision.Allowed {
		return nil, errors.NewForbiddenError(e.RolesFor(action)...)
	}
	return sess, nil
}

func rolesMatch(roles []string, sess *session.Session) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if sess.HasRole(r) {
			return true
		}
	}
	return false
}

// actionMatches supports "*", "group:*" and "*:read".
func actionMatches(patterns []string, action Action) bool {
	requested := string(action)
	for _, pattern := range patterns {
		switch {
		case pattern == "*" || pattern == requested:
			return true
		case strings.HasSuffix(pattern, ":*"):
			if strings.HasPrefix(requested, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		case strings.HasPrefix(pattern, "*:"):
			if strings.HasSuffix(requested, strings.TrimPrefix(pattern, "*")) {
				return true
			}
		}
	}
	return false
}
