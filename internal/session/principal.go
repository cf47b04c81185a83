package session

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// Principal is the raw profile the backend returns on sign-in. Roles
// arrive either as roleId or as a roles list, and the birth date as
// birthday or dateOfBirth.
type Principal struct {
	ID          domain.ID       `json:"id"`
	Email       string          `json:"email,omitempty"`
	Name        string          `json:"name,omitempty"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Birthday    string          `json:"birthday,omitempty"`
	DateOfBirth string          `json:"dateOfBirth,omitempty"`
	RoleID      domain.ID       `json:"roleId,omitempty"`
	Roles       json.RawMessage `json:"roles,omitempty"`
	GroupID     domain.ID       `json:"groupId,omitempty"`
	GroupName   string          `json:"groupName,omitempty"`
	AccessToken string          `json:"accessToken,omitempty"`
}

// Session is the authenticated identity. It is also the persisted form
// stored under the "user" key.
type Session struct {
	SubjectID   domain.ID    `json:"id" yaml:"id"`
	Email       string       `json:"email,omitempty" yaml:"email,omitempty"`
	DisplayName string       `json:"name,omitempty" yaml:"name,omitempty"`
	PhoneNumber string       `json:"phoneNumber,omitempty" yaml:"phoneNumber,omitempty"`
	DateOfBirth string       `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	Roles       domain.Roles `json:"roles" yaml:"-"`
	GroupID     domain.ID    `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	GroupName   string       `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	AccessToken string       `json:"accessToken" yaml:"-"`
}

// HasRole reports whether the session holds name, ignoring case.
func (s *Session) HasRole(name string) bool {
	return s != nil && s.Roles.Has(name)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Roles = slices.Clone(s.Roles)
	return &c
}

// Normalize turns a Principal into a Session. roleId takes precedence
// over roles; unnamed role references are resolved through catalog.
func Normalize(p Principal, catalog domain.RoleCatalog) (*Session, error) {
	if p.AccessToken == "" {
		return nil, errors.New(errors.ErrCodeSessionInvalid, "access token is missing")
	}
	if p.ID.IsZero() {
		return nil, errors.New(errors.ErrCodeSessionInvalid, "user id is missing")
	}

	var roles domain.Roles
	if n, ok := p.RoleID.Int(); ok {
		roles = domain.Roles{domain.RoleRef(n, "")}
	} else {
		parsed, err := domain.ParseRoles(p.Roles)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSessionInvalid, "roles are malformed", err)
		}
		roles = parsed
	}
	if catalog != nil {
		roles = catalog.ResolveAll(roles)
	}
	if roles == nil {
		roles = domain.Roles{}
	}

	dob := p.Birthday
	if dob == "" {
		dob = p.DateOfBirth
	}

	return &Session{
		SubjectID:   p.ID,
		Email:       p.Email,
		DisplayName: p.Name,
		PhoneNumber: p.PhoneNumber,
		DateOfBirth: dob,
		Roles:       roles,
		GroupID:     p.GroupID,
		GroupName:   p.GroupName,
		AccessToken: p.AccessToken,
	}, nil
}

// TokenExpiry returns the exp claim of a JWT access token. The signature
// is not checked; opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
