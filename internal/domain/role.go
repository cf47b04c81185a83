package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Well-known role names.
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// RoleKind tells which representation a Role was built from.
type RoleKind int

const (
	// RoleKindName is a bare role name such as "teacher".
	RoleKindName RoleKind = iota
	// RoleKindIDRef is a reference to a backend role id, optionally named.
	RoleKindIDRef
)

// Role is a role descriptor. Name is always set for RoleKindName and is
// filled for RoleKindIDRef once resolved through a RoleCatalog.
type Role struct {
	Kind RoleKind
	ID   int
	Name string
}

// NamedRole returns a RoleKindName role.
func NamedRole(name string) Role {
	return Role{Kind: RoleKindName, Name: name}
}

// RoleRef returns a RoleKindIDRef role.
func RoleRef(id int, name string) Role {
	return Role{Kind: RoleKindIDRef, ID: id, Name: name}
}

// Is reports whether the role's name equals name, ignoring case.
func (r Role) Is(name string) bool {
	return r.Name != "" && strings.EqualFold(r.Name, name)
}

// String returns the role name, or "#<id>" for an unresolved reference.
func (r Role) String() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("#%d", r.ID)
}

type roleRef struct {
	ID   *int   `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// MarshalJSON writes names as strings and references as {"id","name"}.
func (r Role) MarshalJSON() ([]byte, error) {
	if r.Kind == RoleKindName {
		return json.Marshal(r.Name)
	}
	id := r.ID
	return json.Marshal(roleRef{ID: &id, Name: r.Name})
}

// UnmarshalJSON accepts "teacher", {"name":"teacher"}, {"id":1} and 1.
func (r *Role) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty role")
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = NamedRole(name)
	case '{':
		var ref roleRef
		if err := json.Unmarshal(data, &ref); err != nil {
			return fmt.Errorf("decode role: %w", err)
		}
		if ref.ID == nil {
			if ref.Name == "" {
				return fmt.Errorf("role object needs id or name")
			}
			*r = NamedRole(ref.Name)
			return nil
		}
		*r = RoleRef(*ref.ID, ref.Name)
	default:
		var id ID
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("decode role: %w", err)
		}
		n, ok := id.Int()
		if !ok {
			return fmt.Errorf("role id %q is not numeric", id)
		}
		*r = RoleRef(n, "")
	}
	return nil
}

// Roles is the role set of a principal.
type Roles []Role

// Has reports whether any role is name, ignoring case.
func (rs Roles) Has(name string) bool {
	return slices.ContainsFunc(rs, func(r Role) bool { return r.Is(name) })
}

// HasAny reports whether any of names is held.
func (rs Roles) HasAny(names ...string) bool {
	return slices.ContainsFunc(names, rs.Has)
}

// Names returns the lower-cased names of resolved roles, in order and
// without duplicates.
func (rs Roles) Names() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if r.Name == "" {
			continue
		}
		name := strings.ToLower(r.Name)
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// ParseRoles decodes a roles field that may be a list, a single role, or
// null.
func ParseRoles(data json.RawMessage) (Roles, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '[' {
		var rs Roles
		if err := json.Unmarshal(data, &rs); err != nil {
			return nil, err
		}
		return rs, nil
	}
	var r Role
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return Roles{r}, nil
}

// RoleCatalog maps backend role ids to names.
type RoleCatalog map[int]string

// DefaultRoleCatalog is the id assignment used by the registration form.
func DefaultRoleCatalog() RoleCatalog {
	return RoleCatalog{1: RoleTeacher, 2: RoleStudent, 3: RoleAdmin}
}

// Resolve fills in the name of an unnamed reference.
func (c RoleCatalog) Resolve(r Role) Role {
	if r.Kind == RoleKindIDRef && r.Name == "" {
		r.Name = c[r.ID]
	}
	return r
}

// ResolveAll resolves every role in rs.
func (c RoleCatalog) ResolveAll(rs Roles) Roles {
	out := make(Roles, len(rs))
	for i, r := range rs {
		out[i] = c.Resolve(r)
	}
	return out
}

// IDOf returns the id registered for name.
func (c RoleCatalog) IDOf(name string) (int, bool) {
	for id, n := range c {
		if strings.EqualFold(n, name) {
			return id, true
		}
	}
	return 0, false
}
