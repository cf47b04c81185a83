package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode"

	"pgregory.net/rapid"
)

// genRoleName draws names around "teacher" in random case plus other roles.
func genRoleName() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		base := rapid.SampledFrom([]string{"teacher", "student", "admin", "teachers", "teach", ""}).Draw(t, "base")
		var sb strings.Builder
		for i, r := range base {
			if rapid.Bool().Draw(t, "upper_"+string(rune('a'+i%26))) {
				sb.WriteRune(unicode.ToUpper(r))
			} else {
				sb.WriteRune(r)
			}
		}
		return sb.String()
	})
}

// genRoleJSON encodes a name as a bare string or a {name} object.
func genRoleJSON(name string) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		encoded, _ := json.Marshal(name)
		if rapid.Bool().Draw(t, "as_object") {
			return `{"name":` + string(encoded) + `}`
		}
		return string(encoded)
	})
}

// TestRoles_HasMatchesCaseInsensitiveMembership checks Has against a
// straightforward reference over every input representation.
func TestRoles_HasMatchesCaseInsensitiveMembership(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := rapid.SliceOfN(genRoleName(), 0, 5).Draw(t, "names")

		elems := make([]string, 0, len(names))
		for _, name := range names {
			if name == "" {
				continue
			}
			elems = append(elems, genRoleJSON(name).Draw(t, "elem"))
		}

		rs, err := ParseRoles(json.RawMessage("[" + strings.Join(elems, ",") + "]"))
		if err != nil {
			t.Fatalf("ParseRoles failed: %v", err)
		}

		want := false
		for _, name := range names {
			if strings.ToLower(name) == "teacher" {
				want = true
			}
		}
		if got := rs.Has("teacher"); got != want {
			t.Fatalf("Has(teacher) = %v, want %v for %v", got, want, names)
		}
	})
}

// TestRoles_JSONRoundTrip checks that any role set survives persistence.
func TestRoles_JSONRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 4).Draw(t, "n")
		rs := make(Roles, 0, n)
		for i := 0; i < n; i++ {
			name := genRoleName().Draw(t, "name")
			if rapid.Bool().Draw(t, "ref") {
				rs = append(rs, RoleRef(rapid.IntRange(1, 9).Draw(t, "id"), name))
			} else if name != "" {
				rs = append(rs, NamedRole(name))
			}
		}

		data, err := json.Marshal(rs)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Roles
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if len(back) != len(rs) {
			t.Fatalf("length changed: %v -> %v", rs, back)
		}
		for i := range rs {
			if back[i] != rs[i] {
				t.Fatalf("role %d changed: %+v -> %+v", i, rs[i], back[i])
			}
		}
	})
}
