package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is an opaque backend identifier. The backend sends ids both as JSON
// numbers and as strings; both decode to the same ID.
type ID string

// ParseID validates a user-supplied identifier.
func ParseID(value string) (ID, error) {
	id := ID(value)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

// Validate rejects empty ids and ids containing a path separator.
func (id ID) Validate() error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if bytes.ContainsAny([]byte(id), "/?#") {
		return fmt.Errorf("id %q contains reserved characters", string(id))
	}
	return nil
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// Int returns the numeric value of a numeric id.
func (id ID) Int() (int, bool) {
	n, err := strconv.Atoi(string(id))
	return n, err == nil
}

// MarshalJSON writes numeric ids as numbers, everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, ok := id.Int(); ok && strconv.Itoa(n) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a number, a string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("id must be a number or string: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}
