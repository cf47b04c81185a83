package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(ptr func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error { *ptr(c) = v; return nil },
	}
}

var fields = map[string]field{
	"api_url": stringField(func(c *Config) *string { return &c.APIURL }),
	"http_timeout": {
		get: func(c *Config) string { return c.HTTPTimeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			c.HTTPTimeout = d
			return nil
		},
	},
	"locale":                 stringField(func(c *Config) *string { return &c.Locale }),
	"storage.backend":        stringField(func(c *Config) *string { return &c.Storage.Backend }),
	"storage.path":           stringField(func(c *Config) *string { return &c.Storage.Path }),
	"storage.redis.addr":     stringField(func(c *Config) *string { return &c.Storage.Redis.Addr }),
	"storage.redis.password": stringField(func(c *Config) *string { return &c.Storage.Redis.Password }),
	"storage.redis.prefix":   stringField(func(c *Config) *string { return &c.Storage.Redis.Prefix }),
	"storage.redis.db": {
		get: func(c *Config) string { return strconv.Itoa(c.Storage.Redis.DB) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			c.Storage.Redis.DB = n
			return nil
		},
	},
	"logging.level":  stringField(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format": stringField(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":   stringField(func(c *Config) *string { return &c.Logging.File }),
	"output.format":  stringField(func(c *Config) *string { return &c.Output.Format }),
	"output.no_color": {
		get: func(c *Config) string { return strconv.FormatBool(c.Output.NoColor) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			c.Output.NoColor = b
			return nil
		},
	},
}

// Keys lists every settable key in sorted order. Role names are set with
// "roles.<id>".
func Keys() []string {
	keys := make([]string, 0, len(fields)+1)
	for k := range fields {
		keys = append(keys, k)
	}
	keys = append(keys, "roles.<id>")
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key.
func (c *Config) Get(key string) (string, error) {
	if id, ok := roleKey(key); ok {
		return c.RoleCatalog()[id], nil
	}
	f, ok := fields[key]
	if !ok {
		return "", unknownKey(key)
	}
	return f.get(c), nil
}

// Set assigns a dotted key from its string form.
func (c *Config) Set(key, value string) error {
	if id, ok := roleKey(key); ok {
		if c.Roles == nil {
			c.Roles = map[int]string{}
		}
		c.Roles[id] = value
		return nil
	}
	f, ok := fields[key]
	if !ok {
		return unknownKey(key)
	}
	if err := f.set(c, value); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid value for %s", key), err)
	}
	return nil
}

func roleKey(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "roles.")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	return id, err == nil
}

func unknownKey(key string) error {
	return errors.New(errors.ErrCodeConfigUnknownKey, fmt.Sprintf("unknown configuration key: %s", key)).
		WithSuggestion("Known keys: " + strings.Join(Keys(), ", "))
}
