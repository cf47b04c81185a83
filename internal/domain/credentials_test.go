package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		code  errors.ErrorCode
	}{
		{"valid", Credentials{Email: "a@b.com", Password: "secret1"}, ""},
		{"exactly six", Credentials{Email: "a@b.com", Password: "123456"}, ""},
		{"cyrillic password", Credentials{Email: "a@b.kz", Password: "құпиясөз"}, ""},
		{"missing at", Credentials{Email: "ab.com", Password: "secret1"}, errors.ErrCodeInvalidEmail},
		{"bare at sign is enough", Credentials{Email: "@b.com", Password: "secret1"}, ""},
		{"empty domain is left to the backend", Credentials{Email: "a@", Password: "secret1"}, ""},
		{"blank", Credentials{Email: "   ", Password: "secret1"}, errors.ErrCodeInvalidEmail},
		{"five characters is too short", Credentials{Email: "a@b.com", Password: "12345"}, errors.ErrCodePasswordTooShort},
		{"five runes is too short", Credentials{Email: "a@b.com", Password: "құпия"}, errors.ErrCodePasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}
