package i18n

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"en", language.English},
		{"en-GB", language.English},
		{"kk", language.Kazakh},
		{"kk_KZ.UTF-8", language.Kazakh},
		{"ru-RU", language.Russian},
		{"ru_RU@euro", language.Russian},
		{"ja", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.locale))
		})
	}
}

func TestMatchFromEnvironment(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ru_RU.UTF-8")
	assert.Equal(t, language.Russian, Match(""))

	t.Setenv("LANG", "C")
	assert.Equal(t, language.English, Match(""))
}

func TestEveryKeyTranslated(t *testing.T) {
	for key, texts := range messages {
		for i, text := range texts {
			assert.NotEmpty(t, text, "%s has no %s text", key, Supported[i])
		}
		// Translations must agree on verbs so args format the same way.
		assert.Equal(t, strings.Count(texts[0], "%"), strings.Count(texts[1], "%"), "verb mismatch for %s (kk)", key)
		assert.Equal(t, strings.Count(texts[0], "%"), strings.Count(texts[2], "%"), "verb mismatch for %s (ru)", key)
	}
}

func TestTranslate(t *testing.T) {
	kk := New("kk")
	assert.Equal(t, "Сессия мерзімі аяқталды. Қайта кіріңіз", kk.T(SessionExpired))
	assert.Equal(t, "7 секундтан кейін жаңартылады", kk.T(QRCountdown, 7))

	en := New("en")
	assert.Equal(t, "Refreshes in 10 s", en.T(QRCountdown, 10))
	assert.Equal(t, "Present: 3 of 4 (75.0%)", en.T(StatsSummary, 3, 4, 75.0))

	ru := New("ru")
	assert.Equal(t, "Доступ запрещён", ru.T(AccessDenied))
}

func TestDescribe(t *testing.T) {
	tr := New("en")

	assert.Equal(t, "Session expired. Please sign in again", tr.Describe(errors.NewSessionExpiredError(nil)))
	assert.Equal(t, "Invalid email format", tr.Describe(fmt.Errorf("login: %w", errors.New(errors.ErrCodeInvalidEmail, "bad"))))

	// Backend messages pass through untouched.
	apiErr := errors.Wrap(errors.ErrCodeAPIRequest, "GET /x failed", backendErr("Пользователь не найден"))
	assert.Equal(t, "Пользователь не найден", tr.Describe(apiErr))
	assert.Equal(t, "GET /x failed", tr.Describe(errors.Wrap(errors.ErrCodeAPIRequest, "GET /x failed", backendErr(""))))

	assert.Equal(t, "plain", tr.Describe(fmt.Errorf("plain")))
	assert.Empty(t, tr.Describe(nil))
}

func TestRoleLabel(t *testing.T) {
	tr := New("kk")
	require.Equal(t, language.Kazakh, tr.Tag())

	assert.Equal(t, "Оқытушы", tr.RoleLabel("TEACHER"))
	assert.Equal(t, "Студент", tr.RoleLabel("student"))
	assert.Equal(t, "Әкімші", tr.RoleLabel("admin"))
	assert.Equal(t, "Белгісіз рөл", tr.RoleLabel("dean"))
}

type backendErr string

func (e backendErr) Error() string       { return string(e) }
func (e backendErr) UserMessage() string { return string(e) }
