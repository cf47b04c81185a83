// Package i18n holds the user-visible message catalog in English, Kazakh
// and Russian and picks the closest one for the requested locale.
package i18n

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// Supported lists the catalog languages in matcher preference order.
var Supported = []language.Tag{language.English, language.Kazakh, language.Russian}

var (
	matcher = language.NewMatcher(Supported)
	cat     = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, texts := range messages {
		for i, tag := range Supported {
			if err := b.SetString(tag, string(key), texts[i]); err != nil {
				panic(fmt.Sprintf("i18n: register %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

// codeMessages maps error codes to the message shown instead of the raw
// error text.
var codeMessages = map[errors.ErrorCode]Key{
	errors.ErrCodeInvalidEmail:     LoginInvalidEmail,
	errors.ErrCodePasswordTooShort: LoginPasswordShort,
	errors.ErrCodeNotLoggedIn:      SessionNotLoggedIn,
	errors.ErrCodeForbidden:        AccessDenied,
	errors.ErrCodeSessionExpired:   SessionExpired,
	errors.ErrCodeSessionInvalid:   TokenMissing,
	errors.ErrCodeSessionLoading:   Loading,
	errors.ErrCodeMissingContext:   QRMissingContext,
	errors.ErrCodeNetwork:          NetworkFailed,
	errors.ErrCodeInputRequired:    FieldsRequired,
}

// Translator renders catalog messages for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for the supported language closest to locale.
// An empty locale falls back to LC_ALL, LC_MESSAGES and LANG.
func New(locale string) *Translator {
	tag := Match(locale)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Match resolves locale (BCP 47 or POSIX form such as "kk_KZ.UTF-8") to
// one of Supported.
func Match(locale string) language.Tag {
	if strings.TrimSpace(locale) == "" {
		locale = environmentLocale()
	}
	locale = posixToBCP47(locale)
	if locale == "" {
		return language.English
	}
	_, idx, conf := matcher.Match(language.Make(locale))
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

func environmentLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}

func posixToBCP47(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Tag returns the language in use.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T formats the message for key with args.
func (t *Translator) T(key Key, args ...any) string {
	return t.printer.Sprintf(string(key), args...)
}

// userMessager is implemented by errors that carry text written for the
// end user, such as backend error messages.
type userMessager interface {
	UserMessage() string
}

// Describe returns the localized, user-facing text for err: the catalog
// entry for its code, else a backend message found in the chain
// (verbatim), else the error's own message.
func (t *Translator) Describe(err error) string {
	if err == nil {
		return ""
	}
	var uaErr *errors.UniAttendError
	hasCode := stderrors.As(err, &uaErr)
	if hasCode {
		if key, ok := codeMessages[uaErr.Code]; ok {
			return t.T(key)
		}
	}
	var um userMessager
	if stderrors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	if hasCode && uaErr.Message != "" {
		return uaErr.Message
	}
	return err.Error()
}

// RoleLabel returns the display label for a role name.
func (t *Translator) RoleLabel(name string) string {
	switch strings.ToLower(name) {
	case "teacher":
		return t.T(RoleTeacher)
	case "student":
		return t.T(RoleStudent)
	case "admin":
		return t.T(RoleAdmin)
	default:
		return t.T(RoleUnknown)
	}
}
