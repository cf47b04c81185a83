package issuance

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
)

// pngPrefix is prepended to codes the backend sends as bare base64.
const pngPrefix = "data:image/png;base64,"

// Code is one attendance code as issued by the backend.
type Code struct {
	Image       string    `json:"image" yaml:"-"`
	ScheduleRef domain.ID `json:"scheduleRef" yaml:"scheduleRef"`
	IssuedAt    time.Time `json:"issuedAt" yaml:"issuedAt"`
	Digest      string    `json:"digest" yaml:"digest"`
}

// NormalizeImage turns a backend qrCode value into a data URI.
func NormalizeImage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:image") {
		return raw
	}
	return pngPrefix + raw
}

// Digest is a short BLAKE3 fingerprint of image, safe to log.
func Digest(image string) string {
	sum := blake3.Sum256([]byte(image))
	return hex.EncodeToString(sum[:8])
}

// NewCode normalizes raw into a Code issued at for ref. An empty value
// is a failed issuance.
func NewCode(raw string, ref domain.ID, at time.Time) (Code, error) {
	image := NormalizeImage(raw)
	if image == "" {
		return Code{}, errors.New(errors.ErrCodeIssueFailed, "backend returned an empty code")
	}
	return Code{
		Image:       image,
		ScheduleRef: ref,
		IssuedAt:    at,
		Digest:      Digest(image),
	}, nil
}

// ExpiresAt is the end of the code's display window.
func (c Code) ExpiresAt() time.Time {
	return c.IssuedAt.Add(Window)
}

// Bytes decodes the base64 payload of the data URI.
func (c Code) Bytes() ([]byte, error) {
	header, payload, ok := strings.Cut(c.Image, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, errors.New(errors.ErrCodeCodeUnreadable, "code is not a base64 data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCodeUnreadable, "code payload is not valid base64", err)
	}
	return data, nil
}
