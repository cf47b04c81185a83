package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/uniattend/internal/errors"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.Format = FormatJSON
	cfg.Output = NewOutput(buf)
	return New(cfg), buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn)

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got %q", buf.String())
	}
}

func TestServiceAttributes(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	logger.Info("hello")

	entry := decodeLine(t, buf)
	if entry["service"] != "uniattend" {
		t.Errorf("service = %v, want uniattend", entry["service"])
	}
	if entry["version"] != "dev" {
		t.Errorf("version = %v, want dev", entry["version"])
	}
}

func TestRedaction(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	logger.Info("signing in", "email", "a@b.kz", "password", "hunter22", "accessToken", "eyJ...")

	out := buf.String()
	if strings.Contains(out, "hunter22") || strings.Contains(out, "eyJ...") {
		t.Errorf("secrets leaked into log: %q", out)
	}
	if !strings.Contains(out, "a@b.kz") {
		t.Errorf("non-secret attribute missing: %q", out)
	}
}

func TestWithErrorCoded(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	err := errors.NewStorageError("write", fmt.Errorf("disk full"))

	logger.WithError(fmt.Errorf("login: %w", err)).Error("failed")

	entry := decodeLine(t, buf)
	if entry["error_code"] != string(errors.ErrCodeStorageFailed) {
		t.Errorf("error_code = %v", entry["error_code"])
	}
	if entry["cause"] != "disk full" {
		t.Errorf("cause = %v", entry["cause"])
	}
	if _, ok := entry["suggestions"]; !ok {
		t.Error("suggestions missing")
	}
}

func TestWithErrorPlain(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	logger.WithError(fmt.Errorf("boom")).Error("failed")

	entry := decodeLine(t, buf)
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
	if _, ok := entry["error_code"]; ok {
		t.Error("plain errors should not carry error_code")
	}
}

func TestWithErrorNil(t *testing.T) {
	logger, _ := newBufferLogger(LevelInfo)
	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestRequestIDFromContext(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	ctx := ContextWithRequestID(context.Background(), "req-42")

	logger.InfoContext(ctx, "request sent")

	entry := decodeLine(t, buf)
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should have no request id")
	}
}

func TestLogErrorContext(t *testing.T) {
	logger, buf := newBufferLogger(LevelError)
	logger.LogErrorContext(context.Background(), errors.NewNotLoggedInError())

	entry := decodeLine(t, buf)
	if entry["msg"] != "operation failed" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["error_code"] != string(errors.ErrCodeNotLoggedIn) {
		t.Errorf("error_code = %v", entry["error_code"])
	}

	buf.Reset()
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should write nothing")
	}
}

func TestFromSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "uniattend.log")

	cfg, err := FromSettings("debug", "json", path, "1.2.3")
	if err != nil {
		t.Fatalf("FromSettings() error = %v", err)
	}
	logger := New(cfg)
	logger.Debug("to file")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"version":"1.2.3"`) {
		t.Errorf("log file = %q", data)
	}
	if !cfg.AddSource {
		t.Error("debug level should add source locations")
	}

	if _, err := FromSettings("loud", "", "", "dev"); err == nil {
		t.Error("unknown level should fail")
	}
	if _, err := FromSettings("", "xml", "", "dev"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelWarn,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	defaultLogger = nil
	first := DefaultLogger()
	if first == nil || DefaultLogger() != first {
		t.Fatal("DefaultLogger should lazily create and then reuse one logger")
	}

	custom := Nop()
	SetDefaultLogger(custom)
	if DefaultLogger() != custom {
		t.Error("SetDefaultLogger was not honoured")
	}
}
