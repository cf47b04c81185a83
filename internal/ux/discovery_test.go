package ux

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFrom(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := discoverFrom(nested, ".env"); got != "" {
		t.Errorf("discoverFrom() = %q, want none", got)
	}

	envPath := filepath.Join(root, "a", ".env")
	if err := os.WriteFile(envPath, []byte("UNIATTEND_API_URL=http://x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := discoverFrom(nested, ".env"); got != envPath {
		t.Errorf("discoverFrom() = %q, want %q", got, envPath)
	}
}

func TestDiscoverFromStopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	nested := filepath.Join(repo, "pkg")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("X=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := discoverFrom(nested, ".env"); got != "" {
		t.Errorf("discoverFrom() = %q, want search to stop at the git root", got)
	}
}
