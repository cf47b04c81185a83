package ux

import (
	"os"
	"path/filepath"
)

// DiscoverEnvFile searches for a .env file in the current directory and
// its parents, stopping at the git root. It returns "" when none exists.
func DiscoverEnvFile() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return discoverFrom(cwd, ".env")
}

func discoverFrom(dir, filename string) string {
	for {
		path := filepath.Join(dir, filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}

		// Stop at git root
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
