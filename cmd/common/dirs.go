package common

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the pwforge config directory (~/.pwforge).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pwforge"
	}
	return filepath.Join(home, ".pwforge")
}
