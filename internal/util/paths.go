package util

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir is $XDG_DATA_HOME/<app>, falling back to ~/.local/share/<app>.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}

// ReportsDir is where generated PDF reports land.
func ReportsDir(app string) string {
	return filepath.Join(documentsDir(), app, "reports")
}

func documentsDir() string {
	home, _ := os.UserHomeDir()
	if base := strings.TrimSpace(os.Getenv("XDG_DOCUMENTS_DIR")); base != "" {
		return expandHome(base, home)
	}
	if home == "" {
		return "."
	}
	if data, err := os.ReadFile(filepath.Join(home, ".config", "user-dirs.dirs")); err == nil {
		if dir := userDirEntry(string(data), "XDG_DOCUMENTS_DIR"); dir != "" {
			return expandHome(dir, home)
		}
	}
	return filepath.Join(home, "Documents")
}

// userDirEntry reads KEY="value" out of a user-dirs.dirs file.
func userDirEntry(data, key string) string {
	for _, line := range strings.Split(data, "\n") {
		value, ok := strings.CutPrefix(strings.TrimSpace(line), key+"=")
		if ok {
			return strings.Trim(value, "\"")
		}
	}
	return ""
}

func expandHome(path, home string) string {
	return strings.ReplaceAll(path, "$HOME", home)
}
