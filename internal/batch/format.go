package batch

import (
	"os"
	"strings"
)

// ShortenPath abbreviates the user's home directory to ~ in an executable
// path. ps reports full paths on macOS, which crowd the COMMAND column.
func ShortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return shortenHome(path, home)
}

// shortenHome only rewrites whole path components, so /home/al never
// shortens /home/alice.
func shortenHome(path, home string) string {
	home = strings.TrimRight(home, `/\`)
	if home == "" || !strings.HasPrefix(path, home) {
		return path
	}
	rest := path[len(home):]
	if rest != "" && rest[0] != '/' && rest[0] != '\\' {
		return path
	}
	return "~" + rest
}

// Truncate shortens a string to maxLen runes
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
