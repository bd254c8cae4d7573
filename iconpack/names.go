package iconpack

import (
	"path/filepath"
	"strconv"
	"strings"
)

// NormalizeName turns a free-text pack name into its canonical directory and
// registry key: lowercase with every whitespace run collapsed to a single
// hyphen. The transform is idempotent.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// DerivePrefix builds the short identifier editors use to reference a pack's
// icons: the first letter of every hyphen-separated word ("my-pack" -> "mp").
// Collisions with already-taken prefixes get a numeric suffix.
func DerivePrefix(name string, taken map[string]bool) string {
	var b strings.Builder
	for _, word := range strings.Split(name, "-") {
		if word == "" {
			continue
		}
		b.WriteByte(word[0])
	}
	prefix := b.String()
	if prefix == "" {
		prefix = "p"
	}
	if !taken[prefix] {
		return prefix
	}
	for i := 2; ; i++ {
		candidate := prefix + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// IconNameFromPath derives the registry icon name from a file path: its
// final segment, extension included.
func IconNameFromPath(path string) string {
	// Paths may come from the host with forward slashes regardless of OS.
	return filepath.Base(strings.ReplaceAll(path, "\\", "/"))
}
