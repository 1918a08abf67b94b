// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package util holds small helpers shared by the export pipeline.
package util

import (
	"fmt"
	"regexp"
	"strings"
)

// maxFilenameLen caps sanitized names, "..." suffix included.
const maxFilenameLen = 100

// unsafeChars maps filesystem-hostile characters to underscores.
var unsafeChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "/", "_",
	`\`, "_", "|", "_", "?", "_", "*", "_",
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeFilename turns an arbitrary card, list, or attachment name into a
// safe filename component. Hostile characters become underscores, whitespace
// runs collapse to single spaces, surrounding whitespace is trimmed, and
// names longer than 100 characters are truncated with a "..." suffix.
// Empty input becomes "unnamed".
func SanitizeFilename(name string) string {
	s := unsafeChars.Replace(name)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return "unnamed"
	}
	if r := []rune(s); len(r) > maxFilenameLen {
		return string(r[:maxFilenameLen-3]) + "..."
	}
	return s
}

// FormatSize renders a declared attachment size for human readers.
// A nil size (the export omitted the byte count) renders as "unknown".
func FormatSize(b *int64) string {
	if b == nil {
		return "unknown"
	}
	n := *b
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d bytes", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	case n < 1<<30:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	default:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	}
}
