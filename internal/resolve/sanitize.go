package resolve

import (
	"strings"
)

// Sentinel is the destination used when no confident suggestion exists.
const Sentinel = "Uncategorized"

// MaxSegments bounds the depth of any resolved path.
const MaxSegments = 3

const (
	maxPathLength    = 200
	maxSegmentLength = 50
)

var rejectWords = map[string]bool{
	"error":     true,
	"none":      true,
	"null":      true,
	"undefined": true,
	"unknown":   true,
}

// Prefix phrases an oracle tends to glue onto the path proper.
var pathPrefixes = []string{
	"the path is",
	"the folder is",
	"suggested path:",
	"folder path:",
	"path:",
}

const invalidChars = `<>:"|?*`

// Sanitize normalizes a raw path string into a safe, bounded form. It
// never returns an empty string; input without a usable path collapses
// to the Sentinel. The single-pass rules are iterated to a fixpoint, so
// sanitizing an already sanitized value is a no-op even when one pass
// exposes work for the next, as with nested quoting.
func Sanitize(raw string) string {
	cur := raw
	for {
		next := sanitizeOnce(cur)
		if next == cur || next == Sentinel {
			return next
		}
		cur = next
	}
}

// sanitizeOnce applies one round of normalization: trim to the first
// line, reject placeholder words, peel one quote pair, normalize
// separators, strip one prefix phrase, delete invalid characters, then
// split, cap and rejoin the segments.
func sanitizeOnce(raw string) string {
	candidate := strings.TrimSpace(raw)

	// Only the first line can carry the path.
	if i := strings.IndexAny(candidate, "\r\n"); i >= 0 {
		candidate = strings.TrimSpace(candidate[:i])
	}
	candidate = collapseSpaces(candidate)
	if candidate == "" || rejectWords[strings.ToLower(candidate)] {
		return Sentinel
	}

	candidate = strings.TrimSpace(stripQuotePair(candidate))
	candidate = strings.ReplaceAll(candidate, "\\", "/")
	candidate = strings.Trim(candidate, "/")

	// The prefix phrases carry colons, so they must be matched before
	// invalid characters are deleted.
	candidate = strings.TrimSpace(stripPrefix(candidate))
	for _, ch := range invalidChars {
		candidate = strings.ReplaceAll(candidate, string(ch), "")
	}

	var segments []string
	for _, seg := range strings.Split(candidate, "/") {
		seg = collapseSpaces(strings.TrimSpace(seg))
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return Sentinel
	}
	if len(segments) > MaxSegments {
		segments = segments[:MaxSegments]
	}

	joined := strings.Join(segments, "/")
	if rejectWords[strings.ToLower(joined)] {
		return Sentinel
	}
	if len(joined) > maxPathLength {
		return Sentinel
	}
	for _, seg := range segments {
		if len(seg) > maxSegmentLength {
			return Sentinel
		}
	}
	return joined
}

// stripQuotePair removes one matching pair of surrounding quote or
// backtick characters.
func stripQuotePair(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'' || first == '`') {
		return s[1 : len(s)-1]
	}
	return s
}

// stripPrefix removes one recognized prefix phrase, case-insensitively.
func stripPrefix(s string) string {
	lower := strings.ToLower(s)
	for _, prefix := range pathPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
