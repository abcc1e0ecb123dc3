package resolve

import (
	"strings"

	"sortd/internal/taxonomy"
)

// TerraformSubpath is the default pinned destination for
// infrastructure-as-code files.
const TerraformSubpath = "infrastructure/terraform"

// DefaultAliases maps conventional role folders to accepted synonyms,
// tried in order.
var DefaultAliases = map[string][]string{
	"src": {"app", "lib"},
}

// Pin forces a fixed destination for a recognized file class, bypassing
// the suggestion entirely.
type Pin struct {
	Suffixes []string // matched case-insensitively against the file name
	Subpath  string   // destination under the root
}

// Policy carries the guardrail settings for one run. It is immutable
// while the scan lasts.
type Policy struct {
	RootName         string
	Pins             []Pin
	StayUnderRoot    bool
	PreferFolderMove bool
	Naming           string              // taxonomy style to rewrite segments into
	Aliases          map[string][]string // conventional role -> synonym folders
	TopLevel         []string            // existing top-level folder names
}

// Apply enforces the guardrails on a sanitized path in fixed priority:
// pin, root containment, naming convention, alias substitution. The
// returned flag reports whether a pin fired; a pinned path is final and
// must not be snapped. The result is never empty.
func (p Policy) Apply(fileName, path string) (string, bool) {
	if pinned, ok := p.pinnedPath(fileName); ok {
		return pinned, true
	}

	segments := splitSegments(path)
	if p.StayUnderRoot && !p.startsWithRoot(segments) {
		segments = append([]string{p.RootName}, segments...)
		if len(segments) > MaxSegments {
			segments = segments[:MaxSegments]
		}
	}
	segments = p.applyNaming(segments)
	segments = p.applyAliases(segments)
	return strings.Join(segments, "/"), false
}

func (p Policy) pinnedPath(fileName string) (string, bool) {
	lower := strings.ToLower(fileName)
	for _, pin := range p.Pins {
		for _, suffix := range pin.Suffixes {
			if strings.HasSuffix(lower, strings.ToLower(suffix)) {
				return p.RootName + "/" + pin.Subpath, true
			}
		}
	}
	return "", false
}

func (p Policy) startsWithRoot(segments []string) bool {
	return len(segments) > 0 && strings.EqualFold(segments[0], p.RootName)
}

// applyNaming rewrites segment separators and case to the tree's
// dominant style. The root segment keeps its casing.
func (p Policy) applyNaming(segments []string) []string {
	if p.Naming != taxonomy.StyleKebab && p.Naming != taxonomy.StyleSnake {
		return segments
	}
	out := append([]string{}, segments...)
	for i := range out {
		if i == 0 && strings.EqualFold(out[i], p.RootName) {
			continue
		}
		if p.Naming == taxonomy.StyleKebab {
			out[i] = strings.ToLower(strings.ReplaceAll(out[i], "_", "-"))
		} else {
			out[i] = strings.ToLower(strings.ReplaceAll(out[i], "-", "_"))
		}
	}
	return out
}

// applyAliases substitutes a conventional role name (e.g. "src") with an
// existing synonym folder when the role itself is absent from the tree.
// Only the first post-root segment is considered.
func (p Policy) applyAliases(segments []string) []string {
	if len(p.Aliases) == 0 || len(segments) == 0 {
		return segments
	}

	idx := 0
	if strings.EqualFold(segments[0], p.RootName) {
		if len(segments) == 1 {
			return segments
		}
		idx = 1
	}

	seg := segments[idx]
	synonyms, ok := p.lookupAlias(seg)
	if !ok || p.topLevelHas(seg) {
		return segments
	}
	for _, syn := range synonyms {
		if actual, found := p.topLevelActual(syn); found {
			out := append([]string{}, segments...)
			out[idx] = actual
			return out
		}
	}
	return segments
}

func (p Policy) lookupAlias(segment string) ([]string, bool) {
	for role, synonyms := range p.Aliases {
		if strings.EqualFold(role, segment) {
			return synonyms, true
		}
	}
	return nil, false
}

func (p Policy) topLevelHas(name string) bool {
	_, ok := p.topLevelActual(name)
	return ok
}

// topLevelActual returns the existing folder's real casing.
func (p Policy) topLevelActual(name string) (string, bool) {
	for _, existing := range p.TopLevel {
		if strings.EqualFold(existing, name) {
			return existing, true
		}
	}
	return "", false
}

func splitSegments(path string) []string {
	var out []string
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
