package resolve

import (
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"sortd/internal/taxonomy"
)

// DefaultSnapCutoff is the normalized similarity a suggested segment
// must reach against an existing sibling before it snaps to it.
const DefaultSnapCutoff = 0.8

// Snapper aligns suggested path segments with the existing tree so near
// duplicates ("Docments" beside "Documents") are not created.
type Snapper struct {
	snapshot *taxonomy.Snapshot
	cutoff   float64
}

// NewSnapper creates a snapper over the given snapshot. A non-positive
// cutoff falls back to DefaultSnapCutoff.
func NewSnapper(snapshot *taxonomy.Snapshot, cutoff float64) *Snapper {
	if cutoff <= 0 {
		cutoff = DefaultSnapCutoff
	}
	return &Snapper{snapshot: snapshot, cutoff: cutoff}
}

// Snap walks the path left to right, substituting each segment with its
// closest existing sibling when the similarity clears the cutoff. The
// ancestor pointer advances through the chosen names, so each segment is
// matched inside the directory the path actually resolves to. An
// explicit root segment is canonicalized to the root's casing, never
// fuzzy matched. Directories created earlier in the same scan are not
// visible to the snapshot.
func (s *Snapper) Snap(rel string) string {
	segments := splitSegments(rel)
	if len(segments) == 0 {
		return rel
	}

	cur := s.snapshot.Root()
	snapped := make([]string, 0, len(segments))

	idx := 0
	if strings.EqualFold(segments[0], s.snapshot.RootName()) {
		snapped = append(snapped, s.snapshot.RootName())
		idx = 1
	}
	for _, seg := range segments[idx:] {
		chosen := closestMatch(seg, s.snapshot.Children(cur), s.cutoff)
		snapped = append(snapped, chosen)
		cur = filepath.Join(cur, chosen)
	}
	return strings.Join(snapped, "/")
}

// closestMatch returns the most similar existing name when it clears the
// cutoff, otherwise the suggested segment unchanged. An existing name
// differing only in case always wins.
func closestMatch(seg string, existing []string, cutoff float64) string {
	best := seg
	bestScore := 0.0
	for _, name := range existing {
		if strings.EqualFold(name, seg) {
			return name
		}
		if score := similarity(seg, name); score > bestScore {
			best = name
			bestScore = score
		}
	}
	if bestScore >= cutoff {
		return best
	}
	return seg
}

// similarity normalizes Levenshtein distance into [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
