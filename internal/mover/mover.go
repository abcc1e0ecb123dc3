// Package mover executes resolved moves, folder-smart: groups of files
// that clearly belong together travel as one directory instead of being
// scattered file by file.
package mover

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Item pairs a source file with its resolved destination, relative to
// the destination root.
type Item struct {
	Source string
	Target string
}

// Options tune one move run.
type Options struct {
	DestRoot         string
	ScanRoot         string // the scanned folder itself is never folder-moved
	RootName         string
	StayUnderRoot    bool
	PreferFolderMove bool
	IsProject        bool
	OnProgress       func(done, total int)
}

// Result counts per-item outcomes. Failures are logged and counted,
// never fatal.
type Result struct {
	Moved  int
	Failed int
}

type Mover struct {
	opts Options
}

func New(opts Options) *Mover {
	return &Mover{opts: opts}
}

type group struct {
	root  string
	items []Item
}

// Execute moves every item. Groups that qualify move as whole folders
// first; everything else moves file by file with collision suffixes.
func (m *Mover) Execute(items []Item) Result {
	var res Result

	groups := m.groupByOwner(items)
	folderMoves := map[string]string{}
	for _, g := range groups {
		if dst, ok := m.folderDestination(g); ok {
			folderMoves[g.root] = dst
		}
	}

	for _, g := range groups {
		dst, ok := folderMoves[g.root]
		if !ok {
			continue
		}
		if err := m.moveFolder(g.root, dst); err != nil {
			log.Printf("⚠️  failed to move folder %s: %v", g.root, err)
			res.Failed++
			continue
		}
		res.Moved++
	}

	remaining := m.remainingAfter(items, folderMoves)
	for i, item := range remaining {
		if err := m.moveFile(item); err != nil {
			log.Printf("⚠️  failed to move %s: %v", item.Source, err)
			res.Failed++
		} else {
			res.Moved++
		}
		if m.opts.OnProgress != nil {
			m.opts.OnProgress(i+1, len(remaining))
		}
	}
	return res
}

// groupByOwner buckets items under their owning directory, in first-seen
// order. A file inside a .app bundle is owned by the bundle, not its
// immediate parent.
func (m *Mover) groupByOwner(items []Item) []group {
	index := map[string]int{}
	var groups []group
	for _, item := range items {
		root := appBundleRoot(item.Source)
		if root == "" {
			root = filepath.Dir(item.Source)
		}
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, group{root: root})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

// folderDestination decides whether a group moves as one folder and
// where it lands.
func (m *Mover) folderDestination(g group) (string, bool) {
	if m.opts.ScanRoot != "" && filepath.Clean(g.root) == filepath.Clean(m.opts.ScanRoot) {
		return "", false
	}

	targets := make([]string, 0, len(g.items))
	for _, item := range g.items {
		targets = append(targets, item.Target)
	}

	isBundle := strings.EqualFold(filepath.Ext(g.root), ".app")
	qualifies := (m.opts.PreferFolderMove && m.opts.IsProject) ||
		isBundle ||
		(len(g.items) > 4 && prefixAgreement(targets) >= 0.6)
	if !qualifies {
		return "", false
	}

	base := majorityPrefix(targets, 2)
	if m.opts.StayUnderRoot && (len(base) == 0 || !strings.EqualFold(base[0], m.opts.RootName)) {
		base = append([]string{m.opts.RootName}, base...)
	}

	parts := append([]string{m.opts.DestRoot}, base...)
	parts = append(parts, filepath.Base(g.root))
	return filepath.Join(parts...), true
}

// remainingAfter filters out items swept up by a folder move, either as
// a direct member or somewhere beneath a moved root.
func (m *Mover) remainingAfter(items []Item, folderMoves map[string]string) []Item {
	var remaining []Item
	for _, item := range items {
		swept := false
		for root := range folderMoves {
			if item.Source == root || strings.HasPrefix(item.Source, root+string(os.PathSeparator)) {
				swept = true
				break
			}
		}
		if !swept {
			remaining = append(remaining, item)
		}
	}
	return remaining
}

func (m *Mover) moveFolder(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	candidate := dst
	for i := 1; exists(candidate); i++ {
		candidate = fmt.Sprintf("%s_%d", dst, i)
	}
	return moveEntry(src, candidate)
}

func (m *Mover) moveFile(item Item) error {
	segments := splitTarget(item.Target)
	if m.opts.StayUnderRoot && (len(segments) == 0 || !strings.EqualFold(segments[0], m.opts.RootName)) {
		segments = append([]string{m.opts.RootName}, segments...)
	}

	dir := filepath.Join(append([]string{m.opts.DestRoot}, segments...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := filepath.Base(item.Source)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	target := filepath.Join(dir, name)
	for i := 1; exists(target); i++ {
		target = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
	return moveEntry(item.Source, target)
}

// appBundleRoot returns the nearest .app ancestor of path, or "".
func appBundleRoot(path string) string {
	for p := path; ; {
		if strings.EqualFold(filepath.Ext(p), ".app") {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return ""
		}
		p = parent
	}
}

// prefixAgreement is the share of targets whose first two segments match
// the most common such prefix. Empty targets count against agreement.
func prefixAgreement(targets []string) float64 {
	if len(targets) == 0 {
		return 0
	}
	counts := map[string]int{}
	best := 0
	for _, t := range targets {
		segs := splitTarget(t)
		if len(segs) == 0 {
			continue
		}
		if len(segs) > 2 {
			segs = segs[:2]
		}
		key := strings.Join(segs, "/")
		counts[key]++
		if counts[key] > best {
			best = counts[key]
		}
	}
	return float64(best) / float64(len(targets))
}

// majorityPrefix returns the most common k-segment target prefix, ties
// going to the earliest seen.
func majorityPrefix(targets []string, k int) []string {
	counts := map[string]int{}
	var bestKey string
	best := 0
	for _, t := range targets {
		segs := splitTarget(t)
		if len(segs) == 0 {
			continue
		}
		if len(segs) > k {
			segs = segs[:k]
		}
		key := strings.Join(segs, "/")
		counts[key]++
		if counts[key] > best {
			best = counts[key]
			bestKey = key
		}
	}
	if bestKey == "" {
		return nil
	}
	return strings.Split(bestKey, "/")
}

func splitTarget(target string) []string {
	var segments []string
	for _, seg := range strings.Split(target, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
