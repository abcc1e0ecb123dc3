package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Snapshot is a point-in-time view of the directory tree under a scan root.
// Child listings are read lazily and cached for the lifetime of the snapshot,
// so directories created after construction are not visible to it.
type Snapshot struct {
	root string

	mu       sync.Mutex
	children map[string][]string
}

// NewSnapshot creates a snapshot rooted at the given directory.
func NewSnapshot(root string) *Snapshot {
	return &Snapshot{
		root:     root,
		children: make(map[string][]string),
	}
}

// Root returns the directory the snapshot was built from.
func (s *Snapshot) Root() string {
	return s.root
}

// RootName returns the base name of the snapshot root.
func (s *Snapshot) RootName() string {
	return filepath.Base(s.root)
}

// Children returns the child directory names of dir. The listing is read
// from disk on first access and served from the cache afterwards. A read
// failure yields an empty listing rather than an error.
func (s *Snapshot) Children(dir string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if names, ok := s.children[dir]; ok {
		return names
	}

	names := []string{}
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	s.children[dir] = names
	return names
}

// TopLevel returns the directory names directly under the root.
func (s *Snapshot) TopLevel() []string {
	return s.Children(s.root)
}

// Sample renders a bounded overview of the tree for prompt building: up to
// maxParents top-level folders sorted case-insensitively, each with up to
// maxChildren subfolder names.
func (s *Snapshot) Sample(maxParents, maxChildren int) string {
	parents := sortedByLower(s.TopLevel())
	if len(parents) > maxParents {
		parents = parents[:maxParents]
	}

	var lines []string
	for _, parent := range parents {
		kids := sortedByLower(s.Children(filepath.Join(s.root, parent)))
		if len(kids) > maxChildren {
			kids = kids[:maxChildren]
		}
		if len(kids) > 0 {
			lines = append(lines, fmt.Sprintf("- %s/ -> %s", parent, strings.Join(kids, ", ")))
		} else {
			lines = append(lines, fmt.Sprintf("- %s/", parent))
		}
	}

	if len(lines) == 0 {
		return "(no subfolders yet)"
	}
	return strings.Join(lines, "\n")
}

func sortedByLower(names []string) []string {
	out := append([]string{}, names...)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
