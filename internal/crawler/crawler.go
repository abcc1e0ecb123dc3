package crawler

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// FileMeta describes one file discovered under the scan root.
type FileMeta struct {
	Path    string // absolute path
	RelPath string // path relative to the scan root
	Name    string
	Size    int64
	ModTime time.Time
}

// Crawler scans a directory for files awaiting organization.
type Crawler struct {
	ignored []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler() *Crawler {
	return &Crawler{
		ignored: []string{".git"},
	}
}

// Scan walks the root directory and streams discovered files to the
// callback, preventing large memory buildup. macOS junk files and ignored
// directories are skipped. A non-nil error from the callback stops the
// walk; return fs.SkipAll to stop without an error.
func (c *Crawler) Scan(root string, onFile func(FileMeta) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign && path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}

		// Skip Finder metadata and AppleDouble companions
		if strings.HasPrefix(d.Name(), ".DS_Store") || strings.HasPrefix(d.Name(), "._") {
			return nil
		}

		meta := FileMeta{Path: path, Name: d.Name()}
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			meta.RelPath = rel
		} else {
			meta.RelPath = d.Name()
		}
		if info, infoErr := d.Info(); infoErr == nil {
			meta.Size = info.Size()
			meta.ModTime = info.ModTime()
		}

		return onFile(meta)
	})
}

// Signature derives the identity key used for caching: name, size and
// modification time. Files whose metadata could not be read collapse to
// a zeroed form. Distinct files sharing all three fields collide; the
// key is not content-hashed.
func (m FileMeta) Signature() string {
	if m.ModTime.IsZero() {
		return fmt.Sprintf("%s|0|0", m.Name)
	}
	return fmt.Sprintf("%s|%d|%d", m.Name, m.Size, m.ModTime.Unix())
}

// ContextSignature extends Signature with a short hash of the file's
// surroundings, so the cache entry goes stale when the file is judged in
// a different context (project kind, category or parent folder).
func (m FileMeta) ContextSignature(projectKind, category string) string {
	ctx := fmt.Sprintf("%s|%s|%s", projectKind, category, filepath.Base(filepath.Dir(m.Path)))
	digest := fmt.Sprintf("%016x", xxh3.HashString(ctx))
	return fmt.Sprintf("%s|%s", m.Signature(), digest[:8])
}
