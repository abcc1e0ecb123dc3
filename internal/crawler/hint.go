package crawler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TerraformExts lists the infrastructure-as-code suffixes that get a
// dedicated hint and, by default, a pinned destination.
var TerraformExts = []string{".tf", ".tfvars", ".tfstate", ".lock.hcl"}

var (
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".heic": true,
		".webp": true, ".tif": true, ".tiff": true,
	}
	audioExts = map[string]bool{
		".mp3": true, ".m4a": true, ".flac": true, ".wav": true,
		".aac": true, ".ogg": true,
	}
	videoExts = map[string]bool{
		".mp4": true, ".mov": true, ".mkv": true, ".avi": true, ".webm": true,
	}
	docExts = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
		".xls": true, ".xlsx": true, ".md": true, ".txt": true, ".rtf": true,
	}
)

// IsTerraform reports whether the file name carries an
// infrastructure-as-code suffix.
func IsTerraform(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range TerraformExts {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Hint builds a compact one-line description of the file for prompts.
// Media files carry their size, documents and terraform files their
// class, everything else falls back to a generic form.
func (m FileMeta) Hint() string {
	ext := strings.ToLower(filepath.Ext(m.Name))
	parent := filepath.Base(filepath.Dir(m.Path))
	ancestors := m.ancestors()

	switch {
	case imageExts[ext]:
		return fmt.Sprintf("Type=Image; SizeBytes=%d; Name=%s; Parent=%s; Ancestors=%s", m.Size, m.Name, parent, ancestors)
	case audioExts[ext]:
		return fmt.Sprintf("Type=Audio; SizeBytes=%d; Name=%s; Parent=%s; Ancestors=%s", m.Size, m.Name, parent, ancestors)
	case videoExts[ext]:
		return fmt.Sprintf("Type=Video; SizeBytes=%d; Name=%s; Parent=%s; Ancestors=%s", m.Size, m.Name, parent, ancestors)
	case docExts[ext]:
		return fmt.Sprintf("Type=Doc; Name=%s; Parent=%s; Ancestors=%s", m.Name, parent, ancestors)
	case IsTerraform(m.Name):
		return fmt.Sprintf("Type=Terraform; Name=%s; Parent=%s; Ancestors=%s", m.Name, parent, ancestors)
	}

	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("Filename=%s; Parent=%s; Ancestors=%s; Ext=%s", m.Name, parent, ancestors, ext)
}

// ancestors renders the last few directory names above the file inside
// the scan root, top-down.
func (m FileMeta) ancestors() string {
	dir := filepath.ToSlash(filepath.Dir(m.RelPath))
	if dir == "." || dir == "" {
		return ""
	}
	parts := strings.Split(dir, "/")
	if len(parts) > 4 {
		parts = parts[len(parts)-4:]
	}
	return strings.Join(parts, "/")
}

// NeighborContext summarizes the file's parent directory: its name plus
// capped lists of sibling directories and files.
func (m FileMeta) NeighborContext(maxSiblings int) string {
	parent := filepath.Dir(m.Path)

	var dirs, files []string
	if entries, err := os.ReadDir(parent); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				if len(dirs) < maxSiblings {
					dirs = append(dirs, entry.Name())
				}
			} else if len(files) < maxSiblings {
				files = append(files, entry.Name())
			}
		}
	}

	return fmt.Sprintf("ParentDir=%s; SiblingDirs=%s; SiblingFiles=%s",
		filepath.Base(parent), strings.Join(dirs, ", "), strings.Join(files, ", "))
}
