package crawler

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

type category struct {
	name    string
	matches map[string]bool
}

// Ordered so overlapping extensions resolve to the first class listed.
var categories = []category{
	{"code", set(".py", ".js", ".ts", ".java", ".cpp", ".c", ".h", ".hpp", ".cs", ".php", ".rb", ".go", ".rs", ".swift", ".kt")},
	{"config", set(".json", ".yaml", ".yml", ".toml", ".ini", ".cfg", ".conf", ".env", ".properties")},
	{"docs", set(".md", ".txt", ".rst", ".adoc", ".tex", ".doc", ".docx", ".pdf", ".rtf")},
	{"images", set(".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".svg", ".ico")},
	{"audio", set(".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma")},
	{"video", set(".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm", ".m4v")},
	{"archives", set(".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz")},
	{"data", set(".csv", ".xlsx", ".xls", ".db", ".sqlite", ".xml", ".json")},
	{"terraform", set(".tf", ".tfvars", ".tfstate", ".lock.hcl")},
	{"docker", set("dockerfile", "docker-compose.yml", "docker-compose.yaml", ".dockerignore")},
	{"git", set(".gitignore", ".gitattributes", ".gitmodules")},
	{"logs", set(".log", ".out", ".err", ".trace")},
}

func set(members ...string) map[string]bool {
	m := make(map[string]bool, len(members))
	for _, member := range members {
		m[member] = true
	}
	return m
}

// Categorize classifies the file by extension or full name, falling back
// to sniffing the first line of content. Unknown files yield "unknown".
func Categorize(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.ToLower(filepath.Base(path))

	for _, cat := range categories {
		if cat.matches[ext] || cat.matches[name] {
			return cat.name
		}
	}

	if first := firstLine(path); first != "" {
		switch {
		case strings.HasPrefix(first, "#!"):
			return "scripts"
		case strings.HasPrefix(first, "<?xml"):
			return "xml"
		case strings.HasPrefix(first, "{"), strings.HasPrefix(first, "["):
			return "json"
		}
	}

	return "unknown"
}

func firstLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
