package taxonomy

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Folder naming styles detected across a tree.
const (
	StyleKebab  = "kebab"
	StylePascal = "pascal"
	StyleSnake  = "snake"
)

var (
	kebabPattern  = regexp.MustCompile(`^[a-z]+[a-z0-9-]*$`)
	pascalPattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	snakePattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Top-level entries that mark a directory as a software project.
var projectMarkers = map[string]bool{
	".git":           true,
	"package.json":   true,
	"go.mod":         true,
	"pyproject.toml": true,
	"main.tf":        true,
}

// DetectNamingStyle returns the dominant naming style among the given
// directory names, or an empty string when none of them match a style.
// Names matching several styles count toward the first match in the
// order kebab, pascal, snake.
func DetectNamingStyle(names []string) string {
	counts := make(map[string]int)
	for _, name := range names {
		switch {
		case kebabPattern.MatchString(name):
			counts[StyleKebab]++
		case pascalPattern.MatchString(name):
			counts[StylePascal]++
		case snakePattern.MatchString(name):
			counts[StyleSnake]++
		}
	}

	dominant := ""
	best := 0
	for _, style := range []string{StyleKebab, StylePascal, StyleSnake} {
		if counts[style] > best {
			best = counts[style]
			dominant = style
		}
	}
	return dominant
}

// DetectProjectKind classifies the root directory by its marker files,
// e.g. "nodejs", "golang", "terraform". Returns "general" when nothing
// matches and "unknown" when the root cannot be read.
func DetectProjectKind(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "unknown"
	}

	names := make(map[string]bool, len(entries))
	hasTF := false
	for _, entry := range entries {
		names[entry.Name()] = true
		if strings.HasSuffix(entry.Name(), ".tf") {
			hasTF = true
		}
	}

	if names[".git"] {
		switch {
		case names["package.json"]:
			return "nodejs"
		case names["pyproject.toml"] || names["requirements.txt"]:
			return "python"
		case names["go.mod"]:
			return "golang"
		case names["Cargo.toml"]:
			return "rust"
		case names["pom.xml"]:
			return "java_maven"
		case names["build.gradle"]:
			return "java_gradle"
		case hasTF:
			return "terraform"
		default:
			return "git_repo"
		}
	}
	if names["Dockerfile"] {
		return "docker"
	}
	if hasTF {
		return "terraform"
	}
	return "general"
}

// DetectProject reports whether root carries project markers at its top
// level and whether any terraform files exist anywhere underneath it.
func DetectProject(root string) (isProject, hasTerraform bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false, false
	}
	for _, entry := range entries {
		if projectMarkers[entry.Name()] {
			isProject = true
			break
		}
	}

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && isTerraformName(d.Name()) {
			hasTerraform = true
			return filepath.SkipAll
		}
		return nil
	})
	return isProject, hasTerraform
}

func isTerraformName(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range []string{".tf", ".tfvars", ".tfstate", ".lock.hcl"} {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
