package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectNamingStyle(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"kebab dominant", []string{"my-docs", "my-assets", "Misc"}, StyleKebab},
		{"pascal dominant", []string{"Documents", "Pictures", "src"}, StylePascal},
		{"snake dominant", []string{"my_docs", "old_stuff", "Misc"}, StyleSnake},
		{"plain lowercase counts as kebab", []string{"docs", "assets"}, StyleKebab},
		{"no matches", []string{"123", "..", "UPPER CASE"}, ""},
		{"empty input", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectNamingStyle(tt.names))
		})
	}
}

func TestDetectProjectKind(t *testing.T) {
	t.Run("golang repo", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x"), 0o644))
		assert.Equal(t, "golang", DetectProjectKind(root))
	})

	t.Run("bare git repo", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
		assert.Equal(t, "git_repo", DetectProjectKind(root))
	})

	t.Run("docker without git", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "Dockerfile"), []byte("FROM scratch"), 0o644))
		assert.Equal(t, "docker", DetectProjectKind(root))
	})

	t.Run("terraform without git", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "main.tf"), []byte(""), 0o644))
		assert.Equal(t, "terraform", DetectProjectKind(root))
	})

	t.Run("plain folder", func(t *testing.T) {
		assert.Equal(t, "general", DetectProjectKind(t.TempDir()))
	})
}

func TestDetectProject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "infra"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "infra", "main.tf"), []byte(""), 0o644))

	isProject, hasTerraform := DetectProject(root)
	assert.True(t, isProject)
	assert.True(t, hasTerraform)

	plain := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(plain, "photo.jpg"), []byte("x"), 0o644))
	isProject, hasTerraform = DetectProject(plain)
	assert.False(t, isProject)
	assert.False(t, hasTerraform)
}
