package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sortd/internal/taxonomy"
)

func terraformPolicy() Policy {
	return Policy{
		RootName:      "Downloads",
		StayUnderRoot: true,
		Pins: []Pin{
			{Suffixes: []string{".tf", ".tfvars", ".tfstate", ".lock.hcl"}, Subpath: TerraformSubpath},
		},
	}
}

func TestPolicy_PinOverridesEverything(t *testing.T) {
	p := terraformPolicy()

	for _, path := range []string{"Documents/Cloud", Sentinel, "", "!!! garbage !!!"} {
		got, pinned := p.Apply("main.tf", path)
		assert.True(t, pinned)
		assert.Equal(t, "Downloads/infrastructure/terraform", got)
	}
}

func TestPolicy_PinMatchesSuffixCaseInsensitively(t *testing.T) {
	p := terraformPolicy()

	got, pinned := p.Apply("TERRAFORM.TFSTATE", "x")
	assert.True(t, pinned)
	assert.Equal(t, "Downloads/infrastructure/terraform", got)

	got, pinned = p.Apply(".terraform.lock.hcl", "x")
	assert.True(t, pinned)
	assert.Equal(t, "Downloads/infrastructure/terraform", got)
}

func TestPolicy_PinIgnoresUnmatchedFiles(t *testing.T) {
	p := terraformPolicy()

	got, pinned := p.Apply("notes.txt", "Documents/Notes")
	assert.False(t, pinned)
	assert.Equal(t, "Downloads/Documents/Notes", got)
}

func TestPolicy_StayUnderRoot(t *testing.T) {
	p := Policy{RootName: "Downloads", StayUnderRoot: true}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"prepends root", "Documents/Invoices", "Downloads/Documents/Invoices"},
		{"keeps rooted path", "Downloads/Documents", "Downloads/Documents"},
		{"root match is case-insensitive", "downloads/Documents", "downloads/Documents"},
		{"re-caps depth after prepending", "docs/api/v2", "Downloads/docs/api"},
		{"roots the sentinel too", Sentinel, "Downloads/" + Sentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pinned := p.Apply("notes.txt", tt.path)
			assert.False(t, pinned)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_DisabledRootContainmentLeavesPathAlone(t *testing.T) {
	p := Policy{RootName: "Downloads"}

	got, _ := p.Apply("notes.txt", "Documents/Invoices")
	assert.Equal(t, "Documents/Invoices", got)
}

func TestPolicy_NamingConvention(t *testing.T) {
	tests := []struct {
		name   string
		naming string
		path   string
		want   string
	}{
		{"kebab rewrites separators and case", taxonomy.StyleKebab, "Downloads/My_Folder/Sub_Dir", "Downloads/my-folder/sub-dir"},
		{"snake rewrites separators and case", taxonomy.StyleSnake, "Downloads/My-Folder", "Downloads/my_folder"},
		{"root segment keeps its casing", taxonomy.StyleKebab, "Downloads/Archive", "Downloads/archive"},
		{"pascal is left alone", taxonomy.StylePascal, "Downloads/My_Folder", "Downloads/My_Folder"},
		{"no style is a no-op", "", "Downloads/My_Folder", "Downloads/My_Folder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{RootName: "Downloads", Naming: tt.naming}
			got, _ := p.Apply("notes.txt", tt.path)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicy_AliasSubstitution(t *testing.T) {
	base := Policy{
		RootName: "Downloads",
		Aliases:  DefaultAliases,
	}

	t.Run("role absent and synonym present", func(t *testing.T) {
		p := base
		p.TopLevel = []string{"app", "docs"}
		got, _ := p.Apply("notes.txt", "Downloads/src/utils")
		assert.Equal(t, "Downloads/app/utils", got)
	})

	t.Run("existing folder casing wins", func(t *testing.T) {
		p := base
		p.TopLevel = []string{"App"}
		got, _ := p.Apply("notes.txt", "Downloads/src/utils")
		assert.Equal(t, "Downloads/App/utils", got)
	})

	t.Run("role already exists", func(t *testing.T) {
		p := base
		p.TopLevel = []string{"src", "app"}
		got, _ := p.Apply("notes.txt", "Downloads/src/utils")
		assert.Equal(t, "Downloads/src/utils", got)
	})

	t.Run("no synonym in tree", func(t *testing.T) {
		p := base
		p.TopLevel = []string{"docs"}
		got, _ := p.Apply("notes.txt", "Downloads/src/utils")
		assert.Equal(t, "Downloads/src/utils", got)
	})

	t.Run("without root prefix the first segment is the role", func(t *testing.T) {
		p := base
		p.TopLevel = []string{"lib"}
		got, _ := p.Apply("notes.txt", "src/utils")
		assert.Equal(t, "lib/utils", got)
	})

	t.Run("second synonym is tried when the first is missing", func(t *testing.T) {
		p := base
		p.TopLevel = []string{"lib"}
		got, _ := p.Apply("notes.txt", "Downloads/src")
		assert.Equal(t, "Downloads/lib", got)
	})
}

func TestSplitSegments(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitSegments("/a//b/"))
	assert.Nil(t, splitSegments(""))
	assert.Nil(t, splitSegments("///"))
}
