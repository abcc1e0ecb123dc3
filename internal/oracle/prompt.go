package oracle

import (
	"fmt"
	"strings"
)

// Provider kinds used for prompt shaping.
const (
	KindOllama = "ollama"
	KindOpenAI = "openai"
	KindGrok   = "grok"
	KindGemini = "gemini"
)

// BuildSuggestPrompt renders the first-pass prompt: bounded context plus
// strict output rules.
func BuildSuggestPrompt(pc PromptContext) string {
	var b strings.Builder
	b.WriteString("Return ONLY a relative folder path (1-3 levels) to organize the file. ")
	b.WriteString("Prefer EXISTING folders from the taxonomy below. If a close synonym exists, use the existing folder name (do not invent new top-level names).\n")
	fmt.Fprintf(&b, "Root: %s\n\n", pc.RootName)
	fmt.Fprintf(&b, "Existing taxonomy (samples):\n%s\n\n", pc.TaxonomySample)
	fmt.Fprintf(&b, "File: %s\n%s\n\n", pc.FileName, pc.Hint)
	fmt.Fprintf(&b, "Neighbor context:\n%s\n\n", pc.Neighbors)
	b.WriteString("Rules:\n- Output ONLY the path on one line\n- Use forward slashes\n- Max depth 3\n- If uncertain, reply 'Uncategorized'\n")
	return b.String()
}

// BuildRefinePrompt renders the second-pass prompt around a candidate.
func BuildRefinePrompt(pc PromptContext, candidate string) string {
	var b strings.Builder
	b.WriteString("Given a candidate folder path, improve it ONLY if it conflicts with the existing taxonomy; otherwise return it unchanged.\n")
	b.WriteString("Output ONLY the path. Max depth 3. Prefer existing folder names from the taxonomy.\n")
	fmt.Fprintf(&b, "Root: %s\n\nExisting taxonomy (samples):\n%s\n\n", pc.RootName, pc.TaxonomySample)
	fmt.Fprintf(&b, "Filename: %s\n%s\nCandidate: %s\n", pc.FileName, pc.Hint, candidate)
	return b.String()
}

// ShapePrompt adapts a base prompt to a provider's answering habits: a
// terse instruction for local models, a structured frame for hosted
// chat models, an emphatic one for Grok.
func ShapePrompt(kind, base, projectKind string) string {
	switch kind {
	case KindOllama:
		shaped := base + "\n\nRespond with only the folder path:"
		if projectKind != "" && projectKind != "general" && projectKind != "unknown" {
			shaped += fmt.Sprintf("\n\nProject type: %s", projectKind)
		}
		return shaped
	case KindOpenAI, KindGemini:
		return fmt.Sprintf("As a file organization expert, determine the best folder structure for this file.\n\n%s\n\nRules:\n- Respond with ONLY the folder path\n- Use forward slashes (/)\n- Be specific but concise\n- If uncertain, use \"Uncategorized\"\n\nFolder path:", base)
	case KindGrok:
		return fmt.Sprintf("File organization task:\n\n%s\n\nImportant: Respond with ONLY the folder path where this file should go. Nothing else.\n\nFolder path:", base)
	default:
		return base
	}
}
