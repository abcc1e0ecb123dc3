package resolve

import (
	"regexp"
	"strings"
)

var (
	jsonEnvelopePattern = regexp.MustCompile(`(?i)\{\s*"path"\s*:\s*"([^"]+)"\s*\}`)
	fenceMarkerPattern  = regexp.MustCompile("(?m)^```[a-zA-Z]*[ \t]*$")
	thinkBlockPattern   = regexp.MustCompile(`(?is)<think>.*?</think>`)
	strayTagPattern     = regexp.MustCompile(`<[^>]*>`)
	headingPattern      = regexp.MustCompile(`(?m)^#+\s.*$`)
	candidatePattern    = regexp.MustCompile(`[A-Za-z0-9 _.-]+(?:/[A-Za-z0-9 _.-]+){0,2}`)
	strictPathPattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(?:/[A-Za-z][A-Za-z0-9_-]*)*$`)
)

var stopWords = []string{"is", "are", "the", "this", "that", "here", "would", "should", "could"}

var defaultLeadIns = []string{
	"the cleaned compact path would be",
	"the path would be",
	"the best path is",
	"this file should go in",
	"final path:",
}

// Parser extracts a best-effort destination path from raw oracle text.
// Oracles answer with anything from a bare path to fenced markdown with
// reasoning blocks; Extract never fails, it only degrades.
type Parser struct {
	leadIns []*regexp.Regexp
}

// NewParser creates a parser with the default prose lead-in list.
// Additional lead-in phrases can be supplied as literal text; everything
// from a matched phrase to the end of its line is removed.
func NewParser(extraLeadIns ...string) *Parser {
	p := &Parser{}
	for _, phrase := range append(append([]string{}, defaultLeadIns...), extraLeadIns...) {
		p.leadIns = append(p.leadIns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(phrase)+`.*`))
	}
	return p
}

// Extract returns the most plausible path found in text, or an empty
// string when nothing usable remains. Callers map the empty string to
// the sentinel via Sanitize.
func (p *Parser) Extract(text string) string {
	if text == "" {
		return ""
	}

	// 1. A JSON envelope is trusted outright, no scoring.
	if m := jsonEnvelopePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	// 2. Drop markup: fence markers, reasoning blocks, stray tags, headings.
	text = fenceMarkerPattern.ReplaceAllString(text, "")
	text = thinkBlockPattern.ReplaceAllString(text, "")
	text = strayTagPattern.ReplaceAllString(text, "")
	text = headingPattern.ReplaceAllString(text, "")

	// 3. Drop prose lead-ins together with the rest of their line.
	for _, leadIn := range p.leadIns {
		text = leadIn.ReplaceAllString(text, "")
	}

	// 4. Harvest path-shaped candidates and keep the best scorer.
	best := ""
	bestScore := -1
	for _, raw := range candidatePattern.FindAllString(text, -1) {
		c := trimCandidate(raw)
		if c == "" {
			continue
		}
		if !strings.Contains(c, "/") && len(strings.Fields(c)) > 4 {
			continue
		}
		if score := scoreCandidate(c); score > bestScore {
			best = c
			bestScore = score
		}
	}
	if bestScore > 0 {
		return best
	}

	// 5. Last resort: any short line that at least looks like a path.
	for _, line := range strings.Split(text, "\n") {
		line = trimCandidate(line)
		if line != "" && len(line) < 50 && strings.Contains(line, "/") {
			return line
		}
	}

	return ""
}

// scoreCandidate rewards short, slash-joined, identifier-like strings
// and punishes prose.
func scoreCandidate(c string) int {
	score := 0
	if strings.Contains(c, "/") {
		score += 10
	}
	if n := 20 - len(c); n > 0 {
		score += n
	}
	lower := strings.ToLower(c)
	for _, word := range stopWords {
		if strings.Contains(lower, word) {
			score -= 2
		}
	}
	if words := len(strings.Fields(c)); words > 6 {
		score -= 2 * (words - 6)
	}
	if strictPathPattern.MatchString(c) {
		score += 5
	}
	return score
}

func trimCandidate(c string) string {
	return strings.Trim(strings.TrimSpace(c), "./ ")
}
