package ainame

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/namesmith/internal/llm"
	"github.com/jonathan/namesmith/internal/naming"
)

const maxNameWords = 4

var (
	numberingRe = regexp.MustCompile(`^\d+\.?\s*`)
	bulletRe    = regexp.MustCompile(`^[•\-\*]\s*`)
	edgePunctRe = regexp.MustCompile(`^["'\-.,:;]*|["'\-.,:;]*$`)
	sentenceRe  = regexp.MustCompile(`[.!?]`)
)

// companyWords mark a phrase that describes a business instead of naming one.
var companyWords = []string{"company", "business", "enterprise", "corporation", "inc", "llc"}

// ParseNameList extracts candidate names from a model reply. A JSON array of
// strings is accepted; otherwise each line is a candidate with list numbering
// and bullets removed. Candidates longer than four words are dropped.
func ParseNameList(reply string) []string {
	var lines []string
	if arr := llm.ExtractJSONArray(reply); arr != "" {
		if err := json.Unmarshal([]byte(arr), &lines); err != nil {
			lines = nil
		}
	}
	if lines == nil {
		lines = strings.Split(llm.StripCodeFence(reply), "\n")
	}

	names := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = numberingRe.ReplaceAllString(line, "")
		line = bulletRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.Trim(line, `"*`))
		if line == "" || len(strings.Fields(line)) > maxNameWords {
			continue
		}
		names = append(names, line)
	}
	return names
}

// CleanGeneratedName applies the stricter filter used for free-form model
// output: the first plausible sentence of 2-30 characters that is not a
// description ("the ...", "... company") and contains only letters, digits,
// spaces and hyphens, title-cased.
func CleanGeneratedName(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = edgePunctRe.ReplaceAllString(line, "")
		for _, sentence := range sentenceRe.Split(line, -1) {
			sentence = strings.TrimSpace(sentence)
			if plausibleName(sentence) {
				return naming.Title(sentence), true
			}
		}
	}
	return "", false
}

func plausibleName(s string) bool {
	n := len([]rune(s))
	if n < 2 || n > 30 {
		return false
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "the ") {
		return false
	}
	for _, w := range companyWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	alnum := 0
	for _, r := range s {
		switch {
		case r == ' ' || r == '-':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			alnum++
		default:
			return false
		}
	}
	return alnum > 0
}

// cleanTagline strips whitespace and wrapping quotes from a one-line reply.
func cleanTagline(reply string) string {
	reply = strings.TrimSpace(llm.StripCodeFence(reply))
	if idx := strings.IndexByte(reply, '\n'); idx >= 0 {
		reply = reply[:idx]
	}
	return strings.TrimSpace(strings.Trim(reply, `"'`))
}

// dedupe keeps the first occurrence of each name, ignoring case.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
