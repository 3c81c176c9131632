// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/namesmith/internal/generation"
	"github.com/jonathan/namesmith/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProgress writes one line per generation step.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintProgress(ev generation.ProgressEvent) {
	fmt.Fprintf(p.out, "→ [%s] %s\n", ev.Step, ev.Message)
}

// PrintAnalysis outputs what the generator read from the input.
func (p *Printer) PrintAnalysis(resp *types.GenerateResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Industry: %s\n", resp.IndustryDetected))
	sb.WriteString(fmt.Sprintf("Tone:     %s\n", resp.Tone))
	sb.WriteString(fmt.Sprintf("Method:   %s\n", resp.GenerationMethod))
	if len(resp.KeywordsExtracted) > 0 {
		sb.WriteString("\nKeywords:\n")
		sb.WriteString("  " + strings.Join(resp.KeywordsExtracted, ", "))
	}

	p.printBox("INPUT ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywords outputs a standalone keyword extraction.
func (p *Printer) PrintKeywords(res types.KeywordsResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Industry: %s\n", res.Industry))
	sb.WriteString(fmt.Sprintf("Keywords: %d\n", len(res.Keywords)))
	for _, kw := range res.Keywords {
		sb.WriteString(fmt.Sprintf("  • %s\n", kw))
	}
	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNames outputs every generated name with its tagline.
func (p *Printer) PrintNames(names []types.NameRecord) {
	if len(names) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d names:\n\n", len(names)))
	for i, rec := range names {
		line := fmt.Sprintf("%2d. %s", rec.ID, rec.Name)
		if rec.Source == types.SourceAI {
			line += " (ai)"
		}
		sb.WriteString(line + "\n")
		if rec.Tagline != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", rec.Tagline))
		}
		if i < len(names)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("NAMES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCategories outputs each category with up to maxItemsToShow members,
// following order when given and sorting the labels otherwise.
func (p *Printer) PrintCategories(categories map[string][]string, order []string) {
	if len(categories) == 0 {
		return
	}

	keys := order
	if len(keys) == 0 {
		keys = make([]string, 0, len(categories))
		for k := range categories {
			keys = append(keys, k)
		}
		slices.Sort(keys)
	}

	var sb strings.Builder
	for i, k := range keys {
		members := categories[k]
		sb.WriteString(fmt.Sprintf("%s (%d)\n", k, len(members)))
		count := min(len(members), maxItemsToShow)
		for _, name := range members[:count] {
			sb.WriteString(fmt.Sprintf("  • %s\n", name))
		}
		if len(members) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(members)-maxItemsToShow))
		}
		if i < len(keys)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CATEGORIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDomains outputs domain suggestions with their simulated availability.
func (p *Printer) PrintDomains(res *types.DomainCheckResponse) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Business: %s\n\n", res.BusinessName))
	if len(res.DomainSuggestions) == 0 {
		sb.WriteString("No usable characters for a domain.\n")
	}
	for _, d := range res.DomainSuggestions {
		mark := "✗"
		if res.Availability[d] {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, d))
	}
	if res.Note != "" {
		sb.WriteString("\n" + res.Note)
	}

	p.printBox("DOMAINS", strings.TrimSuffix(sb.String(), "\n"))
}
