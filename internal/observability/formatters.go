// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-matcher/internal/embedding"
	"github.com/jonathan/job-matcher/internal/types"
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

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResponse outputs a human-readable summary of ranked matches.
func (p *Printer) PrintMatchResponse(response *types.MatchResponse) {
	if response == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n", response.TotalMatches))

	count := min(len(response.Matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := response.Matches[i]
		sb.WriteString("\n")
		if match.Posting != nil {
			sb.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, match.Posting.RoleTitle, match.Posting.Company))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, match.PostingID))
		}
		sb.WriteString(fmt.Sprintf("   Score: %.1f\n", match.Score))
		if len(match.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("   Matched: %s\n", strings.Join(match.MatchedSkills, ", ")))
		}
		if len(match.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("   Missing: %s\n", strings.Join(match.MissingSkills, ", ")))
		}
		if match.Similarity != nil {
			sb.WriteString(fmt.Sprintf("   Similarity: %.2f\n", *match.Similarity))
		}
		if match.Summary != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", match.Summary))
		}
	}
	if len(response.Matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(response.Matches)-maxItemsToShow))
	}

	p.printBox("Match Results", sb.String())
}

// PrintSemanticMatches outputs a similarity-ranked posting list.
func (p *Printer) PrintSemanticMatches(matches []types.SemanticMatch) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Postings ranked by similarity: %d\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		if match.Posting != nil {
			sb.WriteString(fmt.Sprintf("%d. %s - %s (%.2f)\n", i+1, match.Posting.RoleTitle, match.Posting.Company, match.Similarity))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s (%.2f)\n", i+1, match.PostingID, match.Similarity))
		}
	}
	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(matches)-maxItemsToShow))
	}

	p.printBox("Semantic Matches", sb.String())
}

// PrintProviderStats outputs embedding cache and rate-window counters.
func (p *Printer) PrintProviderStats(stats embedding.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cache:    %d/%d entries\n", stats.CacheSize, stats.CacheCapacity))
	sb.WriteString(fmt.Sprintf("Hits:     %d\n", stats.CacheHits))
	sb.WriteString(fmt.Sprintf("Misses:   %d\n", stats.CacheMisses))
	sb.WriteString(fmt.Sprintf("Calls:    %d this hour (%d remaining)\n", stats.CallsThisHour, stats.CallsRemaining))
	sb.WriteString(fmt.Sprintf("Resets:   %s\n", stats.WindowResetAt.Format("15:04:05")))

	p.printBox("Embedding Provider", sb.String())
}
