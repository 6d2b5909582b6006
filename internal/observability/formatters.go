// Package observability provides structured logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/feedback-quality/internal/types"
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

// PrintResponseSet outputs a one-box summary of the submitted answers.
func (p *Printer) PrintResponseSet(set *types.ResponseSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Employee: %s\n", set.TargetEmployeeID))
	sb.WriteString(fmt.Sprintf("Assessor: %s\n", set.AssessorType.Label()))
	if set.CampaignID != "" {
		sb.WriteString(fmt.Sprintf("Campaign: %s\n", set.CampaignID))
	}
	sb.WriteString("\n")

	ordered := set.Ordered()
	count := min(len(ordered), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := ordered[i].Item
		if item.QuestionType == types.QuestionRating && item.Rating != nil {
			sb.WriteString(fmt.Sprintf("Q%d %s: %d/5\n", ordered[i].Ordinal, item.QuestionID, *item.Rating))
			continue
		}
		sb.WriteString(fmt.Sprintf("Q%d %s: %d words\n", ordered[i].Ordinal, item.QuestionID, len(strings.Fields(item.Text))))
	}
	if len(ordered) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(ordered)-maxItemsToShow))
	}

	p.printBox("RESPONSE SET", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysisReport outputs the counts and flags of a linguistic scan.
func (p *Printer) PrintAnalysisReport(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Responses: %d (%d rating, %d open-ended)\n",
		report.TotalResponseCount, report.TotalRatingCount, report.TotalOpenEndedCount))
	sb.WriteString(fmt.Sprintf("Average rating: %.2f\n", report.AverageRating))
	b := report.FeedbackBalance
	sb.WriteString(fmt.Sprintf("Sentiment: +%d / -%d / =%d\n", b.PositiveCount, b.NegativeCount, b.NeutralCount))
	sb.WriteString("\n")

	flags := []struct {
		label string
		items []types.FlaggedItem
	}{
		{"offensive", report.OffensivePhrases},
		{"non-constructive", report.NonConstructivePhrases},
		{"incomplete", report.IncompleteResponses},
		{"short", report.ShortResponses},
		{"long", report.LongResponses},
		{"no examples", report.NoExamples},
		{"too specific", report.TooSpecific},
	}
	flagged := false
	for _, f := range flags {
		if len(f.items) == 0 {
			continue
		}
		flagged = true
		sb.WriteString(fmt.Sprintf("⚠ %s: %s\n", f.label, flaggedIDs(f.items)))
	}
	if b.TooPositive {
		flagged = true
		sb.WriteString("⚠ one-sided: too positive\n")
	}
	if b.TooNegative {
		flagged = true
		sb.WriteString("⚠ one-sided: too negative\n")
	}
	if !flagged {
		sb.WriteString("✓ no issues flagged\n")
	}

	p.printBox("ANALYSIS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the final verdict with suggestions and per-question notes.
func (p *Printer) PrintEvaluation(result *types.EvaluationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	source := "rule-based"
	if result.UsedAI {
		source = "model"
	}
	sb.WriteString(fmt.Sprintf("%s Quality: %s (%s)\n", qualityIcon(result.Quality), result.Quality, source))
	sb.WriteString("\n")
	sb.WriteString(result.Message)
	sb.WriteString("\n")

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		count := min(len(result.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Suggestions[i]))
		}
		if len(result.Suggestions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Suggestions)-maxItemsToShow))
		}
	}

	if len(result.QuestionFeedback) > 0 {
		ids := make([]string, 0, len(result.QuestionFeedback))
		for id := range result.QuestionFeedback {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		sb.WriteString("\nPer question:\n")
		for _, id := range ids {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", id, result.QuestionFeedback[id]))
		}
	}

	p.printBox("FEEDBACK QUALITY", strings.TrimSuffix(sb.String(), "\n"))
}

func qualityIcon(q types.Quality) string {
	switch q {
	case types.QualityGood:
		return "✅"
	case types.QualityPoor:
		return "❌"
	default:
		return "⚠"
	}
}

func flaggedIDs(items []types.FlaggedItem) string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.QuestionID)
	}
	joined := strings.Join(ids, ", ")
	if len(joined) > 40 {
		joined = joined[:37] + "..."
	}
	return joined
}
