package analysis

import (
	"regexp"
	"strings"

	"github.com/jonathan/feedback-quality/internal/types"
)

const (
	// ShortResponseWords is the word count below which an open-ended answer is too short
	ShortResponseWords = 5
	// LongResponseWords is the word count above which an open-ended answer is too long
	LongResponseWords = 200
	// ExampleCheckWords is the word count above which an answer is expected to cite an example
	ExampleCheckWords = 20
	// BalanceThreshold is the share of open-ended answers with one sentiment that marks the set as one-sided
	BalanceThreshold = 0.90
)

type wordPattern struct {
	term string
	re   *regexp.Regexp
}

// Analyzer scans response sets against a Lexicon. It holds only compiled,
// read-only patterns and is safe for concurrent use.
type Analyzer struct {
	lexicon         Lexicon
	offensive       []wordPattern
	nonConstructive []wordPattern
	positive        []wordPattern
	negative        []wordPattern
}

// NewAnalyzer compiles the lexicon into an Analyzer.
func NewAnalyzer(lexicon Lexicon) *Analyzer {
	return &Analyzer{
		lexicon:         lexicon,
		offensive:       compileWords(lexicon.OffensiveTerms),
		nonConstructive: compileWords(lexicon.NonConstructivePhrases),
		positive:        compileWords(lexicon.PositiveTerms),
		negative:        compileWords(lexicon.NegativeTerms),
	}
}

// NewDefaultAnalyzer returns an Analyzer over DefaultLexicon.
func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultLexicon())
}

// Lexicon returns the term lists this analyzer was built from.
func (a *Analyzer) Lexicon() Lexicon {
	return a.lexicon
}

func compileWords(terms []string) []wordPattern {
	patterns := make([]wordPattern, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		patterns = append(patterns, wordPattern{
			term: term,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}
	return patterns
}

// Analyze produces the analysis report for a response set. It never fails and performs no I/O.
func (a *Analyzer) Analyze(set *types.ResponseSet) *types.AnalysisReport {
	report := &types.AnalysisReport{}
	if set == nil {
		return report
	}

	var ratingSum, ratingCount int
	report.TotalResponseCount = len(set.Items)

	for i := range set.Items {
		item := &set.Items[i]

		switch item.QuestionType {
		case types.QuestionRating:
			report.TotalRatingCount++
			if item.Rating != nil {
				ratingSum += *item.Rating
				ratingCount++
			} else if item.Required {
				report.IncompleteResponses = append(report.IncompleteResponses, types.FlaggedItem{QuestionID: item.QuestionID})
			}
		case types.QuestionOpenEnded:
			report.TotalOpenEndedCount++
			a.scanText(report, item)
		}
	}

	if ratingCount > 0 {
		report.AverageRating = float64(ratingSum) / float64(ratingCount)
	}

	if report.TotalOpenEndedCount > 0 {
		total := float64(report.TotalOpenEndedCount)
		balance := &report.FeedbackBalance
		balance.TooPositive = float64(balance.PositiveCount)/total > BalanceThreshold
		balance.TooNegative = float64(balance.NegativeCount)/total > BalanceThreshold
	}

	return report
}

// scanText runs every open-ended check against one item.
func (a *Analyzer) scanText(report *types.AnalysisReport, item *types.FeedbackItem) {
	id := item.QuestionID
	text := strings.TrimSpace(item.Text)

	if text == "" {
		report.IncompleteResponses = append(report.IncompleteResponses, types.FlaggedItem{QuestionID: id})
		report.FeedbackBalance.NeutralCount++
		return
	}

	for _, p := range a.offensive {
		if p.re.MatchString(text) {
			report.HasOffensiveLanguage = true
			report.OffensivePhrases = append(report.OffensivePhrases, types.FlaggedItem{QuestionID: id, Phrase: p.term})
		}
	}

	for _, p := range a.nonConstructive {
		if p.re.MatchString(text) {
			report.NonConstructivePhrases = append(report.NonConstructivePhrases, types.FlaggedItem{QuestionID: id, Phrase: p.term})
		}
	}

	lower := strings.ToLower(text)
	words := len(strings.Fields(text))
	if words < ShortResponseWords {
		report.ShortResponses = append(report.ShortResponses, types.FlaggedItem{QuestionID: id})
	} else if words > LongResponseWords {
		report.LongResponses = append(report.LongResponses, types.FlaggedItem{QuestionID: id})
	}

	if words > ExampleCheckWords && !containsAny(lower, a.lexicon.ExampleIndicators) {
		report.NoExamples = append(report.NoExamples, types.FlaggedItem{QuestionID: id})
	}

	// One flag per question, naming the first phrase that matched.
	for _, phrase := range a.lexicon.ConfidentialPhrases {
		if phrase != "" && strings.Contains(lower, strings.ToLower(phrase)) {
			report.TooSpecific = append(report.TooSpecific, types.FlaggedItem{QuestionID: id, Phrase: phrase})
			break
		}
	}

	positive := countMatches(a.positive, text)
	negative := countMatches(a.negative, text)
	switch {
	case positive > 2*negative:
		report.FeedbackBalance.PositiveCount++
	case negative > 2*positive:
		report.FeedbackBalance.NegativeCount++
	default:
		report.FeedbackBalance.NeutralCount++
	}
}

func containsAny(lower string, substrings []string) bool {
	for _, s := range substrings {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

func countMatches(patterns []wordPattern, text string) int {
	n := 0
	for _, p := range patterns {
		n += len(p.re.FindAllStringIndex(text, -1))
	}
	return n
}
