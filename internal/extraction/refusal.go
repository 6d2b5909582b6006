package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinResponseLength is the shortest reply, in characters, treated as a real evaluation.
const MinResponseLength = 50

var refusalPhrases = []string{
	"cannot analyze",
	"can't analyze",
	"cannot evaluate",
	"can't evaluate",
	"unable to",
	"not able to evaluate",
	"would not be appropriate",
	"wouldn't be appropriate",
	"i cannot",
	"i can't",
	"i'm sorry",
	"i am sorry",
	"as an ai",
}

var refusalPatterns = compilePhrases(refusalPhrases)

type phrasePattern struct {
	phrase string
	re     *regexp.Regexp
}

func compilePhrases(phrases []string) []phrasePattern {
	patterns := make([]phrasePattern, 0, len(phrases))
	for _, p := range phrases {
		patterns = append(patterns, phrasePattern{
			phrase: p,
			re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`),
		})
	}
	return patterns
}

// DetectRefusal returns a *RefusalError when raw is too short or contains
// refusal language, and nil when the reply should be parsed.
func DetectRefusal(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) < MinResponseLength {
		return &RefusalError{Reason: "reply too short"}
	}
	if phrase, ok := refusalPhrase(trimmed); ok {
		return &RefusalError{Reason: "refusal language", Phrase: phrase}
	}
	return nil
}

func refusalPhrase(text string) (string, bool) {
	for _, p := range refusalPatterns {
		if p.re.MatchString(text) {
			return p.phrase, true
		}
	}
	return "", false
}
