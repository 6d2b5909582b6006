// Package analysis provides the deterministic linguistic scan of submitted 360 feedback.
package analysis

// Lexicon holds the fixed term lists the analyzer matches against.
// Matching is case-insensitive. Offensive, non-constructive, positive and
// negative terms match whole words; every other list matches as a plain substring.
type Lexicon struct {
	OffensiveTerms         []string
	NonConstructivePhrases []string
	ExampleIndicators      []string
	ConfidentialPhrases    []string
	PositiveTerms          []string
	NegativeTerms          []string
}

// DefaultLexicon returns a fresh copy of the built-in English term lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		OffensiveTerms: []string{
			"moron", "idiot", "stupid", "dumb", "incompetent", "useless",
			"pathetic", "worthless", "loser", "clueless", "imbecile", "lazy",
		},
		NonConstructivePhrases: []string{
			"quit", "quits", "quitting", "should be let go", "should be fired", "find another job",
			"look for another job", "get rid of", "leave the company",
			"should resign", "not cut out for",
		},
		ExampleIndicators: []string{
			"example", "instance", "such as", "e.g.", "demonstrated", "showed", "when",
		},
		ConfidentialPhrases: []string{
			"told me privately", "confidential", "during the call with",
			"in private", "off the record", "between us", "in confidence",
			"told me in our one-on-one",
		},
		PositiveTerms: []string{
			"excellent", "great", "good", "outstanding", "strong", "helpful",
			"effective", "impressive", "reliable", "supportive", "proactive",
			"exceptional", "skilled", "collaborative", "thoughtful",
		},
		NegativeTerms: []string{
			"poor", "weak", "bad", "lacking", "lacks", "unreliable", "ineffective",
			"disappointing", "struggles", "careless", "slow", "late", "unclear",
			"disorganized",
		},
	}
}
