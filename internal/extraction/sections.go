package extraction

import (
	"regexp"
	"strings"
)

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionQuality
	sectionAssessment
	sectionRecommendations
	sectionQuestions
)

// A header is a known section name alone on its line, optionally followed by
// a colon and inline content.
var headerPattern = regexp.MustCompile(`(?i)^(quality|overall assessment|assessment|summary|recommendations?|suggestions?|improvements?|question[- ]specific feedback|per[- ]question feedback|question feedback)\s*(?::\s*(.*))?$`)

type sectionLine struct {
	kind sectionKind
	text string
}

// sections holds the reply's lines tagged with the section they fall under,
// in reply order. Inline header content (the text after "Recommendations:")
// is the first line of its section.
type sections struct {
	lines []sectionLine
	seen  map[sectionKind]bool
}

func splitSections(raw string) sections {
	out := sections{seen: map[sectionKind]bool{}}
	current := sectionNone

	for _, line := range strings.Split(raw, "\n") {
		if m := headerPattern.FindStringSubmatch(stripMarkup(line)); m != nil {
			current = headerKind(m[1])
			out.seen[current] = true
			if rest := strings.TrimSpace(m[2]); rest != "" {
				out.lines = append(out.lines, sectionLine{kind: current, text: rest})
			}
			continue
		}
		out.lines = append(out.lines, sectionLine{kind: current, text: line})
	}
	return out
}

// of returns the lines of one section and whether its header appeared.
func (s sections) of(kind sectionKind) ([]string, bool) {
	var lines []string
	for _, l := range s.lines {
		if l.kind == kind {
			lines = append(lines, l.text)
		}
	}
	return lines, s.seen[kind]
}

// excluding returns every line outside the given section.
func (s sections) excluding(kind sectionKind) []string {
	var lines []string
	for _, l := range s.lines {
		if l.kind != kind {
			lines = append(lines, l.text)
		}
	}
	return lines
}

func headerKind(name string) sectionKind {
	name = strings.ToLower(name)
	switch {
	case name == "quality":
		return sectionQuality
	case strings.Contains(name, "question"):
		return sectionQuestions
	case strings.HasPrefix(name, "recommendation"), strings.HasPrefix(name, "suggestion"), strings.HasPrefix(name, "improvement"):
		return sectionRecommendations
	default:
		return sectionAssessment
	}
}

var (
	emphasisPattern = regexp.MustCompile("\\*\\*|__|`")
	leadingMarkup   = regexp.MustCompile(`^[\s#>]+`)
)

// stripMarkup removes markdown emphasis, heading and quote markers.
func stripMarkup(line string) string {
	line = emphasisPattern.ReplaceAllString(line, "")
	line = leadingMarkup.ReplaceAllString(line, "")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "*_"))
}
