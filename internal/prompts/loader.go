// Package prompts provides the language-model prompt templates used by the assessment engine.
// Templates are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FeedbackFile is the template file holding the feedback review prompts.
const FeedbackFile = "feedback.json"

// Template keys in FeedbackFile.
const (
	KeyReviewerPreamble = "reviewer-preamble"
	KeyEvaluateFeedback = "evaluate-feedback"
)

//go:embed *.json
var promptFiles embed.FS

var (
	loaded   = make(map[string]map[string]string)
	loadedMu sync.RWMutex
)

// Get returns the template stored under key in the named file.
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}

	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// MustGet is Get for templates that ship with the binary; a miss is a build defect and panics.
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Format substitutes {{.Key}} placeholders with the given values.
// Placeholders without a value are left untouched.
func Format(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{{."+k+"}}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Keys lists the template keys in a file, sorted.
func Keys(filename string) ([]string, error) {
	templates, err := load(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func load(filename string) (map[string]string, error) {
	loadedMu.RLock()
	templates, ok := loaded[filename]
	loadedMu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	loadedMu.Lock()
	loaded[filename] = templates
	loadedMu.Unlock()
	return templates, nil
}
