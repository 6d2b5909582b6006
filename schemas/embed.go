// Package schemas holds the JSON Schema documents for the engine's wire formats.
package schemas

import "embed"

// Schema file names.
const (
	ResponseSet      = "response_set.schema.json"
	EvaluationResult = "evaluation_result.schema.json"
)

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
