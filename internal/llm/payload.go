package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ChoiceShape identifies which payload layout a chat choice arrived in.
type ChoiceShape int

const (
	// ShapeUnknown is a choice with no recognizable text field
	ShapeUnknown ChoiceShape = iota
	// ShapeContent is an object carrying content, either {"message":{"content":...}},
	// {"content":...} or {"text":...}
	ShapeContent
	// ShapeString is a bare JSON string
	ShapeString
	// ShapeMessageString is an object whose "message" field is itself a string
	ShapeMessageString
)

// Choice is one entry of a chat-completions "choices" array, normalized to a single text value.
type Choice struct {
	Shape ChoiceShape
	Text  string
}

// UnmarshalJSON accepts every choice layout observed from chat endpoints.
// Unrecognized layouts decode as ShapeUnknown rather than failing.
func (c *Choice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Choice{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Choice{Shape: ShapeString, Text: s}
		return nil
	case '{':
	default:
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["message"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			*c = Choice{Shape: ShapeMessageString, Text: s}
			return nil
		}
		var msg map[string]json.RawMessage
		if json.Unmarshal(raw, &msg) == nil {
			if text, ok := contentText(msg["content"]); ok {
				*c = Choice{Shape: ShapeContent, Text: text}
				return nil
			}
		}
	}

	for _, key := range []string{"content", "text"} {
		if text, ok := contentText(fields[key]); ok {
			*c = Choice{Shape: ShapeContent, Text: text}
			return nil
		}
	}
	return nil
}

// contentText reads a content field that is either a string or an array of {"text": ...} parts.
func contentText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s, true
	}

	var parts []struct {
		Text string `json:"text"`
	}
	if json.Unmarshal(raw, &parts) == nil && len(parts) > 0 {
		texts := make([]string, 0, len(parts))
		for _, p := range parts {
			texts = append(texts, p.Text)
		}
		return strings.Join(texts, ""), true
	}
	return "", false
}

// ChatCompletionResponse is the subset of a chat-completions reply the engine reads.
type ChatCompletionResponse struct {
	ID      string   `json:"id,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
}

// NormalizeChoices returns the first non-blank choice text.
// A payload with no usable text yields a *MalformedResponseError.
func NormalizeChoices(choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", &MalformedResponseError{Message: "no choices in response"}
	}
	for _, ch := range choices {
		if ch.Shape != ShapeUnknown && strings.TrimSpace(ch.Text) != "" {
			return ch.Text, nil
		}
	}
	return "", &MalformedResponseError{Message: "no usable text in choices"}
}

// DecodeChatCompletion parses a raw chat-completions body into normalized text.
func DecodeChatCompletion(body []byte) (string, error) {
	var resp ChatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &MalformedResponseError{Message: "invalid JSON body", Cause: err}
	}
	return NormalizeChoices(resp.Choices)
}
