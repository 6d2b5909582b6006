package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
)

// OpenAIClient implements Client through the official OpenAI SDK.
type OpenAIClient struct {
	client openai.Client
	config *Config
}

// NewOpenAIClient creates an OpenAI client. SDK retries are disabled so that
// a failed call falls through to the local evaluator instead of being repeated.
func NewOpenAIClient(config *Config, apiKey string) *OpenAIClient {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
		openaioption.WithRequestTimeout(config.timeout()),
	}
	if config.BaseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(config.BaseURL))
	}

	return &OpenAIClient{
		client: openai.NewClient(opts...),
		config: config,
	}
}

// GenerateContent sends the prompt as a chat completion and returns the first choice's text.
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &ConfigError{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if c.config.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(c.config.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(modelName),
		Messages:    messages,
		Temperature: openai.Float(0.1),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &UnavailableError{Message: "openai request rejected", StatusCode: apiErr.StatusCode, Cause: err}
		}
		return "", &UnavailableError{Message: "openai request failed", Cause: err}
	}

	choices := make([]Choice, 0, len(resp.Choices))
	for _, ch := range resp.Choices {
		choices = append(choices, Choice{Shape: ShapeContent, Text: strings.TrimSpace(ch.Message.Content)})
	}
	return NormalizeChoices(choices)
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the SDK holds no resources that need releasing.
func (c *OpenAIClient) Close() error {
	return nil
}
