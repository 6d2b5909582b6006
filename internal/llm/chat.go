package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseBytes caps how much of a reply body is read.
const maxResponseBytes = 4 << 20

// chatMessage is one role+content entry of a chat-completions request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// ChatClient implements Client against any HTTP endpoint speaking the
// chat-completions request/response shape.
type ChatClient struct {
	httpClient *http.Client
	config     *Config
	apiKey     string
	endpoint   string
}

// NewChatClient creates a chat-completions client. The config must carry a BaseURL.
func NewChatClient(config *Config, apiKey string) (*ChatClient, error) {
	if apiKey == "" {
		return nil, &ConfigError{Message: "API key is required"}
	}
	if strings.TrimSpace(config.BaseURL) == "" {
		return nil, &ConfigError{Message: "base URL is required for the chat provider"}
	}

	return &ChatClient{
		httpClient: &http.Client{Timeout: config.timeout()},
		config:     config,
		apiKey:     apiKey,
		endpoint:   chatEndpoint(config.BaseURL),
	}, nil
}

// chatEndpoint appends the completions path unless the base URL already names it.
func chatEndpoint(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if strings.HasSuffix(base, "/chat/completions") {
		return base
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// GenerateContent posts the prompt as a user message and returns the normalized reply text.
func (c *ChatClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &ConfigError{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	messages := make([]chatMessage, 0, 2)
	if c.config.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: c.config.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{Model: modelName, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ConfigError{Message: fmt.Sprintf("invalid endpoint %q: %v", c.endpoint, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UnavailableError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &UnavailableError{Message: "failed to read response body", StatusCode: resp.StatusCode, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UnavailableError{
			Message:    fmt.Sprintf("endpoint returned %s", truncate(string(respBody), 200)),
			StatusCode: resp.StatusCode,
		}
	}

	return DecodeChatCompletion(respBody)
}

// GetModel returns the model name for a tier
func (c *ChatClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases idle connections.
func (c *ChatClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
