package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flatwalay/backend/internal/config"
)

// LLMClient talks to an OpenAI-compatible chat completions endpoint
type LLMClient struct {
	apiKey      string
	apiBase     string
	model       string
	temperature float64
	maxTokens   int
	enabled     bool
	httpClient  *http.Client
}

// NewLLMClient creates a chat client from configuration
func NewLLMClient(cfg config.LLMConfig) *LLMClient {
	return &LLMClient{
		apiKey:      cfg.APIKey,
		apiBase:     cfg.APIBase,
		model:       cfg.ChatModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		enabled:     cfg.Enabled,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled reports whether an API key is configured
func (c *LLMClient) IsEnabled() bool {
	return c.enabled
}

// ChatMessage is a single conversation message
type ChatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolFunction describes a callable function exposed to the model
type ToolFunction struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

// Tool wraps a function definition
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolCall is a function invocation emitted by the model
type ToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// ChatCompletionRequest is the request body for /chat/completions
type ChatCompletionRequest struct {
	Model          string                 `json:"model"`
	Messages       []ChatMessage          `json:"messages"`
	Temperature    float64                `json:"temperature,omitempty"`
	MaxTokens      int                    `json:"max_tokens,omitempty"`
	ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
	Tools          []Tool                 `json:"tools,omitempty"`
	ToolChoice     interface{}            `json:"tool_choice,omitempty"`
}

// ChatCompletionResponse is the response body for /chat/completions
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// ChatCompletion sends a chat completion request and returns the first choice
func (c *LLMClient) ChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatMessage, error) {
	if !c.enabled {
		return nil, fmt.Errorf("llm client is disabled: no API key configured")
	}

	if req.Model == "" {
		req.Model = c.model
	}
	if req.Temperature == 0 {
		req.Temperature = c.temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.maxTokens
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if completion.Error != nil {
		return nil, fmt.Errorf("chat completion error: %s", completion.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completion failed with status %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &completion.Choices[0].Message, nil
}

// CompleteJSON runs a completion with response_format json_object and returns
// the raw content string
func (c *LLMClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	msg, err := c.ChatCompletion(ctx, &ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

// CompleteTool runs a completion forcing the model to call the named tool and
// returns the raw arguments JSON of that call
func (c *LLMClient) CompleteTool(ctx context.Context, system, user string, tool Tool) (string, error) {
	msg, err := c.ChatCompletion(ctx, &ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Tools: []Tool{tool},
		ToolChoice: map[string]interface{}{
			"type":     "function",
			"function": map[string]string{"name": tool.Function.Name},
		},
	})
	if err != nil {
		return "", err
	}

	for _, call := range msg.ToolCalls {
		if call.Function.Name == tool.Function.Name {
			return call.Function.Arguments, nil
		}
	}
	return "", fmt.Errorf("model did not call tool %q", tool.Function.Name)
}

// CompleteText runs a plain completion and returns the content string
func (c *LLMClient) CompleteText(ctx context.Context, system, user string) (string, error) {
	msg, err := c.ChatCompletion(ctx, &ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}
