package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	DefaultModel = "gpt-3.5-turbo"
)

var ErrNoChoices = errors.New("model response had no choices")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Client is the interface for chat-completion backends.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type openAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a Client backed by the OpenAI Chat Completions API.
func NewOpenAI(cfg OpenAIConfig) Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	oc.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(oc),
		model:  model,
	}
}

func (c *openAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
