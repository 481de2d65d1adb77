package clients

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Sampling parameters sent with every completion request
const (
	DefaultMaxTokens        = 1200
	DefaultTemperature      = 0.7
	DefaultFrequencyPenalty = 0.3
	DefaultPresencePenalty  = 0.3
)

// ModelClient defines the interface for model API clients
type ModelClient interface {
	// Complete sends one completion request and waits for the full answer
	Complete(ctx context.Context, req *ChatCompletionRequest) (*Completion, error)
}

// ModelClientConfig contains configuration for model clients
type ModelClientConfig struct {
	APIBase string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ChatCompletionRequest is the body posted to the provider. Unlike
// openai.ChatCompletionRequest every field is always serialized, including
// "stream": false.
type ChatCompletionRequest struct {
	Model            string                         `json:"model"`
	Messages         []openai.ChatCompletionMessage `json:"messages"`
	MaxTokens        int                            `json:"max_tokens"`
	Temperature      float32                        `json:"temperature"`
	Stream           bool                           `json:"stream"`
	FrequencyPenalty float32                        `json:"frequency_penalty"`
	PresencePenalty  float32                        `json:"presence_penalty"`
}

// NewChatRequest builds the request for a single question: the system prompt
// first, then the user message.
func NewChatRequest(model, systemPrompt, message string) *ChatCompletionRequest {
	return &ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:        DefaultMaxTokens,
		Temperature:      DefaultTemperature,
		Stream:           false,
		FrequencyPenalty: DefaultFrequencyPenalty,
		PresencePenalty:  DefaultPresencePenalty,
	}
}

// Completion is the raw model answer with the provider's usage block
type Completion struct {
	Content string
	Usage   map[string]interface{}
}

type chatCompletionResponse struct {
	Choices []openai.ChatCompletionChoice `json:"choices"`
	Usage   map[string]interface{}        `json:"usage"`
}
