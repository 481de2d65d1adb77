package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gong-fq/eng5/internal/logger"
)

const (
	completionsPath = "/chat/completions"
	defaultTimeout  = 45 * time.Second
)

// DeepSeekClient implements ModelClient for the DeepSeek chat completions API
type DeepSeekClient struct {
	config ModelClientConfig
	client *http.Client
	url    string
	logger *logger.Logger
	aborts atomic.Int64
}

// NewDeepSeekClient creates a new DeepSeek client
func NewDeepSeekClient(config ModelClientConfig) *DeepSeekClient {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	return &DeepSeekClient{
		config: config,
		client: &http.Client{},
		url:    strings.TrimSuffix(config.APIBase, "/") + completionsPath,
		logger: logger.GetLogger().WithComponent("deepseek_client"),
	}
}

// Aborts returns how many in-flight requests were torn down by the timeout
func (c *DeepSeekClient) Aborts() int64 {
	return c.aborts.Load()
}

// Complete performs a single attempt. Whichever of response, transport error
// or timeout happens first settles the call; the timeout cancels the request.
func (c *DeepSeekClient) Complete(ctx context.Context, req *ChatCompletionRequest) (*Completion, error) {
	if strings.TrimSpace(c.config.APIKey) == "" {
		return nil, &Error{Kind: KindConfiguration, Message: "DeepSeek API key is not configured"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l := newLatch()
	timer := time.AfterFunc(c.config.Timeout, func() {
		if l.resolve(nil, newTimeoutError(c.config.Timeout)) {
			c.aborts.Add(1)
			cancel()
		}
	})
	defer timer.Stop()

	go func() {
		completion, err := c.send(ctx, body)
		l.resolve(completion, err)
	}()

	c.logger.Debug("Sent request to %s with %d messages", c.url, len(req.Messages))
	out := l.wait()
	if out.err != nil {
		c.logger.WithError(out.err).Warn("Completion call failed")
		return nil, out.err
	}
	c.logger.Debug("Completion received: %d bytes, usage=%v", len(out.completion.Content), out.completion.Usage)
	return out.completion, nil
}

func (c *DeepSeekClient) send(ctx context.Context, body []byte) (*Completion, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, data)
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &Error{
			Kind:       KindResponseParse,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to parse DeepSeek response: %v", err),
			Err:        err,
		}
	}

	if len(result.Choices) == 0 {
		return nil, &Error{Kind: KindMalformedResponse, StatusCode: resp.StatusCode, Message: "invalid DeepSeek response: no choices returned"}
	}
	content := result.Choices[0].Message.Content
	if content == "" {
		return nil, &Error{Kind: KindMalformedResponse, StatusCode: resp.StatusCode, Message: "invalid DeepSeek response: missing message content"}
	}

	usage := result.Usage
	if usage == nil {
		usage = map[string]interface{}{}
	}
	return &Completion{Content: content, Usage: usage}, nil
}
