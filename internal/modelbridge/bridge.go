package modelbridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/gong-fq/eng5/internal/clients"
	"github.com/gong-fq/eng5/internal/config"
	"github.com/gong-fq/eng5/internal/logger"
	"github.com/gong-fq/eng5/internal/models"
	"github.com/gong-fq/eng5/internal/translation"
)

// ModelBridge turns a learner's question into a bilingual answer: it wraps
// the question with the system prompt, calls the model and splits the reply.
type ModelBridge struct {
	Client       clients.ModelClient
	Model        string
	SystemPrompt string
	Logger       *logger.Logger
}

// NewModelBridge creates a bridge backed by the DeepSeek client
func NewModelBridge(cfg *config.Config) *ModelBridge {
	log := logger.GetLogger().WithComponent("model_bridge")
	log.Info("Creating model bridge for %s at %s", cfg.DeepSeek.Model, cfg.DeepSeek.APIBase)

	return &ModelBridge{
		Client: clients.NewDeepSeekClient(clients.ModelClientConfig{
			APIBase: cfg.DeepSeek.APIBase,
			APIKey:  cfg.DeepSeek.APIKey,
			Model:   cfg.DeepSeek.Model,
			Timeout: cfg.DeepSeek.Timeout,
		}),
		Model:        cfg.DeepSeek.Model,
		SystemPrompt: cfg.Prompts.System,
		Logger:       log,
	}
}

// Ask sends one question and returns the split answer
func (b *ModelBridge) Ask(ctx context.Context, message string) (*models.CompletionResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("empty message")
	}

	req := clients.NewChatRequest(b.Model, b.SystemPrompt, message)
	b.Logger.Debug("Calling %s with a %d character question", b.Model, len(message))

	completion, err := b.Client.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	english, chinese := translation.Normalize(translation.Split(completion.Content))
	if english == translation.ShortAnswerText {
		b.Logger.Warn("Answer too short after extraction, raw length %d", len(completion.Content))
	}
	b.Logger.Debug("Extracted answer: english=%d bytes, translation=%d bytes", len(english), len(chinese))

	tokens := completion.Usage
	if tokens == nil {
		tokens = map[string]interface{}{}
	}

	return &models.CompletionResult{
		Text:        english,
		Translation: chinese,
		Success:     true,
		Tokens:      tokens,
	}, nil
}
