package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const (
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultClaudeModel = "claude-3-haiku-20240307"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGeminiModel = "gemini-2.0-flash"

	maxCompletionTokens = 4000
)

// Config selects a provider backend and binds it to one credential. A client
// is built per request with the caller's resolved key.
type Config struct {
	Provider string
	APIKey   string
	Model    string
}

// Client is the completion source the orchestrators consume: one-shot
// completion plus an incremental stream of text deltas.
type Client interface {
	Complete(ctx context.Context, messages []*schema.Message) (string, error)
	Stream(ctx context.Context, messages []*schema.Message) (Stream, error)
}

type chatClient struct {
	chatModel model.BaseChatModel
}

// New builds a client for cfg.Provider. ErrNoAPIKey when the key is blank.
func New(ctx context.Context, cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}

	var (
		cm  model.BaseChatModel
		err error
	)
	switch cfg.Provider {
	case "", ProviderClaude:
		cm, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     modelOrDefault(cfg.Model, defaultClaudeModel),
			MaxTokens: maxCompletionTokens,
		})
	case ProviderOpenAI:
		maxTokens := maxCompletionTokens
		cm, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:    cfg.APIKey,
			Model:     modelOrDefault(cfg.Model, defaultOpenAIModel),
			MaxTokens: &maxTokens,
		})
	case ProviderGemini:
		var gc *genai.Client
		gc, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err == nil {
			cm, err = gemini.NewChatModel(ctx, &gemini.Config{
				Client: gc,
				Model:  modelOrDefault(cfg.Model, defaultGeminiModel),
			})
		}
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, Classify(fmt.Errorf("init %s chat model: %w", providerOrDefault(cfg.Provider), err))
	}

	return &chatClient{chatModel: cm}, nil
}

func (c *chatClient) Complete(ctx context.Context, messages []*schema.Message) (string, error) {
	out, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", Classify(err)
	}
	return out.Content, nil
}

func (c *chatClient) Stream(ctx context.Context, messages []*schema.Message) (Stream, error) {
	reader, err := c.chatModel.Stream(ctx, messages)
	if err != nil {
		return nil, Classify(err)
	}
	return &einoStream{reader: reader}, nil
}

func modelOrDefault(name, fallback string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fallback
}

func providerOrDefault(provider string) string {
	if provider == "" {
		return ProviderClaude
	}
	return provider
}
