package service

import (
	"context"
	"fmt"
	"strings"

	"career-qa/pkg/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completion endpoint.
type OpenAIGenerator struct {
	llm         llms.Model
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIGenerator(cfg *config.GenerationConfig, logger *zap.Logger) (*OpenAIGenerator, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	logger.Info("Using OpenAI-compatible model",
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.BaseURL),
	)

	return &OpenAIGenerator{
		llm:         llm,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	resp, err := g.llm.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyGeneration
	}

	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", ErrEmptyGeneration
	}
	return content, nil
}

func (g *OpenAIGenerator) Provider() string {
	return "openai"
}

func (g *OpenAIGenerator) Close() error {
	return nil
}
