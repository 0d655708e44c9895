package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-qa/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// ErrEmptyGeneration means the model answered but produced no usable text.
var ErrEmptyGeneration = errors.New("generation service returned an empty response")

// Generator produces text from a system instruction and a user message.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Provider() string
	Close() error
}

// NewGenerator builds the generation client selected by cfg.Provider.
func NewGenerator(cfg *config.GenerationConfig, logger *zap.Logger) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gigachat":
		return NewGigaChatGenerator(cfg, logger)
	case "openai":
		return NewOpenAIGenerator(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

// gigaChatTemperature keeps answers close to the grounding context.
const gigaChatTemperature = 0.4

type GigaChatGenerator struct {
	client *gigago.Client
	model  string
	logger *zap.Logger
}

func NewGigaChatGenerator(cfg *config.GenerationConfig, logger *zap.Logger) (*GigaChatGenerator, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "GigaChat"
	}
	logger.Info("Using GigaChat model", zap.String("model", model))

	return &GigaChatGenerator{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends one user message under the given system instruction. A
// model is created per call because the instruction changes with the
// response shape.
func (g *GigaChatGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = system
	model.Temperature = gigaChatTemperature

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: user},
	}

	resp, err := model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyGeneration
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyGeneration
	}
	return content, nil
}

func (g *GigaChatGenerator) Provider() string {
	return "gigachat"
}

func (g *GigaChatGenerator) Close() error {
	if g.client != nil {
		g.client.Close()
	}
	return nil
}
