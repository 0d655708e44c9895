package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-qa/internal/models"

	"go.uber.org/zap"
)

// ErrEmptyQuery is returned for a missing or blank question.
var ErrEmptyQuery = errors.New("query is empty")

// Answer is the outcome of one turn.
type Answer struct {
	Text   string
	Intent IntentKind
	Shape  Shape
	Tier   Tier
}

// AssistantService routes a question to a canned response, a verbatim
// knowledge-base answer or a grounded generation.
type AssistantService struct {
	retrieval       *RetrievalService
	generator       Generator
	persona         models.Persona
	repeatThreshold float64
	metrics         *Metrics
	logger          *zap.Logger
}

func NewAssistantService(
	retrieval *RetrievalService,
	generator Generator,
	persona models.Persona,
	repeatThreshold float64,
	metrics *Metrics,
	logger *zap.Logger,
) *AssistantService {
	if repeatThreshold <= 0 {
		repeatThreshold = 0.8
	}
	return &AssistantService{
		retrieval:       retrieval,
		generator:       generator,
		persona:         persona.WithDefaults(),
		repeatThreshold: repeatThreshold,
		metrics:         metrics,
		logger:          logger,
	}
}

func (s *AssistantService) Persona() models.Persona {
	return s.persona
}

// Answer produces the reply to one turn. Only a transport failure of the
// generation service is returned as an error; an empty generation resolves to
// the fallback text.
func (s *AssistantService) Answer(ctx context.Context, turn models.Turn) (*Answer, error) {
	started := time.Now()

	query := strings.TrimSpace(sanitizeUTF8(turn.Query))
	if query == "" {
		return nil, ErrEmptyQuery
	}
	prior := strings.TrimSpace(sanitizeUTF8(turn.LastBotMessage))

	decision := Classify(Normalize(query), prior, s.persona)
	if decision.TooShort && s.retrieval.KnowsTerm(decision.Query) {
		decision = IntentDecision{Kind: IntentRetrieve, Shape: ShapeAmbiguous, Query: decision.Query}
	}
	s.metrics.observeIntent(decision)

	if decision.Canned() {
		s.logger.Info("Answered from canned response", zap.String("intent", decision.Kind.String()))
		return s.finish(&Answer{
			Text:   RenderCanned(decision, s.persona),
			Intent: decision.Kind,
			Shape:  ShapeCanned,
		}, started), nil
	}

	opts := SearchOptions{}
	if decision.Shape == ShapeSTAR {
		opts.PreferCategory = behavioralCategory
	}
	res := s.retrieval.Search(ctx, decision.Query, opts)
	s.metrics.observeTier(res.Tier)
	if res.SemanticFailed {
		s.metrics.incSemanticError()
	}

	if res.Tier == TierStrong && len(res.Entries) > 0 {
		s.logger.Info("Answered verbatim from knowledge base",
			zap.String("question", res.Entries[0].Question),
			zap.Float64("confidence", res.Confidence),
		)
		return s.finish(&Answer{
			Text:   res.Entries[0].Answer,
			Intent: decision.Kind,
			Shape:  ShapeVerbatim,
			Tier:   res.Tier,
		}, started), nil
	}

	system := buildSystemInstruction(s.persona, decision.Shape, res.Tier)
	user := buildUserMessage(decision.Query, s.retrieval.Context(res), prior)

	text, err := s.generate(ctx, system, user, decision.Shape)
	if err != nil {
		if !errors.Is(err, ErrEmptyGeneration) {
			s.logger.Error("Generation failed", zap.Error(err))
			return nil, fmt.Errorf("failed to answer query: %w", err)
		}
		s.logger.Warn("Generation returned nothing usable, using fallback")
		s.metrics.incFallback()
		return s.finish(&Answer{
			Text:   s.persona.Fallback,
			Intent: decision.Kind,
			Shape:  ShapeFallback,
			Tier:   res.Tier,
		}, started), nil
	}

	if prior != "" && IsRepeat(prior, text, s.repeatThreshold) {
		text = s.regenerate(ctx, system, user, prior, text, decision.Shape)
	}

	return s.finish(&Answer{
		Text:   text,
		Intent: decision.Kind,
		Shape:  decision.Shape,
		Tier:   res.Tier,
	}, started), nil
}

// generate calls the model and post-processes its output. Text that is empty
// after sanitizing counts as an empty generation.
func (s *AssistantService) generate(ctx context.Context, system, user string, shape Shape) (string, error) {
	raw, err := s.generator.Generate(ctx, system, user)
	if err != nil {
		return "", err
	}
	text := Sanitize(raw, s.persona)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyGeneration
	}
	if shape == ShapeAmbiguous {
		text = ambiguousOpener + text
	}
	return text, nil
}

// regenerate makes exactly one more attempt with an instruction to vary the
// answer. The first answer is kept when the retry fails or repeats again.
func (s *AssistantService) regenerate(ctx context.Context, system, user, prior, first string, shape Shape) string {
	s.metrics.incRegeneration()
	s.logger.Info("Answer repeats the previous turn, regenerating once")

	retry, err := s.generate(ctx, system+diversifyInstruction(prior), user, shape)
	if err != nil {
		s.logger.Warn("Regeneration failed, keeping first answer", zap.Error(err))
		return first
	}
	if IsRepeat(prior, retry, s.repeatThreshold) {
		s.logger.Info("Regenerated answer still repeats, keeping first answer")
		return first
	}
	return retry
}

func (s *AssistantService) finish(a *Answer, started time.Time) *Answer {
	s.metrics.observeAnswer(a.Shape, started)
	return a
}
