package handlers

import (
	"errors"

	"career-qa/internal/dto"
	"career-qa/internal/models"
	"career-qa/internal/service"
	"career-qa/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type QueryHandler struct {
	assistant *service.AssistantService
	retrieval *service.RetrievalService
	provider  string
	logger    *zap.Logger
}

func NewQueryHandler(
	assistant *service.AssistantService,
	retrieval *service.RetrievalService,
	provider string,
	logger *zap.Logger,
) *QueryHandler {
	return &QueryHandler{
		assistant: assistant,
		retrieval: retrieval,
		provider:  provider,
		logger:    logger,
	}
}

// Query godoc
// @Summary Ask a question
// @Description Answer a free-text question about the subject's professional background
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body dto.QueryRequest true "Question and the previous answer, if any"
// @Success 200 {object} dto.QueryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /query [post]
func (h *QueryHandler) Query(c *fiber.Ctx) error {
	log := middleware.Logger(c, h.logger)

	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	answer, err := h.assistant.Answer(c.UserContext(), models.Turn{
		Query:          req.Q,
		LastBotMessage: req.LastBotMessage,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Query is required",
			})
		}
		log.Error("Query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   "Failed to answer query",
			Message: "Something went wrong while answering. Please try again.",
		})
	}

	log.Info("Query answered",
		zap.String("intent", answer.Intent.String()),
		zap.String("shape", answer.Shape.String()),
		zap.String("tier", answer.Tier.String()),
	)

	return c.JSON(dto.QueryResponse{
		Answer: answer.Text,
		Intent: answer.Intent.String(),
		Shape:  answer.Shape.String(),
	})
}

// Suggest godoc
// @Summary Suggest questions
// @Description Suggest up to five knowledge-base questions related to q, or a spread of questions when q is empty
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body dto.SuggestRequest false "Partial question"
// @Success 200 {object} dto.SuggestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /suggest [post]
func (h *QueryHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Invalid request body",
			})
		}
	}

	suggestions := h.retrieval.Suggest(c.UserContext(), req.Q, 0)
	if suggestions == nil {
		suggestions = []string{}
	}
	return c.JSON(dto.SuggestResponse{Suggestions: suggestions})
}

// Status godoc
// @Summary Service status
// @Description Knowledge-base size and whether semantic scoring is enabled or degraded
// @Tags system
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router / [get]
func (h *QueryHandler) Status(c *fiber.Ctx) error {
	stats := h.retrieval.Stats()

	semantic := "degraded"
	if stats.SemanticEnabled {
		semantic = "enabled"
	}

	return c.JSON(dto.StatusResponse{
		Status:              "ok",
		Entries:             stats.Entries,
		Semantic:            semantic,
		EmbeddingDimensions: stats.Dimensions,
		GenerationProvider:  h.provider,
	})
}
