package api

import (
	"errors"

	"supplier-core/internal/adapter/auth"
	"supplier-core/internal/domain/entity"
	"supplier-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	enhancer    *usecase.QueryEnhancer
	comparisons *usecase.ComparisonEngine
	analytics   *usecase.AnalyticsAggregator
	tokens      *auth.TokenService
	serviceKey  string
}

func NewHandler(
	enhancer *usecase.QueryEnhancer,
	comparisons *usecase.ComparisonEngine,
	analytics *usecase.AnalyticsAggregator,
	tokens *auth.TokenService,
	serviceKey string,
) *Handler {
	return &Handler{
		enhancer:    enhancer,
		comparisons: comparisons,
		analytics:   analytics,
		tokens:      tokens,
		serviceKey:  serviceKey,
	}
}

type tokenRequest struct {
	UserID string `json:"user_id"`
}

// HandleIssueToken mints a bearer token for a user. Gated by the service
// key so only trusted callers (the frontend's backend, ops tooling) can
// mint tokens.
func (h *Handler) HandleIssueToken(c *fiber.Ctx) error {
	if h.serviceKey == "" || c.Get("X-Service-Key") != h.serviceKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid service key"})
	}

	var req tokenRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	token, err := h.tokens.IssueToken(auth.Claims{"user_id": req.UserID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "token issuance failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	var req entity.ComparisonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.comparisons.Compare(c.Context(), req.ProductIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *Handler) HandleAnalytics(c *fiber.Ctx) error {
	snapshot, err := h.analytics.Snapshot(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(snapshot)
}

func (h *Handler) HandleQuery(c *fiber.Ctx) error {
	var req entity.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" || req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and query are required"})
	}

	resp, err := h.enhancer.Process(c.Context(), req.UserID, req.Query, req.Filters)
	if err != nil {
		if errors.Is(err, entity.ErrUsageLimitExceeded) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
		}
		var procErr *entity.ProcessingError
		if errors.As(err, &procErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":      procErr.Error(),
				"suggestion": procErr.Suggestion,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
