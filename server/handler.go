package server

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/rushteam/recserve/aggregate"
	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/pkg/logger"
	"github.com/rushteam/recserve/pkg/metrics"
)

type RecommendationHandler struct {
	engine   *aggregate.Engine
	validate *validator.Validate
}

func NewRecommendationHandler(engine *aggregate.Engine, validate *validator.Validate) *RecommendationHandler {
	return &RecommendationHandler{engine: engine, validate: validate}
}

type recommendRequest struct {
	UserID *int64 `json:"user_id" validate:"required"`
}

type recommendResponse struct {
	Recommendations []core.Recommendation `json:"recommendations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Recommend serves POST /api/recommendations. A missing or non-integer
// user_id is rejected before any signal runs; only catalog failures produce
// a 5xx, everything signal-local has already been contained by the engine.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()
	metrics.RecommendRequests.Inc()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()

	var req recommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "user_id is required"})
	}

	recs, err := h.engine.Recommend(c.Request().Context(), *req.UserID)
	if err != nil {
		logger.Error("recommend failed", "user_id", *req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to compute recommendations"})
	}

	return c.JSON(http.StatusOK, recommendResponse{Recommendations: recs})
}

// Index is the readiness probe.
func (h *RecommendationHandler) Index(c echo.Context) error {
	return c.String(http.StatusOK, "recserve is running")
}
