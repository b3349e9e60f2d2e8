package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/service"
	"github.com/hallengray/BPT-sub001/pkg/api"
)

// InsightsHandler implements streak, quality and reminder endpoints
type InsightsHandler struct {
	service *service.InsightsService
	logger  *zap.Logger
}

// NewInsightsHandler creates a new InsightsHandler
func NewInsightsHandler(service *service.InsightsService, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		service: service,
		logger:  logger,
	}
}

// GetStreak returns the logging streak, earned badge and motivational message
func (h *InsightsHandler) GetStreak(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	insight, err := h.service.GetStreak(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to calculate streak",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to calculate streak",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, insight)
}

// GetQuality returns the data quality score with improvement suggestions
func (h *InsightsHandler) GetQuality(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	insight, err := h.service.GetQualityScore(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to calculate quality score",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to calculate quality score",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, insight)
}

// GetReminders returns the ranked smart reminder list
func (h *InsightsHandler) GetReminders(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	reminders, err := h.service.GetReminders(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate reminders",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to generate reminders",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// GetUnannotatedReadings returns high readings that lack an explanatory note
func (h *InsightsHandler) GetUnannotatedReadings(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	readings, err := h.service.GetUnannotatedHighReadings(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to find unannotated readings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to find unannotated readings",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, readings)
}

// GetContextGaps returns days with a reading but no same-day diet or exercise log
func (h *InsightsHandler) GetContextGaps(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	days, err := h.service.GetContextlessReadingDays(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to find context gaps",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to find context gaps",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, days)
}
