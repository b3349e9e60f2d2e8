package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/service"
	"github.com/hallengray/BPT-sub001/pkg/api"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// HealthDataHandler implements blood pressure, diet and exercise endpoints
type HealthDataHandler struct {
	service *service.HealthDataService
	logger  *zap.Logger
}

// NewHealthDataHandler creates a new HealthDataHandler
func NewHealthDataHandler(service *service.HealthDataService, logger *zap.Logger) *HealthDataHandler {
	return &HealthDataHandler{
		service: service,
		logger:  logger,
	}
}

// CreateBloodPressure logs a blood pressure reading
func (h *HealthDataHandler) CreateBloodPressure(c *gin.Context) {
	var req api.CreateBloodPressureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	userID := uuidToString(req.UserId)

	reading := &model.BloodPressureReading{
		Systolic:  req.Systolic,
		Diastolic: req.Diastolic,
		Pulse:     req.Pulse,
		Notes:     req.Notes,
	}
	if req.MeasuredAt != nil {
		reading.MeasuredAt = *req.MeasuredAt
	}

	if err := h.service.LogBloodPressure(c.Request.Context(), userID, reading); err != nil {
		h.logger.Error("failed to log blood pressure",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Failed to log blood pressure",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := api.BloodPressureResponse{
		Id:         stringToUUID(reading.ID),
		UserId:     stringToUUID(reading.UserID),
		Systolic:   intPtr(reading.Systolic),
		Diastolic:  intPtr(reading.Diastolic),
		Pulse:      intPtr(reading.Pulse),
		Notes:      reading.Notes,
		MeasuredAt: timePtr(reading.MeasuredAt),
	}

	c.JSON(http.StatusOK, response)
}

// ListBloodPressure lists readings for a user over a lookback window
func (h *HealthDataHandler) ListBloodPressure(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	days := windowDays(c)

	readings, err := h.service.GetBloodPressureHistory(c.Request.Context(), userID, days)
	if err != nil {
		h.logger.Error("failed to list blood pressure readings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list blood pressure readings",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := make([]api.BloodPressureResponse, 0, len(readings))
	for _, r := range readings {
		response = append(response, api.BloodPressureResponse{
			Id:         stringToUUID(r.ID),
			UserId:     stringToUUID(r.UserID),
			Systolic:   intPtr(r.Systolic),
			Diastolic:  intPtr(r.Diastolic),
			Pulse:      intPtr(r.Pulse),
			Notes:      r.Notes,
			MeasuredAt: timePtr(r.MeasuredAt),
			CreatedAt:  timePtr(r.CreatedAt),
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateDietEntry logs a meal
func (h *HealthDataHandler) CreateDietEntry(c *gin.Context) {
	var req api.CreateDietEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	userID := uuidToString(req.UserId)

	entry := &model.DietEntry{
		MealType:    req.MealType,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if req.LoggedAt != nil {
		entry.LoggedAt = *req.LoggedAt
	}

	if err := h.service.LogDietEntry(c.Request.Context(), userID, entry); err != nil {
		h.logger.Error("failed to log diet entry",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Failed to log diet entry",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := api.DietEntryResponse{
		Id:          stringToUUID(entry.ID),
		UserId:      stringToUUID(entry.UserID),
		MealType:    stringPtr(entry.MealType),
		Description: stringPtr(entry.Description),
		Notes:       entry.Notes,
		LoggedAt:    timePtr(entry.LoggedAt),
	}

	c.JSON(http.StatusOK, response)
}

// ListDietEntries lists meal logs for a user over a lookback window
func (h *HealthDataHandler) ListDietEntries(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	days := windowDays(c)

	entries, err := h.service.GetDietHistory(c.Request.Context(), userID, days)
	if err != nil {
		h.logger.Error("failed to list diet entries",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list diet entries",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := make([]api.DietEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, api.DietEntryResponse{
			Id:          stringToUUID(e.ID),
			UserId:      stringToUUID(e.UserID),
			MealType:    stringPtr(e.MealType),
			Description: stringPtr(e.Description),
			Notes:       e.Notes,
			LoggedAt:    timePtr(e.LoggedAt),
			CreatedAt:   timePtr(e.CreatedAt),
		})
	}

	c.JSON(http.StatusOK, response)
}

// CreateExerciseEntry logs a workout
func (h *HealthDataHandler) CreateExerciseEntry(c *gin.Context) {
	var req api.CreateExerciseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	userID := uuidToString(req.UserId)

	entry := &model.ExerciseEntry{
		Activity:        req.Activity,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if req.LoggedAt != nil {
		entry.LoggedAt = *req.LoggedAt
	}

	if err := h.service.LogExerciseEntry(c.Request.Context(), userID, entry); err != nil {
		h.logger.Error("failed to log exercise entry",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Failed to log exercise entry",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := api.ExerciseEntryResponse{
		Id:              stringToUUID(entry.ID),
		UserId:          stringToUUID(entry.UserID),
		Activity:        stringPtr(entry.Activity),
		DurationMinutes: intPtr(entry.DurationMinutes),
		Notes:           entry.Notes,
		LoggedAt:        timePtr(entry.LoggedAt),
	}

	c.JSON(http.StatusOK, response)
}

// ListExerciseEntries lists workout logs for a user over a lookback window
func (h *HealthDataHandler) ListExerciseEntries(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	days := windowDays(c)

	entries, err := h.service.GetExerciseHistory(c.Request.Context(), userID, days)
	if err != nil {
		h.logger.Error("failed to list exercise entries",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list exercise entries",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := make([]api.ExerciseEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, api.ExerciseEntryResponse{
			Id:              stringToUUID(e.ID),
			UserId:          stringToUUID(e.UserID),
			Activity:        stringPtr(e.Activity),
			DurationMinutes: intPtr(e.DurationMinutes),
			Notes:           e.Notes,
			LoggedAt:        timePtr(e.LoggedAt),
			CreatedAt:       timePtr(e.CreatedAt),
		})
	}

	c.JSON(http.StatusOK, response)
}

// windowDays reads the days query parameter, falling back to the default window
func windowDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(service.DefaultSnapshotWindowDays)))
	if err != nil || days <= 0 {
		return service.DefaultSnapshotWindowDays
	}
	return days
}
