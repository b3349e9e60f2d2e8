package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/service"
	"github.com/hallengray/BPT-sub001/pkg/api"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// MedicationHandler implements medication API endpoints
type MedicationHandler struct {
	service *service.MedicationService
	logger  *zap.Logger
}

// NewMedicationHandler creates a new MedicationHandler
func NewMedicationHandler(service *service.MedicationService, logger *zap.Logger) *MedicationHandler {
	return &MedicationHandler{
		service: service,
		logger:  logger,
	}
}

// CreateMedication adds a new medication and generates its dose schedule
func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	var req api.CreateMedicationRequest
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

	medication := &model.Medication{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: model.MedicationFrequency(req.Frequency),
		StartDate: dateToTime(req.StartDate),
		Notes:     req.Notes,
	}
	if req.TimesOfDay != nil {
		medication.TimesOfDay = *req.TimesOfDay
	}
	if req.EndDate != nil {
		endDate := dateToTime(*req.EndDate)
		medication.EndDate = &endDate
	}

	if err := h.service.AddMedication(c.Request.Context(), userID, medication); err != nil {
		h.logger.Error("failed to add medication",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Failed to add medication",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, medicationResponse(medication))
}

// ListMedications lists all medications for a user
func (h *MedicationHandler) ListMedications(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	medications, err := h.service.ListMedications(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list medications",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list medications",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := make([]api.MedicationResponse, 0, len(medications))
	for i := range medications {
		response = append(response, medicationResponse(&medications[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetMedication returns a single medication by ID
func (h *MedicationHandler) GetMedication(c *gin.Context) {
	medicationID, ok := requirePathID(c)
	if !ok {
		return
	}

	medication, err := h.service.GetMedication(c.Request.Context(), medicationID)
	if err != nil {
		h.logger.Error("failed to get medication",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Medication not found",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, medicationResponse(medication))
}

// UpdateMedication updates a medication; schedule changes rebuild future doses
func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	medicationID, ok := requirePathID(c)
	if !ok {
		return
	}

	var req api.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	medication := &model.Medication{
		Name:      derefString(req.Name),
		Dosage:    derefString(req.Dosage),
		Frequency: model.MedicationFrequency(derefString(req.Frequency)),
		Notes:     req.Notes,
	}
	if req.TimesOfDay != nil {
		medication.TimesOfDay = *req.TimesOfDay
	}
	if req.StartDate != nil {
		medication.StartDate = dateToTime(*req.StartDate)
	}
	if req.EndDate != nil {
		endDate := dateToTime(*req.EndDate)
		medication.EndDate = &endDate
	}

	if err := h.service.UpdateMedication(c.Request.Context(), medicationID, medication); err != nil {
		h.logger.Error("failed to update medication",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to update medication",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, medicationResponse(medication))
}

// DeleteMedication deletes a medication and its doses
func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	medicationID, ok := requirePathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMedication(c.Request.Context(), medicationID); err != nil {
		h.logger.Error("failed to delete medication",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to delete medication",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListDoses lists the stored dose schedule of a medication
func (h *MedicationHandler) ListDoses(c *gin.Context) {
	medicationID, ok := requirePathID(c)
	if !ok {
		return
	}

	doses, err := h.service.ListDoses(c.Request.Context(), medicationID)
	if err != nil {
		h.logger.Error("failed to list doses",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list doses",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := make([]api.DoseResponse, 0, len(doses))
	for _, d := range doses {
		response = append(response, api.DoseResponse{
			Id:            stringToUUID(d.ID),
			MedicationId:  stringToUUID(d.MedicationID),
			ScheduledTime: timePtr(d.ScheduledTime),
			TakenAt:       d.TakenAt,
			WasTaken:      boolPtr(d.WasTaken),
			Notes:         d.Notes,
		})
	}

	c.JSON(http.StatusOK, response)
}

// SyncDoses tops up dose schedules that are running short
func (h *MedicationHandler) SyncDoses(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	generated, err := h.service.SyncDoseSchedules(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to sync dose schedules",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to sync dose schedules",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, api.SyncDosesResponse{DosesGenerated: generated})
}

// MarkDoseTaken marks a scheduled dose as taken
func (h *MedicationHandler) MarkDoseTaken(c *gin.Context) {
	doseID, ok := requirePathID(c)
	if !ok {
		return
	}

	if err := h.service.RecordDoseTaken(c.Request.Context(), doseID); err != nil {
		h.logger.Error("failed to mark dose taken",
			zap.Error(err),
			zap.String("dose_id", doseID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to mark dose taken",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func medicationResponse(med *model.Medication) api.MedicationResponse {
	timesOfDay := med.TimesOfDay
	return api.MedicationResponse{
		Id:         stringToUUID(med.ID),
		UserId:     stringToUUID(med.UserID),
		Name:       stringPtr(med.Name),
		Dosage:     stringPtr(med.Dosage),
		Frequency:  stringPtr(string(med.Frequency)),
		TimesOfDay: &timesOfDay,
		StartDate:  timeToDate(med.StartDate),
		EndDate:    timePtrToDate(med.EndDate),
		Notes:      med.Notes,
		Active:     boolPtr(med.Active),
		CreatedAt:  timePtr(med.CreatedAt),
	}
}

// requirePathlessUserID reads and validates the user_id query parameter
func requirePathlessUserID(c *gin.Context) (string, bool) {
	parsed, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "user_id must be a valid UUID",
		})
		return "", false
	}
	return parsed.String(), true
}

// requirePathID reads and validates the id path parameter
func requirePathID(c *gin.Context) (string, bool) {
	parsed, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "id must be a valid UUID",
		})
		return "", false
	}
	return parsed.String(), true
}
