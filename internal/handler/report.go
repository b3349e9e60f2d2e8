package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/service"
	"github.com/hallengray/BPT-sub001/pkg/api"
)

// ReportHandler implements PDF report endpoints
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// GenerateReport builds a PDF report for the requested range
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req api.GenerateReportRequest
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
	userName := derefString(req.UserName)

	reportID, err := h.service.GenerateReport(c.Request.Context(), userID, userName, dateToTime(req.StartDate), dateToTime(req.EndDate))
	if err != nil {
		h.logger.Error("failed to generate report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to generate report",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, api.GenerateReportResponse{ReportId: reportID})
}

// ListReports lists report records for a user
func (h *ReportHandler) ListReports(c *gin.Context) {
	userID, ok := requirePathlessUserID(c)
	if !ok {
		return
	}

	reports, err := h.service.ListReports(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list reports",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list reports",
			Details: stringPtr(err.Error()),
		})
		return
	}

	response := make([]api.ReportResponse, 0, len(reports))
	for _, r := range reports {
		response = append(response, api.ReportResponse{
			Id:             stringToUUID(r.ID),
			UserId:         stringToUUID(r.UserID),
			DateRangeStart: timeToDate(r.DateRangeStart),
			DateRangeEnd:   timeToDate(r.DateRangeEnd),
			GeneratedAt:    timePtr(r.GeneratedAt),
		})
	}

	c.JSON(http.StatusOK, response)
}

// DownloadReport streams a report PDF
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	reportID, ok := requirePathID(c)
	if !ok {
		return
	}

	pdfBytes, err := h.service.GetReport(c.Request.Context(), reportID)
	if err != nil {
		h.logger.Error("failed to download report",
			zap.Error(err),
			zap.String("report_id", reportID),
		)
		c.JSON(http.StatusNotFound, api.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Report not found",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", reportID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
