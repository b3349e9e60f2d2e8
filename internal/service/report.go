package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/azure"
	"github.com/hallengray/BPT-sub001/internal/pdf"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// ReportRepositoryInterface defines the report record persistence operations
type ReportRepositoryInterface interface {
	SaveReport(ctx context.Context, report *model.Report) error
	GetReportByID(ctx context.Context, reportID string) (*model.Report, error)
	GetReportsByUserID(ctx context.Context, userID string) ([]model.Report, error)
}

// ReportService manages health report generation
type ReportService struct {
	reportRepo ReportRepositoryInterface
	healthRepo HealthDataRepositoryInterface
	medRepo    MedicationRepositoryInterface
	insights   *InsightsService
	blobClient azure.BlobStorage
	pdfGen     *pdf.PDFGenerator
	logger     *zap.Logger
	clock      func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo ReportRepositoryInterface,
	healthRepo HealthDataRepositoryInterface,
	medRepo MedicationRepositoryInterface,
	insights *InsightsService,
	blobClient azure.BlobStorage,
	pdfGen *pdf.PDFGenerator,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		healthRepo: healthRepo,
		medRepo:    medRepo,
		insights:   insights,
		blobClient: blobClient,
		pdfGen:     pdfGen,
		logger:     logger,
		clock:      time.Now,
	}
}

// GenerateReport builds a PDF report for the date range, uploads it to blob
// storage and records it. Returns the report ID.
func (s *ReportService) GenerateReport(ctx context.Context, userID string, userName string, startDate, endDate time.Time) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user ID is required")
	}
	if endDate.Before(startDate) {
		return "", fmt.Errorf("end date must not precede start date")
	}

	s.logger.Info("generating health report",
		zap.String("user_id", userID),
		zap.Time("start_date", startDate),
		zap.Time("end_date", endDate),
	)

	reportID := uuid.New().String()

	bloodPressure, err := s.healthRepo.GetBloodPressureByUserID(ctx, userID, startDate)
	if err != nil {
		s.logger.Error("failed to get blood pressure for report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return "", fmt.Errorf("failed to get blood pressure: %w", err)
	}

	medications, err := s.medRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get medications for report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return "", fmt.Errorf("failed to get medications: %w", err)
	}

	doses, err := s.medRepo.GetDosesByUserID(ctx, userID, startDate)
	if err != nil {
		s.logger.Error("failed to get doses for report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return "", fmt.Errorf("failed to get doses: %w", err)
	}

	dietLogs, err := s.healthRepo.GetDietEntriesByUserID(ctx, userID, startDate)
	if err != nil {
		s.logger.Error("failed to get diet entries for report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return "", fmt.Errorf("failed to get diet entries: %w", err)
	}

	exerciseLogs, err := s.healthRepo.GetExerciseEntriesByUserID(ctx, userID, startDate)
	if err != nil {
		s.logger.Error("failed to get exercise entries for report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return "", fmt.Errorf("failed to get exercise entries: %w", err)
	}

	streakInsight, err := s.insights.GetStreak(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to calculate streak: %w", err)
	}

	qualityInsight, err := s.insights.GetQualityScore(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to calculate quality score: %w", err)
	}

	dateRange := fmt.Sprintf("%s to %s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	reportData := &pdf.ReportData{
		UserName:      userName,
		DateRange:     dateRange,
		BloodPressure: bloodPressure,
		Medications:   medications,
		Doses:         doses,
		DietLogs:      dietLogs,
		ExerciseLogs:  exerciseLogs,
		Streak:        streakInsight.Streak,
		Quality:       qualityInsight.Score,
		Suggestions:   qualityInsight.Suggestions,
	}

	pdfBytes, err := s.pdfGen.Generate(reportData)
	if err != nil {
		s.logger.Error("failed to generate PDF",
			zap.Error(err),
			zap.String("report_id", reportID),
		)
		return "", fmt.Errorf("failed to generate PDF: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.pdf", reportID, s.clock().Format("20060102"))
	blobPath, err := s.blobClient.UploadPDF(ctx, filename, pdfBytes)
	if err != nil {
		s.logger.Error("failed to upload PDF to blob storage",
			zap.Error(err),
			zap.String("report_id", reportID),
		)
		return "", fmt.Errorf("failed to upload PDF: %w", err)
	}

	report := &model.Report{
		ID:             reportID,
		UserID:         userID,
		DateRangeStart: startDate,
		DateRangeEnd:   endDate,
		FilePath:       blobPath,
		GeneratedAt:    s.clock(),
	}

	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		s.logger.Error("failed to save report record",
			zap.Error(err),
			zap.String("report_id", reportID),
		)
		return "", fmt.Errorf("failed to save report record: %w", err)
	}

	s.logger.Info("health report generated successfully",
		zap.String("report_id", reportID),
		zap.String("user_id", userID),
		zap.String("blob_path", blobPath),
	)

	return reportID, nil
}

// GetReport retrieves a report PDF for download
func (s *ReportService) GetReport(ctx context.Context, reportID string) ([]byte, error) {
	if reportID == "" {
		return nil, fmt.Errorf("report ID is required")
	}

	report, err := s.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		s.logger.Error("failed to get report record",
			zap.Error(err),
			zap.String("report_id", reportID),
		)
		return nil, fmt.Errorf("failed to get report record: %w", err)
	}

	pdfBytes, err := s.blobClient.DownloadPDF(ctx, report.FilePath)
	if err != nil {
		s.logger.Error("failed to download PDF from blob storage",
			zap.Error(err),
			zap.String("report_id", reportID),
			zap.String("blob_path", report.FilePath),
		)
		return nil, fmt.Errorf("failed to download PDF: %w", err)
	}

	return pdfBytes, nil
}

// ListReports retrieves all reports for a user
func (s *ReportService) ListReports(ctx context.Context, userID string) ([]model.Report, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	reports, err := s.reportRepo.GetReportsByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get reports for user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}

	return reports, nil
}
