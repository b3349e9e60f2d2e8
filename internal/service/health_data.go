package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/repository"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// HealthDataService handles blood pressure, diet and exercise logging
type HealthDataService struct {
	repo   *repository.HealthDataRepository
	logger *zap.Logger
	clock  func() time.Time
}

// NewHealthDataService creates a new HealthDataService
func NewHealthDataService(repo *repository.HealthDataRepository, logger *zap.Logger) *HealthDataService {
	return &HealthDataService{
		repo:   repo,
		logger: logger,
		clock:  time.Now,
	}
}

// LogBloodPressure validates and stores a blood pressure reading
func (s *HealthDataService) LogBloodPressure(ctx context.Context, userID string, reading *model.BloodPressureReading) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if reading.Systolic < 70 || reading.Systolic > 250 {
		return fmt.Errorf("systolic value out of range: %d (must be 70-250)", reading.Systolic)
	}
	if reading.Diastolic < 40 || reading.Diastolic > 150 {
		return fmt.Errorf("diastolic value out of range: %d (must be 40-150)", reading.Diastolic)
	}
	if reading.Pulse < 30 || reading.Pulse > 220 {
		return fmt.Errorf("pulse value out of range: %d (must be 30-220)", reading.Pulse)
	}

	if reading.ID == "" {
		reading.ID = uuid.New().String()
	}
	reading.UserID = userID

	if reading.MeasuredAt.IsZero() {
		reading.MeasuredAt = s.clock()
	}

	if err := s.repo.SaveBloodPressure(ctx, reading); err != nil {
		s.logger.Error("failed to log blood pressure",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to log blood pressure: %w", err)
	}

	s.logger.Info("blood pressure logged",
		zap.String("reading_id", reading.ID),
		zap.String("user_id", userID),
		zap.Int("systolic", reading.Systolic),
		zap.Int("diastolic", reading.Diastolic),
	)

	return nil
}

// GetBloodPressureHistory retrieves readings over the past windowDays
func (s *HealthDataService) GetBloodPressureHistory(ctx context.Context, userID string, windowDays int) ([]model.BloodPressureReading, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("window days must be positive: %d", windowDays)
	}

	since := s.clock().AddDate(0, 0, -windowDays)
	readings, err := s.repo.GetBloodPressureByUserID(ctx, userID, since)
	if err != nil {
		s.logger.Error("failed to get blood pressure history",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to get blood pressure history: %w", err)
	}

	return readings, nil
}

// LogDietEntry validates and stores a meal log
func (s *HealthDataService) LogDietEntry(ctx context.Context, userID string, entry *model.DietEntry) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(entry.Description) == "" {
		return fmt.Errorf("meal description is required")
	}
	switch entry.MealType {
	case "breakfast", "lunch", "dinner", "snack":
	default:
		return fmt.Errorf("invalid meal type: %s", entry.MealType)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.UserID = userID

	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = s.clock()
	}

	if err := s.repo.SaveDietEntry(ctx, entry); err != nil {
		s.logger.Error("failed to log diet entry",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to log diet entry: %w", err)
	}

	s.logger.Info("diet entry logged",
		zap.String("entry_id", entry.ID),
		zap.String("user_id", userID),
		zap.String("meal_type", entry.MealType),
	)

	return nil
}

// GetDietHistory retrieves meal logs over the past windowDays
func (s *HealthDataService) GetDietHistory(ctx context.Context, userID string, windowDays int) ([]model.DietEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("window days must be positive: %d", windowDays)
	}

	since := s.clock().AddDate(0, 0, -windowDays)
	entries, err := s.repo.GetDietEntriesByUserID(ctx, userID, since)
	if err != nil {
		s.logger.Error("failed to get diet history",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to get diet history: %w", err)
	}

	return entries, nil
}

// LogExerciseEntry validates and stores an exercise log
func (s *HealthDataService) LogExerciseEntry(ctx context.Context, userID string, entry *model.ExerciseEntry) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if strings.TrimSpace(entry.Activity) == "" {
		return fmt.Errorf("activity is required")
	}
	if entry.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive: %d", entry.DurationMinutes)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.UserID = userID

	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = s.clock()
	}

	if err := s.repo.SaveExerciseEntry(ctx, entry); err != nil {
		s.logger.Error("failed to log exercise entry",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to log exercise entry: %w", err)
	}

	s.logger.Info("exercise entry logged",
		zap.String("entry_id", entry.ID),
		zap.String("user_id", userID),
		zap.String("activity", entry.Activity),
	)

	return nil
}

// GetExerciseHistory retrieves exercise logs over the past windowDays
func (s *HealthDataService) GetExerciseHistory(ctx context.Context, userID string, windowDays int) ([]model.ExerciseEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if windowDays <= 0 {
		return nil, fmt.Errorf("window days must be positive: %d", windowDays)
	}

	since := s.clock().AddDate(0, 0, -windowDays)
	entries, err := s.repo.GetExerciseEntriesByUserID(ctx, userID, since)
	if err != nil {
		s.logger.Error("failed to get exercise history",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to get exercise history: %w", err)
	}

	return entries, nil
}
