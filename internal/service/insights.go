package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/analytics"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// DefaultSnapshotWindowDays is the lookback window for insight calculations
const DefaultSnapshotWindowDays = 21

// StreakInsight bundles a streak result with the badge earned and a
// motivational message for the next milestone
type StreakInsight struct {
	Streak  model.StreakResult `json:"streak"`
	Badge   model.StreakBadge  `json:"badge"`
	Message string             `json:"message"`
}

// QualityInsight bundles a quality score with actionable improvement suggestions
type QualityInsight struct {
	Score       model.QualityScore `json:"score"`
	Suggestions []string           `json:"suggestions"`
}

// HealthDataRepositoryInterface defines the health log reads insights depend on
type HealthDataRepositoryInterface interface {
	GetBloodPressureByUserID(ctx context.Context, userID string, since time.Time) ([]model.BloodPressureReading, error)
	GetDietEntriesByUserID(ctx context.Context, userID string, since time.Time) ([]model.DietEntry, error)
	GetExerciseEntriesByUserID(ctx context.Context, userID string, since time.Time) ([]model.ExerciseEntry, error)
}

// MedicationRepositoryInterface defines the medication reads insights depend on
type MedicationRepositoryInterface interface {
	FindByUserID(ctx context.Context, userID string) ([]model.Medication, error)
	GetDosesByUserID(ctx context.Context, userID string, since time.Time) ([]model.MedicationDose, error)
}

// InsightsService computes streaks, quality scores and smart reminders from
// a user's recent health data
type InsightsService struct {
	healthRepo  HealthDataRepositoryInterface
	medRepo     MedicationRepositoryInterface
	streaks     *analytics.StreakTracker
	scorer      *analytics.QualityScorer
	prioritizer *analytics.ReminderPrioritizer
	windowDays  int
	logger      *zap.Logger
	clock       func() time.Time
}

// NewInsightsService creates a new InsightsService
func NewInsightsService(
	healthRepo HealthDataRepositoryInterface,
	medRepo MedicationRepositoryInterface,
	streaks *analytics.StreakTracker,
	scorer *analytics.QualityScorer,
	prioritizer *analytics.ReminderPrioritizer,
	windowDays int,
	logger *zap.Logger,
) *InsightsService {
	if windowDays <= 0 {
		windowDays = DefaultSnapshotWindowDays
	}
	return &InsightsService{
		healthRepo:  healthRepo,
		medRepo:     medRepo,
		streaks:     streaks,
		scorer:      scorer,
		prioritizer: prioritizer,
		windowDays:  windowDays,
		logger:      logger,
		clock:       time.Now,
	}
}

// GetSnapshot assembles a user's recent health data into one aggregate
func (s *InsightsService) GetSnapshot(ctx context.Context, userID string) (*model.HealthSnapshot, error) {
	return s.snapshotAt(ctx, userID, s.clock())
}

// snapshotAt assembles the aggregate for a window ending at the given instant,
// so a request that also evaluates rules against "now" uses one clock reading
func (s *InsightsService) snapshotAt(ctx context.Context, userID string, now time.Time) (*model.HealthSnapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	since := now.AddDate(0, 0, -s.windowDays)

	readings, err := s.healthRepo.GetBloodPressureByUserID(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load blood pressure readings: %w", err)
	}

	dietLogs, err := s.healthRepo.GetDietEntriesByUserID(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load diet entries: %w", err)
	}

	exerciseLogs, err := s.healthRepo.GetExerciseEntriesByUserID(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise entries: %w", err)
	}

	medications, err := s.medRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load medications: %w", err)
	}

	doses, err := s.medRepo.GetDosesByUserID(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load medication doses: %w", err)
	}

	return &model.HealthSnapshot{
		UserID:        userID,
		WindowDays:    s.windowDays,
		BloodPressure: readings,
		DietLogs:      dietLogs,
		ExerciseLogs:  exerciseLogs,
		Medications:   medications,
		Doses:         doses,
	}, nil
}

// GetStreak calculates the user's consecutive-day logging streak
func (s *InsightsService) GetStreak(ctx context.Context, userID string) (*StreakInsight, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	now := s.clock()

	// Streaks look back further than the snapshot window so long runs survive
	since := now.AddDate(0, -13, 0)
	readings, err := s.healthRepo.GetBloodPressureByUserID(ctx, userID, since)
	if err != nil {
		s.logger.Error("failed to load readings for streak",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to load readings for streak: %w", err)
	}

	logTimes := make([]time.Time, 0, len(readings))
	for _, r := range readings {
		logTimes = append(logTimes, r.MeasuredAt)
	}

	streak := s.streaks.CalculateStreak(logTimes, now)
	badge := s.streaks.MilestoneBadge(streak.CurrentStreak)
	message := analytics.MotivationalMessage(streak.DaysUntilMilestone)

	s.logger.Info("streak calculated",
		zap.String("user_id", userID),
		zap.Int("current_streak", streak.CurrentStreak),
		zap.Int("longest_streak", streak.LongestStreak),
	)

	return &StreakInsight{
		Streak:  streak,
		Badge:   badge,
		Message: message,
	}, nil
}

// GetQualityScore calculates the user's data quality score and suggestions
func (s *InsightsService) GetQualityScore(ctx context.Context, userID string) (*QualityInsight, error) {
	snapshot, err := s.GetSnapshot(ctx, userID)
	if err != nil {
		s.logger.Error("failed to build snapshot for quality score",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	score := s.scorer.CalculateDataQualityScore(*snapshot, s.windowDays)
	suggestions := s.scorer.GetImprovementSuggestions(*snapshot, s.windowDays)

	s.logger.Info("quality score calculated",
		zap.String("user_id", userID),
		zap.Int("overall", score.Overall),
		zap.Int("suggestions", len(suggestions)),
	)

	return &QualityInsight{
		Score:       score,
		Suggestions: suggestions,
	}, nil
}

// GetReminders generates the user's current smart reminders in priority order
func (s *InsightsService) GetReminders(ctx context.Context, userID string) ([]model.Reminder, error) {
	now := s.clock()

	snapshot, err := s.snapshotAt(ctx, userID, now)
	if err != nil {
		s.logger.Error("failed to build snapshot for reminders",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	reminders := s.prioritizer.GenerateSmartReminders(*snapshot, now)

	s.logger.Info("reminders generated",
		zap.String("user_id", userID),
		zap.Int("count", len(reminders)),
	)

	return reminders, nil
}

// GetUnannotatedHighReadings lists high readings the user has not explained
// with a note
func (s *InsightsService) GetUnannotatedHighReadings(ctx context.Context, userID string) ([]model.BloodPressureReading, error) {
	snapshot, err := s.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.scorer.FindHighBPWithoutNotes(snapshot.BloodPressure), nil
}

// GetContextlessReadingDays lists days with a reading but no same-day diet
// or exercise log
func (s *InsightsService) GetContextlessReadingDays(ctx context.Context, userID string) ([]time.Time, error) {
	snapshot, err := s.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.scorer.FindBPWithoutContext(snapshot.BloodPressure, snapshot.DietLogs, snapshot.ExerciseLogs), nil
}
