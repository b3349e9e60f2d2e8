package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/analytics"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// MockHealthDataRepository is a mock implementation of HealthDataRepositoryInterface
type MockHealthDataRepository struct {
	mock.Mock
}

func (m *MockHealthDataRepository) GetBloodPressureByUserID(ctx context.Context, userID string, since time.Time) ([]model.BloodPressureReading, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BloodPressureReading), args.Error(1)
}

func (m *MockHealthDataRepository) GetDietEntriesByUserID(ctx context.Context, userID string, since time.Time) ([]model.DietEntry, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DietEntry), args.Error(1)
}

func (m *MockHealthDataRepository) GetExerciseEntriesByUserID(ctx context.Context, userID string, since time.Time) ([]model.ExerciseEntry, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExerciseEntry), args.Error(1)
}

// MockMedicationRepository is a mock implementation of MedicationRepositoryInterface
type MockMedicationRepository struct {
	mock.Mock
}

func (m *MockMedicationRepository) FindByUserID(ctx context.Context, userID string) ([]model.Medication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}

func (m *MockMedicationRepository) GetDosesByUserID(ctx context.Context, userID string, since time.Time) ([]model.MedicationDose, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicationDose), args.Error(1)
}

var insightsNow = time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)

func newTestInsightsService(healthRepo *MockHealthDataRepository, medRepo *MockMedicationRepository) *InsightsService {
	svc := NewInsightsService(
		healthRepo,
		medRepo,
		analytics.NewStreakTracker(),
		analytics.NewQualityScorer(),
		analytics.NewReminderPrioritizer(),
		21,
		zap.NewNop(),
	)
	svc.clock = func() time.Time { return insightsNow }
	return svc
}

func TestInsightsService_GetStreak_Success(t *testing.T) {
	// Arrange
	healthRepo := new(MockHealthDataRepository)
	medRepo := new(MockMedicationRepository)
	service := newTestInsightsService(healthRepo, medRepo)

	ctx := context.Background()
	userID := "user-123"

	readings := []model.BloodPressureReading{
		{MeasuredAt: insightsNow},
		{MeasuredAt: insightsNow.AddDate(0, 0, -1)},
		{MeasuredAt: insightsNow.AddDate(0, 0, -2)},
	}
	healthRepo.On("GetBloodPressureByUserID", ctx, userID, mock.Anything).Return(readings, nil)

	// Act
	insight, err := service.GetStreak(ctx, userID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, insight)
	assert.Equal(t, 3, insight.Streak.CurrentStreak)
	assert.Equal(t, 7, insight.Streak.NextMilestone)
	assert.Equal(t, "Getting Started", insight.Badge.Name)
	assert.NotEmpty(t, insight.Message)

	healthRepo.AssertExpectations(t)
}

func TestInsightsService_GetStreak_EmptyHistory(t *testing.T) {
	healthRepo := new(MockHealthDataRepository)
	medRepo := new(MockMedicationRepository)
	service := newTestInsightsService(healthRepo, medRepo)

	ctx := context.Background()
	userID := "user-123"

	healthRepo.On("GetBloodPressureByUserID", ctx, userID, mock.Anything).Return([]model.BloodPressureReading{}, nil)

	insight, err := service.GetStreak(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, 0, insight.Streak.CurrentStreak)
	assert.Nil(t, insight.Streak.LastLogDate)
}

func TestInsightsService_GetQualityScore_Success(t *testing.T) {
	// Arrange
	healthRepo := new(MockHealthDataRepository)
	medRepo := new(MockMedicationRepository)
	service := newTestInsightsService(healthRepo, medRepo)

	ctx := context.Background()
	userID := "user-123"

	readings := make([]model.BloodPressureReading, 0, 21)
	dietLogs := make([]model.DietEntry, 0, 21)
	for i := 0; i < 21; i++ {
		day := insightsNow.AddDate(0, 0, -i)
		readings = append(readings, model.BloodPressureReading{Systolic: 120, Diastolic: 80, Pulse: 70, MeasuredAt: day})
		dietLogs = append(dietLogs, model.DietEntry{MealType: "lunch", Description: "Salad", LoggedAt: day})
	}

	healthRepo.On("GetBloodPressureByUserID", ctx, userID, mock.Anything).Return(readings, nil)
	healthRepo.On("GetDietEntriesByUserID", ctx, userID, mock.Anything).Return(dietLogs, nil)
	healthRepo.On("GetExerciseEntriesByUserID", ctx, userID, mock.Anything).Return([]model.ExerciseEntry{
		{Activity: "Walking", DurationMinutes: 30, LoggedAt: insightsNow},
	}, nil)
	medRepo.On("FindByUserID", ctx, userID).Return([]model.Medication{}, nil)
	medRepo.On("GetDosesByUserID", ctx, userID, mock.Anything).Return([]model.MedicationDose{}, nil)

	// Act
	insight, err := service.GetQualityScore(ctx, userID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 100, insight.Score.Overall)
	assert.Equal(t, 100, insight.Score.Breakdown["bp_logging"])
	assert.Empty(t, insight.Suggestions)

	healthRepo.AssertExpectations(t)
	medRepo.AssertExpectations(t)
}

func TestInsightsService_GetQualityScore_SparseData(t *testing.T) {
	healthRepo := new(MockHealthDataRepository)
	medRepo := new(MockMedicationRepository)
	service := newTestInsightsService(healthRepo, medRepo)

	ctx := context.Background()
	userID := "user-123"

	healthRepo.On("GetBloodPressureByUserID", ctx, userID, mock.Anything).Return([]model.BloodPressureReading{}, nil)
	healthRepo.On("GetDietEntriesByUserID", ctx, userID, mock.Anything).Return([]model.DietEntry{}, nil)
	healthRepo.On("GetExerciseEntriesByUserID", ctx, userID, mock.Anything).Return([]model.ExerciseEntry{}, nil)
	medRepo.On("FindByUserID", ctx, userID).Return([]model.Medication{}, nil)
	medRepo.On("GetDosesByUserID", ctx, userID, mock.Anything).Return([]model.MedicationDose{}, nil)

	insight, err := service.GetQualityScore(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, 0, insight.Score.Breakdown["bp_logging"])
	assert.NotEmpty(t, insight.Suggestions)
}

func TestInsightsService_GetReminders_PendingDoseRanksFirst(t *testing.T) {
	// Arrange
	healthRepo := new(MockHealthDataRepository)
	medRepo := new(MockMedicationRepository)
	service := newTestInsightsService(healthRepo, medRepo)

	ctx := context.Background()
	userID := "user-123"

	healthRepo.On("GetBloodPressureByUserID", ctx, userID, mock.Anything).Return([]model.BloodPressureReading{}, nil)
	healthRepo.On("GetDietEntriesByUserID", ctx, userID, mock.Anything).Return([]model.DietEntry{}, nil)
	healthRepo.On("GetExerciseEntriesByUserID", ctx, userID, mock.Anything).Return([]model.ExerciseEntry{
		{Activity: "Walking", DurationMinutes: 30, LoggedAt: insightsNow.AddDate(0, 0, -1)},
	}, nil)
	medRepo.On("FindByUserID", ctx, userID).Return([]model.Medication{}, nil)
	medRepo.On("GetDosesByUserID", ctx, userID, mock.Anything).Return([]model.MedicationDose{
		{ScheduledTime: insightsNow.Add(-2 * time.Hour), WasTaken: false},
	}, nil)

	// Act
	reminders, err := service.GetReminders(ctx, userID)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, reminders, 2)
	assert.Equal(t, model.ReminderMedication, reminders[0].Type)
	assert.Equal(t, model.ReminderBloodPressure, reminders[1].Type)

	healthRepo.AssertExpectations(t)
	medRepo.AssertExpectations(t)
}

func TestInsightsService_GetSnapshot_RequiresUserID(t *testing.T) {
	service := &InsightsService{}

	_, err := service.GetSnapshot(context.Background(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "user ID is required")
}

func TestInsightsService_GetReminders_SingleClockReading(t *testing.T) {
	// Arrange: a ticking clock makes any second reading observable in the
	// window cutoff passed to the repositories
	healthRepo := new(MockHealthDataRepository)
	medRepo := new(MockMedicationRepository)
	service := newTestInsightsService(healthRepo, medRepo)

	clockReads := 0
	service.clock = func() time.Time {
		clockReads++
		return insightsNow.Add(time.Duration(clockReads) * time.Hour)
	}

	ctx := context.Background()
	userID := "user-123"
	expectedSince := insightsNow.Add(time.Hour).AddDate(0, 0, -21)

	healthRepo.On("GetBloodPressureByUserID", ctx, userID, expectedSince).Return([]model.BloodPressureReading{}, nil)
	healthRepo.On("GetDietEntriesByUserID", ctx, userID, expectedSince).Return([]model.DietEntry{}, nil)
	healthRepo.On("GetExerciseEntriesByUserID", ctx, userID, expectedSince).Return([]model.ExerciseEntry{}, nil)
	medRepo.On("FindByUserID", ctx, userID).Return([]model.Medication{}, nil)
	medRepo.On("GetDosesByUserID", ctx, userID, expectedSince).Return([]model.MedicationDose{}, nil)

	// Act
	_, err := service.GetReminders(ctx, userID)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, clockReads)

	healthRepo.AssertExpectations(t)
	medRepo.AssertExpectations(t)
}
