package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hallengray/BPT-sub001/pkg/model"
)

func TestLogBloodPressure_ValidationErrors(t *testing.T) {
	service := &HealthDataService{}

	ctx := context.Background()

	tests := []struct {
		name        string
		userID      string
		reading     *model.BloodPressureReading
		expectedErr string
	}{
		{
			name:        "empty user ID",
			userID:      "",
			reading:     &model.BloodPressureReading{Systolic: 120, Diastolic: 80, Pulse: 70},
			expectedErr: "user ID is required",
		},
		{
			name:        "systolic too low",
			userID:      "user-123",
			reading:     &model.BloodPressureReading{Systolic: 60, Diastolic: 80, Pulse: 70},
			expectedErr: "systolic value out of range",
		},
		{
			name:        "systolic too high",
			userID:      "user-123",
			reading:     &model.BloodPressureReading{Systolic: 260, Diastolic: 80, Pulse: 70},
			expectedErr: "systolic value out of range",
		},
		{
			name:        "diastolic too low",
			userID:      "user-123",
			reading:     &model.BloodPressureReading{Systolic: 120, Diastolic: 30, Pulse: 70},
			expectedErr: "diastolic value out of range",
		},
		{
			name:        "diastolic too high",
			userID:      "user-123",
			reading:     &model.BloodPressureReading{Systolic: 120, Diastolic: 160, Pulse: 70},
			expectedErr: "diastolic value out of range",
		},
		{
			name:        "pulse too low",
			userID:      "user-123",
			reading:     &model.BloodPressureReading{Systolic: 120, Diastolic: 80, Pulse: 20},
			expectedErr: "pulse value out of range",
		},
		{
			name:        "pulse too high",
			userID:      "user-123",
			reading:     &model.BloodPressureReading{Systolic: 120, Diastolic: 80, Pulse: 230},
			expectedErr: "pulse value out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.LogBloodPressure(ctx, tt.userID, tt.reading)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestLogDietEntry_ValidationErrors(t *testing.T) {
	service := &HealthDataService{}

	ctx := context.Background()

	tests := []struct {
		name        string
		userID      string
		entry       *model.DietEntry
		expectedErr string
	}{
		{
			name:        "empty user ID",
			userID:      "",
			entry:       &model.DietEntry{MealType: "lunch", Description: "Salad"},
			expectedErr: "user ID is required",
		},
		{
			name:        "blank description",
			userID:      "user-123",
			entry:       &model.DietEntry{MealType: "lunch", Description: "   "},
			expectedErr: "meal description is required",
		},
		{
			name:        "invalid meal type",
			userID:      "user-123",
			entry:       &model.DietEntry{MealType: "brunch", Description: "Pancakes"},
			expectedErr: "invalid meal type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.LogDietEntry(ctx, tt.userID, tt.entry)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestLogExerciseEntry_ValidationErrors(t *testing.T) {
	service := &HealthDataService{}

	ctx := context.Background()

	tests := []struct {
		name        string
		userID      string
		entry       *model.ExerciseEntry
		expectedErr string
	}{
		{
			name:        "empty user ID",
			userID:      "",
			entry:       &model.ExerciseEntry{Activity: "Walking", DurationMinutes: 30},
			expectedErr: "user ID is required",
		},
		{
			name:        "blank activity",
			userID:      "user-123",
			entry:       &model.ExerciseEntry{Activity: " ", DurationMinutes: 30},
			expectedErr: "activity is required",
		},
		{
			name:        "zero duration",
			userID:      "user-123",
			entry:       &model.ExerciseEntry{Activity: "Walking", DurationMinutes: 0},
			expectedErr: "duration must be positive",
		},
		{
			name:        "negative duration",
			userID:      "user-123",
			entry:       &model.ExerciseEntry{Activity: "Walking", DurationMinutes: -10},
			expectedErr: "duration must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.LogExerciseEntry(ctx, tt.userID, tt.entry)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestGetBloodPressureHistory_RequiresPositiveWindow(t *testing.T) {
	service := &HealthDataService{}

	_, err := service.GetBloodPressureHistory(context.Background(), "user-123", 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "window days must be positive")
}
