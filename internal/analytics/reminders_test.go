package analytics

import (
	"testing"
	"time"

	"github.com/hallengray/BPT-sub001/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reminderNow = time.Date(2026, 6, 21, 15, 0, 0, 0, time.UTC)

func TestReminderPrioritizer_EmptySnapshot(t *testing.T) {
	prioritizer := NewReminderPrioritizer()

	reminders := prioritizer.GenerateSmartReminders(model.HealthSnapshot{UserID: "user-1"}, reminderNow)

	// No BP today and no exercise ever: two reminders, BP outranks exercise
	require.Len(t, reminders, 2)
	assert.Equal(t, model.ReminderBloodPressure, reminders[0].Type)
	assert.Equal(t, model.PriorityHigh, reminders[0].Priority)
	assert.Equal(t, model.ReminderExercise, reminders[1].Type)
	assert.Equal(t, model.PriorityMedium, reminders[1].Priority)
}

func TestReminderPrioritizer_PendingDosesAggregated(t *testing.T) {
	// Arrange: three overdue doses, one future, one already taken
	prioritizer := NewReminderPrioritizer()
	snapshot := model.HealthSnapshot{
		UserID: "user-1",
		Doses: []model.MedicationDose{
			{ID: "d1", ScheduledTime: reminderNow.Add(-3 * time.Hour)},
			{ID: "d2", ScheduledTime: reminderNow.Add(-2 * time.Hour)},
			{ID: "d3", ScheduledTime: reminderNow.Add(-26 * time.Hour)},
			{ID: "d4", ScheduledTime: reminderNow.Add(4 * time.Hour)},
			{ID: "d5", ScheduledTime: reminderNow.Add(-5 * time.Hour), WasTaken: true},
		},
	}

	// Act
	reminders := prioritizer.GenerateSmartReminders(snapshot, reminderNow)

	// Assert: one aggregated medication reminder, ranked first
	require.NotEmpty(t, reminders)
	assert.Equal(t, model.ReminderMedication, reminders[0].Type)
	assert.Contains(t, reminders[0].Message, "3")
}

func TestReminderPrioritizer_NoBPReminderWhenLoggedToday(t *testing.T) {
	prioritizer := NewReminderPrioritizer()
	snapshot := model.HealthSnapshot{
		UserID: "user-1",
		BloodPressure: []model.BloodPressureReading{
			{ID: "bp1", MeasuredAt: reminderNow.Add(-2 * time.Hour)},
		},
		ExerciseLogs: []model.ExerciseEntry{
			{ID: "e1", LoggedAt: reminderNow.Add(-24 * time.Hour)},
		},
		DietLogs: []model.DietEntry{
			{ID: "diet1", LoggedAt: reminderNow.Add(-1 * time.Hour)},
		},
	}

	reminders := prioritizer.GenerateSmartReminders(snapshot, reminderNow)

	for _, r := range reminders {
		assert.NotEqual(t, model.ReminderBloodPressure, r.Type)
	}
}

func TestReminderPrioritizer_DietContextOnlyWithReadingToday(t *testing.T) {
	prioritizer := NewReminderPrioritizer()

	t.Run("reading today without diet log emits low-priority diet reminder", func(t *testing.T) {
		snapshot := model.HealthSnapshot{
			UserID: "user-1",
			BloodPressure: []model.BloodPressureReading{
				{ID: "bp1", MeasuredAt: reminderNow.Add(-time.Hour)},
			},
			ExerciseLogs: []model.ExerciseEntry{
				{ID: "e1", LoggedAt: reminderNow},
			},
		}
		reminders := prioritizer.GenerateSmartReminders(snapshot, reminderNow)
		require.Len(t, reminders, 1)
		assert.Equal(t, model.ReminderDiet, reminders[0].Type)
		assert.Equal(t, model.PriorityLow, reminders[0].Priority)
	})

	t.Run("no reading today suppresses the diet rule", func(t *testing.T) {
		snapshot := model.HealthSnapshot{
			UserID: "user-1",
			ExerciseLogs: []model.ExerciseEntry{
				{ID: "e1", LoggedAt: reminderNow},
			},
		}
		reminders := prioritizer.GenerateSmartReminders(snapshot, reminderNow)
		for _, r := range reminders {
			assert.NotEqual(t, model.ReminderDiet, r.Type)
		}
	})
}

func TestReminderPrioritizer_ExerciseGap(t *testing.T) {
	prioritizer := NewReminderPrioritizer()

	t.Run("recent exercise suppresses the reminder", func(t *testing.T) {
		snapshot := model.HealthSnapshot{
			UserID: "user-1",
			ExerciseLogs: []model.ExerciseEntry{
				{ID: "e1", LoggedAt: reminderNow.AddDate(0, 0, -2)},
			},
		}
		reminders := prioritizer.GenerateSmartReminders(snapshot, reminderNow)
		for _, r := range reminders {
			assert.NotEqual(t, model.ReminderExercise, r.Type)
		}
	})

	t.Run("three-day-old exercise triggers the reminder", func(t *testing.T) {
		snapshot := model.HealthSnapshot{
			UserID: "user-1",
			ExerciseLogs: []model.ExerciseEntry{
				{ID: "e1", LoggedAt: reminderNow.AddDate(0, 0, -3)},
			},
		}
		reminders := prioritizer.GenerateSmartReminders(snapshot, reminderNow)
		found := false
		for _, r := range reminders {
			if r.Type == model.ReminderExercise {
				found = true
				assert.Equal(t, model.PriorityMedium, r.Priority)
			}
		}
		assert.True(t, found)
	})
}

func TestReminderPrioritizer_StableOrdering(t *testing.T) {
	// Arrange: snapshot that fires every rule at once
	prioritizer := NewReminderPrioritizer()
	snapshot := model.HealthSnapshot{
		UserID: "user-1",
		BloodPressure: []model.BloodPressureReading{
			{ID: "bp1", MeasuredAt: reminderNow.Add(-time.Hour)},
		},
		Doses: []model.MedicationDose{
			{ID: "d1", ScheduledTime: reminderNow.Add(-time.Hour)},
		},
	}

	// Act
	reminders := prioritizer.GenerateSmartReminders(snapshot, reminderNow)

	// Assert: medication (high, weight 4) > exercise (medium) > diet (low)
	require.Len(t, reminders, 3)
	assert.Equal(t, model.ReminderMedication, reminders[0].Type)
	assert.Equal(t, model.ReminderExercise, reminders[1].Type)
	assert.Equal(t, model.ReminderDiet, reminders[2].Type)
}
