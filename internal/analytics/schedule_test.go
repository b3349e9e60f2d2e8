package analytics

import (
	"testing"
	"time"

	"github.com/hallengray/BPT-sub001/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_GenerateDoses_OnceDaily(t *testing.T) {
	// Arrange
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Act
	doses := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyOnceDaily, []string{"08:00"}, start, nil)

	// Assert: one dose per day, start day through the horizon boundary inclusive
	require.Len(t, doses, DefaultHorizonDays+1)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), doses[0].ScheduledTime)
	assert.Equal(t, time.Date(2026, 3, 31, 8, 0, 0, 0, time.UTC), doses[len(doses)-1].ScheduledTime)
	for _, dose := range doses {
		assert.Equal(t, "med-1", dose.MedicationID)
		assert.Equal(t, "user-1", dose.UserID)
		assert.False(t, dose.WasTaken)
		assert.Nil(t, dose.TakenAt)
	}
}

func TestScheduler_GenerateDoses_SkipsTimesBeforeStartInstant(t *testing.T) {
	// Arrange: start mid-afternoon, so the morning slot on day one never happened
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)

	// Act
	doses := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyTwiceDaily, []string{"08:00", "20:00"}, start, nil)

	// Assert: first emitted dose is the evening slot of the start day
	require.NotEmpty(t, doses)
	assert.Equal(t, time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC), doses[0].ScheduledTime)
	for _, dose := range doses {
		assert.False(t, dose.ScheduledTime.Before(start))
	}
}

func TestScheduler_GenerateDoses_Weekly(t *testing.T) {
	// Arrange
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

	// Act
	doses := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyWeekly, []string{"09:00"}, start, nil)

	// Assert: 7-day increments within the 30-day horizon
	require.Len(t, doses, 5)
	for i, dose := range doses {
		expected := start.AddDate(0, 0, i*7).Add(9 * time.Hour)
		assert.Equal(t, expected, dose.ScheduledTime)
	}
}

func TestScheduler_GenerateDoses_AsNeededIsEmpty(t *testing.T) {
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	doses := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyAsNeeded, []string{"08:00", "20:00"}, start, nil)

	assert.Empty(t, doses)
}

func TestScheduler_GenerateDoses_EndDateBoundsWindow(t *testing.T) {
	// Arrange: end date three days in, well inside the horizon
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	// Act
	doses := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyOnceDaily, []string{"08:00"}, start, &end)

	// Assert: days 1..4 inclusive
	assert.Len(t, doses, 4)
}

func TestScheduler_GenerateDoses_EndBeforeStartYieldsNothing(t *testing.T) {
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -5)

	doses := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyOnceDaily, []string{"08:00"}, start, &end)

	assert.Empty(t, doses)
}

func TestScheduler_GenerateDoses_EmptyTimesOfDay(t *testing.T) {
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	doses := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyOnceDaily, nil, start, nil)

	assert.Empty(t, doses)
}

func TestScheduler_GenerateDoses_OtherExpandsDaily(t *testing.T) {
	scheduler := NewScheduler()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	daily := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyOnceDaily, []string{"08:00"}, start, nil)
	other := scheduler.GenerateDoses("med-1", "user-1", model.FrequencyOther, []string{"08:00"}, start, nil)

	assert.Equal(t, daily, other)
}

func TestScheduler_ShouldRegenerate(t *testing.T) {
	scheduler := NewScheduler()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("empty dose list always regenerates", func(t *testing.T) {
		assert.True(t, scheduler.ShouldRegenerate(nil, now))
		assert.True(t, scheduler.ShouldRegenerate([]model.MedicationDose{}, now))
	})

	t.Run("coverage beyond the buffer does not regenerate", func(t *testing.T) {
		doses := []model.MedicationDose{
			{ScheduledTime: now.AddDate(0, 0, 1)},
			{ScheduledTime: now.AddDate(0, 0, DefaultBufferDays+2)},
		}
		assert.False(t, scheduler.ShouldRegenerate(doses, now))
	})

	t.Run("coverage inside the buffer regenerates", func(t *testing.T) {
		doses := []model.MedicationDose{
			{ScheduledTime: now.AddDate(0, 0, 1)},
			{ScheduledTime: now.AddDate(0, 0, DefaultBufferDays-1)},
		}
		assert.True(t, scheduler.ShouldRegenerate(doses, now))
	})
}

func TestExpectedDosesPerDay(t *testing.T) {
	assert.Equal(t, 1, ExpectedDosesPerDay(model.FrequencyOnceDaily))
	assert.Equal(t, 2, ExpectedDosesPerDay(model.FrequencyTwiceDaily))
	assert.Equal(t, 3, ExpectedDosesPerDay(model.FrequencyThreeTimesDaily))
	assert.Equal(t, 1, ExpectedDosesPerDay(model.FrequencyWeekly))
	assert.Equal(t, 0, ExpectedDosesPerDay(model.FrequencyAsNeeded))
	assert.Equal(t, 1, ExpectedDosesPerDay(model.FrequencyOther))
}

func TestFrequencyLabel(t *testing.T) {
	assert.Equal(t, "Once daily", FrequencyLabel(model.FrequencyOnceDaily))
	assert.Equal(t, "As needed", FrequencyLabel(model.FrequencyAsNeeded))
	assert.Equal(t, "Custom schedule", FrequencyLabel(model.MedicationFrequency("unknown")))
}
