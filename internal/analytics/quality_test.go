package analytics

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hallengray/BPT-sub001/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qualityNow = time.Date(2026, 6, 21, 9, 0, 0, 0, time.UTC)

func readingOn(day time.Time, systolic, diastolic int, notes *string) model.BloodPressureReading {
	return model.BloodPressureReading{
		ID:         fmt.Sprintf("bp-%s-%d", day.Format("20060102"), systolic),
		UserID:     "user-1",
		Systolic:   systolic,
		Diastolic:  diastolic,
		Pulse:      70,
		Notes:      notes,
		MeasuredAt: day,
	}
}

func notePtr(s string) *string {
	return &s
}

func TestQualityScorer_CalculateDataQualityScore_FullCoverage(t *testing.T) {
	// Arrange: 21/21 days of readings, 20/20 doses taken
	scorer := NewQualityScorer()
	snapshot := model.HealthSnapshot{UserID: "user-1", WindowDays: 21}
	for i := 0; i < 21; i++ {
		snapshot.BloodPressure = append(snapshot.BloodPressure, readingOn(qualityNow.AddDate(0, 0, -i), 120, 80, nil))
	}
	taken := qualityNow
	for i := 0; i < 20; i++ {
		snapshot.Doses = append(snapshot.Doses, model.MedicationDose{
			ID: fmt.Sprintf("dose-%d", i), ScheduledTime: qualityNow.AddDate(0, 0, -i), WasTaken: true, TakenAt: &taken,
		})
	}

	// Act
	score := scorer.CalculateDataQualityScore(snapshot, 21)

	// Assert
	assert.Equal(t, 100, score.Breakdown[DimensionBPLogging])
	assert.Equal(t, 100, score.Breakdown[DimensionMedicationAdherence])
	assert.Greater(t, score.Overall, 70)
}

func TestQualityScorer_CalculateDataQualityScore_EmptySnapshot(t *testing.T) {
	scorer := NewQualityScorer()

	score := scorer.CalculateDataQualityScore(model.HealthSnapshot{UserID: "user-1"}, 30)

	// No readings at all: logging is 0, but empty-denominator dimensions
	// default to 100 rather than penalizing absence.
	assert.Equal(t, 0, score.Breakdown[DimensionBPLogging])
	assert.Equal(t, 100, score.Breakdown[DimensionMedicationAdherence])
	assert.Equal(t, 100, score.Breakdown[DimensionContextCompleteness])
	assert.Equal(t, 100, score.Breakdown[DimensionAnnotationQuality])
	assert.Equal(t, 70, score.Overall)
}

func TestQualityScorer_CalculateDataQualityScore_PartialAdherence(t *testing.T) {
	scorer := NewQualityScorer()
	snapshot := model.HealthSnapshot{UserID: "user-1"}
	for i := 0; i < 10; i++ {
		snapshot.Doses = append(snapshot.Doses, model.MedicationDose{
			ID: fmt.Sprintf("dose-%d", i), ScheduledTime: qualityNow.AddDate(0, 0, -i), WasTaken: i < 6,
		})
	}

	score := scorer.CalculateDataQualityScore(snapshot, 30)

	assert.Equal(t, 60, score.Breakdown[DimensionMedicationAdherence])
}

func TestQualityScorer_FindHighBPWithoutNotes(t *testing.T) {
	scorer := NewQualityScorer()
	readings := []model.BloodPressureReading{
		readingOn(qualityNow, 145, 85, notePtr("Stressful day at work, skipped lunch")),
		readingOn(qualityNow.AddDate(0, 0, -1), 150, 88, notePtr("tired")),
		readingOn(qualityNow.AddDate(0, 0, -2), 120, 92, nil),
		readingOn(qualityNow.AddDate(0, 0, -3), 118, 76, nil),
	}

	flagged := scorer.FindHighBPWithoutNotes(readings)

	// The well-annotated 145 is excluded; the 5-char note and the missing
	// note on high readings are flagged; the normal reading is ignored.
	require.Len(t, flagged, 2)
	assert.Equal(t, 150, flagged[0].Systolic)
	assert.Equal(t, 92, flagged[1].Diastolic)
}

func TestQualityScorer_FindHighBPWithoutNotes_TrimsWhitespace(t *testing.T) {
	scorer := NewQualityScorer()
	readings := []model.BloodPressureReading{
		readingOn(qualityNow, 160, 95, notePtr("         x        ")),
	}

	flagged := scorer.FindHighBPWithoutNotes(readings)

	assert.Len(t, flagged, 1)
}

func TestQualityScorer_FindBPWithoutContext_NoLogsAtAll(t *testing.T) {
	scorer := NewQualityScorer()
	readings := []model.BloodPressureReading{
		readingOn(qualityNow, 120, 80, nil),
		readingOn(qualityNow.Add(-2*time.Hour), 125, 82, nil), // same day
		readingOn(qualityNow.AddDate(0, 0, -1), 118, 79, nil),
	}

	days := scorer.FindBPWithoutContext(readings, nil, nil)

	// One entry per distinct reading day
	assert.Len(t, days, 2)
}

func TestQualityScorer_FindBPWithoutContext_SameDayContextClearsFlag(t *testing.T) {
	scorer := NewQualityScorer()
	readings := []model.BloodPressureReading{
		readingOn(qualityNow, 120, 80, nil),
		readingOn(qualityNow.AddDate(0, 0, -1), 118, 79, nil),
	}
	diet := []model.DietEntry{{ID: "d1", LoggedAt: qualityNow.Add(-1 * time.Hour)}}
	exercise := []model.ExerciseEntry{{ID: "e1", LoggedAt: qualityNow.AddDate(0, 0, -1)}}

	days := scorer.FindBPWithoutContext(readings, diet, exercise)

	assert.Empty(t, days)
}

func TestQualityScorer_GetImprovementSuggestions_EmptySnapshot(t *testing.T) {
	scorer := NewQualityScorer()

	suggestions := scorer.GetImprovementSuggestions(model.HealthSnapshot{UserID: "user-1"}, 30)

	require.NotEmpty(t, suggestions)
	found := false
	for _, s := range suggestions {
		if containsFold(s, "blood pressure") {
			found = true
		}
	}
	assert.True(t, found, "expected a suggestion mentioning blood pressure")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func TestQualityScorer_GetImprovementSuggestions_Adherence(t *testing.T) {
	scorer := NewQualityScorer()
	snapshot := model.HealthSnapshot{UserID: "user-1"}
	for i := 0; i < 10; i++ {
		snapshot.Doses = append(snapshot.Doses, model.MedicationDose{
			ID: fmt.Sprintf("dose-%d", i), ScheduledTime: qualityNow.AddDate(0, 0, -i), WasTaken: i < 5,
		})
	}

	suggestions := scorer.GetImprovementSuggestions(snapshot, 30)

	found := false
	for _, s := range suggestions {
		if containsFold(s, "medication") {
			found = true
		}
	}
	assert.True(t, found, "expected a medication adherence suggestion")
}
