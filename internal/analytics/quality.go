package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hallengray/BPT-sub001/pkg/model"
)

// Breakdown keys exposed by CalculateDataQualityScore.
const (
	DimensionBPLogging           = "bp_logging"
	DimensionMedicationAdherence = "medication_adherence"
	DimensionContextCompleteness = "context_completeness"
	DimensionAnnotationQuality   = "annotation_quality"
)

// High blood pressure thresholds (stage 2 hypertension cutoffs).
const (
	HighSystolic  = 140
	HighDiastolic = 90
)

// minNoteLength is the shortest trimmed note that counts as an annotation.
const minNoteLength = 10

// ScoreWeights holds the per-dimension weights of the composite score.
// The weights must sum to 100.
type ScoreWeights struct {
	BPLogging           int
	MedicationAdherence int
	ContextCompleteness int
	AnnotationQuality   int
}

// DefaultScoreWeights is the production weighting of the quality dimensions.
var DefaultScoreWeights = ScoreWeights{
	BPLogging:           30,
	MedicationAdherence: 30,
	ContextCompleteness: 20,
	AnnotationQuality:   20,
}

// QualityScorer combines logging frequency, context completeness and
// annotation quality into a composite data-quality score.
type QualityScorer struct {
	Weights ScoreWeights
}

// NewQualityScorer creates a QualityScorer with the default weights
func NewQualityScorer() *QualityScorer {
	return &QualityScorer{Weights: DefaultScoreWeights}
}

// CalculateDataQualityScore blends the quality dimensions, each clamped to
// [0,100], into a weighted overall score with a per-dimension breakdown.
// Dimensions with an empty denominator score 100 so absence of data to
// annotate never penalizes the user.
func (q *QualityScorer) CalculateDataQualityScore(snapshot model.HealthSnapshot, windowDays int) model.QualityScore {
	bpLogging := q.bpLoggingScore(snapshot.BloodPressure, windowDays)
	adherence := q.adherenceScore(snapshot.Doses)
	context := q.contextScore(snapshot.BloodPressure, snapshot.DietLogs, snapshot.ExerciseLogs)
	annotation := q.annotationScore(snapshot.BloodPressure)

	weighted := float64(bpLogging*q.Weights.BPLogging+
		adherence*q.Weights.MedicationAdherence+
		context*q.Weights.ContextCompleteness+
		annotation*q.Weights.AnnotationQuality) / 100

	return model.QualityScore{
		Overall: int(math.Round(weighted)),
		Breakdown: map[string]int{
			DimensionBPLogging:           bpLogging,
			DimensionMedicationAdherence: adherence,
			DimensionContextCompleteness: context,
			DimensionAnnotationQuality:   annotation,
		},
	}
}

// FindHighBPWithoutNotes returns the high readings (systolic >= 140 or
// diastolic >= 90) whose note is missing, empty, or shorter than 10
// characters after trimming. Input order is preserved.
func (q *QualityScorer) FindHighBPWithoutNotes(readings []model.BloodPressureReading) []model.BloodPressureReading {
	flagged := []model.BloodPressureReading{}
	for _, r := range readings {
		if isHighReading(r) && !hasAdequateNote(r.Notes) {
			flagged = append(flagged, r)
		}
	}
	return flagged
}

// FindBPWithoutContext returns the distinct calendar days that have a blood
// pressure reading but neither a diet log nor an exercise log.
func (q *QualityScorer) FindBPWithoutContext(readings []model.BloodPressureReading, dietLogs []model.DietEntry, exerciseLogs []model.ExerciseEntry) []time.Time {
	contextDays := make(map[time.Time]struct{}, len(dietLogs)+len(exerciseLogs))
	for _, d := range dietLogs {
		contextDays[dayStart(d.LoggedAt)] = struct{}{}
	}
	for _, e := range exerciseLogs {
		contextDays[dayStart(e.LoggedAt)] = struct{}{}
	}

	seen := make(map[time.Time]struct{}, len(readings))
	days := []time.Time{}
	for _, r := range readings {
		day := dayStart(r.MeasuredAt)
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		if _, ok := contextDays[day]; !ok {
			days = append(days, day)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// GetImprovementSuggestions evaluates fixed rules top-to-bottom and appends a
// suggestion for each one that matches.
func (q *QualityScorer) GetImprovementSuggestions(snapshot model.HealthSnapshot, windowDays int) []string {
	suggestions := []string{}

	if q.bpLoggingScore(snapshot.BloodPressure, windowDays) < 50 {
		suggestions = append(suggestions, "Try to log your blood pressure every day; daily readings make your trends far more reliable.")
	}

	if len(snapshot.Doses) > 0 && q.adherenceScore(snapshot.Doses) < 80 {
		suggestions = append(suggestions, "Several scheduled medication doses were not marked as taken. Recording each dose keeps your adherence history accurate.")
	}

	if flagged := q.FindHighBPWithoutNotes(snapshot.BloodPressure); len(flagged) > 0 {
		suggestions = append(suggestions, fmt.Sprintf("You have %d elevated reading(s) without notes. Adding a short note helps explain spikes later.", len(flagged)))
	}

	if missing := q.FindBPWithoutContext(snapshot.BloodPressure, snapshot.DietLogs, snapshot.ExerciseLogs); len(missing) > 0 {
		suggestions = append(suggestions, "Log a meal or workout on days you measure blood pressure so readings can be correlated with lifestyle factors.")
	}

	if len(snapshot.ExerciseLogs) == 0 {
		suggestions = append(suggestions, "No exercise logged in this period. Even short walks are worth recording.")
	}

	return suggestions
}

// bpLoggingScore is the ratio of days with at least one reading to the
// window length, scaled to 100 and capped.
func (q *QualityScorer) bpLoggingScore(readings []model.BloodPressureReading, windowDays int) int {
	if windowDays <= 0 {
		return 100
	}
	days := make(map[time.Time]struct{}, len(readings))
	for _, r := range readings {
		days[dayStart(r.MeasuredAt)] = struct{}{}
	}
	return clampScore(float64(len(days)) / float64(windowDays) * 100)
}

// adherenceScore is the ratio of doses marked taken to doses scheduled;
// 100 when no doses exist.
func (q *QualityScorer) adherenceScore(doses []model.MedicationDose) int {
	if len(doses) == 0 {
		return 100
	}
	taken := 0
	for _, d := range doses {
		if d.WasTaken {
			taken++
		}
	}
	return clampScore(float64(taken) / float64(len(doses)) * 100)
}

// contextScore is the share of BP-logged days that also carry a diet or
// exercise log; 100 when there are no readings.
func (q *QualityScorer) contextScore(readings []model.BloodPressureReading, dietLogs []model.DietEntry, exerciseLogs []model.ExerciseEntry) int {
	bpDays := make(map[time.Time]struct{}, len(readings))
	for _, r := range readings {
		bpDays[dayStart(r.MeasuredAt)] = struct{}{}
	}
	if len(bpDays) == 0 {
		return 100
	}
	missing := q.FindBPWithoutContext(readings, dietLogs, exerciseLogs)
	covered := len(bpDays) - len(missing)
	return clampScore(float64(covered) / float64(len(bpDays)) * 100)
}

// annotationScore is the share of high readings carrying an adequate note;
// 100 when no reading is high.
func (q *QualityScorer) annotationScore(readings []model.BloodPressureReading) int {
	high := 0
	for _, r := range readings {
		if isHighReading(r) {
			high++
		}
	}
	if high == 0 {
		return 100
	}
	unannotated := len(q.FindHighBPWithoutNotes(readings))
	return clampScore(float64(high-unannotated) / float64(high) * 100)
}

func isHighReading(r model.BloodPressureReading) bool {
	return r.Systolic >= HighSystolic || r.Diastolic >= HighDiastolic
}

func hasAdequateNote(note *string) bool {
	return note != nil && len(strings.TrimSpace(*note)) >= minNoteLength
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
