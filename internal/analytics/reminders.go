package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/hallengray/BPT-sub001/pkg/model"
)

// exerciseGapDays is how stale the latest exercise log may be before a
// reminder fires.
const exerciseGapDays = 3

// ReminderWeights orders reminders: priority weight first, type weight as the
// tie-breaker, both descending.
type ReminderWeights struct {
	Priority map[model.ReminderPriority]int
	Type     map[model.ReminderType]int
}

// DefaultReminderWeights is the production reminder ordering.
var DefaultReminderWeights = ReminderWeights{
	Priority: map[model.ReminderPriority]int{
		model.PriorityHigh:   3,
		model.PriorityMedium: 2,
		model.PriorityLow:    1,
	},
	Type: map[model.ReminderType]int{
		model.ReminderMedication:    4,
		model.ReminderBloodPressure: 3,
		model.ReminderExercise:      2,
		model.ReminderDiet:          1,
	},
}

// ReminderPrioritizer inspects a health snapshot and emits a ranked list of
// user-facing nudges. Reminder IDs are fixed per rule so identical inputs
// always produce identical output.
type ReminderPrioritizer struct {
	Weights ReminderWeights
}

// NewReminderPrioritizer creates a ReminderPrioritizer with the default weights
func NewReminderPrioritizer() *ReminderPrioritizer {
	return &ReminderPrioritizer{Weights: DefaultReminderWeights}
}

// GenerateSmartReminders evaluates every reminder rule against "now" and
// returns the full ranked list; truncation to the displayed top N is the
// caller's concern.
func (p *ReminderPrioritizer) GenerateSmartReminders(snapshot model.HealthSnapshot, now time.Time) []model.Reminder {
	reminders := []model.Reminder{}

	if pending := countPendingDoses(snapshot.Doses, now); pending > 0 {
		reminders = append(reminders, model.Reminder{
			ID:       "reminder-medication-pending",
			Type:     model.ReminderMedication,
			Priority: model.PriorityHigh,
			Title:    "Medication due",
			Message:  fmt.Sprintf("You have %d scheduled dose(s) waiting to be recorded.", pending),
			Action:   model.ReminderAction{Label: "Record doses", Target: "/medications/doses"},
			Icon:     "pill",
		})
	}

	bpToday := hasReadingOn(snapshot.BloodPressure, now)
	if !bpToday {
		reminders = append(reminders, model.Reminder{
			ID:       "reminder-bp-today",
			Type:     model.ReminderBloodPressure,
			Priority: model.PriorityHigh,
			Title:    "Blood pressure check",
			Message:  "You haven't logged a blood pressure reading today.",
			Action:   model.ReminderAction{Label: "Log reading", Target: "/health/blood-pressure"},
			Icon:     "heart",
		})
	}

	if daysSinceLastExercise(snapshot.ExerciseLogs, now) >= exerciseGapDays {
		reminders = append(reminders, model.Reminder{
			ID:       "reminder-exercise-gap",
			Type:     model.ReminderExercise,
			Priority: model.PriorityMedium,
			Title:    "Time to move",
			Message:  "It's been a few days since your last logged activity.",
			Action:   model.ReminderAction{Label: "Log exercise", Target: "/health/exercise"},
			Icon:     "activity",
		})
	}

	// Diet context only matters on days that already have a reading.
	if bpToday && !hasDietLogOn(snapshot.DietLogs, now) {
		reminders = append(reminders, model.Reminder{
			ID:       "reminder-diet-context",
			Type:     model.ReminderDiet,
			Priority: model.PriorityLow,
			Title:    "Add meal context",
			Message:  "Logging today's meals helps explain today's reading.",
			Action:   model.ReminderAction{Label: "Log meal", Target: "/health/diet"},
			Icon:     "utensils",
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		pi, pj := p.Weights.Priority[reminders[i].Priority], p.Weights.Priority[reminders[j].Priority]
		if pi != pj {
			return pi > pj
		}
		return p.Weights.Type[reminders[i].Type] > p.Weights.Type[reminders[j].Type]
	})

	return reminders
}

// countPendingDoses counts doses scheduled in the past that were never
// marked taken.
func countPendingDoses(doses []model.MedicationDose, now time.Time) int {
	pending := 0
	for _, d := range doses {
		if !d.WasTaken && d.ScheduledTime.Before(now) {
			pending++
		}
	}
	return pending
}

func hasReadingOn(readings []model.BloodPressureReading, day time.Time) bool {
	for _, r := range readings {
		if sameDay(r.MeasuredAt, day) {
			return true
		}
	}
	return false
}

func hasDietLogOn(logs []model.DietEntry, day time.Time) bool {
	for _, d := range logs {
		if sameDay(d.LoggedAt, day) {
			return true
		}
	}
	return false
}

// daysSinceLastExercise returns the calendar-day age of the newest exercise
// log, or a large sentinel when none exists.
func daysSinceLastExercise(logs []model.ExerciseEntry, now time.Time) int {
	if len(logs) == 0 {
		return exerciseGapDays + 1
	}
	latest := logs[0].LoggedAt
	for _, e := range logs[1:] {
		if e.LoggedAt.After(latest) {
			latest = e.LoggedAt
		}
	}
	return daysBetween(latest, now)
}
