package analytics

import (
	"time"

	"github.com/hallengray/BPT-sub001/pkg/model"
)

const (
	// DefaultHorizonDays bounds how far ahead dose schedules are generated.
	DefaultHorizonDays = 30
	// DefaultBufferDays is the minimum future coverage before regeneration.
	DefaultBufferDays = 7
)

// Scheduler expands medication recurrence configurations into concrete dose
// instances over a bounded horizon. All methods are pure: the caller owns
// persistence, deduplication and "now".
type Scheduler struct {
	HorizonDays int
	BufferDays  int
}

// NewScheduler creates a Scheduler with the default horizon and buffer
func NewScheduler() *Scheduler {
	return &Scheduler{
		HorizonDays: DefaultHorizonDays,
		BufferDays:  DefaultBufferDays,
	}
}

// GenerateDoses expands a medication's frequency and times of day into dose
// records from startDate through min(endDate, startDate+horizon). Doses are
// emitted in chronological day order, then times-of-day list order. The
// as_needed frequency never generates doses; unknown frequencies expand daily.
func (s *Scheduler) GenerateDoses(medicationID, userID string, frequency model.MedicationFrequency, timesOfDay []string, startDate time.Time, endDate *time.Time) []model.MedicationDose {
	if frequency == model.FrequencyAsNeeded {
		return []model.MedicationDose{}
	}

	step := 1
	if frequency == model.FrequencyWeekly {
		step = 7
	}

	first := dayStart(startDate)
	windowEnd := addDays(first, s.HorizonDays)
	if endDate != nil && endDate.Before(windowEnd) {
		windowEnd = *endDate
	}

	doses := []model.MedicationDose{}
	for day := first; !day.After(windowEnd); day = addDays(day, step) {
		for _, tod := range timesOfDay {
			scheduled := atTimeOfDay(day, tod)
			if scheduled.Before(startDate) {
				continue
			}
			doses = append(doses, model.MedicationDose{
				UserID:        userID,
				MedicationID:  medicationID,
				ScheduledTime: scheduled,
				TakenAt:       nil,
				WasTaken:      false,
			})
		}
	}

	return doses
}

// ShouldRegenerate reports whether the stored dose buffer has run low: true
// when no doses exist or the latest scheduled time is inside the buffer window.
func (s *Scheduler) ShouldRegenerate(existing []model.MedicationDose, now time.Time) bool {
	if len(existing) == 0 {
		return true
	}

	latest := existing[0].ScheduledTime
	for _, dose := range existing[1:] {
		if dose.ScheduledTime.After(latest) {
			latest = dose.ScheduledTime
		}
	}

	return latest.Before(now.AddDate(0, 0, s.BufferDays))
}

// ExpectedDosesPerDay returns how many doses a frequency schedules per day.
// as_needed yields zero; weekly is a fractional day rate rounded down to zero
// and therefore reported as its per-occurrence count instead.
func ExpectedDosesPerDay(frequency model.MedicationFrequency) int {
	switch frequency {
	case model.FrequencyTwiceDaily:
		return 2
	case model.FrequencyThreeTimesDaily:
		return 3
	case model.FrequencyAsNeeded:
		return 0
	default:
		return 1
	}
}

// FrequencyLabel returns the human-readable label for a frequency value
func FrequencyLabel(frequency model.MedicationFrequency) string {
	switch frequency {
	case model.FrequencyOnceDaily:
		return "Once daily"
	case model.FrequencyTwiceDaily:
		return "Twice daily"
	case model.FrequencyThreeTimesDaily:
		return "Three times daily"
	case model.FrequencyWeekly:
		return "Weekly"
	case model.FrequencyAsNeeded:
		return "As needed"
	default:
		return "Custom schedule"
	}
}
