package model

import "time"

// User represents a user in the system
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// BloodPressureReading represents a blood pressure measurement
type BloodPressureReading struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Systolic   int       `json:"systolic"`
	Diastolic  int       `json:"diastolic"`
	Pulse      int       `json:"pulse"`
	Notes      *string   `json:"notes,omitempty"`
	MeasuredAt time.Time `json:"measured_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// DietEntry represents a logged meal or snack
type DietEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MealType    string    `json:"meal_type"` // breakfast, lunch, dinner, snack
	Description string    `json:"description"`
	Notes       *string   `json:"notes,omitempty"`
	LoggedAt    time.Time `json:"logged_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExerciseEntry represents a logged physical activity
type ExerciseEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Activity        string    `json:"activity"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           *string   `json:"notes,omitempty"`
	LoggedAt        time.Time `json:"logged_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// MedicationFrequency enumerates recurrence patterns for medication schedules
type MedicationFrequency string

const (
	FrequencyOnceDaily       MedicationFrequency = "once_daily"
	FrequencyTwiceDaily      MedicationFrequency = "twice_daily"
	FrequencyThreeTimesDaily MedicationFrequency = "three_times_daily"
	FrequencyWeekly          MedicationFrequency = "weekly"
	FrequencyAsNeeded        MedicationFrequency = "as_needed"
	FrequencyOther           MedicationFrequency = "other"
)

// Valid reports whether the frequency is a known recurrence pattern
func (f MedicationFrequency) Valid() bool {
	switch f {
	case FrequencyOnceDaily, FrequencyTwiceDaily, FrequencyThreeTimesDaily,
		FrequencyWeekly, FrequencyAsNeeded, FrequencyOther:
		return true
	}
	return false
}

// Medication represents a medication configuration
type Medication struct {
	ID         string              `json:"id"`
	UserID     string              `json:"user_id"`
	Name       string              `json:"name"`
	Dosage     string              `json:"dosage"`
	Frequency  MedicationFrequency `json:"frequency"`
	TimesOfDay []string            `json:"times_of_day"` // "HH:MM", 24-hour
	StartDate  time.Time           `json:"start_date"`
	EndDate    *time.Time          `json:"end_date,omitempty"`
	Notes      *string             `json:"notes,omitempty"`
	Active     bool                `json:"active"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// MedicationDose represents one scheduled instance of taking a medication
type MedicationDose struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	MedicationID  string     `json:"medication_id"`
	ScheduledTime time.Time  `json:"scheduled_time"`
	TakenAt       *time.Time `json:"taken_at,omitempty"`
	WasTaken      bool       `json:"was_taken"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HealthSnapshot aggregates one user's health data over a lookback window.
// It is the sole input for quality scoring and reminder generation.
type HealthSnapshot struct {
	UserID        string                 `json:"user_id"`
	WindowDays    int                    `json:"window_days"`
	BloodPressure []BloodPressureReading `json:"blood_pressure"`
	DietLogs      []DietEntry            `json:"diet_logs"`
	ExerciseLogs  []ExerciseEntry        `json:"exercise_logs"`
	Medications   []Medication           `json:"medications"`
	Doses         []MedicationDose       `json:"doses"`
}

// StreakResult represents a consecutive-day logging streak with milestone progress
type StreakResult struct {
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	LastLogDate        *time.Time `json:"last_log_date,omitempty"`
	NextMilestone      int        `json:"next_milestone"`
	DaysUntilMilestone int        `json:"days_until_milestone"`
	MilestoneProgress  int        `json:"milestone_progress"` // 0-100
}

// StreakBadge represents the tier earned for a streak length
type StreakBadge struct {
	Threshold int    `json:"threshold"`
	Tier      string `json:"tier"`
	Name      string `json:"name"`
}

// QualityScore represents a composite data-quality score with a per-dimension breakdown
type QualityScore struct {
	Overall   int            `json:"overall"` // 0-100
	Breakdown map[string]int `json:"breakdown"`
}

// ReminderType enumerates the kinds of smart reminders
type ReminderType string

const (
	ReminderMedication    ReminderType = "medication"
	ReminderBloodPressure ReminderType = "bp"
	ReminderExercise      ReminderType = "exercise"
	ReminderDiet          ReminderType = "diet"
)

// ReminderPriority enumerates reminder urgency levels
type ReminderPriority string

const (
	PriorityHigh   ReminderPriority = "high"
	PriorityMedium ReminderPriority = "medium"
	PriorityLow    ReminderPriority = "low"
)

// ReminderAction is the single call-to-action attached to a reminder
type ReminderAction struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Reminder represents a prioritized user-facing nudge. Icon is an opaque tag
// the presentation layer maps to a renderable asset.
type Reminder struct {
	ID       string           `json:"id"`
	Type     ReminderType     `json:"type"`
	Priority ReminderPriority `json:"priority"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Action   ReminderAction   `json:"action"`
	Icon     string           `json:"icon"`
}

// Report represents a generated health report
type Report struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	DateRangeStart time.Time `json:"date_range_start"`
	DateRangeEnd   time.Time `json:"date_range_end"`
	FilePath       string    `json:"file_path"`
	GeneratedAt    time.Time `json:"generated_at"`
	CreatedAt      time.Time `json:"created_at"`
}
