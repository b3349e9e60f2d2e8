// Package api contains the request and response types of the HTTP API.
package api

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the uniform error body returned by every endpoint
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// CreateBloodPressureRequest defines the body for logging a reading
type CreateBloodPressureRequest struct {
	UserId     types.UUID `json:"user_id"`
	Systolic   int        `json:"systolic"`
	Diastolic  int        `json:"diastolic"`
	Pulse      int        `json:"pulse"`
	Notes      *string    `json:"notes,omitempty"`
	MeasuredAt *time.Time `json:"measured_at,omitempty"`
}

// BloodPressureResponse defines the body returned for a reading
type BloodPressureResponse struct {
	Id         *types.UUID `json:"id,omitempty"`
	UserId     *types.UUID `json:"user_id,omitempty"`
	Systolic   *int        `json:"systolic,omitempty"`
	Diastolic  *int        `json:"diastolic,omitempty"`
	Pulse      *int        `json:"pulse,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	MeasuredAt *time.Time  `json:"measured_at,omitempty"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
}

// CreateDietEntryRequest defines the body for logging a meal
type CreateDietEntryRequest struct {
	UserId      types.UUID `json:"user_id"`
	MealType    string     `json:"meal_type"`
	Description string     `json:"description"`
	Notes       *string    `json:"notes,omitempty"`
	LoggedAt    *time.Time `json:"logged_at,omitempty"`
}

// DietEntryResponse defines the body returned for a meal log
type DietEntryResponse struct {
	Id          *types.UUID `json:"id,omitempty"`
	UserId      *types.UUID `json:"user_id,omitempty"`
	MealType    *string     `json:"meal_type,omitempty"`
	Description *string     `json:"description,omitempty"`
	Notes       *string     `json:"notes,omitempty"`
	LoggedAt    *time.Time  `json:"logged_at,omitempty"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
}

// CreateExerciseEntryRequest defines the body for logging a workout
type CreateExerciseEntryRequest struct {
	UserId          types.UUID `json:"user_id"`
	Activity        string     `json:"activity"`
	DurationMinutes int        `json:"duration_minutes"`
	Notes           *string    `json:"notes,omitempty"`
	LoggedAt        *time.Time `json:"logged_at,omitempty"`
}

// ExerciseEntryResponse defines the body returned for a workout log
type ExerciseEntryResponse struct {
	Id              *types.UUID `json:"id,omitempty"`
	UserId          *types.UUID `json:"user_id,omitempty"`
	Activity        *string     `json:"activity,omitempty"`
	DurationMinutes *int        `json:"duration_minutes,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
	LoggedAt        *time.Time  `json:"logged_at,omitempty"`
	CreatedAt       *time.Time  `json:"created_at,omitempty"`
}

// CreateMedicationRequest defines the body for adding a medication
type CreateMedicationRequest struct {
	UserId     types.UUID  `json:"user_id"`
	Name       string      `json:"name"`
	Dosage     string      `json:"dosage"`
	Frequency  string      `json:"frequency"`
	TimesOfDay *[]string   `json:"times_of_day,omitempty"`
	StartDate  types.Date  `json:"start_date"`
	EndDate    *types.Date `json:"end_date,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
}

// UpdateMedicationRequest defines the body for updating a medication
type UpdateMedicationRequest struct {
	Name       *string     `json:"name,omitempty"`
	Dosage     *string     `json:"dosage,omitempty"`
	Frequency  *string     `json:"frequency,omitempty"`
	TimesOfDay *[]string   `json:"times_of_day,omitempty"`
	StartDate  *types.Date `json:"start_date,omitempty"`
	EndDate    *types.Date `json:"end_date,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
}

// MedicationResponse defines the body returned for a medication
type MedicationResponse struct {
	Id         *types.UUID `json:"id,omitempty"`
	UserId     *types.UUID `json:"user_id,omitempty"`
	Name       *string     `json:"name,omitempty"`
	Dosage     *string     `json:"dosage,omitempty"`
	Frequency  *string     `json:"frequency,omitempty"`
	TimesOfDay *[]string   `json:"times_of_day,omitempty"`
	StartDate  *types.Date `json:"start_date,omitempty"`
	EndDate    *types.Date `json:"end_date,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	Active     *bool       `json:"active,omitempty"`
	CreatedAt  *time.Time  `json:"created_at,omitempty"`
}

// DoseResponse defines the body returned for a scheduled dose
type DoseResponse struct {
	Id            *types.UUID `json:"id,omitempty"`
	MedicationId  *types.UUID `json:"medication_id,omitempty"`
	ScheduledTime *time.Time  `json:"scheduled_time,omitempty"`
	TakenAt       *time.Time  `json:"taken_at,omitempty"`
	WasTaken      *bool       `json:"was_taken,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
}

// SyncDosesResponse reports how many doses a schedule sync generated
type SyncDosesResponse struct {
	DosesGenerated int `json:"doses_generated"`
}

// GenerateReportRequest defines the body for requesting a PDF report
type GenerateReportRequest struct {
	UserId    types.UUID `json:"user_id"`
	UserName  *string    `json:"user_name,omitempty"`
	StartDate types.Date `json:"start_date"`
	EndDate   types.Date `json:"end_date"`
}

// GenerateReportResponse returns the ID of a generated report
type GenerateReportResponse struct {
	ReportId string `json:"report_id"`
}

// ReportResponse defines the body returned for a report record
type ReportResponse struct {
	Id             *types.UUID `json:"id,omitempty"`
	UserId         *types.UUID `json:"user_id,omitempty"`
	DateRangeStart *types.Date `json:"date_range_start,omitempty"`
	DateRangeEnd   *types.Date `json:"date_range_end,omitempty"`
	GeneratedAt    *time.Time  `json:"generated_at,omitempty"`
}
