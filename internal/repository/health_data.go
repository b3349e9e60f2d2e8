package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/pkg/model"
)

// HealthDataRepository manages blood pressure, diet and exercise logs
type HealthDataRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewHealthDataRepository creates a new HealthDataRepository
func NewHealthDataRepository(db *pgxpool.Pool, logger *zap.Logger) *HealthDataRepository {
	return &HealthDataRepository{
		db:     db,
		logger: logger,
	}
}

// SaveBloodPressure saves a blood pressure reading
func (r *HealthDataRepository) SaveBloodPressure(ctx context.Context, reading *model.BloodPressureReading) error {
	query := `
		INSERT INTO blood_pressure_readings (
			id, user_id, systolic, diastolic, pulse, notes, measured_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		reading.ID,
		reading.UserID,
		reading.Systolic,
		reading.Diastolic,
		reading.Pulse,
		reading.Notes,
		reading.MeasuredAt,
	)

	if err != nil {
		r.logger.Error("failed to save blood pressure reading",
			zap.Error(err),
			zap.String("user_id", reading.UserID),
		)
		return fmt.Errorf("failed to save blood pressure reading: %w", err)
	}

	return nil
}

// GetBloodPressureByUserID retrieves readings for a user within a time window,
// newest first
func (r *HealthDataRepository) GetBloodPressureByUserID(ctx context.Context, userID string, since time.Time) ([]model.BloodPressureReading, error) {
	query := `
		SELECT id, user_id, systolic, diastolic, pulse, notes, measured_at, created_at
		FROM blood_pressure_readings
		WHERE user_id = $1 AND measured_at >= $2
		ORDER BY measured_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		r.logger.Error("failed to get blood pressure readings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get blood pressure readings: %w", err)
	}
	defer rows.Close()

	var readings []model.BloodPressureReading
	for rows.Next() {
		var reading model.BloodPressureReading
		err := rows.Scan(
			&reading.ID,
			&reading.UserID,
			&reading.Systolic,
			&reading.Diastolic,
			&reading.Pulse,
			&reading.Notes,
			&reading.MeasuredAt,
			&reading.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan blood pressure reading", zap.Error(err))
			continue
		}
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating blood pressure readings", zap.Error(err))
		return nil, fmt.Errorf("error iterating blood pressure readings: %w", err)
	}

	return readings, nil
}

// SaveDietEntry saves a diet log entry
func (r *HealthDataRepository) SaveDietEntry(ctx context.Context, entry *model.DietEntry) error {
	query := `
		INSERT INTO diet_entries (
			id, user_id, meal_type, description, notes, logged_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.MealType,
		entry.Description,
		entry.Notes,
		entry.LoggedAt,
	)

	if err != nil {
		r.logger.Error("failed to save diet entry",
			zap.Error(err),
			zap.String("user_id", entry.UserID),
		)
		return fmt.Errorf("failed to save diet entry: %w", err)
	}

	return nil
}

// GetDietEntriesByUserID retrieves diet entries for a user within a time window,
// newest first
func (r *HealthDataRepository) GetDietEntriesByUserID(ctx context.Context, userID string, since time.Time) ([]model.DietEntry, error) {
	query := `
		SELECT id, user_id, meal_type, description, notes, logged_at, created_at
		FROM diet_entries
		WHERE user_id = $1 AND logged_at >= $2
		ORDER BY logged_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		r.logger.Error("failed to get diet entries", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get diet entries: %w", err)
	}
	defer rows.Close()

	var entries []model.DietEntry
	for rows.Next() {
		var entry model.DietEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.MealType,
			&entry.Description,
			&entry.Notes,
			&entry.LoggedAt,
			&entry.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan diet entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating diet entries", zap.Error(err))
		return nil, fmt.Errorf("error iterating diet entries: %w", err)
	}

	return entries, nil
}

// SaveExerciseEntry saves an exercise log entry
func (r *HealthDataRepository) SaveExerciseEntry(ctx context.Context, entry *model.ExerciseEntry) error {
	query := `
		INSERT INTO exercise_entries (
			id, user_id, activity, duration_minutes, notes, logged_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Activity,
		entry.DurationMinutes,
		entry.Notes,
		entry.LoggedAt,
	)

	if err != nil {
		r.logger.Error("failed to save exercise entry",
			zap.Error(err),
			zap.String("user_id", entry.UserID),
		)
		return fmt.Errorf("failed to save exercise entry: %w", err)
	}

	return nil
}

// GetExerciseEntriesByUserID retrieves exercise entries for a user within a
// time window, newest first
func (r *HealthDataRepository) GetExerciseEntriesByUserID(ctx context.Context, userID string, since time.Time) ([]model.ExerciseEntry, error) {
	query := `
		SELECT id, user_id, activity, duration_minutes, notes, logged_at, created_at
		FROM exercise_entries
		WHERE user_id = $1 AND logged_at >= $2
		ORDER BY logged_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		r.logger.Error("failed to get exercise entries", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get exercise entries: %w", err)
	}
	defer rows.Close()

	var entries []model.ExerciseEntry
	for rows.Next() {
		var entry model.ExerciseEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Activity,
			&entry.DurationMinutes,
			&entry.Notes,
			&entry.LoggedAt,
			&entry.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan exercise entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating exercise entries", zap.Error(err))
		return nil, fmt.Errorf("error iterating exercise entries: %w", err)
	}

	return entries, nil
}
