package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/pkg/model"
)

// MedicationRepository manages medication configurations and their dose schedules
type MedicationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewMedicationRepository creates a new MedicationRepository
func NewMedicationRepository(db *pgxpool.Pool, logger *zap.Logger) *MedicationRepository {
	return &MedicationRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new medication record
func (r *MedicationRepository) Create(ctx context.Context, med *model.Medication) error {
	query := `
		INSERT INTO medications (
			id, user_id, name, dosage, frequency, times_of_day,
			start_date, end_date, notes, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query,
		med.ID,
		med.UserID,
		med.Name,
		med.Dosage,
		med.Frequency,
		med.TimesOfDay,
		med.StartDate,
		med.EndDate,
		med.Notes,
		med.Active,
	)

	if err != nil {
		r.logger.Error("failed to create medication",
			zap.Error(err),
			zap.String("medication_id", med.ID),
			zap.String("user_id", med.UserID),
		)
		return fmt.Errorf("failed to create medication: %w", err)
	}

	return nil
}

// FindByUserID retrieves all medications for a user, sorted by start date
func (r *MedicationRepository) FindByUserID(ctx context.Context, userID string) ([]model.Medication, error) {
	query := `
		SELECT
			id, user_id, name, dosage, frequency, times_of_day,
			start_date, end_date, notes, active,
			created_at, updated_at
		FROM medications
		WHERE user_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to find medications", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to find medications: %w", err)
	}
	defer rows.Close()

	var medications []model.Medication
	for rows.Next() {
		var med model.Medication
		err := rows.Scan(
			&med.ID,
			&med.UserID,
			&med.Name,
			&med.Dosage,
			&med.Frequency,
			&med.TimesOfDay,
			&med.StartDate,
			&med.EndDate,
			&med.Notes,
			&med.Active,
			&med.CreatedAt,
			&med.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan medication", zap.Error(err))
			continue
		}
		medications = append(medications, med)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating medications", zap.Error(err))
		return nil, fmt.Errorf("error iterating medications: %w", err)
	}

	return medications, nil
}

// FindByID retrieves a medication by ID
func (r *MedicationRepository) FindByID(ctx context.Context, medicationID string) (*model.Medication, error) {
	query := `
		SELECT
			id, user_id, name, dosage, frequency, times_of_day,
			start_date, end_date, notes, active,
			created_at, updated_at
		FROM medications
		WHERE id = $1
	`

	var med model.Medication
	err := r.db.QueryRow(ctx, query, medicationID).Scan(
		&med.ID,
		&med.UserID,
		&med.Name,
		&med.Dosage,
		&med.Frequency,
		&med.TimesOfDay,
		&med.StartDate,
		&med.EndDate,
		&med.Notes,
		&med.Active,
		&med.CreatedAt,
		&med.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("medication not found: %s", medicationID)
		}
		r.logger.Error("failed to find medication", zap.Error(err), zap.String("medication_id", medicationID))
		return nil, fmt.Errorf("failed to find medication: %w", err)
	}

	return &med, nil
}

// Update updates an existing medication record
func (r *MedicationRepository) Update(ctx context.Context, med *model.Medication) error {
	query := `
		UPDATE medications
		SET name = $1, dosage = $2, frequency = $3, times_of_day = $4,
		    start_date = $5, end_date = $6, notes = $7,
		    active = $8, updated_at = NOW()
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		med.Name,
		med.Dosage,
		med.Frequency,
		med.TimesOfDay,
		med.StartDate,
		med.EndDate,
		med.Notes,
		med.Active,
		med.ID,
	)

	if err != nil {
		r.logger.Error("failed to update medication",
			zap.Error(err),
			zap.String("medication_id", med.ID),
		)
		return fmt.Errorf("failed to update medication: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication not found: %s", med.ID)
	}

	return nil
}

// Delete deletes a medication record and its doses
func (r *MedicationRepository) Delete(ctx context.Context, medicationID string) error {
	query := `DELETE FROM medications WHERE id = $1`

	result, err := r.db.Exec(ctx, query, medicationID)
	if err != nil {
		r.logger.Error("failed to delete medication",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("medication not found: %s", medicationID)
	}

	return nil
}

// InsertDoses bulk-inserts generated dose records
func (r *MedicationRepository) InsertDoses(ctx context.Context, doses []model.MedicationDose) error {
	if len(doses) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO medication_doses (
			id, user_id, medication_id, scheduled_time, taken_at, was_taken, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	for _, dose := range doses {
		batch.Queue(query,
			dose.ID,
			dose.UserID,
			dose.MedicationID,
			dose.ScheduledTime,
			dose.TakenAt,
			dose.WasTaken,
			dose.Notes,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range doses {
		if _, err := results.Exec(); err != nil {
			r.logger.Error("failed to insert medication doses", zap.Error(err))
			return fmt.Errorf("failed to insert medication doses: %w", err)
		}
	}

	return nil
}

// GetDosesByUserID retrieves doses for a user scheduled at or after a cutoff,
// in schedule order
func (r *MedicationRepository) GetDosesByUserID(ctx context.Context, userID string, since time.Time) ([]model.MedicationDose, error) {
	query := `
		SELECT id, user_id, medication_id, scheduled_time, taken_at, was_taken, notes, created_at
		FROM medication_doses
		WHERE user_id = $1 AND scheduled_time >= $2
		ORDER BY scheduled_time ASC
	`

	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		r.logger.Error("failed to get medication doses", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get medication doses: %w", err)
	}
	defer rows.Close()

	return scanDoses(rows, r.logger)
}

// GetDosesByMedicationID retrieves every stored dose for one medication, in
// schedule order
func (r *MedicationRepository) GetDosesByMedicationID(ctx context.Context, medicationID string) ([]model.MedicationDose, error) {
	query := `
		SELECT id, user_id, medication_id, scheduled_time, taken_at, was_taken, notes, created_at
		FROM medication_doses
		WHERE medication_id = $1
		ORDER BY scheduled_time ASC
	`

	rows, err := r.db.Query(ctx, query, medicationID)
	if err != nil {
		r.logger.Error("failed to get doses for medication", zap.Error(err), zap.String("medication_id", medicationID))
		return nil, fmt.Errorf("failed to get doses for medication: %w", err)
	}
	defer rows.Close()

	return scanDoses(rows, r.logger)
}

// MarkDoseTaken records that a dose was taken at the given instant
func (r *MedicationRepository) MarkDoseTaken(ctx context.Context, doseID string, takenAt time.Time) error {
	query := `
		UPDATE medication_doses
		SET was_taken = TRUE, taken_at = $1
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, takenAt, doseID)
	if err != nil {
		r.logger.Error("failed to mark dose taken",
			zap.Error(err),
			zap.String("dose_id", doseID),
		)
		return fmt.Errorf("failed to mark dose taken: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("dose not found: %s", doseID)
	}

	return nil
}

// DeleteFutureDoses removes untaken doses scheduled at or after the cutoff,
// so a changed medication schedule can be regenerated cleanly
func (r *MedicationRepository) DeleteFutureDoses(ctx context.Context, medicationID string, cutoff time.Time) error {
	query := `
		DELETE FROM medication_doses
		WHERE medication_id = $1 AND scheduled_time >= $2 AND was_taken = FALSE
	`

	_, err := r.db.Exec(ctx, query, medicationID, cutoff)
	if err != nil {
		r.logger.Error("failed to delete future doses",
			zap.Error(err),
			zap.String("medication_id", medicationID),
		)
		return fmt.Errorf("failed to delete future doses: %w", err)
	}

	return nil
}

func scanDoses(rows pgx.Rows, logger *zap.Logger) ([]model.MedicationDose, error) {
	var doses []model.MedicationDose
	for rows.Next() {
		var dose model.MedicationDose
		err := rows.Scan(
			&dose.ID,
			&dose.UserID,
			&dose.MedicationID,
			&dose.ScheduledTime,
			&dose.TakenAt,
			&dose.WasTaken,
			&dose.Notes,
			&dose.CreatedAt,
		)
		if err != nil {
			logger.Error("failed to scan medication dose", zap.Error(err))
			continue
		}
		doses = append(doses, dose)
	}

	if err := rows.Err(); err != nil {
		logger.Error("error iterating medication doses", zap.Error(err))
		return nil, fmt.Errorf("error iterating medication doses: %w", err)
	}

	return doses, nil
}
