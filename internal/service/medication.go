package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hallengray/BPT-sub001/internal/analytics"
	"github.com/hallengray/BPT-sub001/internal/repository"
	"github.com/hallengray/BPT-sub001/pkg/model"
)

// MedicationService handles medication management and dose scheduling
type MedicationService struct {
	repo      *repository.MedicationRepository
	scheduler *analytics.Scheduler
	logger    *zap.Logger
	clock     func() time.Time
}

// NewMedicationService creates a new MedicationService
func NewMedicationService(repo *repository.MedicationRepository, scheduler *analytics.Scheduler, logger *zap.Logger) *MedicationService {
	return &MedicationService{
		repo:      repo,
		scheduler: scheduler,
		logger:    logger,
		clock:     time.Now,
	}
}

// AddMedication adds a new medication for a user and generates its dose schedule
func (s *MedicationService) AddMedication(ctx context.Context, userID string, med *model.Medication) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if med.Name == "" {
		return fmt.Errorf("medication name is required")
	}
	if med.Dosage == "" {
		return fmt.Errorf("medication dosage is required")
	}
	if !med.Frequency.Valid() {
		return fmt.Errorf("invalid medication frequency: %s", med.Frequency)
	}

	// Generate ID if not provided
	if med.ID == "" {
		med.ID = uuid.New().String()
	}

	med.UserID = userID

	now := s.clock()

	// Set active status based on end date
	med.Active = true
	if med.EndDate != nil && med.EndDate.Before(now) {
		med.Active = false
	}

	med.CreatedAt = now
	med.UpdatedAt = now

	if err := s.repo.Create(ctx, med); err != nil {
		s.logger.Error("failed to add medication",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("medication_name", med.Name),
		)
		return fmt.Errorf("failed to add medication: %w", err)
	}

	doses := s.scheduler.GenerateDoses(med.ID, userID, med.Frequency, med.TimesOfDay, med.StartDate, med.EndDate)
	if err := s.persistDoses(ctx, doses); err != nil {
		return err
	}

	s.logger.Info("medication added successfully",
		zap.String("medication_id", med.ID),
		zap.String("user_id", userID),
		zap.String("name", med.Name),
		zap.Int("doses_generated", len(doses)),
	)

	return nil
}

// ListMedications retrieves all medications for a user
func (s *MedicationService) ListMedications(ctx context.Context, userID string) ([]model.Medication, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	medications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list medications",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}

	// Update active status for medications with past end dates
	now := s.clock()
	for i := range medications {
		if medications[i].EndDate != nil && medications[i].EndDate.Before(now) && medications[i].Active {
			medications[i].Active = false
			if err := s.repo.Update(ctx, &medications[i]); err != nil {
				s.logger.Warn("failed to update medication active status",
					zap.Error(err),
					zap.String("medication_id", medications[i].ID),
				)
			}
		}
	}

	return medications, nil
}

// GetMedication retrieves a single medication by ID
func (s *MedicationService) GetMedication(ctx context.Context, medID string) (*model.Medication, error) {
	if medID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}

	med, err := s.repo.FindByID(ctx, medID)
	if err != nil {
		s.logger.Error("failed to get medication",
			zap.Error(err),
			zap.String("medication_id", medID),
		)
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}

	return med, nil
}

// UpdateMedication updates a medication and rebuilds its untaken future doses
// when the schedule changed
func (s *MedicationService) UpdateMedication(ctx context.Context, medID string, updates *model.Medication) error {
	if medID == "" {
		return fmt.Errorf("medication ID is required")
	}
	if !updates.Frequency.Valid() {
		return fmt.Errorf("invalid medication frequency: %s", updates.Frequency)
	}

	// Fetch existing medication to preserve ID and user_id
	existing, err := s.repo.FindByID(ctx, medID)
	if err != nil {
		s.logger.Error("failed to find medication for update",
			zap.Error(err),
			zap.String("medication_id", medID),
		)
		return fmt.Errorf("medication not found: %w", err)
	}

	updates.ID = existing.ID
	updates.UserID = existing.UserID

	now := s.clock()

	// Update active status based on end date
	if updates.EndDate != nil && updates.EndDate.Before(now) {
		updates.Active = false
	} else {
		updates.Active = true
	}

	updates.UpdatedAt = now

	if err := s.repo.Update(ctx, updates); err != nil {
		s.logger.Error("failed to update medication",
			zap.Error(err),
			zap.String("medication_id", medID),
		)
		return fmt.Errorf("failed to update medication: %w", err)
	}

	if scheduleChanged(existing, updates) {
		if err := s.repo.DeleteFutureDoses(ctx, medID, now); err != nil {
			return fmt.Errorf("failed to clear outdated doses: %w", err)
		}

		if updates.Active {
			doses := s.scheduler.GenerateDoses(updates.ID, updates.UserID, updates.Frequency, updates.TimesOfDay, now, updates.EndDate)
			if err := s.persistDoses(ctx, doses); err != nil {
				return err
			}
		}
	}

	s.logger.Info("medication updated successfully",
		zap.String("medication_id", medID),
		zap.String("name", updates.Name),
	)

	return nil
}

// DeleteMedication deletes a medication and its dose schedule
func (s *MedicationService) DeleteMedication(ctx context.Context, medID string) error {
	if medID == "" {
		return fmt.Errorf("medication ID is required")
	}

	if err := s.repo.Delete(ctx, medID); err != nil {
		s.logger.Error("failed to delete medication",
			zap.Error(err),
			zap.String("medication_id", medID),
		)
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	s.logger.Info("medication deleted successfully",
		zap.String("medication_id", medID),
	)

	return nil
}

// ListDoses retrieves the stored dose schedule for a medication
func (s *MedicationService) ListDoses(ctx context.Context, medID string) ([]model.MedicationDose, error) {
	if medID == "" {
		return nil, fmt.Errorf("medication ID is required")
	}

	doses, err := s.repo.GetDosesByMedicationID(ctx, medID)
	if err != nil {
		s.logger.Error("failed to list doses",
			zap.Error(err),
			zap.String("medication_id", medID),
		)
		return nil, fmt.Errorf("failed to list doses: %w", err)
	}

	return doses, nil
}

// SyncDoseSchedules tops up the dose schedule of every active medication that
// is running short. Returns the number of doses generated.
func (s *MedicationService) SyncDoseSchedules(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user ID is required")
	}

	medications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list medications: %w", err)
	}

	now := s.clock()
	generated := 0

	for _, med := range medications {
		if !med.Active || med.Frequency == model.FrequencyAsNeeded {
			continue
		}

		existing, err := s.repo.GetDosesByMedicationID(ctx, med.ID)
		if err != nil {
			s.logger.Warn("failed to load doses during sync",
				zap.Error(err),
				zap.String("medication_id", med.ID),
			)
			continue
		}

		if !s.scheduler.ShouldRegenerate(existing, now) {
			continue
		}

		start := now
		if len(existing) > 0 {
			last := existing[len(existing)-1].ScheduledTime
			if last.After(start) {
				start = last.Add(time.Second)
			}
		}

		doses := s.scheduler.GenerateDoses(med.ID, med.UserID, med.Frequency, med.TimesOfDay, start, med.EndDate)
		if err := s.persistDoses(ctx, doses); err != nil {
			return generated, err
		}
		generated += len(doses)
	}

	s.logger.Info("dose schedules synced",
		zap.String("user_id", userID),
		zap.Int("doses_generated", generated),
	)

	return generated, nil
}

// RecordDoseTaken marks a scheduled dose as taken
func (s *MedicationService) RecordDoseTaken(ctx context.Context, doseID string) error {
	if doseID == "" {
		return fmt.Errorf("dose ID is required")
	}

	takenAt := s.clock()
	if err := s.repo.MarkDoseTaken(ctx, doseID, takenAt); err != nil {
		s.logger.Error("failed to record dose taken",
			zap.Error(err),
			zap.String("dose_id", doseID),
		)
		return fmt.Errorf("failed to record dose taken: %w", err)
	}

	s.logger.Info("dose recorded as taken",
		zap.String("dose_id", doseID),
	)

	return nil
}

func (s *MedicationService) persistDoses(ctx context.Context, doses []model.MedicationDose) error {
	for i := range doses {
		doses[i].ID = uuid.New().String()
	}

	if err := s.repo.InsertDoses(ctx, doses); err != nil {
		s.logger.Error("failed to persist generated doses", zap.Error(err))
		return fmt.Errorf("failed to persist generated doses: %w", err)
	}

	return nil
}

func scheduleChanged(existing, updates *model.Medication) bool {
	if existing.Frequency != updates.Frequency {
		return true
	}
	if len(existing.TimesOfDay) != len(updates.TimesOfDay) {
		return true
	}
	for i := range existing.TimesOfDay {
		if existing.TimesOfDay[i] != updates.TimesOfDay[i] {
			return true
		}
	}
	if !existing.StartDate.Equal(updates.StartDate) {
		return true
	}
	if (existing.EndDate == nil) != (updates.EndDate == nil) {
		return true
	}
	if existing.EndDate != nil && !existing.EndDate.Equal(*updates.EndDate) {
		return true
	}
	return false
}
