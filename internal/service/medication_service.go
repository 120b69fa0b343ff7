package service

import (
	"fmt"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"
)

type MedicationService struct {
	medicationRepo *repository.MedicationRepository
	auditRepo      *repository.AuditRepository
}

func NewMedicationService(medicationRepo *repository.MedicationRepository, auditRepo *repository.AuditRepository) *MedicationService {
	return &MedicationService{
		medicationRepo: medicationRepo,
		auditRepo:      auditRepo,
	}
}

// GetAllMedications retrieves all active medications
func (s *MedicationService) GetAllMedications() ([]models.Medication, error) {
	return s.medicationRepo.GetAllMedications()
}

// GetMedicationByID retrieves an active medication by ID
func (s *MedicationService) GetMedicationByID(id uint) (*models.Medication, error) {
	return s.medicationRepo.GetMedicationByID(id)
}

// CreateMedication creates a new medication
func (s *MedicationService) CreateMedication(medication *models.Medication) error {
	if medication.Name == "" {
		return newValidationError("name", "name is required")
	}
	medication.IsActive = true

	if err := s.medicationRepo.CreateMedication(medication); err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}

	details := fmt.Sprintf("Created medication: %s", medication.Name)
	_ = s.auditRepo.CreateAuditLog("medication_create", details)

	return nil
}

// UpdateMedication updates an existing medication
func (s *MedicationService) UpdateMedication(medication *models.Medication) error {
	if medication.Name == "" {
		return newValidationError("name", "name is required")
	}

	existing, err := s.medicationRepo.GetMedicationByID(medication.ID)
	if err != nil {
		return err
	}
	medication.IsActive = existing.IsActive
	medication.CreatedAt = existing.CreatedAt

	if err := s.medicationRepo.UpdateMedication(medication); err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}

	details := fmt.Sprintf("Updated medication: %s (ID: %d)", medication.Name, medication.ID)
	_ = s.auditRepo.CreateAuditLog("medication_update", details)

	return nil
}

// DeleteMedication soft deletes a medication, leaving existing loans
// intact.
func (s *MedicationService) DeleteMedication(id uint) error {
	medication, err := s.medicationRepo.GetMedicationByID(id)
	if err != nil {
		return err
	}

	if err := s.medicationRepo.SoftDeleteMedication(id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	details := fmt.Sprintf("Deleted medication: %s (ID: %d)", medication.Name, id)
	_ = s.auditRepo.CreateAuditLog("medication_delete", details)

	return nil
}
