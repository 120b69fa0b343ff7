package service

import (
	"fmt"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"
)

type HospitalService struct {
	hospitalRepo *repository.HospitalRepository
	auditRepo    *repository.AuditRepository
}

func NewHospitalService(hospitalRepo *repository.HospitalRepository, auditRepo *repository.AuditRepository) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		auditRepo:    auditRepo,
	}
}

// GetAllHospitals retrieves all active hospitals
func (s *HospitalService) GetAllHospitals() ([]models.Hospital, error) {
	return s.hospitalRepo.GetAllHospitals()
}

// GetHospitalByID retrieves an active hospital by ID
func (s *HospitalService) GetHospitalByID(id uint) (*models.Hospital, error) {
	return s.hospitalRepo.GetHospitalByID(id)
}

// CreateHospital creates a new hospital
func (s *HospitalService) CreateHospital(hospital *models.Hospital) error {
	if hospital.Name == "" {
		return newValidationError("name", "name is required")
	}
	hospital.IsActive = true

	if err := s.hospitalRepo.CreateHospital(hospital); err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}

	details := fmt.Sprintf("Created hospital: %s", hospital.Name)
	_ = s.auditRepo.CreateAuditLog("hospital_create", details)

	return nil
}

// UpdateHospital updates an existing hospital
func (s *HospitalService) UpdateHospital(hospital *models.Hospital) error {
	if hospital.Name == "" {
		return newValidationError("name", "name is required")
	}

	existing, err := s.hospitalRepo.GetHospitalByID(hospital.ID)
	if err != nil {
		return err
	}
	hospital.IsActive = existing.IsActive
	hospital.CreatedAt = existing.CreatedAt

	if err := s.hospitalRepo.UpdateHospital(hospital); err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}

	details := fmt.Sprintf("Updated hospital: %s (ID: %d)", hospital.Name, hospital.ID)
	_ = s.auditRepo.CreateAuditLog("hospital_update", details)

	return nil
}

// DeleteHospital soft deletes a hospital. Loans referencing it are
// untouched and keep resolving it by id.
func (s *HospitalService) DeleteHospital(id uint) error {
	hospital, err := s.hospitalRepo.GetHospitalByID(id)
	if err != nil {
		return err
	}

	if err := s.hospitalRepo.SoftDeleteHospital(id); err != nil {
		return fmt.Errorf("failed to delete hospital: %w", err)
	}

	details := fmt.Sprintf("Deleted hospital: %s (ID: %d)", hospital.Name, id)
	_ = s.auditRepo.CreateAuditLog("hospital_delete", details)

	return nil
}
