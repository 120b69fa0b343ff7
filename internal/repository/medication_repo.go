package repository

import (
	"errors"

	"pharmacy-loan-tracker/internal/models"

	"gorm.io/gorm"
)

var ErrMedicationNotFound = errors.New("medication not found")

type MedicationRepository struct {
	db *gorm.DB
}

func NewMedicationRepo(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

// GetAllMedications retrieves all active medications ordered by name
func (r *MedicationRepository) GetAllMedications() ([]models.Medication, error) {
	var medications []models.Medication
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&medications).Error
	return medications, err
}

// GetMedicationByID retrieves an active medication by ID
func (r *MedicationRepository) GetMedicationByID(id uint) (*models.Medication, error) {
	var medication models.Medication
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&medication).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, err
	}
	return &medication, nil
}

// CreateMedication creates a new medication
func (r *MedicationRepository) CreateMedication(medication *models.Medication) error {
	return r.db.Create(medication).Error
}

// CreateMedications inserts a batch of medications (bulk import)
func (r *MedicationRepository) CreateMedications(medications []models.Medication) error {
	if len(medications) == 0 {
		return nil
	}
	return r.db.CreateInBatches(medications, 100).Error
}

// UpdateMedication updates an existing medication
func (r *MedicationRepository) UpdateMedication(medication *models.Medication) error {
	return r.db.Save(medication).Error
}

// SoftDeleteMedication flips is_active to false, keeping the row for
// loans that reference it.
func (r *MedicationRepository) SoftDeleteMedication(id uint) error {
	return r.db.Model(&models.Medication{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// SearchMedications finds active medications by name or national code
func (r *MedicationRepository) SearchMedications(query string, limit int) ([]models.Medication, error) {
	var medications []models.Medication
	like := "%" + query + "%"
	err := r.db.Where("is_active = ? AND (name LIKE ? OR national_code LIKE ?)", true, like, like).
		Order("name ASC").
		Limit(limit).
		Find(&medications).Error
	return medications, err
}

// CountActiveMedications counts medications available for new loans
func (r *MedicationRepository) CountActiveMedications() (int64, error) {
	var count int64
	err := r.db.Model(&models.Medication{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
