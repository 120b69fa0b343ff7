package repository

import (
	"errors"

	"pharmacy-loan-tracker/internal/models"

	"gorm.io/gorm"
)

var ErrHospitalNotFound = errors.New("hospital not found")

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetAllHospitals retrieves all active hospitals ordered by name
func (r *HospitalRepository) GetAllHospitals() ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&hospitals).Error
	return hospitals, err
}

// GetHospitalByID retrieves an active hospital by ID
func (r *HospitalRepository) GetHospitalByID(id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

// CreateHospital creates a new hospital
func (r *HospitalRepository) CreateHospital(hospital *models.Hospital) error {
	return r.db.Create(hospital).Error
}

// UpdateHospital updates an existing hospital
func (r *HospitalRepository) UpdateHospital(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}

// SoftDeleteHospital flips is_active to false. The row stays behind so
// existing loans keep resolving it.
func (r *HospitalRepository) SoftDeleteHospital(id uint) error {
	return r.db.Model(&models.Hospital{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// SearchHospitals finds active hospitals by name fragment
func (r *HospitalRepository) SearchHospitals(query string, limit int) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.Where("is_active = ? AND name LIKE ?", true, "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&hospitals).Error
	return hospitals, err
}

// CountActiveHospitals counts hospitals available for new loans
func (r *HospitalRepository) CountActiveHospitals() (int64, error) {
	var count int64
	err := r.db.Model(&models.Hospital{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
