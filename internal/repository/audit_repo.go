package repository

import (
	"pharmacy-loan-tracker/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(action string, details string) error {
	entry := &models.AuditLog{
		Action:  action,
		Details: details,
	}
	return r.db.Create(entry).Error
}

// GetRecentActivity retrieves the latest audit entries for the
// dashboard activity feed
func (r *AuditRepository) GetRecentActivity(limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
