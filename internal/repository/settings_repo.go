package repository

import (
	"errors"

	"pharmacy-loan-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSmtpSettings retrieves the singleton settings row, or nil when the
// SMTP transport has never been configured.
func (r *SettingsRepository) GetSmtpSettings() (*models.SmtpSettings, error) {
	var settings models.SmtpSettings
	err := r.db.First(&settings, "id = ?", models.SmtpSettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// UpsertSmtpSettings creates or replaces the singleton settings row
func (r *SettingsRepository) UpsertSmtpSettings(settings *models.SmtpSettings) error {
	settings.ID = models.SmtpSettingsID
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
}
