package service

import (
	"pharmacy-loan-tracker/internal/mailer"
	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	auditRepo    *repository.AuditRepository
	mail         *mailer.Mailer
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, auditRepo *repository.AuditRepository, mail *mailer.Mailer) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		mail:         mail,
	}
}

// GetSmtpSettings retrieves the stored SMTP settings, nil when the
// transport runs on env fallback only.
func (s *SettingsService) GetSmtpSettings() (*models.SmtpSettings, error) {
	return s.settingsRepo.GetSmtpSettings()
}

// UpdateSmtpSettings replaces the SMTP settings row
func (s *SettingsService) UpdateSmtpSettings(settings *models.SmtpSettings) error {
	if settings.Host == "" {
		return newValidationError("host", "host is required")
	}
	if settings.Port <= 0 {
		return newValidationError("port", "port must be a positive number")
	}

	if err := s.settingsRepo.UpsertSmtpSettings(settings); err != nil {
		return err
	}
	_ = s.auditRepo.CreateAuditLog("smtp_settings_update", "Updated SMTP settings: "+settings.Host)
	return nil
}

// SendTestEmail sends a test message through the configured transport
func (s *SettingsService) SendTestEmail(to string) error {
	return s.mail.SendTestEmail(to)
}
