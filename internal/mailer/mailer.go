// Package mailer sends loan documents over SMTP. The transport is
// configured from the smtp_settings row when present, otherwise from
// environment variables; with neither, sending reports ErrNotConfigured
// so callers can log and move on.
package mailer

import (
	"bytes"
	"errors"
	"fmt"

	"pharmacy-loan-tracker/internal/config"
	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"

	"github.com/wneessen/go-mail"
)

var ErrNotConfigured = errors.New("smtp transport not configured")

type Mailer struct {
	settingsRepo *repository.SettingsRepository
	fallback     config.SMTPConfig
}

func New(settingsRepo *repository.SettingsRepository, fallback config.SMTPConfig) *Mailer {
	return &Mailer{settingsRepo: settingsRepo, fallback: fallback}
}

// transport resolves the effective SMTP configuration, settings row
// first, env fallback second.
func (m *Mailer) transport() (*models.SmtpSettings, error) {
	settings, err := m.settingsRepo.GetSmtpSettings()
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}
	if m.fallback.Host == "" {
		return nil, ErrNotConfigured
	}
	return &models.SmtpSettings{
		Host:      m.fallback.Host,
		Port:      m.fallback.Port,
		User:      m.fallback.User,
		Password:  m.fallback.Password,
		FromName:  m.fallback.FromName,
		FromEmail: m.fallback.FromEmail,
	}, nil
}

func (m *Mailer) client(settings *models.SmtpSettings) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(settings.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(settings.User),
		mail.WithPassword(settings.Password),
	}
	if settings.Secure {
		opts = append(opts, mail.WithSSL())
	}
	return mail.NewClient(settings.Host, opts...)
}

// SendLoanEmail emails the loan summary with the PDF document attached.
func (m *Mailer) SendLoanEmail(loan *models.Loan, pdfData []byte) error {
	if loan.EmailSentTo == "" {
		return nil
	}
	settings, err := m.transport()
	if err != nil {
		return err
	}
	c, err := m.client(settings)
	if err != nil {
		return err
	}

	hospitalName := ""
	if loan.Hospital != nil {
		hospitalName = loan.Hospital.Name
	}
	medName := ""
	if loan.Medication != nil {
		medName = loan.Medication.Name
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(settings.FromName, settings.FromEmail); err != nil {
		return err
	}
	if err := msg.To(loan.EmailSentTo); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Préstamo de medicamento - %s", loan.ReferenceNumber))
	msg.SetBodyString(mail.TypeTextHTML, loanEmailBody(loan, hospitalName, medName))
	if err := msg.AttachReader(fmt.Sprintf("prestamo-%s.pdf", loan.ReferenceNumber), bytes.NewReader(pdfData)); err != nil {
		return err
	}

	return c.DialAndSend(msg)
}

// SendTestEmail verifies the configured transport by sending a short
// message to the given address.
func (m *Mailer) SendTestEmail(to string) error {
	settings, err := m.transport()
	if err != nil {
		return err
	}
	c, err := m.client(settings)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(settings.FromName, settings.FromEmail); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Prueba de configuración SMTP")
	msg.SetBodyString(mail.TypeTextPlain, "La configuración SMTP del gestor de préstamos funciona correctamente.")

	return c.DialAndSend(msg)
}

func loanEmailBody(loan *models.Loan, hospitalName, medName string) string {
	row := func(label, value string) string {
		return fmt.Sprintf(`<tr>
  <td style="padding: 8px 12px; border: 1px solid #ddd; font-weight: bold; background: #f8fafc;">%s</td>
  <td style="padding: 8px 12px; border: 1px solid #ddd;">%s</td>
</tr>`, label, value)
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1e40af;">Préstamo de Medicamento</h2>
  <p>Se adjunta el documento de préstamo con referencia <strong>%s</strong>.</p>
  <table style="border-collapse: collapse; width: 100%%; margin: 16px 0;">
    %s%s%s%s
  </table>
  <p style="color: #666; font-size: 12px; margin-top: 24px; border-top: 1px solid #eee; padding-top: 12px;">
    Este mensaje ha sido generado automáticamente por el sistema de gestión de préstamos.
  </p>
</div>`,
		loan.ReferenceNumber,
		row("Tipo", loan.Type.Label()),
		row("Hospital", hospitalName),
		row("Medicamento", medName),
		row("Unidades", fmt.Sprintf("%d", loan.Units)),
	)
}
