package handler

import (
	"errors"
	"net/http"

	"pharmacy-loan-tracker/internal/mailer"
	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/service"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

type smtpSettingsRequest struct {
	Host      string `json:"host" binding:"required"`
	Port      int    `json:"port" binding:"required,gt=0"`
	Secure    bool   `json:"secure"`
	User      string `json:"user" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FromName  string `json:"from_name" binding:"required"`
	FromEmail string `json:"from_email" binding:"required,email"`
}

type testEmailRequest struct {
	To string `json:"to" binding:"required,email"`
}

// GetSmtpSettings returns the stored SMTP configuration
func (h *SettingsHandler) GetSmtpSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSmtpSettings()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch settings")
		return
	}
	if settings == nil {
		utils.SuccessResponse(c, gin.H{"configured": false})
		return
	}

	utils.SuccessResponse(c, settings)
}

// UpdateSmtpSettings replaces the SMTP configuration
func (h *SettingsHandler) UpdateSmtpSettings(c *gin.Context) {
	var req smtpSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	settings := models.SmtpSettings{
		Host:      req.Host,
		Port:      req.Port,
		Secure:    req.Secure,
		User:      req.User,
		Password:  req.Password,
		FromName:  req.FromName,
		FromEmail: req.FromEmail,
	}

	if err := h.settingsService.UpdateSmtpSettings(&settings); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.MessageResponse(c, "SMTP settings updated")
}

// SendTestEmail sends a test message through the configured transport
func (h *SettingsHandler) SendTestEmail(c *gin.Context) {
	var req testEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.SendTestEmail(req.To); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			utils.ErrorResponse(c, http.StatusBadRequest, "SMTP transport not configured")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to send test email")
		return
	}

	utils.MessageResponse(c, "Test email sent")
}
