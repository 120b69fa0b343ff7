package handler

import (
	"crypto/subtle"
	"net/http"

	"pharmacy-loan-tracker/internal/config"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth config.AuthConfig
}

func NewAuthHandler(auth config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the shared pharmacy password and sets the session
// cookie. A bcrypt hash (APP_PASSWORD_HASH) takes precedence over the
// plain APP_PASSWORD when both are configured.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !h.passwordMatches(req.Password) {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token, err := utils.GenerateSessionToken()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	maxAge := int(utils.TokenExpiry().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.auth.CookieName, token, maxAge, "/", "", false, true)

	utils.SuccessResponse(c, gin.H{"token": token})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.auth.CookieName, "", -1, "/", "", false, true)
	utils.MessageResponse(c, "Logged out")
}

func (h *AuthHandler) passwordMatches(password string) bool {
	if h.auth.AppPasswordHash != "" {
		return utils.ComparePassword(h.auth.AppPasswordHash, password)
	}
	if h.auth.AppPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.auth.AppPassword), []byte(password)) == 1
}
