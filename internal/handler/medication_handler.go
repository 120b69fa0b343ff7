package handler

import (
	"net/http"
	"strconv"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/service"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MedicationHandler struct {
	medicationService *service.MedicationService
}

func NewMedicationHandler(medicationService *service.MedicationService) *MedicationHandler {
	return &MedicationHandler{
		medicationService: medicationService,
	}
}

type medicationRequest struct {
	Name             string `json:"name" binding:"required"`
	NationalCode     string `json:"national_code"`
	Presentation     string `json:"presentation"`
	ActiveIngredient string `json:"active_ingredient"`
}

// GetAllMedications retrieves all active medications
func (h *MedicationHandler) GetAllMedications(c *gin.Context) {
	medications, err := h.medicationService.GetAllMedications()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch medications")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"medications": medications,
		"count":       len(medications),
	})
}

// GetMedication retrieves a specific medication by ID
func (h *MedicationHandler) GetMedication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medication ID")
		return
	}

	medication, err := h.medicationService.GetMedicationByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, medication)
}

// CreateMedication creates a new medication
func (h *MedicationHandler) CreateMedication(c *gin.Context) {
	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	medication := models.Medication{
		Name:             req.Name,
		NationalCode:     req.NationalCode,
		Presentation:     req.Presentation,
		ActiveIngredient: req.ActiveIngredient,
	}

	if err := h.medicationService.CreateMedication(&medication); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    "Medication created successfully",
		"medication": medication,
	})
}

// UpdateMedication updates an existing medication
func (h *MedicationHandler) UpdateMedication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medication ID")
		return
	}

	var req medicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	medication := models.Medication{
		ID:               uint(id),
		Name:             req.Name,
		NationalCode:     req.NationalCode,
		Presentation:     req.Presentation,
		ActiveIngredient: req.ActiveIngredient,
	}

	if err := h.medicationService.UpdateMedication(&medication); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    "Medication updated successfully",
		"medication": medication,
	})
}

// DeleteMedication soft deletes a medication
func (h *MedicationHandler) DeleteMedication(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid medication ID")
		return
	}

	if err := h.medicationService.DeleteMedication(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.MessageResponse(c, "Medication deleted successfully")
}
