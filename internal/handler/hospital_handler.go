package handler

import (
	"net/http"
	"strconv"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/service"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	hospitalService *service.HospitalService
}

func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
	}
}

type hospitalRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// GetAllHospitals retrieves all active hospitals
func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.hospitalService.GetAllHospitals()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch hospitals")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital retrieves a specific hospital by ID
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return
	}

	hospital, err := h.hospitalService.GetHospitalByID(uint(id))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

// CreateHospital creates a new hospital
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req hospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hospital := models.Hospital{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := h.hospitalService.CreateHospital(&hospital); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital created successfully",
		"hospital": hospital,
	})
}

// UpdateHospital updates an existing hospital
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return
	}

	var req hospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hospital := models.Hospital{
		ID:      uint(id),
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := h.hospitalService.UpdateHospital(&hospital); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital updated successfully",
		"hospital": hospital,
	})
}

// DeleteHospital soft deletes a hospital
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return
	}

	if err := h.hospitalService.DeleteHospital(uint(id)); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.MessageResponse(c, "Hospital deleted successfully")
}
