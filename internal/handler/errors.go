package handler

import (
	"errors"
	"net/http"

	"pharmacy-loan-tracker/internal/repository"
	"pharmacy-loan-tracker/internal/service"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses:
// validation → 400, missing entities → 404, allocator contention → 503,
// anything else → 500.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.ErrorResponse(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, repository.ErrHospitalNotFound),
		errors.Is(err, repository.ErrMedicationNotFound),
		errors.Is(err, repository.ErrLoanNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAllocatorBusy):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
