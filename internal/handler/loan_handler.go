package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/pdf"
	"pharmacy-loan-tracker/internal/repository"
	"pharmacy-loan-tracker/internal/service"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type LoanHandler struct {
	loanService *service.LoanService
	generator   *pdf.Generator
}

func NewLoanHandler(loanService *service.LoanService, generator *pdf.Generator) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		generator:   generator,
	}
}

type createLoanRequest struct {
	Type         string `json:"type" binding:"required"`
	HospitalID   uint   `json:"hospital_id" binding:"required"`
	MedicationID uint   `json:"medication_id" binding:"required"`
	Units        int    `json:"units" binding:"required"`
	EmailSentTo  string `json:"email_sent_to" binding:"required,email"`
	Notes        string `json:"notes"`
}

type flagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

type notesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

type bulkReturnRequest struct {
	LoanIDs []uint `json:"loan_ids" binding:"required,min=1"`
}

type pendingReportRequest struct {
	LoanIDs  []uint `json:"loan_ids" binding:"required,min=1"`
	ListType string `json:"list_type" binding:"required"`
}

// CreateLoan creates a loan with a freshly allocated reference number.
// Document generation and email dispatch happen after the response.
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	loan, err := h.loanService.CreateLoan(service.CreateLoanInput{
		Type:         models.LoanType(req.Type),
		HospitalID:   req.HospitalID,
		MedicationID: req.MedicationID,
		Units:        req.Units,
		EmailSentTo:  req.EmailSentTo,
		Notes:        req.Notes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Loan created successfully",
		"loan":    loan,
	})
}

// ListLoans retrieves loans filtered by query parameters
func (h *LoanHandler) ListLoans(c *gin.Context) {
	loans, err := h.loanService.ListLoans(parseLoanFilters(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch loans")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"loans": loans,
		"count": len(loans),
	})
}

// GetLoan retrieves a specific loan by ID
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoan(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, loan)
}

// SetProcessed toggles the administrative (Farmatools) flag
func (h *LoanHandler) SetProcessed(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}

	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	loan, err := h.loanService.SetProcessed(id, *req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, loan)
}

// SetReturned toggles the physical-return flag
func (h *LoanHandler) SetReturned(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}

	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	loan, err := h.loanService.SetReturned(id, *req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, loan)
}

// UpdateNotes replaces the loan notes
func (h *LoanHandler) UpdateNotes(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	loan, err := h.loanService.UpdateNotes(id, *req.Notes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, loan)
}

// BulkReturn marks the given loans as returned
func (h *LoanHandler) BulkReturn(c *gin.Context) {
	var req bulkReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	affected, err := h.loanService.MarkManyReturned(req.LoanIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Loans marked as returned",
		"affected": affected,
	})
}

// ExportCSV streams the filtered loans as a ;-delimited CSV file
func (h *LoanHandler) ExportCSV(c *gin.Context) {
	loans, err := h.loanService.ListLoans(parseLoanFilters(c))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch loans")
		return
	}

	data, err := service.BuildLoansCSV(loans)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to build export")
		return
	}

	filename := fmt.Sprintf("prestamos-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// LoanPDF streams the loan document for a single loan
func (h *LoanHandler) LoanPDF(c *gin.Context) {
	id, ok := parseLoanID(c)
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoan(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	data, err := h.generator.LoanDocument(loan)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", fmt.Sprintf("prestamo-%s.pdf", loan.ReferenceNumber)))
	c.Data(http.StatusOK, "application/pdf", data)
}

// PendingReport streams the pending-return list PDF for selected loans
func (h *LoanHandler) PendingReport(c *gin.Context) {
	var req pendingReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	kind := pdf.ListKind(req.ListType)
	if !kind.Valid() {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unknown list type")
		return
	}

	loans, err := h.loanService.ListLoansByIDs(req.LoanIDs)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch loans")
		return
	}
	if len(loans) == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, "No loans found")
		return
	}

	data, err := h.generator.PendingReport(loans, kind)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("pendientes-%s-%s.pdf", kind, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func parseLoanID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid loan ID")
		return 0, false
	}
	return uint(id), true
}

// parseLoanFilters reads the shared list/export query parameters.
// farmatools and returned accept "true"/"false"; anything else means
// no filter.
func parseLoanFilters(c *gin.Context) repository.LoanFilters {
	filters := repository.LoanFilters{
		Type:   models.LoanType(c.Query("type")),
		Search: c.Query("search"),
	}
	if hospitalID, err := strconv.ParseUint(c.Query("hospital_id"), 10, 32); err == nil {
		filters.HospitalID = uint(hospitalID)
	}
	filters.Processed = parseBoolFilter(c.Query("farmatools"))
	filters.Returned = parseBoolFilter(c.Query("returned"))
	return filters
}

func parseBoolFilter(value string) *bool {
	switch value {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}
