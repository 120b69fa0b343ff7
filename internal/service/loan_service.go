package service

import (
	"errors"
	"fmt"
	"log"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"

	"github.com/go-sql-driver/mysql"
)

// allocatorRetries bounds how often a loan creation is retried when the
// counter row is contended before giving up with ErrAllocatorBusy.
const allocatorRetries = 3

// LoanNotifier delivers the loan document after a loan has been
// committed. Implementations must be safe to call from a goroutine;
// failures are theirs to log, never to surface.
type LoanNotifier interface {
	SendLoanDocument(loan *models.Loan)
}

type LoanService struct {
	loanRepo       *repository.LoanRepository
	hospitalRepo   *repository.HospitalRepository
	medicationRepo *repository.MedicationRepository
	auditRepo      *repository.AuditRepository
	notifier       LoanNotifier
}

func NewLoanService(
	loanRepo *repository.LoanRepository,
	hospitalRepo *repository.HospitalRepository,
	medicationRepo *repository.MedicationRepository,
	auditRepo *repository.AuditRepository,
	notifier LoanNotifier,
) *LoanService {
	return &LoanService{
		loanRepo:       loanRepo,
		hospitalRepo:   hospitalRepo,
		medicationRepo: medicationRepo,
		auditRepo:      auditRepo,
		notifier:       notifier,
	}
}

// CreateLoanInput carries the validated loan form fields.
type CreateLoanInput struct {
	Type         models.LoanType
	HospitalID   uint
	MedicationID uint
	Units        int
	EmailSentTo  string
	Notes        string
}

// CreateLoan validates the input, allocates the reference number and
// inserts the loan in one transaction, then fires the document/email
// side effect without blocking the response. The loan is durable once
// the transaction committed regardless of what the side effect does.
func (s *LoanService) CreateLoan(input CreateLoanInput) (*models.Loan, error) {
	if !input.Type.Valid() {
		return nil, newValidationError("type", "unknown loan type")
	}
	if input.Units <= 0 {
		return nil, newValidationError("units", "units must be a positive number")
	}

	// Both referenced entities must exist and be active at creation
	// time. They may be soft-deleted later without affecting the loan.
	hospital, err := s.hospitalRepo.GetHospitalByID(input.HospitalID)
	if err != nil {
		return nil, err
	}
	medication, err := s.medicationRepo.GetMedicationByID(input.MedicationID)
	if err != nil {
		return nil, err
	}

	loan := &models.Loan{
		Type:         input.Type,
		HospitalID:   input.HospitalID,
		MedicationID: input.MedicationID,
		Units:        input.Units,
		EmailSentTo:  input.EmailSentTo,
		Notes:        input.Notes,
	}

	if err := s.createWithRetry(loan); err != nil {
		return nil, err
	}
	loan.Hospital = hospital
	loan.Medication = medication

	details := fmt.Sprintf("Created loan %s: %d units of %s (%s)",
		loan.ReferenceNumber, loan.Units, medication.Name, hospital.Name)
	_ = s.auditRepo.CreateAuditLog("loan_create", details)

	if s.notifier != nil {
		go s.notifier.SendLoanDocument(loan)
	}

	return loan, nil
}

// createWithRetry re-runs the create transaction on MySQL lock errors.
// Each attempt re-reads the counter, so a retried creation never reuses
// a reference from an aborted attempt.
func (s *LoanService) createWithRetry(loan *models.Loan) error {
	var err error
	for attempt := 1; attempt <= allocatorRetries; attempt++ {
		err = s.loanRepo.CreateLoan(loan)
		if err == nil {
			return nil
		}
		if !isLockConflict(err) {
			return err
		}
		log.Printf("Reference allocation conflict (attempt %d/%d): %v", attempt, allocatorRetries, err)
	}
	return ErrAllocatorBusy
}

// isLockConflict reports MySQL lock wait timeout (1205) and deadlock
// (1213) errors, the two transient outcomes of counter contention.
func isLockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1205 || mysqlErr.Number == 1213
	}
	return false
}

// GetLoan retrieves a loan with its hospital and medication
func (s *LoanService) GetLoan(id uint) (*models.Loan, error) {
	return s.loanRepo.GetLoanByID(id)
}

// ListLoans retrieves loans matching the filters
func (s *LoanService) ListLoans(filters repository.LoanFilters) ([]models.Loan, error) {
	return s.loanRepo.ListLoans(filters)
}

// SetProcessed toggles the administrative flag. The return flag is
// untouched; the two are independent and impose no ordering.
func (s *LoanService) SetProcessed(id uint, processed bool) (*models.Loan, error) {
	loan, err := s.loanRepo.GetLoanByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.loanRepo.SetProcessed(id, processed); err != nil {
		return nil, err
	}
	loan.FarmatoolsProcessed = processed

	details := fmt.Sprintf("Loan %s: farmatools_processed = %t", loan.ReferenceNumber, processed)
	_ = s.auditRepo.CreateAuditLog("loan_status_change", details)
	return loan, nil
}

// SetReturned toggles the physical-return flag, independently of the
// administrative flag. Returning before processing is allowed.
func (s *LoanService) SetReturned(id uint, returned bool) (*models.Loan, error) {
	loan, err := s.loanRepo.GetLoanByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.loanRepo.SetReturned(id, returned); err != nil {
		return nil, err
	}
	loan.Returned = returned

	details := fmt.Sprintf("Loan %s: returned = %t", loan.ReferenceNumber, returned)
	_ = s.auditRepo.CreateAuditLog("loan_status_change", details)
	return loan, nil
}

// UpdateNotes replaces the loan notes
func (s *LoanService) UpdateNotes(id uint, notes string) (*models.Loan, error) {
	loan, err := s.loanRepo.GetLoanByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.loanRepo.UpdateNotes(id, notes); err != nil {
		return nil, err
	}
	loan.Notes = notes
	return loan, nil
}

// MarkManyReturned marks all given loans as returned in a single
// statement, so the batch applies all-or-nothing.
func (s *LoanService) MarkManyReturned(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, newValidationError("loan_ids", "no loans selected")
	}
	affected, err := s.loanRepo.MarkManyReturned(ids)
	if err != nil {
		return 0, err
	}

	details := fmt.Sprintf("Marked %d loan(s) as returned", affected)
	_ = s.auditRepo.CreateAuditLog("loan_bulk_return", details)
	return affected, nil
}

// ListLoansByIDs retrieves the given loans in pending-report order
func (s *LoanService) ListLoansByIDs(ids []uint) ([]models.Loan, error) {
	return s.loanRepo.ListLoansByIDs(ids)
}
