package repository

import (
	"errors"

	"pharmacy-loan-tracker/internal/models"

	"gorm.io/gorm"
)

var ErrLoanNotFound = errors.New("loan not found")

type LoanRepository struct {
	db      *gorm.DB
	refRepo *ReferenceRepository
}

func NewLoanRepo(db *gorm.DB, refRepo *ReferenceRepository) *LoanRepository {
	return &LoanRepository{db: db, refRepo: refRepo}
}

// LoanFilters narrows ListLoans. Nil booleans mean "either".
type LoanFilters struct {
	Processed  *bool
	Returned   *bool
	Type       models.LoanType
	HospitalID uint
	Search     string
}

// CreateLoan allocates the reference number and inserts the loan in a
// single transaction. An abort leaves the counter untouched, so no
// reference is ever consumed without a matching loan row.
func (r *LoanRepository) CreateLoan(loan *models.Loan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ref, err := r.refRepo.NextReference(tx)
		if err != nil {
			return err
		}
		loan.ReferenceNumber = ref
		return tx.Create(loan).Error
	})
}

// GetLoanByID retrieves a loan with its hospital and medication. The
// preloads deliberately skip the is_active filter: a soft-deleted
// hospital or medication must stay resolvable from its loans.
func (r *LoanRepository) GetLoanByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.Preload("Hospital").Preload("Medication").
		First(&loan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// ListLoans retrieves loans matching the filters, newest first.
func (r *LoanRepository) ListLoans(f LoanFilters) ([]models.Loan, error) {
	q := r.db.Model(&models.Loan{}).
		Preload("Hospital").Preload("Medication").
		Order("loans.created_at DESC")

	if f.Processed != nil {
		q = q.Where("loans.farmatools_processed = ?", *f.Processed)
	}
	if f.Returned != nil {
		q = q.Where("loans.returned = ?", *f.Returned)
	}
	if f.Type != "" {
		q = q.Where("loans.type = ?", f.Type)
	}
	if f.HospitalID != 0 {
		q = q.Where("loans.hospital_id = ?", f.HospitalID)
	}
	if f.Search != "" {
		q = q.Joins("INNER JOIN medications ON medications.id = loans.medication_id").
			Where("medications.name LIKE ?", "%"+f.Search+"%")
	}

	var loans []models.Loan
	err := q.Find(&loans).Error
	return loans, err
}

// ListLoansByIDs retrieves the given loans ordered by hospital then
// medication name, the order the pending-return report prints them in.
func (r *LoanRepository) ListLoansByIDs(ids []uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Model(&models.Loan{}).
		Preload("Hospital").Preload("Medication").
		Joins("INNER JOIN hospitals ON hospitals.id = loans.hospital_id").
		Joins("INNER JOIN medications ON medications.id = loans.medication_id").
		Where("loans.id IN (?)", ids).
		Order("hospitals.name ASC, medications.name ASC").
		Find(&loans).Error
	return loans, err
}

// SetProcessed updates the administrative flag only.
func (r *LoanRepository) SetProcessed(id uint, processed bool) error {
	return r.db.Model(&models.Loan{}).
		Where("id = ?", id).
		Update("farmatools_processed", processed).Error
}

// SetReturned updates the physical-return flag only.
func (r *LoanRepository) SetReturned(id uint, returned bool) error {
	return r.db.Model(&models.Loan{}).
		Where("id = ?", id).
		Update("returned", returned).Error
}

// UpdateNotes replaces the free-text notes.
func (r *LoanRepository) UpdateNotes(id uint, notes string) error {
	return r.db.Model(&models.Loan{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

// UpdatePdfPath records where the generated loan document was stored.
func (r *LoanRepository) UpdatePdfPath(id uint, path string) error {
	return r.db.Model(&models.Loan{}).
		Where("id = ?", id).
		Update("pdf_path", path).Error
}

// MarkManyReturned sets returned = true for all given loans in a single
// statement: the batch applies all-or-nothing. Returns the number of
// rows changed.
func (r *LoanRepository) MarkManyReturned(ids []uint) (int64, error) {
	res := r.db.Model(&models.Loan{}).
		Where("id IN (?)", ids).
		Update("returned", true)
	return res.RowsAffected, res.Error
}

// SearchLoans finds loans whose reference number matches the query.
func (r *LoanRepository) SearchLoans(query string, limit int) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Model(&models.Loan{}).
		Preload("Hospital").Preload("Medication").
		Where("reference_number LIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&loans).Error
	return loans, err
}

// LoanCounts aggregates the dashboard summary numbers.
type LoanCounts struct {
	Total               int64 `json:"total"`
	PendingFarmatools   int64 `json:"pending_farmatools"`
	PendingReturnByUs   int64 `json:"pending_return_by_us"`
	PendingReturnFromUs int64 `json:"pending_return_from_us"`
}

// CountLoans computes the dashboard counters.
func (r *LoanRepository) CountLoans() (*LoanCounts, error) {
	var counts LoanCounts
	if err := r.db.Model(&models.Loan{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Loan{}).
		Where("farmatools_processed = ?", false).
		Count(&counts.PendingFarmatools).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Loan{}).
		Where("returned = ? AND type = ?", false, models.LoanRequestedByUs).
		Count(&counts.PendingReturnByUs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Loan{}).
		Where("returned = ? AND type = ?", false, models.LoanRequestedFromUs).
		Count(&counts.PendingReturnFromUs).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
