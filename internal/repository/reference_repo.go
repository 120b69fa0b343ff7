package repository

import (
	"errors"
	"fmt"
	"time"

	"pharmacy-loan-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceRepository mints loan reference numbers from the singleton
// counter row. The counter is monotonically increasing within a
// calendar year and restarts at 1 when the year rolls over; references
// stay globally unique because the year segment differs.
type ReferenceRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReferenceRepo(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db, now: time.Now}
}

// FormatReference renders the canonical reference string,
// e.g. PREST-2025-00001.
func FormatReference(year, counter int) string {
	return fmt.Sprintf("PREST-%04d-%05d", year, counter)
}

// NextReference reads and increments the counter row inside the given
// transaction and returns the minted reference string. The row is
// locked with SELECT ... FOR UPDATE, so concurrent callers serialize on
// it and can never observe the same counter value. Callers that insert
// a loan must do so in the same transaction: if it aborts, the
// increment rolls back with it and no reference is consumed.
func (r *ReferenceRepository) NextReference(tx *gorm.DB) (string, error) {
	year := r.now().Year()

	var rc models.ReferenceCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rc, "id = ?", models.ReferenceCounterID).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First-ever allocation: initialize rather than fail.
		rc = models.ReferenceCounter{
			ID:      models.ReferenceCounterID,
			Year:    year,
			Counter: 1,
		}
		if err := tx.Create(&rc).Error; err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		if rc.Year != year {
			// Year rollover: restart the sequence.
			rc.Year = year
			rc.Counter = 1
		} else {
			rc.Counter++
		}
		if err := tx.Save(&rc).Error; err != nil {
			return "", err
		}
	}

	return FormatReference(rc.Year, rc.Counter), nil
}

// Allocate mints a reference in its own transaction. Loan creation goes
// through LoanRepository.CreateLoan instead so the insert shares the
// allocator's transaction.
func (r *ReferenceRepository) Allocate() (string, error) {
	var ref string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		ref, err = r.NextReference(tx)
		return err
	})
	if err != nil {
		return "", err
	}
	return ref, nil
}
