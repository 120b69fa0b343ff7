package models

import "time"

// LoanType distinguishes the two loan directions: either our pharmacy
// requested medication from another hospital, or another hospital
// requested it from us.
type LoanType string

const (
	LoanRequestedByUs   LoanType = "REQUESTED_BY_US"
	LoanRequestedFromUs LoanType = "REQUESTED_FROM_US"
)

// Valid reports whether t is one of the two known loan directions.
func (t LoanType) Valid() bool {
	return t == LoanRequestedByUs || t == LoanRequestedFromUs
}

// Label returns the Spanish display label used on documents and exports.
func (t LoanType) Label() string {
	switch t {
	case LoanRequestedByUs:
		return "Solicitamos préstamo"
	case LoanRequestedFromUs:
		return "Nos solicitan préstamo"
	default:
		return string(t)
	}
}

// Loan represents a medication loan stamped with a unique reference
// number. Completion is tracked by two independent flags: whether the
// loan has been processed in Farmatools (the external inventory system)
// and whether the units were physically returned. The flags carry no
// ordering between them; a loan can be returned before it is processed.
type Loan struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	ReferenceNumber string   `gorm:"size:20;not null;uniqueIndex" json:"reference_number"`
	Type            LoanType `gorm:"size:20;not null;index" json:"type"`
	HospitalID      uint     `gorm:"not null;index" json:"hospital_id"`
	MedicationID    uint     `gorm:"not null;index" json:"medication_id"`
	Units           int      `gorm:"not null" json:"units"`

	FarmatoolsProcessed bool `gorm:"default:false" json:"farmatools_processed"`
	Returned            bool `gorm:"default:false" json:"returned"`

	EmailSentTo string    `gorm:"size:255" json:"email_sent_to,omitempty"`
	PdfPath     string    `gorm:"size:512" json:"pdf_path,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	Hospital   *Hospital   `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Medication *Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`
}

// TableName specifies the table name for Loan model
func (Loan) TableName() string {
	return "loans"
}

// FarmatoolsLabel derives the Spanish administrative-status label from
// the processed flag.
func (l *Loan) FarmatoolsLabel() string {
	if l.FarmatoolsProcessed {
		return "Gestionado en Farmatools"
	}
	return "Pendiente de gestionar en Farmatools"
}

// ReturnLabel derives the Spanish return-status label. The pending
// wording depends on the loan direction: medication we borrowed is
// pending for us to return, medication we lent is pending for the
// other hospital to return.
func (l *Loan) ReturnLabel() string {
	if l.Returned {
		return "Devuelto"
	}
	if l.Type == LoanRequestedByUs {
		return "Pendiente de devolver"
	}
	return "Pendiente de que nos devuelvan"
}
