package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"pharmacy-loan-tracker/internal/mailer"
	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/pdf"
	"pharmacy-loan-tracker/internal/repository"
)

// NotificationService performs the post-commit side effect of a loan
// creation: render the PDF document, keep a copy on disk, and email it
// to the other hospital. Every failure here is logged and swallowed —
// the loan record is already durable and must not be affected.
type NotificationService struct {
	loanRepo   *repository.LoanRepository
	generator  *pdf.Generator
	mail       *mailer.Mailer
	storageDir string
}

func NewNotificationService(
	loanRepo *repository.LoanRepository,
	generator *pdf.Generator,
	mail *mailer.Mailer,
	storageDir string,
) *NotificationService {
	return &NotificationService{
		loanRepo:   loanRepo,
		generator:  generator,
		mail:       mail,
		storageDir: storageDir,
	}
}

// SendLoanDocument implements LoanNotifier. Called in its own goroutine
// after the create transaction committed.
func (s *NotificationService) SendLoanDocument(loan *models.Loan) {
	data, err := s.generator.LoanDocument(loan)
	if err != nil {
		log.Printf("Loan %s: PDF generation failed: %v", loan.ReferenceNumber, err)
		return
	}

	if path, err := s.store(loan, data); err != nil {
		log.Printf("Loan %s: could not store PDF: %v", loan.ReferenceNumber, err)
	} else if err := s.loanRepo.UpdatePdfPath(loan.ID, path); err != nil {
		log.Printf("Loan %s: could not record PDF path: %v", loan.ReferenceNumber, err)
	}

	if err := s.mail.SendLoanEmail(loan, data); err != nil {
		log.Printf("Loan %s: email to %s failed: %v", loan.ReferenceNumber, loan.EmailSentTo, err)
		return
	}
	if loan.EmailSentTo != "" {
		log.Printf("Loan %s: document emailed to %s", loan.ReferenceNumber, loan.EmailSentTo)
	}
}

func (s *NotificationService) store(loan *models.Loan, data []byte) (string, error) {
	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.storageDir, fmt.Sprintf("prestamo-%s.pdf", loan.ReferenceNumber))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
