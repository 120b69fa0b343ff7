package service

import (
	"log"
	"testing"
	"time"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

type fakeNotifier struct {
	sent chan *models.Loan
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan *models.Loan, 1)}
}

func (f *fakeNotifier) SendLoanDocument(loan *models.Loan) {
	f.sent <- loan
}

func newLoanServiceWithMock(t *testing.T) (*LoanService, sqlmock.Sqlmock, *fakeNotifier) {
	t.Helper()
	db, mock := newMockDB()
	hospitalRepo := repository.NewHospitalRepo(db)
	medicationRepo := repository.NewMedicationRepo(db)
	refRepo := repository.NewReferenceRepo(db)
	loanRepo := repository.NewLoanRepo(db, refRepo)
	auditRepo := repository.NewAuditRepo(db)
	notifier := newFakeNotifier()
	svc := NewLoanService(loanRepo, hospitalRepo, medicationRepo, auditRepo, notifier)
	return svc, mock, notifier
}

func hospitalRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "is_active"}).
		AddRow(2, "Hospital de Getafe", true)
}

func medicationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "is_active"}).
		AddRow(3, "Paracetamol 1g", true)
}

func loanRows(id uint, processed, returned bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reference_number", "type", "hospital_id", "medication_id",
		"units", "farmatools_processed", "returned",
	}).AddRow(id, "PREST-2025-00010", string(models.LoanRequestedByUs), 2, 3, 5, processed, returned)
}

func TestCreateLoanRejectsNonPositiveUnits(t *testing.T) {
	svc, _, notifier := newLoanServiceWithMock(t)

	for _, units := range []int{0, -1} {
		_, err := svc.CreateLoan(CreateLoanInput{
			Type:         models.LoanRequestedByUs,
			HospitalID:   2,
			MedicationID: 3,
			Units:        units,
		})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "units", validationErr.Field)
	}

	select {
	case <-notifier.sent:
		t.Fatal("notifier must not fire for rejected loans")
	default:
	}
}

func TestCreateLoanRejectsUnknownType(t *testing.T) {
	svc, _, _ := newLoanServiceWithMock(t)

	_, err := svc.CreateLoan(CreateLoanInput{
		Type:         models.LoanType("LOST"),
		HospitalID:   2,
		MedicationID: 3,
		Units:        1,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "type", validationErr.Field)
}

func TestCreateLoanRejectsInactiveHospital(t *testing.T) {
	svc, mock, _ := newLoanServiceWithMock(t)

	// Soft-deleted hospitals are filtered out by the active predicate.
	mock.ExpectQuery("SELECT \\* FROM `hospitals`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.CreateLoan(CreateLoanInput{
		Type:         models.LoanRequestedByUs,
		HospitalID:   2,
		MedicationID: 3,
		Units:        1,
	})
	assert.ErrorIs(t, err, repository.ErrHospitalNotFound)
}

func TestCreateLoanAllocatesReferenceAndNotifies(t *testing.T) {
	svc, mock, notifier := newLoanServiceWithMock(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT \\* FROM `hospitals`").
		WillReturnRows(hospitalRows())
	mock.ExpectQuery("SELECT \\* FROM `medications`").
		WillReturnRows(medicationRows())

	// Allocation + insert in one transaction.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `reference_counters`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "year", "counter"}).
			AddRow("loan_counter", time.Now().Year(), 11))
	mock.ExpectExec("UPDATE `reference_counters`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `loans`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Audit trail entry.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	loan, err := svc.CreateLoan(CreateLoanInput{
		Type:         models.LoanRequestedByUs,
		HospitalID:   2,
		MedicationID: 3,
		Units:        5,
		EmailSentTo:  "farmacia@getafe.example",
	})
	require.NoError(t, err)
	assert.Equal(t, repository.FormatReference(time.Now().Year(), 12), loan.ReferenceNumber)
	assert.False(t, loan.FarmatoolsProcessed)
	assert.False(t, loan.Returned)

	select {
	case sent := <-notifier.sent:
		assert.Equal(t, loan.ReferenceNumber, sent.ReferenceNumber)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not invoked after creation")
	}
}

func TestSetReturnedBeforeProcessedIsAllowed(t *testing.T) {
	svc, mock, _ := newLoanServiceWithMock(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT \\* FROM `loans`").
		WillReturnRows(loanRows(10, false, false))
	mock.ExpectQuery("SELECT \\* FROM `hospitals`").
		WillReturnRows(hospitalRows())
	mock.ExpectQuery("SELECT \\* FROM `medications`").
		WillReturnRows(medicationRows())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `loans` SET `returned`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	loan, err := svc.SetReturned(10, true)
	require.NoError(t, err)
	assert.True(t, loan.Returned)
	assert.False(t, loan.FarmatoolsProcessed, "processed flag must stay untouched")
}

func TestSetProcessedLeavesReturnFlagAlone(t *testing.T) {
	svc, mock, _ := newLoanServiceWithMock(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT \\* FROM `loans`").
		WillReturnRows(loanRows(10, false, true))
	mock.ExpectQuery("SELECT \\* FROM `hospitals`").
		WillReturnRows(hospitalRows())
	mock.ExpectQuery("SELECT \\* FROM `medications`").
		WillReturnRows(medicationRows())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `loans` SET `farmatools_processed`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `audit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	loan, err := svc.SetProcessed(10, true)
	require.NoError(t, err)
	assert.True(t, loan.FarmatoolsProcessed)
	assert.True(t, loan.Returned, "return flag must stay untouched")
}

func TestMarkManyReturnedRejectsEmptyBatch(t *testing.T) {
	svc, _, _ := newLoanServiceWithMock(t)

	_, err := svc.MarkManyReturned(nil)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "loan_ids", validationErr.Field)
}

func TestUpdateNotesUnknownLoan(t *testing.T) {
	svc, mock, _ := newLoanServiceWithMock(t)

	mock.ExpectQuery("SELECT \\* FROM `loans`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.UpdateNotes(404, "anything")
	assert.ErrorIs(t, err, repository.ErrLoanNotFound)
}
