package pdf

import (
	"bytes"
	"testing"
	"time"

	"pharmacy-loan-tracker/internal/config"
	"pharmacy-loan-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *Generator {
	return NewGenerator(config.PharmacyConfig{
		HospitalName: "Hospital Universitario de Fuenlabrada",
		ServiceName:  "Servicio de Farmacia",
		Address:      "Camino del Molino 2, 28942 Fuenlabrada, Madrid",
	})
}

func testLoan() *models.Loan {
	return &models.Loan{
		ID:              1,
		ReferenceNumber: "PREST-2025-00007",
		Type:            models.LoanRequestedByUs,
		Units:           12,
		Notes:           "Entrega urgente, caduca en junio",
		CreatedAt:       time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
		Hospital:        &models.Hospital{Name: "Hospital de Getafe"},
		Medication: &models.Medication{
			Name:             "Adrenalina 1mg/ml",
			NationalCode:     "654321",
			ActiveIngredient: "Epinefrina",
		},
	}
}

func TestListKindValid(t *testing.T) {
	assert.True(t, ListToReturn.Valid())
	assert.True(t, ListToBeReturned.Valid())
	assert.False(t, ListKind("todos").Valid())
}

func TestLoanDocumentProducesPDF(t *testing.T) {
	out, err := testGenerator().LoanDocument(testLoan())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 1000)
}

func TestLoanDocumentHandlesMissingAssociations(t *testing.T) {
	loan := testLoan()
	loan.Hospital = nil
	loan.Medication = nil
	loan.Notes = ""

	out, err := testGenerator().LoanDocument(loan)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPendingReportProducesPDF(t *testing.T) {
	loans := []models.Loan{*testLoan(), *testLoan()}

	for _, kind := range []ListKind{ListToReturn, ListToBeReturned} {
		out, err := testGenerator().PendingReport(loans, kind)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	}
}

func TestPendingReportEmptyList(t *testing.T) {
	out, err := testGenerator().PendingReport(nil, ListToReturn)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
