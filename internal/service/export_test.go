package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"pharmacy-loan-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLoans() []models.Loan {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return []models.Loan{
		{
			ReferenceNumber: "PREST-2025-00001",
			Type:            models.LoanRequestedByUs,
			Units:           10,
			Returned:        false,
			EmailSentTo:     "farmacia@getafe.example",
			CreatedAt:       created,
			Hospital:        &models.Hospital{Name: "Hospital de Getafe"},
			Medication:      &models.Medication{Name: "Paracetamol 1g"},
		},
		{
			ReferenceNumber:     "PREST-2025-00002",
			Type:                models.LoanRequestedFromUs,
			Units:               3,
			FarmatoolsProcessed: true,
			Returned:            true,
			CreatedAt:           created,
			Hospital:            &models.Hospital{Name: "Hospital de Móstoles"},
			Medication:          &models.Medication{Name: "Omeprazol 20mg"},
		},
	}
}

func TestBuildLoansCSVStartsWithBOM(t *testing.T) {
	out, err := BuildLoansCSV(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\xef\xbb\xbf")))
}

func TestBuildLoansCSVHeaderAndDelimiter(t *testing.T) {
	out, err := BuildLoansCSV(sampleLoans())
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte("\xef\xbb\xbf"))))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Referencia", "Fecha", "Tipo", "Hospital", "Medicamento", "Unidades", "Farmatools", "Devolución", "Email"}, records[0])
}

func TestBuildLoansCSVDerivedLabels(t *testing.T) {
	out, err := BuildLoansCSV(sampleLoans())
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(out), "\xef\xbb\xbf")))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)

	pending := records[1]
	assert.Equal(t, "PREST-2025-00001", pending[0])
	assert.Equal(t, "14/03/2025", pending[1])
	assert.Equal(t, "Solicitamos préstamo", pending[2])
	assert.Equal(t, "Hospital de Getafe", pending[3])
	assert.Equal(t, "10", pending[5])
	assert.Equal(t, "Pendiente de gestionar en Farmatools", pending[6])
	assert.Equal(t, "Pendiente de devolver", pending[7])
	assert.Equal(t, "farmacia@getafe.example", pending[8])

	done := records[2]
	assert.Equal(t, "Nos solicitan préstamo", done[2])
	assert.Equal(t, "Gestionado en Farmatools", done[6])
	assert.Equal(t, "Devuelto", done[7])
	assert.Equal(t, "", done[8])
}
