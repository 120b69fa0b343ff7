package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoanTypeValid(t *testing.T) {
	assert.True(t, LoanRequestedByUs.Valid())
	assert.True(t, LoanRequestedFromUs.Valid())
	assert.False(t, LoanType("").Valid())
	assert.False(t, LoanType("RETURNED").Valid())
}

func TestLoanTypeLabel(t *testing.T) {
	assert.Equal(t, "Solicitamos préstamo", LoanRequestedByUs.Label())
	assert.Equal(t, "Nos solicitan préstamo", LoanRequestedFromUs.Label())
}

func TestFarmatoolsLabel(t *testing.T) {
	loan := &Loan{FarmatoolsProcessed: false}
	assert.Equal(t, "Pendiente de gestionar en Farmatools", loan.FarmatoolsLabel())

	loan.FarmatoolsProcessed = true
	assert.Equal(t, "Gestionado en Farmatools", loan.FarmatoolsLabel())
}

func TestReturnLabelDependsOnDirection(t *testing.T) {
	tests := []struct {
		name     string
		loanType LoanType
		returned bool
		want     string
	}{
		{"borrowed and returned", LoanRequestedByUs, true, "Devuelto"},
		{"lent and returned", LoanRequestedFromUs, true, "Devuelto"},
		{"borrowed, pending for us to return", LoanRequestedByUs, false, "Pendiente de devolver"},
		{"lent, pending for them to return", LoanRequestedFromUs, false, "Pendiente de que nos devuelvan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan := &Loan{Type: tt.loanType, Returned: tt.returned}
			assert.Equal(t, tt.want, loan.ReturnLabel())
		})
	}
}

func TestStatusFlagsAreIndependent(t *testing.T) {
	// A loan returned before being processed keeps the pending
	// administrative label alongside the returned label.
	loan := &Loan{Type: LoanRequestedByUs, FarmatoolsProcessed: false, Returned: true}
	assert.Equal(t, "Pendiente de gestionar en Farmatools", loan.FarmatoolsLabel())
	assert.Equal(t, "Devuelto", loan.ReturnLabel())
}
