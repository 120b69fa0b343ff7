package service

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"pharmacy-loan-tracker/internal/models"
)

// csvBOM makes Excel pick up the UTF-8 encoding.
const csvBOM = "\xEF\xBB\xBF"

// BuildLoansCSV renders loans as a ;-delimited UTF-8 CSV with a BOM and
// one header row, the format the pharmacy's spreadsheets expect.
func BuildLoansCSV(loans []models.Loan) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(csvBOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := []string{"Referencia", "Fecha", "Tipo", "Hospital", "Medicamento", "Unidades", "Farmatools", "Devolución", "Email"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range loans {
		loan := &loans[i]
		hospitalName := ""
		if loan.Hospital != nil {
			hospitalName = loan.Hospital.Name
		}
		medName := ""
		if loan.Medication != nil {
			medName = loan.Medication.Name
		}
		record := []string{
			loan.ReferenceNumber,
			loan.CreatedAt.Format("02/01/2006"),
			loan.Type.Label(),
			hospitalName,
			medName,
			strconv.Itoa(loan.Units),
			loan.FarmatoolsLabel(),
			loan.ReturnLabel(),
			loan.EmailSentTo,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
