// Package pdf renders the loan documents handed to the other hospital:
// the single-loan document attached to the notification email and the
// pending-return list the pharmacy prints for its rounds.
package pdf

import (
	"bytes"
	"fmt"

	"pharmacy-loan-tracker/internal/config"
	"pharmacy-loan-tracker/internal/models"

	"github.com/go-pdf/fpdf"
)

// ListKind selects which pending-return list is rendered. The wording
// depends on the loan direction: units we must return vs units other
// hospitals owe us.
type ListKind string

const (
	ListToReturn     ListKind = "devolver"
	ListToBeReturned ListKind = "que-devuelvan"
)

// Valid reports whether k names a known list kind.
func (k ListKind) Valid() bool {
	return k == ListToReturn || k == ListToBeReturned
}

func (k ListKind) title() string {
	if k == ListToReturn {
		return "Préstamos pendientes de devolver"
	}
	return "Préstamos pendientes de que nos devuelvan"
}

type Generator struct {
	cfg config.PharmacyConfig
}

func NewGenerator(cfg config.PharmacyConfig) *Generator {
	return &Generator{cfg: cfg}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// LoanDocument renders the A4 loan document: letterhead, reference,
// loan details, signature lines for both pharmacies.
func (g *Generator) LoanDocument(loan *models.Loan) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(18, 12, 18)
	doc.AddPage()

	// Letterhead
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 8, tr(g.cfg.HospitalName), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr(g.cfg.ServiceName), "", 1, "L", false, 0, "")
	doc.Ln(2)
	doc.SetLineWidth(0.4)
	doc.Line(18, doc.GetY(), 192, doc.GetY())
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, tr("DOCUMENTO DE PRÉSTAMO DE MEDICAMENTOS"), "", 1, "C", false, 0, "")
	doc.Ln(2)
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr("Referencia: "+loan.ReferenceNumber), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, tr("Fecha: "+loan.CreatedAt.Format("02/01/2006")), "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 7, tr("Tipo: "+loan.Type.Label()), "", 1, "L", false, 0, "")
	doc.Ln(4)

	hospitalName := ""
	if loan.Hospital != nil {
		hospitalName = loan.Hospital.Name
	}
	var medName, medCode, medPresentation, medIngredient string
	if loan.Medication != nil {
		medName = loan.Medication.Name
		medCode = loan.Medication.NationalCode
		medPresentation = loan.Medication.Presentation
		medIngredient = loan.Medication.ActiveIngredient
	}

	rows := [][2]string{
		{"Hospital:", hospitalName},
		{"Medicamento:", medName},
		{"Código Nacional:", orNA(medCode)},
		{"Presentación:", orNA(medPresentation)},
		{"Principio Activo:", orNA(medIngredient)},
		{"Unidades:", fmt.Sprintf("%d", loan.Units)},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(55, 8, tr(row[0]), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	if loan.Notes != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(0, 6, tr("Observaciones:"), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, tr(loan.Notes), "", "L", false)
	}

	// Signature lines
	sigY := 230.0
	doc.SetLineWidth(0.3)
	doc.Line(18, sigY, 90, sigY)
	doc.Line(120, sigY, 192, sigY)
	doc.SetY(sigY + 2)
	doc.SetFont("Helvetica", "", 9)
	doc.SetX(18)
	doc.CellFormat(72, 5, tr("Firma Farmacia Solicitante"), "", 0, "C", false, 0, "")
	doc.SetX(120)
	doc.CellFormat(72, 5, tr("Firma Farmacia Prestadora"), "", 1, "C", false, 0, "")

	// Footer
	doc.SetY(275)
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(0, 5, tr(g.cfg.Address), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PendingReport renders the pending-return table for the given loans,
// already ordered by hospital and medication.
func (g *Generator) PendingReport(loans []models.Loan, kind ListKind) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(14, 12, 14)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, tr(g.cfg.HospitalName), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr(g.cfg.ServiceName), "", 1, "L", false, 0, "")
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr(kind.title()), "", 1, "L", false, 0, "")
	doc.Ln(2)

	widths := []float64{32, 22, 48, 58, 22}
	headers := []string{"Referencia", "Fecha", "Hospital", "Medicamento", "Unidades"}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(235, 235, 235)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, loan := range loans {
		hospitalName := ""
		if loan.Hospital != nil {
			hospitalName = loan.Hospital.Name
		}
		medName := ""
		if loan.Medication != nil {
			medName = loan.Medication.Name
		}
		cells := []string{
			loan.ReferenceNumber,
			loan.CreatedAt.Format("02/01/2006"),
			hospitalName,
			medName,
			fmt.Sprintf("%d", loan.Units),
		}
		for i, cell := range cells {
			doc.CellFormat(widths[i], 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	doc.Ln(6)
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(0, 5, tr(fmt.Sprintf("Total: %d préstamos", len(loans))), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
