// Package report renders calculation results as printable documents.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"assistente-financeiro/calculator"
	"assistente-financeiro/domain"
)

var columns = []struct {
	title string
	width float64
}{
	{"Parcela", 20},
	{"Prestação", 40},
	{"Amortização", 40},
	{"Juros", 40},
	{"Saldo devedor", 50},
}

// Amortization renders every installment of a schedule as an A4 PDF.
func Amortization(schedule domain.AmortizationSchedule, rows []domain.Installment, generated time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(fmt.Sprintf("Tabela %s", schedule.Convention)), false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("Tabela de Amortização %s", schedule.Convention)), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(50, 50, 50)
	summary := []string{
		fmt.Sprintf("Valor financiado: %s", calculator.FormatCurrency(schedule.Principal)),
		fmt.Sprintf("Taxa: %s ao ano", calculator.FormatPercent(schedule.AnnualRate)),
		fmt.Sprintf("Prazo: %d anos (%d meses)", schedule.TermYears, schedule.TotalMonths),
		fmt.Sprintf("Total de juros: %s", calculator.FormatCurrency(schedule.TotalInterest)),
		fmt.Sprintf("Total pago: %s", calculator.FormatCurrency(schedule.TotalPaid)),
	}
	for _, line := range summary {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, tr("Gerado em "+generated.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(0, 51, 102)
		pdf.SetTextColor(255, 255, 255)
		for _, c := range columns {
			pdf.CellFormat(c.width, 7, tr(c.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i, row := range rows {
		if pdf.GetY()+6 > pageHeight-bottom-12 {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)
		cells := []string{
			fmt.Sprintf("%d", row.Number),
			calculator.FormatCurrency(row.Payment),
			calculator.FormatCurrency(row.Amortization),
			calculator.FormatCurrency(row.Interest),
			calculator.FormatCurrency(row.RemainingBalance),
		}
		for j, c := range columns {
			align := "R"
			if j == 0 {
				align = "C"
			}
			pdf.CellFormat(c.width, 6, tr(cells[j]), "LR", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("falha ao gerar PDF: %w", err)
	}
	return buf.Bytes(), nil
}
