package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/assets"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

const (
	pdfMargin       = 15.0
	pdfRowHeight    = 8.0
	pdfBottomMargin = 15.0
)

var pdfColumnWidths = []float64{10, 45, 35, 30, 35, 25}

// GeneratePDF renders the filtered inventory as an A4 PDF table.
func GeneratePDF(filter assets.Filter, list []models.Asset) ([]byte, error) {
	pdf := buildPDF(filter, list)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("unable to render pdf report: %w", err)
	}

	return buf.Bytes(), nil
}

// buildPDF lays the document out with manual page breaks so every page
// repeats the table header. Row text is clipped to its cell, never wrapped,
// which keeps row height constant and the break arithmetic exact.
func buildPDF(filter assets.Filter, list []models.Asset) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	_, pageHeight := pdf.GetPageSize()
	breakAt := pageHeight - pdfBottomMargin - pdfRowHeight

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Tanggal Laporan: "+formatDate(time.Now()), "", 1, "L", false, 0, "")
	for _, line := range filterLines(filter) {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, header := range tableHeaders {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Arial", "", 9)
	for i, asset := range list {
		if pdf.GetY() > breakAt {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Arial", "", 9)
		}

		cells := []string{
			fmt.Sprintf("%d", i+1),
			asset.Name,
			asset.Owner,
			asset.Category,
			formatDate(asset.AcquisitionDate),
			asset.Condition.String(),
		}
		for j, cell := range cells {
			pdf.ClipRect(pdf.GetX(), pdf.GetY(), pdfColumnWidths[j], pdfRowHeight, false)
			pdf.CellFormat(pdfColumnWidths[j], pdfRowHeight, cell, "1", 0, "L", false, 0, "")
			pdf.ClipEnd()
		}
		pdf.Ln(-1)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Aset: %d", len(list)), "", 1, "R", false, 0, "")

	return pdf
}

// firstPageCapacity reports how many data rows fit on the first page of an
// unfiltered report. The arithmetic mirrors buildPDF's fixed layout: title,
// report date, spacer and the header row precede the first data row.
func firstPageCapacity() int {
	pdf := gofpdf.New("P", "mm", "A4", "")
	_, pageHeight := pdf.GetPageSize()
	breakAt := pageHeight - pdfBottomMargin - pdfRowHeight

	tableStart := pdfMargin + 10 + 6 + 4 + pdfRowHeight
	return int((breakAt-tableStart)/pdfRowHeight) + 1
}
