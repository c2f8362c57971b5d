package reports

import (
	"fmt"
	"time"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/assets"
)

const (
	reportTitle = "Laporan Inventaris Aset JKT"
	dateLayout  = "02-01-2006"
)

var tableHeaders = []string{"No", "Nama Aset", "Pemilik", "Kategori", "Tanggal Perolehan", "Kondisi"}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ReportFileName builds the download name shared by both formats, for example
// SIA-JKT-30-08-2026.pdf.
func ReportFileName(ext string) string {
	return fmt.Sprintf("SIA-JKT-%s.%s", formatDate(time.Now()), ext)
}

// filterLines renders the active filter as label lines shown under the report
// title, so a printed report carries the criteria it was generated with.
func filterLines(filter assets.Filter) []string {
	lines := []string{}

	if filter.StartDate != nil || filter.EndDate != nil {
		start := "awal"
		if filter.StartDate != nil {
			start = formatDate(*filter.StartDate)
		}
		end := "sekarang"
		if filter.EndDate != nil {
			end = formatDate(*filter.EndDate)
		}
		lines = append(lines, fmt.Sprintf("Periode: %s sampai %s", start, end))
	}
	if filter.Condition != nil {
		lines = append(lines, fmt.Sprintf("Kondisi: %s", *filter.Condition))
	}
	if filter.Category != nil {
		lines = append(lines, fmt.Sprintf("Kategori: %s", *filter.Category))
	}

	return lines
}
