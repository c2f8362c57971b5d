package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/internal/assets"
	"github.com/verifydream/Sistem-Inventaris-Aset-JKT/pkg/models"
)

const excelSheetName = "Inventaris Aset"

var excelColumnWidths = []float64{5, 30, 20, 15, 20, 15}

// GenerateExcel renders the filtered inventory as an xlsx workbook with a
// single sheet mirroring the PDF layout.
func GenerateExcel(filter assets.Filter, list []models.Asset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(excelSheetName); err != nil {
		return nil, fmt.Errorf("unable to create report sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("unable to drop default sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create title style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create header style: %w", err)
	}

	if err := f.MergeCell(excelSheetName, "A1", "F1"); err != nil {
		return nil, fmt.Errorf("unable to merge title cells: %w", err)
	}
	f.SetCellValue(excelSheetName, "A1", reportTitle)
	f.SetCellStyle(excelSheetName, "A1", "F1", titleStyle)

	f.MergeCell(excelSheetName, "A2", "F2")
	f.SetCellValue(excelSheetName, "A2", "Tanggal Laporan: "+formatDate(time.Now()))

	row := 3
	for _, line := range filterLines(filter) {
		cell := fmt.Sprintf("A%d", row)
		f.MergeCell(excelSheetName, cell, fmt.Sprintf("F%d", row))
		f.SetCellValue(excelSheetName, cell, line)
		row++
	}
	row++ // spacer row

	headerRow := row
	for i, header := range tableHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve header cell: %w", err)
		}
		f.SetCellValue(excelSheetName, cell, header)
	}
	f.SetCellStyle(excelSheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("F%d", headerRow), boldStyle)

	for i, asset := range list {
		values := []interface{}{
			i + 1,
			asset.Name,
			asset.Owner,
			asset.Category,
			formatDate(asset.AcquisitionDate),
			asset.Condition.String(),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, headerRow+1+i)
			if err != nil {
				return nil, fmt.Errorf("unable to resolve data cell: %w", err)
			}
			f.SetCellValue(excelSheetName, cell, value)
		}
	}

	totalRow := headerRow + len(list) + 2
	totalCell := fmt.Sprintf("B%d", totalRow)
	f.SetCellValue(excelSheetName, totalCell, fmt.Sprintf("Total Aset: %d", len(list)))
	f.SetCellStyle(excelSheetName, totalCell, totalCell, boldStyle)

	for i, width := range excelColumnWidths {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve column name: %w", err)
		}
		f.SetColWidth(excelSheetName, column, column, width)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("unable to render excel report: %w", err)
	}

	return buf.Bytes(), nil
}
