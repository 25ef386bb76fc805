// Package report renders the exported document as a PDF summary and an
// XLSX workbook.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/jameshanlon/home-energy-data/internal/units"
	"github.com/jameshanlon/home-energy-data/pkg/models"
)

// BuildPDF renders a one-page summary of the annual statistics.
func BuildPDF(doc *models.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Heat pump energy report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Years covered: %d", len(doc.AnnualStats)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period length: %d days", doc.TotalStats.LengthDays))
	pdf.Ln(5)
	if doc.TotalStats.ScaleConsumed != 1 || doc.TotalStats.ScaleGenerated != 1 {
		pdf.Cell(0, 6, fmt.Sprintf("Calibration: consumed x%.3f, generated x%.3f",
			doc.TotalStats.ScaleConsumed, doc.TotalStats.ScaleGenerated))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Stats table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(18, 6, "Year", "1", 0, "C", false, 0, "")
	pdf.CellFormat(16, 6, "Days", "1", 0, "C", false, 0, "")
	pdf.CellFormat(38, 6, "Consumed", "1", 0, "C", false, 0, "")
	pdf.CellFormat(38, 6, "Generated", "1", 0, "C", false, 0, "")
	pdf.CellFormat(26, 6, "SCOP heat", "1", 0, "C", false, 0, "")
	pdf.CellFormat(26, 6, "SCOP DHW", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, "SCOP", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, s := range doc.AnnualStats {
		pdfStatsRow(pdf, strconv.Itoa(s.Year), s)
	}
	pdfStatsRow(pdf, "Total", doc.TotalStats)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfStatsRow(pdf *gofpdf.Fpdf, label string, s models.Stats) {
	pdf.CellFormat(18, 6, label, "1", 0, "C", false, 0, "")
	pdf.CellFormat(16, 6, strconv.Itoa(s.LengthDays), "1", 0, "R", false, 0, "")
	pdf.CellFormat(38, 6, units.FormatWh(s.TotalConsumed), "1", 0, "R", false, 0, "")
	pdf.CellFormat(38, 6, units.FormatWh(s.TotalGenerated), "1", 0, "R", false, 0, "")
	pdf.CellFormat(26, 6, scopText(s.HeatingSCOP), "1", 0, "R", false, 0, "")
	pdf.CellFormat(26, 6, scopText(s.WaterSCOP), "1", 0, "R", false, 0, "")
	pdf.CellFormat(22, 6, scopText(s.SCOP), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)
}

func scopText(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// BuildXLSX renders the statistics and a chart inventory as a workbook.
func BuildXLSX(doc *models.Document) ([]byte, error) {
	f := excelize.NewFile()
	annualSheet := "annual"
	chartsSheet := "charts"
	f.SetSheetName("Sheet1", annualSheet)
	f.NewSheet(chartsSheet)

	headers := []string{
		"Year", "Days",
		"Heating consumed (Wh)", "Water consumed (Wh)", "Total consumed (Wh)",
		"Heating generated (Wh)", "Water generated (Wh)", "Total generated (Wh)",
		"Heating SCOP", "Water SCOP", "SCOP",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(annualSheet, cell, h)
	}
	row := 2
	for _, s := range doc.AnnualStats {
		xlsxStatsRow(f, annualSheet, row, strconv.Itoa(s.Year), s)
		row++
	}
	xlsxStatsRow(f, annualSheet, row, "total", doc.TotalStats)

	_ = f.SetCellValue(chartsSheet, "A1", "Chart")
	_ = f.SetCellValue(chartsSheet, "B1", "Symbol")
	_ = f.SetCellValue(chartsSheet, "C1", "Type")
	_ = f.SetCellValue(chartsSheet, "D1", "Series")
	_ = f.SetCellValue(chartsSheet, "E1", "Points")
	row = 2
	for _, c := range doc.Charts {
		for _, name := range seriesNames(c) {
			_ = f.SetCellValue(chartsSheet, fmt.Sprintf("A%d", row), c.Name)
			_ = f.SetCellValue(chartsSheet, fmt.Sprintf("B%d", row), c.Symbol)
			_ = f.SetCellValue(chartsSheet, fmt.Sprintf("C%d", row), string(c.Type))
			_ = f.SetCellValue(chartsSheet, fmt.Sprintf("D%d", row), name)
			_ = f.SetCellValue(chartsSheet, fmt.Sprintf("E%d", row), seriesLen(c, name))
			row++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func xlsxStatsRow(f *excelize.File, sheet string, row int, label string, s models.Stats) {
	set := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	set(1, label)
	set(2, s.LengthDays)
	set(3, s.HeatingConsumed)
	set(4, s.WaterConsumed)
	set(5, s.TotalConsumed)
	set(6, s.HeatingGenerated)
	set(7, s.WaterGenerated)
	set(8, s.TotalGenerated)
	set(9, scopCell(s.HeatingSCOP))
	set(10, scopCell(s.WaterSCOP))
	set(11, scopCell(s.SCOP))
}

func scopCell(v *float64) any {
	if v == nil {
		return "-"
	}
	return *v
}

func seriesNames(c models.Chart) []string {
	var names []string
	if c.Type == models.ChartScatter {
		for name := range c.Points {
			names = append(names, name)
		}
	} else {
		for name := range c.Series {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func seriesLen(c models.Chart, name string) int {
	if c.Type == models.ChartScatter {
		return len(c.Points[name])
	}
	return len(c.Series[name])
}
