package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"rapv/site/internal/models"
)

const (
	SheetSummary = "Summary"
	SheetToppers = "Toppers"
)

var text = models.Text

var summaryHeader = []models.BilingualText{
	text("Year", "वर्ष"),
	text("Class 10 Total", "कक्षा 10 कुल"),
	text("Class 10 Passed", "कक्षा 10 उत्तीर्ण"),
	text("Class 10 Failed", "कक्षा 10 अनुत्तीर्ण"),
	text("Class 10 Pass %", "कक्षा 10 उत्तीर्ण %"),
	text("Class 12 Total", "कक्षा 12 कुल"),
	text("Class 12 Passed", "कक्षा 12 उत्तीर्ण"),
	text("Class 12 Failed", "कक्षा 12 अनुत्तीर्ण"),
	text("Class 12 Pass %", "कक्षा 12 उत्तीर्ण %"),
}

var toppersHeader = []models.BilingualText{
	text("Year", "वर्ष"),
	text("Class", "कक्षा"),
	text("Rank", "रैंक"),
	text("Name", "नाम"),
	text("Percentage", "प्रतिशत"),
}

// ResultsWorkbook holds the board results as a two-sheet spreadsheet.
type ResultsWorkbook struct {
	File *excelize.File
}

// NewResultsWorkbook lays out results with headers in lang. Counts are
// written as numbers; NA pass percentages are written as text.
func NewResultsWorkbook(results []models.YearResult, lang models.Language) (*ResultsWorkbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetToppers); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	var summary, toppers [][]any
	for _, item := range results {
		row := []any{item.Year}
		row = append(row, classCells(item.Class10)...)
		row = append(row, classCells(item.Class12)...)
		summary = append(summary, row)

		for _, class := range []struct {
			name   string
			result models.ClassResult
		}{{"10", item.Class10}, {"12", item.Class12}} {
			for _, topper := range class.result.Toppers {
				toppers = append(toppers, []any{item.Year, class.name, topper.Rank, topper.Name, topper.Percentage})
			}
		}
	}

	if err := writeSheet(f, SheetSummary, resolveAll(summaryHeader, lang), summary); err != nil {
		return nil, err
	}
	if err := writeSheet(f, SheetToppers, resolveAll(toppersHeader, lang), toppers); err != nil {
		return nil, err
	}
	return &ResultsWorkbook{File: f}, nil
}

// WriteTo streams the workbook in xlsx format.
func (w *ResultsWorkbook) WriteTo(out io.Writer) (int64, error) {
	return w.File.WriteTo(out)
}

func (w *ResultsWorkbook) Close() error {
	return w.File.Close()
}

func classCells(result models.ClassResult) []any {
	var pct any = result.PassPercentage.Value
	if result.PassPercentage.NA {
		pct = result.PassPercentage.String()
	}
	return []any{result.TotalStudents, result.Passed, result.Failed, pct}
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, title); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return applyDefaultFormatting(f, sheet, header, rows)
}

// applyDefaultFormatting bolds and filters the header row and sizes columns
// from their content.
func applyDefaultFormatting(f *excelize.File, sheet string, header []string, rows [][]any) error {
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", last+"1", style)
	}
	_ = f.AutoFilter(sheet, "A1:"+last+"1", nil)

	for c := range header {
		width := float64(visualLen(header[c])) + 1.5
		for _, row := range rows {
			if c < len(row) {
				if w := float64(visualLen(fmt.Sprint(row[c]))) * 1.1; w > width {
					width = w
				}
			}
		}
		width = min(max(width, 10), 40)
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet, col, col, width)
	}
	return nil
}

func resolveAll(texts []models.BilingualText, lang models.Language) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = models.Resolve(t, lang, lang.Other())
	}
	return out
}

func visualLen(s string) int {
	return len([]rune(s))
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

// ResultsFilename names the download after the school and date.
func ResultsFilename(schoolName string, now time.Time) string {
	base := fmt.Sprintf("results %s %s.xlsx", strings.TrimSpace(schoolName), now.Format("2006-01-02"))
	base = strings.Join(strings.Fields(base), " ")
	return invalidFileRe.ReplaceAllString(base, "_")
}
