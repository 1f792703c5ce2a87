// Package report renders employee efficiency views into styled Excel workbooks.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"shiftstat/efficiency"
)

type Kind string

const (
	KindDate   Kind = "date"
	KindFormat Kind = "format"
)

const (
	maxSheetNameLength = 31
	headerRow          = 3
	firstDataRow       = 4
)

// Options controls the presentation of both report kinds.
type Options struct {
	WindowDays        int
	HighlightCount    int
	EfficiencyAxisMax float64
}

func DefaultOptions() Options {
	return Options{
		WindowDays:        efficiency.DefaultWindow,
		HighlightCount:    5,
		EfficiencyAxisMax: 2.2,
	}
}

// DateSheet is one employee section of the date report.
type DateSheet struct {
	Name    string
	Entries []efficiency.DateEntry
}

// FormatSheet is one employee section of the format report.
type FormatSheet struct {
	Name    string
	Entries []efficiency.FormatEntry
}

// FileName returns the report file name for kind on day, e.g.
// "2026-01-31_date_analysis.xlsx".
func FileName(kind Kind, day time.Time) string {
	return fmt.Sprintf("%s_%s_analysis.xlsx", day.Format("2006-01-02"), kind)
}

// SheetName makes name usable as an Excel sheet name.
func SheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\', '\'':
			return -1
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, efficiency.NormalizeName(name))

	if utf8.RuneCountInString(cleaned) > maxSheetNameLength {
		cleaned = string([]rune(cleaned)[:maxSheetNameLength])
	}
	if cleaned == "" {
		cleaned = "Employee"
	}
	return cleaned
}

// sheetNamer hands out sanitized sheet names that are unique within a workbook.
type sheetNamer struct {
	used map[string]struct{}
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]struct{})}
}

func (n *sheetNamer) next(name string) string {
	base := SheetName(name)
	candidate := base
	for i := 2; ; i++ {
		key := strings.ToLower(candidate)
		if _, taken := n.used[key]; !taken {
			n.used[key] = struct{}{}
			return candidate
		}
		suffix := fmt.Sprintf("_%d", i)
		runes := []rune(base)
		if len(runes)+len(suffix) > maxSheetNameLength {
			runes = runes[:maxSheetNameLength-len(suffix)]
		}
		candidate = string(runes) + suffix
	}
}

// addSheet creates the sheet for section index, reusing the default sheet of a
// new workbook for the first section.
func addSheet(file *excelize.File, index int, name string) error {
	if index == 0 {
		if err := file.SetSheetName(file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet to %s: %w", name, err)
		}
		return nil
	}
	if _, err := file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	return nil
}

func rangeRef(sheet, column string, first, last int) string {
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, column, first, column, last)
}

func cellName(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}

func setZoom(file *excelize.File, sheet string, zoom float64) error {
	if err := file.SetSheetView(sheet, 0, &excelize.ViewOptions{ZoomScale: &zoom}); err != nil {
		return fmt.Errorf("set zoom on %s: %w", sheet, err)
	}
	return nil
}

func writeHeaders(file *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	if err := file.SetCellStyle(sheet, cellName("A", headerRow), last, style); err != nil {
		return fmt.Errorf("style headers on %s: %w", sheet, err)
	}
	return nil
}

func save(file *excelize.File, path string) error {
	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}
