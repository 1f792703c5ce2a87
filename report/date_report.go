package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateHeaders = []string{"date_worked", "hours_digitized", "hours_worked", "efficiency", "trend"}

// WriteDateReport writes one sheet per employee with the recent-window rows, a
// totals row, top/bottom highlighting and an efficiency-over-time chart.
func WriteDateReport(path string, sheets []DateSheet, opts Options) error {
	if len(sheets) == 0 {
		return fmt.Errorf("date report: no employees to write")
	}

	file := excelize.NewFile()
	defer file.Close()

	st, err := newStyles(file)
	if err != nil {
		return err
	}

	names := newSheetNamer()
	for i, section := range sheets {
		sheet := names.next(section.Name)
		if err := addSheet(file, i, sheet); err != nil {
			return err
		}
		if err := writeDateSheet(file, sheet, section, opts, st); err != nil {
			return err
		}
	}

	return save(file, path)
}

func writeDateSheet(file *excelize.File, sheet string, section DateSheet, opts Options, st *styles) error {
	title := fmt.Sprintf("%s Analysis of Last %d Days Worked", sheet, opts.WindowDays)
	if err := file.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("set title on %s: %w", sheet, err)
	}
	if err := file.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return fmt.Errorf("style title on %s: %w", sheet, err)
	}
	if err := file.SetColWidth(sheet, "A", "E", 20); err != nil {
		return fmt.Errorf("set column width on %s: %w", sheet, err)
	}
	if err := writeHeaders(file, sheet, dateHeaders, st.header); err != nil {
		return err
	}
	if len(section.Entries) == 0 {
		return setZoom(file, sheet, 115)
	}

	dates := make([]time.Time, len(section.Entries))
	values := make([]float64, len(section.Entries))
	for i, entry := range section.Entries {
		dates[i] = entry.DateWorked
		values[i] = entry.Efficiency
	}
	trend := quadraticTrend(dates, values)

	for i, entry := range section.Entries {
		row := firstDataRow + i
		day := time.Date(entry.DateWorked.Year(), entry.DateWorked.Month(), entry.DateWorked.Day(), 0, 0, 0, 0, time.UTC)
		cells := []struct {
			column string
			value  any
			style  int
		}{
			{column: "A", value: day, style: st.date},
			{column: "B", value: entry.HoursDigitized, style: st.right},
			{column: "C", value: entry.HoursWorked, style: st.right},
			{column: "D", value: entry.Efficiency, style: st.percent},
			{column: "E", value: trend[i], style: st.percent},
		}
		for _, c := range cells {
			cell := cellName(c.column, row)
			if err := file.SetCellValue(sheet, cell, c.value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
			if err := file.SetCellStyle(sheet, cell, cell, c.style); err != nil {
				return fmt.Errorf("style excel value %s: %w", cell, err)
			}
		}
	}

	lastRow := firstDataRow + len(section.Entries) - 1
	if err := writeDateTotals(file, sheet, lastRow, st); err != nil {
		return err
	}
	if err := highlightExtremes(file, sheet, lastRow, opts.HighlightCount, st); err != nil {
		return err
	}
	if err := addTrendChart(file, sheet, lastRow, opts); err != nil {
		return err
	}
	return setZoom(file, sheet, 115)
}

func writeDateTotals(file *excelize.File, sheet string, lastRow int, st *styles) error {
	totalRow := lastRow + 1
	cells := []struct {
		column  string
		formula string
		style   int
	}{
		{column: "B", formula: fmt.Sprintf("=SUM(B%d:B%d)", firstDataRow, lastRow), style: st.total},
		{column: "C", formula: fmt.Sprintf("=SUM(C%d:C%d)", firstDataRow, lastRow), style: st.total},
		{column: "D", formula: fmt.Sprintf("=B%d/C%d", totalRow, totalRow), style: st.totalPercent},
	}

	label := cellName("A", totalRow)
	if err := file.SetCellValue(sheet, label, "Total:"); err != nil {
		return fmt.Errorf("set total label on %s: %w", sheet, err)
	}
	if err := file.SetCellStyle(sheet, label, label, st.total); err != nil {
		return fmt.Errorf("style total label on %s: %w", sheet, err)
	}
	for _, c := range cells {
		cell := cellName(c.column, totalRow)
		if err := file.SetCellFormula(sheet, cell, c.formula); err != nil {
			return fmt.Errorf("set total formula %s: %w", cell, err)
		}
		if err := file.SetCellStyle(sheet, cell, cell, c.style); err != nil {
			return fmt.Errorf("style total formula %s: %w", cell, err)
		}
	}
	return nil
}

func highlightExtremes(file *excelize.File, sheet string, lastRow, count int, st *styles) error {
	if count <= 0 {
		return nil
	}
	ref := fmt.Sprintf("D%d:D%d", firstDataRow, lastRow)
	value := strconv.Itoa(count)
	err := file.SetConditionalFormat(sheet, ref, []excelize.ConditionalFormatOptions{
		{Type: "top", Criteria: "=", Value: value, Format: &st.good},
		{Type: "bottom", Criteria: "=", Value: value, Format: &st.bad},
	})
	if err != nil {
		return fmt.Errorf("set highlight on %s: %w", sheet, err)
	}
	return nil
}

func addTrendChart(file *excelize.File, sheet string, lastRow int, opts Options) error {
	minimum := 0.0
	maximum := opts.EfficiencyAxisMax
	categories := rangeRef(sheet, "A", firstDataRow, lastRow)

	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       "Efficiency Trends through Time",
				Categories: categories,
				Values:     rangeRef(sheet, "D", firstDataRow, lastRow),
				Marker:     excelize.ChartMarker{Symbol: "diamond", Size: 6},
			},
			{
				Name:       "Trend Line",
				Categories: categories,
				Values:     rangeRef(sheet, "E", firstDataRow, lastRow),
				Marker:     excelize.ChartMarker{Symbol: "none"},
				Line:       excelize.ChartLine{Smooth: true, Width: 1},
			},
		},
		Title:  []excelize.RichTextRun{{Text: sheet + " Efficiency"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		YAxis: excelize.ChartAxis{
			Title:   []excelize.RichTextRun{{Text: "Efficiency"}},
			Minimum: &minimum,
			Maximum: &maximum,
		},
		Dimension: excelize.ChartDimension{Width: 640, Height: 360},
	}
	if err := file.AddChart(sheet, "G7", chart); err != nil {
		return fmt.Errorf("add efficiency chart on %s: %w", sheet, err)
	}
	return nil
}
