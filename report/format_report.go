package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var formatHeaders = []string{"Format", "Format Efficiency", "Sample Size"}

// WriteFormatReport writes one sheet per employee with the format breakdown,
// a color scale over efficiency, a combined column/line chart and a pie chart.
func WriteFormatReport(path string, sheets []FormatSheet, opts Options) error {
	if len(sheets) == 0 {
		return fmt.Errorf("format report: no employees to write")
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
		if err := writeFormatSheet(file, sheet, section, st); err != nil {
			return err
		}
	}

	return save(file, path)
}

func writeFormatSheet(file *excelize.File, sheet string, section FormatSheet, st *styles) error {
	title := sheet + " Analysis of Digitizing Format Efficiency"
	if err := file.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("set title on %s: %w", sheet, err)
	}
	if err := file.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return fmt.Errorf("style title on %s: %w", sheet, err)
	}
	if err := file.SetColWidth(sheet, "A", "D", 20); err != nil {
		return fmt.Errorf("set column width on %s: %w", sheet, err)
	}
	if err := writeHeaders(file, sheet, formatHeaders, st.header); err != nil {
		return err
	}
	if len(section.Entries) == 0 {
		return setZoom(file, sheet, 120)
	}

	for i, entry := range section.Entries {
		row := firstDataRow + i
		values := []any{entry.Format, entry.Efficiency, entry.SampleSize}
		rowStyles := []int{st.right, st.percent, st.right}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
			if err := file.SetCellStyle(sheet, cell, cell, rowStyles[col]); err != nil {
				return fmt.Errorf("style excel value %s: %w", cell, err)
			}
		}
	}

	lastRow := firstDataRow + len(section.Entries) - 1
	err := file.SetConditionalFormat(sheet, fmt.Sprintf("B%d:B%d", firstDataRow, lastRow), []excelize.ConditionalFormatOptions{
		{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "min",
			MidType:  "percentile",
			MidValue: "50",
			MaxType:  "max",
			MinColor: "#F8696B",
			MidColor: "#FFEB84",
			MaxColor: "#63BE7B",
		},
	})
	if err != nil {
		return fmt.Errorf("set color scale on %s: %w", sheet, err)
	}

	if err := addFormatCharts(file, sheet, lastRow); err != nil {
		return err
	}
	return setZoom(file, sheet, 120)
}

func addFormatCharts(file *excelize.File, sheet string, lastRow int) error {
	categories := rangeRef(sheet, "A", firstDataRow, lastRow)
	samples := rangeRef(sheet, "C", firstDataRow, lastRow)

	columns := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       "Format Efficiency",
				Categories: categories,
				Values:     rangeRef(sheet, "B", firstDataRow, lastRow),
			},
		},
		Title:  []excelize.RichTextRun{{Text: sheet + " Format Efficiency"}},
		Legend: excelize.ChartLegend{Position: "none"},
		YAxis: excelize.ChartAxis{
			Title:  []excelize.RichTextRun{{Text: "Efficiency %"}},
			NumFmt: excelize.ChartNumFmt{CustomNumFmt: "0%"},
		},
		Dimension: excelize.ChartDimension{Width: 560, Height: 320},
	}
	line := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       "# Digitized",
				Categories: categories,
				Values:     samples,
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
			},
		},
		YAxis: excelize.ChartAxis{
			Secondary: true,
			Title:     []excelize.RichTextRun{{Text: "# Digitized"}},
		},
	}
	if err := file.AddChart(sheet, "E3", columns, line); err != nil {
		return fmt.Errorf("add format efficiency chart on %s: %w", sheet, err)
	}

	pieRow := lastRow + 3
	if pieRow < 20 {
		pieRow = 20
	}
	pie := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       "Formats Digitized",
				Categories: categories,
				Values:     samples,
			},
		},
		Title:     []excelize.RichTextRun{{Text: "Formats Digitized"}},
		Legend:    excelize.ChartLegend{Position: "right"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 320},
	}
	if err := file.AddChart(sheet, cellName("B", pieRow), pie); err != nil {
		return fmt.Errorf("add formats pie chart on %s: %w", sheet, err)
	}
	return nil
}
