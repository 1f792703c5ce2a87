package cmd

import (
	"fmt"
	"shiftstat/efficiency"
	"shiftstat/shift"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const previewRows = 7

var (
	colorAccent = lipgloss.Color("#A855F7")
	colorMuted  = lipgloss.Color("#9CA3AF")
	colorGood   = lipgloss.Color("#22C55E")
	colorBad    = lipgloss.Color("#EF4444")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	noteStyle   = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

var previewHeaders = []string{
	"shift_id",
	"date_worked",
	"clock_in",
	"clock_out",
	"hours_digitized",
	"format",
	"employee_id",
	"hours_worked",
	"efficiency",
}

func renderPreview(registry *efficiency.Registry, n int) string {
	var b strings.Builder
	if registry.Len() == 0 {
		b.WriteString("There are 0 employees entered.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\nThere are %d employees entered.\n\n", registry.Len())
	for _, emp := range registry.All() {
		b.WriteString(titleStyle.Render(emp.Name()+" Data Preview:") + "\n")
		b.WriteString(previewTable(emp.Preview(n)) + "\n\n")
	}
	return b.String()
}

func previewTable(records []shift.Record) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ShiftID,
			record.DateWorked.Format("2006-01-02"),
			formatClock(record.ClockIn),
			formatClock(record.ClockOut),
			formatNumber(record.HoursDigitized, 3),
			record.Format,
			record.EmployeeID,
			formatNumber(record.HoursWorked, 1),
			formatNumber(record.Efficiency, 3),
		})
	}

	numeric := map[int]bool{4: true, 7: true, 8: true}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(previewHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col]:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Render()
}

func renderRanking(rankings []efficiency.Ranking) string {
	var b strings.Builder
	if len(rankings) == 0 {
		b.WriteString("There are 0 employees entered.\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Employee & Efficiency - ranked from most efficient to least efficient:") + "\n")
	b.WriteString(noteStyle.Render("(Efficiency is measured as hours digitized / hours worked)") + "\n")

	rows := make([][]string, 0, len(rankings))
	for i, ranking := range rankings {
		rows = append(rows, []string{strconv.Itoa(i + 1), ranking.Name, formatNumber(ranking.Efficiency, 3)})
	}
	last := len(rows) - 1
	b.WriteString(table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Rank", "Employee", "Efficiency").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if col != 1 {
				style = numberStyle
			}
			if col == 2 && last > 0 {
				switch row {
				case 0:
					return style.Foreground(colorGood)
				case last:
					return style.Foreground(colorBad)
				}
			}
			return style
		}).
		Render())
	b.WriteString("\n")
	return b.String()
}

func formatClock(value time.Duration) string {
	total := int(value / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

func formatNumber(value float64, places int) string {
	return strconv.FormatFloat(value, 'f', places, 64)
}
