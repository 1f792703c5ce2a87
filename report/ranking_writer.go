package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"shiftstat/efficiency"
)

var rankingHeaders = []string{"Rank", "Employee", "Efficiency"}

// RankingWriter exports the employee ranking of a session.
type RankingWriter interface {
	Write(path string, rankings []efficiency.Ranking) error
}

func RankingWriterForFormat(format string) (RankingWriter, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVRankingWriter{}, nil
	case "excel", "xlsx":
		return &ExcelRankingWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

type CSVRankingWriter struct{}

func (w *CSVRankingWriter) Write(path string, rankings []efficiency.Ranking) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(rankingHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for i, ranking := range rankings {
		row := []string{
			strconv.Itoa(i + 1),
			ranking.Name,
			strconv.FormatFloat(ranking.Efficiency, 'f', 3, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

type ExcelRankingWriter struct{}

func (w *ExcelRankingWriter) Write(path string, rankings []efficiency.Ranking) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := "Ranking"
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename ranking sheet: %w", err)
	}

	for col, header := range rankingHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, ranking := range rankings {
		values := []any{i + 1, ranking.Name, ranking.Efficiency}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	return save(file, path)
}
