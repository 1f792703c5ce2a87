package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// CSVReader reads comma separated files. Comma overrides the separator; zero
// means ','.
type CSVReader struct {
	Comma rune
}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if r.Comma != 0 {
		reader.Comma = r.Comma
	}

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("csv file %s is empty", path)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, utf8BOM)
		}
		normalizedHeaders[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, 128)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		// Blank lines are skipped by the reader, so count lines from the file.
		line, _ := reader.FieldPos(0)

		values := make(map[string]string, len(normalizedHeaders))
		for i := range normalizedHeaders {
			if i < len(row) {
				values[normalizedHeaders[i]] = row[i]
			} else {
				values[normalizedHeaders[i]] = ""
			}
		}

		records = append(records, Record{RowNumber: line, Values: values})
	}

	return records, nil
}
