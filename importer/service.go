package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shiftstat/shift"
)

var ErrInvalidInputPath = errors.New("invalid input path")

type Result struct {
	Path        string
	Format      string
	RowsRead    int
	RowsSkipped int
	Shifts      []shift.Raw
}

// SupportedExtensions lists the input file extensions accepted without an
// explicit format.
func SupportedExtensions() []string {
	return []string{"xlsx", "xlsm", "csv"}
}

// Load reads one employee file. Any unreadable row fails the whole file.
func Load(path string, format string, mapper *ShiftMapper) (*Result, error) {
	if mapper == nil {
		mapper = NewShiftMapper(nil)
	}

	sourceFormat, err := inferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return nil, err
	}

	records, err := reader.Read(path)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if err := mapper.CheckColumns(records[0]); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	result := &Result{
		Path:     path,
		Format:   sourceFormat,
		RowsRead: len(records),
		Shifts:   make([]shift.Raw, 0, len(records)),
	}
	for _, record := range records {
		if record.IsBlank() {
			result.RowsSkipped++
			continue
		}
		raw, err := mapper.Map(record)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		result.Shifts = append(result.Shifts, raw)
	}

	return result, nil
}

// ValidateInputPath checks that path names an existing regular file with a
// supported extension.
func ValidateInputPath(path string) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidInputPath)
	}

	info, err := os.Stat(trimmed)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidInputPath, trimmed)
		}
		return fmt.Errorf("%w: stat %s: %v", ErrInvalidInputPath, trimmed, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a file", ErrInvalidInputPath, trimmed)
	}
	if _, err := inferFormat(trimmed, ""); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInputPath, err)
	}
	return nil
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s (supported: %s)", path, strings.Join(SupportedExtensions(), ", "))
	}
}
