package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"shiftstat/efficiency"
	"shiftstat/importer"
	"shiftstat/report"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const shiftHeader = "shift_id,date_worked,clock_in,clock_out,hours_digitized,format,employee_id\n"

func writeShiftCSV(t *testing.T, dir, name, rows string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(shiftHeader+rows), 0o600); err != nil {
		t.Fatalf("write shift csv: %v", err)
	}
	return path
}

func TestPromptEmployees(t *testing.T) {
	dir := t.TempDir()
	jane := writeShiftCSV(t, dir, "jane.csv", "")
	bob := writeShiftCSV(t, dir, "bob.csv", "")
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("x"), 0o600); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	tests := []struct {
		name         string
		input        string
		want         []employeeInput
		wantInvalids int
	}{
		{
			name:  "stop at name prompt",
			input: "Jane\n" + jane + "\nBob\n" + bob + "\nSTOP\n",
			want:  []employeeInput{{Name: "Jane", Path: jane}, {Name: "Bob", Path: bob}},
		},
		{
			name:  "stop at path prompt discards pending name",
			input: "Jane\n" + jane + "\nBob\nstop\n",
			want:  []employeeInput{{Name: "Jane", Path: jane}},
		},
		{
			name:         "invalid paths re-prompt",
			input:        "Jane\n" + filepath.Join(dir, "missing.xlsx") + "\n" + notes + "\n" + dir + "\n" + jane + "\nStop\n",
			want:         []employeeInput{{Name: "Jane", Path: jane}},
			wantInvalids: 3,
		},
		{
			name:  "end of input stops",
			input: "Jane\n" + jane,
			want:  []employeeInput{{Name: "Jane", Path: jane}},
		},
		{
			name:  "immediate stop",
			input: "stop\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptEmployees(strings.NewReader(tt.input), &out)
			if err != nil {
				t.Fatalf("prompt returned error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d inputs, got %d: %#v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("input %d: expected %#v, got %#v", i, tt.want[i], got[i])
				}
			}
			if invalids := strings.Count(out.String(), "That was not a valid input."); invalids != tt.wantInvalids {
				t.Fatalf("expected %d invalid notices, got %d\n%s", tt.wantInvalids, invalids, out.String())
			}
			if !strings.Contains(out.String(), "Welcome to the Employee Analysis Gateway.") {
				t.Fatalf("expected welcome text, got %q", out.String())
			}
		})
	}
}

func TestParseEmployeeFlags(t *testing.T) {
	dir := t.TempDir()
	jane := writeShiftCSV(t, dir, "jane.csv", "")

	got, err := parseEmployeeFlags([]string{" Jane Doe = " + jane})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Jane Doe" || got[0].Path != jane {
		t.Fatalf("unexpected inputs: %#v", got)
	}

	invalid := []string{
		"Jane",
		"=" + jane,
		"Jane=",
		"Jane=" + filepath.Join(dir, "missing.csv"),
	}
	for _, value := range invalid {
		if _, err := parseEmployeeFlags([]string{value}); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestLoadEmployeesAndWriteReports(t *testing.T) {
	dir := t.TempDir()
	jane := writeShiftCSV(t, dir, "jane.csv",
		"1,2026/01/05,09:00:00,17:00:00,6,VHS,E1\n"+
			"2,2026/01/06,22:00:00,02:00:00,3,Audio,E1\n")
	bob := writeShiftCSV(t, dir, "bob.csv",
		"7,2026/01/05,08:00:00,12:00:00,1,Film,E2\n")

	var out bytes.Buffer
	registry, err := loadEmployees(&out, []employeeInput{
		{Name: "Jane Doe", Path: jane},
		{Name: "Bob", Path: bob},
	}, "")
	if err != nil {
		t.Fatalf("load employees: %v", err)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected 2 employees, got %d", registry.Len())
	}
	if !strings.Contains(out.String(), "Jane_Doe's data successfully loaded") {
		t.Fatalf("unexpected output: %s", out.String())
	}

	rankings := registry.Rank()
	if rankings[0].Name != "Jane_Doe" || rankings[0].Efficiency != 0.75 {
		t.Fatalf("unexpected ranking: %#v", rankings)
	}

	outputDir := filepath.Join(dir, "reports")
	now := time.Date(2026, 1, 31, 12, 0, 0, 0, time.Local)
	paths, err := writeReports(registry, outputDir, report.DefaultOptions(), now)
	if err != nil {
		t.Fatalf("write reports: %v", err)
	}
	if filepath.Base(paths.Date) != "2026-01-31_date_analysis.xlsx" {
		t.Fatalf("unexpected date report path: %s", paths.Date)
	}
	if filepath.Base(paths.Format) != "2026-01-31_format_analysis.xlsx" {
		t.Fatalf("unexpected format report path: %s", paths.Format)
	}

	file, err := excelize.OpenFile(paths.Date)
	if err != nil {
		t.Fatalf("open date report: %v", err)
	}
	defer file.Close()
	sheets := file.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Jane_Doe" || sheets[1] != "Bob" {
		t.Fatalf("unexpected sheets: %#v", sheets)
	}

	rankingPath := filepath.Join(dir, "ranking.csv")
	if err := writeRanking(registry.Rank(), rankingPath, ""); err != nil {
		t.Fatalf("write ranking: %v", err)
	}
	content, err := os.ReadFile(rankingPath)
	if err != nil {
		t.Fatalf("read ranking: %v", err)
	}
	if !strings.Contains(string(content), "1,Jane_Doe,0.750") {
		t.Fatalf("unexpected ranking csv:\n%s", content)
	}
}

func TestLoadEmployeesRejectsDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	jane := writeShiftCSV(t, dir, "jane.csv", "1,2026/01/05,09:00:00,17:00:00,6,VHS,E1\n")

	_, err := loadEmployees(&bytes.Buffer{}, []employeeInput{
		{Name: "Jane Doe", Path: jane},
		{Name: "jane  doe", Path: jane},
	}, "")
	if !errors.Is(err, efficiency.ErrDuplicateEmployee) {
		t.Fatalf("expected duplicate employee error, got %v", err)
	}
}

func TestLoadEmployeesFailsOnZeroDurationShift(t *testing.T) {
	dir := t.TempDir()
	jane := writeShiftCSV(t, dir, "jane.csv",
		"1,2026/01/05,09:00:00,17:00:00,6,VHS,E1\n"+
			"2,2026/01/06,10:00:00,10:00:00,1,VHS,E1\n")

	_, err := loadEmployees(&bytes.Buffer{}, []employeeInput{{Name: "Jane", Path: jane}}, "")
	if !errors.Is(err, efficiency.ErrZeroDuration) {
		t.Fatalf("expected zero duration error, got %v", err)
	}
}

func TestAnalyzeHelpListsRequiredColumns(t *testing.T) {
	columns := importer.RequiredColumns()
	if len(columns) != 7 {
		t.Fatalf("expected 7 required columns, got %v", columns)
	}
	if !strings.Contains(analyzeCmd.Long, strings.Join(columns, ", ")) {
		t.Fatalf("expected required columns in help, got:\n%s", analyzeCmd.Long)
	}
	for _, column := range []string{"shift_id", "date_worked", "hours_digitized", "employee_id"} {
		if !strings.Contains(analyzeCmd.Long, column) {
			t.Fatalf("expected %s in help", column)
		}
	}
}
