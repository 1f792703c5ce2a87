package cmd

import (
	"bytes"
	"path/filepath"
	"shiftstat/efficiency"
	"shiftstat/shift"
	"shiftstat/storage"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func openHistoryStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "shiftstat.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func saveHistorySession(t *testing.T, store *storage.SQLiteStore, names ...string) storage.Session {
	t.Helper()

	registry := efficiency.NewRegistry()
	for i, name := range names {
		emp, err := efficiency.NewEmployee(name, []shift.Raw{
			{
				RowNumber:      2,
				ShiftID:        "1",
				DateWorked:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local),
				ClockIn:        9 * time.Hour,
				ClockOut:       17 * time.Hour,
				HoursDigitized: float64(4 + i),
				Format:         "VHS",
				EmployeeID:     "E1",
			},
			{
				RowNumber:      3,
				ShiftID:        "2",
				DateWorked:     time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local),
				ClockIn:        22 * time.Hour,
				ClockOut:       2 * time.Hour,
				HoursDigitized: 2,
				Format:         "Film",
				EmployeeID:     "E1",
			},
		})
		if err != nil {
			t.Fatalf("new employee: %v", err)
		}
		if err := registry.Register(emp); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	session, err := store.SaveSession(registry, time.Now())
	if err != nil {
		t.Fatalf("save session: %v", err)
	}
	return session
}

func TestPrintSessionsAndSession(t *testing.T) {
	store := openHistoryStore(t)

	var out bytes.Buffer
	if err := printSessions(&out, store); err != nil {
		t.Fatalf("print empty sessions: %v", err)
	}
	if !strings.Contains(out.String(), "No sessions stored.") {
		t.Fatalf("unexpected output: %s", out.String())
	}

	emp, err := efficiency.NewEmployee("Jane Doe", []shift.Raw{{
		RowNumber:      2,
		ShiftID:        "1",
		DateWorked:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local),
		ClockIn:        9 * time.Hour,
		ClockOut:       17 * time.Hour,
		HoursDigitized: 6,
		Format:         "VHS",
		EmployeeID:     "E1",
	}})
	if err != nil {
		t.Fatalf("new employee: %v", err)
	}
	registry := efficiency.NewRegistry()
	if err := registry.Register(emp); err != nil {
		t.Fatalf("register: %v", err)
	}
	session, err := store.SaveSession(registry, time.Now())
	if err != nil {
		t.Fatalf("save session: %v", err)
	}

	out.Reset()
	if err := printSessions(&out, store); err != nil {
		t.Fatalf("print sessions: %v", err)
	}
	if !strings.Contains(out.String(), session.ID) || !strings.Contains(out.String(), "employees: 1  shifts: 1") {
		t.Fatalf("unexpected sessions output: %s", out.String())
	}

	out.Reset()
	if err := printSession(&out, store, session.ID[:8]); err != nil {
		t.Fatalf("print session: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Session: "+session.ID) {
		t.Fatalf("expected session header, got:\n%s", text)
	}
	if !strings.Contains(text, "Jane_Doe (E1): shifts 1, digitized 6.000 h, worked 8.0 h") {
		t.Fatalf("expected employee summary, got:\n%s", text)
	}
	if !strings.Contains(text, "0.750") {
		t.Fatalf("expected ranking efficiency, got:\n%s", text)
	}
}

func TestPrintEmployeeShifts(t *testing.T) {
	store := openHistoryStore(t)
	session := saveHistorySession(t, store, "Jane Doe", "Bob")

	var out bytes.Buffer
	if err := printEmployeeShifts(&out, store, session.ID[:8], "  Jane   Doe "); err != nil {
		t.Fatalf("print employee shifts: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Jane_Doe Stored Shifts:") {
		t.Fatalf("expected stored shifts title, got:\n%s", text)
	}
	for _, want := range []string{"2026-03-02", "22:00:00", "02:00:00", "Film", "0.500"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, text)
		}
	}

	err := printEmployeeShifts(&out, store, session.ID, "Nobody")
	if err == nil || !strings.Contains(err.Error(), "Nobody not found") {
		t.Fatalf("expected unknown employee error, got %v", err)
	}
}

func TestExportSessionRanking(t *testing.T) {
	store := openHistoryStore(t)
	session := saveHistorySession(t, store, "Jane Doe", "Bob")
	path := filepath.Join(t.TempDir(), "ranking.xlsx")

	var out bytes.Buffer
	if err := exportSessionRanking(&out, store, session.ID[:8], path, ""); err != nil {
		t.Fatalf("export ranking: %v", err)
	}
	if !strings.Contains(out.String(), "written to "+path) {
		t.Fatalf("unexpected output: %s", out.String())
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open ranking workbook: %v", err)
	}
	defer file.Close()
	rows, err := file.GetRows("Ranking")
	if err != nil {
		t.Fatalf("read ranking rows: %v", err)
	}
	if len(rows) != 3 || rows[1][1] != "Bob" || rows[2][1] != "Jane_Doe" {
		t.Fatalf("unexpected ranking rows: %v", rows)
	}

	if err := exportSessionRanking(&out, store, session.ID, filepath.Join(t.TempDir(), "ranking.pdf"), ""); err == nil {
		t.Fatal("expected unsupported format error")
	}
}
