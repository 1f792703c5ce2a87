package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"shiftstat/efficiency"
	"shiftstat/shift"
	"shiftstat/storage"
	"strings"
	"testing"
	"time"
)

func TestConfirmDeletePrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "uppercase Y confirms", input: "Y\n", want: true},
		{name: "lowercase y does not confirm", input: "y\n", want: false},
		{name: "N does not confirm", input: "N\n", want: false},
		{name: "empty does not confirm", input: "\n", want: false},
		{name: "Y without newline confirms", input: "Y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirmDeletePrompt(bytes.NewBufferString(tt.input), &out, `database file "./shiftstat.db"`)
			if err != nil {
				t.Fatalf("confirm prompt returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if !strings.Contains(out.String(), "shiftstat.db") {
				t.Fatalf("expected prompt to name the target, got %q", out.String())
			}
		})
	}
}

func TestRemoveDatabaseFile(t *testing.T) {
	t.Run("deletes existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shiftstat.db")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("write temp db file: %v", err)
		}

		if err := removeDatabaseFile(path); err != nil {
			t.Fatalf("remove db file: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected file to be deleted")
		}
	})

	t.Run("fails for directory path", func(t *testing.T) {
		dir := t.TempDir()
		if err := removeDatabaseFile(dir); err == nil {
			t.Fatalf("expected error for directory path")
		}
	})

	t.Run("fails for missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.db")
		if err := removeDatabaseFile(path); err == nil {
			t.Fatalf("expected error for missing file")
		}
	})
}

func TestCountAndDeleteStoredSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiftstat.db")
	store, err := storage.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	emp, err := efficiency.NewEmployee("Jane", []shift.Raw{{
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
	if _, err := store.SaveSession(registry, time.Now()); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	count, err := countStoredSessions(path)
	if err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 session, got %d", count)
	}

	deleted, err := deleteStoredSessions(path)
	if err != nil {
		t.Fatalf("delete sessions: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted session, got %d", deleted)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected database file to remain: %v", err)
	}

	if _, err := countStoredSessions(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatalf("expected error for missing database file")
	}
}
