package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"shiftstat/efficiency"
	"shiftstat/shift"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrSessionNotFound = errors.New("session not found")

// Session is one persisted analysis run.
type Session struct {
	ID        string
	CreatedAt time.Time
	Employees int
	Shifts    int
}

// EmployeeSummary is the stored per-employee aggregate of a session.
type EmployeeSummary struct {
	Name           string
	EmployeeID     string
	Efficiency     float64
	TotalDigitized float64
	TotalWorked    float64
	Shifts         int
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS employees (
	session_id TEXT NOT NULL,
	name TEXT NOT NULL,
	employee_id TEXT NOT NULL,
	efficiency REAL NOT NULL,
	total_digitized REAL NOT NULL,
	total_worked REAL NOT NULL CHECK(total_worked > 0),
	PRIMARY KEY(session_id, name)
);
CREATE TABLE IF NOT EXISTS shifts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	employee_name TEXT NOT NULL,
	source_row INTEGER NOT NULL,
	shift_id TEXT NOT NULL,
	date_worked TEXT NOT NULL,
	clock_in INTEGER NOT NULL,
	clock_out INTEGER NOT NULL,
	hours_digitized REAL NOT NULL,
	hours_worked REAL NOT NULL,
	efficiency REAL NOT NULL,
	format TEXT NOT NULL,
	employee_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shifts_session_employee ON shifts(session_id, employee_name);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveSession stores every registered employee with its enriched shifts under a
// new session ID.
func (s *SQLiteStore) SaveSession(registry *efficiency.Registry, createdAt time.Time) (Session, error) {
	if registry == nil || registry.Len() == 0 {
		return Session{}, fmt.Errorf("save session: no employees registered")
	}

	session := Session{
		ID:        uuid.NewString(),
		CreatedAt: createdAt.UTC().Truncate(time.Second),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Session{}, fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO sessions (id, created_at) VALUES (?, ?);`,
		session.ID,
		session.CreatedAt.Format(time.RFC3339),
	); err != nil {
		_ = tx.Rollback()
		return Session{}, fmt.Errorf("insert session: %w", err)
	}

	employeeStmt, err := tx.Prepare(`
INSERT INTO employees (
	session_id,
	name,
	employee_id,
	efficiency,
	total_digitized,
	total_worked
) VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return Session{}, fmt.Errorf("prepare employee statement: %w", err)
	}
	defer employeeStmt.Close()

	shiftStmt, err := tx.Prepare(`
INSERT INTO shifts (
	session_id,
	employee_name,
	source_row,
	shift_id,
	date_worked,
	clock_in,
	clock_out,
	hours_digitized,
	hours_worked,
	efficiency,
	format,
	employee_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return Session{}, fmt.Errorf("prepare shift statement: %w", err)
	}
	defer shiftStmt.Close()

	for _, emp := range registry.All() {
		if _, err := employeeStmt.Exec(
			session.ID,
			emp.Name(),
			emp.EmployeeID(),
			emp.OverallEfficiency(),
			emp.TotalDigitized(),
			emp.TotalWorked(),
		); err != nil {
			_ = tx.Rollback()
			return Session{}, fmt.Errorf("insert employee %s: %w", emp.Name(), err)
		}
		session.Employees++

		for _, record := range emp.Records() {
			if _, err := shiftStmt.Exec(
				session.ID,
				emp.Name(),
				record.RowNumber,
				record.ShiftID,
				record.DateWorked.Format("2006-01-02"),
				int64(record.ClockIn/time.Second),
				int64(record.ClockOut/time.Second),
				record.HoursDigitized,
				record.HoursWorked,
				record.Efficiency,
				record.Format,
				record.EmployeeID,
			); err != nil {
				_ = tx.Rollback()
				return Session{}, fmt.Errorf("insert shift %s for %s: %w", record.ShiftID, emp.Name(), err)
			}
			session.Shifts++
		}
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("commit transaction: %w", err)
	}

	return session, nil
}

// ListSessions returns all sessions, newest first.
func (s *SQLiteStore) ListSessions() ([]Session, error) {
	const query = `
SELECT
	s.id,
	s.created_at,
	(SELECT COUNT(*) FROM employees e WHERE e.session_id = s.id),
	(SELECT COUNT(*) FROM shifts sh WHERE sh.session_id = s.id)
FROM sessions s
ORDER BY s.created_at DESC, s.rowid DESC;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]Session, 0, 16)
	for rows.Next() {
		var (
			session    Session
			createdRaw string
		)
		if err := rows.Scan(&session.ID, &createdRaw, &session.Employees, &session.Shifts); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.CreatedAt, err = time.Parse(time.RFC3339, createdRaw)
		if err != nil {
			return nil, fmt.Errorf("parse session created_at %q: %w", createdRaw, err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// ResolveSession accepts a full session ID or a unique prefix of one.
func (s *SQLiteStore) ResolveSession(idOrPrefix string) (string, error) {
	prefix := strings.ToLower(strings.TrimSpace(idOrPrefix))
	if prefix == "" {
		return "", fmt.Errorf("session id must not be empty")
	}

	rows, err := s.db.Query(`SELECT id FROM sessions WHERE id LIKE ? || '%' ORDER BY id LIMIT 2;`, prefix)
	if err != nil {
		return "", fmt.Errorf("query session %s: %w", idOrPrefix, err)
	}
	defer rows.Close()

	matches := make([]string, 0, 2)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan session id: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate session ids: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("session prefix %q is ambiguous", idOrPrefix)
	}
}

// EmployeesForSession returns the employee aggregates of a session, most
// efficient first, ties broken by name.
func (s *SQLiteStore) EmployeesForSession(sessionID string) ([]EmployeeSummary, error) {
	const query = `
SELECT
	e.name,
	e.employee_id,
	e.efficiency,
	e.total_digitized,
	e.total_worked,
	(SELECT COUNT(*) FROM shifts sh WHERE sh.session_id = e.session_id AND sh.employee_name = e.name)
FROM employees e
WHERE e.session_id = ?
ORDER BY e.efficiency DESC, e.name ASC;
`

	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query employees for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	summaries := make([]EmployeeSummary, 0, 8)
	for rows.Next() {
		var summary EmployeeSummary
		if err := rows.Scan(
			&summary.Name,
			&summary.EmployeeID,
			&summary.Efficiency,
			&summary.TotalDigitized,
			&summary.TotalWorked,
			&summary.Shifts,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	return summaries, nil
}

// RankingForSession returns the stored ranking of a session.
func (s *SQLiteStore) RankingForSession(sessionID string) ([]efficiency.Ranking, error) {
	summaries, err := s.EmployeesForSession(sessionID)
	if err != nil {
		return nil, err
	}

	rankings := make([]efficiency.Ranking, 0, len(summaries))
	for _, summary := range summaries {
		rankings = append(rankings, efficiency.Ranking{Name: summary.Name, Efficiency: summary.Efficiency})
	}
	return rankings, nil
}

// ShiftsForEmployee returns the stored shifts of one employee in a session in
// their original row order.
func (s *SQLiteStore) ShiftsForEmployee(sessionID, name string) ([]shift.Record, error) {
	const query = `
SELECT
	source_row,
	shift_id,
	date_worked,
	clock_in,
	clock_out,
	hours_digitized,
	hours_worked,
	efficiency,
	format,
	employee_id
FROM shifts
WHERE session_id = ? AND employee_name = ?
ORDER BY id;
`

	rows, err := s.db.Query(query, sessionID, name)
	if err != nil {
		return nil, fmt.Errorf("query shifts for %s: %w", name, err)
	}
	defer rows.Close()

	records := make([]shift.Record, 0, 64)
	for rows.Next() {
		var (
			record   shift.Record
			dateRaw  string
			clockIn  int64
			clockOut int64
		)
		if err := rows.Scan(
			&record.RowNumber,
			&record.ShiftID,
			&dateRaw,
			&clockIn,
			&clockOut,
			&record.HoursDigitized,
			&record.HoursWorked,
			&record.Efficiency,
			&record.Format,
			&record.EmployeeID,
		); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}

		record.DateWorked, err = time.ParseInLocation("2006-01-02", dateRaw, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse date_worked %q: %w", dateRaw, err)
		}
		record.ClockIn = time.Duration(clockIn) * time.Second
		record.ClockOut = time.Duration(clockOut) * time.Second
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shifts: %w", err)
	}

	return records, nil
}

// DeleteAllSessions removes every stored session and returns how many were removed.
func (s *SQLiteStore) DeleteAllSessions() (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	for _, table := range []string{"shifts", "employees"} {
		if _, err := tx.Exec(`DELETE FROM ` + table + `;`); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("delete %s: %w", table, err)
		}
	}

	res, err := tx.Exec(`DELETE FROM sessions;`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete sessions: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete transaction: %w", err)
	}
	return rows, nil
}
