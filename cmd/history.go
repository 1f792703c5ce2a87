package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"shiftstat/config"
	"shiftstat/efficiency"
	"shiftstat/storage"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyDBPath        string
	historySession       string
	historyEmployee      string
	historyRankingOutput string
	historyRankingFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analysis sessions or show one session's ranking",
	Long: `Read sessions saved by "analyze" when storage.enabled is true.

Without --session, all sessions are listed newest first.
With --session, the stored employee ranking of that session is printed.
A unique prefix of the session ID is enough.
With --session and --employee, the stored shifts of that employee are printed.
With --session and --ranking-output, the stored ranking is exported as CSV or Excel.`,
	Example: `
  # List sessions
  shiftstat history

  # Show one session
  shiftstat history --session 3f2a9c1e

  # Show the shifts of one employee in a session
  shiftstat history --session 3f2a9c1e --employee "Jane Doe"

  # Export a stored ranking
  shiftstat history --session 3f2a9c1e --ranking-output ./ranking.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dbPath := cfg.Storage.DBPath
		if strings.TrimSpace(historyDBPath) != "" {
			dbPath = historyDBPath
		}
		if _, err := os.Stat(dbPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("database file not found: %s (enable storage.enabled and run analyze first)", dbPath)
			}
			return fmt.Errorf("stat database file: %w", err)
		}

		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if strings.TrimSpace(historySession) == "" {
			if historyEmployee != "" || historyRankingOutput != "" {
				return errors.New("--employee and --ranking-output require --session")
			}
			return printSessions(out, store)
		}
		if strings.TrimSpace(historyEmployee) != "" {
			return printEmployeeShifts(out, store, historySession, historyEmployee)
		}
		if strings.TrimSpace(historyRankingOutput) != "" {
			return exportSessionRanking(out, store, historySession, historyRankingOutput, historyRankingFormat)
		}
		return printSession(out, store, historySession)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "db", "", "Path to local SQLite database (overrides storage.db_path)")
	historyCmd.Flags().StringVarP(&historySession, "session", "s", "", "Session ID or unique prefix to show")
	historyCmd.Flags().StringVarP(&historyEmployee, "employee", "e", "", "Employee name whose stored shifts are printed (requires --session)")
	historyCmd.Flags().StringVar(&historyRankingOutput, "ranking-output", "", "Export the stored ranking to this path (requires --session)")
	historyCmd.Flags().StringVar(&historyRankingFormat, "ranking-format", "", "Ranking export format: csv|excel (optional, inferred from extension when omitted)")
}

func printSessions(out io.Writer, store *storage.SQLiteStore) error {
	sessions, err := store.ListSessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions stored.")
		return nil
	}

	for _, session := range sessions {
		fmt.Fprintf(out, "%s  %s  employees: %d  shifts: %d\n",
			session.ID,
			session.CreatedAt.In(time.Local).Format("2006-01-02 15:04:05"),
			session.Employees,
			session.Shifts,
		)
	}
	return nil
}

func printSession(out io.Writer, store *storage.SQLiteStore, idOrPrefix string) error {
	id, err := store.ResolveSession(idOrPrefix)
	if err != nil {
		return err
	}
	summaries, err := store.EmployeesForSession(id)
	if err != nil {
		return err
	}

	rankings := make([]efficiency.Ranking, 0, len(summaries))
	fmt.Fprintf(out, "Session: %s\n", id)
	for _, summary := range summaries {
		rankings = append(rankings, efficiency.Ranking{Name: summary.Name, Efficiency: summary.Efficiency})
		fmt.Fprintf(out, "%s (%s): shifts %d, digitized %.3f h, worked %.1f h\n",
			summary.Name,
			summary.EmployeeID,
			summary.Shifts,
			summary.TotalDigitized,
			summary.TotalWorked,
		)
	}
	fmt.Fprint(out, renderRanking(rankings))
	return nil
}

func printEmployeeShifts(out io.Writer, store *storage.SQLiteStore, idOrPrefix, name string) error {
	id, err := store.ResolveSession(idOrPrefix)
	if err != nil {
		return err
	}
	normalized := efficiency.NormalizeName(name)
	records, err := store.ShiftsForEmployee(id, normalized)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("employee %s not found in session %s", normalized, id)
	}

	fmt.Fprintf(out, "Session: %s\n", id)
	fmt.Fprintln(out, titleStyle.Render(normalized+" Stored Shifts:"))
	fmt.Fprintln(out, previewTable(records))
	return nil
}

func exportSessionRanking(out io.Writer, store *storage.SQLiteStore, idOrPrefix, path, format string) error {
	id, err := store.ResolveSession(idOrPrefix)
	if err != nil {
		return err
	}
	rankings, err := store.RankingForSession(id)
	if err != nil {
		return err
	}
	if err := writeRanking(rankings, path, format); err != nil {
		return err
	}
	fmt.Fprintf(out, "Ranking of session %s written to %s\n", id, path)
	return nil
}
