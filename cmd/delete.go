package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"shiftstat/config"
	"shiftstat/storage"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	deleteDBPath       string
	deleteSessionsOnly bool
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete stored sessions or the complete session database file",
	Long: `Destructive database cleanup command.

By default this command deletes the complete SQLite database file holding stored sessions.
With --sessions-only the file is kept and all session rows are removed.
The path defaults to storage.db_path from the configuration.
Before deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete the configured SQLite file (requires interactive confirmation)
  shiftstat delete

  # Delete a specific SQLite file
  shiftstat delete --db ./shiftstat.db

  # Keep the file, drop all stored sessions
  shiftstat delete --sessions-only
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := strings.TrimSpace(deleteDBPath)
		if path == "" {
			path = viper.GetString(config.KeyStorageDBPath)
		}

		sessions, err := countStoredSessions(path)
		if err != nil {
			return err
		}

		target := fmt.Sprintf("database file %q (%d stored sessions)", path, sessions)
		if deleteSessionsOnly {
			target = fmt.Sprintf("all %d stored sessions in %q", sessions, path)
		}
		confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, target)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		if deleteSessionsOnly {
			deleted, err := deleteStoredSessions(path)
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d sessions from: %s\n", deleted, path)
			return nil
		}

		if err := removeDatabaseFile(path); err != nil {
			return err
		}
		fmt.Printf("Deleted database file: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteDBPath, "db", "", "Path to local SQLite database (default storage.db_path)")
	deleteCmd.Flags().BoolVar(&deleteSessionsOnly, "sessions-only", false, "Remove stored sessions but keep the database file")
}

func confirmDeletePrompt(input io.Reader, output io.Writer, target string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete %s? Type Y to confirm: ", target); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func checkDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	return nil
}

func countStoredSessions(path string) (int, error) {
	if err := checkDatabaseFile(path); err != nil {
		return 0, err
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	sessions, err := store.ListSessions()
	if err != nil {
		return 0, err
	}
	return len(sessions), nil
}

func deleteStoredSessions(path string) (int64, error) {
	if err := checkDatabaseFile(path); err != nil {
		return 0, err
	}

	store, err := storage.OpenSQLite(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.DeleteAllSessions()
}

func removeDatabaseFile(path string) error {
	if err := checkDatabaseFile(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}
