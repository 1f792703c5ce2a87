package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"shiftstat/config"
	"shiftstat/efficiency"
	"shiftstat/importer"
	"shiftstat/report"
	"shiftstat/storage"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const stopWord = "stop"

var (
	analyzeEmployees     []string
	analyzeFormat        string
	analyzeOutputDir     string
	analyzeRankingOutput string
	analyzeRankingFormat string
)

var (
	analyzePromptInput  io.Reader = os.Stdin
	analyzePromptOutput io.Writer = os.Stdout
)

type employeeInput struct {
	Name string
	Path string
}

type reportPaths struct {
	Date   string
	Format string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze employee shift files and write the date and format reports",
	Long: `Read one shift file per employee, compute per-shift efficiency, rank employees,
and write two Excel workbooks into report.output_dir:
- <date>_date_analysis.xlsx: the most recent report.window_days shifts per employee
- <date>_format_analysis.xlsx: efficiency grouped by digitizing format

Without --employee flags, employees are entered interactively until STOP is typed.
Any unreadable row fails the session. Each file must contain the columns:
  ` + strings.Join(importer.RequiredColumns(), ", "),
	Example: `
  # Interactive
  shiftstat analyze

  # Non-interactive
  shiftstat analyze --employee "Jane Doe=./jane.xlsx" --employee "Bob=./bob.csv"

  # Custom output directory and CSV ranking export
  shiftstat analyze --employee "Jane Doe=./jane.xlsx" --output-dir ./reports --ranking-output ./ranking.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		inputs, err := resolveEmployeeInputs(analyzeEmployees, analyzePromptInput, analyzePromptOutput)
		if err != nil {
			return err
		}
		if len(inputs) == 0 {
			fmt.Fprintln(out, "Goodbye.")
			return nil
		}

		registry, err := loadEmployees(out, inputs, analyzeFormat)
		if err != nil {
			return err
		}

		fmt.Fprint(out, renderPreview(registry, previewRows))
		fmt.Fprint(out, renderRanking(registry.Rank()))

		outputDir := cfg.Report.OutputDir
		if strings.TrimSpace(analyzeOutputDir) != "" {
			outputDir = analyzeOutputDir
		}
		paths, err := writeReports(registry, outputDir, reportOptions(cfg), time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nOverall Date Analysis Excel Created! %s\n", paths.Date)
		fmt.Fprintf(out, "Overall Format Analysis Excel Created! %s\n", paths.Format)

		if strings.TrimSpace(analyzeRankingOutput) != "" {
			if err := writeRanking(registry.Rank(), analyzeRankingOutput, analyzeRankingFormat); err != nil {
				return err
			}
			fmt.Fprintf(out, "Ranking written to: %s\n", analyzeRankingOutput)
		}

		if cfg.Storage.Enabled {
			store, err := storage.OpenSQLite(cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			session, err := store.SaveSession(registry, time.Now())
			if err != nil {
				return err
			}
			slog.Info("session saved", "id", session.ID, "employees", session.Employees, "shifts", session.Shifts)
			fmt.Fprintf(out, "Session saved: %s\n", session.ID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringArrayVarP(&analyzeEmployees, "employee", "e", nil, `Employee input as "Name=path" (repeatable, skips the prompt)`)
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output-dir", "o", "", "Report output directory (overrides report.output_dir)")
	analyzeCmd.Flags().StringVar(&analyzeRankingOutput, "ranking-output", "", "Optional ranking export path")
	analyzeCmd.Flags().StringVar(&analyzeRankingFormat, "ranking-format", "", "Ranking export format: csv|excel (optional, inferred from extension when omitted)")
}

func reportOptions(cfg *config.Config) report.Options {
	return report.Options{
		WindowDays:        cfg.Report.WindowDays,
		HighlightCount:    cfg.Report.HighlightCount,
		EfficiencyAxisMax: cfg.Report.EfficiencyAxisMax,
	}
}

func resolveEmployeeInputs(flags []string, input io.Reader, output io.Writer) ([]employeeInput, error) {
	if len(flags) > 0 {
		return parseEmployeeFlags(flags)
	}
	return promptEmployees(input, output)
}

func parseEmployeeFlags(values []string) ([]employeeInput, error) {
	inputs := make([]employeeInput, 0, len(values))
	for _, value := range values {
		name, path, ok := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --employee value %q (expected Name=path)", value)
		}
		if err := importer.ValidateInputPath(path); err != nil {
			return nil, fmt.Errorf("--employee %q: %w", name, err)
		}
		inputs = append(inputs, employeeInput{Name: name, Path: path})
	}
	return inputs, nil
}

// promptEmployees asks for name/path pairs until STOP is entered or input ends.
// STOP at the path prompt discards the pending name.
func promptEmployees(input io.Reader, output io.Writer) ([]employeeInput, error) {
	if input == nil {
		return nil, fmt.Errorf("employee prompt input is not available")
	}
	if output == nil {
		output = io.Discard
	}

	reader := bufio.NewReader(input)
	inputs := make([]employeeInput, 0, 4)

	if _, err := fmt.Fprintln(output, "Welcome to the Employee Analysis Gateway."); err != nil {
		return nil, fmt.Errorf("write employee prompt: %w", err)
	}
	for {
		name, eof, err := readPromptLine(reader, output, "Please enter name of employee. (or type STOP): ")
		if err != nil {
			return nil, err
		}
		if isStop(name) || (eof && name == "") {
			return inputs, nil
		}
		if name == "" {
			fmt.Fprintln(output, "That was not a valid input.")
			continue
		}

		for {
			path, eof, err := readPromptLine(reader, output, "Please enter full path of employee data file (directory path + filename) or STOP: ")
			if err != nil {
				return nil, err
			}
			if isStop(path) || (eof && path == "") {
				return inputs, nil
			}
			if err := importer.ValidateInputPath(path); err != nil {
				slog.Debug("rejected input path", "path", path, "error", err)
				fmt.Fprintln(output, "That was not a valid input.")
				if eof {
					return inputs, nil
				}
				continue
			}

			inputs = append(inputs, employeeInput{Name: name, Path: path})
			fmt.Fprintf(output, "%d Initialized\n\n", len(inputs))
			if eof {
				return inputs, nil
			}
			break
		}
	}
}

func readPromptLine(reader *bufio.Reader, output io.Writer, prompt string) (string, bool, error) {
	if _, err := fmt.Fprint(output, prompt); err != nil {
		return "", false, fmt.Errorf("write employee prompt: %w", err)
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return strings.TrimSpace(line), true, nil
		}
		return "", false, fmt.Errorf("read employee prompt: %w", err)
	}
	return strings.TrimSpace(line), false, nil
}

func isStop(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), stopWord)
}

// loadEmployees imports every input file and registers one employee per file.
// The first failing file aborts the session.
func loadEmployees(out io.Writer, inputs []employeeInput, format string) (*efficiency.Registry, error) {
	mapper := importer.NewShiftMapper(time.Local)
	registry := efficiency.NewRegistry()

	for _, input := range inputs {
		if registry.Has(input.Name) {
			return nil, fmt.Errorf("%s: %w", efficiency.NormalizeName(input.Name), efficiency.ErrDuplicateEmployee)
		}

		result, err := importer.Load(input.Path, format, mapper)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", input.Name, err)
		}
		emp, err := efficiency.NewEmployee(input.Name, result.Shifts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", input.Path, err)
		}
		if err := registry.Register(emp); err != nil {
			return nil, err
		}

		slog.Info("employee loaded",
			"name", emp.Name(),
			"path", input.Path,
			"format", result.Format,
			"rows", result.RowsRead,
			"skipped", result.RowsSkipped,
		)
		fmt.Fprintf(out, "%s's data successfully loaded and ready for analysis!\n", emp.Name())
	}

	return registry, nil
}

func writeReports(registry *efficiency.Registry, dir string, opts report.Options, now time.Time) (reportPaths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return reportPaths{}, fmt.Errorf("create output directory: %w", err)
	}

	employees := registry.All()
	dateSheets := make([]report.DateSheet, 0, len(employees))
	formatSheets := make([]report.FormatSheet, 0, len(employees))
	for _, emp := range employees {
		dateSheets = append(dateSheets, report.DateSheet{Name: emp.Name(), Entries: emp.RecentWindow(opts.WindowDays)})
		formatSheets = append(formatSheets, report.FormatSheet{Name: emp.Name(), Entries: emp.FormatBreakdown()})
	}

	paths := reportPaths{
		Date:   filepath.Join(dir, report.FileName(report.KindDate, now)),
		Format: filepath.Join(dir, report.FileName(report.KindFormat, now)),
	}
	if err := report.WriteDateReport(paths.Date, dateSheets, opts); err != nil {
		return reportPaths{}, err
	}
	slog.Info("report written", "kind", report.KindDate, "path", paths.Date)

	if err := report.WriteFormatReport(paths.Format, formatSheets, opts); err != nil {
		return reportPaths{}, err
	}
	slog.Info("report written", "kind", report.KindFormat, "path", paths.Format)

	return paths, nil
}

func writeRanking(rankings []efficiency.Ranking, path, format string) error {
	if strings.TrimSpace(format) == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	writer, err := report.RankingWriterForFormat(format)
	if err != nil {
		return err
	}
	return writer.Write(path, rankings)
}
