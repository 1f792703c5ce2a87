package cmd

import (
	"fmt"
	"github.com/spf13/viper"
	"io"

	"github.com/spf13/cobra"
	"shiftstat/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.
Without a config file, the defaults are shown.`,
	Example: `
  # Show active configuration
  shiftstat config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults.")
		}
		printConfig(cmd.OutOrStdout(), cfg)
	},
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "%s: %s\n", config.KeyReportOutputDir, cfg.Report.OutputDir)
	fmt.Fprintf(out, "%s: %d\n", config.KeyReportWindowDays, cfg.Report.WindowDays)
	fmt.Fprintf(out, "%s: %d\n", config.KeyReportHighlightCount, cfg.Report.HighlightCount)
	fmt.Fprintf(out, "%s: %g\n", config.KeyReportEfficiencyAxisMax, cfg.Report.EfficiencyAxisMax)
	fmt.Fprintf(out, "%s: %t\n", config.KeyStorageEnabled, cfg.Storage.Enabled)
	fmt.Fprintf(out, "%s: %s\n", config.KeyStorageDBPath, cfg.Storage.DBPath)
	fmt.Fprintf(out, "%s: %s\n", config.KeyLogLevel, cfg.Log.Level)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
