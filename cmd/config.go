package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shiftstat configuration file values.",
	Long: `Create, edit, display, and delete the shiftstat configuration file.

The configuration stores report and storage settings:
- report.output_dir / window_days / highlight_count / efficiency_axis_max
- storage.enabled / db_path
- log.level`,
	Example: `
  # Create default config in $HOME/.shiftstat.yaml
  shiftstat config create

  # Show active config and source file
  shiftstat config show

  # Open active config in editor (creates example if missing)
  shiftstat config edit

  # Delete active config file
  shiftstat config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
