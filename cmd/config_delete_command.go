package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by shiftstat.

If no configuration file is active, the command returns an error.
Before deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete active config
  shiftstat config delete

  # Delete config at a custom path
  shiftstat --configFile ./custom-shiftstat.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, fmt.Sprintf("configuration file %q", configPath))
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("config delete aborted: confirmation was not 'Y'")
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
