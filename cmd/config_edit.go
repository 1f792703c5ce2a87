package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active shiftstat config file in your editor.

Editor selection order:
1) $VISUAL
2) $EDITOR
3) vi

If no config file exists yet, this command creates one with an example template first.
After the editor exits, the content is validated and the resulting values are printed.`,
	Example: `
  # Edit active config
  shiftstat config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeConfigTemplate(configPath, false)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", configPath)
		}

		editorCommand, err := buildEditorCommand(resolveEditorValue(os.Getenv("VISUAL"), os.Getenv("EDITOR")), configPath)
		if err != nil {
			return err
		}
		editorCommand.Stdin = os.Stdin
		editorCommand.Stdout = os.Stdout
		editorCommand.Stderr = os.Stderr
		if err := editorCommand.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		cfg, err := validateConfigFile(configPath)
		if err != nil {
			return err
		}

		fmt.Printf("Configuration saved and validated: %s\n", configPath)
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
