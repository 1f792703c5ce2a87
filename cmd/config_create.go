package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateForce bool

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

If a configuration file is already in use, no new file is written unless --force is set.`,
	Example: `
  # Create default config at $HOME/.shiftstat.yaml
  shiftstat config create

  # Reset an existing config to the template
  shiftstat config create --force
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(cmd.OutOrStdout(), configCreateForce)
	},
}

func saveDefaultConfig(out io.Writer, force bool) error {
	configPath, err := resolveConfigPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := writeConfigTemplate(configPath, force)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(out, "Config file already exists at: %s\n", configPath)
		return nil
	}

	cfg, err := validateConfigFile(configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "New config file created at: %s\n", configPath)
	printConfig(out, cfg)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().BoolVar(&configCreateForce, "force", false, "Overwrite an existing config file with the template")
}
