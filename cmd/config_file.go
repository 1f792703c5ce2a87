package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"shiftstat/config"
	"strings"
)

const defaultConfigName = ".shiftstat.yaml"

// resolveConfigPath picks the --configFile flag, then the file viper loaded,
// then $HOME/.shiftstat.yaml.
func resolveConfigPath(configFileFlag, configFileUsed string) (string, error) {
	for _, candidate := range []string{configFileFlag, configFileUsed} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigName), nil
}

// writeConfigTemplate writes the example config to path. An existing file is
// left alone unless overwrite is set.
func writeConfigTemplate(path string, overwrite bool) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil && !overwrite:
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("creating example config failed: %w", err)
	}

	return true, nil
}

// validateConfigFile reads path and validates it as shiftstat YAML config.
func validateConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config failed: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	return cfg, nil
}

func resolveEditorValue(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return "vi"
}

func buildEditorCommand(editorValue, configPath string) (*exec.Cmd, error) {
	fields := strings.Fields(strings.TrimSpace(editorValue))
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}

	args := append(fields[1:], configPath)
	return exec.Command(fields[0], args...), nil
}
