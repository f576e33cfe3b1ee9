package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "INTELLENUM"
	configName = ".intellenum"
)

// settings are the resolved options of one invocation.
type settings struct {
	Dir              string `mapstructure:"dir"`
	Color            string `mapstructure:"color"`
	Verbose          bool   `mapstructure:"verbose"`
	JSONLog          bool   `mapstructure:"json-log"`
	Defaults         string `mapstructure:"defaults"`
	Jobs             int    `mapstructure:"jobs"`
	Tests            bool   `mapstructure:"tests"`
	Output           string `mapstructure:"output"`
	Stubs            bool   `mapstructure:"stubs"`
	DebugDir         string `mapstructure:"debug-dir"`
	NoCache          bool   `mapstructure:"no-cache"`
	CacheDir         string `mapstructure:"cache-dir"`
	WarningsAsErrors bool   `mapstructure:"warnings-as-errors"`
}

// current holds the settings of the running command, resolved by setup.
var current *settings

// setup resolves the settings of the command about to run and applies the
// global ones.
func setup(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	current = s

	switch s.Color {
	case "auto":
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid color mode %q (must be auto, always or never)", s.Color)
	}

	return nil
}

// loadSettings merges the command's flags, the environment and the settings
// file. Flags set on the command line win.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Clean(v.GetString("dir")))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &s, nil
}
