package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deathray/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, as YAML.

The file is looked up in this order: --config, ~/.deathray/configs/deathray.yaml,
./configs/deathray.yaml, then the built-in defaults. The --difficulty preset
is applied on top.

Examples:
  deathray config > ~/.deathray/configs/deathray.yaml
  deathray config --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	source, err := writeConfig(os.Stdout, flagConfig, flagDifficulty)
	if err != nil {
		logger.Error("Could not print config", "error", err)
		os.Exit(1)
	}
	logger.Info("Effective config", "source", source)
}

// writeConfig writes the effective configuration as YAML to w.
func writeConfig(w io.Writer, path, difficulty string) (config.Source, error) {
	cfg, source, err := config.Load(path)
	if err != nil {
		return source, fmt.Errorf("load config: %w", err)
	}

	if difficulty != "" {
		preset, ok := config.ParsePreset(difficulty)
		if !ok {
			return source, fmt.Errorf("unknown difficulty preset %q", difficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return source, fmt.Errorf("encode config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return source, fmt.Errorf("write config: %w", err)
	}
	return source, nil
}
