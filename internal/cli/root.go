// Package cli implements the sorter command line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/config"
	"github.com/muliwe/go-package-sorter/internal/logger"
	"github.com/muliwe/go-package-sorter/internal/measurement"
	"github.com/muliwe/go-package-sorter/internal/prompt"
	"github.com/muliwe/go-package-sorter/internal/report"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "dev"

// ErrIncompleteFlags is returned when only some measurement flags are given
var ErrIncompleteFlags = errors.New("--width, --height, --length and --mass must be given together")

var measurementFlags = []string{
	measurement.FieldWidth,
	measurement.FieldHeight,
	measurement.FieldLength,
	measurement.FieldMass,
}

// NewRootCmd creates the root command for sorter
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sorter",
		Short: "Classify a package as STANDARD, SPECIAL or REJECTED",
		Long: `Sorter decides how a package is routed from its dimensions and mass.

A package is bulky when its volume is at least 1,000,000 cm³ or any side is at
least 150 cm, and heavy when its mass is at least 20 kg. Bulky and heavy
packages are REJECTED, packages that are one of the two are SPECIAL and all
others are STANDARD.

Without measurement flags the values are asked for interactively.

Example:
  sorter
  sorter --width 200 --height 50 --length 50 --mass 10 --output json
  sorter --log-file=decisions.jsonl`,
		RunE:          runSort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML)")
	rootCmd.Flags().StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-file", "", "Append each decision as a JSON line to this file (bare --log-file uses "+logger.DefaultConfig().Path+")")
	rootCmd.Flags().Lookup("log-file").NoOptDefVal = logger.DefaultConfig().Path
	rootCmd.Flags().StringP("output", "o", "", "Output format (text, json)")
	rootCmd.Flags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored log output")

	rootCmd.Flags().String(measurement.FieldWidth, "", "Package width in cm")
	rootCmd.Flags().String(measurement.FieldHeight, "", "Package height in cm")
	rootCmd.Flags().String(measurement.FieldLength, "", "Package length in cm")
	rootCmd.Flags().String(measurement.FieldMass, "", "Package mass in kg")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sorter version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sorter %s\n", Version)
			return err
		},
	}
}

// loadConfig merges the config file, environment and flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{"log-level", &cfg.Logging.Level},
		{"log-file", &cfg.Logging.File},
		{"output", &cfg.Output.Format},
	}
	for _, o := range overrides {
		if !flags.Changed(o.flag) {
			continue
		}
		if *o.dst, err = flags.GetString(o.flag); err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", o.flag, err)
		}
	}

	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// flagMeasurements returns the measurements given on the command line.
// ok is false when none were given.
func flagMeasurements(cmd *cobra.Command) (m measurement.Measurements, ok bool, err error) {
	flags := cmd.Flags()

	given := 0
	for _, name := range measurementFlags {
		if flags.Changed(name) {
			given++
		}
	}
	switch given {
	case 0:
		return m, false, nil
	case len(measurementFlags):
	default:
		return m, false, ErrIncompleteFlags
	}

	dst := []*float64{&m.Width, &m.Height, &m.Length, &m.Mass}
	for i, name := range measurementFlags {
		raw, err := flags.GetString(name)
		if err != nil {
			return m, false, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		if *dst[i], err = measurement.ParseValue(raw); err != nil {
			return measurement.Measurements{}, false, fmt.Errorf("invalid --%s: %w", name, err)
		}
	}
	return m, true, nil
}

func runSort(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	log := logger.NewConsole(cmd.ErrOrStderr(), cfg.Logging.Level, noColor)

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	m, fromFlags, err := flagMeasurements(cmd)
	if err != nil {
		return err
	}
	if !fromFlags {
		p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout(), log)
		if m, err = p.Measurements(cmd.Context()); err != nil {
			return err
		}
	}

	requestID := uuid.NewString()
	start := time.Now()
	d, err := classifier.Evaluate(m)
	took := time.Since(start)
	if err != nil {
		log.Error("Invalid measurement", "request_id", requestID, "error", err)
		return err
	}

	log.Info("Package classified",
		"request_id", requestID,
		"category", d.Category,
		"volume_cm3", float64(d.Volume),
		"reason", d.Reason,
	)

	if cfg.Logging.File != "" {
		if err := writeDecision(cfg.Logging.File, requestID, m, d, took, log); err != nil {
			return err
		}
	}

	return report.Write(cmd.OutOrStdout(), format, report.Report{
		RequestID:    requestID,
		Measurements: m,
		Decision:     d,
	})
}

func writeDecision(path, requestID string, m measurement.Measurements, d classifier.Decision, took time.Duration, log *slog.Logger) error {
	l, err := logger.New(logger.Config{Path: path})
	if err != nil {
		return fmt.Errorf("failed to open decision log: %w", err)
	}
	defer func() {
		if err := l.Close(); err != nil {
			log.Warn("Failed to close decision log", "path", path, "error", err)
		}
	}()

	if err := l.LogDecision(requestID, m, d, took); err != nil {
		return fmt.Errorf("failed to write decision log: %w", err)
	}
	log.Debug("Decision logged", "path", l.LogPath())
	return nil
}
