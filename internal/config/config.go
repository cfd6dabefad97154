// Package config wires cobra flags, DRONECBT_* environment variables
// and the optional config file into one settings struct.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the resolved application settings.
type Config struct {
	// BankDir is the directory holding the question collections.
	BankDir string

	// Lang selects the UI language ("ja" or "en").
	Lang string

	// ReportFile is the CSV log of finished exam attempts.
	ReportFile string

	// StatusFile is the integrity scan artifact.
	StatusFile string

	// FlagFile is the CSV log of questions reported during an exam.
	FlagFile string

	// MinQuestions is the stock level below which exam setup warns
	// that results will not be representative. Zero stock is always a
	// hard stop regardless of this value.
	MinQuestions int
}

// Load resolves settings for a command: flags beat environment beats
// config file beats defaults.
func Load(cmd *cobra.Command) Config {
	v := ViperForCmd(cmd)

	cfg := Config{
		BankDir:      v.GetString("bank-dir"),
		Lang:         v.GetString("lang"),
		ReportFile:   v.GetString("report-file"),
		StatusFile:   v.GetString("status-file"),
		FlagFile:     v.GetString("flag-file"),
		MinQuestions: v.GetInt("min-questions"),
	}
	if cfg.BankDir == "" {
		cfg.BankDir = defaultDataDir()
	}
	if cfg.Lang == "" {
		cfg.Lang = "ja"
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = filepath.Join(cfg.BankDir, "report.csv")
	}
	if cfg.StatusFile == "" {
		cfg.StatusFile = filepath.Join(cfg.BankDir, "integrity.json")
	}
	if cfg.FlagFile == "" {
		cfg.FlagFile = filepath.Join(cfg.BankDir, "flagged.csv")
	}
	if cfg.MinQuestions <= 0 {
		cfg.MinQuestions = 5
	}
	return cfg
}

// SetupLogging installs the default slog logger from the command's
// log-level and log-format settings and returns it.
func SetupLogging(cmd *cobra.Command) *slog.Logger {
	v := ViperForCmd(cmd)

	var level slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ViperForCmd binds a command's flags and environment to a fresh viper
// instance.
func ViperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("DRONECBT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("dronecbt")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/dronecbt")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	}

	return v
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".local", "share", "dronecbt")
}
