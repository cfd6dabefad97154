package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dronecbt/internal/app"
	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
	"github.com/abhisek/dronecbt/internal/i18n"
	"github.com/abhisek/dronecbt/internal/llm"
)

// runApp resolves configuration, builds dependencies, and launches the
// TUI.
func runApp(cmd *cobra.Command) error {
	logger := config.SetupLogging(cmd)
	cfg := config.Load(cmd)

	if err := i18n.Init(cfg.Lang); err != nil {
		return fmt.Errorf("init locale %q: %w", cfg.Lang, err)
	}

	store, err := bank.NewStore(cfg.BankDir, logger)
	if err != nil {
		return fmt.Errorf("open question bank: %w", err)
	}

	opts := app.Options{
		Store:  store,
		Logger: logger,
		Config: cfg,
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Question generation will be unavailable.")
	} else {
		opts.Provider = provider
	}

	return app.Run(opts)
}
