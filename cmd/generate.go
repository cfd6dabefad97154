package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
	"github.com/abhisek/dronecbt/internal/exam"
	"github.com/abhisek/dronecbt/internal/llm"
	"github.com/abhisek/dronecbt/internal/questiongen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill the question bank for a level using the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		source, _ := cmd.Flags().GetString("source")
		attachPath, _ := cmd.Flags().GetString("attachment")

		logger := config.SetupLogging(cmd)
		cfg := config.Load(cmd)

		cur, err := exam.DefaultCurriculum(level)
		if err != nil {
			return err
		}

		store, err := bank.NewStore(cfg.BankDir, logger)
		if err != nil {
			return fmt.Errorf("open question bank: %w", err)
		}

		provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		if source == "" {
			source = bank.SanitizeSource(provider.ModelID())
		}

		var attachment *questiongen.Attachment
		if attachPath != "" {
			data, err := os.ReadFile(attachPath)
			if err != nil {
				return fmt.Errorf("read attachment: %w", err)
			}
			mimeType := mime.TypeByExtension(filepath.Ext(attachPath))
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}
			attachment = &questiongen.Attachment{MIMEType: mimeType, Data: data}
		}

		scopes := make(map[int]string, len(cur.Weights))
		for ch := range cur.Weights {
			scopes[ch] = cur.Scope
		}

		gen := questiongen.New(provider, questiongen.DefaultConfig())
		runner := questiongen.NewRunner(gen, store, logger)

		fmt.Printf("Generating %s questions into source %q\n", level, source)
		result, err := runner.Run(cmd.Context(), questiongen.RunInput{
			Level:      level,
			Source:     source,
			Targets:    cur.Weights,
			Scopes:     scopes,
			Attachment: attachment,
		}, func(p questiongen.Progress) {
			fmt.Printf("  %s: %d / %d\n", exam.ChapterLabel(p.Chapter), p.Added, p.Target)
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added %d questions (%d duplicates skipped)\n", result.Added, result.Skipped)
		for _, ch := range result.SkippedChapters {
			fmt.Printf("Gave up on %s after repeated failures\n", exam.ChapterLabel(ch))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("level", bank.LevelBasic, "Exam level to generate for")
	generateCmd.Flags().String("source", "", "Question set name (default: sanitized model id)")
	generateCmd.Flags().String("attachment", "", "Reference document (PDF, text) to ground generation on")
}
