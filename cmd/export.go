package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
	"github.com/abhisek/dronecbt/internal/review"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export questions to CSV for review in a spreadsheet",
	Long:  "Export questions to CSV. Writes to stdout when no file is given or the file is \"-\".",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		source, _ := cmd.Flags().GetString("source")

		logger := config.SetupLogging(cmd)
		cfg := config.Load(cmd)

		store, err := bank.NewStore(cfg.BankDir, logger)
		if err != nil {
			return fmt.Errorf("open question bank: %w", err)
		}

		out := os.Stdout
		toFile := len(args) == 1 && args[0] != "-"
		if toFile {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			defer f.Close()
			out = f
		}

		n, err := review.Export(store, level, source, out)
		if err != nil {
			return err
		}
		if toFile {
			fmt.Printf("Exported %d questions to %s\n", n, args[0])
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("level", bank.LevelBasic, "Exam level to export")
	exportCmd.Flags().String("source", "", "Limit to one question set (default: all)")
}
