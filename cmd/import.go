package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
	"github.com/abhisek/dronecbt/internal/review"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply reviewed CSV edits back to the question bank",
	Long:  "Apply reviewed CSV edits back to the question bank. Reads stdin when the file is \"-\". Each rewritten collection is backed up first.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := config.SetupLogging(cmd)
		cfg := config.Load(cmd)

		store, err := bank.NewStore(cfg.BankDir, logger)
		if err != nil {
			return fmt.Errorf("open question bank: %w", err)
		}

		var in io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}

		res, err := review.Import(store, in, logger)
		if err != nil {
			return err
		}

		fmt.Printf("Updated %d questions across %d files\n", res.Updated, res.Files)
		if res.Unmatched > 0 {
			fmt.Printf("%d rows did not match any stored question\n", res.Unmatched)
		}
		return nil
	},
}
