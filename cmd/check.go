package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
	"github.com/abhisek/dronecbt/internal/integrity"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan the question bank for broken records",
	RunE: func(cmd *cobra.Command, args []string) error {
		repair, _ := cmd.Flags().GetBool("repair")

		logger := config.SetupLogging(cmd)
		cfg := config.Load(cmd)

		store, err := bank.NewStore(cfg.BankDir, logger)
		if err != nil {
			return fmt.Errorf("open question bank: %w", err)
		}

		issues, err := integrity.Scan(store)
		if err != nil {
			return fmt.Errorf("scan question bank: %w", err)
		}

		if repair && len(issues) > 0 {
			if err := repairIDs(store, issues); err != nil {
				return err
			}
			issues, err = integrity.Scan(store)
			if err != nil {
				return fmt.Errorf("rescan question bank: %w", err)
			}
		}

		if err := integrity.WriteStatus(cfg.StatusFile, issues); err != nil {
			return fmt.Errorf("write status file: %w", err)
		}

		if len(issues) == 0 {
			fmt.Println("Question bank is clean.")
			return nil
		}

		fmt.Printf("Found %d issues:\n", len(issues))
		for _, issue := range issues {
			line := fmt.Sprintf("  %-40s %s", issue.File, issue.State)
			if issue.ID != 0 {
				line += fmt.Sprintf("  id=%d", issue.ID)
			}
			if len(issue.MissingFields) > 0 {
				line += "  (" + strings.Join(issue.MissingFields, ", ") + ")"
			}
			if issue.Detail != "" {
				line += "  (" + issue.Detail + ")"
			}
			fmt.Println(line)
		}
		if !repair {
			fmt.Println("\nRun with --repair to reassign duplicate and unset ids.")
		}
		return nil
	},
}

// repairIDs rewrites every collection that has id issues. Missing field
// and unreadable findings are left for the CSV review workflow.
func repairIDs(store *bank.Store, issues []integrity.Issue) error {
	needsRepair := make(map[string]bool)
	for _, issue := range issues {
		if issue.State == integrity.StateDuplicateID || issue.State == integrity.StateUnsetID {
			needsRepair[issue.File] = true
		}
	}

	keys, err := store.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if !needsRepair[k.Filename()] {
			continue
		}
		changed, err := integrity.Repair(store, k)
		if err != nil {
			return err
		}
		fmt.Printf("Repaired %d ids in %s\n", changed, k.Filename())
	}
	return nil
}

func init() {
	checkCmd.Flags().Bool("repair", false, "Reassign duplicate and unset ids")
}
