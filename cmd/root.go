package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dronecbt",
	Short: "CBT practice for the Japanese UAS written exam",
	Long:  "DroneCBT — terminal CBT trainer for the 無人航空機操縦士 written exam, backed by an AI-generated question bank.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("bank-dir", "", "Directory holding the question bank (default ~/.local/share/dronecbt)")
	pf.String("lang", "", "UI language: ja or en (default ja)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.Int("min-questions", 0, "Stock level below which exam setup warns (default 5)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
