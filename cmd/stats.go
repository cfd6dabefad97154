package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show question stock per source and level",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := config.SetupLogging(cmd)
		cfg := config.Load(cmd)

		store, err := bank.NewStore(cfg.BankDir, logger)
		if err != nil {
			return fmt.Errorf("open question bank: %w", err)
		}

		stock, err := store.ListSources()
		if err != nil {
			return fmt.Errorf("scan question bank: %w", err)
		}
		if len(stock) == 0 {
			fmt.Println("No questions yet. Run: dronecbt generate")
			return nil
		}

		names := make([]string, 0, len(stock))
		for name := range stock {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("%-32s  %-8s  %6s\n", "Source", "Level", "Count")
		fmt.Println(strings.Repeat("─", 52))

		grand := 0
		for _, name := range names {
			st := stock[name]
			levels := make([]string, 0, len(st.ByLevel))
			for lvl := range st.ByLevel {
				levels = append(levels, lvl)
			}
			sort.Strings(levels)
			for i, lvl := range levels {
				label := ""
				if i == 0 {
					label = name
				}
				fmt.Printf("%-32s  %-8s  %6d\n", label, lvl, st.ByLevel[lvl])
			}
			grand += st.Total
		}
		fmt.Println(strings.Repeat("─", 52))
		fmt.Printf("%-32s  %-8s  %6d\n", "TOTAL", "", grand)
		return nil
	},
}
