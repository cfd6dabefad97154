package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/dronecbt/internal/config"
	"github.com/abhisek/dronecbt/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM provider configuration",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which provider and model the environment resolves to",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := config.SetupLogging(cmd)

		provider, err := llm.NewProviderFromEnv(cmd.Context(), logger)
		if err != nil {
			fmt.Println("No LLM provider configured.")
			fmt.Println("Set GEMINI_API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY or OPENROUTER_API_KEY,")
			fmt.Println("or configure DRONECBT_LLM_PROVIDER explicitly.")
			return err
		}

		model := provider.ModelID()
		fmt.Println("Model:", model)
		if cost := llm.LookupCost(model); cost != nil {
			fmt.Printf("Pricing: $%.2f in / $%.2f out per 1M tokens\n",
				cost.InputPerMTok, cost.OutputPerMTok)
		} else {
			fmt.Println("Pricing: unknown model, cost estimates unavailable")
		}
		return nil
	},
}

var llmCostCmd = &cobra.Command{
	Use:   "cost <model> <input-tokens> <output-tokens>",
	Short: "Estimate the USD cost of a token count for a model",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		model := args[0]
		in, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid input token count %q: %w", args[1], err)
		}
		out, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid output token count %q: %w", args[2], err)
		}

		cost := llm.LookupCost(model)
		if cost == nil {
			return fmt.Errorf("no pricing data for model %q", model)
		}

		fmt.Println(formatCost(cost.Cost(in, out)))
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmCostCmd)
}
