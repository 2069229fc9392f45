package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	detectLLM         bool
	detectLLMProvider string
	detectLLMModel    string
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect and classify changes between snapshots",
	Long: `Detect compares the latest two snapshots for every company, estimates
the change magnitude, extracts the added content and classifies its
business significance. Companies with fewer than two snapshots are
skipped.

With --llm, an advisory model re-validates non-trivial classifications;
its opinion is recorded but never overrides the keyword result.

Example:
  foliowatch detect
  foliowatch detect --llm --llm-provider anthropic`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolVar(&detectLLM, "llm", false, "enable advisory LLM validation")
	detectCmd.Flags().StringVar(&detectLLMProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	detectCmd.Flags().StringVar(&detectLLMModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	if detectLLM {
		if err := configureLLM(cfg, detectLLMProvider, detectLLMModel); err != nil {
			return err
		}
	}

	p, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	result, err := p.DetectChanges(context.Background())
	if err != nil {
		return err
	}

	printSummary("detect", result)
	return nil
}
