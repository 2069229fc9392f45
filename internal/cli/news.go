package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	newsCompany     string
	newsLLM         bool
	newsLLMProvider string
	newsLLMModel    string
)

// newsCmd represents the news command
var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Search for news about portfolio companies",
	Long: `News queries the Kagi Search API for each company, scoped to the
period since its oldest snapshot (or the last 90 days). Each candidate
article is verified against the company through weighted signals -
domain match, name-in-business-context, logo hash and optional LLM
verification - and stored with a significance assessment when the
combined confidence reaches the acceptance threshold.

Requires KAGI_API_KEY.

Example:
  foliowatch news
  foliowatch news --company "Acme Robotics"
  foliowatch news --llm --llm-provider anthropic`,
	RunE: runNews,
}

func init() {
	rootCmd.AddCommand(newsCmd)

	newsCmd.Flags().StringVar(&newsCompany, "company", "", "search a single company by name")
	newsCmd.Flags().BoolVar(&newsLLM, "llm", false, "enable LLM article verification")
	newsCmd.Flags().StringVar(&newsLLMProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	newsCmd.Flags().StringVar(&newsLLMModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runNews(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("KAGI_API_KEY environment variable not set")
	}

	if newsLLM {
		if err := configureLLM(cfg, newsLLMProvider, newsLLMModel); err != nil {
			return err
		}
	}

	p, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()

	if newsCompany != "" {
		company, err := st.GetCompanyByName(newsCompany)
		if err != nil {
			return fmt.Errorf("company not found: %s", newsCompany)
		}
		result, err := p.SearchNewsForCompany(ctx, *company)
		if err != nil {
			return err
		}
		fmt.Printf("news %s: found=%d stored=%d\n",
			company.Name, result.ArticlesFound, result.ArticlesStored)
		return nil
	}

	result, err := p.SearchNewsAll(ctx)
	if err != nil {
		return err
	}

	printSummary("news", result)
	return nil
}
