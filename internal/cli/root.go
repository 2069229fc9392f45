// Package cli implements the foliowatch command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mzaikin/foliowatch/internal/logging"
	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/pipeline"
	"github.com/mzaikin/foliowatch/internal/store"
)

var (
	cfgFile string
	verbose bool
	dbPath  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "foliowatch",
	Short: "Foliowatch - portfolio company monitoring signals",
	Long: `Foliowatch monitors portfolio company web presences and turns raw
observations into decision-ready signals.

It captures homepage snapshots, detects and classifies content changes,
diffs leadership rosters, verifies news article relevance, and assesses
operational status - all persisted to a local SQLite database.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("foliowatch v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.foliowatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: data/foliowatch.db)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.foliowatch")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match FOLIOWATCH_*
	viper.SetEnvPrefix("FOLIOWATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the effective configuration from defaults, the
// config file, environment variables and global flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if path := viper.GetString("database.path"); path != "" {
		cfg.Database.Path = path
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if ua := viper.GetString("http.user_agent"); ua != "" {
		cfg.HTTP.UserAgent = ua
	}
	if dir := viper.GetString("cache.dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if base := viper.GetString("search.base_url"); base != "" {
		cfg.Search.BaseURL = base
	}
	if key := viper.GetString("search.api_key"); key != "" {
		cfg.Search.APIKey = key
	}
	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("KAGI_API_KEY")
	}

	cfg.HTTP.HTTPProxy = os.Getenv("HTTP_PROXY")
	cfg.HTTP.HTTPSProxy = os.Getenv("HTTPS_PROXY")
	cfg.HTTP.NoProxy = os.Getenv("NO_PROXY")

	cfg.Output.Verbose = verbose

	return cfg
}

// configureLLM fills in the LLM section from flags and provider key
// environment variables.
func configureLLM(cfg *model.Config, provider, modelName string) error {
	cfg.LLM.Provider = provider
	cfg.LLM.Model = modelName

	switch provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	case "":
		// LLM disabled
	default:
		return fmt.Errorf("unknown llm provider: %s", provider)
	}

	return nil
}

// openPipeline opens the store and builds a pipeline for a command run.
// The caller closes the returned store.
func openPipeline(cfg *model.Config) (*pipeline.Pipeline, *store.Store, error) {
	st, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	p, err := pipeline.New(cfg, st)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return p, st, nil
}

// printSummary renders a batch outcome in a consistent format
func printSummary(operation string, result *model.ExtractionResult) {
	fmt.Printf("%s: processed=%d successful=%d failed=%d skipped=%d\n",
		operation, result.Processed, result.Successful, result.Failed, result.Skipped)
	for _, note := range result.Errors {
		fmt.Printf("  %s: %s\n", note.Company, note.Error)
	}
}
