package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var statusCompany string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Assess operational status from latest snapshots",
	Long: `Status inspects each company's most recent snapshot for operational
indicators - copyright year freshness, acquisition language, hiring
signals and HTTP Last-Modified age - and aggregates them into an
operational / likely_closed / uncertain assessment with a confidence
that grows as signals agree.

Example:
  foliowatch status
  foliowatch status --company "Acme Robotics"`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusCompany, "company", "", "assess a single company by name")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	p, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	result, err := p.AnalyzeStatus(context.Background(), statusCompany)
	if err != nil {
		return err
	}

	printSummary("status", result)
	return nil
}
