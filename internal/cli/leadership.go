package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzaikin/foliowatch/internal/model"
	"github.com/mzaikin/foliowatch/internal/pipeline"
)

var leadershipRoster string

// leadershipCmd represents the leadership command
var leadershipCmd = &cobra.Command{
	Use:   "leadership",
	Short: "Diff observed leadership rosters against stored ones",
	Long: `Leadership takes a roster file of externally extracted observations
(person name, title, stable profile identifier per company), filters
non-leadership titles, diffs each roster against the stored state and
reports typed change events: departures by role, new CEO arrivals and
other new leadership.

Example:
  foliowatch leadership --roster roster.yaml`,
	RunE: runLeadership,
}

func init() {
	rootCmd.AddCommand(leadershipCmd)

	leadershipCmd.Flags().StringVar(&leadershipRoster, "roster", "", "roster YAML file (required)")
	_ = leadershipCmd.MarkFlagRequired("roster")
}

func runLeadership(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	file, err := pipeline.LoadRosterFile(leadershipRoster)
	if err != nil {
		return err
	}

	p, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	report, err := p.ProcessRosters(context.Background(), file)
	if err != nil {
		return err
	}

	for company, changes := range report.Results {
		for _, change := range changes {
			if change.ChangeType == model.ChangeNone {
				continue
			}
			fmt.Printf("%s: %s %s (%s) severity=%s confidence=%.2f\n",
				company, change.ChangeType, change.PersonName, change.Title,
				change.Severity, change.Confidence)
		}
	}

	printSummary("leadership", &report.Summary)
	return nil
}
