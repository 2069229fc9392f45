package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mzaikin/foliowatch/internal/worker"
)

var (
	capturePortfolio string
	captureTimeout   time.Duration
	captureNoCache   bool
	captureNoRobots  bool
	captureInsecure  bool
	captureWorkers   int
	captureRPS       float64
)

// captureCmd represents the capture command
var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture homepage snapshots for all companies",
	Long: `Capture fetches each company's homepage, extracts the visible text,
computes a content checksum and stores the snapshot. Fetch failures are
recorded as error snapshots so the capture history stays complete.

With --portfolio, the roster file is imported (companies created or
updated) before capturing.

Example:
  foliowatch capture
  foliowatch capture --portfolio companies.yaml
  foliowatch capture --workers 8 --rps 2.0`,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().StringVar(&capturePortfolio, "portfolio", "", "portfolio YAML file to import before capturing")
	captureCmd.Flags().DurationVar(&captureTimeout, "timeout", 60*time.Second, "per-request HTTP timeout")
	captureCmd.Flags().BoolVar(&captureNoCache, "no-cache", false, "disable content cache (force fresh fetch)")
	captureCmd.Flags().BoolVar(&captureNoRobots, "no-robots", false, "skip robots.txt checks")
	captureCmd.Flags().BoolVar(&captureInsecure, "insecure", false, "skip TLS certificate verification")
	captureCmd.Flags().IntVar(&captureWorkers, "workers", 4, "concurrent company workers")
	captureCmd.Flags().Float64Var(&captureRPS, "rps", 1.0, "per-domain requests per second")
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	cfg.HTTP.Timeout = captureTimeout
	cfg.HTTP.InsecureTLS = captureInsecure
	cfg.HTTP.RespectRobots = !captureNoRobots
	cfg.Cache.Enabled = !captureNoCache
	cfg.Concurrency.CompanyWorkers = captureWorkers
	cfg.Concurrency.RequestsPerSecond = captureRPS

	p, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if capturePortfolio != "" {
		companies, err := worker.LoadCompaniesFile(capturePortfolio)
		if err != nil {
			return err
		}
		for _, company := range companies {
			if _, err := st.UpsertCompany(company); err != nil {
				return fmt.Errorf("import %s: %w", company.Name, err)
			}
		}
		fmt.Printf("imported %d companies\n", len(companies))
	}

	result, err := p.CaptureSnapshots(context.Background())
	if err != nil {
		return err
	}

	printSummary("capture", result)
	return nil
}
