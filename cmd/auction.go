package cmd

import (
	"fmt"
	"os"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/admarket/clocksim/internal/report"
	"github.com/admarket/clocksim/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var auctionCmd = &cobra.Command{
	Use:   "auction",
	Short: "Run the English clock on a single instance",
	Long: `Runs the generalized English auction clock on one instance and prints
the resulting allocation, per-click prices and drop-out history.

Example:
  clocksim auction --slots 2 --ctrs 1.0,0.6,0 --values 10,6,2`,
	RunE: runAuction,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(auctionCmd)
	addInstanceFlags(auctionCmd)
}

func runAuction(cmd *cobra.Command, args []string) error {
	in, err := instanceFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	out, err := auction.NewSimulator(logger).Run(in)
	if err != nil {
		return fmt.Errorf("run auction: %w", err)
	}

	pricing, err := auction.NewOracle(logger).Compute(in)
	if err != nil {
		return fmt.Errorf("compute vcg baseline: %w", err)
	}

	r := report.Build(0, in, out, pricing)
	r.RenderAuction(os.Stdout)

	fmt.Printf("Drop-out history: %v\n", out.History)

	return nil
}
