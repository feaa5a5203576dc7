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
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the clock equilibrium against VCG on a single instance",
	Long: `Runs both mechanisms on one instance and prints the full comparison:
the clock outcome table, the per-advertiser clock-vs-VCG prices, both
revenues and the equivalence verdict.

Example:
  clocksim compare --slots 2 --ctrs 1.0,0.6,0 --values 10,6,2`,
	RunE: runCompare,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(compareCmd)
	addInstanceFlags(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("compute vcg: %w", err)
	}

	r := report.Build(0, in, out, pricing)
	r.RenderConsole(os.Stdout)

	return nil
}
