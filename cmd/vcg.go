package cmd

import (
	"fmt"

	"github.com/admarket/clocksim/internal/auction"
	"github.com/admarket/clocksim/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var vcgCmd = &cobra.Command{
	Use:   "vcg",
	Short: "Compute VCG per-click payments for a single instance",
	Long: `Computes the value-maximizing allocation and the VCG per-click payment
for each allocated advertiser.

Example:
  clocksim vcg --slots 2 --ctrs 1.0,0.6,0 --values 10,6,2`,
	RunE: runVCG,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(vcgCmd)
	addInstanceFlags(vcgCmd)
}

func runVCG(cmd *cobra.Command, args []string) error {
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

	pricing, err := auction.NewOracle(logger).Compute(in)
	if err != nil {
		return fmt.Errorf("compute vcg: %w", err)
	}

	fmt.Println("Slot | Advertiser |  Value | VCG Price")
	fmt.Println("---------------------------------------")
	for slot, adv := range pricing.Allocation {
		if adv == auction.Unassigned {
			fmt.Printf("%4d | %10s | %6s | %9s\n", slot, "none", "-", "-")
			continue
		}
		fmt.Printf("%4d | %10d | %6.2f | %9.4f\n", slot, adv, in.Values[adv], pricing.Prices[adv])
	}

	return nil
}
