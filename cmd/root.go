package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "clocksim",
	Short: "Ad-slot auction clock simulator",
	Long: `clocksim simulates the generalized English (ascending-clock) auction for
advertising slots with descending click-through rates and compares its
equilibrium allocation and per-click prices against the VCG mechanism.

Single instances can be supplied on the command line; batch mode samples
random scenarios from configurable value distributions and aggregates the
clock-vs-VCG comparison across trials.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	// Flags can be added here if needed
}
