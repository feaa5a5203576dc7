package cmd

import (
	"fmt"

	"github.com/admarket/clocksim/internal/app"
	"github.com/admarket/clocksim/pkg/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a batch of simulated auctions",
	Long: `Runs a batch of auction trials. Each trial samples slot CTRs and
advertiser values from the configured distributions, runs the English
clock and the VCG oracle on the same instance and stores a comparison
report through the configured sink (console, CSV or JSON lines).

Configuration comes from the environment (optionally a .env file); the
flags below override it. A metrics/health HTTP server runs for the
duration of the batch unless --no-http is given.`,
	RunE: runBatch,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntP("trials", "t", 0, "Number of trials (overrides SIM_TRIALS)")
	runCmd.Flags().Int("workers", 0, "Worker pool size (overrides SIM_WORKERS)")
	runCmd.Flags().Int("slots", 0, "Slots per sampled instance (overrides SIM_SLOTS)")
	runCmd.Flags().Int("advertisers", 0, "Advertisers per sampled instance (overrides SIM_ADVERTISERS)")
	runCmd.Flags().Uint64("seed", 0, "Base RNG seed (overrides SIM_SEED)")
	runCmd.Flags().String("dist", "", "Value distribution: gamma, uniform or normal (overrides SIM_VALUE_DIST)")
	runCmd.Flags().String("storage", "", "Report sink: console, csv or jsonl (overrides STORAGE_MODE)")
	runCmd.Flags().StringP("output", "o", "", "Output path for csv/jsonl sinks (overrides STORAGE_OUTPUT_PATH)")
	runCmd.Flags().Bool("no-http", false, "Disable the metrics/health HTTP server")
}

func runBatch(cmd *cobra.Command, args []string) error {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	err = applyBatchFlags(cmd, cfg)
	if err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	noHTTP, _ := cmd.Flags().GetBool("no-http")

	application, err := app.New(cfg, logger, &app.Options{DisableHTTP: noHTTP})
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}

func applyBatchFlags(cmd *cobra.Command, cfg *config.Config) error {
	if v, _ := cmd.Flags().GetInt("trials"); v > 0 {
		cfg.SimTrials = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.SimWorkers = v
	}
	if v, _ := cmd.Flags().GetInt("slots"); v > 0 {
		cfg.SimSlots = v
	}
	if v, _ := cmd.Flags().GetInt("advertisers"); v > 0 {
		cfg.SimAdvertisers = v
	}
	if v, _ := cmd.Flags().GetUint64("seed"); v > 0 {
		cfg.SimSeed = v
	}
	if v, _ := cmd.Flags().GetString("dist"); v != "" {
		cfg.SimValueDist = v
	}
	if v, _ := cmd.Flags().GetString("storage"); v != "" {
		cfg.StorageMode = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputPath = v
	}

	return cfg.Validate()
}
