package main

import (
	"fmt"
	"strings"

	"speedtests/internal/benchmark"
	"speedtests/internal/config"
	"speedtests/internal/dataset"
	"speedtests/internal/db"
	"speedtests/internal/reduce"
	"speedtests/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Time repeated sum-of-squares reductions over the sample",
		Long: `Loads the sample once, then computes the sum of squares with the chosen
variant the configured number of times (10 by default). Every repetition is
timed on its own and printed immediately; nothing is warmed up or averaged.`,
		Args: cobra.NoArgs,
		RunE: runBenchmark,
	}
	addRunFlags(runCmd.Flags())
	return runCmd
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.IntP("repeats", "n", benchmark.DefaultRepeats, "Number of timed repetitions")
	flags.String("variant", "loop", "Reduction variant: "+strings.Join(reduce.Names(), ", "))
	flags.String("policy", "exact", "Overflow policy: exact, wrap, wrap32 or checked")
	flags.Bool("save", false, "Store the run in the history database")
	flags.String("store", "sqlite", "History backend: sqlite, postgres or json")
	flags.String("dsn", db.DefaultSQLitePath, "History database path or connection string")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file when done")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	s := config.Current()

	variant, err := reduce.Lookup(s.Variant)
	if err != nil {
		return err
	}
	policy, err := reduce.ParsePolicy(s.Policy)
	if err != nil {
		return err
	}

	sample, err := dataset.Load(appFs, s.DataPath)
	if err != nil {
		telemetry.LogError("Failed to load sample", err, "path", s.DataPath)
		return err
	}
	telemetry.LogInfo("Sample loaded",
		"path", s.DataPath,
		"elements", sample.Len(),
		"variant", variant.Name,
		"policy", policy.String(),
		"warmup_cost", variant.WarmupCost,
	)

	metrics := telemetry.NewMetrics()
	metrics.SetSampleElements(sample.Len())

	records, runErr := benchmark.Measure[reduce.Total](
		variant.New(sample, policy),
		s.Repeats,
		benchmark.WithOutput(cmd.OutOrStdout()),
		benchmark.WithObserver(metrics.Observer(variant.Name)),
	)
	if runErr != nil {
		metrics.TrackFailure(variant.Name)
		runErr = fmt.Errorf("%s aborted after %d of %d repetitions: %w", variant.Name, len(records), s.Repeats, runErr)
	}

	if s.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.MetricsFile); err != nil {
			telemetry.LogError("Failed to write metrics", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	if s.HistoryEnabled {
		run := benchmark.NewRun(variant.Name, policy.String(), s.DataPath, sample.Len(), records)
		if err := saveRun(s, run); err != nil {
			return err
		}
	}

	return nil
}

func saveRun(s config.Settings, run benchmark.Run) error {
	store, err := newStoreFunc(storeConfig(s))
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	if err := store.Save(run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	telemetry.LogInfo("Run saved", "store", s.HistoryType, "repetitions", len(run.Results))
	return nil
}

func storeConfig(s config.Settings) db.StoreConfig {
	return db.StoreConfig{Type: s.HistoryType, ConnectionString: s.HistoryDSN, Fs: appFs}
}
