package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"speedtests/internal/benchmark"
	"speedtests/internal/config"
	"speedtests/internal/db"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var last bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List runs stored with --save",
		Long: `Lists the runs stored in the history database. With --last, replays the
per-repetition lines of the most recent run exactly as they were printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := storeConfig(config.Current())

			// Listing must not create an empty database.
			has, err := db.HasHistory(cfg)
			if err != nil {
				return fmt.Errorf("failed to check history store: %w", err)
			}
			if !has {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
				return nil
			}

			store, err := newStoreFunc(cfg)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer store.Close()

			if last {
				run, err := store.LoadLatest()
				if err != nil {
					return fmt.Errorf("failed to load latest run: %w", err)
				}
				if run == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
					return nil
				}
				printRunLines(cmd, *run)
				return nil
			}

			runs, err := store.LoadAll()
			if err != nil {
				return fmt.Errorf("failed to load runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
				return nil
			}
			printRuns(cmd, runs)
			return nil
		},
	}

	historyCmd.Flags().BoolVar(&last, "last", false, "Replay the lines of the most recent run")
	historyCmd.Flags().String("store", "sqlite", "History backend: sqlite, postgres or json")
	historyCmd.Flags().String("dsn", db.DefaultSQLitePath, "History database path or connection string")
	return historyCmd
}

func printRuns(cmd *cobra.Command, runs []benchmark.Run) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tVARIANT\tPOLICY\tSOURCE\tELEMENTS\tREPEATS\tRESULT")
	for _, r := range runs {
		result := "-"
		if len(r.Results) > 0 {
			result = r.Results[0].Total
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.Timestamp.Format(time.RFC3339), r.Variant, r.Policy, r.Source, r.Elements, len(r.Results), result)
	}
	w.Flush()
}

func printRunLines(cmd *cobra.Command, run benchmark.Run) {
	fmt.Fprintf(cmd.OutOrStdout(), "# %s %s (%s, %d elements)\n",
		run.Timestamp.Format(time.RFC3339), run.Variant, run.Source, run.Elements)
	for _, r := range run.Results {
		elapsed := time.Duration(r.Seconds * float64(time.Second))
		fmt.Fprintln(cmd.OutOrStdout(), benchmark.FormatLine("result", r.Total, elapsed))
	}
}
