package main

import (
	"fmt"

	"speedtests/internal/config"
	"speedtests/internal/dataset"
	"speedtests/internal/telemetry"

	"github.com/spf13/cobra"
)

// defaultSampleElements is the size the original speed tests were written for.
const defaultSampleElements = 10_000_000

func newGenCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)

	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Write a reproducible random sample file",
		Long: `Generates count pseudo-random int32 values from seed and writes them to the
sample path (--data) in native byte order, replacing any existing file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got: %d", count)
			}

			path := config.Current().DataPath
			sample := dataset.Generate(count, seed)
			if err := dataset.Write(appFs, path, sample); err != nil {
				return err
			}

			telemetry.LogInfo("Sample written", "path", path, "elements", sample.Len(), "seed", seed)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d values (%d bytes) to %s\n", sample.Len(), sample.Size(), path)
			return nil
		},
	}

	genCmd.Flags().IntVar(&count, "count", defaultSampleElements, "Number of values to generate")
	genCmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	return genCmd
}
