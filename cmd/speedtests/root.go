package main

import (
	"fmt"
	"os"

	"speedtests/internal/benchmark"
	"speedtests/internal/config"
	"speedtests/internal/dataset"
	"speedtests/internal/db"
	"speedtests/internal/telemetry"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	exit = os.Exit

	// appFs is the filesystem sample files are read from and written to.
	appFs = afero.NewOsFs()

	newStoreFunc = func(cfg db.StoreConfig) (benchmark.Store, error) { return db.NewStore(cfg) }
)

// newRootCmd builds the command tree. Running it without a subcommand
// behaves like "run".
func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "speedtests",
		Short: "Time a sum-of-squares reduction over a file of int32 values",
		Long: `speedtests loads a flat file of native-endian 32-bit integers and times
the sum of their squares, computed either with a plain loop, a lazy
map/fold pipeline, or a staged loop that pays a setup cost on its first call.
Each repetition prints one line: result = N (S seconds).`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(cmd.Flags(), flagKeys)
			if err := config.Load(cfgFile); err != nil {
				return err
			}
			s := config.Current()
			telemetry.InitLogger(s.Verbose, s.LogFile)
			return config.ValidateConfig()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./speedtests.yaml)")
	flags.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	flags.String("log-file", "", "Also write logs to this file")
	flags.StringP("data", "d", dataset.DefaultPath, "Sample file of native-endian int32 values")

	addRunFlags(rootCmd.Flags())
	rootCmd.RunE = runBenchmark

	rootCmd.AddCommand(
		newRunCmd(),
		newVerifyCmd(),
		newGenCmd(),
		newHistoryCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"verbose":      config.KeyVerbose,
	"log-file":     config.KeyLogFile,
	"data":         config.KeyDataPath,
	"repeats":      config.KeyRepeats,
	"variant":      config.KeyVariant,
	"policy":       config.KeyPolicy,
	"save":         config.KeyHistoryEnabled,
	"store":        config.KeyHistoryType,
	"dsn":          config.KeyHistoryDSN,
	"metrics-file": config.KeyMetricsFile,
}

// bindFlags binds each flag present in flags to its viper key.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if f := flags.Lookup(name); f != nil {
			viper.BindPFlag(key, f)
		}
	}
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
