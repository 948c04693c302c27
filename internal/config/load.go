package config

import (
	"fmt"
	"os"
	"strings"

	"speedtests/internal/benchmark"
	"speedtests/internal/dataset"
	"speedtests/internal/db"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDataPath       = "data.path"
	KeyRepeats        = "bench.repeats"
	KeyVariant        = "bench.variant"
	KeyPolicy         = "bench.policy"
	KeyHistoryEnabled = "history.enabled"
	KeyHistoryType    = "history.type"
	KeyHistoryDSN     = "history.dsn"
	KeyMetricsFile    = "metrics.file"
	KeyVerbose        = "verbose"
	KeyLogFile        = "log_file"
)

// EnvPrefix is prepended to environment overrides, e.g. SPEEDTESTS_BENCH_REPEATS.
const EnvPrefix = "SPEEDTESTS"

// Load initializes the configuration from file and environment variables.
// Without a config file every key keeps its default, which reproduces the
// original behavior: ten runs of the loop variant over data.int32.
func Load(cfgFile string) error {
	// A missing .env is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("speedtests")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault(KeyDataPath, dataset.DefaultPath)
	viper.SetDefault(KeyRepeats, benchmark.DefaultRepeats)
	viper.SetDefault(KeyVariant, "loop")
	viper.SetDefault(KeyPolicy, "exact")
	viper.SetDefault(KeyHistoryEnabled, false)
	viper.SetDefault(KeyHistoryType, "sqlite")
	viper.SetDefault(KeyHistoryDSN, db.DefaultSQLitePath)
	viper.SetDefault(KeyMetricsFile, "")
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyLogFile, "")
}

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	DataPath       string
	Repeats        int
	Variant        string
	Policy         string
	HistoryEnabled bool
	HistoryType    string
	HistoryDSN     string
	MetricsFile    string
	Verbose        bool
	LogFile        string
}

// Current reads the settings from viper.
func Current() Settings {
	return Settings{
		DataPath:       viper.GetString(KeyDataPath),
		Repeats:        viper.GetInt(KeyRepeats),
		Variant:        viper.GetString(KeyVariant),
		Policy:         viper.GetString(KeyPolicy),
		HistoryEnabled: viper.GetBool(KeyHistoryEnabled),
		HistoryType:    viper.GetString(KeyHistoryType),
		HistoryDSN:     viper.GetString(KeyHistoryDSN),
		MetricsFile:    viper.GetString(KeyMetricsFile),
		Verbose:        viper.GetBool(KeyVerbose),
		LogFile:        viper.GetString(KeyLogFile),
	}
}
