package config

import (
	"fmt"
	"slices"
	"strings"

	"speedtests/internal/db"
	"speedtests/internal/reduce"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.GetString(KeyDataPath) == "" {
		errors = append(errors, fmt.Sprintf("%s must not be empty", KeyDataPath))
	}

	if repeats := viper.GetInt(KeyRepeats); repeats <= 0 {
		errors = append(errors, fmt.Sprintf("%s must be positive, got: %d", KeyRepeats, repeats))
	}

	if variant := viper.GetString(KeyVariant); !slices.Contains(reduce.Names(), variant) {
		errors = append(errors, fmt.Sprintf("%s must be one of %s, got: %q",
			KeyVariant, strings.Join(reduce.Names(), ", "), variant))
	}

	if _, err := reduce.ParsePolicy(viper.GetString(KeyPolicy)); err != nil {
		errors = append(errors, fmt.Sprintf("%s: %v", KeyPolicy, err))
	}

	if viper.GetBool(KeyHistoryEnabled) {
		storeType := strings.ToLower(viper.GetString(KeyHistoryType))
		if !db.KnownStoreType(storeType) {
			errors = append(errors, fmt.Sprintf("%s must be one of %s, got: %q",
				KeyHistoryType, strings.Join(db.StoreTypes(), ", "), storeType))
		}
		if viper.GetString(KeyHistoryDSN) == "" && !strings.HasPrefix(storeType, "sqlite") {
			errors = append(errors, fmt.Sprintf("%s is required for %s history", KeyHistoryDSN, storeType))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
