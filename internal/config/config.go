// Package config holds the site defaults of gocrane: viper defaults,
// an optional config file, an optional .env file and GOCRANE_ environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyLogLevel           = "logLevel"
	KeyDefaultCrane       = "crane.default"
	KeyGroundSoil         = "ground.soil"
	KeyGroundSafetyFactor = "ground.safetyFactor"
	KeyGroundPadDiameter  = "ground.padDiameter"
	KeySwingSteps         = "swing.steps"
	KeyClearanceMargin    = "clearance.margin"
)

// EnvPrefix is prepended to every environment override,
// e.g. GOCRANE_GROUND_SOIL
const EnvPrefix = "GOCRANE"

// SetDefaults registers the default of every key
func SetDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyDefaultCrane, "liebherr_ltm_1100_5_2")

	viper.SetDefault(KeyGroundSoil, "medium_sand")
	viper.SetDefault(KeyGroundSafetyFactor, 2.0)
	viper.SetDefault(KeyGroundPadDiameter, 0.6)

	viper.SetDefault(KeySwingSteps, 36)
	viper.SetDefault(KeyClearanceMargin, 0.5)
}

// Load sets the defaults, reads .env from the working directory when
// present, binds GOCRANE_ environment variables and reads the config file.
// An explicit file must exist; otherwise gocrane.(yaml|json|toml) is looked
// up in the working directory and $HOME/.gocrane and may be absent.
func Load(file string) error {
	SetDefaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading .env: %v", err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %v", err)
		}
		return nil
	}

	viper.SetConfigName("gocrane")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".gocrane"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %v", err)
		}
	}
	return nil
}

// Used returns the config file in use, or "" when running on defaults
func Used() string {
	return viper.ConfigFileUsed()
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}
