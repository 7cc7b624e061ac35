// Package config wires viper-backed configuration for both binaries. A
// config.yaml in the working directory and SCHEDEXP_* environment variables
// override the defaults; nothing is required to exist.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SCHEDEXP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log_path", "./log")
	viper.SetDefault("verbose", false)
	viper.SetDefault("parsec.command", "parsecmgmt")
	viper.SetDefault("parsec.build_config", "gcc-hooks")
	viper.SetDefault("monitor.process_name", "parsecmgmt")
	viper.SetDefault("monitor.interval", 1.0)

	// A missing config file is not an error; defaults and env cover it.
	_ = viper.ReadInConfig()
}

// LogPath returns the configured log directory.
func LogPath() string {
	return viper.GetString("log_path")
}
