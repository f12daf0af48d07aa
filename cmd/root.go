// Package cmd is for command line interactions with the qpcr application
package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "qpcr",
	Short: `Analyze quantitative PCR data with the comparative Ct method.
Aggregate technical replicates, normalize against internal controls, and
compute fold changes relative to a calibrator (Livak & Schmittgen)`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set config defaults and read the settings file before any command runs
func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig seeds the defaults that every command's config is
// unmarshalled from and reads a settings file if one exists.
func initConfig() {
	viper.SetDefault("max-cq", 40.0)
	viper.SetDefault("min-replicates", 2)
	viper.SetDefault("confidence", 0.95)
	viper.SetDefault("sd-warn", 0.5)
	viper.SetDefault("undetermined", "drop")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".qpcr"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("settings")
	viper.SetConfigType("yaml")

	// the settings file is optional, defaults and flags cover everything
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read settings file: %v", err)
		}
	}
}
