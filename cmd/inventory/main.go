// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the inventory CLI, the pipeline that
// builds and maintains the biodata resource inventory. Each pipeline stage
// is a subcommand: query, check-urls, classify, and store.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/k8hertweck/inventory-2022/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if v, ok := loadedSecrets[key]; ok && v != "" {
		return v
	}
	return fallback
}

// stageLogger builds the logger the stages use for debug messages. With
// --verbose it logs at Debug to stderr; otherwise it is a no-op.
func stageLogger() *zap.Logger {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// rootCmd is the base command for the inventory CLI.
var rootCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Biodata resource inventory pipeline",
	Long: `inventory curates a registry of biomedical data resources from the
literature. The pipeline queries EuropePMC for candidate articles, classifies
them with an external fine-tuned model, verifies and archives the URLs they
mention, and stores the finished inventory for querying.

Each pipeline stage is a subcommand: query, check-urls, classify, and store.
Stages exchange CSV tables, so they compose with shell tooling as well as
with each other.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./inventory.yaml or ~/.config/inventory/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "run with additional messages")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("inventory")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "inventory"))
		}
	}

	viper.SetEnvPrefix("INVENTORY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
