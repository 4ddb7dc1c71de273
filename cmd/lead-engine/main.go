// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lead-engine CLI.
package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/internal/logging"
	"github.com/pdiddy/lead-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// restoreLogger undoes logging.Init when the command finishes.
var restoreLogger = func() {}

// rootCmd is the base command for the lead-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "lead-engine",
	Short: "Discover and verify work emails and phones for sales leads",
	Long: `lead-engine finds a person's work email at a company. It reads known
contacts and the company cache first, falls back to web search for email
format statistics and the company's web presence, generates candidate
addresses and verifies them over DNS and SMTP.

Each building block is also a subcommand: verify, patterns, links and cache.
serve exposes the same operations over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadEnv(".env"); err != nil {
			return err
		}
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		restore, err := logging.Init(cfg.Log)
		if err != nil {
			return err
		}
		restoreLogger = restore

		if used := viper.ConfigFileUsed(); used != "" {
			zap.L().Debug("using config file", zap.String("path", used))
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			zap.L().Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		restoreLogger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./lead-engine.yaml or ~/.config/lead-engine/lead-engine.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")
	pf.String("data-dir", "", "directory holding the lead-engine database")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", pf.Lookup("log-format"))
	_ = viper.BindPFlag("store.data_dir", pf.Lookup("data-dir"))

	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lead-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lead-engine"))
		}
	}

	viper.SetEnvPrefix("LEAD_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
