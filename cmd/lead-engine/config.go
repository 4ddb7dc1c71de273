// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lead-engine/internal/discover"
	"github.com/pdiddy/lead-engine/internal/search"
	"github.com/pdiddy/lead-engine/internal/secrets"
	"github.com/pdiddy/lead-engine/internal/store"
	"github.com/pdiddy/lead-engine/internal/verify"
	"github.com/pdiddy/lead-engine/pkg/types"
)

// setDefaults registers every config key so viper can bind it to the
// environment (LEAD_ENGINE_SEARCH_GOOGLE_API_KEY and so on).
func setDefaults() {
	viper.SetDefault("search.timeout", 15*time.Second)
	viper.SetDefault("search.user_agent", "lead-engine/"+version)
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.enable_google", true)
	viper.SetDefault("search.enable_duckduckgo", true)
	viper.SetDefault("search.google_api_key", "")
	viper.SetDefault("search.google_cse_id", "")

	viper.SetDefault("verify.dns_timeout", 5*time.Second)
	viper.SetDefault("verify.smtp_timeout", 10*time.Second)
	viper.SetDefault("verify.smtp_port", 25)
	viper.SetDefault("verify.helo_name", "")
	viper.SetDefault("verify.mail_from", "")
	viper.SetDefault("verify.probes_per_second", 2.0)

	viper.SetDefault("store.data_dir", "data")

	viper.SetDefault("discovery.admin_owner", "")
	viper.SetDefault("discovery.timeout", 2*time.Minute)

	viper.SetDefault("server.addr", ":8080")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// loadConfig reads the merged viper configuration and fills gaps from
// secrets.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, eris.Wrap(err, "decoding configuration")
	}
	secrets.Apply(&cfg, loadedSecrets)

	cfg.Search = cfg.Search.WithDefaults()
	cfg.Verify = cfg.Verify.WithDefaults()
	cfg.Discovery = cfg.Discovery.WithDefaults()
	return cfg, nil
}

// app holds the collaborators a command needs. Close releases them.
type app struct {
	cfg          types.Config
	store        *store.Store
	verifier     *verify.Pipeline
	orchestrator *discover.Orchestrator
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	v := verify.New(verify.NewNetResolver(cfg.Verify.DNSTimeout), verify.NewSMTPProber(cfg.Verify))
	agg := search.NewAggregator(cfg.Search, search.FromConfig(cfg.Search)...)

	return &app{
		cfg:          cfg,
		store:        st,
		verifier:     v,
		orchestrator: discover.New(agg, v, st, cfg.Discovery),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// newVerifier builds only the verification pipeline; verify needs no store.
func newVerifier() (*verify.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return verify.New(verify.NewNetResolver(cfg.Verify.DNSTimeout), verify.NewSMTPProber(cfg.Verify)), nil
}

// printOut writes v as YAML, or indented JSON when asJSON is set.
func printOut(w io.Writer, v any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
