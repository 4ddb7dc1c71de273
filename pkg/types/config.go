// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "lead-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the web search collaborator.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the maximum number of items requested per query (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// EnableGoogle controls whether the Google Custom Search backend is used.
	// It also requires GoogleAPIKey and GoogleCSEID.
	EnableGoogle bool `json:"enable_google" yaml:"enable_google" mapstructure:"enable_google"`

	// EnableDuckDuckGo controls whether the DuckDuckGo HTML backend is used.
	EnableDuckDuckGo bool `json:"enable_duckduckgo" yaml:"enable_duckduckgo" mapstructure:"enable_duckduckgo"`

	GoogleAPIKey string `json:"google_api_key,omitempty" yaml:"google_api_key,omitempty" mapstructure:"google_api_key"`
	GoogleCSEID  string `json:"google_cse_id,omitempty" yaml:"google_cse_id,omitempty" mapstructure:"google_cse_id"`
}

// WithDefaults returns a copy with zero fields filled in.
func (c SearchConfig) WithDefaults() SearchConfig {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "lead-engine/0.1"
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 10
	}
	return c
}

// VerifyConfig holds settings for the email verification pipeline.
type VerifyConfig struct {
	// DNSTimeout bounds a single MX lookup (default 5s).
	DNSTimeout time.Duration `json:"dns_timeout" yaml:"dns_timeout" mapstructure:"dns_timeout"`

	// SMTPTimeout bounds a single mailbox probe, dial included (default 10s).
	SMTPTimeout time.Duration `json:"smtp_timeout" yaml:"smtp_timeout" mapstructure:"smtp_timeout"`

	// SMTPPort is the port dialed on the mail exchanger (default 25).
	SMTPPort int `json:"smtp_port" yaml:"smtp_port" mapstructure:"smtp_port"`

	// HeloName is the name announced in EHLO (default "localhost").
	HeloName string `json:"helo_name" yaml:"helo_name" mapstructure:"helo_name"`

	// MailFrom is the envelope sender used in the probe.
	MailFrom string `json:"mail_from" yaml:"mail_from" mapstructure:"mail_from"`

	// ProbesPerSecond paces mailbox probes across the process. <=0 disables pacing.
	ProbesPerSecond float64 `json:"probes_per_second" yaml:"probes_per_second" mapstructure:"probes_per_second"`
}

// WithDefaults returns a copy with zero fields filled in.
func (c VerifyConfig) WithDefaults() VerifyConfig {
	if c.DNSTimeout <= 0 {
		c.DNSTimeout = 5 * time.Second
	}
	if c.SMTPTimeout <= 0 {
		c.SMTPTimeout = 10 * time.Second
	}
	if c.SMTPPort <= 0 {
		c.SMTPPort = 25
	}
	if c.HeloName == "" {
		c.HeloName = "localhost"
	}
	if c.MailFrom == "" {
		c.MailFrom = "verify@" + c.HeloName
	}
	return c
}

// StoreConfig holds settings for the SQLite store.
type StoreConfig struct {
	// DataDir is the directory holding the database file.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// DiscoveryConfig holds settings for the discovery orchestrator.
type DiscoveryConfig struct {
	// AdminOwner is the owner id whose known contacts are preferred.
	AdminOwner string `json:"admin_owner" yaml:"admin_owner" mapstructure:"admin_owner"`

	// Timeout is the overall deadline for one discovery (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// WithDefaults returns a copy with zero fields filled in.
func (c DiscoveryConfig) WithDefaults() DiscoveryConfig {
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
	return c
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LogConfig selects the log level (debug, info, warn, error) and format (json, console).
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all component configurations.
type Config struct {
	Search    SearchConfig    `json:"search" yaml:"search" mapstructure:"search"`
	Verify    VerifyConfig    `json:"verify" yaml:"verify" mapstructure:"verify"`
	Store     StoreConfig     `json:"store" yaml:"store" mapstructure:"store"`
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery" mapstructure:"discovery"`
	Server    ServerConfig    `json:"server" yaml:"server" mapstructure:"server"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
