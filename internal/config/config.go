// Package config loads the relay demo's YAML configuration into a
// tmi.Options, the way this corpus's original config package loaded a
// platform-and-upload configuration for its own demo command.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nduhart/tmigo/tmi"
)

// Config holds the relay demo's configuration.
type Config struct {
	Twitch     TwitchConfig     `yaml:"twitch"`
	Connection ConnectionConfig `yaml:"connection"`
	Trace      TraceConfig      `yaml:"trace"`
}

// TwitchConfig holds the identity and channel set to join.
type TwitchConfig struct {
	Username string   `yaml:"username"`
	OAuth    string   `yaml:"oauth"`
	Channels []string `yaml:"channels"`
}

// ConnectionConfig holds connection tuning overrides. Zero fields fall
// back to tmi.DefaultOptions.
type ConnectionConfig struct {
	Server                  string  `yaml:"server"`
	Port                    int     `yaml:"port"`
	Secure                  *bool   `yaml:"secure"`
	SkipMembership          bool    `yaml:"skip_membership"`
	PingIntervalSeconds     int     `yaml:"ping_interval_seconds"`
	PingTimeoutSeconds      int     `yaml:"ping_timeout_seconds"`
	JoinIntervalMillis      int     `yaml:"join_interval_millis"`
	ReconnectDecay          float64 `yaml:"reconnect_decay"`
	ReconnectIntervalMillis int     `yaml:"reconnect_interval_millis"`
	MaxReconnectAttempts    int     `yaml:"max_reconnect_attempts"`
}

// TraceConfig controls the opt-in debug wire tracer.
type TraceConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
	Debug     bool   `yaml:"debug"`
}

// Load reads and validates a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if oauth := os.Getenv("TWITCH_OAUTH"); oauth != "" {
		cfg.Twitch.OAuth = oauth
	}

	if cfg.Trace.OutputDir == "" {
		cfg.Trace.OutputDir = "./trace"
	}

	if cfg.Twitch.Username == "" {
		return nil, fmt.Errorf("twitch.username is required")
	}
	if cfg.Twitch.OAuth == "" {
		return nil, fmt.Errorf("twitch.oauth is required (or set TWITCH_OAUTH env var)")
	}
	if len(cfg.Twitch.Channels) == 0 {
		return nil, fmt.Errorf("at least one twitch channel is required")
	}

	return &cfg, nil
}

// ToOptions translates the loaded config into a tmi.Options, layering
// overrides onto tmi.DefaultOptions.
func (cfg *Config) ToOptions() tmi.Options {
	opts := tmi.DefaultOptions()

	opts.Identity = tmi.Identity{
		Username: cfg.Twitch.Username,
		Password: func() (string, error) { return cfg.Twitch.OAuth, nil },
	}
	opts.Channels = cfg.Twitch.Channels

	if cfg.Connection.Server != "" {
		opts.Server = cfg.Connection.Server
	}
	if cfg.Connection.Port != 0 {
		opts.Port = cfg.Connection.Port
	}
	if cfg.Connection.Secure != nil {
		opts.Secure = *cfg.Connection.Secure
	}
	opts.SkipMembership = cfg.Connection.SkipMembership
	if cfg.Connection.PingIntervalSeconds > 0 {
		opts.PingInterval = time.Duration(cfg.Connection.PingIntervalSeconds) * time.Second
	}
	if cfg.Connection.PingTimeoutSeconds > 0 {
		opts.PingTimeout = time.Duration(cfg.Connection.PingTimeoutSeconds) * time.Second
	}
	if cfg.Connection.JoinIntervalMillis > 0 {
		opts.JoinInterval = time.Duration(cfg.Connection.JoinIntervalMillis) * time.Millisecond
	}
	if cfg.Connection.ReconnectDecay > 0 {
		opts.ReconnectDecay = cfg.Connection.ReconnectDecay
	}
	if cfg.Connection.ReconnectIntervalMillis > 0 {
		opts.ReconnectInterval = time.Duration(cfg.Connection.ReconnectIntervalMillis) * time.Millisecond
	}
	opts.MaxReconnectAttempts = cfg.Connection.MaxReconnectAttempts
	opts.Debug = cfg.Trace.Debug

	return opts
}
