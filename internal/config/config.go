// Package config loads the server settings from flags, falling back to
// FOWCHESS_* environment variables and then to defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Addr                string
	AllowOrigins        []string
	LogLevel            string
	MatchmakingInterval time.Duration
}

func Default() Config {
	return Config{
		Addr:                ":3000",
		AllowOrigins:        []string{"http://localhost:5173"},
		LogLevel:            "info",
		MatchmakingInterval: time.Second,
	}
}

// Load parses args (without the program name) over the environment.
func Load(args []string) (Config, error) {
	return load(args, os.Getenv)
}

func load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	origins := strings.Join(cfg.AllowOrigins, ",")

	if v := getenv("FOWCHESS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("FOWCHESS_ALLOW_ORIGINS"); v != "" {
		origins = v
	}
	if v := getenv("FOWCHESS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("FOWCHESS_MATCHMAKING_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("FOWCHESS_MATCHMAKING_INTERVAL: %w", err)
		}
		cfg.MatchmakingInterval = d
	}

	fs := flag.NewFlagSet("fowchess", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&origins, "allow-origins", origins, "comma separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level")
	fs.DurationVar(&cfg.MatchmakingInterval, "matchmaking-interval", cfg.MatchmakingInterval, "how often queued players are paired")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.AllowOrigins = nil
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	if cfg.MatchmakingInterval <= 0 {
		return Config{}, fmt.Errorf("matchmaking interval must be positive, got %s", cfg.MatchmakingInterval)
	}
	return cfg, nil
}
