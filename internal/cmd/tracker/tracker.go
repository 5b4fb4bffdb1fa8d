package tracker

import (
	"context"
	"flag"
	"strings"

	server "github.com/robertpope/devtrackr/internal/services/tracker/app"
)

// Config holds tracker command configuration.
type Config struct {
	Addr       string
	DBPath     string
	CORSOrigin string
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		Addr:       envOrDefault(lookup, "DEVTRACKR_ADDR", "localhost:8000"),
		DBPath:     envOrDefault(lookup, "DEVTRACKR_DB_PATH", "devtrackr.db"),
		CORSOrigin: envOrDefault(lookup, "DEVTRACKR_CORS_ORIGIN", "http://localhost:5173"),
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The tracker HTTP server address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the tracker sqlite database")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", cfg.CORSOrigin, "Allowed browser origin")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the tracker server.
func Run(ctx context.Context, cfg Config) error {
	return server.Run(ctx, server.Config{
		Addr:       cfg.Addr,
		DBPath:     cfg.DBPath,
		CORSOrigin: cfg.CORSOrigin,
	})
}

func envOrDefault(lookup EnvLookup, key, fallback string) string {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok {
		return fallback
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
