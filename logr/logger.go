// Package logr configures the structured logger shared by the daemon and the
// http host.
package logr

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

type (
	Config struct {
		Verbosity int
		Format    string
	}

	Format string
)

// LoadConfigFromFlags adds flags to the given flagset, and, after the flagset
// is parsed by the caller, the flags populate the config.
func LoadConfigFromFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.IntVarP(&cfg.Verbosity, "v", "v", 0, "Logging level")
	flags.StringVar(&cfg.Format, "log-format", string(TextFormat), "Logging format: text or json")
}

// New constructs a logger that satisfies the logr interface.
func New(cfg *Config) (logr.Logger, error) {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg *Config, w io.Writer) (logr.Logger, error) {
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Verbosity)}

	var h slog.Handler
	switch Format(cfg.Format) {
	case TextFormat:
		h = slog.NewTextHandler(w, opts)
	case JSONFormat:
		h = slog.NewJSONHandler(w, opts)
	default:
		return logr.Logger{}, fmt.Errorf("unrecognised logging format: %s", cfg.Format)
	}
	return logr.FromSlogHandler(h), nil
}

func Discard() logr.Logger { return logr.Discard() }

// toSlogLevel converts a logr v-level to a slog level.
func toSlogLevel(verbosity int) slog.Level {
	if verbosity <= 0 {
		return slog.LevelInfo
	}
	return slog.Level(-4 - (verbosity - 1))
}
