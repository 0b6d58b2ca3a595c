package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/config"
	"github.com/cleared-dev/ledgerview/internal/forest"
)

const (
	defaultConfigFile   = "ledgerview.yaml"
	defaultAccountsFile = "accounts.csv"
)

// loadConfig resolves the effective configuration: the dotenv file, then
// ledgerview.yaml (or defaults when the default path is absent), then the
// environment, then --strict.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.configPath)
	switch {
	case err == nil:
		// Source paths in the file are relative to the file.
		if cfg.Source.Path != "" && !filepath.IsAbs(cfg.Source.Path) {
			cfg.Source.Path = filepath.Join(filepath.Dir(opts.configPath), cfg.Source.Path)
		}
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		cfg = config.Default()
	default:
		return nil, err
	}

	config.ApplyEnv(cfg)
	if opts.strict {
		cfg.Source.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the slog logger described by cfg, writing to w.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	hopts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// session is the config, logger and forest a read-only command works on.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	forest *forest.Forest
}

// openSession loads config, builds the logger on stderr and loads the forest
// from the configured source.
func openSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	f, err := loadForest(cmd.Context(), cfg.Source, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, forest: f}, nil
}

func loadForest(ctx context.Context, cfg config.SourceConfig, logger *slog.Logger) (*forest.Forest, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	src, closeSource, err := accounts.NewSource(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Warn("closing account source", "error", err)
		}
	}()

	f, err := accounts.Load(ctx, src, cfg.Strict)
	if err != nil {
		return nil, err
	}
	for _, n := range f.Orphans() {
		logger.Warn("account parent not found", "id", n.ID, "parent", n.ParentID)
	}
	logger.Debug("accounts loaded", "source", cfg.Kind, "accounts", f.Len(), "orphans", len(f.Orphans()))
	return f, nil
}
