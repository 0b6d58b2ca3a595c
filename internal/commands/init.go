package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/config"
	"github.com/cleared-dev/ledgerview/internal/gitops"
)

const defaultDatabaseFile = "accounts.db"

func newInitCommand() *cobra.Command {
	var sourceKind string
	var withGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerview project with the sample chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, cmd.OutOrStdout(), absDir, config.SourceKind(sourceKind), withGit)
		},
	}

	cmd.Flags().StringVar(&sourceKind, "source", string(config.SourceCSV), "account source to configure: csv or sqlite")
	cmd.Flags().BoolVar(&withGit, "git", false, "initialize a git repository and commit the project")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, kind config.SourceKind, withGit bool) error {
	if kind != config.SourceCSV && kind != config.SourceSQLite {
		return fmt.Errorf("unsupported source %q for init", kind)
	}

	cfgPath := filepath.Join(dir, defaultConfigFile)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	chart := accounts.SampleChart()

	// Write accounts.csv.
	if err := accounts.SaveCSV(filepath.Join(dir, defaultAccountsFile), chart); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	cfg := config.Default()
	cfg.Source = config.SourceConfig{Kind: config.SourceCSV, Path: defaultAccountsFile}
	if kind == config.SourceSQLite {
		cfg.Source = config.SourceConfig{Kind: config.SourceSQLite, Path: defaultDatabaseFile}
		if err := seedDatabase(ctx, filepath.Join(dir, defaultDatabaseFile)); err != nil {
			return err
		}
	}

	// Write ledgerview.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if withGit {
		if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\n"), 0o644); err != nil {
			return fmt.Errorf("writing .gitignore: %w", err)
		}
		if err := gitops.Init(ctx, dir); err != nil {
			return err
		}
		hash, err := gitops.CommitAll(ctx, dir, "init: ledgerview project", gitops.DefaultIdentity)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Fprintf(out, "Initialized ledgerview project at %s (%s)\n", dir, hash)
		return nil
	}

	fmt.Fprintf(out, "Initialized ledgerview project at %s\n", dir)
	return nil
}

func seedDatabase(ctx context.Context, path string) error {
	db, err := accounts.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := accounts.Insert(ctx, db, accounts.SampleChart()); err != nil {
		return fmt.Errorf("seeding %s: %w", path, err)
	}
	return nil
}
