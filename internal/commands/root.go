package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerview/internal/buildinfo"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	envFile    string
	strict     bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "ledgerview",
		Short:   "Browse a chart of accounts as trees, tables and treemaps",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", defaultConfigFile, "path to ledgerview.yaml")
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")
	pf.BoolVar(&opts.strict, "strict", false, "fail when an account's parent is missing")

	rootCmd.AddCommand(
		newInitCommand(),
		newTableCommand(opts),
		newTreeCommand(opts),
		newPathCommand(opts),
		newTreemapCommand(opts),
		newExportCommand(opts),
		newServeCommand(opts),
	)

	return rootCmd
}
