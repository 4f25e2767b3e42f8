package commands

import (
	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/buildinfo"
	"github.com/expensenote/expensenote/internal/clock"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(clock.System{})
}

func newRootCommand(c clock.Clock) *cobra.Command {
	opts := &rootOptions{clock: c}

	rootCmd := &cobra.Command{
		Use:     "expensenote",
		Short:   "Personal income and expense ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+defaultConfigHint()+")")
	flags.StringVar(&opts.dataDir, "data-dir", "", "data directory, overrides storage.path")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: file, sqlite or memory")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newStatusCommand(opts),
		newAddCommand(opts),
		newDeleteCommand(opts),
		newHistoryCommand(opts),
		newTotalsCommand(opts),
		newImportCommand(opts),
		newReportCommand(opts),
		newSourcesCommand(opts),
		newCategoriesCommand(opts),
		newSettingsCommand(opts),
		newPasswordCommand(opts),
		newNotifyCommand(opts),
	)

	return rootCmd
}
