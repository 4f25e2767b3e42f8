package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/importer"
	"github.com/expensenote/expensenote/internal/ledger"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var source string
	var category string
	var dryRun bool
	var ruleArgs []string

	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Record transactions from a CSV file, or from every CSV in <data-dir>/import",
		Args:  cobra.MaximumNArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				formats := registry.Formats()
				sort.Strings(formats)
				return fmt.Errorf("unknown import format %q (want %s)", format, strings.Join(formats, ", "))
			}
			rules := append([]importer.MatchRule{}, a.cfg.Import.Rules...)
			for _, arg := range ruleArgs {
				rule, err := importer.ParseRule(arg)
				if err != nil {
					return err
				}
				rules = append(rules, rule)
			}
			imp := &csvImport{
				app:    a,
				cmd:    cmd,
				parser: parser,
				opts:   importer.Options{Location: a.loc, IncomeSource: source, ExpenseCategory: category, Rules: rules},
				dryRun: dryRun,
			}

			if len(args) == 1 {
				return imp.file(args[0])
			}
			return imp.scan(a.cfg.Storage.Path)
		}),
	}

	cmd.Flags().StringVar(&format, "format", "ledger", "CSV layout: ledger or chase")
	cmd.Flags().StringVar(&source, "source", importer.DefaultIncomeSource, "income source for rows that name none")
	cmd.Flags().StringVar(&category, "category", importer.DefaultExpenseCategory, "expense category for rows that name none")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without recording")
	cmd.Flags().StringArrayVar(&ruleArgs, "rule", nil, "[kind:]pattern=reference, tried after the config rules")

	return cmd
}

type csvImport struct {
	app    *app
	cmd    *cobra.Command
	parser importer.Parser
	opts   importer.Options
	dryRun bool
}

func (imp *csvImport) scan(dataDir string) error {
	files, err := importer.Scan(dataDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(imp.cmd.OutOrStdout(), "No CSV files to import")
		return nil
	}
	for _, f := range files {
		if err := imp.file(f.Path); err != nil {
			return err
		}
		if imp.dryRun {
			continue
		}
		if err := importer.MarkProcessed(dataDir, f.Name); err != nil {
			return err
		}
	}
	return nil
}

// file records every row of one file. Rows the ledger rejects are reported
// and skipped; a storage failure stops the import.
func (imp *csvImport) file(path string) error {
	rows, err := importer.ParseFile(imp.parser, path, imp.opts)
	if err != nil {
		return err
	}

	out := imp.cmd.OutOrStdout()
	added, skipped := 0, 0
	for _, row := range rows {
		if imp.dryRun {
			fmt.Fprintf(out, "line %d: %s %s %s\n", row.Line, row.Kind, formatAmount(row.Amount), row.CategoryOrSourceID)
			continue
		}
		_, err := imp.app.session.AddTransaction(imp.cmd.Context(), ledger.AddTransactionParams{
			Kind:               row.Kind,
			Amount:             row.Amount,
			CategoryOrSourceID: row.CategoryOrSourceID,
			Timestamp:          row.Timestamp,
			Note:               row.Note,
		})
		if ledger.IsValidation(err) {
			skipped++
			fmt.Fprintf(out, "line %d skipped: %v\n", row.Line, err)
			continue
		}
		if err != nil {
			return err
		}
		added++
	}

	imp.app.log.Info().Str("file", path).Int("added", added).Int("skipped", skipped).Msg("import finished")
	if imp.dryRun {
		fmt.Fprintf(out, "%s: %d rows parsed, nothing recorded\n", path, len(rows))
		return nil
	}
	fmt.Fprintf(out, "%s: %d added, %d skipped\n", path, added, skipped)
	return nil
}
