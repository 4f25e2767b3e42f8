package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/model"
)

func newSourcesCommand(opts *rootOptions) *cobra.Command {
	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage income sources",
	}

	var all bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List income sources",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			resolver := a.session.Resolver()
			sources := resolver.VisibleSources()
			if all {
				sources = resolver.Sources()
			}
			lang := a.lang()

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tFLAGS")
			for _, s := range sources {
				fmt.Fprintf(w, "%s\t%s %s\t%s\n", s.ID, s.Icon, s.Name(lang), sourceFlags(s))
			}
			return w.Flush()
		}),
	}
	listCmd.Flags().BoolVar(&all, "all", false, "include hidden sources")

	var icon string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom income source",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			src, err := a.session.AddSource(cmd.Context(), args[0], icon)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added source %s %s (%s)\n", src.Icon, src.NameEn, src.ID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&icon, "icon", "", "emoji icon (default 💰)")

	deleteCmd := &cobra.Command{
		Use:   "delete <source-id>",
		Short: "Delete a custom income source",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.session.DeleteSource(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted source %s\n", args[0])
			return nil
		}),
	}

	hideCmd := &cobra.Command{
		Use:   "hide <source-id>",
		Short: "Hide a source from selection, or show it again",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if _, ok := a.session.Resolver().Source(args[0]); !ok {
				return fmt.Errorf("no source %s", args[0])
			}
			if err := a.session.ToggleSourceHidden(cmd.Context(), args[0]); err != nil {
				return err
			}
			state := "visible"
			if a.session.State().IsSourceHidden(args[0]) {
				state = "hidden"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Source %s is now %s\n", args[0], state)
			return nil
		}),
	}

	sourcesCmd.AddCommand(listCmd, addCmd, deleteCmd, hideCmd)
	return sourcesCmd
}

func sourceFlags(s model.IncomeSource) string {
	var flags []string
	if s.IsCustom {
		flags = append(flags, "custom")
	}
	if s.IsHidden {
		flags = append(flags, "hidden")
	}
	return strings.Join(flags, ",")
}

func newCategoriesCommand(opts *rootOptions) *cobra.Command {
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List expense categories",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			lang := a.lang()
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tFLAGS")
			for _, c := range a.session.Resolver().Categories() {
				flags := ""
				if c.IsCustom {
					flags = "custom"
				}
				fmt.Fprintf(w, "%s\t%s %s\t%s\n", c.ID, c.Icon, c.Name(lang), flags)
			}
			return w.Flush()
		}),
	}

	var icon string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom expense category",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			cat, err := a.session.AddCategory(cmd.Context(), args[0], icon)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added category %s %s (%s)\n", cat.Icon, cat.NameEn, cat.ID)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&icon, "icon", "", "emoji icon (default 💸)")

	deleteCmd := &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a custom expense category",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.session.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		}),
	}

	categoriesCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return categoriesCmd
}
