package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/expensenote/expensenote/internal/catalog"
	"github.com/expensenote/expensenote/internal/model"
)

func newSettingsCommand(opts *rootOptions) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display preferences",
	}
	settingsCmd.AddCommand(
		newSettingsShowCommand(opts),
		newSettingsLanguageCommand(opts),
		newSettingsThemeCommand(opts),
		newSettingsDarkModeCommand(opts),
		newSettingsScaleCommand(opts),
		newSettingsEffectsCommand(opts),
		newSettingsEffectCommand(opts),
		newSettingsAboutCommand(opts),
	)
	return settingsCmd
}

func newSettingsShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			st := a.session.State()
			theme := st.ThemeColor
			if c, ok := catalog.LookupTheme(st.ThemeColor); ok {
				theme = fmt.Sprintf("%s (%s)", c.Name, c.Hex)
			}
			effects := make([]string, 0, len(st.ActiveEffects))
			for _, e := range st.ActiveEffects {
				effects = append(effects, string(e))
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "Language:\t%s\n", st.Language)
			fmt.Fprintf(w, "Theme:\t%s\n", theme)
			fmt.Fprintf(w, "Dark mode:\t%s\n", onOff(st.IsDarkMode))
			fmt.Fprintf(w, "UI scale:\t%d%%\n", st.UIScale)
			fmt.Fprintf(w, "Effects:\t%s %s\n", onOff(st.ShowEffects), strings.Join(effects, ","))
			fmt.Fprintf(w, "Name:\t%s\n", st.AboutInfo.Name)
			fmt.Fprintf(w, "About:\t%s\n", st.AboutInfo.Description)
			return w.Flush()
		}),
	}
}

func newSettingsLanguageCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "language <en|bn|ar>",
		Long:  "Set the display language. Regional tags such as bn-BD match their base language.",
		Short: "Set the display language",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			lang := model.Language(args[0])
			if matched, ok := catalog.MatchLanguage(args[0]); ok {
				lang = matched
			}
			if err := a.session.SetLanguage(cmd.Context(), lang); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s\n", lang)
			return nil
		}),
	}
}

func newSettingsThemeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [id|hex]",
		Short: "Set the accent color, or list the palette",
		Args:  cobra.MaximumNArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if len(args) == 0 {
				current := a.session.State().ThemeColor
				w := newTable(cmd.OutOrStdout())
				for _, c := range catalog.ThemeColors() {
					marker := " "
					if c.Hex == current {
						marker = "*"
					}
					fmt.Fprintf(w, "%s %s\t%s\t%s\n", marker, c.ID, c.Name, c.Hex)
				}
				return w.Flush()
			}
			if err := a.session.SetTheme(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", a.session.State().ThemeColor)
			return nil
		}),
	}
}

func newSettingsDarkModeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dark-mode <on|off>",
		Short: "Turn dark mode on or off",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if err := a.session.SetDarkMode(cmd.Context(), on); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dark mode %s\n", onOff(on))
			return nil
		}),
	}
}

func newSettingsScaleCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("scale <%d-%d>", catalog.MinUIScale, catalog.MaxUIScale),
		Short: "Set the UI scale percentage",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			pct, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
			if err != nil {
				return fmt.Errorf("parsing scale %q: %w", args[0], err)
			}
			stored, err := a.session.SetUIScale(cmd.Context(), pct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "UI scale set to %d%%\n", stored)
			return nil
		}),
	}
}

func newSettingsEffectsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "effects <on|off>",
		Short: "Turn decorative effects on or off",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			if err := a.session.SetEffectsEnabled(cmd.Context(), on); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Effects %s\n", onOff(on))
			return nil
		}),
	}
}

func newSettingsEffectCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "effect [id]",
		Short: "Toggle one effect, or list them",
		Args:  cobra.MaximumNArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			st := a.session.State()
			if len(args) == 0 {
				for _, e := range catalog.Effects() {
					marker := " "
					if st.HasEffect(e) {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, e)
				}
				return nil
			}

			e := model.Effect(args[0])
			if err := a.session.ToggleEffect(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Effect %s %s\n", e, onOff(a.session.State().HasEffect(e)))
			return nil
		}),
	}
}

func newSettingsAboutCommand(opts *rootOptions) *cobra.Command {
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "about",
		Short: "Set the profile name and description",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			about := a.session.State().AboutInfo
			if cmd.Flags().Changed("name") {
				about.Name = name
			}
			if cmd.Flags().Changed("description") {
				about.Description = description
			}
			if err := a.session.SetAboutInfo(cmd.Context(), about); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "profile name")
	cmd.Flags().StringVar(&description, "description", "", "profile description")

	return cmd
}
