package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxleaf/loadout/internal/config"
	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/registry"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List available themes or pick the default",
	}

	cmd.AddCommand(newThemeListCmd())
	cmd.AddCommand(newThemeSetCmd())
	return cmd
}

func newThemeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := openRuntime(page.ContextLive)
			if err != nil {
				return err
			}
			defer cleanup()

			themes := rt.reg.Themes()
			if len(themes) == 0 {
				fmt.Println("No themes registered.")
				return nil
			}

			defaultTheme := rt.reg.GetThemeByName(rt.cfg.Theme.Default)
			for _, ext := range rt.reg.Extensions() {
				for _, t := range ext.Themes() {
					marker := " "
					if t == defaultTheme {
						marker = "*"
					}
					fmt.Printf("%s %-28s %s\n", marker, registry.Qualify(ext.Namespace, t.Name), t.Title)
				}
			}
			return nil
		},
	}
}

func newThemeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <theme>",
		Short: "Activate a theme and make it the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := openRuntime(page.ContextLive)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := rt.reg.LoadTheme(args[0]); err != nil {
				return err
			}

			rt.cfg.Theme.Default = args[0]
			if err := config.Save(paths.Config, rt.cfg); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}

			fmt.Printf("Theme set to %s\n", args[0])
			return nil
		},
	}
}
