package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/registry"
)

func newListCmd() *cobra.Command {
	var enabledOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed extensions and their addons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := openRuntime(page.ContextLive)
			if err != nil {
				return err
			}
			defer cleanup()

			enabled := rt.reg.EnabledAddons()

			if enabledOnly {
				if len(enabled) == 0 {
					fmt.Println("No addons enabled.")
					return nil
				}
				for _, id := range enabled {
					fmt.Println(id)
				}
				return nil
			}

			exts := rt.reg.Extensions()
			if len(exts) == 0 {
				fmt.Println("No extensions installed.")
				return nil
			}

			for _, ext := range exts {
				header := ext.Namespace
				if ext.Version != "" {
					header += " " + ext.Version
				}
				if ext.Author != "" {
					header += " (by " + ext.Author + ")"
				}
				fmt.Println(header)

				for _, a := range ext.Addons() {
					id := registry.Qualify(ext.Namespace, a.Name)
					marker := " "
					if lo.Contains(enabled, id) {
						marker = "*"
					}
					fmt.Printf("  %s addon %-24s %s\n", marker, id, a.Title)
				}
				for _, t := range ext.Themes() {
					fmt.Printf("    theme %-24s %s\n", registry.Qualify(ext.Namespace, t.Name), t.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "list only enabled addon identifiers")
	return cmd
}
