package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxleaf/loadout/internal/config"
	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/version"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show loadout status and configuration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Loadout %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Data:    %s\n", paths.Data)
			fmt.Printf("State:   %s\n", paths.State)
			fmt.Println()

			cfg, err := config.Load(paths.Config)
			if err != nil {
				fmt.Printf("Config:  error loading: %v\n", err)
				return nil
			}

			scripting := "enabled"
			if !cfg.Scripting.Allowed() {
				scripting = "disabled"
			}
			fmt.Printf("Scripts: %s\n", scripting)
			fmt.Printf("Theme:   default=%s\n", cfg.Theme.Default)
			fmt.Printf("Store:   backend=%s\n", cfg.Store.Backend)

			auth := "open"
			if cfg.Gateway.Auth.Token != "" {
				auth = "token"
			}
			fmt.Printf("Gateway: port=%d bind=%s auth=%s\n", cfg.Gateway.Port, cfg.Gateway.Bind, auth)

			rt, cleanup, err := openRuntime(page.ContextLive)
			if err != nil {
				fmt.Printf("\nState:   unavailable: %v\n", err)
				return nil
			}
			defer cleanup()

			exts := rt.reg.Extensions()
			fmt.Printf("\nExtensions: %d installed\n", len(exts))
			enabled := rt.reg.EnabledAddons()
			if len(enabled) > 0 {
				fmt.Printf("Enabled:    %s\n", strings.Join(enabled, ", "))
			} else {
				fmt.Println("Enabled:    (none)")
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s\n", issue)
				}
			}
			return nil
		},
	}
}
