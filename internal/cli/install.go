package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxleaf/loadout/internal/manifest"
	"github.com/oxleaf/loadout/internal/page"
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <manifest-file>",
		Short: "Install an extension from a manifest file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.ParseFile(args[0])
			if err != nil {
				return err
			}

			rt, cleanup, err := openRuntime(page.ContextLive)
			if err != nil {
				return err
			}
			defer cleanup()

			ext, report, err := rt.reg.Load(m)
			if err != nil {
				return err
			}
			if ext == nil {
				return fmt.Errorf("manifest rejected: missing namespace or namespace already installed")
			}

			fmt.Printf("Installed %s (%d addons, %d themes)\n",
				ext.Namespace, report.Addons, report.Themes)
			for _, s := range report.Skipped {
				fmt.Printf("  skipped %s\n", s)
			}
			return nil
		},
	}
	return cmd
}
