package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	var pageContext string

	cmd := &cobra.Command{
		Use:   "remove <namespace>",
		Short: "Uninstall an extension and disable its addons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageCtx, err := parsePageContext(pageContext)
			if err != nil {
				return err
			}

			rt, cleanup, err := openRuntime(pageCtx)
			if err != nil {
				return err
			}
			defer cleanup()

			removed, err := rt.reg.RemoveExtension(args[0], pageCtx)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no extension with namespace %q", args[0])
			}

			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&pageContext, "context", "live", "page context to unload hooks from")
	return cmd
}
