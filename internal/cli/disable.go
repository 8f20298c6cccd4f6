package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDisableCmd() *cobra.Command {
	var pageContext string

	cmd := &cobra.Command{
		Use:   "disable <addon>",
		Short: "Disable an addon (name or namespace:name)",
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

			if err := rt.reg.DisableAddon(args[0], pageCtx); err != nil {
				return err
			}
			fmt.Printf("Disabled %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&pageContext, "context", "live", "page context to remove hooks from")
	return cmd
}
