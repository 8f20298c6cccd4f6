package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnableCmd() *cobra.Command {
	var pageContext string

	cmd := &cobra.Command{
		Use:   "enable <addon>",
		Short: "Enable an addon (name or namespace:name)",
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

			if err := rt.reg.EnableAddon(args[0], pageCtx); err != nil {
				return err
			}
			fmt.Printf("Enabled %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&pageContext, "context", "live", "page context to inject hooks into")
	return cmd
}
