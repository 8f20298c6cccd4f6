package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oxleaf/loadout/internal/config"
	"github.com/oxleaf/loadout/internal/gateway"
)

func newServeCmd() *cobra.Command {
	var (
		port        int
		bind        string
		pageContext string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin gateway server",
		Args:  cobra.NoArgs,
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

			if port != 0 {
				rt.cfg.Gateway.Port = port
			}
			if bind != "" {
				rt.cfg.Gateway.Bind = bind
			}

			issues := config.Validate(&rt.cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			// Activate the configured default theme before serving.
			if err := rt.reg.LoadTheme(rt.cfg.Theme.Default); err != nil {
				log.Warn().Err(err).Str("theme", rt.cfg.Theme.Default).Msg("default theme not activated")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := gateway.New(rt.cfg, rt.reg, log)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override gateway port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind host")
	cmd.Flags().StringVar(&pageContext, "context", "live", "page context served to clients")
	return cmd
}
