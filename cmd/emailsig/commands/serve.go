package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-emailsig/internal/logging"
	"github.com/goliatone/go-emailsig/pkg/orchestrator"
	"github.com/goliatone/go-emailsig/pkg/server"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the signature in a browser with live reload",
		Long: `serve hosts a preview page and a small render API. When a settings file is
in use, saving it pushes the new signature to open pages.

Listener settings come from the environment (or a .env file):
EMAILSIG_HTTP_ADDR, EMAILSIG_HTTP_*_TIMEOUT, EMAILSIG_ALLOWED_ORIGINS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			logger := logging.GetLogger("server")
			options := []server.Option{
				server.WithLogger(logger),
				server.WithGenerator(newGenerator(orchestrator.WithLogger(logger))),
			}
			if path := opts.settingsPath(); path != "" {
				options = append(options, server.WithSource(path))
			} else {
				settings, err := opts.loadSettings()
				if err != nil {
					return err
				}
				options = append(options, server.WithSettings(settings))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.New(ctx, cfg, options...)
			if err != nil {
				return err
			}
			cmd.PrintErrln(HeadingStyle.Render("Preview on http://" + cfg.Addr))
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides EMAILSIG_HTTP_ADDR)")
	return cmd
}
