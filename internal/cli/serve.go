package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/soyeahso/switchboard/internal/config"
	"github.com/soyeahso/switchboard/internal/coordinator"
	"github.com/soyeahso/switchboard/internal/gateway"
	"github.com/soyeahso/switchboard/internal/logging"
	"github.com/soyeahso/switchboard/internal/metrics"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the switchboard gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Gateway.Port = port
			}
			if bind != "" {
				cfg.Gateway.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			// The --log-level flag wins over the config file.
			if logLevel == "" {
				log = logging.NewStyled(cfg.Logging.Level, cfg.Logging.ConsoleStyle)
			}

			coordOpts := []coordinator.Option{
				coordinator.WithChunkMode(coordinator.ChunkMode(cfg.Coordinator.ChunkMode)),
			}

			var serverOpts []gateway.ServerOption
			if cfg.Metrics.Enabled {
				m := metrics.New()
				coordOpts = append(coordOpts, coordinator.WithMetrics(m))
				serverOpts = append(serverOpts, gateway.WithMetrics(m))
			}

			coord := coordinator.New(log, coordOpts...)
			srv := gateway.New(cfg, coord, log, serverOpts...)

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override gateway port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, auto, custom)")

	return cmd
}
