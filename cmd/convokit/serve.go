package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/convokit/annotate"
	"github.com/kbukum/convokit/observability"
	"github.com/kbukum/convokit/server"
	"github.com/kbukum/convokit/version"
)

func newServeCommand(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the annotation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := a.cfg
	a.log.Info("Starting convokit", version.Get().Fields())

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			a.log.Warn("telemetry shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return err
	}

	svc, err := annotate.New(cfg.Config, annotate.WithMetrics(metrics))
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, a.log)
	srv.ApplyMiddleware(cfg.Name, metrics)
	srv.RegisterAnnotate(svc)
	srv.RegisterDefaultEndpoints(cfg.Name,
		map[string]any{
			"detectors":  svc.Detectors(),
			"vocabulary": cfg.Vocabulary.Default,
		},
		observability.HealthCheckFunc(func(context.Context) observability.Health {
			if _, err := svc.Vocabulary(""); err != nil {
				return observability.Health{Name: "annotate", Status: observability.HealthStatusDown, Message: err.Error()}
			}
			return observability.Health{Name: "annotate", Status: observability.HealthStatusUp}
		}),
	)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return srv.Stop(context.Background())
}
