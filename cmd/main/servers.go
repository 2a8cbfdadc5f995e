package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sentiment-dashboard/src/charts"
	"sentiment-dashboard/src/config"
	"sentiment-dashboard/src/grpc_control"
	"sentiment-dashboard/src/helpers"
	"sentiment-dashboard/src/logger"
	"sentiment-dashboard/src/server"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// -----------------------------------------------------------------------------

func runServe(cmd *cobra.Command, args []string) error {
	conf, err := loadFromFlags()
	if err != nil {
		return err
	}

	appLogger := logger.NewLogger(conf.MConfig, conf.Name)
	errorHandler := helpers.NewErrorHandler(appLogger)
	builder := setupBuilder(conf)

	// Build once; a load error is fatal
	state, err := builder.Build()
	if err != nil {
		appLogger.Critical("Initial build failed: %s", errorHandler.Describe(err))
		return err
	}

	health := grpc_control.NewHealthService(conf.MConfig, appLogger.Named("HealthService"))
	srv := server.NewDashboardServer(conf.MConfig, appLogger.Named("DashboardServer"), builder, charts.NewVegaLiteRenderer(""))
	srv.Status = health
	srv.Publish(state)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServers(ctx, conf, srv, health, appLogger)
}

// -----------------------------------------------------------------------------

// runServers runs the dashboard and health servers until ctx ends or one of
// them fails, then stops both.
func runServers(ctx context.Context, conf *config.Config, srv *server.DashboardServer, health *grpc_control.HealthService, appLogger *logger.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	// 1. Dashboard server
	g.Go(srv.Start)

	// 2. gRPC health service
	g.Go(health.Start)

	appLogger.Info("Dashboard for %s on http://%s:%d (gRPC health on %s:%d)",
		conf.Data.Symbol, conf.Host, conf.Port, conf.GrpcHost, conf.GrpcPort)

	// 3. Shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down...")
		if err := srv.Stop(); err != nil {
			appLogger.Warning("Dashboard server shutdown: %v", err)
		}
		if err := health.Stop(); err != nil {
			appLogger.Warning("Health service shutdown: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server failed: %v", err)
		return err
	}
	appLogger.Info("Shutdown complete.")
	return nil
}
