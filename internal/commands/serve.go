package commands

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sacco-admin/internal/adapters/http/middleware"
	"sacco-admin/internal/adapters/http/routes"
	"sacco-admin/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

const bodyLimit = 10 * 1024 * 1024

func newServeCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API with background jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(seed)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "seed the admin user and default settings before starting")

	return cmd
}

func runServe(seed bool) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if seed {
		if err := runSeeder(rt); err != nil {
			slog.Warn("⚠️ Seeding failed", "error", err)
		}
	}

	cronService := services.NewCronService(rt.cfg.Scheduler, rt.services.Loans, rt.services.Auth)
	if err := cronService.Start(); err != nil {
		return err
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "SACCO Admin API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    bodyLimit,
	})

	middleware.Setup(app, rt.cfg, rt.metrics)
	routes.Setup(app, rt.db, rt.cfg, rt.metrics, rt.services)

	go gracefulShutdown(app)

	slog.Info("🚀 Server starting", "port", rt.cfg.Port, "mode", rt.cfg.AppMode)
	return app.Listen(":" + rt.cfg.Port)
}

// gracefulShutdown stops the listener on SIGINT/SIGTERM so deferred cleanup runs
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		slog.Error("❌ Error during shutdown", "error", err)
	}
	slog.Info("✅ Server stopped gracefully")
}
