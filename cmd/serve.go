package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"gameshelf/core/logger"
	"gameshelf/core/middleware/rayid"
	"gameshelf/feature/web"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd starts the HTTP presentation layer.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the collection query API",
	Long:  `Starts the HTTP server exposing the user list and game search endpoints.`,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}
	logg := app.logger
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	fiberApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line can be correlated.
	fiberApp.Use(rayid.New())
	fiberApp.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("request error", zap.Error(err))
		}
		return err
	})

	web.NewHandler(app.store, logg).Register(fiberApp)

	go func() {
		addr := ":" + app.cfg.Server.Port
		logg.Info("server listening", zap.String("addr", addr))
		if err := fiberApp.Listen(addr); err != nil {
			logg.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")
	return fiberApp.Shutdown()
}
