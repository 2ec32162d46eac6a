package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/app"
	"github.com/oszuidwest/zwfm-arcview/internal/server"
	"github.com/oszuidwest/zwfm-arcview/pkg/logger"
	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "address",
			Usage:   "Address to listen on, e.g. :8080",
			Aliases: []string{"a"},
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to load config: %w", err), 1)
		}

		log := logger.Initialize(cfg.Logging.Level, string(cfg.Logging.Format))

		// Set Gin mode based on environment
		if cfg.Environment.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		} else {
			gin.SetMode(gin.DebugMode)
		}

		log.Info("Server config",
			"address", cfg.Server.Address,
			"environment", cfg.Environment,
			"instance_path", cfg.Instance.Path,
			"templates_path", cfg.Web.TemplatesPath)

		application, err := app.New(cfg, app.WithLogger(log.With("component", "app")))
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create application: %w", err), 1)
		}

		runner, err := server.New(application.Handler(),
			server.WithLogger(log.With("component", "http")),
			server.WithListenAddr(cfg.Server.Address),
			server.WithShutdownTimeout(cfg.ShutdownTimeoutDuration()),
			server.WithMaxHeaderBytes(cfg.MaxHeaderBytes()),
		)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create server: %w", err), 1)
		}

		super, err := supervisor.New(
			supervisor.WithRunnables(runner),
			supervisor.WithLogHandler(log.Handler()),
			supervisor.WithContext(ctx),
		)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create supervisor: %w", err), 1)
		}
		if err := super.Run(); err != nil {
			return cli.Exit(fmt.Errorf("failed to run server: %w", err), 1)
		}

		log.Info("Server exited")
		return nil
	},
}
