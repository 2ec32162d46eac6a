// Package main is the entry point for the arcview web application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oszuidwest/zwfm-arcview/internal/config"
	"github.com/oszuidwest/zwfm-arcview/pkg/logger"
	"github.com/oszuidwest/zwfm-arcview/pkg/version"
	"github.com/urfave/cli/v3"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    "arcview",
		Version: version.Version,
		Usage:   "Serve the arcview web application",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to TOML configuration file",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "instance-path",
				Usage: "Instance directory (overrides config)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: trace, debug, info, warn, error",
			},
		},
		Commands: []*cli.Command{
			serveCmd,
			routesCmd,
			{
				Name:  "version",
				Usage: "Print the version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintf(cmd.Root().Writer, "arcview version %s\n", version.String())
					return err
				},
			},
		},
	}
}

// loadConfig resolves configuration from file, environment and global flags.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("instance-path") {
		cfg.Instance.Path = cmd.String("instance-path")
	}
	if cmd.IsSet("log-level") {
		cfg.Logging.Level = cmd.String("log-level")
	}
	if cmd.IsSet("address") {
		cfg.Server.Address = cmd.String("address")
	}

	return cfg, cfg.Validate()
}

func main() {
	if err := newRootCmd().Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Command failed", "error", err)
	}
}
