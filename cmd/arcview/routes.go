package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/app"
	"github.com/oszuidwest/zwfm-arcview/internal/routes"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

var routesCmd = &cli.Command{
	Name:  "routes",
	Usage: "Print the application's route table",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: text or yaml",
			Value: "text",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		format := cmd.String("format")
		if format != "text" && format != "yaml" {
			return cli.Exit(fmt.Sprintf("unknown format %q", format), 1)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to load config: %w", err), 1)
		}

		gin.SetMode(gin.ReleaseMode)
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

		application, err := app.New(cfg, app.WithLogger(quiet))
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create application: %w", err), 1)
		}

		return writeRoutes(cmd.Root().Writer, format, application.Routes())
	},
}

func writeRoutes(w io.Writer, format string, table []routes.Entry) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(table); err != nil {
			return fmt.Errorf("encode routes: %w", err)
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tHANDLER")
	for _, e := range table {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Method, e.Path, e.Handler)
	}
	return tw.Flush()
}
