package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pintwise/pintwise/internal/export"
	"github.com/pintwise/pintwise/internal/setup"
	"github.com/pintwise/pintwise/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
)

// ExportLogDir specifies where export log files are stored.
const ExportLogDir = "logs/export_logs"

var ErrInvalidTime = errors.New("invalid --at time")

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "export",
		Usage: "Export a snapshot of amenity flags, price confidence and deal status",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "exports",
				Usage:   "Base output directory for export files",
			},
			&cli.StringFlag{
				Name:  "at",
				Usage: "Snapshot instant in RFC 3339 (defaults to now)",
			},
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   []string{string(export.FormatSQLite)},
				Usage:   "Formats to write (sqlite, csv)",
			},
			&cli.StringFlag{
				Name:    "export-version",
				Aliases: []string{"v"},
				Value:   "1.0.0",
				Usage:   "Export version",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Value:   "Pintwise Export",
				Usage:   "Export description",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Value:   4,
				Usage:   "Number of pubs read concurrently",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			at, err := snapshotTime(c.String("at"))
			if err != nil {
				return err
			}

			// Initialize application with required dependencies
			app, err := setup.InitializeApp(ctx, telemetry.ServiceExport, ExportLogDir)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup(ctx)

			// Create timestamped output directory
			timestamp := at.UTC().Format("2006-01-02_150405")
			outDir := filepath.Join(c.String("output"), timestamp)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			formats := make([]export.Format, 0, len(c.StringSlice("format")))
			for _, f := range c.StringSlice("format") {
				formats = append(formats, export.Format(strings.ToLower(strings.TrimSpace(f))))
			}

			config := &export.Config{
				ExportVersion: c.String("export-version"),
				Description:   c.String("description"),
				At:            at,
				Concurrency:   int(c.Int("concurrency")),
			}

			exporter := export.New(export.NewServiceSource(app.DB.Service()), outDir, config, formats, app.Logger)
			if err := exporter.ExportAll(ctx); err != nil {
				return fmt.Errorf("failed to export data: %w", err)
			}

			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}

// snapshotTime parses the --at flag.
func snapshotTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}

	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidTime, err)
	}
	return at, nil
}
