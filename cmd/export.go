package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/tasks"
)

// ExportGenres exports each requested genre's listing to files and prints
// the run summary.
func (r *Runner) ExportGenres(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	switch format {
	case "csv", "markdown", "txt", "json":
	default:
		return fmt.Errorf("%w: --format %s (want csv, markdown, txt or json)", shared.ErrInvalidFlag, format)
	}

	engine, err := r.catalogEngine()
	if err != nil {
		return err
	}

	genres := cmd.StringSlice("genre")
	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
		Currency:   r.config.UI.Currency,
	}

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := engine.BulkExport(ctx, progress, genres, opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d/%d genres to %s\n", result.SuccessfulExports, result.TotalGenres, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("✗ %d genres failed, see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}
