package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/formatter"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// BulkExportOpts contains configuration for bulk genre exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: videoteka_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Requests per second (default: 5)
	Currency   string  // Currency suffix for rendered prices
}

type genreExportJob struct {
	Genre string
	Films []models.Film
}

// BulkExport fetches and exports every listed genre concurrently with rate
// limiting and progress tracking.
//
// Fetches go through a rate-limited producer so the backend is not hammered;
// file writes go through a worker pool. Partial failures are recorded per
// genre, and a manifest file summarizes the run.
func (e *CatalogEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	genres []string,
	opts BulkExportOpts,
) (*formatter.BulkExportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if len(genres) == 0 {
		return nil, fmt.Errorf("%w: no genres to export", shared.ErrMissingArgument)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("videoteka_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Currency == "" {
		opts.Currency = "₽"
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &formatter.BulkExportResult{
		TotalGenres:     len(genres),
		OutputDirectory: opts.OutputDir,
		Results:         make([]formatter.GenreExport, 0, len(genres)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan genreExportJob, len(genres))
	results := make(chan formatter.GenreExport, len(genres))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, genre := range genres {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			e.sendProgress(prog, fetchingGenreUpdate(i+1, len(genres), genre))

			films, err := e.catalog.FilmsByGenre(ctx, genre)
			if err != nil {
				results <- formatter.GenreExport{
					Genre: genre,
					Error: fmt.Sprintf("failed to fetch genre: %v", err),
				}
				continue
			}

			jobs <- genreExportJob{Genre: genre, Films: films}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(genres), res.Genre, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(genres), res.Genre, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteBulkExportManifest(*result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that writes genre listings from the jobs channel.
func (e *CatalogEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan genreExportJob,
	results chan<- formatter.GenreExport,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- exportSingleGenre(job, opts)
	}
}

// exportSingleGenre writes a single genre's listing in the requested format.
func exportSingleGenre(j genreExportJob, opts BulkExportOpts) formatter.GenreExport {
	result := formatter.GenreExport{
		Genre: j.Genre,
		Count: len(j.Films),
	}

	base := filepath.Join(opts.OutputDir, genreFilename(j.Genre))

	switch opts.Format {
	case "csv":
		path, err := formatter.WriteCSVExport(j.Films, base+".csv")
		if err != nil {
			result.Error = fmt.Sprintf("CSV export failed: %v", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "markdown":
		path, err := formatter.WriteMarkdownExport(j.Genre, j.Films, opts.Currency, base+".md")
		if err != nil {
			result.Error = fmt.Sprintf("markdown export failed: %v", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "txt":
		data, err := formatter.ExportToText(j.Genre, j.Films)
		if err != nil {
			result.Error = fmt.Sprintf("text export failed: %v", err)
			return result
		}
		path := base + ".txt"
		if err := os.WriteFile(path, data, 0644); err != nil {
			result.Error = fmt.Sprintf("text write failed: %v", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "json":
		fallthrough
	default:
		data, err := shared.MarshalJSON(j.Films, true)
		if err != nil {
			result.Error = fmt.Sprintf("JSON marshal failed: %v", err)
			return result
		}
		path := base + ".json"
		if err := os.WriteFile(path, data, 0644); err != nil {
			result.Error = fmt.Sprintf("JSON write failed: %v", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true
	}
	return result
}

// genreFilename turns a genre title into a safe file name.
func genreFilename(genre string) string {
	name := strings.ToLower(strings.TrimSpace(genre))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '/':
			return '_'
		default:
			return r
		}
	}, name)
	if name == "" {
		name = "genre"
	}
	return name
}
