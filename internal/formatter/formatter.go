// package formatter renders film listings as terminal cards and exports
// catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

const (
	// Ratings are decorative: the backend stores none, so every card
	// shows the same five stars.
	ratingRow = "★★★★★"

	authorFallback = "Author unknown"
	priceFallback  = "Price not specified"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(32)
	cardTitleStyle  = lipgloss.NewStyle().Bold(true)
	cardAuthorStyle = lipgloss.NewStyle().Faint(true)
	cardPosterStyle = lipgloss.NewStyle().Faint(true)
	cardMarkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// Membership answers whether a movie id belongs to a collection. Satisfied
// by the sync stores; a nil Membership means nothing is marked.
type Membership interface {
	Contains(movieID string) bool
}

// FormatPrice renders a price with the currency suffix, or the placeholder
// when the value is absent, zero, or not a number.
func FormatPrice(price, currency string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || v <= 0 {
		return priceFallback
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(v, 'f', -1, 64), currency)
}

// FormatAuthor substitutes the default text for records without an author.
func FormatAuthor(author string) string {
	if strings.TrimSpace(author) == "" {
		return authorFallback
	}
	return author
}

// RenderCard renders one film as a bordered card: poster source, title,
// author, price, the fixed rating row, and membership markers.
func RenderCard(f models.Film, currency string, cart, bookmarks Membership) string {
	marks := membershipMarks(f.Key(), cart, bookmarks)

	lines := []string{
		cardPosterStyle.Render(abbreviateSource(PosterSource(f))),
		cardTitleStyle.Render(f.DisplayTitle()),
		cardAuthorStyle.Render(FormatAuthor(f.Author)),
		FormatPrice(f.Price.String(), currency),
		ratingRow,
	}
	if marks != "" {
		lines = append(lines, cardMarkStyle.Render(marks))
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

// RenderCards renders the whole listing, cards stacked in order.
func RenderCards(films []models.Film, currency string, cart, bookmarks Membership) string {
	cards := make([]string, 0, len(films))
	for _, f := range films {
		cards = append(cards, RenderCard(f, currency, cart, bookmarks))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// CardIndex maps ids to the full records behind the rendered cards, so
// toggle handlers resolve a selection back to the original record instead
// of parsing display text. Records without an id are skipped; the first
// record wins on duplicate ids.
func CardIndex(films []models.Film) map[string]models.Film {
	index := make(map[string]models.Film, len(films))
	for _, f := range films {
		key := f.Key()
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = f
		}
	}
	return index
}

func membershipMarks(key string, cart, bookmarks Membership) string {
	var marks []string
	if bookmarks != nil && bookmarks.Contains(key) {
		marks = append(marks, "♥ bookmarked")
	}
	if cart != nil && cart.Contains(key) {
		marks = append(marks, "🛒 in cart")
	}
	return strings.Join(marks, "  ")
}

// ExportToCSV converts a film list to CSV with columns: ID, Title, Author, Price, Genre
func ExportToCSV(films []models.Film) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Author", "Price", "Genre"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, f := range films {
		record := []string{
			f.Key(),
			f.Title,
			f.Author,
			f.Price.String(),
			f.Genre,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportCollectionToCSV converts cart or bookmark entries to CSV with
// columns: MovieID, Title, Author, Price
func ExportCollectionToCSV(items []models.CollectionItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"MovieID", "Title", "Author", "Price"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{item.MovieID, item.Title, item.Author, item.Price}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a film list to Markdown under the given heading.
func ExportToMarkdown(heading string, films []models.Film, currency string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", heading))
	buf.WriteString(fmt.Sprintf("**Films**: %d\n\n", len(films)))

	buf.WriteString("## Films\n\n")
	for i, f := range films {
		genrePart := ""
		if f.Genre != "" {
			genrePart = fmt.Sprintf(" (%s)", f.Genre)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n",
			i+1, FormatAuthor(f.Author), f.DisplayTitle(), genrePart, FormatPrice(f.Price.String(), currency)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a film list to plain text.
func ExportToText(heading string, films []models.Film) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Listing: %s\n", heading))
	buf.WriteString(fmt.Sprintf("Films: %d\n\n", len(films)))

	for i, f := range films {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, FormatAuthor(f.Author), f.DisplayTitle()))
	}

	return buf.Bytes(), nil
}

// WriteCSVExport writes a film list as CSV.
//
// Defaults to films.csv as the filename.
func WriteCSVExport(films []models.Film, filepath string) (string, error) {
	if filepath == "" {
		filepath = "films.csv"
	}

	csvData, err := ExportToCSV(films)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteMarkdownExport writes a film list as Markdown.
//
// Defaults to films.md as the filename.
func WriteMarkdownExport(heading string, films []models.Film, currency, filepath string) (string, error) {
	if filepath == "" {
		filepath = "films.md"
	}

	mdData, err := ExportToMarkdown(heading, films, currency)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// GenreExport records the outcome of exporting one genre during a bulk run.
type GenreExport struct {
	Genre   string
	Success bool
	Count   int
	Files   []string
	Error   string
}

// BulkExportResult aggregates a bulk export run across genres.
type BulkExportResult struct {
	TotalGenres       int
	SuccessfulExports int
	FailedExports     int
	Results           []GenreExport
	OutputDirectory   string
	ManifestPath      string
}

// WriteBulkExportManifest writes a JSON manifest describing a bulk export run.
func WriteBulkExportManifest(result BulkExportResult, format, manifestPath string) error {
	type manifestEntry struct {
		Genre  string   `json:"genre"`
		Status string   `json:"status"`
		Count  int      `json:"count"`
		Files  []string `json:"files,omitempty"`
		Error  string   `json:"error,omitempty"`
	}

	manifest := struct {
		GeneratedAt       string          `json:"generated_at"`
		Format            string          `json:"format"`
		TotalGenres       int             `json:"total_genres"`
		SuccessfulExports int             `json:"successful_exports"`
		FailedExports     int             `json:"failed_exports"`
		Exports           []manifestEntry `json:"exports"`
	}{
		GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
		Format:            format,
		TotalGenres:       result.TotalGenres,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
	}

	for _, r := range result.Results {
		status := "success"
		if !r.Success {
			status = "failed"
		}
		manifest.Exports = append(manifest.Exports, manifestEntry{
			Genre:  r.Genre,
			Status: status,
			Count:  r.Count,
			Files:  r.Files,
			Error:  r.Error,
		})
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to generate manifest JSON: %w", err)
	}

	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}
