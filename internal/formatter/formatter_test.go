package formatter

import (
	"strings"
	"testing"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	th "github.com/DeutscheWaffel/Videoteka-UP/internal/testing"
)

type memberSet map[string]bool

func (m memberSet) Contains(id string) bool { return m[id] }

func sampleFilms() []models.Film {
	return []models.Film{
		{FlimID: "1", Title: "Stalker", Author: "Tarkovsky", Price: "250", Genre: "Drama"},
		{FlimID: "2", Title: "Brother", TitleRU: "Брат", Author: "Balabanov", Price: "150", Genre: "Crime"},
		{FlimID: "3", Title: "Mirror", Author: "", Price: ""},
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		name  string
		price string
		want  string
	}{
		{"plain number", "250", "250 ₽"},
		{"decimal", "99.5", "99.5 ₽"},
		{"padded", " 100 ", "100 ₽"},
		{"empty", "", "Price not specified"},
		{"zero", "0", "Price not specified"},
		{"negative", "-5", "Price not specified"},
		{"non-numeric", "free", "Price not specified"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPrice(tc.price, "₽"); got != tc.want {
				t.Errorf("FormatPrice(%q) = %q, want %q", tc.price, got, tc.want)
			}
		})
	}
}

func TestRenderCards(t *testing.T) {
	films := sampleFilms()

	t.Run("card carries title, author, price and rating", func(t *testing.T) {
		out := RenderCard(films[0], "₽", nil, nil)

		for _, want := range []string{"Stalker", "Tarkovsky", "250 ₽", "★★★★★"} {
			if !strings.Contains(out, want) {
				t.Errorf("card missing %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("localized title wins", func(t *testing.T) {
		out := RenderCard(films[1], "₽", nil, nil)
		if !strings.Contains(out, "Брат") {
			t.Errorf("card missing localized title, got:\n%s", out)
		}
	})

	t.Run("fallbacks for missing author and price", func(t *testing.T) {
		out := RenderCard(films[2], "₽", nil, nil)
		if !strings.Contains(out, "Author unknown") {
			t.Errorf("card missing author fallback, got:\n%s", out)
		}
		if !strings.Contains(out, "Price not specified") {
			t.Errorf("card missing price fallback, got:\n%s", out)
		}
	})

	t.Run("card carries the resolved poster source", func(t *testing.T) {
		out := RenderCard(films[0], "₽", nil, nil)
		if !strings.Contains(out, "img/stalker.jpg") {
			t.Errorf("card missing poster source, got:\n%s", out)
		}
	})

	t.Run("embedded posters show as an abbreviated data URI", func(t *testing.T) {
		out := RenderCard(models.Film{FlimID: "9", Title: "Dune", Poster: strings.Repeat("A", 400)}, "₽", nil, nil)
		if !strings.Contains(out, "data:image/jpeg;base64,") {
			t.Errorf("card missing data URI prefix, got:\n%s", out)
		}
		if strings.Contains(out, strings.Repeat("A", 40)) {
			t.Errorf("card carries the raw payload, got:\n%s", out)
		}
	})

	t.Run("unknown titles get the generated placeholder", func(t *testing.T) {
		out := RenderCard(models.Film{FlimID: "9", Title: "Unknown Film"}, "₽", nil, nil)
		if !strings.Contains(out, "data:image/svg+xml") {
			t.Errorf("card missing placeholder poster, got:\n%s", out)
		}
	})

	t.Run("membership markers", func(t *testing.T) {
		cart := memberSet{"1": true}
		marks := memberSet{"2": true}

		out := RenderCards(films, "₽", cart, marks)
		if !strings.Contains(out, "in cart") {
			t.Error("listing missing cart marker")
		}
		if !strings.Contains(out, "bookmarked") {
			t.Error("listing missing bookmark marker")
		}
	})

	t.Run("every film renders", func(t *testing.T) {
		out := RenderCards(films, "₽", nil, nil)
		for _, want := range []string{"Stalker", "Брат", "Mirror"} {
			if !strings.Contains(out, want) {
				t.Errorf("listing missing %q", want)
			}
		}
	})
}

func TestCardIndex(t *testing.T) {
	t.Run("maps ids to records", func(t *testing.T) {
		index := CardIndex(sampleFilms())

		if len(index) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(index))
		}
		if index["2"].Title != "Brother" {
			t.Errorf("unexpected record for id 2: %+v", index["2"])
		}
	})

	t.Run("skips records without an id and keeps the first duplicate", func(t *testing.T) {
		index := CardIndex([]models.Film{
			{Title: "Nameless"},
			{FlimID: "1", Title: "First"},
			{FlimID: "1", Title: "Second"},
		})

		if len(index) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(index))
		}
		if index["1"].Title != "First" {
			t.Errorf("expected first record to win, got %q", index["1"].Title)
		}
	})

	t.Run("legacy id serves as the key", func(t *testing.T) {
		index := CardIndex([]models.Film{{LegacyID: "9", Title: "Old"}})
		if index["9"].Title != "Old" {
			t.Errorf("expected legacy id key, got %+v", index)
		}
	})
}

func TestResolvePoster(t *testing.T) {
	cases := []struct {
		name string
		film models.Film
		want string
	}{
		{"data URI passes through", models.Film{Poster: "data:image/png;base64,AAA"}, "data:image/png;base64,AAA"},
		{"raw base64 gets wrapped", models.Film{Poster: "AAAA"}, "data:image/jpeg;base64,AAAA"},
		{"exact title match", models.Film{Title: "Stalker"}, "img/stalker.jpg"},
		{"case-insensitive title match", models.Film{Title: "STALKER"}, "img/stalker.jpg"},
		{"unknown title falls back", models.Film{Title: "Unknown Film"}, "img/placeholder.jpg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolvePoster(tc.film); got != tc.want {
				t.Errorf("ResolvePoster = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPosterSource(t *testing.T) {
	t.Run("keeps resolved file paths", func(t *testing.T) {
		if got := PosterSource(models.Film{Title: "Stalker"}); got != "img/stalker.jpg" {
			t.Errorf("PosterSource = %q, want img/stalker.jpg", got)
		}
	})

	t.Run("substitutes the generated SVG for the placeholder path", func(t *testing.T) {
		got := PosterSource(models.Film{Title: "Unknown Film"})
		if !strings.HasPrefix(got, "data:image/svg+xml;utf8,") {
			t.Errorf("PosterSource = %q, want an SVG data URI", got)
		}
	})
}

func TestPlaceholderDataURI(t *testing.T) {
	t.Run("carries the localized title", func(t *testing.T) {
		uri := PlaceholderDataURI(models.Film{Title: "Brother", TitleRU: "Брат"})
		if !strings.HasPrefix(uri, "data:image/svg+xml;utf8,") {
			t.Errorf("unexpected prefix: %s", uri)
		}
		if !strings.Contains(uri, "%D0%91%D1%80%D0%B0%D1%82") {
			t.Errorf("placeholder missing escaped title: %s", uri)
		}
	})

	t.Run("never empty", func(t *testing.T) {
		uri := PlaceholderDataURI(models.Film{})
		if !strings.Contains(uri, "No%20title") {
			t.Errorf("expected default title, got: %s", uri)
		}
	})
}

func TestSortFilms(t *testing.T) {
	films := []models.Film{
		{FlimID: "1", Title: "banana", Author: "Zed", Price: "30"},
		{FlimID: "2", Title: "Apple", Author: "ann", Price: "oops"},
		{FlimID: "3", Title: "cherry", Author: "Bob", Price: "12.5"},
	}

	titles := func(fs []models.Film) string {
		names := make([]string, len(fs))
		for i, f := range fs {
			names[i] = f.Title
		}
		return strings.Join(names, ",")
	}

	t.Run("by title case-insensitively", func(t *testing.T) {
		got := SortFilms(films, models.SortByTitle)
		if titles(got) != "Apple,banana,cherry" {
			t.Errorf("unexpected order: %s", titles(got))
		}
	})

	t.Run("by author case-insensitively", func(t *testing.T) {
		got := SortFilms(films, models.SortByAuthor)
		if titles(got) != "Apple,cherry,banana" {
			t.Errorf("unexpected order: %s", titles(got))
		}
	})

	t.Run("by price numerically with non-numeric as zero", func(t *testing.T) {
		got := SortFilms(films, models.SortByPrice)
		if titles(got) != "Apple,cherry,banana" {
			t.Errorf("unexpected order: %s", titles(got))
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		before := titles(films)
		SortFilms(films, models.SortByTitle)
		if titles(films) != before {
			t.Errorf("input mutated: %s", titles(films))
		}
	})

	t.Run("stable on equal keys", func(t *testing.T) {
		dup := []models.Film{
			{FlimID: "a", Title: "Same", Author: "first"},
			{FlimID: "b", Title: "Same", Author: "second"},
		}
		got := SortFilms(dup, models.SortByTitle)
		if got[0].Author != "first" || got[1].Author != "second" {
			t.Errorf("order of equal keys changed: %+v", got)
		}
	})
}

func TestExporters(t *testing.T) {
	films := sampleFilms()

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(films)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Title,Author,Price,Genre") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Stalker") || !strings.Contains(output, "Tarkovsky") {
			t.Errorf("CSV missing film data")
		}
	})

	t.Run("ExportCollectionToCSV", func(t *testing.T) {
		data, err := ExportCollectionToCSV([]models.CollectionItem{
			{MovieID: "7", Title: "Dune", Author: "Villeneuve", Price: "300"},
		})
		if err != nil {
			t.Fatalf("ExportCollectionToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "MovieID,Title,Author,Price") {
			t.Errorf("CSV missing headers")
		}
		if !strings.Contains(output, "Dune") {
			t.Errorf("CSV missing entry")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown("Drama", films, "₽")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Drama") {
			t.Errorf("Markdown missing heading")
		}
		if !strings.Contains(output, "**Films**: 3") {
			t.Errorf("Markdown missing count")
		}
		if !strings.Contains(output, "1. Tarkovsky - Stalker (Drama) [250 ₽]") {
			t.Errorf("Markdown missing entry, got: %s", output)
		}
		if !strings.Contains(output, "Author unknown - Mirror") {
			t.Errorf("Markdown missing author fallback")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText("All films", films)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Listing: All films") {
			t.Errorf("Text missing heading")
		}
		if !strings.Contains(output, "Films: 3") {
			t.Errorf("Text missing count")
		}
		if !strings.Contains(output, "2. Balabanov - Брат") {
			t.Errorf("Text missing localized entry, got: %s", output)
		}
	})
}

func TestWriters(t *testing.T) {
	films := sampleFilms()

	t.Run("WriteCSVExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		t.Run("with default path", func(t *testing.T) {
			path, err := WriteCSVExport(films, "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			if path != "films.csv" {
				t.Errorf("expected films.csv, got %s", path)
			}
			th.AssertFileExists(t, path)

			content := th.MustReadFile(t, path)
			if !strings.Contains(content, "Stalker") {
				t.Errorf("CSV missing film data")
			}
		})

		t.Run("with custom path", func(t *testing.T) {
			path, err := WriteCSVExport(films, "drama.csv")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}
			if path != "drama.csv" {
				t.Errorf("expected drama.csv, got %s", path)
			}
			th.AssertFileExists(t, path)
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteMarkdownExport("All films", films, "₽", "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if path != "films.md" {
			t.Errorf("expected films.md, got %s", path)
		}
		th.AssertFileExists(t, path)

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, "# All films") {
			t.Errorf("Markdown missing heading")
		}
	})

	t.Run("WriteBulkExportManifest", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		result := BulkExportResult{
			TotalGenres:       2,
			SuccessfulExports: 1,
			FailedExports:     1,
			Results: []GenreExport{
				{Genre: "Drama", Success: true, Count: 3, Files: []string{"drama.csv"}},
				{Genre: "Crime", Success: false, Error: "request failed"},
			},
		}

		if err := WriteBulkExportManifest(result, "csv", "manifest.json"); err != nil {
			t.Fatalf("WriteBulkExportManifest failed: %v", err)
		}
		th.AssertFileExists(t, "manifest.json")

		content := th.MustReadFile(t, "manifest.json")
		for _, want := range []string{`"format": "csv"`, `"total_genres": 2`, `"status": "failed"`, `"request failed"`, `"Drama"`} {
			if !strings.Contains(content, want) {
				t.Errorf("manifest missing %s, got: %s", want, content)
			}
		}
	})
}
