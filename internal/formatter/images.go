package formatter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
)

const (
	dataURIPrefix     = "data:image/"
	jpegBase64Prefix  = "data:image/jpeg;base64,"
	posterPlaceholder = "img/placeholder.jpg"
)

// posterFiles maps known titles to bundled poster assets for records the
// backend serves without embedded image data.
var posterFiles = map[string]string{
	"Stalker":           "img/stalker.jpg",
	"Solaris":           "img/solaris.jpg",
	"Mirror":            "img/mirror.jpg",
	"Brother":           "img/brother.jpg",
	"The Irony of Fate": "img/irony_of_fate.jpg",
}

// ResolvePoster picks the image source for a film: embedded data first
// (wrapped with a JPEG data-URI prefix when the backend sends raw base64),
// then the static table by exact title, then case-insensitively, then the
// shared placeholder path.
func ResolvePoster(f models.Film) string {
	if f.Poster != "" {
		if strings.HasPrefix(f.Poster, dataURIPrefix) {
			return f.Poster
		}
		return jpegBase64Prefix + f.Poster
	}

	if path, ok := posterFiles[f.Title]; ok {
		return path
	}
	for title, path := range posterFiles {
		if strings.EqualFold(title, f.Title) {
			return path
		}
	}

	return posterPlaceholder
}

// PosterSource resolves the source a card actually shows: the resolution
// chain's answer, with the generated SVG standing in for the shared
// placeholder path so a card never points at an asset that may be missing.
func PosterSource(f models.Film) string {
	src := ResolvePoster(f)
	if src == posterPlaceholder {
		return PlaceholderDataURI(f)
	}
	return src
}

// abbreviateSource keeps bundled file paths intact and cuts data URIs down
// to their media-type prefix so the card stays one line per field.
func abbreviateSource(src string) string {
	if strings.HasPrefix(src, dataURIPrefix) {
		if i := strings.Index(src, ","); i != -1 {
			return src[:i+1] + "…"
		}
	}
	return src
}

// PlaceholderDataURI generates an inline SVG poster carrying the film's
// display title as text. Used when the resolved image cannot be read; this
// last resort never fails.
func PlaceholderDataURI(f models.Film) string {
	title := f.DisplayTitle()
	if title == "" {
		title = "No title"
	}
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="300"><rect width="100%%" height="100%%" fill="#2b2b2b"/><text x="50%%" y="50%%" fill="#eeeeee" font-size="14" text-anchor="middle">%s</text></svg>`,
		escapeXML(title),
	)
	return "data:image/svg+xml;utf8," + url.PathEscape(svg)
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
