package formatter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
)

// SortFilms returns a new slice ordered by the given field; the input is
// never mutated so the cached listing survives re-sorts. Price compares
// numerically ascending with non-numeric values treated as zero; every
// other field compares case-insensitively as text with missing values
// treated as empty. The sort is stable, so equal keys keep their fetch
// order.
func SortFilms(films []models.Film, field models.SortField) []models.Film {
	out := make([]models.Film, len(films))
	copy(out, films)

	switch field {
	case models.SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return priceValue(out[i].Price.String()) < priceValue(out[j].Price.String())
		})
	case models.SortByAuthor:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Author) < strings.ToLower(out[j].Author)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}

	return out
}

func priceValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
