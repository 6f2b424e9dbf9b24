// Catalog endpoints: film listings, genre queries, admin operations
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// CatalogService wraps the film endpoints of the backend.
type CatalogService struct {
	client *Client
}

// NewCatalogService creates a catalog service over the given gateway.
func NewCatalogService(client *Client) *CatalogService {
	return &CatalogService{client: client}
}

// AllFilms retrieves the complete catalog.
func (s *CatalogService) AllFilms(ctx context.Context) ([]models.Film, error) {
	var films []models.Film
	if err := s.client.Do(ctx, http.MethodGet, "/films/all", nil, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// RandomFilms retrieves n random films. The backend defaults to 4 when the
// count is not positive; the client mirrors that default rather than sending
// an invalid path segment.
func (s *CatalogService) RandomFilms(ctx context.Context, n int) ([]models.Film, error) {
	if n <= 0 {
		n = 4
	}

	var films []models.Film
	path := fmt.Sprintf("/films/random/%d", n)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// FilmsByGenre retrieves the films of one genre. The backend lowercases the
// genre before matching; the client passes it through as entered.
func (s *CatalogService) FilmsByGenre(ctx context.Context, genre string) ([]models.Film, error) {
	if genre == "" {
		return nil, fmt.Errorf("%w: genre", shared.ErrMissingArgument)
	}

	var films []models.Film
	path := fmt.Sprintf("/genres/%s/films", url.PathEscape(genre))
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// FilmCreate is the admin payload for adding a catalog record.
type FilmCreate struct {
	Title   string `json:"title"`
	TitleRU string `json:"title_ru,omitempty"`
	Author  string `json:"author,omitempty"`
	Price   string `json:"price,omitempty"`
	Genre   string `json:"genre_title"`
	Poster  string `json:"movie_base64,omitempty"`
}

// CreateFilm adds a film to the catalog. Requires an administrator token.
func (s *CatalogService) CreateFilm(ctx context.Context, film FilmCreate) (*models.Film, error) {
	if film.Title == "" || film.Genre == "" {
		return nil, fmt.Errorf("%w: title and genre are required", shared.ErrValidation)
	}

	var created models.Film
	if err := s.client.Do(ctx, http.MethodPost, "/admin/films", film, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteFilm removes a film from the catalog. Requires an administrator token.
func (s *CatalogService) DeleteFilm(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: film id", shared.ErrMissingArgument)
	}
	return s.client.Do(ctx, http.MethodDelete, "/admin/films/"+url.PathEscape(id), nil, nil)
}

// Health checks the backend's liveness endpoint.
func (s *CatalogService) Health(ctx context.Context) (map[string]any, error) {
	return s.client.Health(ctx)
}
