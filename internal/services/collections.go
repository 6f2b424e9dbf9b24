// Collection endpoints shared by cart and bookmarks
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// collectionEntry is the server's projection of one membership row. The
// numeric row id is backend-internal and dropped on the way in.
type collectionEntry struct {
	ID      int               `json:"id"`
	MovieID models.FlexString `json:"movie_id"`
	Title   string            `json:"title"`
	Author  string            `json:"author"`
	Price   models.FlexString `json:"price"`
}

// CollectionAPI wraps the membership endpoints of one collection kind. The
// cart and bookmark surfaces are identical except for their path.
type CollectionAPI struct {
	client *Client
	kind   models.CollectionKind
}

// NewCollectionAPI creates the endpoint wrapper for one collection kind.
func NewCollectionAPI(client *Client, kind models.CollectionKind) *CollectionAPI {
	return &CollectionAPI{client: client, kind: kind}
}

// Kind returns the collection this API operates on.
func (c *CollectionAPI) Kind() models.CollectionKind { return c.kind }

// List retrieves the server's membership list mapped into the client's
// CollectionItem shape.
func (c *CollectionAPI) List(ctx context.Context) ([]models.CollectionItem, error) {
	var entries []collectionEntry
	if err := c.client.Do(ctx, http.MethodGet, c.kind.Path(), nil, &entries); err != nil {
		return nil, err
	}

	items := make([]models.CollectionItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, models.CollectionItem{
			MovieID: e.MovieID.String(),
			Title:   e.Title,
			Author:  e.Author,
			Price:   e.Price.String(),
		})
	}
	return items, nil
}

// Add registers a membership on the server.
func (c *CollectionAPI) Add(ctx context.Context, item models.CollectionItem) error {
	if item.MovieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	payload := map[string]string{
		"movie_id": item.MovieID,
		"title":    item.Title,
		"author":   item.Author,
		"price":    item.Price,
	}

	return c.client.Do(ctx, http.MethodPost, c.kind.Path(), payload, nil)
}

// Remove deletes a membership on the server, keyed by movie id.
func (c *CollectionAPI) Remove(ctx context.Context, movieID string) error {
	if movieID == "" {
		return fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}

	path := c.kind.Path() + "/" + url.PathEscape(movieID)
	return c.client.Do(ctx, http.MethodDelete, path, nil, nil)
}
