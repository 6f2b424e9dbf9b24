package models

import (
	"encoding/json"
	"fmt"
)

// FlexString decodes a JSON value that different backends serve as either a
// string or a number (prices, ids). Numbers keep their literal form, null
// decodes to the empty string.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value is neither string nor number: %w", err)
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// Film represents a catalog record as received from the backend.
// Immutable once received; formatting happens at display time only.
type Film struct {
	FlimID   FlexString `json:"flim_id"` // primary identifier (legacy column spelling, kept on the wire)
	LegacyID FlexString `json:"id"`      // alternate identifier used by older payloads
	Title    string     `json:"title"`
	TitleRU  string     `json:"title_ru"` // localized title, optional
	Author   string     `json:"author"`
	Price    FlexString `json:"price"`
	Genre    string     `json:"genre_title"`
	Poster   string     `json:"movie_base64"` // embedded image payload: data URI or raw base64
}

// Key returns the identifier used for card identity and collection
// membership: the primary id, falling back to the alternate field when the
// primary is absent. Always a string so that numeric and string ids from
// different sources compare equal.
func (f Film) Key() string {
	if f.FlimID != "" {
		return f.FlimID.String()
	}
	return f.LegacyID.String()
}

// DisplayTitle returns the localized title, falling back to the original.
func (f Film) DisplayTitle() string {
	if f.TitleRU != "" {
		return f.TitleRU
	}
	return f.Title
}

// Item projects the film into a collection entry.
func (f Film) Item() CollectionItem {
	return CollectionItem{
		MovieID: f.Key(),
		Title:   f.Title,
		Author:  f.Author,
		Price:   f.Price.String(),
	}
}

// CollectionItem is a cart or bookmark entry: only what the UI needs to
// redisplay the entry without refetching the full record. Unique by MovieID
// within its collection; uniqueness is enforced by the sync store.
type CollectionItem struct {
	MovieID string `json:"movie_id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Price   string `json:"price"`
}

// CollectionKind selects one of the two server-backed collections.
type CollectionKind string

const (
	KindCart      CollectionKind = "cart"
	KindBookmarks CollectionKind = "bookmarks"
)

// Path returns the API path of the collection under the versioned prefix.
func (k CollectionKind) Path() string { return "/" + string(k) }

func (k CollectionKind) String() string { return string(k) }

// SortField selects the ordering of a rendered film list.
type SortField string

const (
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
	SortByPrice  SortField = "price"
)

// ParseSortField validates a user-supplied sort field name.
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case SortByTitle, SortByAuthor, SortByPrice:
		return SortField(s), nil
	default:
		return "", fmt.Errorf("unknown sort field %q", s)
	}
}
