package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/formatter"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
)

var (
	_ list.Item = filmItem{}
	_ list.Item = collectionEntryItem{}
)

// filmItem wraps [models.Film] to implement [list.Item].
type filmItem struct {
	film     models.Film
	currency string
}

func (i filmItem) FilterValue() string { return i.film.DisplayTitle() }
func (i filmItem) Title() string       { return i.film.DisplayTitle() }
func (i filmItem) Description() string {
	return fmt.Sprintf("%s • %s",
		formatter.FormatAuthor(i.film.Author),
		formatter.FormatPrice(i.film.Price.String(), i.currency))
}

// collectionEntryItem wraps [models.CollectionItem] to implement [list.Item].
type collectionEntryItem struct {
	entry    models.CollectionItem
	currency string
}

func (i collectionEntryItem) FilterValue() string { return i.entry.Title }
func (i collectionEntryItem) Title() string       { return i.entry.Title }
func (i collectionEntryItem) Description() string {
	return fmt.Sprintf("%s • %s",
		formatter.FormatAuthor(i.entry.Author),
		formatter.FormatPrice(i.entry.Price, i.currency))
}
