package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	back       key.Binding
	cart       key.Binding
	bookmark   key.Binding
	sortTitle  key.Binding
	sortAuthor key.Binding
	sortPrice  key.Binding
	browse     key.Binding
	cartView   key.Binding
	marksView  key.Binding
	login      key.Binding
	register   key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		cart:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cart toggle")),
		bookmark:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark toggle")),
		sortTitle:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sort by title")),
		sortAuthor: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "sort by author")),
		sortPrice:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "sort by price")),
		browse:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "browse")),
		cartView:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "cart")),
		marksView:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "bookmarks")),
		login:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
		register:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.cart, k.bookmark, k.sortTitle, k.sortAuthor, k.sortPrice},
		{k.browse, k.cartView, k.marksView, k.login, k.register, k.quit},
	}
}
