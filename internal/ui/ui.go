package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/formatter"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/services"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/store"
	"github.com/DeutscheWaffel/Videoteka-UP/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	CartView
	BookmarksView
	LoginView
	RegisterView
)

// Opts carries the model's dependencies.
type Opts struct {
	Account    *services.AccountService
	Engine     *tasks.CatalogEngine
	Session    *store.Session
	Cart       *store.SyncStore
	Bookmarks  *store.SyncStore
	LandingURL string
	Currency   string
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	opts   Opts
	width  int
	height int

	films     []models.Film          // listing in fetch order; sorts never mutate it
	index     map[string]models.Film // id to record, selections resolve here
	sortField models.SortField       // empty means fetch order

	filmList       list.Model
	collectionList list.Model

	// long-lived; the view state decides which one is shown
	loginForm    *form
	registerForm *form

	status string
	err    error
	help   help.Model
	keys   keyMap
}

type loadedMsg struct {
	result *tasks.LoadResult
	err    error
}

type loginDoneMsg struct {
	err error
}

type registerDoneMsg struct {
	err error
}

type toggledMsg struct {
	kind   models.CollectionKind
	title  string
	member bool
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	filmList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	filmList.Title = "Videoteka"

	collectionList := list.New(nil, list.NewDefaultDelegate(), 0, 0)

	return &Model{
		ctx:            ctx,
		view:           BrowseView,
		opts:           opts,
		filmList:       filmList,
		collectionList: collectionList,
		loginForm:      newLoginForm(),
		registerForm:   newRegisterForm(),
		help:           help.New(),
		keys:           newKeyMap(),
	}
}

// Init kicks off the initial catalog load.
func (m *Model) Init() tea.Cmd {
	return m.loadCatalog()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filmList.SetSize(msg.Width-4, msg.Height-12)
		m.collectionList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case CartView, BookmarksView:
			return m.handleCollectionKeys(msg)
		case LoginView:
			return m.handleLoginKeys(msg)
		case RegisterView:
			return m.handleRegisterKeys(msg)
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.films = msg.result.Films
		m.index = formatter.CardIndex(m.films)
		m.status = fmt.Sprintf("Loaded %d films", len(m.films))
		for _, failure := range msg.result.RefreshFailures {
			m.status = fmt.Sprintf("%s refresh failed, showing cached copy", failure.Kind)
		}
		return m, m.rebuildFilmList()

	case loginDoneMsg:
		if msg.err != nil {
			m.loginForm.setError(msg.err.Error())
			return m, nil
		}
		m.loginForm.reset()
		m.view = BrowseView
		m.status = styles.ok.Render("Logged in")
		return m, m.loadCatalog()

	case registerDoneMsg:
		if msg.err != nil {
			m.registerForm.setError(msg.err.Error())
			return m, nil
		}
		m.registerForm.reset()
		m.loginForm.reset()
		m.view = LoginView
		m.status = styles.ok.Render("Registration complete, log in")
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Toggle failed: %v", msg.err))
			return m, nil
		}
		verb := "removed from"
		if msg.member {
			verb = "added to"
		}
		m.status = styles.ok.Render(fmt.Sprintf("✓ %s %s %s", msg.title, verb, msg.kind))
		if m.view == CartView || m.view == BookmarksView {
			return m, m.rebuildCollectionList()
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case BrowseView:
		return m.renderBrowse()
	case CartView, BookmarksView:
		return m.renderCollection()
	case LoginView:
		return m.renderForm(m.loginForm)
	case RegisterView:
		return m.renderForm(m.registerForm)
	default:
		return ""
	}
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.sortTitle):
		m.sortField = models.SortByTitle
		return m, m.rebuildFilmList()
	case key.Matches(msg, m.keys.sortAuthor):
		m.sortField = models.SortByAuthor
		return m, m.rebuildFilmList()
	case key.Matches(msg, m.keys.sortPrice):
		m.sortField = models.SortByPrice
		return m, m.rebuildFilmList()
	case key.Matches(msg, m.keys.cart):
		return m, m.toggleSelected(m.opts.Cart)
	case key.Matches(msg, m.keys.bookmark):
		return m, m.toggleSelected(m.opts.Bookmarks)
	case key.Matches(msg, m.keys.cartView):
		return m.openCollection(CartView)
	case key.Matches(msg, m.keys.marksView):
		return m.openCollection(BookmarksView)
	case key.Matches(msg, m.keys.login):
		m.loginForm.reset()
		m.view = LoginView
		return m, nil
	case key.Matches(msg, m.keys.register):
		m.registerForm.reset()
		m.view = RegisterView
		return m, nil
	}

	var cmd tea.Cmd
	m.filmList, cmd = m.filmList.Update(msg)
	return m, cmd
}

func (m *Model) handleCollectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.browse):
		m.view = BrowseView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m, m.toggleCollectionEntry()
	}

	var cmd tea.Cmd
	m.collectionList, cmd = m.collectionList.Update(msg)
	return m, cmd
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.loginForm.reset()
		m.view = BrowseView
		return m, nil
	case "tab", "shift+tab", "down", "up":
		m.loginForm.next()
		return m, nil
	case "enter":
		return m, m.submitLogin()
	}
	return m, m.loginForm.update(msg)
}

func (m *Model) handleRegisterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.registerForm.reset()
		m.view = BrowseView
		return m, nil
	case "tab", "shift+tab", "down", "up":
		m.registerForm.next()
		return m, nil
	case "enter":
		return m, m.submitRegister()
	}
	return m, m.registerForm.update(msg)
}

func (m *Model) openCollection(view ViewState) (tea.Model, tea.Cmd) {
	m.view = view
	if view == CartView {
		m.collectionList.Title = "Cart"
	} else {
		m.collectionList.Title = "Bookmarks"
	}
	return m, m.rebuildCollectionList()
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		m.filmList, cmd = m.filmList.Update(msg)
	case CartView, BookmarksView:
		m.collectionList, cmd = m.collectionList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		result, err := m.opts.Engine.Load(m.ctx, nil)
		return loadedMsg{result: result, err: err}
	}
}

// rebuildFilmList re-renders the listing from the in-memory cache: sorting
// never refetches.
func (m *Model) rebuildFilmList() tea.Cmd {
	films := m.films
	if m.sortField != "" {
		films = formatter.SortFilms(m.films, m.sortField)
	}

	items := make([]list.Item, len(films))
	for i, f := range films {
		items[i] = filmItem{film: f, currency: m.opts.Currency}
	}
	return m.filmList.SetItems(items)
}

func (m *Model) rebuildCollectionList() tea.Cmd {
	var entries []models.CollectionItem
	if m.view == CartView && m.opts.Cart != nil {
		entries = m.opts.Cart.Items()
	} else if m.view == BookmarksView && m.opts.Bookmarks != nil {
		entries = m.opts.Bookmarks.Items()
	}

	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = collectionEntryItem{entry: entry, currency: m.opts.Currency}
	}
	return m.collectionList.SetItems(items)
}

// toggleSelected flips the selected film's membership in the given store.
func (m *Model) toggleSelected(s *store.SyncStore) tea.Cmd {
	if s == nil {
		m.status = styles.warn.Render("Log in to use collections")
		return nil
	}

	selected := m.filmList.SelectedItem()
	item, ok := selected.(filmItem)
	if !ok {
		return nil
	}

	// resolve through the index so the server gets the original record,
	// not re-parsed display text
	film := item.film
	if indexed, ok := m.index[film.Key()]; ok {
		film = indexed
	}

	return func() tea.Msg {
		member, err := s.Toggle(m.ctx, film)
		return toggledMsg{kind: s.Kind(), title: film.DisplayTitle(), member: member, err: err}
	}
}

// toggleCollectionEntry removes the selected entry from the collection
// being viewed.
func (m *Model) toggleCollectionEntry() tea.Cmd {
	s := m.opts.Cart
	if m.view == BookmarksView {
		s = m.opts.Bookmarks
	}
	if s == nil {
		return nil
	}

	selected := m.collectionList.SelectedItem()
	item, ok := selected.(collectionEntryItem)
	if !ok {
		return nil
	}

	film, found := m.index[item.entry.MovieID]
	if !found {
		film = models.Film{
			FlimID: models.FlexString(item.entry.MovieID),
			Title:  item.entry.Title,
			Author: item.entry.Author,
			Price:  models.FlexString(item.entry.Price),
		}
	}

	return func() tea.Msg {
		member, err := s.Toggle(m.ctx, film)
		return toggledMsg{kind: s.Kind(), title: film.DisplayTitle(), member: member, err: err}
	}
}

func (m *Model) submitLogin() tea.Cmd {
	values := m.loginForm.values()
	m.loginForm.setError("")
	username, password := values[0], values[1]

	return func() tea.Msg {
		token, err := m.opts.Account.Login(m.ctx, username, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := m.opts.Session.SetToken(token); err != nil {
			return loginDoneMsg{err: err}
		}
		if m.opts.LandingURL != "" {
			// post-login navigation is best-effort
			_ = shared.OpenBrowser(m.opts.LandingURL)
		}
		return loginDoneMsg{}
	}
}

func (m *Model) submitRegister() tea.Cmd {
	values := m.registerForm.values()
	m.registerForm.setError("")
	username, email, password, confirm := values[0], values[1], values[2], values[3]

	return func() tea.Msg {
		err := m.opts.Account.Register(m.ctx, username, email, password, confirm)
		return registerDoneMsg{err: err}
	}
}

func (m *Model) renderBrowse() string {
	detail := ""
	if item, ok := m.filmList.SelectedItem().(filmItem); ok {
		film := item.film
		if indexed, found := m.index[film.Key()]; found {
			film = indexed
		}
		detail = formatter.RenderCard(film, m.opts.Currency, m.opts.Cart, m.opts.Bookmarks)
	}

	helpKeys := []key.Binding{
		m.keys.cart, m.keys.bookmark,
		m.keys.sortTitle, m.keys.sortAuthor, m.keys.sortPrice,
		m.keys.cartView, m.keys.marksView,
		m.keys.login, m.keys.quit,
	}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", m.filmList.View(), detail, m.status, helpView)
}

func (m *Model) renderCollection() string {
	removeKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "remove"))
	helpKeys := []key.Binding{removeKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.collectionList.View(), m.status, helpView)
}

func (m *Model) renderForm(f *form) string {
	if f == nil {
		return ""
	}
	submitKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	nextKey := key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	helpKeys := []key.Binding{submitKey, nextKey, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s", f.view(), helpView)
}
