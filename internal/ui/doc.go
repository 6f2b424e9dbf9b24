// Package ui implements an interactive terminal storefront using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the movie catalog:
//  1. [BrowseView] : The full listing with sorting and membership toggles
//  2. [CartView] : Entries currently in the cart
//  3. [BookmarksView] : Bookmarked entries
//  4. [LoginView] : Credential form; at most one form is ever active
//  5. [RegisterView] : Account creation form
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// The initial load runs through the catalog engine; collection refreshes that fail keep the cached mirrors on screen.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus sort keys (t/a/p),
// toggle keys (c/b), and view switches (1/2/3), with contextual help displayed via charmbracelet/bubbles/help.
package ui
