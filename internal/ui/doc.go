// Package ui implements an interactive event catalog browser using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [EventListView] : Browse the filtered catalog
//  2. [DetailsView] : Inspect a single event
//  3. [ConfirmBuyView] : Confirm before navigating to payment
//
// The [Model] keeps no copy of the filter state. Every search keystroke or genre/location
// change is written to the [catalog.Catalog] and the list is rebuilt from
// [catalog.Catalog.Visible] in the same Update call. The list's own fuzzy filter is disabled.
//
// Fetches run as a [tea.Cmd]. A failed refresh shows the notification and leaves the
// previous list in place.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
