package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/navigation"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgEventsFetched MsgKind = iota
	MsgNavigated
)

type navigated struct {
	target navigation.Target
	event  models.Event
	err    error
}

// eventsFetchedMsg is the constructor for [MsgEventsFetched]. The events themselves
// are already in the catalog.
func eventsFetchedMsg(err error) Msg {
	return Msg{kind: MsgEventsFetched, data: err}
}

// navigatedMsg is the constructor for [MsgNavigated]
func navigatedMsg(target navigation.Target, event models.Event, err error) Msg {
	return Msg{kind: MsgNavigated, data: navigated{target: target, event: event, err: err}}
}
