package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/spotlite/internal/formatter"
	"github.com/desertthunder/spotlite/internal/models"
)

var _ list.Item = eventItem{}

// eventItem wraps [models.Event] to implement [list.Item].
type eventItem struct {
	event models.Event
}

func (i eventItem) FilterValue() string { return i.event.Name }
func (i eventItem) Title() string       { return i.event.Name }
func (i eventItem) Description() string {
	parts := []string{i.event.Badge(), i.event.Location}
	if when := strings.TrimSpace(i.event.Date + " " + i.event.Time); when != "" {
		parts = append(parts, when)
	}
	parts = append(parts, formatter.FormatPrice(i.event.Price))
	return strings.Join(parts, " • ")
}

func eventItems(events models.EventCollection) []list.Item {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = eventItem{event: e}
	}
	return items
}
