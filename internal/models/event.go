package models

import "strings"

// Category is an event genre as returned by the API.
type Category string

const (
	CategoryMusic         Category = "Music"
	CategoryWorkshop      Category = "Workshop"
	CategoryFestival      Category = "Festival"
	CategoryHealth        Category = "Health"
	CategoryEntertainment Category = "Entertainment"
)

// Event is a bookable catalog item.
type Event struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	OrganizerID string   `json:"organizerId"`
}

// CoverImage returns the first image URL, or "" when the event has none.
func (e Event) CoverImage() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0]
}

// Badge is the upper-cased category label shown on event cards.
func (e Event) Badge() string {
	return strings.ToUpper(string(e.Category))
}

// EventCollection is an ordered set of events from a single fetch.
type EventCollection []Event

// Find returns the event with the given ID.
func (c EventCollection) Find(id string) (Event, bool) {
	for _, e := range c {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// Clone returns a copy that shares no backing array with c.
func (c EventCollection) Clone() EventCollection {
	if c == nil {
		return nil
	}
	out := make(EventCollection, len(c))
	copy(out, c)
	return out
}
