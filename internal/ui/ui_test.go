package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotlite/internal/catalog"
	"github.com/desertthunder/spotlite/internal/navigation"
	"github.com/desertthunder/spotlite/internal/shared"
	th "github.com/desertthunder/spotlite/internal/testing"
)

var (
	genres    = []string{"Music", "Workshop", "Festival", "Health", "Entertainment"}
	locations = []string{"Chandigarh", "Panchkula", "Mohali"}
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and then runs any returned command once, feeding its
// message back when it is one of ours.
func send(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return m
	}
	if out, ok := cmd().(Msg); ok {
		m.Update(out)
	}
	return m
}

func newLoadedModel(t *testing.T) (*Model, *th.MockEventLister, *navigation.Recorder) {
	t.Helper()
	lister := &th.MockEventLister{Events: th.SampleEvents()}
	rec := &navigation.Recorder{}
	m := NewModel(context.Background(), catalog.New(lister, nil), rec, genres, locations)
	m.search.Cursor.SetMode(cursor.CursorStatic)

	cmd := m.Init()
	if !m.loading {
		t.Error("expected loading while the first fetch runs")
	}
	m.Update(cmd())
	if m.loading {
		t.Error("expected loading to end after fetch")
	}
	return m, lister, rec
}

func visibleNames(m *Model) []string {
	var names []string
	for _, item := range m.eventList.Items() {
		names = append(names, item.(eventItem).event.Name)
	}
	return names
}

func TestModel(t *testing.T) {
	t.Run("Init Loads Catalog", func(t *testing.T) {
		m, _, _ := newLoadedModel(t)
		if got := len(m.eventList.Items()); got != 5 {
			t.Errorf("expected 5 items, got %d", got)
		}
		if !strings.Contains(m.View(), "Loaded 5 events") {
			t.Error("expected load notice in view")
		}
	})

	t.Run("Genre Cycling Filters", func(t *testing.T) {
		m, _, _ := newLoadedModel(t)

		send(t, m, keyRunes("g"))
		if got := visibleNames(m); len(got) != 1 || got[0] != "Jazz Night" {
			t.Errorf("expected only Jazz Night, got %v", got)
		}

		send(t, m, keyRunes("G"))
		if m.catalog.Filter().Genre != catalog.All || len(m.eventList.Items()) != 5 {
			t.Errorf("expected All after stepping back, got %q", m.catalog.Filter().Genre)
		}

		send(t, m, keyRunes("G"))
		if m.catalog.Filter().Genre != "Entertainment" {
			t.Errorf("expected wrap to Entertainment, got %q", m.catalog.Filter().Genre)
		}
	})

	t.Run("Location Cycling Filters", func(t *testing.T) {
		m, _, _ := newLoadedModel(t)

		send(t, m, keyRunes("l"))
		if got := visibleNames(m); len(got) != 2 || got[0] != "Jazz Night" || got[1] != "Go Workshop" {
			t.Errorf("expected Chandigarh events in order, got %v", got)
		}

		send(t, m, keyRunes("c"))
		if !m.catalog.Filter().IsDefault() || len(m.eventList.Items()) != 5 {
			t.Error("expected clear to reset filters")
		}
	})

	t.Run("Search Filters Per Keystroke", func(t *testing.T) {
		m, _, _ := newLoadedModel(t)

		send(t, m, keyRunes("/"))
		if !m.searching {
			t.Fatal("expected search mode")
		}

		send(t, m, keyRunes("m"))
		send(t, m, keyRunes("o"))
		send(t, m, keyRunes("h"))
		if m.catalog.Filter().SearchTerm != "moh" {
			t.Errorf("expected search term 'moh', got %q", m.catalog.Filter().SearchTerm)
		}
		if got := visibleNames(m); len(got) != 2 || got[0] != "Yoga Camp" || got[1] != "Comedy Hour" {
			t.Errorf("expected Mohali events, got %v", got)
		}

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.searching || m.catalog.Filter().SearchTerm != "moh" {
			t.Error("expected enter to keep the term and leave search mode")
		}

		send(t, m, keyRunes("/"))
		send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.catalog.Filter().SearchTerm != "" || len(m.eventList.Items()) != 5 {
			t.Error("expected esc to clear the search")
		}
	})

	t.Run("Failed Refresh Keeps List", func(t *testing.T) {
		m, lister, _ := newLoadedModel(t)
		lister.Err = shared.ErrCatalogFetchFailed

		send(t, m, keyRunes("r"))
		if len(m.eventList.Items()) != 5 {
			t.Errorf("expected previous items to remain, got %d", len(m.eventList.Items()))
		}
		if !m.noticeErr || !strings.Contains(m.notice, "Could not load events") {
			t.Errorf("expected error notice, got %q", m.notice)
		}
	})

	t.Run("Details And Buy", func(t *testing.T) {
		m, _, rec := newLoadedModel(t)

		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		if m.State() != DetailsView || m.Selected().ID != "e1" {
			t.Fatalf("expected details of e1, got view %d event %q", m.State(), m.Selected().ID)
		}
		if !strings.Contains(m.View(), "₹499 Onwards") {
			t.Error("expected price in details view")
		}

		send(t, m, keyRunes("o"))
		if last, ok := rec.Last(); !ok || last.Target != navigation.TargetDetails {
			t.Errorf("expected details navigation, got %+v", last)
		}

		send(t, m, keyRunes("b"))
		if m.State() != ConfirmBuyView {
			t.Fatalf("expected confirm view, got %d", m.State())
		}

		send(t, m, keyRunes("n"))
		if m.State() != DetailsView {
			t.Errorf("expected n to return to details, got %d", m.State())
		}

		send(t, m, keyRunes("b"))
		send(t, m, keyRunes("y"))
		last, _ := rec.Last()
		if last.Target != navigation.TargetPayment || last.Event.ID != "e1" {
			t.Errorf("expected payment navigation for e1, got %+v", last)
		}
		if !strings.Contains(m.notice, "Opened payment for Jazz Night") {
			t.Errorf("unexpected notice %q", m.notice)
		}

		send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.State() != EventListView {
			t.Errorf("expected esc to return to list, got %d", m.State())
		}
	})

	t.Run("Empty Result Message", func(t *testing.T) {
		m, _, _ := newLoadedModel(t)
		m.catalog.SetSearch("zzz")
		m.rebuild()
		if !strings.Contains(m.View(), "No events match") {
			t.Error("expected empty-state message")
		}
	})

	t.Run("Quit", func(t *testing.T) {
		m, _, _ := newLoadedModel(t)
		_, cmd := m.Update(keyRunes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}
