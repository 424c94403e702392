package catalog

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/shared"
	tu "github.com/desertthunder/spotlite/internal/testing"
)

// gatedLister blocks every fetch until release is closed.
type gatedLister struct {
	calls   atomic.Int32
	release chan struct{}
}

func (g *gatedLister) ListEvents(ctx context.Context) (models.EventCollection, error) {
	g.calls.Add(1)
	<-g.release
	return tu.SampleEvents(), nil
}

func ids(events models.EventCollection) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterState(t *testing.T) {
	jazz := models.Event{ID: "1", Name: "Jazz Night", Location: "Mohali", Category: models.CategoryMusic}

	tests := []struct {
		name   string
		filter FilterState
		want   bool
	}{
		{"default", DefaultFilter(), true},
		{"zero value", FilterState{}, true},
		{"name substring any case", FilterState{SearchTerm: "jAZZ"}, true},
		{"location substring", FilterState{SearchTerm: "moh"}, true},
		{"no substring", FilterState{SearchTerm: "rock"}, false},
		{"genre equal", FilterState{Genre: "Music", Location: All}, true},
		{"genre differs", FilterState{Genre: "Workshop", Location: All}, false},
		{"genre is exact", FilterState{Genre: "music", Location: All}, false},
		{"location equal", FilterState{Genre: All, Location: "Mohali"}, true},
		{"location differs", FilterState{Genre: All, Location: "Chandigarh"}, false},
		{"all conditions", FilterState{SearchTerm: "night", Genre: "Music", Location: "Mohali"}, true},
		{"one condition fails", FilterState{SearchTerm: "night", Genre: "Music", Location: "Panchkula"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(jazz); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("IsDefault", func(t *testing.T) {
		if !DefaultFilter().IsDefault() || !(FilterState{}).IsDefault() {
			t.Error("expected default filters to report default")
		}
		if (FilterState{SearchTerm: "x"}).IsDefault() {
			t.Error("expected search term to make filter non-default")
		}
	})
}

func TestApplyFilters(t *testing.T) {
	t.Run("Default Returns Full Collection In Order", func(t *testing.T) {
		events := tu.SampleEvents()
		got := ApplyFilters(events, DefaultFilter())
		if !reflect.DeepEqual(ids(got), ids(events)) {
			t.Errorf("expected %v, got %v", ids(events), ids(got))
		}
	})

	t.Run("Preserves Order", func(t *testing.T) {
		got := ApplyFilters(tu.SampleEvents(), FilterState{Genre: All, Location: "Chandigarh"})
		if want := []string{"e1", "e4"}; !reflect.DeepEqual(ids(got), want) {
			t.Errorf("expected %v, got %v", want, ids(got))
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		f := FilterState{SearchTerm: "o", Genre: All, Location: "Mohali"}
		once := ApplyFilters(tu.SampleEvents(), f)
		twice := ApplyFilters(once, f)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("expected idempotent result, got %v then %v", ids(once), ids(twice))
		}
	})

	t.Run("Does Not Alias Input", func(t *testing.T) {
		events := tu.SampleEvents()
		got := ApplyFilters(events, DefaultFilter())
		got[0].Name = "changed"
		if events[0].Name == "changed" {
			t.Error("result shares backing array with input")
		}
	})

	t.Run("Empty Collection", func(t *testing.T) {
		if got := ApplyFilters(nil, DefaultFilter()); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("Genre Example", func(t *testing.T) {
		events := models.EventCollection{
			{ID: "1", Name: "Jazz Night", Location: "Mohali", Category: "Music"},
			{ID: "2", Name: "Art Expo", Location: "Chandigarh", Category: "Workshop"},
		}
		got := ApplyFilters(events, FilterState{SearchTerm: "", Genre: "Music", Location: All})
		if len(got) != 1 || got[0].Name != "Jazz Night" {
			t.Errorf("expected only Jazz Night, got %v", got)
		}
	})
}

func TestCanonical(t *testing.T) {
	options := []string{"Music", "Workshop"}
	tests := []struct {
		in, want string
	}{
		{"", All},
		{"all", All},
		{" ALL ", All},
		{"music", "Music"},
		{"WORKSHOP", "Workshop"},
		{"Opera", "Opera"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Canonical(tt.in, options); got != tt.want {
				t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCycle(t *testing.T) {
	options := []string{"Music", "Workshop"}

	t.Run("Forward Wraps", func(t *testing.T) {
		v := All
		var seen []string
		for range 3 {
			v = Cycle(v, options, 1)
			seen = append(seen, v)
		}
		if want := []string{"Music", "Workshop", All}; !reflect.DeepEqual(seen, want) {
			t.Errorf("expected %v, got %v", want, seen)
		}
	})

	t.Run("Backward Wraps", func(t *testing.T) {
		if got := Cycle(All, options, -1); got != "Workshop" {
			t.Errorf("expected Workshop, got %s", got)
		}
	})

	t.Run("Unknown Restarts", func(t *testing.T) {
		if got := Cycle("Opera", options, 1); got != "Music" {
			t.Errorf("expected Music, got %s", got)
		}
	})
}

func TestCatalog(t *testing.T) {
	t.Run("Refresh Replaces Collection", func(t *testing.T) {
		lister := &tu.MockEventLister{Events: tu.SampleEvents()}
		c := New(lister, nil)

		if c.Loaded() {
			t.Error("expected catalog to start unloaded")
		}
		if err := c.Refresh(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !c.Loaded() || c.FetchedAt().IsZero() {
			t.Error("expected catalog to be loaded")
		}
		if len(c.Events()) != 5 {
			t.Errorf("expected 5 events, got %d", len(c.Events()))
		}

		lister.Events = lister.Events[:2]
		c.Refresh(context.Background())
		if len(c.Events()) != 2 {
			t.Errorf("expected wholesale replacement with 2 events, got %d", len(c.Events()))
		}
	})

	t.Run("Failed Refresh Keeps Previous Collection", func(t *testing.T) {
		lister := &tu.MockEventLister{Events: tu.SampleEvents()}
		c := New(lister, nil)
		c.Refresh(context.Background())
		before := c.Events()

		lister.Err = shared.ErrCatalogFetchFailed
		err := c.Refresh(context.Background())
		if !errors.Is(err, shared.ErrCatalogFetchFailed) {
			t.Fatalf("expected ErrCatalogFetchFailed, got %v", err)
		}
		if !reflect.DeepEqual(c.Events(), before) {
			t.Error("expected collection to be unchanged after failed refresh")
		}
	})

	t.Run("Visible Follows Filter Changes", func(t *testing.T) {
		c := New(&tu.MockEventLister{}, nil)
		c.Replace(tu.SampleEvents())

		c.SetGenre("Music")
		if got := ids(c.Visible()); !reflect.DeepEqual(got, []string{"e1"}) {
			t.Errorf("expected [e1], got %v", got)
		}

		c.SetGenre("")
		c.SetLocation("Mohali")
		if got := ids(c.Visible()); !reflect.DeepEqual(got, []string{"e2", "e5"}) {
			t.Errorf("expected [e2 e5], got %v", got)
		}

		c.SetSearch("COMEDY")
		if got := ids(c.Visible()); !reflect.DeepEqual(got, []string{"e5"}) {
			t.Errorf("expected [e5], got %v", got)
		}

		c.ResetFilter()
		if !c.Filter().IsDefault() || len(c.Visible()) != 5 {
			t.Error("expected reset to show every event")
		}
	})

	t.Run("SetFilter Fills All", func(t *testing.T) {
		c := New(&tu.MockEventLister{}, nil)
		c.SetFilter(FilterState{SearchTerm: "x"})
		if f := c.Filter(); f.Genre != All || f.Location != All {
			t.Errorf("expected All defaults, got %+v", f)
		}
	})

	t.Run("Lookup Ignores Filter", func(t *testing.T) {
		c := New(&tu.MockEventLister{}, nil)
		c.Replace(tu.SampleEvents())
		c.SetGenre("Health")

		if _, ok := c.Lookup("e1"); !ok {
			t.Error("expected filtered-out event to be found")
		}
		if _, ok := c.Lookup("missing"); ok {
			t.Error("expected missing event to be absent")
		}
	})

	t.Run("Events Returns Copy", func(t *testing.T) {
		c := New(&tu.MockEventLister{}, nil)
		c.Replace(tu.SampleEvents())
		c.Events()[0].Name = "mutated"
		if e, _ := c.Lookup("e1"); e.Name == "mutated" {
			t.Error("expected Events to return a copy")
		}
	})

	t.Run("Concurrent Refreshes Share One Fetch", func(t *testing.T) {
		lister := &gatedLister{release: make(chan struct{})}
		c := New(lister, nil)

		var wg sync.WaitGroup
		errs := make(chan error, 4)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- c.Refresh(context.Background())
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(lister.release)
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		}
		if n := lister.calls.Load(); n != 1 {
			t.Errorf("expected a single fetch, got %d", n)
		}
		if len(c.Events()) != 5 {
			t.Errorf("expected 5 events, got %d", len(c.Events()))
		}
	})
}
