// Package navigation requests page changes carrying the selected event.
//
// The core only names a [Target] and hands over the event; how the payload is
// consumed belongs to the [Navigator].
package navigation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/shared"
)

// Target names a destination page.
type Target string

const (
	TargetPayment Target = "payment"
	TargetDetails Target = "details"
)

// ParseTarget accepts the known target names.
func ParseTarget(s string) (Target, error) {
	switch t := Target(s); t {
	case TargetPayment, TargetDetails:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown navigation target %q", shared.ErrInvalidArgument, s)
}

// Navigator moves the user to target with event as payload.
type Navigator interface {
	Navigate(ctx context.Context, target Target, event models.Event) error
}

// BrowserNavigator opens the web app page for the target in the system browser.
type BrowserNavigator struct {
	webURL string
	open   func(string) error
}

// NewBrowserNavigator creates a navigator rooted at webURL.
func NewBrowserNavigator(webURL string) *BrowserNavigator {
	return &BrowserNavigator{webURL: shared.NormalizeBaseURL(webURL), open: shared.OpenBrowser}
}

// URL returns the page address for target and event, {web}{target}?event={id}.
func (b *BrowserNavigator) URL(target Target, event models.Event) string {
	q := url.Values{"event": []string{event.ID}}
	return b.webURL + string(target) + "?" + q.Encode()
}

func (b *BrowserNavigator) Navigate(ctx context.Context, target Target, event models.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.webURL == "" {
		return fmt.Errorf("%w: web_url is not set", shared.ErrMissingConfig)
	}
	return b.open(b.URL(target, event))
}

// WriterNavigator prints the target and the event as JSON. Used with --print.
type WriterNavigator struct {
	w io.Writer
}

func NewWriterNavigator(w io.Writer) *WriterNavigator {
	return &WriterNavigator{w: w}
}

func (n *WriterNavigator) Navigate(ctx context.Context, target Target, event models.Event) error {
	payload, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	_, err = fmt.Fprintf(n.w, "navigate: %s\n%s\n", target, payload)
	return err
}

// Request is one recorded navigation.
type Request struct {
	Target Target
	Event  models.Event
}

// Recorder keeps navigation requests in memory.
type Recorder struct {
	mu       sync.Mutex
	requests []Request
}

func (r *Recorder) Navigate(ctx context.Context, target Target, event models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, Request{Target: target, Event: event})
	return nil
}

// Requests returns a copy of every recorded request in order.
func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

// Last returns the most recent request.
func (r *Recorder) Last() (Request, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return Request{}, false
	}
	return r.requests[len(r.requests)-1], true
}
