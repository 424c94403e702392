package services

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/shared"
	"golang.org/x/oauth2"
)

const eventsPath = "events/"

// EventService implements [EventLister] with bearer authentication.
type EventService struct {
	api    *APIService
	tokens TokenProvider
	logger *log.Logger
}

// NewEventService creates an event client that reads the access token from tokens.
func NewEventService(api *APIService, tokens TokenProvider) *EventService {
	return &EventService{api: api, tokens: tokens, logger: api.logger}
}

// ListEvents fetches every event in server order.
func (s *EventService) ListEvents(ctx context.Context) (models.EventCollection, error) {
	resp, err := s.api.Do(ctx, s.client(ctx), http.MethodGet, eventsPath, nil)
	if err != nil {
		return nil, err
	}
	if resp.Status() != http.StatusOK {
		return nil, newAPIError(shared.ErrCatalogFetchFailed, resp)
	}

	var events models.EventCollection
	if err := resp.Decode(&events); err != nil {
		apiErr := newAPIError(shared.ErrCatalogFetchFailed, resp)
		apiErr.Err = err
		return nil, apiErr
	}
	if events == nil {
		events = models.EventCollection{}
	}

	s.logger.Debug("fetched events", "count", len(events))
	return events, nil
}

// client wraps the API transport so the token is read at request time.
func (s *EventService) client(ctx context.Context) *http.Client {
	if s.tokens == nil {
		return s.api.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.api.httpClient)
	return oauth2.NewClient(ctx, s.tokens.TokenSource())
}
