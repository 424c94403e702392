package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotlite/internal/catalog"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/services"
)

// CatalogHandler serves a [catalog.Catalog] as JSON.
type CatalogHandler struct {
	catalog   *catalog.Catalog
	genres    []string
	locations []string
	logger    *log.Logger
}

// NewCatalogHandler creates a handler. genres and locations canonicalise query values.
func NewCatalogHandler(cat *catalog.Catalog, genres, locations []string, logger *log.Logger) *CatalogHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &CatalogHandler{catalog: cat, genres: genres, locations: locations, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *CatalogHandler) Routes() []string {
	return []string{"/events", "/events/"}
}

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
}

type eventList struct {
	Filter    catalog.FilterState    `json:"filter"`
	Total     int                    `json:"total"`
	Count     int                    `json:"count"`
	FetchedAt time.Time              `json:"fetchedAt"`
	Events    models.EventCollection `json:"events"`
}

func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{StatusCode: status, Data: data, Message: message})
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	case path == "/events":
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, nil, "Method not allowed")
			return
		}
		h.list(w, r)
	case path == "/events/refresh":
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, nil, "Method not allowed")
			return
		}
		h.refresh(w, r)
	case strings.HasPrefix(path, "/events/"):
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, nil, "Method not allowed")
			return
		}
		h.show(w, strings.TrimPrefix(path, "/events/"))
	default:
		writeJSON(w, http.StatusNotFound, nil, "Not found")
	}
}

// list loads the catalog on first use, then filters it with the query.
func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Loaded() {
		if err := h.catalog.Refresh(r.Context()); err != nil {
			writeJSON(w, http.StatusBadGateway, nil, services.Describe(err))
			return
		}
	}

	q := r.URL.Query()
	filter := catalog.FilterState{
		SearchTerm: q.Get("search"),
		Genre:      catalog.Canonical(q.Get("genre"), h.genres),
		Location:   catalog.Canonical(q.Get("location"), h.locations),
	}

	all := h.catalog.Events()
	visible := catalog.ApplyFilters(all, filter)
	writeJSON(w, http.StatusOK, eventList{
		Filter:    filter,
		Total:     len(all),
		Count:     len(visible),
		FetchedAt: h.catalog.FetchedAt(),
		Events:    visible,
	}, "")
}

func (h *CatalogHandler) show(w http.ResponseWriter, id string) {
	event, ok := h.catalog.Lookup(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, nil, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, event, "")
}

func (h *CatalogHandler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Refresh(r.Context()); err != nil {
		h.logger.Warn("refresh failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]int{"count": len(h.catalog.Events())}, services.Describe(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": len(h.catalog.Events())}, "Events refreshed")
}

// Health reports whether the catalog has been loaded.
func Health(cat *catalog.Catalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"loaded":    cat.Loaded(),
			"fetchedAt": cat.FetchedAt(),
		}, "")
	})
}

// NewCatalogServer wires the router, middleware and handlers for addr.
func NewCatalogServer(addr string, cat *catalog.Catalog, genres, locations []string, logger *log.Logger) *http.Server {
	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger))
	router.Handle(http.MethodGet, "/health", Health(cat))
	router.Handler(NewCatalogHandler(cat, genres, locations, logger))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
