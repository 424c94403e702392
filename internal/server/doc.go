// Package server provides HTTP routing, middleware, and a read-only JSON view of the event catalog.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Catalog Handler
//
// [CatalogHandler] serves the catalog held by a [catalog.Catalog]:
//   - GET /events?search=&genre=&location= : filtered events in catalog order
//   - GET /events/{id} : a single event
//   - POST /events/refresh : reload from the API
//
// Query filters are request-scoped and never change the shared catalog filter.
// A failed refresh answers 502 and keeps the previous collection.
//
// Responses use the same {statusCode, data, message} envelope as the upstream API.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
