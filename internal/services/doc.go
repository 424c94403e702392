// Package services implements the EventSpotLite API clients: [AuthClient] for
// registration and login, and [EventService] for the event catalog.
//
// # Transport
//
// [APIService] owns the base URL and the [http.Client]. Every request carries an
// X-Request-ID header and is optionally paced by a [rate.Limiter]. The client is
// expected to hold a cookie jar so the server's session cookies travel with
// later requests.
//
// Responses arrive wrapped in an [Envelope]. The envelope's statusCode decides the
// outcome; the HTTP status is used only when the body is not an envelope.
//
// # Authentication
//
// Catalog requests go through [oauth2.NewClient] backed by the session store's
// token source, which sets "Authorization: Bearer <accessToken>". When no session
// exists the header is sent with an empty token and the server decides.
//
// # Error Handling
//
// Failures are returned as [*APIError] tagged with a sentinel from the shared package:
//   - [shared.ErrDuplicateAccount] : register answered 409
//   - [shared.ErrRegistrationFailed] : register answered anything but 201 or 409
//   - [shared.ErrInvalidCredentials] : login answered 401
//   - [shared.ErrLoginFailed] : login answered anything but 200 or 401
//   - [shared.ErrCatalogFetchFailed] : event list answered anything but 200
//   - [shared.ErrNetwork] : no response was received
//
// [Describe] maps any of them to the message shown to the user.
package services
