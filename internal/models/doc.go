// Package models defines the domain entities shared by the spotlite client.
//
// The package contains three groups of types:
//
// 1. Account types exchanged with the auth endpoints
//   - [Credentials] : registration/login form values (transient, never persisted)
//   - [Role] : "User" or "Event Organizer"
//   - [User] : profile returned by a successful login
//
// 2. Session types held by the session store
//   - [Tokens] : opaque bearer access/refresh pair
//   - [Session] : tokens plus the logged-in [User]
//
// 3. Catalog types returned by the events endpoint
//   - [Event] : an immutable snapshot, identified by ID
//   - [Category] : event genre
//   - [EventCollection] : ordered events, replaced wholesale on every fetch
package models
