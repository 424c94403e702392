// Package repositories implements SQLite persistence for client-side state.
//
// Key Implementations:
//   - [CredentialRepository] : durable storage for the login session (access token,
//     refresh token, user profile), keyed by fixed names and written transactionally.
//
// The schema is created by the embedded migrations in the shared package.
package repositories
