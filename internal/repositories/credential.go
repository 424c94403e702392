package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CredentialRepository persists session values in the session_values table.
//
// It implements session.Storage: Save and Remove run in a single transaction so a
// token pair is never half written.
type CredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new [CredentialRepository] with the given database connection
func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Load returns the stored values for keys; missing keys are omitted from the map.
func (r *CredentialRepository) Load(keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	query := fmt.Sprintf("SELECT key, value FROM session_values WHERE key IN (%s)", placeholders(len(keys)))

	rows, err := r.db.Query(query, toArgs(keys)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query session values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session value: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return values, nil
}

// Save upserts every value in one transaction.
func (r *CredentialRepository) Save(values map[string]string) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO session_values (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		now := time.Now()
		for key, value := range values {
			if _, err := tx.Exec(query, key, value, now); err != nil {
				return fmt.Errorf("failed to save %s: %w", key, err)
			}
		}
		return nil
	})
}

// Remove deletes keys in one transaction. Missing keys are not an error.
func (r *CredentialRepository) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return withTx(r.db, func(tx *sql.Tx) error {
		query := fmt.Sprintf("DELETE FROM session_values WHERE key IN (%s)", placeholders(len(keys)))
		if _, err := tx.Exec(query, toArgs(keys)...); err != nil {
			return fmt.Errorf("failed to remove session values: %w", err)
		}
		return nil
	})
}

// UpdatedAt returns when key was last written.
func (r *CredentialRepository) UpdatedAt(key string) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRow("SELECT updated_at FROM session_values WHERE key = ?", key).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, fmt.Errorf("session value not found: %s", key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query session value: %w", err)
	}
	return updatedAt, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(keys []string) []any {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}
