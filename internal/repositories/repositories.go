package repositories

import (
	"database/sql"
	"fmt"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// NextSequence increments and returns the counter kept in "<table>_sequence".
//
// The counter table holds a single row (id = 1). The bump and the read are one
// statement, so concurrent writers never observe the same value.
// Sequences order favorites by insertion and history by recency. They never leave the server.
func NextSequence(q rowQuerier, table string) (int, error) {
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)

	var sequence int
	if err := q.QueryRow(query).Scan(&sequence); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("sequence for %s is not seeded", table)
		}
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	return sequence, nil
}
