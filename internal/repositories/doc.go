// Package repositories implements SQLite persistence for the recommendation backend.
//
// Key Implementations:
//   - [FavoriteRepository] : saved songs keyed by url, soft deleted on removal
//   - [HistoryRepository] : one row per recommendation request, songs stored as JSON
//
// A partial unique index allows one live favorite per url, so removing a song and adding it
// again creates a new row rather than reviving the old one.
//
// Sequence numbers give stable insertion ordering independent of UUIDs and timestamps.
// The [NextSequence] function atomically increments per-table counters kept in dedicated sequence tables.
package repositories
