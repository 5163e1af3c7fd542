package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
)

var _ models.Repository[*models.HistoryEntry] = (*HistoryRepository)(nil)

const historyColumns = "id, sequence, mood, requested_at, songs, created_at"

// HistoryRepository persists recommendation requests.
//
// Entries are append-only from the API's point of view; Delete exists for maintenance.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new [models.HistoryEntry] with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	sequence, err := NextSequence(r.db, "history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	entry.SetID(shared.GenerateID())
	entry.SetSequence(sequence)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	songs, err := json.Marshal(entry.Songs())
	if err != nil {
		return fmt.Errorf("failed to encode songs: %w", err)
	}

	query := `
		INSERT INTO history (id, sequence, mood, requested_at, songs, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, entry.ID(), sequence, entry.Mood(), entry.Timestamp(), string(songs), entry.CreatedAt()); err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Record stores one recommendation request.
func (r *HistoryRepository) Record(mood, timestamp string, songs []models.Song) error {
	return r.Create(models.NewHistoryEntry(0, mood, timestamp, songs))
}

// Get retrieves a history entry by ID
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	query := "SELECT " + historyColumns + " FROM history WHERE id = ?"
	return r.scan(r.db.QueryRow(query, id))
}

// Delete removes a history entry by ID
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("history entry not found: %s", id)
	}

	return nil
}

// List retrieves history entries, most recent first.
//
// Supported criteria: "mood" (string, case-insensitive) and "limit" (int, ignored when not positive).
func (r *HistoryRepository) List(criteria map[string]any) ([]*models.HistoryEntry, error) {
	query := "SELECT " + historyColumns + " FROM history WHERE 1 = 1"
	args := []any{}

	if mood, ok := criteria["mood"].(string); ok && mood != "" {
		query += " AND LOWER(mood) = LOWER(?)"
		args = append(args, mood)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []*models.HistoryEntry{}
	for rows.Next() {
		entry, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Recent returns up to limit entries as their JSON views, most recent first.
func (r *HistoryRepository) Recent(limit int) ([]models.HistoryView, error) {
	entries, err := r.List(map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}

	views := make([]models.HistoryView, len(entries))
	for i, e := range entries {
		views[i] = e.View()
	}
	return views, nil
}

func (r *HistoryRepository) scan(s scanner) (*models.HistoryEntry, error) {
	var (
		id          string
		sequence    int
		mood        string
		requestedAt string
		rawSongs    string
		createdAt   time.Time
	)

	err := s.Scan(&id, &sequence, &mood, &requestedAt, &rawSongs, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	var songs []models.Song
	if err := json.Unmarshal([]byte(rawSongs), &songs); err != nil {
		return nil, fmt.Errorf("failed to decode songs for history entry %s: %w", id, err)
	}

	entry := models.NewHistoryEntry(sequence, mood, requestedAt, songs)
	entry.SetID(id)
	entry.SetCreatedAt(createdAt)

	return entry, nil
}
