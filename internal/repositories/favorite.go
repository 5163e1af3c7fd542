package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/mattn/go-sqlite3"
)

var _ models.Repository[*models.FavoriteRecord] = (*FavoriteRepository)(nil)

const favoriteColumns = "id, sequence, title, artist, url, mood, created_at, updated_at, deleted_at"

// FavoriteRepository implements models.Repository[*models.FavoriteRecord] for saved songs.
//
// A url has at most one live favorite. Removal is a soft delete, so a removed song can be added again.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new FavoriteRepository with the given database connection
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts a new [models.FavoriteRecord] with generated ID and sequence.
//
// Returns [shared.ErrDuplicateFavorite] when a live favorite already uses the url.
func (r *FavoriteRepository) Create(fav *models.FavoriteRecord) error {
	sequence, err := NextSequence(r.db, "favorites")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	fav.SetID(shared.GenerateID())
	fav.SetSequence(sequence)

	if err := fav.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO favorites (id, sequence, title, artist, url, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	f := fav.Favorite()
	_, err = r.db.Exec(query, fav.ID(), sequence, f.Title, f.Artist, f.URL, f.Mood, fav.CreatedAt(), fav.UpdatedAt())
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", shared.ErrDuplicateFavorite, f.URL)
	}
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	return nil
}

// Add stores fav unless a live favorite with the same url exists.
//
// Reports whether a new record was created. The returned record is the stored one in both cases.
func (r *FavoriteRepository) Add(fav models.Favorite) (*models.FavoriteRecord, bool, error) {
	existing, err := r.GetByURL(fav.URL)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, shared.ErrFavoriteNotFound) {
		return nil, false, err
	}

	record := models.NewFavoriteRecord(0, fav)
	if err := r.Create(record); err != nil {
		if errors.Is(err, shared.ErrDuplicateFavorite) {
			existing, getErr := r.GetByURL(fav.URL)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return record, true, nil
}

// Get retrieves a favorite by ID, excluding soft-deleted favorites
func (r *FavoriteRepository) Get(id string) (*models.FavoriteRecord, error) {
	query := "SELECT " + favoriteColumns + " FROM favorites WHERE id = ? AND deleted_at IS NULL"
	return r.scan(r.db.QueryRow(query, id))
}

// GetByURL retrieves the live favorite for url
func (r *FavoriteRepository) GetByURL(url string) (*models.FavoriteRecord, error) {
	query := "SELECT " + favoriteColumns + " FROM favorites WHERE url = ? AND deleted_at IS NULL"
	return r.scan(r.db.QueryRow(query, url))
}

// Delete soft-deletes a favorite by ID
func (r *FavoriteRepository) Delete(id string) error {
	return r.softDelete("id", id)
}

// DeleteByURL soft-deletes the live favorite for url.
//
// Returns [shared.ErrFavoriteNotFound] when there is none.
func (r *FavoriteRepository) DeleteByURL(url string) error {
	return r.softDelete("url", url)
}

func (r *FavoriteRepository) softDelete(column, value string) error {
	now := time.Now()

	query := fmt.Sprintf(`
		UPDATE favorites
		SET deleted_at = ?, updated_at = ?
		WHERE %s = ? AND deleted_at IS NULL
	`, column)

	result, err := r.db.Exec(query, now, now, value)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrFavoriteNotFound, value)
	}

	return nil
}

// List retrieves live favorites in insertion order.
//
// Supported criteria: "mood" (string, case-insensitive, "all" disables the filter).
func (r *FavoriteRepository) List(criteria map[string]any) ([]*models.FavoriteRecord, error) {
	query := "SELECT " + favoriteColumns + " FROM favorites WHERE deleted_at IS NULL"
	args := []any{}

	if mood, ok := criteria["mood"].(string); ok && mood != "" && mood != models.FilterAll {
		query += " AND LOWER(mood) = LOWER(?)"
		args = append(args, mood)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favs := []*models.FavoriteRecord{}
	for rows.Next() {
		fav, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		favs = append(favs, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return favs, nil
}

// Favorites returns the live favorites as plain [models.Favorite] values.
func (r *FavoriteRepository) Favorites() ([]models.Favorite, error) {
	records, err := r.List(nil)
	if err != nil {
		return nil, err
	}

	favs := make([]models.Favorite, len(records))
	for i, rec := range records {
		favs[i] = rec.Favorite()
	}
	return favs, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func (r *FavoriteRepository) scan(s scanner) (*models.FavoriteRecord, error) {
	var (
		id        string
		sequence  int
		fav       models.Favorite
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := s.Scan(&id, &sequence, &fav.Title, &fav.Artist, &fav.URL, &fav.Mood, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan favorite: %w", err)
	}

	rec := models.NewFavoriteRecord(sequence, fav)
	rec.SetID(id)
	rec.SetCreatedAt(createdAt)
	rec.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		rec.SetDeletedAt(&deletedAt.Time)
	}

	return rec, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
