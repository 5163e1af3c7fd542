package models

import (
	"fmt"
	"time"
)

var (
	_ Model = (*FavoriteRecord)(nil)
	_ Model = (*HistoryEntry)(nil)
)

// FavoriteRecord is a persisted [Favorite] with bookkeeping fields.
type FavoriteRecord struct {
	id        string
	sequence  int
	favorite  Favorite
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewFavoriteRecord creates a record for fav with creation timestamps set to now.
func NewFavoriteRecord(sequence int, fav Favorite) *FavoriteRecord {
	now := time.Now()
	return &FavoriteRecord{sequence: sequence, favorite: fav, createdAt: now, updatedAt: now}
}

func (f *FavoriteRecord) ID() string            { return f.id }
func (f *FavoriteRecord) Sequence() int         { return f.sequence }
func (f *FavoriteRecord) Favorite() Favorite    { return f.favorite }
func (f *FavoriteRecord) URL() string           { return f.favorite.URL }
func (f *FavoriteRecord) CreatedAt() time.Time  { return f.createdAt }
func (f *FavoriteRecord) UpdatedAt() time.Time  { return f.updatedAt }
func (f *FavoriteRecord) DeletedAt() *time.Time { return f.deletedAt }

func (f *FavoriteRecord) SetID(id string)           { f.id = id }
func (f *FavoriteRecord) SetSequence(seq int)       { f.sequence = seq }
func (f *FavoriteRecord) SetCreatedAt(t time.Time)  { f.createdAt = t }
func (f *FavoriteRecord) SetUpdatedAt(t time.Time)  { f.updatedAt = t }
func (f *FavoriteRecord) SetDeletedAt(t *time.Time) { f.deletedAt = t }

// Validate requires an id and a url; the remaining fields are stored as given.
func (f *FavoriteRecord) Validate() error {
	if f.id == "" {
		return fmt.Errorf("favorite id is required")
	}
	if f.favorite.URL == "" {
		return fmt.Errorf("favorite url is required")
	}
	return nil
}

// HistoryEntry records one recommendation request and the songs returned for it.
type HistoryEntry struct {
	id        string
	sequence  int
	mood      string
	timestamp string
	songs     []Song
	createdAt time.Time
}

// NewHistoryEntry creates an entry for a request made at timestamp (client supplied, may be empty).
func NewHistoryEntry(sequence int, mood, timestamp string, songs []Song) *HistoryEntry {
	if songs == nil {
		songs = []Song{}
	}
	return &HistoryEntry{sequence: sequence, mood: mood, timestamp: timestamp, songs: songs, createdAt: time.Now()}
}

func (h *HistoryEntry) ID() string           { return h.id }
func (h *HistoryEntry) Sequence() int        { return h.sequence }
func (h *HistoryEntry) Mood() string         { return h.mood }
func (h *HistoryEntry) Timestamp() string    { return h.timestamp }
func (h *HistoryEntry) Songs() []Song        { return h.songs }
func (h *HistoryEntry) CreatedAt() time.Time { return h.createdAt }
func (h *HistoryEntry) UpdatedAt() time.Time { return h.createdAt }

func (h *HistoryEntry) SetID(id string)          { h.id = id }
func (h *HistoryEntry) SetSequence(seq int)      { h.sequence = seq }
func (h *HistoryEntry) SetCreatedAt(t time.Time) { h.createdAt = t }

func (h *HistoryEntry) Validate() error {
	if h.id == "" {
		return fmt.Errorf("history id is required")
	}
	if h.mood == "" {
		return fmt.Errorf("history mood is required")
	}
	return nil
}

// HistoryView is the JSON shape of a [HistoryEntry].
type HistoryView struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Timestamp string    `json:"timestamp"`
	Songs     []Song    `json:"songs"`
	CreatedAt time.Time `json:"created_at"`
}

// View converts the entry to its wire representation.
func (h *HistoryEntry) View() HistoryView {
	return HistoryView{ID: h.id, Mood: h.mood, Timestamp: h.timestamp, Songs: h.songs, CreatedAt: h.createdAt}
}
