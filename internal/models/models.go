// package models defines the data model for the mood recommendation service
package models

import (
	"time"
)

// Model is a persisted record.
//
// Sequence orders records of one kind: favorites by insertion, history by recency.
// Implementations are [FavoriteRecord] and [HistoryEntry].
type Model interface {
	ID() string
	Sequence() int
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Validate() error
}

// Repository is the storage contract shared by the favorites and history stores.
//
// List accepts column filters; keys a store does not know are ignored.
type Repository[T Model] interface {
	Create(model T) error
	Get(id string) (T, error)
	Delete(id string) error
	List(criteria map[string]any) ([]T, error)
}
