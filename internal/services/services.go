// package services defines the [Recommender] interface and its HTTP implementation
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
)

// Fallback messages used when a failed response carries no error text.
const (
	FallbackRecommend = "Failed to fetch recommendations"
	FallbackAdd       = "Failed to add to favorites"
	FallbackFavorites = "Failed to fetch favorites"
	FallbackDelete    = "Failed to remove from favorites"
)

// Recommender is the client side of the recommendation backend.
//
// Implemented by [Client]; the UI and CLI depend on this interface only.
type Recommender interface {
	// Recommend fetches songs for mood. The request carries at as its timestamp.
	Recommend(ctx context.Context, mood string, at time.Time) ([]models.Song, error)

	// AddFavorite saves fav and returns the server's confirmation message.
	AddFavorite(ctx context.Context, fav models.Favorite) (string, error)

	// Favorites returns the full, unfiltered favorites list.
	Favorites(ctx context.Context) ([]models.Favorite, error)

	// DeleteFavorite removes the favorite identified by url.
	DeleteFavorite(ctx context.Context, url string) (string, error)
}

// HistoryReader lists recorded recommendation requests.
type HistoryReader interface {
	History(ctx context.Context, limit int) ([]models.HistoryView, error)
}

// APIError is an application failure: a non-2xx response from the backend.
//
// Message is the response's error field, or the operation's fallback text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return shared.ErrAPIRequest }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// Message returns the text the UI shows for err.
//
// Application failures yield the server message, anything else its error string.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func newAPIError(resp *APIResponse, fallback string) *APIError {
	msg := fallback
	if resp.IsJSON {
		if m, ok := resp.JSONData.(map[string]any); ok {
			if s, ok := m["error"].(string); ok && s != "" {
				msg = s
			}
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func decodeError(err error) error {
	return fmt.Errorf("failed to decode response: %w", err)
}
