// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
)

// Call records one invocation on [FakeRecommender].
type Call struct {
	Method string
	Mood   string
	URL    string
	At     time.Time
	Fav    models.Favorite
}

// FakeRecommender is an in-memory test double for services.Recommender.
//
// Set the Err fields to make the matching operation fail. Favorites added through
// AddFavorite are kept unless FavoritesList is set explicitly.
type FakeRecommender struct {
	mu sync.Mutex

	Songs         map[string][]models.Song
	FavoritesList []models.Favorite

	RecommendErr error
	AddErr       error
	FavoritesErr error
	DeleteErr    error

	Calls []Call
}

// NewFakeRecommender creates a fake seeded with favs.
func NewFakeRecommender(favs ...models.Favorite) *FakeRecommender {
	return &FakeRecommender{Songs: map[string][]models.Song{}, FavoritesList: favs}
}

func (f *FakeRecommender) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
}

// CallsTo returns the recorded calls of method.
func (f *FakeRecommender) CallsTo(method string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var calls []Call
	for _, c := range f.Calls {
		if c.Method == method {
			calls = append(calls, c)
		}
	}
	return calls
}

func (f *FakeRecommender) Recommend(ctx context.Context, mood string, at time.Time) ([]models.Song, error) {
	f.record(Call{Method: "Recommend", Mood: mood, At: at})
	if f.RecommendErr != nil {
		return nil, f.RecommendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	songs := f.Songs[mood]
	if songs == nil {
		songs = []models.Song{}
	}
	return songs, nil
}

func (f *FakeRecommender) AddFavorite(ctx context.Context, fav models.Favorite) (string, error) {
	f.record(Call{Method: "AddFavorite", URL: fav.URL, Mood: fav.Mood, Fav: fav})
	if f.AddErr != nil {
		return "", f.AddErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.FavoritesList {
		if existing.URL == fav.URL {
			return "Song already in favorites", nil
		}
	}
	f.FavoritesList = append(f.FavoritesList, fav)
	return "Song added to favorites", nil
}

func (f *FakeRecommender) Favorites(ctx context.Context) ([]models.Favorite, error) {
	f.record(Call{Method: "Favorites"})
	if f.FavoritesErr != nil {
		return nil, f.FavoritesErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	favs := make([]models.Favorite, len(f.FavoritesList))
	copy(favs, f.FavoritesList)
	return favs, nil
}

func (f *FakeRecommender) DeleteFavorite(ctx context.Context, url string) (string, error) {
	f.record(Call{Method: "DeleteFavorite", URL: url})
	if f.DeleteErr != nil {
		return "", f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, fav := range f.FavoritesList {
		if fav.URL == url {
			f.FavoritesList = append(f.FavoritesList[:i], f.FavoritesList[i+1:]...)
			return "Song removed from favorites", nil
		}
	}
	return "", errors.New("Song not found in favorites")
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
