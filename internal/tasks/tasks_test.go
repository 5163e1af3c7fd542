package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
)

type mockQuotes struct {
	quotes []string
	err    error
	asked  []int
}

func (m *mockQuotes) Quotes(ctx context.Context, count int) ([]string, error) {
	m.asked = append(m.asked, count)
	return m.quotes, m.err
}

type mockHistory struct {
	moods      []string
	timestamps []string
	songs      [][]models.Song
	err        error
}

func (m *mockHistory) Record(mood, timestamp string, songs []models.Song) error {
	m.moods = append(m.moods, mood)
	m.timestamps = append(m.timestamps, timestamp)
	m.songs = append(m.songs, songs)
	return m.err
}

func testCatalog() Catalog {
	return Catalog{
		"happy": {
			{Title: "Love Story", Artist: "Taylor Swift", URL: "https://youtu.be/1"},
			{Title: "Cantik", Artist: "Tiara Andini", URL: "https://youtu.be/2"},
			{Title: "The Lazy Song", Artist: "Bruno Mars", URL: "https://youtu.be/3"},
		},
	}
}

// noShuffle keeps selection order so assignments are predictable.
func noShuffle([]string) {}

func newTestEngine(q services.QuoteSource, h HistoryRecorder) *RecommendEngine {
	return NewRecommendEngine(EngineOpts{
		Catalog: testCatalog(),
		Quotes:  q,
		History: h,
		Logger:  log.New(io.Discard),
		Shuffle: noShuffle,
		Pick:    func(int) int { return 0 },
	})
}

func TestCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("every mood has songs", func(t *testing.T) {
		for _, m := range models.Moods {
			if got := len(catalog.Songs(m.String())); got != 6 {
				t.Errorf("%s: expected 6 songs, got %d", m, got)
			}
		}
		if got := len(catalog.Moods()); got != len(models.Moods) {
			t.Errorf("expected %d moods, got %d", len(models.Moods), got)
		}
	})

	t.Run("lookup ignores case", func(t *testing.T) {
		if len(catalog.Songs("HaPpY")) != 6 {
			t.Error("expected case-insensitive lookup")
		}
	})

	t.Run("unknown mood", func(t *testing.T) {
		songs := catalog.Songs("sleepy")
		if songs == nil || len(songs) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", songs)
		}
	})

	t.Run("returns a copy", func(t *testing.T) {
		songs := catalog.Songs("sad")
		songs[0].Quote = "mutated"
		if catalog.Songs("sad")[0].Quote != "" {
			t.Error("catalog was mutated through returned slice")
		}
	})
}

func TestRecommendEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("one quote per song", func(t *testing.T) {
		quotes := &mockQuotes{quotes: []string{`"a" - x`, `"b" - y`, `"c" - z`, `"d" - w`, `"e" - v`, `"f" - u`}}
		history := &mockHistory{}
		engine := newTestEngine(quotes, history)

		songs, err := engine.Recommend(ctx, "happy", "2024-01-01T00:00:00.000Z")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(songs) != 3 {
			t.Fatalf("expected 3 songs, got %d", len(songs))
		}
		if len(quotes.asked) != 1 || quotes.asked[0] != 6 {
			t.Errorf("expected one request for 6 quotes, got %v", quotes.asked)
		}

		want := []string{`"a" - x`, `"b" - y`, `"c" - z`}
		for i, song := range songs {
			if song.Quote != want[i] {
				t.Errorf("song %d quote = %s, want %s", i, song.Quote, want[i])
			}
		}

		if len(history.moods) != 1 || history.moods[0] != "happy" || history.timestamps[0] != "2024-01-01T00:00:00.000Z" {
			t.Errorf("unexpected history %+v", history)
		}
		if len(history.songs[0]) != 3 || history.songs[0][0].Quote == "" {
			t.Error("expected history to record quoted songs")
		}
	})

	t.Run("duplicates are skipped then topped up", func(t *testing.T) {
		quotes := &mockQuotes{quotes: []string{"same", "same", "other", "same", "same", "same"}}
		engine := newTestEngine(quotes, nil)

		songs, err := engine.Recommend(ctx, "happy", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := []string{songs[0].Quote, songs[1].Quote, songs[2].Quote}
		want := []string{"same", "other", "same"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("quotes = %v, want %v", got, want)
				break
			}
		}
	})

	t.Run("quote failure falls back to default quote", func(t *testing.T) {
		quotes := &mockQuotes{err: fmt.Errorf("%w: timeout", shared.ErrQuotesUnavailable)}
		engine := newTestEngine(quotes, nil)

		songs, err := engine.Recommend(ctx, "happy", "")
		if err != nil {
			t.Fatalf("quote failures must not fail the request: %v", err)
		}
		for _, song := range songs {
			if song.Quote != services.DefaultQuote {
				t.Errorf("expected default quote, got %s", song.Quote)
			}
		}
	})

	t.Run("partial quotes are padded", func(t *testing.T) {
		quotes := &mockQuotes{quotes: []string{"only"}, err: errors.New("random failed")}
		engine := newTestEngine(quotes, nil)

		songs, err := engine.Recommend(ctx, "happy", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if songs[0].Quote != "only" || songs[1].Quote != services.DefaultQuote {
			t.Errorf("unexpected quotes %q, %q", songs[0].Quote, songs[1].Quote)
		}
	})

	t.Run("shuffle is applied", func(t *testing.T) {
		quotes := &mockQuotes{quotes: []string{"1", "2", "3", "4", "5", "6"}}
		engine := NewRecommendEngine(EngineOpts{
			Catalog: testCatalog(),
			Quotes:  quotes,
			Logger:  log.New(io.Discard),
			Shuffle: func(q []string) { q[0], q[2] = q[2], q[0] },
		})

		songs, _ := engine.Recommend(ctx, "happy", "")
		if songs[0].Quote != "3" || songs[2].Quote != "1" {
			t.Errorf("expected shuffled quotes, got %s..%s", songs[0].Quote, songs[2].Quote)
		}
	})

	t.Run("unknown mood returns no songs and skips quotes", func(t *testing.T) {
		quotes := &mockQuotes{}
		history := &mockHistory{}
		engine := newTestEngine(quotes, history)

		songs, err := engine.Recommend(ctx, "sleepy", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if songs == nil || len(songs) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", songs)
		}
		if len(quotes.asked) != 0 {
			t.Error("expected no quote requests")
		}
		if len(history.moods) != 1 {
			t.Error("expected the request to be recorded")
		}
	})

	t.Run("missing mood", func(t *testing.T) {
		engine := newTestEngine(&mockQuotes{}, nil)

		_, err := engine.Recommend(ctx, "  ", "")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("history failure is not fatal", func(t *testing.T) {
		engine := newTestEngine(&mockQuotes{}, &mockHistory{err: errors.New("disk full")})

		songs, err := engine.Recommend(ctx, "HAPPY", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(songs) != 3 {
			t.Errorf("expected 3 songs, got %d", len(songs))
		}
	})

	t.Run("defaults", func(t *testing.T) {
		engine := NewRecommendEngine(EngineOpts{Logger: log.New(io.Discard)})

		songs, err := engine.Recommend(ctx, "romantic", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(songs) != 6 {
			t.Fatalf("expected 6 songs, got %d", len(songs))
		}
		for _, song := range songs {
			if !strings.Contains(song.Quote, "great work") {
				t.Errorf("expected default quote without a quote source, got %s", song.Quote)
			}
		}
	})
}
