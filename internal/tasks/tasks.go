// package tasks implements the server-side recommendation flow.
package tasks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
)

// Engine produces recommendations for a mood.
type Engine interface {
	// Recommend returns the songs for mood, each carrying a quote. timestamp is the
	// client's request instant and is only recorded.
	Recommend(ctx context.Context, mood, timestamp string) ([]models.Song, error)
}

// HistoryRecorder stores recommendation requests.
//
// Implemented by repositories.HistoryRepository.
type HistoryRecorder interface {
	Record(mood, timestamp string, songs []models.Song) error
}

// EngineOpts configures a [RecommendEngine]. Only Quotes is required.
type EngineOpts struct {
	Catalog Catalog
	Quotes  services.QuoteSource
	History HistoryRecorder
	Logger  *log.Logger

	Shuffle func(quotes []string) // default: uniform shuffle
	Pick    func(n int) int       // default: uniform index in [0, n)
}

// RecommendEngine implements [Engine] over a [Catalog] and a [services.QuoteSource].
type RecommendEngine struct {
	catalog Catalog
	quotes  services.QuoteSource
	history HistoryRecorder
	logger  *log.Logger
	shuffle func([]string)
	pick    func(int) int
}

var _ Engine = (*RecommendEngine)(nil)

// NewRecommendEngine creates an engine from opts, filling in defaults.
func NewRecommendEngine(opts EngineOpts) *RecommendEngine {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Shuffle == nil {
		opts.Shuffle = func(q []string) {
			rand.Shuffle(len(q), func(i, j int) { q[i], q[j] = q[j], q[i] })
		}
	}
	if opts.Pick == nil {
		opts.Pick = rand.IntN
	}

	return &RecommendEngine{
		catalog: opts.Catalog,
		quotes:  opts.Quotes,
		history: opts.History,
		logger:  opts.Logger,
		shuffle: opts.Shuffle,
		pick:    opts.Pick,
	}
}

// Recommend implements [Engine].
//
// Quote failures never fail the request. History failures are logged and ignored.
func (e *RecommendEngine) Recommend(ctx context.Context, mood, timestamp string) ([]models.Song, error) {
	if strings.TrimSpace(mood) == "" {
		return nil, fmt.Errorf("%w: mood", shared.ErrMissingArgument)
	}

	songs := e.catalog.Songs(mood)
	if len(songs) > 0 {
		quotes := e.selectQuotes(e.fetchQuotes(ctx, 2*len(songs)), len(songs))
		for i := range songs {
			songs[i].Quote = quotes[i%len(quotes)]
		}
	}

	e.logger.Info("recommendation", "mood", mood, "songs", len(songs))

	if e.history != nil {
		if err := e.history.Record(mood, timestamp, songs); err != nil {
			e.logger.Error("failed to record history", "mood", mood, "error", err)
		}
	}

	return songs, nil
}

// fetchQuotes asks the quote source for count quotes and pads the result with
// [services.DefaultQuote] up to count.
func (e *RecommendEngine) fetchQuotes(ctx context.Context, count int) []string {
	var quotes []string
	if e.quotes != nil {
		got, err := e.quotes.Quotes(ctx, count)
		if err != nil {
			e.logger.Warn("quote service degraded", "wanted", count, "got", len(got), "error", err)
		}
		quotes = got
	}

	for len(quotes) < count {
		quotes = append(quotes, services.DefaultQuote)
	}
	return quotes
}

// selectQuotes keeps the first n distinct quotes of pool, tops up with random picks
// from pool when there are fewer, and shuffles the result.
func (e *RecommendEngine) selectQuotes(pool []string, n int) []string {
	seen := make(map[string]bool, n)
	selected := make([]string, 0, n)

	for _, q := range pool {
		if len(selected) >= n {
			break
		}
		if !seen[q] {
			seen[q] = true
			selected = append(selected, q)
		}
	}

	for len(selected) < n {
		if len(pool) == 0 {
			selected = append(selected, services.DefaultQuote)
			continue
		}
		selected = append(selected, pool[e.pick(len(pool))])
	}

	e.shuffle(selected)
	return selected
}
