package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultQuote pads quote lists when the quote API cannot supply enough.
const DefaultQuote = "The only way to do great work is to love what you do."

// DefaultQuotesURL is the ZenQuotes API root.
const DefaultQuotesURL = "https://zenquotes.io/api"

// QuoteSource supplies formatted quotes.
type QuoteSource interface {
	// Quotes returns up to count quotes, or more when a single batch holds more.
	// On failure the quotes gathered so far are returned along with the error.
	Quotes(ctx context.Context, count int) ([]string, error)
}

// Quote is one ZenQuotes entry.
type Quote struct {
	Text   string `json:"q"`
	Author string `json:"a"`
}

// String formats the quote as "text" - author.
func (q Quote) String() string {
	text, author := q.Text, q.Author
	if text == "" {
		text = "No quote found."
	}
	if author == "" {
		author = "Unknown"
	}
	return fmt.Sprintf(`"%s" - %s`, text, author)
}

// QuoteServiceOpts configures a [QuoteService].
type QuoteServiceOpts struct {
	BaseURL    string
	RateLimit  float64 // requests per second (default: 1)
	Workers    int     // concurrent /random calls (default: 3)
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// QuoteService fetches quotes from ZenQuotes.
//
// One /quotes batch is requested first. A shortfall is filled with concurrent /random
// calls that stop at the first failure. Every request waits on a shared rate limiter.
type QuoteService struct {
	api     *APIService
	limiter *rate.Limiter
	workers int
	logger  *log.Logger
}

var _ QuoteSource = (*QuoteService)(nil)

// NewQuoteService creates a quote client from opts, filling in defaults.
func NewQuoteService(opts QuoteServiceOpts) *QuoteService {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultQuotesURL
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 3
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &QuoteService{
		api:     NewAPIService(opts.BaseURL, opts.HTTPClient),
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Workers),
		workers: opts.Workers,
		logger:  opts.Logger,
	}
}

// NewQuoteServiceFromConfig builds a [QuoteService] from the [quotes] config section.
func NewQuoteServiceFromConfig(cfg shared.QuotesConfig, logger *log.Logger) *QuoteService {
	return NewQuoteService(QuoteServiceOpts{
		BaseURL:   cfg.BaseURL,
		RateLimit: cfg.RateLimit,
		Workers:   cfg.Workers,
		Timeout:   cfg.Timeout(),
		Logger:    logger,
	})
}

// Quotes implements [QuoteSource].
func (s *QuoteService) Quotes(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}

	quotes, err := s.fetch(ctx, "/quotes")
	if err != nil {
		s.logger.Warn("failed to fetch quote batch", "error", err)
		return []string{}, fmt.Errorf("%w: %v", shared.ErrQuotesUnavailable, err)
	}

	short := count - len(quotes)
	if short <= 0 {
		return quotes, nil
	}

	s.logger.Debug("fetching random quotes", "batch", len(quotes), "missing", short)

	extra := make([]string, short)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range short {
		g.Go(func() error {
			got, err := s.fetch(gctx, "/random")
			if err != nil {
				return err
			}
			if len(got) > 0 {
				extra[i] = got[0]
			}
			return nil
		})
	}

	err = g.Wait()
	for _, q := range extra {
		if q != "" {
			quotes = append(quotes, q)
		}
	}

	if err != nil {
		s.logger.Warn("failed to fetch random quote", "error", err)
		return quotes, fmt.Errorf("%w: %v", shared.ErrQuotesUnavailable, err)
	}
	return quotes, nil
}

func (s *QuoteService) fetch(ctx context.Context, path string) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	var batch []Quote
	if err := json.Unmarshal(resp.Body, &batch); err != nil {
		return nil, decodeError(err)
	}

	quotes := make([]string, len(batch))
	for i, q := range batch {
		quotes[i] = q.String()
	}
	return quotes, nil
}
