package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
)

var (
	_ Recommender   = (*Client)(nil)
	_ HistoryReader = (*Client)(nil)
)

// Client implements [Recommender] over the backend's JSON endpoints.
type Client struct {
	api    *APIService
	logger *log.Logger
}

// NewClient wraps api. A nil logger discards diagnostics.
func NewClient(api *APIService, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{api: api, logger: logger}
}

// API exposes the underlying transport for raw requests.
func (c *Client) API() *APIService { return c.api }

// Recommend posts {mood, timestamp} to /recommend.
//
// An empty songs array decodes to an empty, non-nil slice.
func (c *Client) Recommend(ctx context.Context, mood string, at time.Time) ([]models.Song, error) {
	req := models.RecommendRequest{Mood: mood, Timestamp: models.FormatTimestamp(at)}

	var out models.RecommendResponse
	if err := c.call(ctx, "/recommend", req, FallbackRecommend, &out); err != nil {
		return nil, err
	}

	if out.Songs == nil {
		out.Songs = []models.Song{}
	}
	return out.Songs, nil
}

// AddFavorite posts fav to /add_favorite and returns the server message.
func (c *Client) AddFavorite(ctx context.Context, fav models.Favorite) (string, error) {
	var out models.MessageResponse
	if err := c.call(ctx, "/add_favorite", fav, FallbackAdd, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Favorites fetches the full favorites list from /favorites.
func (c *Client) Favorites(ctx context.Context) ([]models.Favorite, error) {
	var out models.FavoritesResponse
	if err := c.call(ctx, "/favorites", nil, FallbackFavorites, &out); err != nil {
		return nil, err
	}

	if out.Favorites == nil {
		out.Favorites = []models.Favorite{}
	}
	return out.Favorites, nil
}

// DeleteFavorite posts {url} to /delete_favorite and returns the server message.
func (c *Client) DeleteFavorite(ctx context.Context, url string) (string, error) {
	var out models.MessageResponse
	req := models.DeleteFavoriteRequest{URL: url}
	if err := c.call(ctx, "/delete_favorite", req, FallbackDelete, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// History fetches recorded requests, most recent first. A limit of zero lets the server decide.
func (c *Client) History(ctx context.Context, limit int) ([]models.HistoryView, error) {
	path := "/history"
	if limit > 0 {
		path = fmt.Sprintf("/history?limit=%d", limit)
	}

	var out models.HistoryResponse
	if err := c.call(ctx, path, nil, "Failed to fetch history", &out); err != nil {
		return nil, err
	}

	if out.History == nil {
		out.History = []models.HistoryView{}
	}
	return out.History, nil
}

// call GETs path when body is nil and POSTs body as JSON otherwise, decoding a 2xx response into out.
func (c *Client) call(ctx context.Context, path string, body any, fallback string, out any) error {
	var (
		resp *APIResponse
		err  error
	)
	if body == nil {
		resp, err = c.api.Get(ctx, path)
	} else {
		resp, err = c.api.PostJSON(ctx, path, body)
	}
	if err != nil {
		c.logger.Error("backend request failed", "path", path, "error", err)
		return err
	}

	if !resp.OK() {
		apiErr := newAPIError(resp, fallback)
		c.logger.Warn("backend returned an error", "path", path, "status", resp.StatusCode, "error", apiErr.Message)
		return apiErr
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		c.logger.Error("could not decode backend response", "path", path, "error", err)
		return decodeError(err)
	}

	c.logger.Debug("backend request succeeded", "path", path, "status", resp.StatusCode)
	return nil
}
