package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/go-pkgz/rest"
)

// Response messages shared with clients.
const (
	MsgMoodMissing      = "Mood not provided"
	MsgFavoriteMissing  = "Favorite data not provided"
	MsgURLMissing       = "Song URL not provided"
	MsgFavoriteAdded    = "Song added to favorites"
	MsgFavoriteExists   = "Song already in favorites"
	MsgFavoriteRemoved  = "Song removed from favorites"
	MsgFavoriteNotFound = "Song not found in favorites"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// decodeBody decodes a JSON request body into v. An empty or malformed body leaves v untouched.
func decodeBody(r *http.Request, v any) bool {
	if r.Body == nil {
		return false
	}
	return json.NewDecoder(r.Body).Decode(v) == nil
}

// recommend handles POST /recommend {mood, timestamp}.
func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendRequest
	decodeBody(r, &req)

	if strings.TrimSpace(req.Mood) == "" {
		sendError(w, r, s.logger, http.StatusBadRequest, errors.New("empty mood"), MsgMoodMissing)
		return
	}

	songs, err := s.engine.Recommend(r.Context(), req.Mood, req.Timestamp)
	if err != nil {
		sendError(w, r, s.logger, http.StatusInternalServerError, err, "Failed to build recommendations")
		return
	}

	rest.RenderJSON(w, models.RecommendResponse{Songs: songs})
}

// listHistory handles GET /history?limit=N.
func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			sendError(w, r, s.logger, http.StatusBadRequest, fmt.Errorf("bad limit %q", raw), "Invalid limit")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	history, err := s.history.Recent(limit)
	if err != nil {
		sendError(w, r, s.logger, http.StatusInternalServerError, err, "Failed to fetch history")
		return
	}

	rest.RenderJSON(w, models.HistoryResponse{History: history})
}

// FavoritesHandler serves the favorites endpoints:
//   - GET /favorites
//   - POST /add_favorite
//   - POST /delete_favorite
type FavoritesHandler struct {
	store  FavoriteStore
	logger *log.Logger
}

var _ Handler = (*FavoritesHandler)(nil)

// Routes implements [Handler].
func (h *FavoritesHandler) Routes() []string {
	return []string{"/favorites", "/add_favorite", "/delete_favorite"}
}

// ServeHTTP implements [http.Handler].
func (h *FavoritesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := http.MethodPost
	if r.URL.Path == "/favorites" {
		method = http.MethodGet
	}
	if r.Method != method {
		w.Header().Set("Allow", method)
		sendError(w, r, nil, http.StatusMethodNotAllowed, nil, "Method not allowed")
		return
	}

	switch r.URL.Path {
	case "/favorites":
		h.list(w, r)
	case "/add_favorite":
		h.add(w, r)
	case "/delete_favorite":
		h.delete(w, r)
	default:
		sendError(w, r, nil, http.StatusNotFound, nil, "Not found")
	}
}

func (h *FavoritesHandler) list(w http.ResponseWriter, r *http.Request) {
	favs, err := h.store.Favorites()
	if err != nil {
		sendError(w, r, h.logger, http.StatusInternalServerError, err, "Failed to fetch favorites")
		return
	}

	rest.RenderJSON(w, models.FavoritesResponse{Favorites: favs})
}

func (h *FavoritesHandler) add(w http.ResponseWriter, r *http.Request) {
	var fav models.Favorite
	if !decodeBody(r, &fav) || fav == (models.Favorite{}) {
		sendError(w, r, h.logger, http.StatusBadRequest, errors.New("empty favorite"), MsgFavoriteMissing)
		return
	}
	if strings.TrimSpace(fav.URL) == "" {
		sendError(w, r, h.logger, http.StatusBadRequest, errors.New("empty url"), MsgURLMissing)
		return
	}

	_, added, err := h.store.Add(fav)
	if err != nil {
		sendError(w, r, h.logger, http.StatusInternalServerError, err, "Failed to add favorite")
		return
	}

	msg := MsgFavoriteExists
	if added {
		msg = MsgFavoriteAdded
		h.logger.Info("favorite added", "url", fav.URL, "mood", fav.Mood)
	}

	rest.RenderJSON(w, models.MessageResponse{Message: msg})
}

func (h *FavoritesHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteFavoriteRequest
	decodeBody(r, &req)

	if strings.TrimSpace(req.URL) == "" {
		sendError(w, r, h.logger, http.StatusBadRequest, errors.New("empty url"), MsgURLMissing)
		return
	}

	if err := h.store.DeleteByURL(req.URL); err != nil {
		if errors.Is(err, shared.ErrFavoriteNotFound) {
			sendError(w, r, h.logger, http.StatusNotFound, err, MsgFavoriteNotFound)
			return
		}
		sendError(w, r, h.logger, http.StatusInternalServerError, err, "Failed to remove favorite")
		return
	}

	h.logger.Info("favorite removed", "url", req.URL)
	rest.RenderJSON(w, models.MessageResponse{Message: MsgFavoriteRemoved})
}
