package models

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	Mood      string `json:"mood"`
	Timestamp string `json:"timestamp"`
}

// RecommendResponse is the success body of POST /recommend.
type RecommendResponse struct {
	Songs []Song `json:"songs"`
}

// FavoritesResponse is the success body of GET /favorites.
type FavoritesResponse struct {
	Favorites []Favorite `json:"favorites"`
}

// DeleteFavoriteRequest is the body of POST /delete_favorite.
type DeleteFavoriteRequest struct {
	URL string `json:"url"`
}

// HistoryResponse is the success body of GET /history.
type HistoryResponse struct {
	History []HistoryView `json:"history"`
}

// MessageResponse carries the confirmation text of a mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
