package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodtunes/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRecommendationsFetched MsgKind = iota
	MsgFavoritesFetched
	MsgFavoriteAdded
	MsgFavoriteRemoved
	MsgLinkOpened
)

// Kind returns the message kind.
func (m Msg) Kind() MsgKind { return m.kind }

type recommendationsResult struct {
	mood  string
	songs []models.Song
	err   error
}

type favoritesResult struct {
	favorites []models.Favorite
	err       error
}

type mutationResult struct {
	message string
	err     error
}

type linkResult struct {
	url string
	err error
}

// recommendationsFetchedMsg is the constructor for [MsgRecommendationsFetched]
func recommendationsFetchedMsg(mood string, songs []models.Song, err error) Msg {
	return Msg{kind: MsgRecommendationsFetched, data: recommendationsResult{mood, songs, err}}
}

// favoritesFetchedMsg is the constructor for [MsgFavoritesFetched]
func favoritesFetchedMsg(favs []models.Favorite, err error) Msg {
	return Msg{kind: MsgFavoritesFetched, data: favoritesResult{favs, err}}
}

// favoriteAddedMsg is the constructor for [MsgFavoriteAdded]
func favoriteAddedMsg(message string, err error) Msg {
	return Msg{kind: MsgFavoriteAdded, data: mutationResult{message, err}}
}

// favoriteRemovedMsg is the constructor for [MsgFavoriteRemoved]
func favoriteRemovedMsg(message string, err error) Msg {
	return Msg{kind: MsgFavoriteRemoved, data: mutationResult{message, err}}
}

// linkOpenedMsg is the constructor for [MsgLinkOpened]
func linkOpenedMsg(url string, err error) Msg {
	return Msg{kind: MsgLinkOpened, data: linkResult{url, err}}
}
