package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Mood is a categorical tag selecting a recommendation set and labeling a favorite.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodChill    Mood = "chill"
	MoodAngry    Mood = "angry"
	MoodRomantic Mood = "romantic"
)

// FilterAll is the favorites filter sentinel matching every mood.
const FilterAll = "all"

// TimestampLayout formats request instants as UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Moods lists the selectable moods in display order.
var Moods = []Mood{MoodHappy, MoodSad, MoodChill, MoodAngry, MoodRomantic}

func (m Mood) String() string { return string(m) }

// Label returns the mood with an upper-cased first letter for display.
func (m Mood) Label() string {
	r, size := utf8.DecodeRuneInString(string(m))
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + string(m[size:])
}

// Matches reports whether other names the same mood, ignoring case.
func (m Mood) Matches(other string) bool {
	return strings.EqualFold(string(m), other)
}

// Song is a recommendation returned for a mood. Quote is optional.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
	Quote  string `json:"quote,omitempty"`
}

// Favorite is a user-saved song. URL is its identity.
type Favorite struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
	Mood   string `json:"mood"`
}

// NewFavorite builds the favorite a recommendation card carries for the given mood.
func NewFavorite(song Song, mood string) Favorite {
	return Favorite{Title: song.Title, Artist: song.Artist, URL: song.URL, Mood: mood}
}

// FilterFavorites returns the favorites whose mood equals filter case-insensitively.
//
// An empty filter or [FilterAll] returns favs unchanged. The result is never nil.
func FilterFavorites(favs []Favorite, filter string) []Favorite {
	if filter == "" || strings.EqualFold(filter, FilterAll) {
		if favs == nil {
			return []Favorite{}
		}
		return favs
	}

	filtered := []Favorite{}
	for _, fav := range favs {
		if strings.EqualFold(fav.Mood, filter) {
			filtered = append(filtered, fav)
		}
	}
	return filtered
}

// FormatTimestamp renders t in [TimestampLayout].
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
