package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodtunes/internal/models"
)

var (
	_ list.Item         = songItem{}
	_ list.Item         = favoriteItem{}
	_ list.ItemDelegate = cardDelegate{}
)

// card is a list item rendered as a fixed-height block of lines.
type card interface {
	list.Item
	lines() []string
	link() string
}

// songItem wraps [models.Song] with the mood it was recommended for.
type songItem struct {
	song models.Song
	mood string
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) link() string        { return i.song.URL }

// favorite returns the record the Add to Favorites control sends.
func (i songItem) favorite() models.Favorite { return models.NewFavorite(i.song, i.mood) }

func (i songItem) lines() []string {
	return []string{
		styles.ok.Render(i.song.Title),
		fmt.Sprintf("Artist: %s", i.song.Artist),
		styles.quote.Render(i.song.Quote),
		styles.help.Render("[o] Listen  [f] Add to Favorites"),
	}
}

// favoriteItem wraps [models.Favorite].
type favoriteItem struct {
	fav models.Favorite
}

func (i favoriteItem) FilterValue() string { return i.fav.Title }
func (i favoriteItem) link() string        { return i.fav.URL }

func (i favoriteItem) lines() []string {
	return []string{
		styles.ok.Render(i.fav.Title),
		fmt.Sprintf("Artist: %s", i.fav.Artist),
		fmt.Sprintf("Mood: %s", i.fav.Mood),
		styles.help.Render("[o] Listen  [d] Remove"),
	}
}

// cardDelegate renders [card] items, marking the selected one with a left border.
type cardDelegate struct{}

func (d cardDelegate) Height() int                             { return 4 }
func (d cardDelegate) Spacing() int                            { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(card)
	if !ok {
		return
	}

	style := styles.card
	if index == m.Index() {
		style = styles.selected
	}

	width := m.Width() - 4
	lines := c.lines()
	if width > 0 {
		for i, line := range lines {
			lines[i] = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
	}

	fmt.Fprint(w, style.Render(strings.Join(lines, "\n")))
}

// newCardList creates a list with the chrome (title, status bar, filter, help) turned off.
func newCardList(width, height int) list.Model {
	l := list.New([]list.Item{}, cardDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	return l
}
