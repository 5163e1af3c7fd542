package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
)

// ViewState represents the visible section of the TUI.
type ViewState int

const (
	FormView ViewState = iota
	FavoritesView
)

// PanelState is the rendering state of a results panel.
type PanelState int

const (
	Idle PanelState = iota
	Loading
	Rendered
	ErrorDisplayed
)

// Texts shown in panels and dialogs.
const (
	TextSelectMood     = "Please select a mood!"
	TextLoadingSongs   = "Loading recommendations..."
	TextLoadingFavs    = "Loading favorites..."
	TextNoFavorites    = "No favorite songs found for this category."
	TextConfirmRemoval = "Are you sure you want to remove this song from favorites?"
	textSongsError     = "Error: %s. Please try again later."
	textNoSongs        = "No songs found for \"%s\" mood. Try another mood!"
	textFavoritesError = "Error: %s."
	textAddError       = "Error adding song to favorites: %s"
	textRemoveError    = "Error removing song: %s"
	textOpenError      = "Could not open link: %s"
	moodPlaceholder    = "Select a mood"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeHeight  = 9
)

// panel is the rendering target of one view.
type panel struct {
	state   PanelState
	message string
	list    list.Model
}

// show replaces the panel with text in state.
func (p *panel) show(state PanelState, text string) {
	p.state = state
	p.message = text
	p.list.SetItems([]list.Item{})
}

// render replaces the panel with items. An empty slice shows empty instead.
func (p *panel) render(items []list.Item, empty string) {
	p.state = Rendered
	p.message = ""
	if len(items) == 0 {
		p.message = empty
	}
	p.list.SetItems(items)
	p.list.Select(0)
}

// Opts holds the dependencies of a [Model]. Only Client is required.
type Opts struct {
	Client services.Recommender
	Logger *log.Logger
	Open   func(url string) error // default: [shared.OpenURL]
	Now    func() time.Time       // default: [time.Now]
}

// Model is the TUI controller. It owns both panels and runs one action per user intent.
//
// Responses are applied in arrival order, so a slow response can overwrite a newer one.
type Model struct {
	ctx    context.Context
	client services.Recommender
	logger *log.Logger
	open   func(string) error
	now    func() time.Time

	view    ViewState
	moods   []string
	filters []string
	mood    int
	filter  int

	recs panel
	favs panel

	alert   string
	pending *models.Favorite

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewModel creates the TUI model showing the recommendation form.
func NewModel(ctx context.Context, opts Opts) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Open == nil {
		opts.Open = shared.OpenURL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	moods := []string{""}
	filters := []string{models.FilterAll}
	for _, m := range models.Moods {
		moods = append(moods, m.String())
		filters = append(filters, m.String())
	}

	m := &Model{
		ctx:     ctx,
		client:  opts.Client,
		logger:  opts.Logger,
		open:    opts.Open,
		now:     opts.Now,
		view:    FormView,
		moods:   moods,
		filters: filters,
		width:   defaultWidth,
		height:  defaultHeight,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.recs.list = newCardList(m.listSize())
	m.favs.list = newCardList(m.listSize())
	return m
}

// ViewState returns the visible section.
func (m *Model) ViewState() ViewState { return m.view }

// Mood returns the selected mood, or "" when the placeholder is selected.
func (m *Model) Mood() string { return m.moods[m.mood] }

// Filter returns the selected favorites filter.
func (m *Model) Filter() string { return m.filters[m.filter] }

// Alert returns the text of the open alert, if any.
func (m *Model) Alert() string { return m.alert }

// Confirming reports whether a removal is awaiting confirmation.
func (m *Model) Confirming() bool { return m.pending != nil }

// Panel returns the state and message of the panel for view.
func (m *Model) Panel(view ViewState) (PanelState, string) {
	p := m.panel(view)
	return p.state, p.message
}

// Songs returns the rendered recommendation cards.
func (m *Model) Songs() []models.Song {
	var songs []models.Song
	for _, item := range m.recs.list.Items() {
		songs = append(songs, item.(songItem).song)
	}
	return songs
}

// Favorites returns the rendered favorite cards.
func (m *Model) Favorites() []models.Favorite {
	var favs []models.Favorite
	for _, item := range m.favs.list.Items() {
		favs = append(favs, item.(favoriteItem).fav)
	}
	return favs
}

func (m *Model) panel(view ViewState) *panel {
	if view == FavoritesView {
		return &m.favs
	}
	return &m.recs
}

func (m *Model) listSize() (int, int) {
	return max(m.width-4, 20), max(m.height-chromeHeight, 5)
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd { return nil }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.recs.list.SetSize(m.listSize())
		m.favs.list.SetSize(m.listSize())
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeys(msg)

	case Msg:
		return m, m.handleResult(msg)
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.alert != "" {
		if key.Matches(msg, m.keys.dismiss) {
			m.alert = ""
		}
		return nil
	}

	if m.pending != nil {
		switch {
		case key.Matches(msg, m.keys.yes):
			return m.RemoveFavorite()
		case key.Matches(msg, m.keys.no):
			m.logger.Debug("removal cancelled", "url", m.pending.URL)
			m.pending = nil
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.form):
		return m.ShowView(FormView)
	case key.Matches(msg, m.keys.favorites):
		return m.ShowView(FavoritesView)
	case key.Matches(msg, m.keys.toggle):
		if m.view == FormView {
			return m.ShowView(FavoritesView)
		}
		return m.ShowView(FormView)
	case key.Matches(msg, m.keys.prev):
		return m.cycle(-1)
	case key.Matches(msg, m.keys.next):
		return m.cycle(1)
	case key.Matches(msg, m.keys.listen):
		return m.Listen()
	}

	if m.view == FormView {
		switch {
		case key.Matches(msg, m.keys.submit):
			return m.Submit()
		case key.Matches(msg, m.keys.favorite):
			return m.AddFavorite()
		}
	} else if key.Matches(msg, m.keys.remove) {
		m.ConfirmRemoval()
		return nil
	}

	if key.Matches(msg, m.keys.up, m.keys.down) {
		p := m.panel(m.view)
		var cmd tea.Cmd
		p.list, cmd = p.list.Update(msg)
		return cmd
	}

	return nil
}

// cycle moves the selector of the active view by step, wrapping around.
func (m *Model) cycle(step int) tea.Cmd {
	if m.view == FormView {
		m.mood = (m.mood + step + len(m.moods)) % len(m.moods)
		return nil
	}
	m.filter = (m.filter + step + len(m.filters)) % len(m.filters)
	return m.LoadFavorites()
}

// SelectMood selects mood in the form selector. Unknown moods select the placeholder.
func (m *Model) SelectMood(mood string) {
	m.mood = 0
	for i, candidate := range m.moods {
		if strings.EqualFold(candidate, mood) {
			m.mood = i
			return
		}
	}
}

// SelectFilter selects filter and reloads favorites when they are visible.
func (m *Model) SelectFilter(filter string) tea.Cmd {
	for i, candidate := range m.filters {
		if strings.EqualFold(candidate, filter) {
			m.filter = i
		}
	}
	if m.view == FavoritesView {
		return m.LoadFavorites()
	}
	return nil
}

// ShowView makes view the visible section. Showing favorites always fetches them again.
func (m *Model) ShowView(view ViewState) tea.Cmd {
	m.view = view
	if view == FavoritesView {
		return m.LoadFavorites()
	}
	return nil
}

// Submit requests recommendations for the selected mood.
//
// Without a mood it opens an alert and sends nothing.
func (m *Model) Submit() tea.Cmd {
	mood := m.Mood()
	if mood == "" {
		m.alert = TextSelectMood
		return nil
	}

	m.recs.show(Loading, TextLoadingSongs)

	client, ctx, at := m.client, m.ctx, m.now()
	return func() tea.Msg {
		songs, err := client.Recommend(ctx, mood, at)
		return recommendationsFetchedMsg(mood, songs, err)
	}
}

// AddFavorite saves the selected recommendation card.
func (m *Model) AddFavorite() tea.Cmd {
	item, ok := m.recs.list.SelectedItem().(songItem)
	if !ok {
		return nil
	}

	fav := item.favorite()
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		msg, err := client.AddFavorite(ctx, fav)
		return favoriteAddedMsg(msg, err)
	}
}

// LoadFavorites fetches the full favorites list. The filter is applied when it arrives.
func (m *Model) LoadFavorites() tea.Cmd {
	m.favs.show(Loading, TextLoadingFavs)

	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		favs, err := client.Favorites(ctx)
		return favoritesFetchedMsg(favs, err)
	}
}

// ConfirmRemoval asks to confirm removing the selected favorite.
func (m *Model) ConfirmRemoval() {
	item, ok := m.favs.list.SelectedItem().(favoriteItem)
	if !ok {
		return
	}
	fav := item.fav
	m.pending = &fav
}

// RemoveFavorite removes the favorite awaiting confirmation.
func (m *Model) RemoveFavorite() tea.Cmd {
	if m.pending == nil {
		return nil
	}

	url := m.pending.URL
	m.pending = nil

	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		msg, err := client.DeleteFavorite(ctx, url)
		return favoriteRemovedMsg(msg, err)
	}
}

// Listen opens the selected card's url in the system browser.
func (m *Model) Listen() tea.Cmd {
	item, ok := m.panel(m.view).list.SelectedItem().(card)
	if !ok {
		return nil
	}

	url, open := item.link(), m.open
	return func() tea.Msg {
		return linkOpenedMsg(url, open(url))
	}
}

func (m *Model) handleResult(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgRecommendationsFetched:
		res := msg.data.(recommendationsResult)
		if res.err != nil {
			m.logger.Error("failed to fetch recommendations", "mood", res.mood, "error", res.err)
			m.recs.show(ErrorDisplayed, fmt.Sprintf(textSongsError, services.Message(res.err)))
			return nil
		}

		items := make([]list.Item, len(res.songs))
		for i, song := range res.songs {
			items[i] = songItem{song: song, mood: res.mood}
		}
		m.recs.render(items, fmt.Sprintf(textNoSongs, res.mood))
		return nil

	case MsgFavoritesFetched:
		res := msg.data.(favoritesResult)
		if res.err != nil {
			m.logger.Error("failed to fetch favorites", "error", res.err)
			m.favs.show(ErrorDisplayed, fmt.Sprintf(textFavoritesError, services.Message(res.err)))
			return nil
		}

		filtered := models.FilterFavorites(res.favorites, m.Filter())
		items := make([]list.Item, len(filtered))
		for i, fav := range filtered {
			items[i] = favoriteItem{fav: fav}
		}
		m.favs.render(items, TextNoFavorites)
		return nil

	case MsgFavoriteAdded:
		res := msg.data.(mutationResult)
		if res.err != nil {
			m.logger.Error("failed to add favorite", "error", res.err)
			m.alert = fmt.Sprintf(textAddError, services.Message(res.err))
			return nil
		}

		m.alert = res.message
		if m.view == FavoritesView {
			return m.LoadFavorites()
		}
		return nil

	case MsgFavoriteRemoved:
		res := msg.data.(mutationResult)
		if res.err != nil {
			m.logger.Error("failed to remove favorite", "error", res.err)
			m.alert = fmt.Sprintf(textRemoveError, services.Message(res.err))
			return nil
		}

		m.alert = res.message
		return m.LoadFavorites()

	case MsgLinkOpened:
		res := msg.data.(linkResult)
		if res.err != nil {
			m.logger.Warn("failed to open link", "url", res.url, "error", res.err)
			m.alert = fmt.Sprintf(textOpenError, res.url)
		}
		return nil
	}

	return nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("moodtunes"))
	b.WriteString("\n")
	b.WriteString(m.renderNav())
	b.WriteString("\n\n")

	switch {
	case m.alert != "":
		b.WriteString(m.renderDialog(m.alert, m.keys.dismiss))
	case m.pending != nil:
		question := fmt.Sprintf("%s\n\n%s - %s", TextConfirmRemoval, m.pending.Title, m.pending.Artist)
		b.WriteString(m.renderDialog(question, m.keys.yes, m.keys.no))
	default:
		if m.view == FormView {
			b.WriteString(m.renderSelector("Mood", m.Mood()))
			b.WriteString("\n\n")
			b.WriteString(m.renderPanel(&m.recs))
			b.WriteString("\n\n")
			b.WriteString(m.help.ShortHelpView(m.keys.formHelp()))
		} else {
			b.WriteString(m.renderSelector("Filter", m.Filter()))
			b.WriteString("\n\n")
			b.WriteString(m.renderPanel(&m.favs))
			b.WriteString("\n\n")
			b.WriteString(m.help.ShortHelpView(m.keys.favoritesHelp()))
		}
	}

	return b.String()
}

func (m *Model) renderNav() string {
	form, favs := styles.tab, styles.tab
	if m.view == FormView {
		form = styles.active
	} else {
		favs = styles.active
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form.Render("1 Recommend"), " ", favs.Render("2 Favorites"))
}

func (m *Model) renderSelector(label, value string) string {
	text := models.Mood(value).Label()
	if value == "" {
		text = styles.help.Render(moodPlaceholder)
	}
	return fmt.Sprintf("%s: %s %s %s", label, styles.As("<", styles.accent), text, styles.As(">", styles.accent))
}

func (m *Model) renderPanel(p *panel) string {
	switch p.state {
	case Loading:
		return styles.help.Render(p.message)
	case ErrorDisplayed:
		return styles.err.Render(p.message)
	case Rendered:
		if p.message != "" {
			return styles.warn.Render(p.message)
		}
		return p.list.View()
	}
	return ""
}

func (m *Model) renderDialog(text string, keys ...key.Binding) string {
	width := min(m.width-4, 60)
	body := lipgloss.NewStyle().Width(width).Render(text)
	return styles.dialog.Render(body + "\n\n" + m.help.ShortHelpView(keys))
}
