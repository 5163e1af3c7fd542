package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	form      key.Binding
	favorites key.Binding
	toggle    key.Binding
	prev      key.Binding
	next      key.Binding
	up        key.Binding
	down      key.Binding
	submit    key.Binding
	favorite  key.Binding
	listen    key.Binding
	remove    key.Binding
	dismiss   key.Binding
	yes       key.Binding
	no        key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		form:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "recommend")),
		favorites: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "favorites")),
		toggle:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get songs")),
		favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "add to favorites")),
		listen:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "listen")),
		remove:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		dismiss:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
		yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:        key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.form, k.favorites, k.toggle},
		{k.prev, k.next, k.up, k.down},
		{k.submit, k.favorite, k.listen, k.remove},
		{k.quit},
	}
}

// formHelp lists the bindings active on the recommendation form.
func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.prev, k.next, k.submit, k.up, k.down, k.favorite, k.listen, k.toggle, k.quit}
}

// favoritesHelp lists the bindings active on the favorites view.
func (k keyMap) favoritesHelp() []key.Binding {
	return []key.Binding{k.prev, k.next, k.up, k.down, k.listen, k.remove, k.toggle, k.quit}
}
