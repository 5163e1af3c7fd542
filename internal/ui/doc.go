// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two sections, one visible at a time:
//  1. [FormView] : pick a mood, fetch recommendations, add songs to favorites
//  2. [FavoritesView] : browse favorites by mood, open or remove them
//
// The [Model] is the controller: it owns both panels and exposes one method per action
// ([Model.Submit], [Model.AddFavorite], [Model.LoadFavorites], [Model.RemoveFavorite], [Model.Listen]).
// Every backend call runs as a [tea.Cmd] and comes back as a [Msg], so state is only touched inside Update.
// Each panel moves through [Idle], [Loading], [Rendered] and [ErrorDisplayed].
//
// Mutations report through a blocking alert dismissed with enter; removal asks for y/n confirmation first.
//
// Keyboard navigation uses vim-style bindings (h/l, j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
