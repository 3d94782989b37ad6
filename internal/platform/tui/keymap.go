package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/duotris/internal/core"
)

// PlayerKeys holds the bindings for one player's slot.
type PlayerKeys struct {
	Left   key.Binding
	Right  key.Binding
	Down   key.Binding
	Rotate key.Binding
	Drop   key.Binding
}

// actions pairs each binding with the action it triggers.
func (p PlayerKeys) actions() []struct {
	binding key.Binding
	action  core.Action
} {
	return []struct {
		binding key.Binding
		action  core.Action
	}{
		{p.Left, core.ActionLeft},
		{p.Right, core.ActionRight},
		{p.Down, core.ActionDown},
		{p.Rotate, core.ActionRotate},
		{p.Drop, core.ActionDrop},
	}
}

// KeyMap defines all bindings shared by the keyboard's players.
// Players[i] drives the game's slot i.
type KeyMap struct {
	Players    []PlayerKeys
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func playerKeys(left, right, down, rotate, drop string) PlayerKeys {
	return PlayerKeys{
		Left:   key.NewBinding(key.WithKeys(left), key.WithHelp(left+"/"+right, "move")),
		Right:  key.NewBinding(key.WithKeys(right)),
		Down:   key.NewBinding(key.WithKeys(down), key.WithHelp(down, "soft drop")),
		Rotate: key.NewBinding(key.WithKeys(rotate), key.WithHelp(rotate, "rotate")),
		Drop:   key.NewBinding(key.WithKeys(drop), key.WithHelp(drop, "hard drop")),
	}
}

// DefaultKeyMap returns the default bindings:
// player 1 on WASD + E, player 2 on the arrows + Enter, player 3 on JKL/I + O.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Players: []PlayerKeys{
			playerKeys("a", "d", "s", "w", "e"),
			playerKeys("left", "right", "down", "up", "enter"),
			playerKeys("j", "l", "k", "i", "o"),
		},
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Limit restricts the map to the first n players. A non-positive n keeps every player.
func (k KeyMap) Limit(n int) KeyMap {
	if n > 0 && n < len(k.Players) {
		k.Players = k.Players[:n]
	}
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view, one column per player.
func (k KeyMap) FullHelp() [][]key.Binding {
	cols := make([][]key.Binding, 0, len(k.Players)+1)
	for _, p := range k.Players {
		cols = append(cols, []key.Binding{p.Left, p.Down, p.Rotate, p.Drop})
	}
	return append(cols, []key.Binding{k.Pause, k.Restart, k.Back, k.Quit})
}

// MapKey translates a key message to a player action.
// Global actions (pause, restart, quit) are reported for Player1.
// Returns ActionNone for unbound keys.
func (k KeyMap) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Player1, core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.Player1, core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.Player1, core.ActionRestart
	}

	for i, p := range k.Players {
		for _, a := range p.actions() {
			if key.Matches(msg, a.binding) {
				return core.PlayerID(i), a.action
			}
		}
	}
	return core.Player1, core.ActionNone
}

// MapKeyToMultiFrame records a key message into a multi-input frame.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action := k.MapKey(msg)
	switch action {
	case core.ActionQuit:
		return true
	case core.ActionNone:
		return false
	}
	frame.Set(player, action)
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
