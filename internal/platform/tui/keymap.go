package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deathray/internal/core"
)

// GameKeyMap holds the key bindings used while a run is on screen.
// It implements help.KeyMap so the bindings double as the help bar.
type GameKeyMap struct {
	AimUp        key.Binding
	AimDown      key.Binding
	CannonUp     key.Binding
	CannonDown   key.Binding
	Left         key.Binding
	Right        key.Binding
	SwitchBucket key.Binding
	Fire         key.Binding
	SpawnFaster  key.Binding
	SpawnSlower  key.Binding
	FallFaster   key.Binding
	FallSlower   key.Binding
	ZoomIn       key.Binding
	ZoomOut      key.Binding
	PanLeft      key.Binding
	PanRight     key.Binding
	Pause        key.Binding
	Restart      key.Binding
	Screenshot   key.Binding
	Back         key.Binding
	Quit         key.Binding
}

// DefaultGameKeyMap returns the standard bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		AimUp:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a/d", "aim")),
		AimDown:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "aim down")),
		CannonUp:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w/s", "cannon")),
		CannonDown:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cannon down")),
		Left:         key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "bucket")),
		Right:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "bucket right")),
		SwitchBucket: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		Fire:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "fire")),
		SpawnFaster:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i/o", "spawn rate")),
		SpawnSlower:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "spawn slower")),
		FallFaster:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n/m", "fall speed")),
		FallSlower:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "fall slower")),
		ZoomIn:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		PanLeft:      key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "pan")),
		PanRight:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "pan right")),
		Pause:        key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Restart:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Screenshot:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Back:         key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "menu")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the one-line help bar.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.AimUp, k.CannonUp, k.Left, k.SwitchBucket, k.ZoomIn, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns every binding grouped into columns.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fire, k.AimUp, k.CannonUp},
		{k.Left, k.SwitchBucket},
		{k.SpawnFaster, k.FallFaster},
		{k.ZoomIn, k.PanLeft},
		{k.Pause, k.Restart, k.Screenshot},
		{k.Back, k.Quit},
	}
}

type boundAction struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper translates Bubble Tea key and mouse messages to game input.
// This centralizes bindings and makes them testable.
type KeyMapper struct {
	keys    GameKeyMap
	actions []boundAction
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return NewKeyMapperWith(DefaultGameKeyMap())
}

// NewKeyMapperWith creates a key mapper over custom bindings.
func NewKeyMapperWith(keys GameKeyMap) *KeyMapper {
	return &KeyMapper{
		keys: keys,
		actions: []boundAction{
			{keys.AimUp, core.ActionAimUp},
			{keys.AimDown, core.ActionAimDown},
			{keys.CannonUp, core.ActionCannonUp},
			{keys.CannonDown, core.ActionCannonDown},
			{keys.Left, core.ActionLeft},
			{keys.Right, core.ActionRight},
			{keys.SwitchBucket, core.ActionSwitchBucket},
			{keys.Fire, core.ActionFire},
			{keys.SpawnFaster, core.ActionSpawnFaster},
			{keys.SpawnSlower, core.ActionSpawnSlower},
			{keys.FallFaster, core.ActionFallFaster},
			{keys.FallSlower, core.ActionFallSlower},
			{keys.ZoomIn, core.ActionZoomIn},
			{keys.ZoomOut, core.ActionZoomOut},
			{keys.PanLeft, core.ActionPanLeft},
			{keys.PanRight, core.ActionPanRight},
			{keys.Pause, core.ActionPause},
			{keys.Restart, core.ActionRestart},
		},
	}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.actions {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapMouse translates a mouse message to a pointer event.
// Returns false for buttons the game does not use.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Pointer, bool) {
	p := core.Pointer{X: msg.X, Y: msg.Y}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if msg.Action != tea.MouseActionPress {
			return p, false
		}
		p.Kind = core.PointerWheelUp
	case msg.Button == tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return p, false
		}
		p.Kind = core.PointerWheelDown
	case msg.Action == tea.MouseActionRelease:
		p.Kind = core.PointerRelease
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		p.Kind = core.PointerPress
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion:
		p.Kind = core.PointerDrag
	default:
		return p, false
	}
	return p, true
}

// MapMouseToFrame records a mouse message in the input frame.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	if p, ok := km.MapMouse(msg); ok {
		frame.AddPointer(p)
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
