package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/deathray/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		action   core.Action
		wantQuit bool
	}{
		{"a aims up", runeKey('a'), core.ActionAimUp, false},
		{"d aims down", runeKey('d'), core.ActionAimDown, false},
		{"w moves cannon up", runeKey('w'), core.ActionCannonUp, false},
		{"s moves cannon down", runeKey('s'), core.ActionCannonDown, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"tab switches bucket", tea.KeyMsg{Type: tea.KeyTab}, core.ActionSwitchBucket, false},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"i spawns faster", runeKey('i'), core.ActionSpawnFaster, false},
		{"o spawns slower", runeKey('o'), core.ActionSpawnSlower, false},
		{"n falls faster", runeKey('n'), core.ActionFallFaster, false},
		{"m falls slower", runeKey('m'), core.ActionFallSlower, false},
		{"plus zooms in", runeKey('+'), core.ActionZoomIn, false},
		{"equals zooms in", runeKey('='), core.ActionZoomIn, false},
		{"minus zooms out", runeKey('-'), core.ActionZoomOut, false},
		{"bracket pans left", runeKey('['), core.ActionPanLeft, false},
		{"bracket pans right", runeKey(']'), core.ActionPanRight, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionPause, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, isQuit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey(%q) action = %v, expected %v", tt.msg.String(), action, tt.action)
			}
			if isQuit != tt.wantQuit {
				t.Errorf("MapKey(%q) isQuit = %v, expected %v", tt.msg.String(), isQuit, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToFrameCountsRepeats(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	// Key repeat delivers a held key several times within one tick
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	for range 3 {
		if km.MapKeyToFrame(space, &frame) {
			t.Fatal("space should not quit")
		}
	}
	km.MapKeyToFrame(runeKey('a'), &frame)

	if got := frame.Count(core.ActionFire); got != 3 {
		t.Errorf("Count(Fire) = %d, expected 3", got)
	}
	if got := frame.Count(core.ActionAimUp); got != 1 {
		t.Errorf("Count(AimUp) = %d, expected 1", got)
	}

	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should be a quit request")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be recorded in the frame")
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.MouseMsg
		want   core.PointerKind
		mapped bool
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, core.PointerPress, true},
		{"left drag", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, core.PointerDrag, true},
		{"release", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}, core.PointerRelease, true},
		{"wheel up", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}, core.PointerWheelUp, true},
		{"wheel down", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}, core.PointerWheelDown, true},
		{"hover is ignored", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion}, 0, false},
		{"right press is ignored", tea.MouseMsg{X: 3, Y: 4, Button: tea.MouseButtonRight, Action: tea.MouseActionPress}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := km.MapMouse(tt.msg)
			if ok != tt.mapped {
				t.Fatalf("MapMouse ok = %v, expected %v", ok, tt.mapped)
			}
			if !ok {
				return
			}
			if p.Kind != tt.want {
				t.Errorf("Kind = %v, expected %v", p.Kind, tt.want)
			}
			if p.X != 3 || p.Y != 4 {
				t.Errorf("position = (%d, %d), expected (3, 4)", p.X, p.Y)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestGameKeyMapHelp(t *testing.T) {
	keys := DefaultGameKeyMap()

	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}

	seen := 0
	for _, col := range keys.FullHelp() {
		seen += len(col)
	}
	if seen < len(keys.ShortHelp()) {
		t.Errorf("FullHelp() lists %d bindings, fewer than ShortHelp()", seen)
	}
}
