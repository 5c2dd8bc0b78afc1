package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone          Action = iota
	ActionAimUp                // A - rotate the cannon counter-clockwise
	ActionAimDown              // D - rotate the cannon clockwise
	ActionCannonUp             // W - move the cannon up the left wall
	ActionCannonDown           // S - move the cannon down the left wall
	ActionLeft                 // Left arrow - move the active bucket left
	ActionRight                // Right arrow - move the active bucket right
	ActionSwitchBucket         // Tab - switch the active bucket
	ActionFire                 // Space - fire the death ray
	ActionSpawnFaster          // I - shorten the spawn interval
	ActionSpawnSlower          // O - lengthen the spawn interval
	ActionFallFaster           // N - speed up falling blocks
	ActionFallSlower           // M - slow down falling blocks
	ActionZoomIn               // + - zoom the view in
	ActionZoomOut              // - - zoom the view out
	ActionPanLeft              // [ - pan the view left
	ActionPanRight             // ] - pan the view right
	ActionRestart              // R key - restart game after game over
	ActionQuit                 // Q, Ctrl+C - exit game/session
	ActionPause                // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAimUp:
		return "AimUp"
	case ActionAimDown:
		return "AimDown"
	case ActionCannonUp:
		return "CannonUp"
	case ActionCannonDown:
		return "CannonDown"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSwitchBucket:
		return "SwitchBucket"
	case ActionFire:
		return "Fire"
	case ActionSpawnFaster:
		return "SpawnFaster"
	case ActionSpawnSlower:
		return "SpawnSlower"
	case ActionFallFaster:
		return "FallFaster"
	case ActionFallSlower:
		return "FallSlower"
	case ActionZoomIn:
		return "ZoomIn"
	case ActionZoomOut:
		return "ZoomOut"
	case ActionPanLeft:
		return "PanLeft"
	case ActionPanRight:
		return "PanRight"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerKind classifies a mouse event.
type PointerKind int

const (
	PointerPress PointerKind = iota + 1
	PointerDrag
	PointerRelease
	PointerWheelUp
	PointerWheelDown
)

// Pointer is a mouse event in screen cells.
type Pointer struct {
	Kind PointerKind
	X, Y int
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to how many times they were triggered this
	// frame. Key repeat may deliver the same action several times per tick.
	Actions map[Action]int

	// Pointers holds mouse events in arrival order.
	Pointers []Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times the action was triggered this frame.
func (f InputFrame) Count(a Action) int {
	if f.Actions == nil {
		return 0
	}
	return f.Actions[a]
}

// AddPointer records a mouse event.
func (f *InputFrame) AddPointer(p Pointer) {
	f.Pointers = append(f.Pointers, p)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointers = f.Pointers[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Pointers) > 0 {
		clone.Pointers = append([]Pointer(nil), f.Pointers...)
	}
	return clone
}
