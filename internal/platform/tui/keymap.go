package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/doodle/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Stop       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default in-game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Stop: key.NewBinding(
			key.WithKeys("down", "s", " "),
			key.WithHelp("↓/s", "stop"),
		),
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
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Stop, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Stop},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Stop):
		return core.ActionStop
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// Hold durations in ticks. A fresh press has to outlast the terminal's
// auto-repeat delay; after that repeats arrive much faster.
const (
	DefaultHoldTicks    = 18
	DefaultInitialTicks = 32
)

// HoldTracker emulates held direction keys. Terminals only report presses,
// so a direction stays held for a number of ticks after its last press or
// auto-repeat. Pressing one direction releases the other.
type HoldTracker struct {
	holdTicks    int
	initialTicks int
	left         int
	right        int
}

// NewHoldTracker creates a tracker. Non-positive values select the defaults.
func NewHoldTracker(holdTicks, initialTicks int) *HoldTracker {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	if initialTicks <= 0 {
		initialTicks = DefaultInitialTicks
	}
	initialTicks = core.Max(initialTicks, holdTicks)
	return &HoldTracker{holdTicks: holdTicks, initialTicks: initialTicks}
}

// Press registers a key action. Only Left, Right and Stop affect the tracker.
func (h *HoldTracker) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		h.left = h.refresh(h.left)
		h.right = 0
	case core.ActionRight:
		h.right = h.refresh(h.right)
		h.left = 0
	case core.ActionStop:
		h.Release()
	}
}

func (h *HoldTracker) refresh(remaining int) int {
	if remaining > 0 {
		return h.holdTicks
	}
	return h.initialTicks
}

// Release drops both directions.
func (h *HoldTracker) Release() {
	h.left, h.right = 0, 0
}

// Apply marks the held directions in frame and ages them by one tick.
func (h *HoldTracker) Apply(frame *core.InputFrame) {
	if h.left > 0 {
		frame.Set(core.ActionLeft)
		h.left--
	}
	if h.right > 0 {
		frame.Set(core.ActionRight)
		h.right--
	}
}
