package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/doodle/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey('d'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionStop},
		{runeKey('p'), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		if got := keys.Action(tc.msg); got != tc.expected {
			t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestHoldTrackerInitialPress(t *testing.T) {
	h := NewHoldTracker(5, 10)
	h.Press(core.ActionLeft)

	for tick := 1; tick <= 10; tick++ {
		frame := core.NewInputFrame()
		h.Apply(&frame)
		if !frame.Has(core.ActionLeft) {
			t.Fatalf("tick %d: left should still be held", tick)
		}
	}

	frame := core.NewInputFrame()
	h.Apply(&frame)
	if frame.Has(core.ActionLeft) {
		t.Error("left should be released after the initial hold")
	}
}

func TestHoldTrackerRepeat(t *testing.T) {
	h := NewHoldTracker(5, 10)
	h.Press(core.ActionRight)

	frame := core.NewInputFrame()
	h.Apply(&frame)

	// An auto-repeat while still held refreshes with the short window.
	h.Press(core.ActionRight)
	for tick := 1; tick <= 5; tick++ {
		frame := core.NewInputFrame()
		h.Apply(&frame)
		if !frame.Has(core.ActionRight) {
			t.Fatalf("tick %d: right should be held", tick)
		}
	}
	if h.right > 0 {
		t.Error("right should be released after the repeat window")
	}
}

func TestHoldTrackerSwitchAndStop(t *testing.T) {
	h := NewHoldTracker(0, 0)

	h.Press(core.ActionLeft)
	h.Press(core.ActionRight)
	if h.left > 0 || h.right == 0 {
		t.Error("pressing right should release left")
	}

	h.Press(core.ActionStop)
	if h.left > 0 || h.right > 0 {
		t.Error("stop should release both directions")
	}
}

func TestHoldTrackerDefaults(t *testing.T) {
	h := NewHoldTracker(0, 0)
	if h.holdTicks != DefaultHoldTicks || h.initialTicks != DefaultInitialTicks {
		t.Errorf("defaults = %d/%d", h.holdTicks, h.initialTicks)
	}

	h = NewHoldTracker(40, 10)
	if h.initialTicks != 40 {
		t.Errorf("initial window must cover the repeat window, got %d", h.initialTicks)
	}
}
