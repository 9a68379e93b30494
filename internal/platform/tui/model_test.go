package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
	_ "github.com/vovakirdan/doodle/internal/games/doodle"
	"github.com/vovakirdan/doodle/internal/storage"
)

// scriptedGame records its inputs and dies on a fixed tick.
type scriptedGame struct {
	deathAt int
	score   int
	ticks   int
	inputs  []core.InputFrame
	resets  int
}

func (g *scriptedGame) ID() string               { return "scripted" }
func (g *scriptedGame) Title() string            { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptedGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState    { return core.GameState{Score: g.score} }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	g.inputs = append(g.inputs, in.Clone())

	res := core.StepResult{State: g.State()}
	if g.ticks == g.deathAt {
		res.Events = append(res.Events, core.Event{Kind: core.EventDeath, Score: g.score, Level: 9, Ticks: g.ticks})
	}
	return res
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func tick(t *testing.T, m tea.Model, n int) tea.Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = m.Update(TickMsg(time.Now()))
	}
	return m
}

func TestModelSavesRunOnDeath(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{deathAt: 3, score: 42}
	var m tea.Model = NewModel(g, testRuntime(), Options{Store: store})
	m.Init()
	m = tick(t, m, 5)

	runs, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved runs = %d, expected 1", len(runs))
	}
	if runs[0].Score != 42 || runs[0].MaxLevel != 9 || runs[0].Ticks != 3 || runs[0].Source != "local" {
		t.Errorf("run = %+v", runs[0])
	}
	if m.(Model).SavedRuns() != 1 {
		t.Errorf("SavedRuns() = %d", m.(Model).SavedRuns())
	}
}

func TestModelSkipsZeroScoreRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{deathAt: 1}
	var m tea.Model = NewModel(g, testRuntime(), Options{Store: store})
	m.Init()
	tick(t, m, 2)

	if high, _ := store.HighScore("scripted"); high != 0 {
		t.Errorf("zero-score run was saved with score %d", high)
	}
}

func TestModelHeldKeys(t *testing.T) {
	g := &scriptedGame{}
	var m tea.Model = NewModel(g, testRuntime(), Options{HoldTicks: 4, InitialTicks: 6})
	m.Init()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m, 8)

	for i, in := range g.inputs {
		held := in.Has(core.ActionLeft)
		if i < 6 && !held {
			t.Errorf("tick %d: left should be held", i+1)
		}
		if i >= 6 && held {
			t.Errorf("tick %d: left should have decayed", i+1)
		}
	}

	m, _ = m.Update(runeKey('p'))
	tick(t, m, 2)
	if !g.inputs[8].Has(core.ActionPause) {
		t.Error("pause should reach the next tick")
	}
	if g.inputs[9].Has(core.ActionPause) {
		t.Error("pause is one-shot")
	}
}

func TestModelQuit(t *testing.T) {
	g := &scriptedGame{}
	var m tea.Model = NewModel(g, testRuntime(), Options{})
	m.Init()

	if !strings.Contains(m.View(), "scripted") {
		t.Error("view should show the game")
	}

	m, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	g := &scriptedGame{}
	var m tea.Model = NewModel(g, testRuntime(), Options{})
	m.Init()

	m, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	model := m.(Model)
	if model.screen.Width() != 60 || model.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, expected 60x19", model.screen.Width(), model.screen.Height())
	}
	if g.resets != 1 {
		t.Errorf("resize must not restart the game, resets = %d", g.resets)
	}
}

func TestModelPlaysDoodle(t *testing.T) {
	var m tea.Model = NewModel(mustCreate(t, config.VariantDoodle), core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 3}, Options{})
	m.Init()
	m = tick(t, m, 30)

	view := m.View()
	if !strings.Contains(view, "Score:") {
		t.Error("doodle HUD missing from view")
	}
	if m.(Model).State().Run != 1 {
		t.Errorf("run = %d", m.(Model).State().Run)
	}
}

func TestModelSeedsBestFromStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRun(storage.Run{GameID: config.VariantDoodle, Score: 50}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	var m tea.Model = NewModel(mustCreate(t, config.VariantDoodle), core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 3}, Options{Store: store})
	m.Init()

	if view := m.View(); !strings.Contains(view, "Best: 50") {
		t.Error("stored high score should seed the HUD best")
	}
}

func TestModelScreenshotUsesBinding(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".doodle", "screenshots")

	g := &scriptedGame{}
	m := NewModel(g, testRuntime(), Options{})
	m.keys.Screenshot = key.NewBinding(key.WithKeys("f2"))
	m.Init()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("ctrl+s saved a screenshot after rebinding: %v", entries)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyF2})
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("screenshots = %v, %v, expected one file", entries, err)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "scripted") {
		t.Errorf("screenshot = %q", data)
	}
}

func TestSSHGameFor(t *testing.T) {
	s := &SSHServer{config: DefaultSSHServerConfig()}
	if s.Addr() != ":23234" {
		t.Errorf("Addr() = %q", s.Addr())
	}

	id, err := s.GameFor(nil)
	if err != nil || id != config.VariantDoodle {
		t.Errorf("GameFor(nil) = %q, %v", id, err)
	}

	id, err = s.GameFor([]string{"DOODLE_CLASSIC"})
	if err != nil || id != config.VariantClassic {
		t.Errorf("GameFor(classic) = %q, %v", id, err)
	}

	if _, err := s.GameFor([]string{"tetris"}); err == nil {
		t.Error("unknown game should fail")
	}
}

func TestFormatTicks(t *testing.T) {
	tests := map[int]string{0: "0:00", 59: "0:00", 60: "0:01", 3600: "1:00", 4530: "1:15"}
	for ticks, want := range tests {
		if got := formatTicks(ticks); got != want {
			t.Errorf("formatTicks(%d) = %q, expected %q", ticks, got, want)
		}
	}
}
