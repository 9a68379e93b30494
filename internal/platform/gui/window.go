// Package gui runs a doodle variant in a desktop window using ebiten.
// The simulation is the same one the terminal frontend drives; the window
// draws it at world resolution instead of on a character grid.
package gui

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
	"github.com/vovakirdan/doodle/internal/games/doodle"
	"github.com/vovakirdan/doodle/internal/storage"
)

const stickDeadzone = 0.2

var (
	paperColor  = color.RGBA{R: 250, G: 248, B: 239, A: 255}
	gridColor   = color.RGBA{R: 225, G: 232, B: 240, A: 255}
	shadowColor = color.RGBA{A: 96}
)

// Options configures a window session.
type Options struct {
	Store   *storage.Store  // nil disables run history
	Logger  *log.Logger     // nil discards logs
	Watcher *config.Watcher // nil disables hot reload
	Scale   float64         // window size relative to the world, 1 by default
}

// Window adapts a doodle game to ebiten.Game.
type Window struct {
	game     *doodle.Game
	runtime  core.RuntimeConfig
	opts     Options
	logger   *log.Logger
	recorder *storage.Recorder
}

// NewWindow resets game and wraps it for ebiten.
func NewWindow(game *doodle.Game, rc core.RuntimeConfig, opts Options) *Window {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(rc)
	if opts.Store != nil {
		if best, err := opts.Store.HighScore(game.ID()); err == nil {
			game.SetBest(best)
		} else {
			logger.Warn("could not load high score", "game", game.ID(), "error", err)
		}
	}
	logger.Info("game started", "game", game.ID(), "seed", rc.Seed, "frontend", "window")

	return &Window{
		game:     game,
		runtime:  rc,
		opts:     opts,
		logger:   logger,
		recorder: storage.NewRecorder(opts.Store, "window", logger),
	}
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	w.pollConfig()

	in := readInput()
	if in.Has(core.ActionQuit) {
		w.logger.Info("game quit", "game", w.game.ID(), "score", w.game.State().Score)
		return ebiten.Termination
	}

	result := w.game.Step(in)
	w.recorder.Record(w.game.ID(), result.Events)
	return nil
}

func (w *Window) pollConfig() {
	if w.opts.Watcher == nil {
		return
	}
	select {
	case cfg, ok := <-w.opts.Watcher.Configs:
		if ok {
			w.game.Configure(cfg)
			w.logger.Info("config reloaded, applies from the next run", "game", w.game.ID())
		}
	case err, ok := <-w.opts.Watcher.Errors:
		if ok {
			w.logger.Warn("config reload failed", "error", err)
		}
	default:
	}
}

// readInput samples the keyboard and the first gamepad.
func readInput() core.InputFrame {
	frame := core.NewInputFrame()

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	pause := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		left = left || x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		right = right || x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		pause = pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	if left {
		frame.Set(core.ActionLeft)
	}
	if right {
		frame.Set(core.ActionRight)
	}
	if pause {
		frame.Set(core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		frame.Set(core.ActionRestart)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		frame.Set(core.ActionQuit)
	}
	return frame
}

// Draw renders the current snapshot in world coordinates.
func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.game.Snapshot()

	screen.Fill(paperColor)
	drawGrid(screen, snap)

	for _, p := range snap.Platforms {
		drawPlatform(screen, p, snap.Sizes)
	}
	for _, s := range snap.Springs {
		drawSpring(screen, s, snap.Sizes)
	}
	drawPlayer(screen, snap.Player, snap.Sizes)

	hud := fmt.Sprintf("%s  Score: %d  Best: %d  Run: %d", w.game.Title(), snap.Score, w.game.Best(), snap.Run)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
	if snap.Flash != "" {
		ebitenutil.DebugPrintAt(screen, snap.Flash, 8, 24)
	}
	if snap.Paused {
		msg := "PAUSED - press P to resume"
		ebitenutil.DebugPrintAt(screen, msg, int(snap.Width)/2-len(msg)*3, int(snap.Height)/2)
	}
}

// drawGrid draws graph paper lines that scroll with the score.
func drawGrid(screen *ebiten.Image, snap doodle.Snapshot) {
	const cell = 20
	offset := math.Mod(float64(snap.Tick)*snap.Drop, cell)
	for y := offset; y < snap.Height; y += cell {
		vector.StrokeLine(screen, 0, float32(y), float32(snap.Width), float32(y), 1, gridColor, false)
	}
	for x := 0.0; x < snap.Width; x += cell {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(snap.Height), 1, gridColor, false)
	}
}

func platformColor(kind doodle.PlatformKind) color.Color {
	switch kind {
	case doodle.KindBlue:
		return colornames.Deepskyblue
	case doodle.KindRed:
		return colornames.Firebrick
	default:
		return colornames.Limegreen
	}
}

func drawPlatform(screen *ebiten.Image, p doodle.PlatformView, sizes config.DoodleSizes) {
	x := float32(p.Pos.X - sizes.PlatformWidth/2)
	y := float32(p.Pos.Y)
	w := float32(sizes.PlatformWidth)
	h := float32(sizes.PlatformHeight)

	if p.Broken {
		// two halves sagging apart
		half := w/2 - 2
		vector.FillRect(screen, x, y+4, half, h, colornames.Dimgray, false)
		vector.FillRect(screen, x+w-half, y+8, half, h, colornames.Dimgray, false)
		return
	}
	vector.FillRect(screen, x+2, y+3, w, h, shadowColor, false)
	vector.FillRect(screen, x, y, w, h, platformColor(p.Kind), false)
	vector.StrokeRect(screen, x, y, w, h, 1, colornames.Black, false)
}

func drawSpring(screen *ebiten.Image, s doodle.SpringView, sizes config.DoodleSizes) {
	w := float32(sizes.SpringWidth)
	h := float32(sizes.SpringHeight)
	if s.Released {
		h *= 1.75
	}
	x := float32(s.Pos.X) - w/2
	y := float32(s.Pos.Y) - h
	vector.FillRect(screen, x, y, w, h, colornames.Silver, false)
	for coil := y + 3; coil < y+h; coil += 4 {
		vector.StrokeLine(screen, x, coil, x+w, coil, 1, colornames.Dimgray, false)
	}
}

func drawPlayer(screen *ebiten.Image, p doodle.PlayerView, sizes config.DoodleSizes) {
	w := float32(sizes.PlayerWidth)
	h := float32(sizes.PlayerHeight)
	x := float32(p.Pos.X) - w/2
	y := float32(p.Pos.Y) - h

	body := colornames.Yellowgreen
	if p.Pose == doodle.PoseJumpLeft || p.Pose == doodle.PoseJumpRight {
		body = colornames.Olivedrab
	}
	vector.FillRect(screen, x, y, w, h, body, false)
	vector.StrokeRect(screen, x, y, w, h, 1.5, colornames.Darkolivegreen, false)

	// eye and snout on the facing side
	eyeX, snoutX := x+w*0.3, x-8
	if p.Pose == doodle.PoseIdleRight || p.Pose == doodle.PoseJumpRight {
		eyeX, snoutX = x+w*0.7, x+w
	}
	vector.FillCircle(screen, eyeX, y+h*0.3, 4, colornames.Black, true)
	vector.FillRect(screen, snoutX, y+h*0.35, 8, 8, body, false)
}

// Layout keeps the logical screen at world size; ebiten scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := w.game.Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}

// SavedRuns returns how many runs were written to the store.
func (w *Window) SavedRuns() int {
	return w.recorder.Saved()
}

// Run opens a window and plays game until it is closed or Q is pressed.
func Run(game *doodle.Game, rc core.RuntimeConfig, opts Options) error {
	w := NewWindow(game, rc, opts)

	cfg := game.Config()
	ebiten.SetWindowSize(int(cfg.World.Width*w.opts.Scale), int(cfg.World.Height*w.opts.Scale))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.runtime.TickRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	w.logger.Info("window closed", "game", game.ID(), "saved_runs", w.SavedRuns())
	return nil
}
