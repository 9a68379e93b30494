package doodle

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/doodle/internal/core"
)

// Terminal glyphs.
const (
	PlatformChar       = '▀'
	BrokenPlatformChar = '╌'
	SpringChar         = '≡'
	ReleasedSpringChar = '^'
)

// cellAspect is how many terminal columns match one row visually.
const cellAspect = 2.0

// field maps world coordinates onto a rectangle of screen cells.
type field struct {
	core.Rect
	sx, sy float64
}

// newField fits a world of width x height inside dst below the HUD row,
// keeping the world's proportions.
func newField(dst *core.Screen, width, height float64) (field, bool) {
	ih := dst.Height() - 3
	if ih < 4 || dst.Width() < 8 {
		return field{}, false
	}
	iw := int(float64(ih) * width / height * cellAspect)
	iw = core.Clamp(iw, 6, dst.Width()-2)

	return field{
		Rect: core.NewRect((dst.Width()-iw)/2, 2, iw, ih),
		sx:   float64(iw) / width,
		sy:   float64(ih) / height,
	}, true
}

// cell converts a world point to screen cell coordinates.
func (f field) cell(p core.Vec2) (int, int) {
	return f.X + int(math.Floor(p.X*f.sx)), f.Y + int(math.Floor(p.Y*f.sy))
}

func (f field) set(dst *core.Screen, x, y int, r rune, c core.Color) {
	if f.Contains(x, y) {
		dst.SetColor(x, y, r, c)
	}
}

// hline draws n cells from (x, y), clipped to the field.
func (f field) hline(dst *core.Screen, x, y, n int, r rune, c core.Color) {
	if y < f.Y || y >= f.Bottom() {
		return
	}
	lo := core.Max(x, f.X)
	hi := core.Min(x+n, f.Right())
	if hi > lo {
		dst.DrawHLine(lo, y, hi-lo, r, c)
	}
}

// span returns how many cells a world width covers, at least one.
func (f field) span(width float64) int {
	return core.Max(1, int(width*f.sx+0.5))
}

// Render draws the world inside a bordered field with a HUD line on top.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	snap := g.Snapshot()

	f, ok := newField(dst, snap.Width, snap.Height)
	if !ok {
		dst.DrawText(0, 0, fmt.Sprintf("Score: %d", snap.Score))
		return
	}
	dst.DrawBox(core.NewRect(f.X-1, f.Y-1, f.W+2, f.H+2), core.ColorGray)

	for _, p := range snap.Platforms {
		drawPlatform(dst, f, p, snap.Sizes.PlatformWidth)
	}
	for _, sp := range snap.Springs {
		x, y := f.cell(sp.Pos)
		r := SpringChar
		if sp.Released {
			r = ReleasedSpringChar
		}
		f.set(dst, x, y-1, r, core.ColorBrightYellow)
	}
	drawPlayer(dst, f, snap.Player, snap.Sizes.PlayerWidth, snap.Sizes.PlayerHeight)

	g.drawHUD(dst, snap)
	if snap.Drifting {
		drawDriftGauge(dst, f, snap.DropLevel)
	}

	if snap.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func drawPlatform(dst *core.Screen, f field, p PlatformView, width float64) {
	n := f.span(width)
	x, y := f.cell(p.Pos.Sub(core.V(width/2, 0)))

	r, c := PlatformChar, platformColor(p.Kind)
	if p.Broken {
		r, c = BrokenPlatformChar, core.ColorGray
	}
	f.hline(dst, x, y, n, r, c)
}

func platformColor(kind PlatformKind) core.Color {
	switch kind {
	case KindBlue:
		return core.ColorBrightBlue
	case KindRed:
		return core.ColorRed
	default:
		return core.ColorGreen
	}
}

// drawPlayer draws the player standing on its anchor row, with an eye on the
// facing side and feet that flip between rising and falling.
func drawPlayer(dst *core.Screen, f field, pv PlayerView, width, height float64) {
	n := f.span(width)
	rows := core.Max(1, int(height*f.sy+0.5))
	x, y := f.cell(pv.Pos.Sub(core.V(width/2, 0)))
	y--

	body := '█'
	if pv.Pose == PoseJumpLeft || pv.Pose == PoseJumpRight {
		body = '▓'
	}
	for row := 0; row < rows; row++ {
		f.hline(dst, x, y-row, n, body, core.ColorBrightYellow)
	}

	eye := x
	if pv.Pose == PoseIdleRight || pv.Pose == PoseJumpRight {
		eye = x + n - 1
	}
	f.set(dst, eye, y-rows+1, '●', core.ColorWhite)
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" %s  Score: %d  Best: %d  Run: %d ", g.Title(), snap.Score, core.Max(g.best, snap.Score), snap.Run)
	dst.DrawTextColor(0, 0, hud, core.ColorWhite)

	if snap.Flash != "" {
		x := dst.Width() - len([]rune(snap.Flash)) - 1
		dst.DrawTextColor(x, 0, snap.Flash, core.ColorBrightYellow)
	}
}

// driftCells is the width of the drift gauge bar.
const driftCells = 8

// drawDriftGauge shows how close the ambient drop is to its cap, set into the
// top border of the field.
func drawDriftGauge(dst *core.Screen, f field, level float64) {
	filled := core.Clamp(int(level*driftCells+0.5), 0, driftCells)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", driftCells-filled)
	label := " drift " + bar + " "

	x := f.Right() - len([]rune(label)) - 1
	if x <= f.X {
		return
	}
	dst.DrawTextColor(x, f.Y-1, label, core.ColorGray)
	dst.DrawTextColor(x+len(" drift "), f.Y-1, bar, driftColor(level))
}

func driftColor(level float64) core.Color {
	switch {
	case level >= 0.75:
		return core.ColorBrightRed
	case level >= 0.4:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
