package brickshot

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/brickshot/internal/core"
)

// Visual characters for rendering
const (
	BallChar   = '●'
	OriginChar = '▲'
	AimChar    = '·'
	BrickFill  = '▓'
	LossChar   = '╌'
)

const (
	maxCellW   = 6
	minCellW   = 2
	aimPreview = 10 // Dots drawn along the aim
)

// StartMessage is shown while waiting for a new layout.
const StartMessage = "Init new Game with space or click!"

// view maps world coordinates to screen cells.
// Each block column is cellW cells wide and each block row one line tall.
type view struct {
	screenW, screenH int
	fieldX, fieldY   int // Top-left cell inside the border
	cellW            int
	cols, rows       int
	width, height    float64 // World size
	minW, minH       int
	tooSmall         bool
}

func newView(screenW, screenH int, st Settings) view {
	v := view{
		screenW: screenW,
		screenH: screenH,
		cols:    max(st.Cols, 1),
		rows:    max(st.Rows, 1),
		width:   st.Bounds.Width,
		height:  st.Bounds.Height,
		fieldY:  2, // HUD line, then the top border
	}
	v.minW = v.cols*minCellW + 2
	v.minH = v.rows + 4 // HUD, two borders, help line

	v.cellW = min((screenW-2)/v.cols, maxCellW)
	v.tooSmall = v.cellW < minCellW || screenH < v.minH
	v.cellW = max(v.cellW, minCellW)
	v.fieldX = max((screenW-v.fieldW())/2, 1)
	return v
}

func (v view) fieldW() int {
	return v.cellW * v.cols
}

// toScreen returns the cell holding world point p.
func (v view) toScreen(p core.Vec2) (int, int) {
	x := int(math.Floor(p.X / v.width * float64(v.fieldW())))
	y := int(math.Floor(p.Y / v.height * float64(v.rows)))
	x = core.Clamp(x, 0, v.fieldW()-1)
	y = core.Clamp(y, 0, v.rows-1)
	return v.fieldX + x, v.fieldY + y
}

// toWorld returns the world point at the center of cell (x, y).
// Cells outside the field map to points outside the world.
func (v view) toWorld(x, y int) core.Vec2 {
	wx := (float64(x-v.fieldX) + 0.5) / float64(v.fieldW()) * v.width
	wy := (float64(y-v.fieldY) + 0.5) / float64(v.rows) * v.height
	return core.V(wx, wy)
}

// ScreenPos returns the screen cell of world point p, for pointer-driven
// clients such as the autopilot.
func (g *Game) ScreenPos(p core.Vec2) (int, int) {
	return g.view.toScreen(p)
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	if g.sim == nil {
		return
	}
	if dst.Width() != g.view.screenW || dst.Height() != g.view.screenH {
		g.view = newView(dst.Width(), dst.Height(), g.settings)
	}
	v := g.view

	if v.tooSmall {
		midY := dst.Height() / 2
		dst.DrawTextCentered(midY-1, "Terminal too small")
		dst.DrawTextCentered(midY, fmt.Sprintf("Need %dx%d", v.minW, v.minH))
		return
	}

	s := g.sim.Session()
	phase := g.sim.Phase()

	g.renderHUD(dst, s, phase)
	dst.DrawBox(core.NewRect(v.fieldX-1, v.fieldY-1, v.fieldW()+2, v.rows+2))
	g.renderLossLine(dst, s)

	for _, blk := range s.World.Blocks() {
		g.renderBlock(dst, blk)
	}

	if phase == PhaseAiming || phase == PhaseShooting {
		ox, oy := v.toScreen(s.Origin())
		dst.SetColored(ox, oy, OriginChar, core.ColorOrigin)
	}
	if phase == PhaseAiming {
		g.renderAim(dst, s)
	}

	for _, b := range s.World.Balls() {
		x, y := v.toScreen(b.Pos)
		dst.SetColored(x, y, BallChar, core.ColorBall)
	}

	switch {
	case g.paused:
		g.drawFieldText(dst, v.fieldY+v.rows/2, "PAUSED", core.ColorBrightYellow)
	case phase == PhaseInit:
		g.renderStart(dst, s)
	}

	help := "space/click fire  ←/→ aim  x recall  p pause  r restart  q quit"
	g.drawFieldText(dst, v.fieldY+v.rows+1, help, core.ColorHint)
}

func (g *Game) renderHUD(dst *core.Screen, s *Session, phase Phase) {
	v := g.view
	hud := fmt.Sprintf("Score %d  Balls %d  Round %d  Bricks %d", s.Score, s.Shooter.Count, s.Round, s.World.BlockCount())
	dst.DrawTextColored(v.fieldX, 0, hud, core.ColorHUD)

	label := phase.String()
	if phase == PhaseShooting {
		label = fmt.Sprintf("%s %d/%d", label, s.World.BallCount(), s.Shooter.Count)
	}
	dst.DrawTextColored(v.fieldX+v.fieldW()-len(label), 0, label, core.ColorHint)
}

// renderLossLine marks the row a block must not be asked to leave.
func (g *Game) renderLossLine(dst *core.Screen, s *Session) {
	v := g.view
	_, y := v.toScreen(core.V(0, s.LossLine()+g.settings.BlockSize/2))
	for x := v.fieldX; x < v.fieldX+v.fieldW(); x += 2 {
		dst.SetColored(x, y, LossChar, core.ColorLossLine)
	}
}

func (g *Game) renderBlock(dst *core.Screen, blk *Block) {
	v := g.view
	_, y := v.toScreen(blk.Pos)
	x0 := v.fieldX + blk.Col*v.cellW
	w := v.cellW - 1
	if v.cellW <= minCellW {
		w = v.cellW
	}

	fill, label, color := BrickFill, strconv.FormatUint(uint64(blk.Health), 10), core.BrickColor(blk.Health)
	if blk.Kind == BlockAddBall {
		fill, label, color = ' ', "+1", core.ColorAddBall
	}
	if len(label) > w {
		label = label[len(label)-w:]
	}

	pad := (w - len(label)) / 2
	for i := 0; i < w; i++ {
		dst.SetColored(x0+i, y, fill, color)
	}
	dst.DrawTextColored(x0+pad, y, label, color)
}

func (g *Game) renderAim(dst *core.Screen, s *Session) {
	v := g.view
	step := g.settings.BlockSize / 2
	p := s.Origin()
	for i := 0; i < aimPreview; i++ {
		p = p.Add(s.Aim.Scale(step))
		if p.X < 0 || p.X > v.width || p.Y < 0 {
			return
		}
		x, y := v.toScreen(p)
		if dst.Get(x, y) == ' ' {
			dst.SetColored(x, y, AimChar, core.ColorAim)
		}
	}
}

func (g *Game) renderStart(dst *core.Screen, s *Session) {
	v := g.view
	midY := v.fieldY + v.rows/2

	msg := StartMessage
	switch s.Outcome {
	case OutcomeWon:
		msg = "you won. " + msg
	case OutcomeLost:
		msg = "you lost. " + msg
	}
	g.drawFieldText(dst, midY-2, "B R I C K S H O T", core.ColorTitle)
	g.drawFieldText(dst, midY, msg, core.ColorBrightWhite)
	if s.Outcome.Decided() {
		g.drawFieldText(dst, midY+2, fmt.Sprintf("Score: %d", s.Score), core.ColorBrightYellow)
	}
}

// drawFieldText centers text over the field, or over the screen when it is
// wider than the field.
func (g *Game) drawFieldText(dst *core.Screen, y int, text string, c core.Color) {
	v := g.view
	n := len([]rune(text))
	x := v.fieldX + (v.fieldW()-n)/2
	if n > v.fieldW() {
		x = max((dst.Width()-n)/2, 0)
	}
	dst.DrawTextColored(x, y, text, c)
}
