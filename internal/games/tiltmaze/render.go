package tiltmaze

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tiltmaze/internal/config"
	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/world"
)

// Visual characters for rendering
const (
	WallChar      = '█'
	BlackHoleChar = '◉'
	SucculentChar = '♣'
	PortalChar    = '◎'
	PlayerChar    = '●'
	ShrunkChar    = '•'
	PointerChar   = '+'
)

// Each grid cell is drawn two characters wide so the maze keeps its aspect.
const cellWidth = 2

// viewport maps world positions onto screen cells. Row 0 of the grid is the
// bottom of the play field, so screen rows run the other way.
type viewport struct {
	left, top    int
	rows, cols   int
	tile, offset float64
	needW, needH int
	tooSmall     bool
}

// layout recomputes the viewport for the current screen and level size.
func (g *Game) layout() {
	if g.session == nil {
		return
	}
	rows, cols := g.session.Size()
	v := viewport{
		rows:   rows,
		cols:   cols,
		tile:   g.cfg.World.TileSize,
		offset: g.cfg.World.TileOffset,
		needW:  cols*cellWidth + 2,
		needH:  rows + 5,
	}
	w, h := g.runtime.ScreenW, g.runtime.ScreenH
	v.tooSmall = w < v.needW || h < v.needH
	v.left = max((w-cols*cellWidth)/2, 1)
	v.top = max(2+(h-5-rows)/2, 2)
	g.view = v
}

// toWorld converts a screen cell to the center of the grid cell under it.
func (v viewport) toWorld(sx, sy int) core.Vec2 {
	col := float64(sx-v.left) / cellWidth
	row := float64(v.rows - 1 - (sy - v.top))
	return core.V(math.Floor(col)*v.tile+v.offset, row*v.tile+v.offset)
}

// toScreen converts a world position to the screen cell drawing it.
func (v viewport) toScreen(p core.Vec2) (int, int) {
	col := int(math.Round((p.X - v.offset) / v.tile))
	row := int(math.Round((p.Y - v.offset) / v.tile))
	return v.left + col*cellWidth, v.top + v.rows - 1 - row
}

// Render draws the maze, HUD and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start Tilt Maze")
		if g.setupErr != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.setupErr.Error())
		}
		return
	}

	g.runtime.ScreenW, g.runtime.ScreenH = dst.Width(), dst.Height()
	g.layout()
	if g.view.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", g.view.needW, g.view.needH))
		return
	}

	g.renderHUD(dst)
	g.renderBorder(dst)
	for _, e := range g.session.Entities() {
		g.renderEntity(dst, e)
	}
	g.renderPointer(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.hud.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Succulents left: %d", g.session.RemainingPickups()))
	levelText := fmt.Sprintf("Level: %d/%d", g.hud.Level, g.cfg.Gameplay.FinalLevel)
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)
}

func (g *Game) renderBorder(dst *core.Screen) {
	v := g.view
	dst.DrawBox(core.NewRect(v.left-1, v.top-1, v.cols*cellWidth+2, v.rows+2))
}

func (g *Game) renderEntity(dst *core.Screen, e world.Entity) {
	x, y := g.view.toScreen(e.Position)
	switch e.Kind {
	case level.KindWall:
		dst.SetColored(x, y, WallChar, core.ColorGray)
		dst.SetColored(x+1, y, WallChar, core.ColorGray)
	case level.KindBlackHole:
		dst.SetColored(x, y, BlackHoleChar, core.ColorMagenta)
	case level.KindSucculent:
		dst.SetColored(x, y, SucculentChar, core.ColorBrightGreen)
	case level.KindPortal:
		color := core.ColorBlue
		if g.session.RemainingPickups() == 0 {
			color = core.ColorBrightCyan
		}
		dst.SetColored(x, y, PortalChar, color)
	case level.KindPlayer:
		glyph := PlayerChar
		if e.Scale < 0.5 {
			glyph = ShrunkChar
		}
		dst.SetColored(x, y, glyph, core.ColorYellow)
	}
}

func (g *Game) renderPointer(dst *core.Screen) {
	p, ok := g.input.(*PointerInput)
	if !ok {
		return
	}
	if pos, held := p.Position(); held {
		x, y := g.view.toScreen(pos)
		if dst.Get(x, y) == ' ' {
			dst.SetColored(x, y, PointerChar, core.ColorOrange)
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	y := g.view.top + g.view.rows + 1
	switch {
	case g.session.Phase() == PhaseGameOver:
		msg := fmt.Sprintf("GAME OVER  Score: %d  Level: %d", g.session.Score(), g.session.Level())
		if g.hud.Message != "" {
			msg = "GAME OVER  " + g.hud.Message
		}
		dst.DrawTextCentered(y, msg)
		dst.DrawTextCentered(y+1, "R restart  Q quit")
	case g.paused:
		dst.DrawTextCentered(y, "PAUSED  P resume")
	case g.input.Mode() == config.InputModePointer:
		dst.DrawTextCentered(y, "Hold the mouse button to pull the ball")
	default:
		dst.DrawTextCentered(y, "Arrows tilt  Space level  P pause")
	}
}
