package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/game"
	"github.com/lixenwraith/lizard-arena/status"
)

const (
	glyphGround     = '·'
	glyphEdge       = '░'
	glyphObstacle   = '█'
	glyphSunk       = '▒'
	glyphEnemyIdle  = 'e'
	glyphEnemyWalk  = 'E'
	glyphProjectile = '•'
)

// Draw renders one frame: ground, geometry, enemies, projectiles, the player, then the status bar
func (t *Terminal) Draw(v game.View) {
	s := t.screen
	w, h := s.Size()
	s.Clear()
	if v.Game == nil || w <= 0 || h <= 0 {
		s.Show()
		return
	}

	cam := NewCamera(w, h, v.Game.World.GroundHalfExtent())
	drawArena(s, cam, v.Game)
	drawActors(s, cam, v.Game)
	drawStatus(s, w, h, v)
	s.Show()
}

func fill(s tcell.Screen, cam Camera, x0, y0, x1, y1 int, r rune, style tcell.Style) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if cam.Visible(x, y) {
				s.SetContent(x, y, r, nil, style)
			}
		}
	}
}

func drawArena(s tcell.Screen, cam Camera, g *game.Game) {
	half := g.World.GroundHalfExtent()
	bg := tcell.StyleDefault.Background(RgbBackground)

	x0, y0, x1, y1 := cam.Rect(mgl64.Vec3{-half, 0, -half}, mgl64.Vec3{half, 0, half})
	fill(s, cam, x0, y0, x1, y1, glyphGround, bg.Foreground(RgbGround))
	edge := bg.Foreground(RgbGroundEdge)
	for x := x0; x <= x1; x++ {
		setVisible(s, cam, x, y0, glyphEdge, edge)
		setVisible(s, cam, x, y1, glyphEdge, edge)
	}
	for y := y0; y <= y1; y++ {
		setVisible(s, cam, x0, y, glyphEdge, edge)
		setVisible(s, cam, x1, y, glyphEdge, edge)
	}

	for _, b := range g.World.Obstacles() {
		bx0, by0, bx1, by1 := cam.Rect(b.Min(), b.Max())
		if b.Max().Y() > 0 {
			fill(s, cam, bx0, by0, bx1, by1, glyphObstacle, bg.Foreground(RgbObstacle))
		} else {
			fill(s, cam, bx0, by0, bx1, by1, glyphSunk, bg.Foreground(RgbSunk))
		}
	}
}

func drawActors(s tcell.Screen, cam Camera, g *game.Game) {
	reg := g.State.Registry
	bg := tcell.StyleDefault.Background(RgbBackground)

	for _, id := range reg.Enemies() {
		a, ok := reg.Get(id)
		if !ok {
			continue
		}
		r, style := glyphEnemyIdle, bg.Foreground(RgbEnemyIdle)
		if a.Visual == core.VisualWalk {
			r, style = glyphEnemyWalk, bg.Foreground(RgbEnemyWalk)
		}
		x, y := cam.Project(a.Transform.Position)
		setVisible(s, cam, x, y, r, style)
	}

	for _, id := range reg.Projectiles() {
		a, ok := reg.Get(id)
		if !ok {
			continue
		}
		p, _ := reg.Projectile(id)
		x, y := cam.Project(a.Transform.Position)
		setVisible(s, cam, x, y, glyphProjectile, bg.Foreground(projectileColor(p.Color)))
	}

	if p, ok := reg.Player(); ok {
		style := bg.Foreground(RgbPlayerIdle)
		switch p.Visual {
		case core.VisualWalk:
			style = bg.Foreground(RgbPlayerWalk)
		case core.VisualAttack:
			style = bg.Foreground(RgbPlayerAttack).Reverse(true)
		}
		x, y := cam.Project(p.Transform.Position)
		setVisible(s, cam, x, y, facingGlyph(g.State.Facing), style)
	}
}

// facingGlyph points along the horizontal facing as seen on screen
func facingGlyph(f mgl64.Vec3) rune {
	if math.Abs(f.Z()) >= math.Abs(f.X()) {
		if f.Z() < 0 {
			return '▲'
		}
		return '▼'
	}
	if f.X() > 0 {
		return '◀'
	}
	return '▶'
}

func drawStatus(s tcell.Screen, w, h int, v game.View) {
	reg := v.Game.State.Status
	frameMs := 0.0
	if reg.Floats.Has(status.KeyFrameMillis) {
		frameMs = reg.Floats.Get(status.KeyFrameMillis).Get()
	}

	line := fmt.Sprintf(" frame %d  enemies %d/%d  kills %d  shots %d  %.1fms ",
		v.Game.State.Frame,
		reg.Int(status.KeyEnemiesAlive),
		v.Game.State.Tuning.MaximumEnemies,
		reg.Int(status.KeyEnemiesKilled),
		reg.Int(status.KeyShotsFired),
		frameMs,
	)
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbStatusBar)
	x := drawText(s, 0, h-1, w, line, style)
	if _, ok := v.Game.State.Registry.Player(); !ok {
		x = drawText(s, x, h-1, w, " NO PLAYER ", style.Foreground(RgbStatusWarn))
	}
	if v.Paused {
		drawText(s, x, h-1, w, " PAUSED ", style.Foreground(RgbStatusWarn).Reverse(true))
	}
}

// drawText writes text from x, clipped at w, and returns the column after it
func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func setVisible(s tcell.Screen, cam Camera, x, y int, r rune, style tcell.Style) {
	if cam.Visible(x, y) {
		s.SetContent(x, y, r, nil, style)
	}
}
