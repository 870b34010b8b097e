package render

import "github.com/gdamore/tcell/v2"

// Arena palette (Tokyo Night)
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbGround     = tcell.NewRGBColor(52, 59, 88)
	RgbGroundEdge = tcell.NewRGBColor(86, 95, 137)
	RgbObstacle   = tcell.NewRGBColor(169, 177, 214)
	RgbSunk       = tcell.NewRGBColor(61, 89, 161) // Sunk below the floor

	RgbPlayerIdle   = tcell.NewRGBColor(255, 165, 0)
	RgbPlayerWalk   = tcell.NewRGBColor(255, 200, 80)
	RgbPlayerAttack = tcell.NewRGBColor(255, 255, 255)

	RgbEnemyIdle = tcell.NewRGBColor(180, 50, 50)
	RgbEnemyWalk = tcell.NewRGBColor(255, 80, 80)

	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255)
	RgbStatusDim  = tcell.NewRGBColor(180, 180, 180)
	RgbStatusWarn = tcell.NewRGBColor(255, 255, 0)
)

// projectileColor converts a 0xRRGGBB bolt color
func projectileColor(c uint32) tcell.Color {
	return tcell.NewHexColor(int32(c & 0xffffff))
}
