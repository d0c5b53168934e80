package blades

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/knife"
)

const chargeBarWidth = 10

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderOverlay(dst, "Cannot start", g.err.Error(), 1, core.ColorRed)
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue", 1, core.ColorYellow)
		return
	}

	g.renderTarget(dst)
	g.renderKnives(dst)
	g.renderCharge(dst)
	g.renderPanels(dst)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	level := g.session.Config()
	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf(" Twisty Blades (Endless) | Lap %d %s | Knives: %d | Time: %4.1fs | Score: %d",
			g.levelIndex/max(len(g.cfg.Levels), 1)+1, level.Name, g.hud.Remaining(), g.hud.TimeLeft(), g.score)
	} else {
		hud = fmt.Sprintf(" Twisty Blades | Level %d/%d %s | Knives: %d | Time: %4.1fs | Score: %d",
			g.levelIndex+1, len(g.cfg.Levels), level.Name, g.hud.Remaining(), g.hud.TimeLeft(), g.score)
	}

	timeColor := core.ColorDefault
	if g.session.Active() && g.hud.TimeLeft() < 5 {
		timeColor = core.ColorBrightRed
	}
	dst.DrawTextColored(0, 0, hud, timeColor)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderTarget draws the disc and a spoke so the spin is visible.
func (g *Game) renderTarget(dst *core.Screen) {
	l := g.arena.Layout()
	r := l.Radius

	for y := int(l.CenterY - r); y <= int(l.CenterY+r); y++ {
		for x := int(l.CenterX - r*cellAspect); x <= int(l.CenterX+r*cellAspect); x++ {
			dx := (float64(x) - l.CenterX) / cellAspect
			dy := float64(y) - l.CenterY
			d := math.Hypot(dx, dy)
			switch {
			case d > r:
			case d > r-1:
				dst.SetColored(x, y, 'O', core.ColorOrange)
			default:
				dst.SetColored(x, y, '.', core.ColorYellow)
			}
		}
	}

	for s := 0.0; s < r-1; s += 0.5 {
		x, y := core.Polar(l.CenterX, l.CenterY, s, g.arena.Rotation(), cellAspect)
		dst.SetColored(int(math.Round(x)), int(math.Round(y)), '*', core.ColorBrightYellow)
	}
}

// renderKnives draws stuck, flying and held knives, and falling debris.
func (g *Game) renderKnives(dst *core.Screen) {
	l := g.arena.Layout()

	for _, id := range g.arena.order {
		b := g.arena.bodies[id]
		switch {
		case b.stuck:
			g.renderStuck(dst, b)
		case b.flying:
			drawUprightKnife(dst, int(b.obj.X), b.obj.Y, l.KnifeLength, core.ColorBrightWhite)
		default:
			pull := g.thrower.UpdateCharge(g.now)
			color := core.ColorWhite
			if g.thrower.Charging() {
				color = core.ColorBrightCyan
			} else if !g.thrower.Ready(g.now) {
				color = core.ColorGray
			}
			drawUprightKnife(dst, int(b.obj.X), b.obj.Y-pull, l.KnifeLength, color)
		}
	}

	for _, d := range g.arena.debris {
		dst.SetColored(int(d.x), int(d.y), 'x', core.ColorRed)
	}
}

// renderStuck draws a knife from its tip outward along its angle.
func (g *Game) renderStuck(dst *core.Screen, b *body) {
	l := g.arena.Layout()
	glyph := bladeGlyph(b.angle + g.arena.Rotation())
	for s := 0.0; s <= l.KnifeLength; s += 0.5 {
		x, y := g.arena.bladePoint(b, b.tip+s)
		c := core.ColorBrightWhite
		if s > l.KnifeLength*0.6 {
			c = core.ColorMagenta // Handle
		}
		dst.SetColored(int(math.Round(x)), int(math.Round(y)), glyph, c)
	}
}

// drawUprightKnife draws a knife pointing up with its tip at row top.
func drawUprightKnife(dst *core.Screen, x int, top, length float64, c core.Color) {
	y0 := int(math.Round(top))
	n := int(length)
	for i := 0; i < n; i++ {
		r := '|'
		switch {
		case i == 0:
			r = '^'
		case i == n-1:
			r = '#'
		}
		dst.SetColored(x, y0+i, r, c)
	}
}

// bladeGlyph picks a line character for a knife pointing at deg.
func bladeGlyph(deg float64) rune {
	switch d := math.Mod(core.NormalizeDeg(deg), 180); {
	case d < 22.5 || d >= 157.5:
		return '-'
	case d < 67.5:
		return '\\'
	case d < 112.5:
		return '|'
	default:
		return '/'
	}
}

// renderCharge draws the power bar in the bottom-left corner.
func (g *Game) renderCharge(dst *core.Screen) {
	frac := g.thrower.HoldFraction(g.now)
	filled := int(math.Round(frac * chargeBarWidth))
	bar := "Power [" + strings.Repeat("#", filled) + strings.Repeat(".", chargeBarWidth-filled) + "]"
	dst.DrawTextColored(1, dst.Height()-2, bar, core.ColorCyan)
	dst.DrawTextColored(1, dst.Height()-1, "SPACE throw  P pause  R retry  B menu", core.ColorGray)
}

// renderPanels draws the fading level panels and the end screens.
func (g *Game) renderPanels(dst *core.Screen) {
	level := g.session.Config()
	alpha := g.hud.Alpha()

	switch {
	case g.won:
		g.renderOverlay(dst, "All levels cleared!", fmt.Sprintf("Final score: %d  B: menu", g.score), 1, core.ColorBrightGreen)
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue", 1, core.ColorDefault)
	case g.hud.Panel() == PanelVictory:
		hint := "Enter: next level  R: replay  B: menu"
		if g.mode == ModeEndless {
			hint = "Get ready..."
		}
		g.renderOverlay(dst, fmt.Sprintf("%s cleared!", level.Name), hint, alpha, core.ColorBrightGreen)
	case g.hud.Panel() == PanelLose:
		g.renderOverlay(dst, loseTitle(g.session), fmt.Sprintf("Score: %d  R: retry  B: menu", g.score), alpha, core.ColorBrightRed)
	case g.hud.Panel() == PanelIntro:
		g.renderOverlay(dst, level.Name, fmt.Sprintf("Stick %d knives in %.0fs", level.RequiredHits, level.TimeLimit), alpha, core.ColorBrightCyan)
	}
}

// loseTitle names the reason a level was lost.
func loseTitle(s *knife.Session) string {
	if s.Remaining() > 0 && s.TimeLeft() == 0 {
		return "Time's up!"
	}
	return "Blades clashed!"
}

// renderOverlay draws a centered two-line box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string, alpha float64, c core.Color) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	box := core.CenteredRect(w, h, dst.Width(), dst.Height())

	color := c.Fade(alpha)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, color)
	dst.DrawTextCenteredColored(box.Y+1, line1, color)
	dst.DrawTextCenteredColored(box.Y+3, line2, core.ColorDefault.Fade(alpha))
}
