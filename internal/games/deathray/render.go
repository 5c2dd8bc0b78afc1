package deathray

import (
	"fmt"
	"math"
	"strings"

	platformcore "github.com/vovakirdan/deathray/internal/core"
	"github.com/vovakirdan/deathray/internal/games/deathray/core"
)

// Glyphs
const (
	RedBlockChar     = '█'
	GreenBlockChar   = '▓'
	SpecialBlockChar = '◆'
	RayChar          = '·'
	RayHitChar       = '✸'
	CannonChar       = '='
	CannonBaseChar   = '■'
	BucketSideLeft   = '\\'
	BucketSideRight  = '/'
	BucketFloorChar  = '▀'
	ArenaEdgeChar    = '·'
	batteryBarWidth  = 10
)

// blockStyle returns the glyph and color for a block kind.
func blockStyle(k core.Kind) (rune, platformcore.Color) {
	switch k {
	case core.KindRed:
		return RedBlockChar, platformcore.ColorRed
	case core.KindGreen:
		return GreenBlockChar, platformcore.ColorGreen
	default:
		return SpecialBlockChar, platformcore.ColorBrightYellow
	}
}

// mirrorChar picks a slash that follows the mirror's tilt.
func mirrorChar(angle float64) rune {
	a := math.Abs(angle)
	switch {
	case a >= 67.5:
		return '│'
	case a >= 22.5:
		if angle > 0 {
			return '/'
		}
		return '\\'
	default:
		return '─'
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", platformcore.ColorBrightWhite)
		dst.DrawTextCentered(dst.Height()/2+1, hint, platformcore.ColorGray)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(g.box, platformcore.ColorGray)

	if g.view.Zoom() < 1 {
		g.renderArenaEdge(dst)
	}
	g.renderMirrors(dst)
	g.renderBuckets(dst)
	g.renderBlocks(dst)
	g.renderRay(dst)
	g.renderCannon(dst)

	g.renderOverlay(dst)
}

// plot sets one world point if it is visible.
func (g *Game) plot(dst *platformcore.Screen, p core.Point, r rune, c platformcore.Color) {
	x, y := g.view.ToScreen(g.field, p)
	if g.field.Contains(x, y) {
		dst.SetColored(x, y, r, c)
	}
}

// line draws a world segment clipped to the arena box.
func (g *Game) line(dst *platformcore.Screen, a, b core.Point, r rune, c platformcore.Color) {
	x0, y0 := g.view.ToScreen(g.field, a)
	x1, y1 := g.view.ToScreen(g.field, b)
	for _, p := range platformcore.Line(x0, y0, x1, y1) {
		if g.field.Contains(p.X, p.Y) {
			dst.SetColored(p.X, p.Y, r, c)
		}
	}
}

// renderHUD draws the counters, battery and tuning values.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	run := g.world.Run()

	scoreText := fmt.Sprintf("Score: %d", run.Score)
	dst.DrawTextColored(1, 0, scoreText, platformcore.ColorBrightWhite)

	hitsColor := platformcore.ColorDefault
	if run.WrongHits >= core.MaxWrongHits-3 {
		hitsColor = platformcore.ColorBrightRed
	}
	hitsText := fmt.Sprintf("Wrong hits: %d/%d", run.WrongHits, core.MaxWrongHits)
	dst.DrawTextColored(len(scoreText)+3, 0, hitsText, hitsColor)

	batteryText := "Battery " + batteryBar(g.world.Store().Battery().Ratio())
	batteryColor := platformcore.ColorBrightCyan
	if g.world.FireHeld() {
		batteryColor = platformcore.ColorBrightMagenta
	}
	dst.DrawTextColored(dst.Width()-len([]rune(batteryText))-1, 0, batteryText, batteryColor)

	bucketColor := platformcore.ColorBrightRed
	if g.activeBucket == core.BucketGreen {
		bucketColor = platformcore.ColorBrightGreen
	}
	tuning := fmt.Sprintf("Spawn %.2fs  Fall %.3f  Zoom %.1fx  ",
		g.world.SpawnInterval(), g.world.FallSpeed(), g.view.Zoom())
	dst.DrawText(1, 1, tuning)
	bucketText := strings.ToUpper(bucketName(g.activeBucket))
	dst.DrawTextColored(1+len(tuning), 1, bucketText, bucketColor)

	if g.messageTicks > 0 && g.message != "" {
		dst.DrawTextColored(dst.Width()-len([]rune(g.message))-1, 1, g.message, messageColor(g.message))
	}
}

// batteryBar renders a charge ratio as a fixed-width gauge.
func batteryBar(ratio float64) string {
	filled := int(math.Round(platformcore.ClampF(ratio, 0, 1) * batteryBarWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", batteryBarWidth-filled) + "]"
}

// messageColor highlights gains green and losses red.
func messageColor(msg string) platformcore.Color {
	switch {
	case strings.Contains(msg, "+0"):
		return platformcore.ColorBrightYellow
	case strings.Contains(msg, "+"):
		return platformcore.ColorBrightGreen
	default:
		return platformcore.ColorBrightRed
	}
}

// renderArenaEdge outlines the arena when the view is wider than it.
func (g *Game) renderArenaEdge(dst *platformcore.Screen) {
	corners := []core.Point{
		{X: core.ArenaLeft, Y: core.ArenaTop},
		{X: core.ArenaRight, Y: core.ArenaTop},
		{X: core.ArenaRight, Y: core.ArenaBottom},
		{X: core.ArenaLeft, Y: core.ArenaBottom},
	}
	for i := range corners {
		g.line(dst, corners[i], corners[(i+1)%len(corners)], ArenaEdgeChar, platformcore.ColorGray)
	}
}

// renderMirrors draws every mirror segment.
func (g *Game) renderMirrors(dst *platformcore.Screen) {
	for _, m := range g.world.Store().Mirrors() {
		start := core.Point{X: m.X, Y: m.Y}
		g.line(dst, start, m.End(), mirrorChar(m.AngleDeg), platformcore.ColorCyan)
	}
}

// renderBuckets draws both buckets as open trapezoids. The active bucket is
// drawn bright.
func (g *Game) renderBuckets(dst *platformcore.Screen) {
	for id, b := range g.world.Store().Buckets() {
		c := platformcore.ColorRed
		if id == core.BucketGreen {
			c = platformcore.ColorGreen
		}
		if id == g.activeBucket {
			c = brighten(c)
		}
		if b.Selected {
			c = platformcore.ColorBrightWhite
		}

		topL := core.Point{X: b.LeftEdge, Y: core.CatchBandHigh}
		topR := core.Point{X: b.RightEdge, Y: core.CatchBandHigh}
		botL := core.Point{X: b.BottomLeft, Y: core.ArenaBottom}
		botR := core.Point{X: b.BottomRight, Y: core.ArenaBottom}

		g.line(dst, topL, botL, BucketSideLeft, c)
		g.line(dst, topR, botR, BucketSideRight, c)
		g.line(dst, botL, botR, BucketFloorChar, c)
	}
}

func brighten(c platformcore.Color) platformcore.Color {
	switch c {
	case platformcore.ColorRed:
		return platformcore.ColorBrightRed
	case platformcore.ColorGreen:
		return platformcore.ColorBrightGreen
	default:
		return c
	}
}

// renderBlocks draws every active block as a short vertical bar.
func (g *Game) renderBlocks(dst *platformcore.Screen) {
	g.world.Store().ForEachActiveBlock(func(_ int, b *core.Block) bool {
		r, c := blockStyle(b.Kind)
		g.line(dst, core.Point{X: b.X, Y: b.Top()}, core.Point{X: b.X, Y: b.Bottom()}, r, c)
		return true
	})
}

// renderRay draws the chain from the most recent tick.
func (g *Game) renderRay(dst *platformcore.Screen) {
	cast := g.lastTick.Cast
	if !g.world.FireHeld() && cast.Outcome == core.OutcomeNone {
		return
	}

	for _, seg := range cast.Segments {
		g.line(dst, seg.From, seg.To, RayChar, platformcore.ColorBrightMagenta)
	}
	if end, ok := cast.Final(); ok && cast.Outcome == core.OutcomeHitBlock {
		g.plot(dst, end, RayHitChar, platformcore.ColorBrightWhite)
	}
}

// renderCannon draws the barrel from the left wall.
func (g *Game) renderCannon(dst *platformcore.Screen) {
	cannon := g.world.Store().Cannon()
	c := platformcore.ColorBrightBlue
	if cannon.Selected {
		c = platformcore.ColorBrightWhite
	}
	g.line(dst, cannon.Origin(), cannon.Muzzle(), CannonChar, c)
	g.plot(dst, cannon.Origin(), CannonBaseChar, c)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *platformcore.Screen) {
	run := g.world.Run()

	switch {
	case g.world.IsGameOver():
		reason := fmt.Sprintf("%d wrong hits", run.WrongHits)
		if run.WrongCatches >= core.MaxWrongCatches {
			reason = "caught a special block"
		}
		subtitle := fmt.Sprintf("Score: %d (%s)  |  Press R to restart", run.Score, reason)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *platformcore.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := platformcore.Min(platformcore.Max(len(title), len(subtitle))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := platformcore.NewRect(boxX, boxY, boxW, boxH)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, platformcore.ColorBrightWhite)
	dst.DrawTextColored(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, platformcore.ColorDefault)
}
