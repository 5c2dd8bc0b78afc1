package deathray

import (
	"math"

	"github.com/vovakirdan/deathray/internal/config"
	platformcore "github.com/vovakirdan/deathray/internal/core"
	"github.com/vovakirdan/deathray/internal/games/deathray/core"
)

const (
	arenaW = core.ArenaRight - core.ArenaLeft
	arenaH = core.ArenaTop - core.ArenaBottom
)

// Viewport is the camera over the arena. Zoom 1 shows the whole arena;
// larger values magnify around the center. It never affects the simulation.
type Viewport struct {
	cfg     config.ViewConfig
	zoom    float64
	centerX float64
	centerY float64
}

// NewViewport creates a viewport showing the whole arena.
func NewViewport(cfg config.ViewConfig) *Viewport {
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = 0.5
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = 3.0
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MaxZoom = cfg.MinZoom
	}
	if cfg.ZoomStep <= 0 {
		cfg.ZoomStep = 0.1
	}
	if cfg.PanStep <= 0 {
		cfg.PanStep = 0.5
	}

	v := &Viewport{cfg: cfg}
	v.Reset()
	return v
}

// Reset restores zoom 1 centered on the arena.
func (v *Viewport) Reset() {
	v.zoom = math.Max(v.cfg.MinZoom, math.Min(v.cfg.MaxZoom, 1.0))
	v.centerX = (core.ArenaLeft + core.ArenaRight) / 2
	v.centerY = (core.ArenaTop + core.ArenaBottom) / 2
	v.clamp()
}

// Zoom returns the magnification factor.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// Center returns the world point at the middle of the view.
func (v *Viewport) Center() core.Point {
	return core.Point{X: v.centerX, Y: v.centerY}
}

// ZoomIn magnifies by one step.
func (v *Viewport) ZoomIn() {
	v.SetZoom(v.zoom + v.cfg.ZoomStep)
}

// ZoomOut shrinks by one step.
func (v *Viewport) ZoomOut() {
	v.SetZoom(v.zoom - v.cfg.ZoomStep)
}

// SetZoom sets the magnification within the configured limits.
func (v *Viewport) SetZoom(z float64) {
	v.zoom = math.Max(v.cfg.MinZoom, math.Min(v.cfg.MaxZoom, z))
	v.clamp()
}

// PanLeft moves the view toward the cannon.
func (v *Viewport) PanLeft() {
	v.centerX -= v.cfg.PanStep
	v.clamp()
}

// PanRight moves the view toward the right wall.
func (v *Viewport) PanRight() {
	v.centerX += v.cfg.PanStep
	v.clamp()
}

// Bounds returns the visible world rectangle.
func (v *Viewport) Bounds() (left, right, bottom, top float64) {
	hw := arenaW / 2 / v.zoom
	hh := arenaH / 2 / v.zoom
	return v.centerX - hw, v.centerX + hw, v.centerY - hh, v.centerY + hh
}

// clamp keeps the visible region inside the arena. When the view is wider
// than the arena it stays centered on it.
func (v *Viewport) clamp() {
	v.centerX = clampAxis(v.centerX, arenaW/2/v.zoom, core.ArenaLeft, core.ArenaRight)
	v.centerY = clampAxis(v.centerY, arenaH/2/v.zoom, core.ArenaBottom, core.ArenaTop)
}

func clampAxis(center, half, lo, hi float64) float64 {
	if 2*half >= hi-lo {
		return (lo + hi) / 2
	}
	return math.Max(lo+half, math.Min(hi-half, center))
}

// ToScreen maps a world point to a cell inside field. The result may lie
// outside field when the point is not visible.
func (v *Viewport) ToScreen(field platformcore.Rect, p core.Point) (int, int) {
	left, right, bottom, top := v.Bounds()
	fx := (p.X - left) / (right - left)
	fy := (top - p.Y) / (top - bottom)
	x := field.X + int(math.Round(fx*float64(field.W-1)))
	y := field.Y + int(math.Round(fy*float64(field.H-1)))
	return x, y
}

// ToWorld maps a cell back to the world point at its center.
func (v *Viewport) ToWorld(field platformcore.Rect, x, y int) core.Point {
	left, right, bottom, top := v.Bounds()
	fx, fy := 0.0, 0.0
	if field.W > 1 {
		fx = float64(x-field.X) / float64(field.W-1)
	}
	if field.H > 1 {
		fy = float64(y-field.Y) / float64(field.H-1)
	}
	return core.Point{
		X: left + fx*(right-left),
		Y: top - fy*(top-bottom),
	}
}

// UnitsPerCell returns the world width covered by one column.
func (v *Viewport) UnitsPerCell(field platformcore.Rect) float64 {
	if field.W <= 1 {
		return arenaW / v.zoom
	}
	return arenaW / v.zoom / float64(field.W-1)
}
