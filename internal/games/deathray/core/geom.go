package core

import "math"

// Epsilon guards every division in the intersection math.
const Epsilon = 1e-9

// SamePointTolerance is how close a hit x may be to a mirror's previous
// reflection point before it is treated as the same bounce.
const SamePointTolerance = 1e-4

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle maps an angle in degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}

// ReflectAngle returns the direction of a ray at angle theta after a specular
// reflection off a line at mirrorAngle.
func ReflectAngle(mirrorAngle, theta float64) float64 {
	return NormalizeAngle(2*mirrorAngle - theta)
}

func clampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ray is a half-line from Origin along the unit vector (DX, DY).
type ray struct {
	Origin Point
	DX, DY float64
}

func newRay(origin Point, angleDeg float64) ray {
	rad := degToRad(angleDeg)
	return ray{Origin: origin, DX: math.Cos(rad), DY: math.Sin(rad)}
}

// at returns the point at distance t along the ray.
func (r ray) at(t float64) Point {
	return Point{X: r.Origin.X + t*r.DX, Y: r.Origin.Y + t*r.DY}
}

func cross(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

// hitSegment intersects the ray with segment a-b.
// Returns the distance along the ray, or false when the ray is parallel to the
// segment, the segment is degenerate, or the crossing is not strictly ahead.
func (r ray) hitSegment(a, b Point) (float64, bool) {
	ex, ey := b.X-a.X, b.Y-a.Y
	if ex*ex+ey*ey < Epsilon*Epsilon {
		return 0, false
	}

	denom := cross(r.DX, r.DY, ex, ey)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}

	wx, wy := a.X-r.Origin.X, a.Y-r.Origin.Y
	t := cross(wx, wy, ex, ey) / denom
	s := cross(wx, wy, r.DX, r.DY) / denom

	if t <= Epsilon || s < -Epsilon || s > 1+Epsilon {
		return 0, false
	}
	return t, true
}

// hitBlock intersects the ray with a block modelled as a vertical segment at
// x spanning [bottom, top]. Near-vertical rays use the block's half width.
func (r ray) hitBlock(x, bottom, top float64) (float64, bool) {
	if math.Abs(r.DX) < Epsilon {
		if math.Abs(x-r.Origin.X) > BlockHalfWidth {
			return 0, false
		}
		var t float64
		switch {
		case r.DY > 0 && bottom > r.Origin.Y:
			t = bottom - r.Origin.Y
		case r.DY < 0 && top < r.Origin.Y:
			t = r.Origin.Y - top
		default:
			return 0, false
		}
		return t, t > Epsilon
	}

	t := (x - r.Origin.X) / r.DX
	if t <= Epsilon {
		return 0, false
	}
	y := r.Origin.Y + t*r.DY
	if y < bottom || y > top {
		return 0, false
	}
	return t, true
}

// exitArena returns the distance at which the ray leaves the play region.
func (r ray) exitArena() float64 {
	best := math.Inf(1)
	consider := func(t float64) {
		if t > Epsilon && t < best {
			best = t
		}
	}

	if r.DX > Epsilon {
		consider((ArenaRight - r.Origin.X) / r.DX)
	} else if r.DX < -Epsilon {
		consider((ArenaLeft - r.Origin.X) / r.DX)
	}
	if r.DY > Epsilon {
		consider((ArenaTop - r.Origin.Y) / r.DY)
	} else if r.DY < -Epsilon {
		consider((ArenaBottom - r.Origin.Y) / r.DY)
	}

	if math.IsInf(best, 1) {
		return 0
	}
	return best
}
