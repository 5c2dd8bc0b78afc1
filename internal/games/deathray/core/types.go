// Package core implements the Death Ray simulation: the entity store, block
// spawner, fall and catch scoring, the ray-cast/reflection engine and the run
// tracker. It has no dependencies on terminals or rendering so that every rule
// can be tested directly.
package core

import (
	"fmt"
	"math"
)

// Arena bounds in world units. The play region spans [ArenaLeft, ArenaRight]
// horizontally.
const (
	ArenaLeft   = -11.0
	ArenaRight  = 5.0
	ArenaTop    = 6.0
	ArenaBottom = -6.0
)

// Block geometry.
const (
	BlockSpawnY    = 5.7  // Bottom edge of a freshly spawned block
	BlockHeight    = 0.3  // Vertical extent hit by the ray
	BlockHalfWidth = 0.05 // Only used for near-vertical rays
	BlockMinX      = -5.94
	BlockMaxX      = 3.5
	BlockMissY     = -12.0 // Descent offset below which a block is dropped
)

// Catch band: a block is eligible for catching while its bottom edge is in
// (CatchBandLow, CatchBandHigh].
const (
	CatchBandHigh = ArenaBottom + 1.0 // Top rim of the buckets
	CatchBandLow  = CatchBandHigh - 0.3
)

// Bucket geometry.
const (
	BucketWidth       = 1.6
	BucketBottomWidth = 0.6
	BucketMinLeft     = ArenaLeft + 1.0
	BucketMaxRight    = ArenaRight - 1.0
	BucketMaxLeft     = BucketMaxRight - BucketWidth
)

// Cannon limits.
const (
	CannonMinAngle = -45.0
	CannonMaxAngle = 45.0
	CannonMinY     = -3.5
	CannonMaxY     = 3.5
	CannonLength   = 1.5
)

// Mirror generation ranges.
const (
	MinMirrors      = 3
	MaxMirrors      = 5
	MirrorMinX      = -6.94
	MirrorMaxX      = 2.0
	MirrorMinY      = -2.94
	MirrorMaxY      = 3.0
	MirrorMinAngle  = 1.0
	MirrorMaxAngle  = 89.0
	MirrorMaxLength = 4.0
)

// DefaultPoolSize is the number of block slots.
const DefaultPoolSize = 5000

// Kind identifies what a block is and how it must be handled.
type Kind int

const (
	KindRed     Kind = iota // Catch in the red bucket
	KindGreen               // Catch in the green bucket
	KindSpecial             // Must be shot, never caught
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRed:
		return "red"
	case KindGreen:
		return "green"
	case KindSpecial:
		return "special"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Bucket indices.
const (
	BucketRed   = 0
	BucketGreen = 1
)

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Segment is one straight piece of the ray chain.
type Segment struct {
	From, To Point
}

// Block is one slot of the falling block pool.
// Y is the descent offset from SpawnY; the bottom edge sits at SpawnY+Y.
type Block struct {
	X      float64
	Y      float64
	SpawnY float64
	Kind   Kind
	Active bool
}

// Bottom returns the world y of the block's bottom edge.
func (b Block) Bottom() float64 {
	return b.SpawnY + b.Y
}

// Top returns the world y of the block's top edge.
func (b Block) Top() float64 {
	return b.Bottom() + BlockHeight
}

// Bucket is one of the two catching buckets.
type Bucket struct {
	LeftEdge        float64
	RightEdge       float64
	BottomLeft      float64
	BottomRight     float64
	InitialLeftEdge float64
	Selected        bool
}

// Center returns the horizontal center of the bucket.
func (b Bucket) Center() float64 {
	return (b.LeftEdge + b.RightEdge) / 2
}

// Contains reports whether x lies within the bucket's outer span.
func (b Bucket) Contains(x float64) bool {
	return b.LeftEdge <= x && x <= b.RightEdge
}

// Overlaps reports whether two bucket spans touch or overlap.
func (b Bucket) Overlaps(o Bucket) bool {
	return (b.LeftEdge <= o.LeftEdge && b.RightEdge >= o.LeftEdge) ||
		(o.LeftEdge <= b.LeftEdge && o.RightEdge >= b.LeftEdge)
}

// Mirror is a fixed reflecting segment starting at (X, Y).
type Mirror struct {
	X                 float64
	Y                 float64
	Length            float64
	AngleDeg          float64
	LastIntersectionX float64
}

// End returns the far end point of the mirror segment.
func (m Mirror) End() Point {
	rad := degToRad(m.AngleDeg)
	return Point{X: m.X + m.Length*math.Cos(rad), Y: m.Y + m.Length*math.Sin(rad)}
}

// Cannon is the player's ray emitter on the left edge of the arena.
type Cannon struct {
	Y        float64
	AngleDeg float64
	Selected bool
}

// Origin returns the emission point of the ray.
func (c Cannon) Origin() Point {
	return Point{X: ArenaLeft, Y: c.Y}
}

// Muzzle returns the tip of the cannon barrel, used for hit-testing drags.
func (c Cannon) Muzzle() Point {
	rad := degToRad(c.AngleDeg)
	return Point{X: ArenaLeft + CannonLength*math.Cos(rad), Y: c.Y + CannonLength*math.Sin(rad)}
}

// Battery gates how long the ray can fire.
type Battery struct {
	Charge float64
	Max    float64
}

// Ratio returns the charge as a fraction of the maximum.
func (b Battery) Ratio() float64 {
	if b.Max <= 0 {
		return 0
	}
	return b.Charge / b.Max
}

// RunState holds the counters that decide the end of a run.
type RunState struct {
	Score        int
	WrongHits    int
	WrongCatches int
}
