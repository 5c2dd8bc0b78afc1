package core

import "math"

// Outcome is the terminal state of one ray resolution.
type Outcome int

const (
	OutcomeNone        Outcome = iota // Ray not fired this tick
	OutcomeHitBlock                   // Ray destroyed a block
	OutcomeHitBoundary                // Ray left the arena (or ran out of bounces)
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeHitBlock:
		return "block"
	case OutcomeHitBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// CastResult describes one complete cast-and-reflect resolution.
type CastResult struct {
	Segments []Segment // Ordered chain from the cannon to the terminal point
	Outcome  Outcome
	BlockID  int  // Destroyed block, -1 otherwise
	Bounces  int  // Mirror reflections performed
	Capped   bool // Terminated by the bounce cap
	Event    *Event
}

// Final returns the end point of the chain.
func (r CastResult) Final() (Point, bool) {
	if len(r.Segments) == 0 {
		return Point{}, false
	}
	return r.Segments[len(r.Segments)-1].To, true
}

// DefaultBounceCap returns the reflection limit for a layout with n mirrors.
func DefaultBounceCap(mirrors int) int {
	return mirrors + 1
}

// nearestBlock finds the active block crossed first along r.
// Ties keep the lower pool index because iteration is in pool order.
func nearestBlock(s *Store, r ray) (int, float64) {
	bestID, bestT := -1, math.Inf(1)
	s.ForEachActiveBlock(func(id int, b *Block) bool {
		t, ok := r.hitBlock(b.X, b.Bottom(), b.Top())
		if ok && t < bestT {
			bestID, bestT = id, t
		}
		return true
	})
	return bestID, bestT
}

// nearestMirror finds the mirror crossed first along r, skipping a mirror's
// previous reflection point.
func nearestMirror(s *Store, r ray) (int, float64) {
	bestIdx, bestT := -1, math.Inf(1)
	for i := 0; i < s.MirrorCount(); i++ {
		m := s.mirror(i)
		t, ok := r.hitSegment(Point{X: m.X, Y: m.Y}, m.End())
		if !ok {
			continue
		}
		if math.Abs(r.at(t).X-m.LastIntersectionX) <= SamePointTolerance {
			continue
		}
		if t < bestT {
			bestIdx, bestT = i, t
		}
	}
	return bestIdx, bestT
}

// Cast resolves one firing of the death ray from origin at angleDeg.
//
// The ray travels to the nearest obstacle. A block ends the resolution and is
// scored through the tracker; a mirror reflects the ray (angle becomes
// 2*mirror - angle) and casting continues from the hit point. When nothing is
// ahead the ray stops at the arena edge. At most maxBounces reflections are
// made; a ray that would reflect again stops at that mirror and is reported as
// a capped boundary termination.
func Cast(s *Store, t *Tracker, origin Point, angleDeg float64, maxBounces int) CastResult {
	for i := 0; i < s.MirrorCount(); i++ {
		s.mirror(i).LastIntersectionX = math.Inf(1)
	}

	result := CastResult{
		Segments: make([]Segment, 0, maxBounces+1),
		BlockID:  -1,
	}

	r := newRay(origin, angleDeg)
	angle := angleDeg

	for {
		blockID, blockT := nearestBlock(s, r)
		mirrorIdx, mirrorT := nearestMirror(s, r)

		switch {
		case blockID >= 0 && blockT < mirrorT:
			b, _ := s.Block(blockID)
			result.Segments = append(result.Segments, Segment{From: r.Origin, To: r.at(blockT)})
			s.DeactivateBlock(blockID)
			ev := t.Hit(blockID, b.Kind)
			result.Event = &ev
			result.BlockID = blockID
			result.Outcome = OutcomeHitBlock
			return result

		case mirrorIdx < 0:
			result.Segments = append(result.Segments, Segment{From: r.Origin, To: r.at(r.exitArena())})
			result.Outcome = OutcomeHitBoundary
			return result

		default:
			hit := r.at(mirrorT)
			result.Segments = append(result.Segments, Segment{From: r.Origin, To: hit})

			if result.Bounces >= maxBounces {
				result.Outcome = OutcomeHitBoundary
				result.Capped = true
				return result
			}

			m := s.mirror(mirrorIdx)
			m.LastIntersectionX = hit.X
			angle = ReflectAngle(m.AngleDeg, angle)
			r = newRay(hit, angle)
			result.Bounces++
		}
	}
}
