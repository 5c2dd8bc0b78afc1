package core

import (
	"math"
	"testing"
)

const tol = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) < tol
}

func nearPoint(p, q Point) bool {
	return near(p.X, q.X) && near(p.Y, q.Y)
}

// placeBlock spawns a block and moves it so its bottom edge sits at bottom.
func placeBlock(t *testing.T, s *Store, x, bottom float64, kind Kind) int {
	t.Helper()
	id, ok := s.SpawnBlock(x, kind)
	if !ok {
		t.Fatalf("SpawnBlock(%v) failed", x)
	}
	s.blocks[id].Y = bottom - s.blocks[id].SpawnY
	return id
}

// diagonalMirror crosses y=0 at x=0, tilted 45 degrees.
func diagonalMirror() Mirror {
	return Mirror{X: -1, Y: -1, Length: 2 * math.Sqrt2, AngleDeg: 45, LastIntersectionX: math.Inf(1)}
}

func TestCastEmptyArenaHorizontal(t *testing.T) {
	s := NewStore(8, 0.8)
	tr := NewTracker()

	res := Cast(s, tr, Point{X: ArenaLeft, Y: 0}, 0, DefaultBounceCap(0))

	if res.Outcome != OutcomeHitBoundary {
		t.Fatalf("Outcome = %v, expected boundary", res.Outcome)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("len(Segments) = %d, expected 1", len(res.Segments))
	}
	if end, _ := res.Final(); !nearPoint(end, Point{X: ArenaRight, Y: 0}) {
		t.Errorf("end = %v, expected (%v, 0)", end, ArenaRight)
	}
	if tr.Run() != (RunState{}) {
		t.Errorf("run = %+v, expected untouched", tr.Run())
	}
}

func TestCastEmptyArenaExitsTop(t *testing.T) {
	s := NewStore(8, 0.8)

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 45, 1)

	end, ok := res.Final()
	if !ok {
		t.Fatal("expected a segment")
	}
	if !nearPoint(end, Point{X: -5, Y: ArenaTop}) {
		t.Errorf("end = %v, expected (-5, 6)", end)
	}
}

func TestCastStraightUp(t *testing.T) {
	tests := []struct {
		name      string
		blockX    float64 // block placed with its bottom at y=2; NaN for none
		wantBlock bool
		wantEnd   Point
	}{
		{"empty arena exits the top", math.NaN(), false, Point{X: ArenaLeft, Y: ArenaTop}},
		{"block within half width is hit", ArenaLeft + BlockHalfWidth/2, true, Point{X: ArenaLeft, Y: 2}},
		{"block beside the ray is missed", ArenaLeft + 4*BlockHalfWidth, false, Point{X: ArenaLeft, Y: ArenaTop}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(8, 0.8)
			id := -1
			if !math.IsNaN(tt.blockX) {
				id = placeBlock(t, s, tt.blockX, 2, KindSpecial)
			}

			res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 90, 1)

			if tt.wantBlock {
				if res.Outcome != OutcomeHitBlock || res.BlockID != id {
					t.Fatalf("Outcome = %v BlockID = %d, expected block %d", res.Outcome, res.BlockID, id)
				}
			} else if res.Outcome != OutcomeHitBoundary {
				t.Fatalf("Outcome = %v, expected boundary", res.Outcome)
			}
			if end, _ := res.Final(); !nearPoint(end, tt.wantEnd) {
				t.Errorf("end = %v, expected %v", end, tt.wantEnd)
			}
		})
	}
}

func TestCastHitsBlock(t *testing.T) {
	tests := []struct {
		name          string
		kind          Kind
		startScore    int
		wantScore     int
		wantWrongHits int
	}{
		{"special scores", KindSpecial, 0, 10, 0},
		{"red penalised", KindRed, 50, 30, 1},
		{"green clamped at zero", KindGreen, 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(8, 0.8)
			tr := NewTracker()
			tr.run.Score = tt.startScore
			id := placeBlock(t, s, 0, -0.1, tt.kind)

			res := Cast(s, tr, Point{X: ArenaLeft, Y: 0}, 0, 1)

			if res.Outcome != OutcomeHitBlock {
				t.Fatalf("Outcome = %v, expected block", res.Outcome)
			}
			if res.BlockID != id {
				t.Errorf("BlockID = %d, expected %d", res.BlockID, id)
			}
			if end, _ := res.Final(); !nearPoint(end, Point{X: 0, Y: 0}) {
				t.Errorf("end = %v, expected (0, 0)", end)
			}
			if b, _ := s.Block(id); b.Active {
				t.Error("hit block should be deactivated")
			}
			run := tr.Run()
			if run.Score != tt.wantScore {
				t.Errorf("Score = %d, expected %d", run.Score, tt.wantScore)
			}
			if run.WrongHits != tt.wantWrongHits {
				t.Errorf("WrongHits = %d, expected %d", run.WrongHits, tt.wantWrongHits)
			}
			if res.Event == nil || res.Event.Kind != EventHit {
				t.Errorf("Event = %+v, expected a hit event", res.Event)
			}
		})
	}
}

func TestCastPicksNearestBlockAlongRay(t *testing.T) {
	s := NewStore(8, 0.8)
	far := placeBlock(t, s, 2, -0.1, KindSpecial)
	nearID := placeBlock(t, s, -2, -0.1, KindSpecial)

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 0, 1)

	if res.BlockID != nearID {
		t.Errorf("BlockID = %d, expected nearest %d", res.BlockID, nearID)
	}
	if b, _ := s.Block(far); !b.Active {
		t.Error("farther block should survive")
	}
}

func TestCastEqualDistanceKeepsLowerIndex(t *testing.T) {
	s := NewStore(8, 0.8)
	first := placeBlock(t, s, 0, -0.1, KindSpecial)
	second := placeBlock(t, s, 0, -0.1, KindSpecial)

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 0, 1)

	if res.BlockID != first {
		t.Errorf("BlockID = %d, expected lower index %d", res.BlockID, first)
	}
	if b, _ := s.Block(second); !b.Active {
		t.Error("the tied block with the higher index should survive")
	}
}

func TestCastMissesBlockOutsideExtent(t *testing.T) {
	s := NewStore(8, 0.8)
	placeBlock(t, s, 0, 0.5, KindSpecial)

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 0, 1)

	if res.Outcome != OutcomeHitBoundary {
		t.Errorf("Outcome = %v, expected boundary", res.Outcome)
	}
	if s.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, expected 1", s.ActiveCount())
	}
}

func TestCastReflectsOffMirror(t *testing.T) {
	s := NewStore(8, 0.8)
	s.SetMirrors([]Mirror{diagonalMirror()})

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 0, DefaultBounceCap(1))

	if res.Bounces != 1 {
		t.Fatalf("Bounces = %d, expected 1", res.Bounces)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("len(Segments) = %d, expected 2", len(res.Segments))
	}
	if !nearPoint(res.Segments[0].To, Point{X: 0, Y: 0}) {
		t.Errorf("mirror hit = %v, expected (0, 0)", res.Segments[0].To)
	}
	if !nearPoint(res.Segments[1].To, Point{X: 0, Y: ArenaTop}) {
		t.Errorf("end = %v, expected (0, 6)", res.Segments[1].To)
	}
	if res.Outcome != OutcomeHitBoundary || res.Capped {
		t.Errorf("Outcome = %v capped=%v, expected uncapped boundary", res.Outcome, res.Capped)
	}
	if m := s.Mirrors()[0]; !near(m.LastIntersectionX, 0) {
		t.Errorf("LastIntersectionX = %v, expected 0", m.LastIntersectionX)
	}
}

func TestCastReflectedRayHitsBlock(t *testing.T) {
	s := NewStore(8, 0.8)
	s.SetMirrors([]Mirror{diagonalMirror()})
	id := placeBlock(t, s, 0, 2, KindSpecial)
	tr := NewTracker()

	res := Cast(s, tr, Point{X: ArenaLeft, Y: 0}, 0, 2)

	if res.Outcome != OutcomeHitBlock || res.BlockID != id {
		t.Fatalf("Outcome = %v block=%d, expected block %d", res.Outcome, res.BlockID, id)
	}
	if end, _ := res.Final(); !nearPoint(end, Point{X: 0, Y: 2}) {
		t.Errorf("end = %v, expected (0, 2)", end)
	}
	if tr.Run().Score != HitSpecialPoints {
		t.Errorf("Score = %d, expected %d", tr.Run().Score, HitSpecialPoints)
	}
}

func TestCastBlockInFrontOfMirror(t *testing.T) {
	s := NewStore(8, 0.8)
	s.SetMirrors([]Mirror{diagonalMirror()})
	placeBlock(t, s, -3, -0.1, KindRed)

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 0, 2)

	if res.Outcome != OutcomeHitBlock {
		t.Errorf("Outcome = %v, expected block", res.Outcome)
	}
	if res.Bounces != 0 {
		t.Errorf("Bounces = %d, expected 0", res.Bounces)
	}
}

func TestCastBounceCap(t *testing.T) {
	// Two horizontal mirrors form a corridor the ray zig-zags through.
	corridor := []Mirror{
		{X: -10.5, Y: 1, Length: 15, AngleDeg: 0, LastIntersectionX: math.Inf(1)},
		{X: -10.5, Y: -1, Length: 15, AngleDeg: 0, LastIntersectionX: math.Inf(1)},
	}

	tests := []struct {
		name      string
		cap       int
		wantSegs  int
		wantFinal Point
	}{
		{"default cap", DefaultBounceCap(len(corridor)), 4, Point{X: -4, Y: -1}},
		{"zero cap", 0, 1, Point{X: -10, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(8, 0.8)
			s.SetMirrors(corridor)

			res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 45, tt.cap)

			if !res.Capped {
				t.Error("expected Capped")
			}
			if res.Outcome != OutcomeHitBoundary {
				t.Errorf("Outcome = %v, expected boundary", res.Outcome)
			}
			if res.Bounces != tt.cap {
				t.Errorf("Bounces = %d, expected %d", res.Bounces, tt.cap)
			}
			if len(res.Segments) != tt.wantSegs {
				t.Fatalf("len(Segments) = %d, expected %d", len(res.Segments), tt.wantSegs)
			}
			if end, _ := res.Final(); !nearPoint(end, tt.wantFinal) {
				t.Errorf("end = %v, expected %v", end, tt.wantFinal)
			}
		})
	}
}

func TestCastResetsLastIntersection(t *testing.T) {
	s := NewStore(8, 0.8)
	m := diagonalMirror()
	m.LastIntersectionX = 0 // stale value from an earlier cast
	s.SetMirrors([]Mirror{m})

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 0, 2)

	if res.Bounces != 1 {
		t.Errorf("Bounces = %d, expected 1", res.Bounces)
	}
}

func TestCastIgnoresParallelAndDegenerateMirrors(t *testing.T) {
	s := NewStore(8, 0.8)
	s.SetMirrors([]Mirror{
		{X: -8, Y: 0, Length: 3, AngleDeg: 0, LastIntersectionX: math.Inf(1)},
		{X: -5, Y: 0, Length: 0, AngleDeg: 30, LastIntersectionX: math.Inf(1)},
	})

	res := Cast(s, NewTracker(), Point{X: ArenaLeft, Y: 0}, 0, 3)

	if res.Bounces != 0 || res.Outcome != OutcomeHitBoundary {
		t.Errorf("Bounces = %d Outcome = %v, expected straight boundary exit", res.Bounces, res.Outcome)
	}
}

func TestReflectAngle(t *testing.T) {
	tests := []struct {
		mirror, theta, want float64
	}{
		{45, 0, 90},
		{0, 30, -30},
		{89, -45, -137},
		{10, -170, -170},
		{90, 0, 180},
	}

	for _, tt := range tests {
		if got := ReflectAngle(tt.mirror, tt.theta); !near(got, tt.want) {
			t.Errorf("ReflectAngle(%v, %v) = %v, expected %v", tt.mirror, tt.theta, got, tt.want)
		}
	}
}
