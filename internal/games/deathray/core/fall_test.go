package core

import "testing"

// Bottom edge a block needs so that one step at DefaultFallSpeed lands it in
// the middle of the catch band.
const aboveBand = -5.1 + DefaultFallSpeed

func TestStepFallMovesBlocks(t *testing.T) {
	s := NewStore(8, 0.8)
	id, _ := s.SpawnBlock(0, KindRed)

	StepFall(s, NewTracker(), 0.05, nil)

	b, _ := s.Block(id)
	if !near(b.Y, -0.05) {
		t.Errorf("Y = %v, expected -0.05", b.Y)
	}
	if !near(b.Bottom(), BlockSpawnY-0.05) {
		t.Errorf("Bottom = %v, expected %v", b.Bottom(), BlockSpawnY-0.05)
	}
}

func TestStepFallCatch(t *testing.T) {
	redX := NewStore(1, 0).Bucket(BucketRed).Center()
	greenX := NewStore(1, 0).Bucket(BucketGreen).Center()

	tests := []struct {
		name             string
		kind             Kind
		x                float64
		startScore       int
		wantScore        int
		wantDelta        int
		wantBucket       int
		wantWrongCatches int
	}{
		{"red in red", KindRed, redX, 0, 5, 5, BucketRed, 0},
		{"green in green", KindGreen, greenX, 0, 5, 5, BucketGreen, 0},
		{"red in green", KindRed, greenX, 30, 20, -10, BucketGreen, 0},
		{"green in red clamps", KindGreen, redX, 4, 0, -4, BucketRed, 0},
		// A caught Special scores nothing but is still removed, so it counts
		// as one wrong catch instead of being evaluated again every tick.
		{"special in red is removed after one wrong catch", KindSpecial, redX, 7, 7, 0, BucketRed, 1},
		{"special in green is removed after one wrong catch", KindSpecial, greenX, 7, 7, 0, BucketGreen, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(8, 0.8)
			tr := NewTracker()
			tr.run.Score = tt.startScore
			id := placeBlock(t, s, tt.x, aboveBand, tt.kind)

			events := StepFall(s, tr, DefaultFallSpeed, nil)

			if len(events) != 1 {
				t.Fatalf("len(events) = %d, expected 1", len(events))
			}
			ev := events[0]
			if ev.Kind != EventCatch || ev.BlockID != id || ev.Bucket != tt.wantBucket {
				t.Errorf("event = %+v, expected catch of %d in bucket %d", ev, id, tt.wantBucket)
			}
			if ev.Delta != tt.wantDelta {
				t.Errorf("Delta = %d, expected %d", ev.Delta, tt.wantDelta)
			}
			run := tr.Run()
			if run.Score != tt.wantScore {
				t.Errorf("Score = %d, expected %d", run.Score, tt.wantScore)
			}
			if run.WrongCatches != tt.wantWrongCatches {
				t.Errorf("WrongCatches = %d, expected %d", run.WrongCatches, tt.wantWrongCatches)
			}
			if s.ActiveCount() != 0 {
				t.Errorf("ActiveCount = %d, expected caught block removed", s.ActiveCount())
			}
		})
	}
}

func TestStepFallOverlappingBucketsCatchNothing(t *testing.T) {
	s := NewStore(8, 0.8)
	s.SetBucketLeft(BucketGreen, s.Bucket(BucketRed).LeftEdge+0.5)
	x := s.Bucket(BucketGreen).LeftEdge + 0.1
	placeBlock(t, s, x, aboveBand, KindRed)
	tr := NewTracker()

	events := StepFall(s, tr, DefaultFallSpeed, nil)

	if len(events) != 0 {
		t.Errorf("len(events) = %d, expected 0", len(events))
	}
	if s.ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, expected block to keep falling", s.ActiveCount())
	}
	if tr.Run() != (RunState{}) {
		t.Errorf("run = %+v, expected untouched", tr.Run())
	}
}

func TestStepFallTouchingBucketsOverlap(t *testing.T) {
	s := NewStore(8, 0.8)
	s.SetBucketLeft(BucketGreen, s.Bucket(BucketRed).RightEdge)

	b := s.Buckets()
	if !b[BucketRed].Overlaps(b[BucketGreen]) {
		t.Error("buckets sharing an edge should overlap")
	}
}

func TestStepFallOutsideBandOrBucket(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		bottom float64
	}{
		{"above band", -4.5, 0},
		{"between buckets", -3, aboveBand},
		{"already below band", -4.5, -5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(8, 0.8)
			placeBlock(t, s, tt.x, tt.bottom, KindRed)

			events := StepFall(s, NewTracker(), DefaultFallSpeed, nil)

			if len(events) != 0 {
				t.Errorf("len(events) = %d, expected 0", len(events))
			}
			if s.ActiveCount() != 1 {
				t.Errorf("ActiveCount = %d, expected 1", s.ActiveCount())
			}
		})
	}
}

func TestStepFallMiss(t *testing.T) {
	s := NewStore(8, 0.8)
	id, _ := s.SpawnBlock(-3, KindSpecial)
	s.blocks[id].Y = BlockMissY + 0.01
	tr := NewTracker()

	events := StepFall(s, tr, DefaultFallSpeed, nil)

	if len(events) != 0 {
		t.Errorf("len(events) = %d, expected 0", len(events))
	}
	if b, _ := s.Block(id); b.Active {
		t.Error("missed block should be deactivated")
	}
	if tr.Run() != (RunState{}) {
		t.Errorf("run = %+v, expected no penalty for a miss", tr.Run())
	}
}

func TestStepFallAppendsEvents(t *testing.T) {
	s := NewStore(8, 0.8)
	placeBlock(t, s, s.Bucket(BucketRed).Center(), aboveBand, KindRed)
	placeBlock(t, s, s.Bucket(BucketGreen).Center(), aboveBand, KindGreen)
	prior := []Event{{Kind: EventHit, BlockID: 99, Bucket: -1}}

	events := StepFall(s, NewTracker(), DefaultFallSpeed, prior)

	if len(events) != 3 {
		t.Fatalf("len(events) = %d, expected 3", len(events))
	}
	if events[0].BlockID != 99 {
		t.Errorf("events[0] = %+v, expected prior event kept", events[0])
	}
	if events[1].Bucket != BucketRed || events[2].Bucket != BucketGreen {
		t.Errorf("events in pool order expected, got buckets %d, %d", events[1].Bucket, events[2].Bucket)
	}
}
