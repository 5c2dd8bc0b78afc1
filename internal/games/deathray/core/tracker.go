package core

// Score deltas.
const (
	CatchMatchPoints  = 5
	CatchWrongPenalty = 10
	HitSpecialPoints  = 10
	HitWrongPenalty   = 20
	MaxWrongHits      = 10
	MaxWrongCatches   = 1
)

// EventKind classifies a scoring event.
type EventKind int

const (
	EventCatch EventKind = iota // Block landed in a bucket
	EventHit                    // Block destroyed by the ray
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventCatch:
		return "catch"
	case EventHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Event records one scoring occurrence and its effect on the run.
type Event struct {
	Kind      EventKind
	BlockID   int
	BlockKind Kind
	Bucket    int // Catching bucket; -1 for hits
	Delta     int // Applied score change after clamping
}

// Tracker is the only writer of the run counters.
type Tracker struct {
	run RunState
}

// NewTracker creates a tracker with zeroed counters.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Run returns the current counters.
func (t *Tracker) Run() RunState {
	return t.run
}

// Catch applies the outcome of a block of kind k landing in bucket.
func (t *Tracker) Catch(blockID int, k Kind, bucket int) Event {
	ev := Event{Kind: EventCatch, BlockID: blockID, BlockKind: k, Bucket: bucket}

	switch {
	case k == KindSpecial:
		t.run.WrongCatches++
	case (k == KindRed && bucket == BucketRed) || (k == KindGreen && bucket == BucketGreen):
		ev.Delta = t.add(CatchMatchPoints)
	default:
		ev.Delta = t.add(-CatchWrongPenalty)
	}
	return ev
}

// Hit applies the outcome of the ray destroying a block of kind k.
func (t *Tracker) Hit(blockID int, k Kind) Event {
	ev := Event{Kind: EventHit, BlockID: blockID, BlockKind: k, Bucket: -1}

	if k == KindSpecial {
		ev.Delta = t.add(HitSpecialPoints)
	} else {
		ev.Delta = t.add(-HitWrongPenalty)
		t.run.WrongHits++
	}
	return ev
}

// add changes the score, never letting it go below zero.
// Returns the change actually applied.
func (t *Tracker) add(delta int) int {
	before := t.run.Score
	t.run.Score += delta
	if t.run.Score < 0 {
		t.run.Score = 0
	}
	return t.run.Score - before
}

// IsGameOver reports whether the run has ended.
func (t *Tracker) IsGameOver() bool {
	return t.run.WrongHits >= MaxWrongHits || t.run.WrongCatches >= MaxWrongCatches
}
