package core

import (
	"hash/fnv"

	"github.com/vmihailenco/msgpack/v5"
)

// BlockState is one active block in a snapshot.
type BlockState struct {
	ID     int     `msgpack:"id"`
	X      float64 `msgpack:"x"`
	Bottom float64 `msgpack:"b"`
	Kind   Kind    `msgpack:"k"`
}

// Snapshot is a deep copy of the observable world state.
type Snapshot struct {
	Tick          uint64       `msgpack:"tick"`
	Blocks        []BlockState `msgpack:"blocks"`
	Buckets       [2]Bucket    `msgpack:"buckets"`
	Mirrors       []Mirror     `msgpack:"mirrors"`
	Cannon        Cannon       `msgpack:"cannon"`
	Ray           []Segment    `msgpack:"ray"`
	Outcome       Outcome      `msgpack:"outcome"`
	Capped        bool         `msgpack:"capped"`
	Battery       Battery      `msgpack:"battery"`
	FireHeld      bool         `msgpack:"fire"`
	Run           RunState     `msgpack:"run"`
	GameOver      bool         `msgpack:"over"`
	SpawnInterval float64      `msgpack:"interval"`
	FallSpeed     float64      `msgpack:"speed"`
}

// Snapshot captures the current state. Nothing in the result aliases the world.
func (w *World) Snapshot() Snapshot {
	blocks := make([]BlockState, 0, w.store.ActiveCount())
	w.store.ForEachActiveBlock(func(id int, b *Block) bool {
		blocks = append(blocks, BlockState{ID: id, X: b.X, Bottom: b.Bottom(), Kind: b.Kind})
		return true
	})

	ray := make([]Segment, len(w.lastCast.Segments))
	copy(ray, w.lastCast.Segments)

	return Snapshot{
		Tick:          w.tick,
		Blocks:        blocks,
		Buckets:       w.store.Buckets(),
		Mirrors:       w.store.Mirrors(),
		Cannon:        w.store.Cannon(),
		Ray:           ray,
		Outcome:       w.lastCast.Outcome,
		Capped:        w.lastCast.Capped,
		Battery:       w.store.Battery(),
		FireHeld:      w.fireHeld,
		Run:           w.tracker.Run(),
		GameOver:      w.tracker.IsGameOver(),
		SpawnInterval: w.spawner.Interval(),
		FallSpeed:     w.fallSpeed,
	}
}

// Encode returns the msgpack encoding of the snapshot.
func (snap *Snapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(snap)
}

// DecodeSnapshot parses a msgpack-encoded snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	err := msgpack.Unmarshal(data, &snap)
	return snap, err
}

// Hash returns an FNV-1a hash of the encoded snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	data, err := snap.Encode()
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}
