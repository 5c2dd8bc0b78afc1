package core

import (
	"math"
	"math/rand"
)

// Spawn interval limits in seconds.
const (
	MinSpawnInterval     = 0.25
	MaxSpawnInterval     = 1.75
	DefaultSpawnInterval = 1.0
)

// Spawner activates one block from the pool every interval.
type Spawner struct {
	rng      *rand.Rand
	interval float64
	elapsed  float64
}

// NewSpawner creates a spawner driven by rng.
func NewSpawner(rng *rand.Rand, interval float64) *Spawner {
	return &Spawner{
		rng:      rng,
		interval: clampF(interval, MinSpawnInterval, MaxSpawnInterval),
	}
}

// Interval returns the current spawn interval in seconds.
func (sp *Spawner) Interval() float64 {
	return sp.interval
}

// SetInterval changes the spawn interval, clamped to [0.25, 1.75].
func (sp *Spawner) SetInterval(seconds float64) {
	sp.interval = clampF(seconds, MinSpawnInterval, MaxSpawnInterval)
}

// Due accumulates dt seconds and reports whether a spawn attempt is due.
// The accumulator restarts from zero after each attempt.
func (sp *Spawner) Due(dt float64) bool {
	if dt > 0 {
		sp.elapsed += dt
	}
	if sp.elapsed+Epsilon < sp.interval {
		return false
	}
	sp.elapsed = 0
	return true
}

// Spawn attempts to activate one block with a random position and kind.
// A full pool is a silent no-op.
func (sp *Spawner) Spawn(s *Store) (int, bool) {
	x := BlockMinX + sp.rng.Float64()*(BlockMaxX-BlockMinX)
	kind := Kind(sp.rng.Intn(3))
	return s.SpawnBlock(x, kind)
}

// GenerateMirrors builds the random mirror layout for a run: 3 to 5 mirrors
// placed in the middle of the arena, each tilted between 1 and 89 degrees and
// cut short so it never crosses the right edge.
func GenerateMirrors(rng *rand.Rand) []Mirror {
	count := MinMirrors + rng.Intn(MaxMirrors-MinMirrors+1)
	mirrors := make([]Mirror, count)

	for i := range mirrors {
		x := MirrorMinX + rng.Float64()*(MirrorMaxX-MirrorMinX)
		y := MirrorMinY + rng.Float64()*(MirrorMaxY-MirrorMinY)
		angle := MirrorMinAngle + rng.Float64()*(MirrorMaxAngle-MirrorMinAngle)
		length := math.Min(MirrorMaxLength, (ArenaRight-x)/math.Cos(degToRad(angle)))

		mirrors[i] = Mirror{
			X:                 x,
			Y:                 y,
			Length:            length,
			AngleDeg:          angle,
			LastIntersectionX: math.Inf(1),
		}
	}
	return mirrors
}
