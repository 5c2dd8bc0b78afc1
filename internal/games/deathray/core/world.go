package core

import (
	"math"
	"math/rand"
)

// Params holds the tunables of a run. Zero fields fall back to defaults.
type Params struct {
	PoolSize      int
	SpawnInterval float64 // Seconds between spawn attempts
	FallSpeed     float64 // World units per tick
	BatteryMax    float64
	BatteryDrain  float64 // Charge used per firing tick
	BatteryRegen  float64 // Charge restored per idle tick
	DrainOnHit    bool    // Empty the battery when the ray destroys a block
	BounceCap     int     // Reflections per cast; 0 means mirrors+1
	Mirrors       []Mirror
}

// DefaultParams returns the classic tuning.
func DefaultParams() Params {
	return Params{
		PoolSize:      DefaultPoolSize,
		SpawnInterval: DefaultSpawnInterval,
		FallSpeed:     DefaultFallSpeed,
		BatteryMax:    0.8,
		BatteryDrain:  0.01,
		BatteryRegen:  0.008,
		DrainOnHit:    true,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.PoolSize <= 0 {
		p.PoolSize = d.PoolSize
	}
	if p.SpawnInterval <= 0 {
		p.SpawnInterval = d.SpawnInterval
	}
	if p.FallSpeed <= 0 {
		p.FallSpeed = d.FallSpeed
	}
	if p.BatteryMax <= 0 {
		p.BatteryMax = d.BatteryMax
	}
	if p.BatteryDrain <= 0 {
		p.BatteryDrain = d.BatteryDrain
	}
	if p.BatteryRegen < 0 {
		p.BatteryRegen = 0
	}
	return p
}

// TickResult reports what happened during one Advance.
type TickResult struct {
	Tick     uint64
	Spawned  int // Block id activated this tick, -1 if none
	Events   []Event
	Cast     CastResult
	GameOver bool
}

// World is the simulation context for one run. It is not safe for concurrent
// use; input setters and Advance must be called from the same goroutine.
type World struct {
	params    Params
	rng       *rand.Rand
	store     *Store
	spawner   *Spawner
	tracker   *Tracker
	fallSpeed float64
	bounceCap int
	fireHeld  bool
	lastCast  CastResult
	tick      uint64
}

// NewWorld sets up a run: empty block pool, buckets at their start positions,
// the mirror layout from params (or a random 3-5 mirror layout) and a full
// battery.
func NewWorld(params Params, seed int64) *World {
	params = params.withDefaults()
	rng := rand.New(rand.NewSource(seed))

	mirrors := params.Mirrors
	if mirrors == nil {
		mirrors = GenerateMirrors(rng)
	}

	store := NewStore(params.PoolSize, params.BatteryMax)
	store.SetMirrors(mirrors)

	bounceCap := params.BounceCap
	if bounceCap <= 0 {
		bounceCap = DefaultBounceCap(len(mirrors))
	}

	return &World{
		params:    params,
		rng:       rng,
		store:     store,
		spawner:   NewSpawner(rng, params.SpawnInterval),
		tracker:   NewTracker(),
		fallSpeed: clampF(params.FallSpeed, MinFallSpeed, MaxFallSpeed),
		bounceCap: bounceCap,
		lastCast:  CastResult{BlockID: -1},
	}
}

// Store exposes the entity store for read access and test setup.
func (w *World) Store() *Store {
	return w.store
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	return w.tick
}

// Run returns the run counters.
func (w *World) Run() RunState {
	return w.tracker.Run()
}

// IsGameOver reports whether the run has ended.
func (w *World) IsGameOver() bool {
	return w.tracker.IsGameOver()
}

// FallSpeed returns the current fall speed.
func (w *World) FallSpeed() float64 {
	return w.fallSpeed
}

// SpawnInterval returns the current spawn interval in seconds.
func (w *World) SpawnInterval() float64 {
	return w.spawner.Interval()
}

// FireHeld reports whether the trigger is held.
func (w *World) FireHeld() bool {
	return w.fireHeld
}

// BounceCap returns the reflection limit per cast.
func (w *World) BounceCap() int {
	return w.bounceCap
}

// LastCast returns the resolution from the most recent tick.
func (w *World) LastCast() CastResult {
	return w.lastCast
}

// SetCannonAngle aims the cannon, clamped to [-45, 45] degrees.
func (w *World) SetCannonAngle(deg float64) {
	w.store.SetCannonAngle(deg)
}

// RotateCannon changes the aim by delta degrees.
func (w *World) RotateCannon(delta float64) {
	w.store.SetCannonAngle(w.store.Cannon().AngleDeg + delta)
}

// SetCannonY moves the cannon, clamped to [-3.5, 3.5].
func (w *World) SetCannonY(y float64) {
	w.store.SetCannonY(y)
}

// NudgeCannon moves the cannon by dy.
func (w *World) NudgeCannon(dy float64) {
	w.store.SetCannonY(w.store.Cannon().Y + dy)
}

// AimAt points the cannon at a world position, clamped to its arc.
func (w *World) AimAt(x, y float64) {
	c := w.store.Cannon()
	w.store.SetCannonAngle(radToDeg(math.Atan2(y-c.Y, x-ArenaLeft)))
}

// SetBucketLeft moves a bucket's outer left edge, clamped to the arena.
func (w *World) SetBucketLeft(id int, left float64) {
	w.store.SetBucketLeft(id, left)
}

// MoveBucket shifts a bucket horizontally by dx.
func (w *World) MoveBucket(id int, dx float64) {
	w.store.SetBucketLeft(id, w.store.Bucket(id).LeftEdge+dx)
}

// SelectBucket flags a bucket as grabbed by the pointer.
func (w *World) SelectBucket(id int, selected bool) {
	w.store.SelectBucket(id, selected)
}

// SelectCannon flags the cannon as grabbed by the pointer.
func (w *World) SelectCannon(selected bool) {
	w.store.SelectCannon(selected)
}

// SetFireHeld updates the trigger. Pulling it after game over is ignored.
func (w *World) SetFireHeld(held bool) {
	if held && w.tracker.IsGameOver() {
		return
	}
	w.fireHeld = held
}

// AdjustTickInterval changes the spawn interval by delta seconds.
func (w *World) AdjustTickInterval(delta float64) {
	w.spawner.SetInterval(w.spawner.Interval() + delta)
}

// SetSpawnInterval sets the spawn interval, clamped to [0.25, 1.75] seconds.
func (w *World) SetSpawnInterval(seconds float64) {
	w.spawner.SetInterval(seconds)
}

// SetFallSpeed sets the fall speed, clamped to [0.001, 0.1].
func (w *World) SetFallSpeed(speed float64) {
	w.fallSpeed = clampF(speed, MinFallSpeed, MaxFallSpeed)
}

// AdjustFallSpeed changes the fall speed by delta.
func (w *World) AdjustFallSpeed(delta float64) {
	w.SetFallSpeed(w.fallSpeed + delta)
}

// Advance runs one simulation tick of dt seconds: spawn (when due), fall and
// catch, fire (when the trigger is held and the battery has charge), then the
// end-of-run check. After game over it does nothing.
func (w *World) Advance(dt float64) TickResult {
	result := TickResult{Spawned: -1, Cast: CastResult{BlockID: -1}}

	if w.tracker.IsGameOver() {
		w.fireHeld = false
		result.Tick = w.tick
		result.GameOver = true
		return result
	}

	w.tick++
	result.Tick = w.tick

	if w.spawner.Due(dt) {
		if id, ok := w.spawner.Spawn(w.store); ok {
			result.Spawned = id
		}
	}

	result.Events = StepFall(w.store, w.tracker, w.fallSpeed, result.Events)

	result.Cast = w.fire()
	if result.Cast.Event != nil {
		result.Events = append(result.Events, *result.Cast.Event)
	}
	w.lastCast = result.Cast

	result.GameOver = w.tracker.IsGameOver()
	if result.GameOver {
		w.fireHeld = false
	}
	return result
}

// fire drains or regenerates the battery and casts the ray if possible.
func (w *World) fire() CastResult {
	battery := w.store.Battery()

	if !w.fireHeld || battery.Charge <= 0 {
		if !w.fireHeld {
			w.store.setCharge(battery.Charge + w.params.BatteryRegen)
		}
		return CastResult{BlockID: -1}
	}

	w.store.setCharge(battery.Charge - w.params.BatteryDrain)

	c := w.store.Cannon()
	cast := Cast(w.store, w.tracker, c.Origin(), c.AngleDeg, w.bounceCap)
	if cast.Outcome == OutcomeHitBlock && w.params.DrainOnHit {
		w.store.setCharge(0)
	}
	return cast
}
