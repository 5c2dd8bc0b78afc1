// Package deathray adapts the Death Ray simulation to the arcade platform:
// it maps semantic input to world setters, owns the camera and draws the
// world into a character screen.
package deathray

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deathray/internal/config"
	platformcore "github.com/vovakirdan/deathray/internal/core"
	"github.com/vovakirdan/deathray/internal/games/deathray/core"
	"github.com/vovakirdan/deathray/internal/registry"
)

// Minimum terminal size for a playable arena.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// hudRows is the number of rows above the arena box.
const hudRows = 2

// messageTicks is how long a scoring message stays in the HUD.
const messageTicks = 90

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives config warnings. Silent unless SetLogger is called.
var logger = log.New(io.Discard)

// SetLogger sets where config warnings are logged. nil silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// dragTarget is what a left-button drag is moving.
type dragTarget int

const (
	dragNone dragTarget = iota
	dragAim
	dragCannon
	dragBucket
)

// Game implements the Death Ray arcade game.
type Game struct {
	world *core.World
	view  *Viewport

	// Configuration
	runtime    platformcore.RuntimeConfig
	cfg        config.DeathRayConfig
	source     config.Source
	configErr  error
	difficulty *config.DifficultyManager

	// Player-adjusted values before difficulty scaling
	baseFallSpeed float64
	baseInterval  float64

	activeBucket int
	fireTicks    int
	paused       bool

	drag       dragTarget
	dragBucket int
	dragOffset float64

	lastTick     core.TickResult
	message      string
	messageTicks int

	// Layout (computed from screen size)
	box            platformcore.Rect // Arena frame
	field          platformcore.Rect // Drawable area inside the frame
	screenTooSmall bool
}

// New creates a new Death Ray game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "deathray"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Death Ray"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, source, err := config.Load(configPath)
	if err != nil {
		logger.Warn("Config cannot be used, falling back to defaults", "path", configPath, "error", err)
		cfg = config.DefaultDeathRayConfig()
		source = config.SourceBuiltin
	}
	g.configErr = err

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.source = source
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.world = core.NewWorld(paramsFromConfig(cfg), runtime.Seed)
	g.baseFallSpeed = g.world.FallSpeed()
	g.baseInterval = g.world.SpawnInterval()

	g.view = NewViewport(cfg.View)
	g.activeBucket = core.BucketRed
	g.fireTicks = 0
	g.paused = false
	g.drag = dragNone
	g.lastTick = core.TickResult{Spawned: -1, Cast: core.CastResult{BlockID: -1}}
	g.message = ""
	g.messageTicks = 0
	if err != nil {
		g.message = "config error, using defaults"
		g.messageTicks = messageTicks
	}

	g.calculateLayout()
}

// paramsFromConfig converts the YAML sections into world parameters.
func paramsFromConfig(cfg config.DeathRayConfig) core.Params {
	return core.Params{
		PoolSize:      cfg.World.PoolSize,
		SpawnInterval: cfg.Spawner.Interval,
		FallSpeed:     cfg.Fall.Speed,
		BatteryMax:    cfg.Battery.Max,
		BatteryDrain:  cfg.Battery.Drain,
		BatteryRegen:  cfg.Battery.Regen,
		DrainOnHit:    cfg.Battery.DrainOnHit,
		BounceCap:     cfg.World.BounceCap,
	}
}

// calculateLayout places the arena box below the HUD.
func (g *Game) calculateLayout() {
	w, h := g.runtime.ScreenW, g.runtime.ScreenH
	g.screenTooSmall = w < MinScreenW || h < MinScreenH
	g.box = platformcore.NewRect(0, hudRows, w, h-hudRows)
	g.field = g.box.Inset(1)
}

// Resize adapts the layout to a new terminal size, keeping the run.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.release()
	g.calculateLayout()
}

// World exposes the simulation for inspection.
func (g *Game) World() *core.World {
	return g.world
}

// View exposes the camera.
func (g *Game) View() *Viewport {
	return g.view
}

// Config returns the effective configuration and where it was loaded from.
func (g *Game) Config() (config.DeathRayConfig, config.Source) {
	return g.cfg, g.source
}

// ConfigErr returns the error that made the last Reset fall back to the
// built-in defaults, or nil.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// ActiveBucket returns the bucket moved by the arrow keys.
func (g *Game) ActiveBucket() int {
	return g.activeBucket
}

// Snapshot returns a deep copy of the world state.
func (g *Game) Snapshot() core.Snapshot {
	return g.world.Snapshot()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.screenTooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(platformcore.ActionRestart) {
		g.Reset(g.runtime)
		return platformcore.StepResult{State: g.State()}
	}

	// Camera works while paused and after game over
	g.updateView(in)

	// Handle pause toggle
	if in.Has(platformcore.ActionPause) && !g.world.IsGameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.world.IsGameOver() {
		g.release()
		return platformcore.StepResult{State: g.State()}
	}

	g.updateControls(in)
	g.updatePointers(in)
	g.updateFire(in)
	g.applyDifficulty()

	g.lastTick = g.world.Advance(g.dt())

	events := make([]string, 0, len(g.lastTick.Events))
	for _, ev := range g.lastTick.Events {
		events = append(events, describeEvent(ev))
	}
	if len(events) > 0 {
		g.message = events[len(events)-1]
		g.messageTicks = messageTicks
	} else if g.messageTicks > 0 {
		g.messageTicks--
	}

	return platformcore.StepResult{State: g.State(), Events: events}
}

// dt returns the simulated seconds per tick.
func (g *Game) dt() float64 {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return 1.0 / float64(rate)
}

// updateView applies zoom and pan actions and wheel events.
func (g *Game) updateView(in platformcore.InputFrame) {
	for range in.Count(platformcore.ActionZoomIn) {
		g.view.ZoomIn()
	}
	for range in.Count(platformcore.ActionZoomOut) {
		g.view.ZoomOut()
	}
	for range in.Count(platformcore.ActionPanLeft) {
		g.view.PanLeft()
	}
	for range in.Count(platformcore.ActionPanRight) {
		g.view.PanRight()
	}

	for _, p := range in.Pointers {
		switch p.Kind {
		case platformcore.PointerWheelUp:
			g.view.ZoomIn()
		case platformcore.PointerWheelDown:
			g.view.ZoomOut()
		}
	}
}

// updateControls applies keyboard actions to the world.
func (g *Game) updateControls(in platformcore.InputFrame) {
	c := g.cfg.Controls

	// A rotates counter-clockwise, D clockwise
	if n := in.Count(platformcore.ActionAimUp); n > 0 {
		g.world.RotateCannon(float64(n) * c.AimStep)
	}
	if n := in.Count(platformcore.ActionAimDown); n > 0 {
		g.world.RotateCannon(-float64(n) * c.AimStep)
	}

	if n := in.Count(platformcore.ActionCannonUp); n > 0 {
		g.world.NudgeCannon(float64(n) * c.CannonStep)
	}
	if n := in.Count(platformcore.ActionCannonDown); n > 0 {
		g.world.NudgeCannon(-float64(n) * c.CannonStep)
	}

	if in.Count(platformcore.ActionSwitchBucket)%2 == 1 {
		g.activeBucket = 1 - g.activeBucket
	}
	if n := in.Count(platformcore.ActionLeft); n > 0 {
		g.world.MoveBucket(g.activeBucket, -float64(n)*c.BucketStep)
	}
	if n := in.Count(platformcore.ActionRight); n > 0 {
		g.world.MoveBucket(g.activeBucket, float64(n)*c.BucketStep)
	}

	step := g.cfg.Spawner.IntervalStep
	if n := in.Count(platformcore.ActionSpawnFaster); n > 0 {
		g.baseInterval -= float64(n) * step
	}
	if n := in.Count(platformcore.ActionSpawnSlower); n > 0 {
		g.baseInterval += float64(n) * step
	}
	g.baseInterval = platformcore.ClampF(g.baseInterval, core.MinSpawnInterval, core.MaxSpawnInterval)

	if n := in.Count(platformcore.ActionFallFaster); n > 0 {
		g.baseFallSpeed += float64(n) * g.cfg.Fall.SpeedUpStep
	}
	if n := in.Count(platformcore.ActionFallSlower); n > 0 {
		g.baseFallSpeed -= float64(n) * g.cfg.Fall.SpeedDownStep
	}
	g.baseFallSpeed = platformcore.ClampF(g.baseFallSpeed, core.MinFallSpeed, core.MaxFallSpeed)
}

// updateFire keeps the trigger held for a short window after each press.
// Terminals only report key presses, so key repeat refreshes the window.
func (g *Game) updateFire(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionFire) {
		g.fireTicks = max(g.cfg.Controls.FireHoldTicks, 1)
	}

	if g.fireTicks > 0 {
		g.world.SetFireHeld(true)
		g.fireTicks--
		return
	}
	g.world.SetFireHeld(false)
}

// applyDifficulty scales the player's chosen speed and interval.
func (g *Game) applyDifficulty() {
	run := g.world.Run()
	ticks := int(g.world.Tick())
	g.world.SetFallSpeed(g.difficulty.FallSpeed(g.baseFallSpeed, run.Score, ticks))
	g.world.SetSpawnInterval(g.difficulty.SpawnInterval(g.baseInterval, run.Score, ticks))
}

// updatePointers handles left-button presses, drags and releases in order.
func (g *Game) updatePointers(in platformcore.InputFrame) {
	for _, p := range in.Pointers {
		switch p.Kind {
		case platformcore.PointerPress:
			g.release()
			g.grab(p.X, p.Y)
		case platformcore.PointerDrag:
			if g.drag == dragNone {
				g.grab(p.X, p.Y)
			} else {
				g.dragTo(p.X, p.Y)
			}
		case platformcore.PointerRelease:
			g.release()
		}
	}
}

// grab picks what a press at (x, y) will move: the cannon, a bucket, or
// otherwise the aim.
func (g *Game) grab(x, y int) {
	if !g.field.Contains(x, y) {
		return
	}
	pt := g.view.ToWorld(g.field, x, y)

	cannon := g.world.Store().Cannon()
	if g.nearPoint(pt, cannon.Origin()) || g.nearPoint(pt, cannon.Muzzle()) {
		g.drag = dragCannon
		g.world.SelectCannon(true)
		g.world.SetCannonY(pt.Y)
		return
	}

	if id, ok := g.bucketAt(pt); ok {
		g.drag = dragBucket
		g.dragBucket = id
		g.dragOffset = g.world.Store().Bucket(id).LeftEdge - pt.X
		g.activeBucket = id
		g.world.SelectBucket(id, true)
		return
	}

	g.drag = dragAim
	g.world.AimAt(pt.X, pt.Y)
}

// dragTo moves whatever was grabbed.
func (g *Game) dragTo(x, y int) {
	pt := g.view.ToWorld(g.field, x, y)

	switch g.drag {
	case dragCannon:
		g.world.SetCannonY(pt.Y)
	case dragBucket:
		g.world.SetBucketLeft(g.dragBucket, pt.X+g.dragOffset)
	case dragAim:
		g.world.AimAt(pt.X, pt.Y)
	}
}

// release ends the current drag, if any.
func (g *Game) release() {
	switch g.drag {
	case dragCannon:
		g.world.SelectCannon(false)
	case dragBucket:
		g.world.SelectBucket(g.dragBucket, false)
	}
	g.drag = dragNone
}

// cellSize returns the world extent of one cell.
func (g *Game) cellSize() (float64, float64) {
	left, right, bottom, top := g.view.Bounds()
	cw := (right - left) / float64(max(g.field.W-1, 1))
	ch := (top - bottom) / float64(max(g.field.H-1, 1))
	return cw, ch
}

// nearPoint reports whether a is within grabbing reach of b. The reach is
// never smaller than one cell so coarse terminals can still hit it.
func (g *Game) nearPoint(a, b core.Point) bool {
	cw, ch := g.cellSize()
	reach := g.cfg.Controls.MouseDragReach
	rx := math.Max(reach, cw)
	ry := math.Max(reach, ch)
	dx := (a.X - b.X) / rx
	dy := (a.Y - b.Y) / ry
	return dx*dx+dy*dy <= 1
}

// bucketAt returns the bucket drawn under pt, preferring the active one.
func (g *Game) bucketAt(pt core.Point) (int, bool) {
	_, ch := g.cellSize()
	if pt.Y > core.CatchBandHigh+ch || pt.Y < core.ArenaBottom-ch {
		return 0, false
	}

	order := [2]int{g.activeBucket, 1 - g.activeBucket}
	for _, id := range order {
		if g.world.Store().Bucket(id).Contains(pt.X) {
			return id, true
		}
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	run := g.world.Run()
	return platformcore.GameState{
		Score:        run.Score,
		WrongHits:    run.WrongHits,
		WrongCatches: run.WrongCatches,
		Ticks:        int(g.world.Tick()),
		GameOver:     g.world.IsGameOver(),
		Paused:       g.paused,
	}
}

// describeEvent formats a scoring event for the HUD and logs.
func describeEvent(ev core.Event) string {
	switch ev.Kind {
	case core.EventCatch:
		return fmt.Sprintf("caught %s in %s bucket %+d", ev.BlockKind, bucketName(ev.Bucket), ev.Delta)
	case core.EventHit:
		return fmt.Sprintf("hit %s %+d", ev.BlockKind, ev.Delta)
	default:
		return ev.Kind.String()
	}
}

func bucketName(id int) string {
	if id == core.BucketGreen {
		return "green"
	}
	return "red"
}

// Register the game with the registry
func init() {
	registry.Register("deathray", func() registry.Game {
		return New()
	})
}
