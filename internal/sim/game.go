// Package sim is the fishing game core: the entity pool, the line rig,
// collision, scoring and level progression, driven by Tick.
//
// A Game is not safe for concurrent use. Each player owns one Game and calls
// every method from the goroutine that runs its frame loop.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/object"
)

// ErrNegativeDelta is returned by Tick when time runs backwards.
var ErrNegativeDelta = errors.New("negative time delta")

// Options configures a Game. Zero fields take the defaults.
type Options struct {
	Tables *catalog.Tables
	Field  object.Field
	Tuning *Tuning
	Rand   *rand.Rand
	Logger *log.Logger
}

// Game ties the simulation parts together.
type Game struct {
	tables *catalog.Tables
	field  object.Field
	tuning Tuning
	logger *log.Logger

	pool     *EntityPool
	rig      *LineRig
	resolver CollisionResolver
	ledger   *ScoreLedger
	director *LevelDirector
	run      *RunState

	pendingToggles int
	events         []Event
}

// New builds a Game at the level 1 briefing.
func New(opts Options) (*Game, error) {
	tables := opts.Tables
	if tables == nil {
		tables = catalog.Default()
	}
	field := opts.Field
	if field == (object.Field{}) {
		field = object.DefaultField()
	}
	tuning := DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	if err := tuning.validate(); err != nil {
		return nil, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		tables:   tables,
		field:    field,
		tuning:   tuning,
		logger:   logger,
		pool:     NewEntityPool(field, tuning, rng),
		rig:      NewLineRig(field, tuning),
		resolver: CollisionResolver{Margin: tuning.HookMargin},
		director: NewLevelDirector(tables, tuning),
	}
	g.ledger = NewScoreLedger(tuning.BreakPenalty, g.emit)
	g.resetRun()
	return g, nil
}

func (g *Game) emit(ev Event) {
	g.events = append(g.events, ev)
}

func (g *Game) emitStage() {
	g.emit(Event{Type: EventStageChanged, Stage: g.director.Stage(), Score: g.run.Score})
	g.logger.Debug("stage changed", "stage", g.director.Stage(), "level", g.director.Level().Number, "score", g.run.Score)
}

// resetRun starts a fresh attempt at the director's current level.
func (g *Game) resetRun() {
	level := g.director.Level()
	g.run = NewRunState(level)
	g.pool.Reset()
	g.pool.SetSpecies(g.tables.LevelSpecies(level.Number))
	g.rig.Reset()
	g.pendingToggles = 0
}

// Tick advances the game by dt. Queued toggles are applied first, then
// entities move, the hook moves, collisions and the line are resolved and
// finally the level is evaluated. Outside of play only the loss countdown
// runs.
func (g *Game) Tick(dt time.Duration) error {
	if dt < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeDelta, dt)
	}

	if g.director.Stage() != StagePlaying {
		g.pendingToggles = 0
		if g.director.Countdown(dt) {
			g.logger.Info("auto restart after loss", "level", g.run.Level, "score", g.run.Score)
			g.director.RestartFromLevel1()
			g.resetRun()
			g.emitStage()
		}
		return nil
	}

	g.applyToggles()
	g.run.Elapsed += dt

	g.pool.Advance(dt)
	landed, towing, _ := g.rig.Advance(dt)
	if towing {
		if ev, ok := g.ledger.Land(g.run, g.pool, landed); ok {
			g.logger.Debug("landed", "species", ev.Species, "delta", ev.Delta, "score", ev.Score)
		}
	}
	if f, ok := g.resolver.Resolve(g.pool, g.rig); ok {
		g.emit(Event{Type: EventHooked, Fish: f.ID, Species: f.Species.Name, Score: g.run.Score})
	}
	g.resolveLine(dt)

	if g.director.Evaluate(g.run, g.rig.Phase() == PhaseIdle) {
		g.emitStage()
	}
	return nil
}

func (g *Game) applyToggles() {
	for ; g.pendingToggles > 0; g.pendingToggles-- {
		if g.rig.Toggle(g.run) {
			g.emit(Event{Type: EventCast, Score: g.run.Score})
		}
	}
}

// resolveLine drags the hooked fish along with the hook and applies line
// tension.
func (g *Game) resolveLine(dt time.Duration) {
	id, ok := g.rig.Hooked()
	if !ok {
		return
	}
	f, found := g.pool.Lookup(id)
	if !found {
		g.logger.Warn("hooked fish missing from pool", "fish", id)
		g.rig.Detach()
		return
	}
	f.Follow(g.rig.HookX(), g.rig.HookY(), dt, g.tuning.FollowX, g.tuning.FollowY)
	if g.rig.UpdateTension(f, dt) {
		ev := g.ledger.LineBroke(g.run, g.pool, id)
		g.logger.Debug("line broke", "species", ev.Species, "delta", ev.Delta, "score", ev.Score)
	}
}

// ToggleCast queues the cast/reel control for the next tick.
func (g *Game) ToggleCast() {
	g.pendingToggles++
}

// SetBoatX moves the boat; ignored unless the line is idle.
func (g *Game) SetBoatX(x float64) bool {
	return g.rig.SetBoatX(x)
}

// NudgeBoat moves the boat by dx.
func (g *Game) NudgeBoat(dx float64) bool {
	return g.rig.SetBoatX(g.rig.BoatX() + dx)
}

// ConfirmLevelIntro dismisses the level briefing and starts play.
func (g *Game) ConfirmLevelIntro() bool {
	if !g.director.Start() {
		return false
	}
	g.emitStage()
	return true
}

// ConfirmAdvanceLevel moves on after a completed level.
func (g *Game) ConfirmAdvanceLevel() bool {
	if !g.director.AdvanceLevel() {
		return false
	}
	g.resetRun()
	g.emitStage()
	return true
}

// ConfirmRestart starts over from level 1, cancelling a pending automatic
// restart.
func (g *Game) ConfirmRestart() {
	g.director.RestartFromLevel1()
	g.resetRun()
	g.emitStage()
}

// Stage returns the current progression stage.
func (g *Game) Stage() Stage {
	return g.director.Stage()
}

// Field returns the playfield dimensions.
func (g *Game) Field() object.Field {
	return g.field
}

// HookX returns the hook's horizontal position.
func (g *Game) HookX() float64 {
	return g.rig.HookX()
}

// DrainEvents returns and clears the events raised since the last call.
func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}
