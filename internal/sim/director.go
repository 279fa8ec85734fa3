package sim

import (
	"fmt"
	"time"

	"github.com/tomz197/lakeside/internal/catalog"
)

// Stage is the level progression state.
type Stage int

const (
	StageIntro         Stage = iota // Level briefing, waiting for confirmation
	StagePlaying                    // Simulation running
	StageLevelComplete              // Target met, waiting to advance
	StageFinalWin                   // Last level cleared
	StageLost                       // Target missed, auto-reset pending
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StagePlaying:
		return "playing"
	case StageLevelComplete:
		return "level-complete"
	case StageFinalWin:
		return "final-win"
	case StageLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Over reports whether the stage ends a level attempt.
func (s Stage) Over() bool {
	return s >= StageLevelComplete
}

// LevelDirector decides when a level ends and what comes next.
type LevelDirector struct {
	tables    *catalog.Tables
	level     catalog.Level
	stage     Stage
	resetIn   time.Duration // Counts down while Lost
	pending   bool          // An automatic restart is scheduled
	delay     time.Duration
	timeLimit time.Duration
}

// NewLevelDirector starts at the level 1 briefing.
func NewLevelDirector(tables *catalog.Tables, tuning Tuning) *LevelDirector {
	d := &LevelDirector{
		tables:    tables,
		delay:     tuning.LossResetDelay,
		timeLimit: tuning.TimeLimit,
	}
	d.level, _ = tables.Level(1)
	return d
}

func (d *LevelDirector) Level() catalog.Level     { return d.level }
func (d *LevelDirector) Stage() Stage             { return d.stage }
func (d *LevelDirector) ResetIn() time.Duration   { return d.resetIn }
func (d *LevelDirector) IsFinalLevel() bool       { return d.level.Number >= d.tables.LevelCount() }
func (d *LevelDirector) TimeLimit() time.Duration { return d.timeLimit }

// Start leaves the briefing and begins play.
func (d *LevelDirector) Start() bool {
	if d.stage != StageIntro {
		return false
	}
	d.stage = StagePlaying
	return true
}

// Evaluate ends the level once the last cast has been reeled in (no stamina
// and the rig idle) or the time limit is hit. It reports whether the stage
// changed.
func (d *LevelDirector) Evaluate(run *RunState, rigIdle bool) bool {
	if d.stage != StagePlaying {
		return false
	}
	outOfCasts := run.Stamina == 0 && rigIdle
	if !outOfCasts && run.Elapsed < d.timeLimit {
		return false
	}

	run.Over = true
	passed := run.Score >= d.level.TargetScore
	switch {
	case passed && d.IsFinalLevel():
		d.stage = StageFinalWin
		run.Win = true
		run.FinalWin = true
	case passed:
		d.stage = StageLevelComplete
		run.Win = true
	default:
		d.stage = StageLost
		d.resetIn = d.delay
		d.pending = true
	}
	return true
}

// Countdown runs the loss timer. It reports true once, when the automatic
// restart is due. A zero delay fires on the first call.
func (d *LevelDirector) Countdown(dt time.Duration) bool {
	if d.stage != StageLost || !d.pending {
		return false
	}
	d.resetIn -= dt
	if d.resetIn > 0 {
		return false
	}
	d.resetIn = 0
	d.pending = false
	return true
}

// AdvanceLevel moves to the next level's briefing after a completed level.
func (d *LevelDirector) AdvanceLevel() bool {
	if d.stage != StageLevelComplete {
		return false
	}
	next, ok := d.tables.Level(d.level.Number + 1)
	if !ok {
		return false
	}
	d.level = next
	d.stage = StageIntro
	return true
}

// RestartFromLevel1 returns to the level 1 briefing and cancels any pending
// automatic restart.
func (d *LevelDirector) RestartFromLevel1() {
	d.level, _ = d.tables.Level(1)
	d.stage = StageIntro
	d.resetIn = 0
	d.pending = false
}

// Message is the player-facing text for the current stage.
func (d *LevelDirector) Message() string {
	switch d.stage {
	case StageIntro:
		return fmt.Sprintf("Level %d: reach %d points in %d casts", d.level.Number, d.level.TargetScore, d.level.StaminaMax)
	case StageLevelComplete:
		return fmt.Sprintf("Level %d complete!", d.level.Number)
	case StageFinalWin:
		return "Every level cleared. You are a true master angler!"
	case StageLost:
		return "Target missed. Failure is the mother of success, try again!"
	default:
		return ""
	}
}
