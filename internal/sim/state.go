package sim

import (
	"maps"
	"time"

	"github.com/tomz197/lakeside/internal/catalog"
)

// RunState is the score sheet for one attempt at a level. It is replaced
// wholesale whenever a level starts.
type RunState struct {
	Level      int
	Score      int // Never negative
	Stamina    int // Casts left, in [0, StaminaMax]
	StaminaMax int
	Caught     map[string]int // Landed fish per species name
	Elapsed    time.Duration
	Over       bool
	Win        bool
	FinalWin   bool
}

// NewRunState creates a fresh attempt at the given level.
func NewRunState(level catalog.Level) *RunState {
	return &RunState{
		Level:      level.Number,
		Stamina:    level.StaminaMax,
		StaminaMax: level.StaminaMax,
		Caught:     make(map[string]int),
	}
}

// AddScore applies a signed delta, flooring the score at zero. It returns
// the change actually applied.
func (r *RunState) AddScore(delta int) int {
	before := r.Score
	r.Score = max(0, r.Score+delta)
	return r.Score - before
}

// SpendStamina consumes one cast. It reports false when none are left.
func (r *RunState) SpendStamina() bool {
	if r.Stamina <= 0 {
		return false
	}
	r.Stamina--
	return true
}

// RecordCatch counts one landed fish of the named species.
func (r *RunState) RecordCatch(name string) {
	r.Caught[name]++
}

// CatchCounts returns a copy of the per-species counts.
func (r *RunState) CatchCounts() map[string]int {
	return maps.Clone(r.Caught)
}
