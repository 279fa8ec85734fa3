package sim

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTuning is wrapped by errors from Tuning validation.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds the simulation rates and limits. Speeds suffixed "per
// second" are scaled by elapsed seconds; fish and bubble speeds live in the
// species table and are per reference frame.
type Tuning struct {
	// Population
	SpawnInterval    time.Duration // Accumulated time between spawns
	BonusSpawnChance float64       // Chance of a second fish per interval
	SpawnOffset      float64       // How far outside the field new fish enter
	CullMargin       float64       // Fish beyond this margin are removed
	BubbleChance     float64       // Per-tick chance of a new bubble
	MaxBubbles       int

	// Line, pixels per second
	CastSpeed float64
	ReelSpeed float64 // Empty hook
	TowSpeed  float64 // Towing a fish
	FollowX   float64 // Fraction of the gap a hooked fish closes per frame
	FollowY   float64

	HookMargin float64 // Added to fish size for the hook test

	// Tension, units per second
	TensionBase     float64
	TensionPerSpeed float64
	TensionDecay    float64
	MaxTension      float64
	BreakPenalty    int

	BoatMargin float64 // Boat is kept this far from either edge
	BoatStartX float64

	LossResetDelay time.Duration
	TimeLimit      time.Duration // Forces the end-of-level evaluation
}

// DefaultTuning returns the standard arcade tuning.
func DefaultTuning() Tuning {
	return Tuning{
		SpawnInterval:    1400 * time.Millisecond,
		BonusSpawnChance: 0.5,
		SpawnOffset:      30,
		CullMargin:       60,
		BubbleChance:     0.008,
		MaxBubbles:       15,

		CastSpeed: 240,
		ReelSpeed: 260,
		TowSpeed:  180,
		FollowX:   0.1,
		FollowY:   0.15,

		HookMargin: 6,

		TensionBase:     18,
		TensionPerSpeed: 15,
		TensionDecay:    20,
		MaxTension:      100,
		BreakPenalty:    10,

		BoatMargin: 40,
		BoatStartX: 200,

		LossResetDelay: 2 * time.Second,
		TimeLimit:      9999 * time.Second,
	}
}

func (t Tuning) validate() error {
	var problems []error
	if t.SpawnInterval <= 0 {
		problems = append(problems, fmt.Errorf("spawn interval must be positive, got %v", t.SpawnInterval))
	}
	if t.CastSpeed <= 0 || t.ReelSpeed <= 0 || t.TowSpeed <= 0 {
		problems = append(problems, fmt.Errorf("line speeds must be positive (cast %g, reel %g, tow %g)", t.CastSpeed, t.ReelSpeed, t.TowSpeed))
	}
	if t.MaxTension <= 0 {
		problems = append(problems, fmt.Errorf("max tension must be positive, got %g", t.MaxTension))
	}
	if t.BreakPenalty < 0 {
		problems = append(problems, fmt.Errorf("break penalty must not be negative, got %d", t.BreakPenalty))
	}
	if t.MaxBubbles < 0 {
		problems = append(problems, fmt.Errorf("max bubbles must not be negative, got %d", t.MaxBubbles))
	}
	if t.LossResetDelay < 0 {
		problems = append(problems, fmt.Errorf("loss reset delay must not be negative, got %v", t.LossResetDelay))
	}
	if t.TimeLimit <= 0 {
		problems = append(problems, fmt.Errorf("time limit must be positive, got %v", t.TimeLimit))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTuning, errors.Join(problems...))
	}
	return nil
}
