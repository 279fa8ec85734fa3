package sim

import (
	"time"

	"github.com/tomz197/lakeside/internal/object"
	"github.com/tomz197/lakeside/internal/physics"
)

// Phase is the state of the fishing line.
type Phase int

const (
	PhaseIdle    Phase = iota // Hook at the surface, boat free to move
	PhaseCasting              // Hook sinking
	PhaseReeling              // Hook rising
	PhaseSlack                // Hook hanging; tension relaxes
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCasting:
		return "casting"
	case PhaseReeling:
		return "reeling"
	case PhaseSlack:
		return "slack"
	default:
		return "unknown"
	}
}

// LineRig is the boat, line and hook. It holds at most one fish, by ID.
type LineRig struct {
	field  object.Field
	tuning Tuning

	boatX   float64
	depth   float64 // Below the surface, in [0, field.MaxDepth()]
	phase   Phase
	tension float64 // In [0, tuning.MaxTension]

	hooked  object.FishID
	hasFish bool
}

// NewLineRig creates an idle rig with the boat at its starting position.
func NewLineRig(field object.Field, tuning Tuning) *LineRig {
	r := &LineRig{field: field, tuning: tuning}
	r.boatX = r.clampBoat(tuning.BoatStartX)
	return r
}

func (r *LineRig) BoatX() float64   { return r.boatX }
func (r *LineRig) Depth() float64   { return r.depth }
func (r *LineRig) Phase() Phase     { return r.phase }
func (r *LineRig) Tension() float64 { return r.tension }

// HookX and HookY give the hook position; the line hangs straight down.
func (r *LineRig) HookX() float64 { return r.boatX }
func (r *LineRig) HookY() float64 { return r.field.SurfaceY + r.depth }

// Hooked returns the fish on the line, if any.
func (r *LineRig) Hooked() (object.FishID, bool) {
	return r.hooked, r.hasFish
}

// Toggle is the single cast/reel control. Casting from Idle spends one
// stamina and does nothing without it. It reports whether a cast started.
func (r *LineRig) Toggle(run *RunState) (cast bool) {
	switch r.phase {
	case PhaseIdle:
		if !run.SpendStamina() {
			return false
		}
		r.phase = PhaseCasting
		return true
	case PhaseCasting, PhaseSlack:
		r.phase = PhaseReeling
	case PhaseReeling:
		if r.hasFish {
			r.phase = PhaseSlack
		}
	}
	return false
}

// SetBoatX moves the boat, clamped to the field margins. The boat only moves
// while the line is idle.
func (r *LineRig) SetBoatX(x float64) bool {
	if r.phase != PhaseIdle {
		return false
	}
	r.boatX = r.clampBoat(x)
	return true
}

func (r *LineRig) clampBoat(x float64) float64 {
	return physics.Clamp(x, r.tuning.BoatMargin, r.field.Width-r.tuning.BoatMargin)
}

// Advance moves the hook for one tick. When a reel brings the hook to the
// surface the rig returns to Idle and reports the fish it was towing.
func (r *LineRig) Advance(dt time.Duration) (landed object.FishID, towing, surfaced bool) {
	secs := dt.Seconds()
	switch r.phase {
	case PhaseCasting:
		r.depth += r.tuning.CastSpeed * secs
		if r.depth >= r.field.MaxDepth() {
			r.depth = r.field.MaxDepth()
			r.phase = PhaseSlack
		}
	case PhaseReeling:
		speed := r.tuning.ReelSpeed
		if r.hasFish {
			speed = r.tuning.TowSpeed
		}
		r.depth -= speed * secs
		if r.depth <= 0 {
			landed, towing = r.hooked, r.hasFish
			r.Reset()
			return landed, towing, true
		}
	}
	return 0, false, false
}

// Attach puts a fish on the hook and starts reeling it in.
func (r *LineRig) Attach(id object.FishID) {
	r.hooked = id
	r.hasFish = true
	r.phase = PhaseReeling
}

// Detach drops the hooked fish without changing the phase.
func (r *LineRig) Detach() {
	r.hooked = 0
	r.hasFish = false
}

// UpdateTension builds tension while a hooked fish is reeled and relaxes it
// otherwise. When tension reaches the maximum the line breaks: the fish is
// detached, tension resets and the rig goes slack. It reports a break.
func (r *LineRig) UpdateTension(f *object.Fish, dt time.Duration) (broke bool) {
	if !r.hasFish {
		return false
	}
	secs := dt.Seconds()
	if r.phase == PhaseReeling {
		r.tension += (f.Pull()*r.tuning.TensionPerSpeed + r.tuning.TensionBase) * secs
	} else {
		r.tension -= r.tuning.TensionDecay * secs
	}
	r.tension = physics.Clamp(r.tension, 0, r.tuning.MaxTension)

	if r.tension >= r.tuning.MaxTension {
		r.tension = 0
		r.Detach()
		r.phase = PhaseSlack
		return true
	}
	return false
}

// Reset returns the hook to the surface. The boat stays where it is.
func (r *LineRig) Reset() {
	r.depth = 0
	r.phase = PhaseIdle
	r.tension = 0
	r.Detach()
}
