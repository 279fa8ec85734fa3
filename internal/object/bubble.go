package object

import "time"

// Bubble is a purely decorative air bubble rising from the lake floor.
type Bubble struct {
	X, Y   float64
	Radius float64
	Rise   float64 // Pixels per reference frame
}

// Advance raises the bubble and reports whether it has crossed above
// surfaceY, in which case the caller recycles it.
func (b *Bubble) Advance(dt time.Duration, surfaceY float64) (surfaced bool) {
	b.Y -= b.Rise * Frames(dt)
	return b.Y < surfaceY
}
