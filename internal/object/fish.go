package object

import (
	"math"
	"time"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/physics"
)

// FishID is a stable handle for a fish in the pool.
type FishID uint64

// Fish is a fish drifting horizontally across the lake.
type Fish struct {
	ID      FishID
	Species catalog.Species
	X, Y    float64 // Centre
	Speed   float64 // Signed, pixels per reference frame; positive moves right
	Size    float64
	Hooked  bool
}

// NewFish creates an unhooked fish of the given species.
func NewFish(id FishID, species catalog.Species, x, y, speed float64) *Fish {
	return &Fish{
		ID:      id,
		Species: species,
		X:       x,
		Y:       y,
		Speed:   speed,
		Size:    species.Size,
	}
}

// Advance drifts the fish horizontally. Hooked fish are moved by the line
// instead and are left untouched.
func (f *Fish) Advance(dt time.Duration) {
	if f.Hooked {
		return
	}
	f.X += f.Speed * Frames(dt)
}

// Follow eases the fish toward the hook at (x, y). followX and followY are
// the fractions of the gap closed per reference frame.
func (f *Fish) Follow(x, y float64, dt time.Duration, followX, followY float64) {
	frames := Frames(dt)
	f.X = physics.Approach(f.X, x, followX, frames)
	f.Y = physics.Approach(f.Y, y, followY, frames)
}

// Pull is how hard the fish fights the line.
func (f *Fish) Pull() float64 {
	return math.Abs(f.Speed)
}

// FacingRight reports the direction the fish swims in.
func (f *Fish) FacingRight() bool {
	return f.Speed >= 0
}
