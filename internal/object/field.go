package object

import "time"

// ReferenceFPS is the frame rate that per-frame speeds and easing factors are
// expressed in. Elapsed time is converted with Frames.
const ReferenceFPS = 60.0

// Frames converts an elapsed duration to reference frames.
func Frames(dt time.Duration) float64 {
	return dt.Seconds() * ReferenceFPS
}

// Field is the lake cross-section the game is played in, in logical pixels.
// Y grows downward; the boat floats on SurfaceY and fish swim between the
// surface and FloorY.
type Field struct {
	Width    float64
	Height   float64
	SurfaceY float64
	FloorY   float64
}

// DefaultField returns the standard 1200x700 lake.
func DefaultField() Field {
	return Field{
		Width:    1200,
		Height:   700,
		SurfaceY: 380,
		FloorY:   620,
	}
}

// MaxDepth is the deepest the hook can sink below the surface.
func (f Field) MaxDepth() float64 {
	return f.FloorY - f.SurfaceY
}

// SwimBand returns the vertical range fish are spawned in.
func (f Field) SwimBand() (top, bottom float64) {
	return f.SurfaceY + 20, f.FloorY - 40
}

// InBounds reports whether x lies strictly inside the field widened by
// margin on both sides.
func (f Field) InBounds(x, margin float64) bool {
	return x > -margin && x < f.Width+margin
}
