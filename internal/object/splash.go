package object

import (
	"math"
	"math/rand"
	"time"
)

// Droplet is one short-lived drop of water thrown up by a splash.
type Droplet struct {
	X, Y        float64
	VX, VY      float64 // Pixels per reference frame
	Lifetime    time.Duration
	MaxLifetime time.Duration
}

// Splash gravity and drag, per reference frame.
const (
	dropletGravity = 0.35
	dropletDrag    = 0.97
)

// Splash throws count droplets upward from (x, y) in a fan. speed is the
// launch speed in pixels per reference frame.
func Splash(rng *rand.Rand, x, y float64, count int, speed float64, lifetime time.Duration) []Droplet {
	drops := make([]Droplet, 0, count)
	for range count {
		// Upward fan between 30 and 150 degrees.
		angle := math.Pi/6 + rng.Float64()*2*math.Pi/3
		spd := speed * (0.5 + rng.Float64())
		life := time.Duration(float64(lifetime) * (0.5 + rng.Float64()*0.5))
		drops = append(drops, Droplet{
			X:           x,
			Y:           y,
			VX:          math.Cos(angle) * spd,
			VY:          -math.Sin(angle) * spd,
			Lifetime:    life,
			MaxLifetime: life,
		})
	}
	return drops
}

// Advance moves the droplet and reports whether it is still alive. A droplet
// dies when its lifetime runs out or it falls back below surfaceY.
func (d *Droplet) Advance(dt time.Duration, surfaceY float64) bool {
	frames := Frames(dt)
	d.Lifetime -= dt
	d.VY += dropletGravity * frames
	drag := math.Pow(dropletDrag, frames)
	d.VX *= drag
	d.VY *= drag
	d.X += d.VX * frames
	d.Y += d.VY * frames
	return d.Lifetime > 0 && !(d.VY > 0 && d.Y > surfaceY)
}

// Fading reports whether the droplet is in the last third of its life.
func (d *Droplet) Fading() bool {
	return d.MaxLifetime > 0 && d.Lifetime*3 < d.MaxLifetime
}

// AdvanceDroplets advances every droplet and drops the dead ones in place.
func AdvanceDroplets(drops []Droplet, dt time.Duration, surfaceY float64) []Droplet {
	alive := drops[:0]
	for i := range drops {
		if drops[i].Advance(dt, surfaceY) {
			alive = append(alive, drops[i])
		}
	}
	return alive
}
