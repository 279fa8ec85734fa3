package sim

import (
	"math/rand"
	"slices"
	"time"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/object"
	"github.com/tomz197/lakeside/internal/physics"
)

// EntityPool owns the live fish and bubbles of a level.
type EntityPool struct {
	field  object.Field
	tuning Tuning
	rng    *rand.Rand

	species []catalog.Species
	fish    []*object.Fish
	bubbles []*object.Bubble

	nextID     object.FishID
	sinceSpawn time.Duration
}

// NewEntityPool creates an empty pool. rng drives every random choice the
// pool makes.
func NewEntityPool(field object.Field, tuning Tuning, rng *rand.Rand) *EntityPool {
	return &EntityPool{
		field:  field,
		tuning: tuning,
		rng:    rng,
	}
}

// SetSpecies replaces the species new fish are drawn from.
func (p *EntityPool) SetSpecies(species []catalog.Species) {
	p.species = slices.Clone(species)
}

// Reset drops every fish and bubble and restarts the spawn timer. Fish IDs
// keep increasing across resets.
func (p *EntityPool) Reset() {
	p.fish = nil
	p.bubbles = nil
	p.sinceSpawn = 0
}

// Advance runs one tick of population upkeep: timed spawning, bubbles, then
// fish movement and culling.
func (p *EntityPool) Advance(dt time.Duration) {
	p.sinceSpawn += dt
	if p.sinceSpawn >= p.tuning.SpawnInterval {
		p.sinceSpawn = 0
		p.SpawnFish()
		if p.rng.Float64() < p.tuning.BonusSpawnChance {
			p.SpawnFish()
		}
	}

	if p.rng.Float64() < p.tuning.BubbleChance {
		p.SpawnBubble()
	}
	p.AdvanceBubbles(dt)
	p.AdvanceFish(dt)
}

// SpawnFish adds a fish of a random allowed species just outside the left or
// right edge, swimming inward. It returns nil when no species are allowed.
func (p *EntityPool) SpawnFish() *object.Fish {
	if len(p.species) == 0 {
		return nil
	}
	s := p.species[p.rng.Intn(len(p.species))]

	dir := 1.0
	if p.rng.Float64() >= 0.5 {
		dir = -1
	}
	top, bottom := p.field.SwimBand()
	y := physics.RandRange(p.rng.Float64(), top, bottom)
	speed := physics.RandRange(p.rng.Float64(), s.SpeedMin, s.SpeedMax) * dir

	x := -p.tuning.SpawnOffset
	if dir < 0 {
		x = p.field.Width + p.tuning.SpawnOffset
	}
	return p.Insert(s, x, y, speed)
}

// Insert places a fish at an exact position.
func (p *EntityPool) Insert(species catalog.Species, x, y, speed float64) *object.Fish {
	p.nextID++
	f := object.NewFish(p.nextID, species, x, y, speed)
	p.fish = append(p.fish, f)
	return f
}

// AdvanceFish moves unhooked fish and removes those that left the field.
// A hooked fish is never culled.
func (p *EntityPool) AdvanceFish(dt time.Duration) {
	kept := p.fish[:0]
	for _, f := range p.fish {
		f.Advance(dt)
		if f.Hooked || p.field.InBounds(f.X, p.tuning.CullMargin) {
			kept = append(kept, f)
		}
	}
	clear(p.fish[len(kept):])
	p.fish = kept
}

// SpawnBubble adds a bubble near the floor unless the cap is reached.
func (p *EntityPool) SpawnBubble() bool {
	if len(p.bubbles) >= p.tuning.MaxBubbles {
		return false
	}
	p.bubbles = append(p.bubbles, &object.Bubble{
		X:      physics.RandRange(p.rng.Float64(), 0, p.field.Width),
		Y:      p.floorDepth(),
		Radius: physics.RandRange(p.rng.Float64(), 2, 4),
		Rise:   physics.RandRange(p.rng.Float64(), 0.4, 0.9),
	})
	return true
}

// AdvanceBubbles raises every bubble, recycling those that reach the
// surface back to the floor.
func (p *EntityPool) AdvanceBubbles(dt time.Duration) {
	for _, b := range p.bubbles {
		if b.Advance(dt, p.field.SurfaceY) {
			b.Y = p.floorDepth()
		}
	}
}

func (p *EntityPool) floorDepth() float64 {
	return p.field.FloorY + physics.RandRange(p.rng.Float64(), 0, 40)
}

// Lookup finds a live fish by ID.
func (p *EntityPool) Lookup(id object.FishID) (*object.Fish, bool) {
	for _, f := range p.fish {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Remove deletes a fish from the pool.
func (p *EntityPool) Remove(id object.FishID) bool {
	i := slices.IndexFunc(p.fish, func(f *object.Fish) bool { return f.ID == id })
	if i < 0 {
		return false
	}
	p.fish = slices.Delete(p.fish, i, i+1)
	return true
}

// Release unhooks a fish and leaves it in the pool to swim off.
func (p *EntityPool) Release(id object.FishID) bool {
	f, ok := p.Lookup(id)
	if !ok {
		return false
	}
	f.Hooked = false
	return true
}

// Fish returns the live fish in insertion order. Callers must not modify the
// slice.
func (p *EntityPool) Fish() []*object.Fish {
	return p.fish
}

// Bubbles returns the live bubbles. Callers must not modify the slice.
func (p *EntityPool) Bubbles() []*object.Bubble {
	return p.bubbles
}
