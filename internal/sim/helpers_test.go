package sim

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/object"
)

const frame = time.Second / 60

// quietTuning disables random spawns so tests control every entity.
func quietTuning() Tuning {
	t := DefaultTuning()
	t.SpawnInterval = time.Hour
	t.BubbleChance = 0
	return t
}

func newTestGame(t *testing.T, tuning Tuning) *Game {
	t.Helper()
	g, err := New(Options{Tuning: &tuning, Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !g.ConfirmLevelIntro() {
		t.Fatal("ConfirmLevelIntro() = false")
	}
	g.DrainEvents()
	return g
}

func tick(t *testing.T, g *Game, dt time.Duration) {
	t.Helper()
	if err := g.Tick(dt); err != nil {
		t.Fatalf("Tick(%v) error: %v", dt, err)
	}
}

func species(t *testing.T, name string) catalog.Species {
	t.Helper()
	s, ok := catalog.Default().Lookup(name)
	if !ok {
		t.Fatalf("species %q not in default tables", name)
	}
	return s
}

func newTestPool(tuning Tuning) *EntityPool {
	return NewEntityPool(object.DefaultField(), tuning, rand.New(rand.NewSource(1)))
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
