package sim

import (
	"testing"
	"time"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/object"
)

func TestSpawnFishEntersFromEitherEdge(t *testing.T) {
	pool := newTestPool(quietTuning())
	allowed := catalog.Default().LevelSpecies(3)
	pool.SetSpecies(allowed)
	field := object.DefaultField()
	top, bottom := field.SwimBand()

	var left, right int
	for i := 0; i < 500; i++ {
		f := pool.SpawnFish()
		if f == nil {
			t.Fatal("SpawnFish() = nil")
		}
		if f.Y < top || f.Y >= bottom {
			t.Errorf("fish %d y = %g; want in [%g, %g)", f.ID, f.Y, top, bottom)
		}
		s := f.Species
		switch f.X {
		case -30:
			left++
			if f.Speed < s.SpeedMin || f.Speed > s.SpeedMax {
				t.Errorf("left fish speed %g outside [%g, %g]", f.Speed, s.SpeedMin, s.SpeedMax)
			}
		case field.Width + 30:
			right++
			if -f.Speed < s.SpeedMin || -f.Speed > s.SpeedMax {
				t.Errorf("right fish speed %g outside [-%g, -%g]", f.Speed, s.SpeedMax, s.SpeedMin)
			}
		default:
			t.Errorf("fish spawned at x = %g", f.X)
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("left = %d, right = %d; want fish from both sides", left, right)
	}
}

func TestSpawnFishWithoutSpecies(t *testing.T) {
	pool := newTestPool(quietTuning())
	if f := pool.SpawnFish(); f != nil {
		t.Errorf("SpawnFish() = %+v; want nil", f)
	}
}

func TestSpawnCadence(t *testing.T) {
	tuning := quietTuning()
	tuning.SpawnInterval = time.Second
	tuning.BonusSpawnChance = 0
	pool := newTestPool(tuning)
	pool.SetSpecies(catalog.Default().LevelSpecies(1))

	pool.Advance(500 * time.Millisecond)
	if got := len(pool.Fish()); got != 0 {
		t.Fatalf("after 0.5s: %d fish; want 0", got)
	}
	pool.Advance(500 * time.Millisecond)
	if got := len(pool.Fish()); got != 1 {
		t.Fatalf("after 1s: %d fish; want 1", got)
	}

	tuning.BonusSpawnChance = 1
	pool = newTestPool(tuning)
	pool.SetSpecies(catalog.Default().LevelSpecies(1))
	pool.Advance(time.Second)
	if got := len(pool.Fish()); got != 2 {
		t.Fatalf("with bonus spawn: %d fish; want 2", got)
	}
}

func TestAdvanceFishCullsOutsideMargin(t *testing.T) {
	pool := newTestPool(quietTuning())
	small := species(t, "小鱼")

	gone := pool.Insert(small, -59, 450, -2)
	stays := pool.Insert(small, 1259, 450, 0.5)
	hooked := pool.Insert(small, -500, 450, -2)
	hooked.Hooked = true

	pool.AdvanceFish(frame)

	if _, ok := pool.Lookup(gone.ID); ok {
		t.Error("fish past the left margin was not culled")
	}
	if _, ok := pool.Lookup(stays.ID); !ok {
		t.Error("fish inside the right margin was culled")
	}
	if _, ok := pool.Lookup(hooked.ID); !ok {
		t.Error("hooked fish was culled")
	}
	if hooked.X != -500 {
		t.Errorf("hooked fish moved to x = %g", hooked.X)
	}
}

func TestBubblesCappedAndRecycled(t *testing.T) {
	tuning := quietTuning()
	tuning.BubbleChance = 1
	pool := newTestPool(tuning)

	for i := 0; i < 100; i++ {
		pool.Advance(frame)
	}
	if got := len(pool.Bubbles()); got != tuning.MaxBubbles {
		t.Fatalf("%d bubbles; want %d", got, tuning.MaxBubbles)
	}

	field := object.DefaultField()
	b := pool.Bubbles()[0]
	b.Y = field.SurfaceY + 0.1
	b.Rise = 0.9
	pool.AdvanceBubbles(frame)
	if b.Y < field.FloorY || b.Y >= field.FloorY+40 {
		t.Errorf("recycled bubble y = %g; want in [%g, %g)", b.Y, field.FloorY, field.FloorY+40)
	}
}

func TestPoolRemoveAndRelease(t *testing.T) {
	pool := newTestPool(quietTuning())
	small := species(t, "小鱼")
	a := pool.Insert(small, 100, 450, 1)
	b := pool.Insert(small, 200, 450, 1)
	b.Hooked = true

	if !pool.Release(b.ID) || b.Hooked {
		t.Error("Release() did not unhook the fish")
	}
	if !pool.Remove(a.ID) {
		t.Fatal("Remove() = false")
	}
	if pool.Remove(a.ID) {
		t.Error("second Remove() = true")
	}
	if pool.Release(a.ID) {
		t.Error("Release() of removed fish = true")
	}
	if got := len(pool.Fish()); got != 1 {
		t.Errorf("%d fish left; want 1", got)
	}

	pool.Reset()
	if len(pool.Fish()) != 0 || len(pool.Bubbles()) != 0 {
		t.Error("Reset() left entities behind")
	}
	if c := pool.Insert(small, 0, 450, 1); c.ID <= b.ID {
		t.Errorf("ID after Reset() = %d; want greater than %d", c.ID, b.ID)
	}
}
