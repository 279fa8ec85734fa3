package sim

import (
	"testing"

	"github.com/tomz197/lakeside/internal/catalog"
)

func TestLandThreeMinnows(t *testing.T) {
	level, _ := catalog.Default().Level(1)
	run := NewRunState(level)
	pool := newTestPool(quietTuning())
	var got []Event
	ledger := NewScoreLedger(10, func(ev Event) { got = append(got, ev) })

	small := species(t, "小鱼")
	for i := 0; i < 3; i++ {
		f := pool.Insert(small, 100, 450, 1)
		if _, ok := ledger.Land(run, pool, f.ID); !ok {
			t.Fatalf("Land() #%d = false", i+1)
		}
	}

	if run.Score != 15 {
		t.Errorf("Score = %d; want 15", run.Score)
	}
	if run.Caught["小鱼"] != 3 {
		t.Errorf("Caught[小鱼] = %d; want 3", run.Caught["小鱼"])
	}
	if len(pool.Fish()) != 0 {
		t.Errorf("%d fish left in pool; want 0", len(pool.Fish()))
	}
	if len(got) != 3 || got[2].Type != EventLanded || got[2].Score != 15 {
		t.Errorf("events = %+v", got)
	}
}

func TestLandProtectedFloorsScore(t *testing.T) {
	level, _ := catalog.Default().Level(2)
	run := NewRunState(level)
	run.Score = 10
	pool := newTestPool(quietTuning())
	ledger := NewScoreLedger(10, nil)

	f := pool.Insert(species(t, "保护鱼类1"), 100, 450, 1)
	ev, ok := ledger.Land(run, pool, f.ID)
	if !ok {
		t.Fatal("Land() = false")
	}
	if run.Score != 0 || ev.Delta != -10 {
		t.Errorf("Score = %d, Delta = %d; want 0, -10", run.Score, ev.Delta)
	}
	if run.Caught["保护鱼类1"] != 1 {
		t.Errorf("Caught[保护鱼类1] = %d; want 1", run.Caught["保护鱼类1"])
	}
}

func TestLandUnknownFish(t *testing.T) {
	level, _ := catalog.Default().Level(1)
	run := NewRunState(level)
	if _, ok := NewScoreLedger(10, nil).Land(run, newTestPool(quietTuning()), 42); ok {
		t.Error("Land() of missing fish = true")
	}
}

func TestLineBrokeReleasesFish(t *testing.T) {
	level, _ := catalog.Default().Level(1)
	run := NewRunState(level)
	run.Score = 4
	pool := newTestPool(quietTuning())
	f := pool.Insert(species(t, "大鱼"), 100, 450, 1)
	f.Hooked = true

	ev := NewScoreLedger(10, nil).LineBroke(run, pool, f.ID)
	if run.Score != 0 || ev.Delta != -4 || ev.Type != EventLineBroke {
		t.Errorf("Score = %d, event = %+v", run.Score, ev)
	}
	if _, ok := pool.Lookup(f.ID); !ok || f.Hooked {
		t.Error("broken-off fish should stay in the pool unhooked")
	}
}
