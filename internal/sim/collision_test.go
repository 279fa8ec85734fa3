package sim

import (
	"testing"

	"github.com/tomz197/lakeside/internal/object"
)

func castRig(depth float64) *LineRig {
	rig := NewLineRig(object.DefaultField(), DefaultTuning())
	rig.phase = PhaseCasting
	rig.depth = depth
	return rig
}

func TestResolveFirstMatchWins(t *testing.T) {
	pool := newTestPool(quietTuning())
	small := species(t, "小鱼")
	rig := castRig(70)

	first := pool.Insert(small, rig.HookX(), rig.HookY(), 1)
	second := pool.Insert(small, rig.HookX()+5, rig.HookY()+2, 1)

	f, ok := CollisionResolver{Margin: 6}.Resolve(pool, rig)
	if !ok || f.ID != first.ID {
		t.Fatalf("Resolve() = %v, %v; want fish %d", f, ok, first.ID)
	}
	if !first.Hooked || second.Hooked {
		t.Errorf("hooked flags = %v, %v; want true, false", first.Hooked, second.Hooked)
	}
	if id, ok := rig.Hooked(); !ok || id != first.ID || rig.Phase() != PhaseReeling {
		t.Errorf("rig holds %d (%v) in %v; want %d reeling", id, ok, rig.Phase(), first.ID)
	}

	if _, ok := (CollisionResolver{Margin: 6}).Resolve(pool, rig); ok {
		t.Error("second Resolve() hooked another fish")
	}
}

func TestResolveIgnoresIdleHook(t *testing.T) {
	pool := newTestPool(quietTuning())
	rig := NewLineRig(object.DefaultField(), DefaultTuning())
	pool.Insert(species(t, "小鱼"), rig.HookX(), rig.HookY(), 1)

	if _, ok := (CollisionResolver{Margin: 6}).Resolve(pool, rig); ok {
		t.Error("Resolve() hooked a fish while idle")
	}
}

func TestResolveReachIsStrict(t *testing.T) {
	pool := newTestPool(quietTuning())
	small := species(t, "小鱼")
	rig := castRig(70)

	edge := pool.Insert(small, rig.HookX()+small.Size+6, rig.HookY(), 1)
	if _, ok := (CollisionResolver{Margin: 6}).Resolve(pool, rig); ok {
		t.Fatal("fish exactly at reach was hooked")
	}

	edge.X -= 0.5
	if _, ok := (CollisionResolver{Margin: 6}).Resolve(pool, rig); !ok {
		t.Error("fish inside reach was not hooked")
	}
}
