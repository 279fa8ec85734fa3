package sim

import (
	"github.com/tomz197/lakeside/internal/object"
	"github.com/tomz197/lakeside/internal/physics"
)

// CollisionResolver hooks the first fish the hook touches.
type CollisionResolver struct {
	Margin float64 // Added to the fish size on both axes
}

// Resolve tests the hook against every unhooked fish in pool order. Nothing
// happens while a fish is already on the line or the hook is out of the
// water. On a hit the fish is marked hooked and attached to the rig.
func (c CollisionResolver) Resolve(pool *EntityPool, rig *LineRig) (*object.Fish, bool) {
	if _, hooked := rig.Hooked(); hooked || rig.Phase() == PhaseIdle {
		return nil, false
	}
	hx, hy := rig.HookX(), rig.HookY()
	for _, f := range pool.Fish() {
		if f.Hooked {
			continue
		}
		if physics.WithinReach(f.X, f.Y, hx, hy, f.Size+c.Margin) {
			f.Hooked = true
			rig.Attach(f.ID)
			return f, true
		}
	}
	return nil, false
}
