package sim

import "github.com/tomz197/lakeside/internal/object"

// ScoreLedger applies score changes to the run and reports them.
type ScoreLedger struct {
	penalty int
	notify  func(Event)
}

// NewScoreLedger creates a ledger charging penalty per broken line. notify
// receives every score event and may be nil.
func NewScoreLedger(penalty int, notify func(Event)) *ScoreLedger {
	if notify == nil {
		notify = func(Event) {}
	}
	return &ScoreLedger{penalty: penalty, notify: notify}
}

// Land scores a fish brought to the surface and removes it from the pool.
func (l *ScoreLedger) Land(run *RunState, pool *EntityPool, id object.FishID) (Event, bool) {
	f, ok := pool.Lookup(id)
	if !ok {
		return Event{}, false
	}
	delta := run.AddScore(f.Species.Value)
	run.RecordCatch(f.Species.Name)
	pool.Remove(id)

	ev := Event{
		Type:    EventLanded,
		Fish:    id,
		Species: f.Species.Name,
		Delta:   delta,
		Score:   run.Score,
	}
	l.notify(ev)
	return ev, true
}

// LineBroke charges the penalty for a broken line. The fish stays in the
// pool, unhooked.
func (l *ScoreLedger) LineBroke(run *RunState, pool *EntityPool, id object.FishID) Event {
	ev := Event{Type: EventLineBroke, Fish: id}
	if f, ok := pool.Lookup(id); ok {
		pool.Release(id)
		ev.Species = f.Species.Name
	}
	ev.Delta = run.AddScore(-l.penalty)
	ev.Score = run.Score
	l.notify(ev)
	return ev
}
