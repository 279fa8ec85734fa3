package sim

import (
	"time"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/object"
)

// FishView is a read-only copy of a fish.
type FishView struct {
	ID        object.FishID
	Species   string
	Value     int
	Protected bool
	X, Y      float64
	Size      float64
	Speed     float64
	Hooked    bool
}

// BubbleView is a read-only copy of a bubble.
type BubbleView struct {
	X, Y, Radius float64
}

// RigView is a read-only copy of the line rig.
type RigView struct {
	Phase      Phase
	BoatX      float64
	Depth      float64
	HookX      float64
	HookY      float64
	Tension    float64
	MaxTension float64
	Hooked     bool
	HookedID   object.FishID
}

// Snapshot is everything a renderer needs for one frame. It shares no
// memory with the Game.
type Snapshot struct {
	Field   object.Field
	Stage   Stage
	Message string
	ResetIn time.Duration

	Level        int
	LevelCount   int
	TargetScore  int
	LevelSpecies []catalog.Species
	Score        int
	Stamina      int
	StaminaMax   int
	Caught       map[string]int
	Elapsed      time.Duration
	TimeLimit    time.Duration
	Over         bool
	Win          bool
	FinalWin     bool

	Rig     RigView
	Fish    []FishView
	Bubbles []BubbleView
}

// Snapshot copies the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	level := g.director.Level()
	hookedID, hooked := g.rig.Hooked()

	s := Snapshot{
		Field:   g.field,
		Stage:   g.director.Stage(),
		Message: g.director.Message(),
		ResetIn: g.director.ResetIn(),

		Level:        level.Number,
		LevelCount:   g.tables.LevelCount(),
		TargetScore:  level.TargetScore,
		LevelSpecies: g.tables.LevelSpecies(level.Number),
		Score:        g.run.Score,
		Stamina:      g.run.Stamina,
		StaminaMax:   g.run.StaminaMax,
		Caught:       g.run.CatchCounts(),
		Elapsed:      g.run.Elapsed,
		TimeLimit:    g.director.TimeLimit(),
		Over:         g.run.Over,
		Win:          g.run.Win,
		FinalWin:     g.run.FinalWin,

		Rig: RigView{
			Phase:      g.rig.Phase(),
			BoatX:      g.rig.BoatX(),
			Depth:      g.rig.Depth(),
			HookX:      g.rig.HookX(),
			HookY:      g.rig.HookY(),
			Tension:    g.rig.Tension(),
			MaxTension: g.tuning.MaxTension,
			Hooked:     hooked,
			HookedID:   hookedID,
		},
		Fish:    make([]FishView, 0, len(g.pool.Fish())),
		Bubbles: make([]BubbleView, 0, len(g.pool.Bubbles())),
	}
	for _, f := range g.pool.Fish() {
		s.Fish = append(s.Fish, FishView{
			ID:        f.ID,
			Species:   f.Species.Name,
			Value:     f.Species.Value,
			Protected: f.Species.Protected,
			X:         f.X,
			Y:         f.Y,
			Size:      f.Size,
			Speed:     f.Speed,
			Hooked:    f.Hooked,
		})
	}
	for _, b := range g.pool.Bubbles() {
		s.Bubbles = append(s.Bubbles, BubbleView{X: b.X, Y: b.Y, Radius: b.Radius})
	}
	return s
}
