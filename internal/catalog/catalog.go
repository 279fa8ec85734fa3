// Package catalog holds the static species and level tables.
//
// Tables are immutable once built. Use New to build them from Go values,
// Load/LoadFile to decode them from YAML, or Default for the built-in set.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTables is wrapped by every validation error returned from New,
// Load and LoadFile.
var ErrInvalidTables = errors.New("invalid species/level tables")

// Species describes one kind of fish.
type Species struct {
	Name      string
	Value     int     // Signed score delta applied when landed
	SpeedMin  float64 // Pixels per reference frame
	SpeedMax  float64
	Size      float64 // Collision half-extent and body height
	Protected bool    // Protected fish carry a negative value
}

// Level describes one level of the progression.
type Level struct {
	Number      int // 1-based
	TargetScore int
	Species     []string // Names of the species that spawn on this level
	StaminaMax  int      // Casts available for one attempt
}

// Tables is a validated, read-only set of species and levels.
type Tables struct {
	species []Species
	byName  map[string]int
	levels  []Level
}

// New validates species and levels and returns the resulting tables.
// Levels may be given in any order but must be numbered 1..N without gaps.
func New(species []Species, levels []Level) (*Tables, error) {
	var problems []error

	if len(species) == 0 {
		problems = append(problems, errors.New("no species defined"))
	}
	byName := make(map[string]int, len(species))
	for i, s := range species {
		if s.Name == "" {
			problems = append(problems, fmt.Errorf("species #%d: missing name", i+1))
			continue
		}
		if _, dup := byName[s.Name]; dup {
			problems = append(problems, fmt.Errorf("species %q: defined twice", s.Name))
			continue
		}
		byName[s.Name] = i
		if s.SpeedMin < 0 || s.SpeedMax < s.SpeedMin {
			problems = append(problems, fmt.Errorf("species %q: bad speed range [%g, %g]", s.Name, s.SpeedMin, s.SpeedMax))
		}
		if s.Size <= 0 {
			problems = append(problems, fmt.Errorf("species %q: size must be positive, got %g", s.Name, s.Size))
		}
	}

	if len(levels) == 0 {
		problems = append(problems, errors.New("no levels defined"))
	}
	sorted := make([]Level, len(levels))
	for i, l := range levels {
		sorted[i] = Level{
			Number:      l.Number,
			TargetScore: l.TargetScore,
			Species:     slices.Clone(l.Species),
			StaminaMax:  l.StaminaMax,
		}
	}
	slices.SortFunc(sorted, func(a, b Level) int { return a.Number - b.Number })
	for i, l := range sorted {
		if l.Number != i+1 {
			problems = append(problems, fmt.Errorf("level %d: levels must be numbered 1..%d without gaps", l.Number, len(sorted)))
		}
		if l.TargetScore < 0 {
			problems = append(problems, fmt.Errorf("level %d: negative target score %d", l.Number, l.TargetScore))
		}
		if l.StaminaMax < 1 {
			problems = append(problems, fmt.Errorf("level %d: stamina must be at least 1, got %d", l.Number, l.StaminaMax))
		}
		if len(l.Species) == 0 {
			problems = append(problems, fmt.Errorf("level %d: no species allowed", l.Number))
		}
		for _, name := range l.Species {
			if _, ok := byName[name]; !ok {
				problems = append(problems, fmt.Errorf("level %d: unknown species %q", l.Number, name))
			}
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, errors.Join(problems...))
	}
	return &Tables{
		species: slices.Clone(species),
		byName:  byName,
		levels:  sorted,
	}, nil
}

// Species returns every species in declaration order.
func (t *Tables) Species() []Species {
	return slices.Clone(t.species)
}

// Lookup returns the species with the given name.
func (t *Tables) Lookup(name string) (Species, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Species{}, false
	}
	return t.species[i], true
}

// Levels returns every level ordered by number.
func (t *Tables) Levels() []Level {
	out := make([]Level, len(t.levels))
	for i, l := range t.levels {
		out[i] = l
		out[i].Species = slices.Clone(l.Species)
	}
	return out
}

// Level returns level n (1-based).
func (t *Tables) Level(n int) (Level, bool) {
	if n < 1 || n > len(t.levels) {
		return Level{}, false
	}
	l := t.levels[n-1]
	l.Species = slices.Clone(l.Species)
	return l, true
}

// LevelCount returns the number of levels; the last one is the final level.
func (t *Tables) LevelCount() int {
	return len(t.levels)
}

// LevelSpecies resolves the species allowed on level n.
func (t *Tables) LevelSpecies(n int) []Species {
	l, ok := t.Level(n)
	if !ok {
		return nil
	}
	out := make([]Species, 0, len(l.Species))
	for _, name := range l.Species {
		out = append(out, t.species[t.byName[name]])
	}
	return out
}
