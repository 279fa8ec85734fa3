package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultTables []byte

// fileTables mirrors the YAML layout. Pointer fields distinguish a missing
// key from a zero value.
type fileTables struct {
	Species []fileSpecies `yaml:"species"`
	Levels  []fileLevel   `yaml:"levels"`
}

type fileSpecies struct {
	Name      string    `yaml:"name"`
	Value     *int      `yaml:"value"`
	Speed     []float64 `yaml:"speed"`
	Size      *float64  `yaml:"size"`
	Protected bool      `yaml:"protected"`
}

type fileLevel struct {
	Level       *int     `yaml:"level"`
	TargetScore *int     `yaml:"target_score"`
	Species     []string `yaml:"species"`
	Stamina     *int     `yaml:"stamina"`
}

// Default returns the built-in tables.
func Default() *Tables {
	t, err := Load(bytes.NewReader(defaultTables))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded tables are invalid: %v", err))
	}
	return t
}

// LoadFile decodes tables from a YAML file.
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tables: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Load decodes tables from YAML. Unknown keys and missing required keys are
// reported as ErrInvalidTables.
func Load(r io.Reader) (*Tables, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw fileTables
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTables)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}

	var problems []error
	species := make([]Species, 0, len(raw.Species))
	for i, fs := range raw.Species {
		label := fs.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		s := Species{Name: fs.Name, Protected: fs.Protected}
		if fs.Value == nil {
			problems = append(problems, fmt.Errorf("species %s: missing key \"value\"", label))
		} else {
			s.Value = *fs.Value
		}
		switch len(fs.Speed) {
		case 0:
			problems = append(problems, fmt.Errorf("species %s: missing key \"speed\"", label))
		case 2:
			s.SpeedMin, s.SpeedMax = fs.Speed[0], fs.Speed[1]
		default:
			problems = append(problems, fmt.Errorf("species %s: speed must be [min, max], got %d values", label, len(fs.Speed)))
		}
		if fs.Size == nil {
			problems = append(problems, fmt.Errorf("species %s: missing key \"size\"", label))
		} else {
			s.Size = *fs.Size
		}
		species = append(species, s)
	}

	levels := make([]Level, 0, len(raw.Levels))
	for i, fl := range raw.Levels {
		l := Level{Species: fl.Species}
		if fl.Level == nil {
			problems = append(problems, fmt.Errorf("levels entry #%d: missing key \"level\"", i+1))
			continue
		}
		l.Number = *fl.Level
		if fl.TargetScore == nil {
			problems = append(problems, fmt.Errorf("level %d: missing key \"target_score\"", l.Number))
		} else {
			l.TargetScore = *fl.TargetScore
		}
		if fl.Stamina == nil {
			problems = append(problems, fmt.Errorf("level %d: missing key \"stamina\"", l.Number))
		} else {
			l.StaminaMax = *fl.Stamina
		}
		levels = append(levels, l)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, errors.Join(problems...))
	}
	return New(species, levels)
}
