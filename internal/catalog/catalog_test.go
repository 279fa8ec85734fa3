package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	tables := Default()

	if got := tables.LevelCount(); got != 3 {
		t.Fatalf("LevelCount() = %d; want 3", got)
	}

	small, ok := tables.Lookup("小鱼")
	if !ok {
		t.Fatal("Lookup(小鱼) not found")
	}
	if small.Value != 5 || small.Size != 14 || small.SpeedMin != 1.2 || small.SpeedMax != 2.2 {
		t.Errorf("小鱼 = %+v; want value 5, size 14, speed [1.2, 2.2]", small)
	}

	protected, ok := tables.Lookup("保护鱼类1")
	if !ok {
		t.Fatal("Lookup(保护鱼类1) not found")
	}
	if !protected.Protected || protected.Value != -20 {
		t.Errorf("保护鱼类1 = %+v; want protected with value -20", protected)
	}

	want := []struct {
		target, stamina, species int
	}{
		{100, 9, 2},
		{150, 12, 3},
		{200, 15, 4},
	}
	for i, w := range want {
		l, ok := tables.Level(i + 1)
		if !ok {
			t.Fatalf("Level(%d) not found", i+1)
		}
		if l.TargetScore != w.target || l.StaminaMax != w.stamina || len(l.Species) != w.species {
			t.Errorf("Level(%d) = %+v; want target %d stamina %d with %d species", i+1, l, w.target, w.stamina, w.species)
		}
	}
}

func TestTablesReturnCopies(t *testing.T) {
	tables := Default()

	l, _ := tables.Level(1)
	l.Species[0] = "mutated"
	again, _ := tables.Level(1)
	if again.Species[0] == "mutated" {
		t.Error("Level() exposed internal species slice")
	}

	all := tables.Species()
	all[0].Value = 999
	s, _ := tables.Lookup(all[0].Name)
	if s.Value == 999 {
		t.Error("Species() exposed internal slice")
	}
}

func TestLevelSpecies(t *testing.T) {
	tables := Default()

	got := tables.LevelSpecies(2)
	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	if strings.Join(names, ",") != "小鱼,大鱼,保护鱼类1" {
		t.Errorf("LevelSpecies(2) = %v", names)
	}
	if got := tables.LevelSpecies(9); got != nil {
		t.Errorf("LevelSpecies(9) = %v; want nil", got)
	}
}

func TestNewRejectsInvalidTables(t *testing.T) {
	good := []Species{{Name: "a", Value: 1, SpeedMin: 1, SpeedMax: 2, Size: 10}}
	goodLevels := []Level{{Number: 1, TargetScore: 10, Species: []string{"a"}, StaminaMax: 3}}

	tests := []struct {
		name    string
		species []Species
		levels  []Level
		want    string
	}{
		{"no species", nil, goodLevels, "no species"},
		{"no levels", good, nil, "no levels"},
		{"duplicate species", append(good, good[0]), goodLevels, "defined twice"},
		{"missing name", []Species{{Value: 1, SpeedMin: 1, SpeedMax: 1, Size: 1}}, goodLevels, "missing name"},
		{"inverted speed", []Species{{Name: "a", SpeedMin: 3, SpeedMax: 1, Size: 1}}, goodLevels, "bad speed range"},
		{"zero size", []Species{{Name: "a", SpeedMin: 1, SpeedMax: 1}}, goodLevels, "size must be positive"},
		{"unknown species", good, []Level{{Number: 1, Species: []string{"b"}, StaminaMax: 1}}, "unknown species"},
		{"gap in levels", good, []Level{{Number: 2, Species: []string{"a"}, StaminaMax: 1}}, "without gaps"},
		{"zero stamina", good, []Level{{Number: 1, Species: []string{"a"}}}, "stamina must be at least 1"},
		{"empty species list", good, []Level{{Number: 1, StaminaMax: 1}}, "no species allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.species, tt.levels)
			if err == nil {
				t.Fatal("New() = nil error; want error")
			}
			if !errors.Is(err, ErrInvalidTables) {
				t.Errorf("error %v does not wrap ErrInvalidTables", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNewSortsLevels(t *testing.T) {
	species := []Species{{Name: "a", SpeedMin: 1, SpeedMax: 1, Size: 1}}
	levels := []Level{
		{Number: 2, TargetScore: 20, Species: []string{"a"}, StaminaMax: 2},
		{Number: 1, TargetScore: 10, Species: []string{"a"}, StaminaMax: 1},
	}
	tables, err := New(species, levels)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l, _ := tables.Level(1)
	if l.TargetScore != 10 {
		t.Errorf("Level(1).TargetScore = %d; want 10", l.TargetScore)
	}
}

func TestLoadReportsMissingKeys(t *testing.T) {
	doc := `
species:
  - name: minnow
    speed: [1, 2]
levels:
  - level: 1
    species: [minnow]
`
	_, err := Load(strings.NewReader(doc))
	if !errors.Is(err, ErrInvalidTables) {
		t.Fatalf("Load() error = %v; want ErrInvalidTables", err)
	}
	for _, want := range []string{`"value"`, `"size"`, `"target_score"`, `"stamina"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	doc := `
species:
  - name: minnow
    value: 1
    speed: [1, 2]
    size: 3
    colour: red
levels:
  - level: 1
    target_score: 5
    species: [minnow]
    stamina: 2
`
	if _, err := Load(strings.NewReader(doc)); !errors.Is(err, ErrInvalidTables) {
		t.Fatalf("Load() error = %v; want ErrInvalidTables", err)
	}
}

func TestLoadRejectsEmptyDocument(t *testing.T) {
	if _, err := Load(strings.NewReader("")); !errors.Is(err, ErrInvalidTables) {
		t.Fatalf("Load(\"\") error = %v; want ErrInvalidTables", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	doc := `
species:
  - name: minnow
    value: 3
    speed: [1, 2]
    size: 8
levels:
  - level: 1
    target_score: 9
    species: [minnow]
    stamina: 4
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	l, _ := tables.Level(1)
	if l.StaminaMax != 4 || l.TargetScore != 9 {
		t.Errorf("Level(1) = %+v", l)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) = nil error")
	}
}
