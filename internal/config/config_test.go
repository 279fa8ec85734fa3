package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("LAKESIDE_TEST_VALUE", "set")
	if got := GetEnv("LAKESIDE_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv() = %q; want set", got)
	}
	if got := GetEnv("LAKESIDE_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q; want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LAKESIDE_TEST_INT", "42")
	if got, err := GetEnvInt("LAKESIDE_TEST_INT", 1); err != nil || got != 42 {
		t.Errorf("GetEnvInt() = %d, %v; want 42", got, err)
	}

	t.Setenv("LAKESIDE_TEST_INT", "many")
	if got, err := GetEnvInt("LAKESIDE_TEST_INT", 1); err == nil || got != 1 {
		t.Errorf("GetEnvInt(malformed) = %d, %v; want fallback and error", got, err)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"", time.Second, false},
		{"1.5s", 1500 * time.Millisecond, false},
		{"soon", time.Second, true},
		{"-3s", time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("LAKESIDE_TEST_DURATION", tt.value)
			got, err := GetEnvDuration("LAKESIDE_TEST_DURATION", time.Second)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("GetEnvDuration(%q) = %v, %v; want %v, error %v", tt.value, got, err, tt.want, tt.wantErr)
			}
		})
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	t.Setenv(EnvTimeLimit, "90s")
	t.Setenv(EnvSpawnInterval, "")

	tuning, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning() error: %v", err)
	}
	if tuning.TimeLimit != 90*time.Second {
		t.Errorf("TimeLimit = %v; want 90s", tuning.TimeLimit)
	}
	if tuning.SpawnInterval != 1400*time.Millisecond {
		t.Errorf("SpawnInterval = %v; want 1.4s", tuning.SpawnInterval)
	}

	t.Setenv(EnvSpawnInterval, "often")
	if _, err := LoadTuning(); err == nil {
		t.Error("LoadTuning() with malformed interval = nil error")
	}
}

func TestLoadTables(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	t.Setenv(EnvTables, "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	tables, source, err := LoadTables()
	if err != nil {
		t.Fatalf("LoadTables() error: %v", err)
	}
	if source != EmbeddedTables || tables.LevelCount() != 3 {
		t.Errorf("LoadTables() = %d levels from %q; want embedded defaults", tables.LevelCount(), source)
	}

	doc := `
species:
  - name: minnow
    value: 1
    speed: [1, 2]
    size: 8
levels:
  - level: 1
    target_score: 3
    species: [minnow]
    stamina: 5
`
	path := filepath.Join(configHome, "lakeside", "tables.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tables, source, err = LoadTables()
	if err != nil {
		t.Fatalf("LoadTables() error: %v", err)
	}
	if source != path || tables.LevelCount() != 1 {
		t.Errorf("LoadTables() = %d levels from %q; want 1 from %q", tables.LevelCount(), source, path)
	}

	t.Setenv(EnvTables, filepath.Join(configHome, "missing.yaml"))
	if _, _, err := LoadTables(); err == nil {
		t.Error("LoadTables() with missing explicit file = nil error")
	}
}
