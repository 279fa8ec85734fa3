package config

import (
	"errors"
	"fmt"

	"github.com/adrg/xdg"

	"github.com/tomz197/lakeside/internal/catalog"
	"github.com/tomz197/lakeside/internal/sim"
)

// Environment variables read by the commands.
const (
	EnvTables        = "LAKESIDE_TABLES"
	EnvTimeLimit     = "LAKESIDE_TIME_LIMIT"
	EnvSpawnInterval = "LAKESIDE_SPAWN_INTERVAL"
	EnvLogLevel      = "LAKESIDE_LOG_LEVEL"
	EnvLogFormat     = "LAKESIDE_LOG_FORMAT"
)

// tablesFile is searched for in the XDG config directories.
const tablesFile = "lakeside/tables.yaml"

// EmbeddedTables is the source reported when no tables file is found.
const EmbeddedTables = "embedded defaults"

// TablesPath returns the tables file to load: $LAKESIDE_TABLES if set,
// otherwise lakeside/tables.yaml in the XDG config dirs. It returns "" when
// neither exists.
func TablesPath() string {
	if path := GetEnv(EnvTables, ""); path != "" {
		return path
	}
	path, err := xdg.SearchConfigFile(tablesFile)
	if err != nil {
		return ""
	}
	return path
}

// LoadTables loads the species and level tables and reports where they came
// from.
func LoadTables() (*catalog.Tables, string, error) {
	path := TablesPath()
	if path == "" {
		return catalog.Default(), EmbeddedTables, nil
	}
	tables, err := catalog.LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return tables, path, nil
}

// LoadTuning returns the default tuning with environment overrides applied.
func LoadTuning() (sim.Tuning, error) {
	tuning := sim.DefaultTuning()

	var errs []error
	var err error
	if tuning.TimeLimit, err = GetEnvDuration(EnvTimeLimit, tuning.TimeLimit); err != nil {
		errs = append(errs, err)
	}
	if tuning.SpawnInterval, err = GetEnvDuration(EnvSpawnInterval, tuning.SpawnInterval); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return tuning, fmt.Errorf("tuning: %w", errors.Join(errs...))
	}
	return tuning, nil
}
