package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pattern.Rows < 1 || cfg.Pattern.Cols < 1 {
		t.Error("default pattern must have at least one fastener")
	}
	if cfg.Pattern.RowSpacing <= 0 || cfg.Pattern.ColSpacing <= 0 {
		t.Error("default spacings should be positive")
	}
	if cfg.Solver.MaxIterations != 5000 {
		t.Errorf("expected default iteration cap 5000, got %d", cfg.Solver.MaxIterations)
	}
	if _, err := cfg.GeomPattern(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern.Rows = 4
	cfg.Pattern.ColSpacing = 5.5
	cfg.Load.Eccentricity = 9.0
	cfg.Load.Rotation = 15.0

	path := filepath.Join(t.TempDir(), "connection.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Pattern.Rows != 4 {
		t.Errorf("expected rows 4, got %d", loaded.Pattern.Rows)
	}
	if loaded.Pattern.ColSpacing != 5.5 {
		t.Errorf("expected col spacing 5.5, got %f", loaded.Pattern.ColSpacing)
	}
	if loaded.Load.Eccentricity != 9.0 {
		t.Errorf("expected eccentricity 9.0, got %f", loaded.Load.Eccentricity)
	}
	if loaded.Load.Rotation != 15.0 {
		t.Errorf("expected rotation 15.0, got %f", loaded.Load.Rotation)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("bracket-2x3")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Pattern.Rows != 2 || cfg.Pattern.Cols != 3 {
		t.Errorf("expected 2x3 pattern, got %dx%d", cfg.Pattern.Rows, cfg.Pattern.Cols)
	}
	if cfg.Solver.MaxIterations != 5000 {
		t.Error("preset should carry default solver settings")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}

func TestPresetsValidate(t *testing.T) {
	for name := range Presets {
		cfg := GetPreset(name)
		if _, err := cfg.GeomPattern(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}

func TestSolverOptionsFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = SolverConfig{} // all zero

	opts := cfg.SolverOptions()
	if opts.Tolerance != 1e-5 || opts.MaxIterations != 5000 {
		t.Errorf("zero solver config should fall back to defaults, got %+v", opts)
	}

	cfg.Solver.MaxIterations = 100
	if got := cfg.SolverOptions().MaxIterations; got != 100 {
		t.Errorf("expected override 100, got %d", got)
	}
}

func TestGeomPatternInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern.Rows = 0

	if _, err := cfg.GeomPattern(); err == nil {
		t.Error("expected validation error for zero rows")
	}
}
