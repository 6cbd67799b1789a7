package config

// Presets are common connection geometries, keyed by name. Spacings
// follow the usual 3 in. gage/pitch unless noted.
var Presets = map[string]*Config{
	"single": {
		Pattern: PatternConfig{Rows: 1, Cols: 1, RowSpacing: 3.0, ColSpacing: 3.0},
		Load:    LoadConfig{Eccentricity: 3.0},
	},
	"pair": {
		Pattern: PatternConfig{Rows: 2, Cols: 1, RowSpacing: 3.0, ColSpacing: 3.0},
		Load:    LoadConfig{Eccentricity: 3.0},
	},
	"shear-tab": {
		Pattern: PatternConfig{Rows: 4, Cols: 1, RowSpacing: 3.0, ColSpacing: 3.0},
		Load:    LoadConfig{Eccentricity: 3.0},
	},
	"bracket-2x3": {
		Pattern: PatternConfig{Rows: 2, Cols: 3, RowSpacing: 3.0, ColSpacing: 3.0},
		Load:    LoadConfig{Eccentricity: 6.0},
	},
	"splice-4x2": {
		Pattern: PatternConfig{Rows: 4, Cols: 2, RowSpacing: 3.0, ColSpacing: 3.0},
		Load:    LoadConfig{Eccentricity: 6.0},
	},
	"gusset-5x2": {
		Pattern: PatternConfig{Rows: 5, Cols: 2, RowSpacing: 3.0, ColSpacing: 5.5},
		Load:    LoadConfig{Eccentricity: 8.0},
	},
}

func GetPreset(name string) *Config {
	base, ok := Presets[name]
	if !ok {
		return nil
	}
	// Presets only pin pattern and load; solver settings stay default.
	cfg := DefaultConfig()
	cfg.Pattern = base.Pattern
	cfg.Load = base.Load
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
