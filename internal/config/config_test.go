package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "metropolis" {
		t.Errorf("expected algorithm metropolis, got %s", cfg.Algorithm)
	}
	if cfg.Size <= 0 {
		t.Error("size should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("algorithm: wolff\nsize: 16\nt: 2.5\nsave_config: true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Algorithm != "wolff" || cfg.Size != 16 || cfg.T != 2.5 || !cfg.SaveConfig {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.J != DefaultJ {
		t.Errorf("expected default J %f, got %f", DefaultJ, cfg.J)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := `
algorithm = "wolff"
size = 24
j = 0.5
iterations = 42

[scan]
t_min = 2.0
t_max = 3.0
steps = 3
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Size != 24 || cfg.J != 0.5 || cfg.Iterations != 42 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.T != DefaultT {
		t.Errorf("expected default T %f, got %f", DefaultT, cfg.T)
	}
	if cfg.Scan.Steps != 3 {
		t.Errorf("expected 3 scan steps, got %d", cfg.Scan.Steps)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("size: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error, got nil")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"cfg.yaml", "cfg.toml"} {
		path := filepath.Join(t.TempDir(), name)
		cfg := DefaultConfig()
		cfg.Algorithm = "wolff"
		cfg.Seed = 99

		if err := Save(path, cfg); err != nil {
			t.Fatalf("%s: save failed: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: load failed: %v", name, err)
		}
		if *got != *cfg {
			t.Errorf("%s: round trip mismatch: got %+v, want %+v", name, got, cfg)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Size = 0 }},
		{"negative k", func(c *Config) { c.K = -1 }},
		{"zero temperature", func(c *Config) { c.T = 0 }},
		{"negative iterations", func(c *Config) { c.Iterations = -1 }},
		{"negative burnin", func(c *Config) { c.Burnin = -5 }},
		{"zero scan minimum", func(c *Config) { c.Scan.TMin = 0 }},
		{"negative scan maximum", func(c *Config) { c.Scan.TMax = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidateIgnoresEmptyScan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan = ScanConfig{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected empty scan grid to pass, got %v", err)
	}
}

func TestTemperatures(t *testing.T) {
	temps := ScanConfig{TMin: 1, TMax: 3, Steps: 5}.Temperatures()
	want := []float64{1, 1.5, 2, 2.5, 3}
	if len(temps) != len(want) {
		t.Fatalf("expected %d temperatures, got %d", len(want), len(temps))
	}
	for i := range want {
		if temps[i] != want[i] {
			t.Errorf("temps[%d] = %f, want %f", i, temps[i], want[i])
		}
	}

	if got := (ScanConfig{TMin: 2, Steps: 1}).Temperatures(); len(got) != 1 || got[0] != 2 {
		t.Errorf("single step grid = %v", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("wolff", "critical")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Algorithm != "wolff" {
		t.Errorf("expected algorithm wolff, got %s", cfg.Algorithm)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("metropolis", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "ordered"); cfg != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestListPresets(t *testing.T) {
	for _, alg := range []string{"metropolis", "wolff"} {
		if len(ListPresets(alg)) == 0 {
			t.Errorf("expected presets for %s", alg)
		}
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}
