package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.TickRate != 33 {
		t.Errorf("expected ~30 fps tick, got %d ms", cfg.TickRate)
	}
	if cfg.Simulation.Min != 20 || cfg.Simulation.Max != 95 {
		t.Errorf("unexpected simulation range %+v", cfg.Simulation)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Theme != DefaultConfig().Theme {
		t.Errorf("expected defaults, got theme %q", cfg.Theme)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	data := []byte("theme: phosphor\nseed: 42\nsimulation:\n  max: 80\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Theme != "phosphor" || cfg.Seed != 42 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Simulation.Max != 80 || cfg.Simulation.Min != 20 {
		t.Errorf("nested defaults lost: %+v", cfg.Simulation)
	}
	if cfg.TickRate != 33 {
		t.Errorf("unset tick rate should keep default, got %d", cfg.TickRate)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"bad tick", "tick_rate: 1\n", ErrInvalidTickRate},
		{"bad theme", "theme: disco\n", ErrUnknownTheme},
		{"bad simulation", "simulation:\n  min: 90\n  max: 10\n", ErrInvalidSimulation},
		{"bad layout", "layout:\n  top_height: 1.5\n", ErrInvalidLayout},
		{"nan step", "simulation:\n  step: .nan\n", ErrInvalidSimulation},
		{"infinite max", "simulation:\n  max: .inf\n", ErrInvalidSimulation},
		{"nan start", "simulation:\n  start: .nan\n", ErrInvalidSimulation},
		{"nan layout", "layout:\n  reactor_width: .nan\n", ErrInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadConfig(path)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if cfg == nil || cfg.Validate() != nil {
				t.Error("defaults should be returned alongside the error")
			}
		})
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Sound = true
	cfg.StressWorkers = 4

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !loaded.Sound || loaded.StressWorkers != 4 {
		t.Errorf("saved values not restored: %+v", loaded)
	}

	cfg.TickRate = 0
	if err := SaveConfig(cfg, path); !errors.Is(err, ErrInvalidTickRate) {
		t.Errorf("expected validation error, got %v", err)
	}
}
