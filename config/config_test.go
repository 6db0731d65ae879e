package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/swarm/particles"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 {
		t.Errorf("screen = %dx%d, want 1280x720", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Derived.WorldW32 != 1280 || cfg.Derived.WorldH32 != 720 {
		t.Errorf("world should default to screen size, got %vx%v", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
	if cfg.Derived.Background != particles.Black {
		t.Errorf("background = %v, want %v", cfg.Derived.Background, particles.Black)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("DT32 = %v, want > 0", cfg.Derived.DT32)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("spawner:\n  batch: 7\nscreen:\n  background: \"#5293e2e2\"\nworld:\n  width: 4000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Spawner.Batch != 7 {
		t.Errorf("batch = %d, want 7", cfg.Spawner.Batch)
	}
	if cfg.Spawner.Interval != 0.2 {
		t.Errorf("interval = %v, want default 0.2", cfg.Spawner.Interval)
	}
	if cfg.Derived.Background != 0x5293E2E2 {
		t.Errorf("background = %v, want #5293E2E2", cfg.Derived.Background)
	}
	if cfg.Derived.WorldW32 != 4000 || cfg.Derived.WorldH32 != 720 {
		t.Errorf("world = %vx%v, want 4000x720", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("screen:\n  background: \"#nothex\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid background color")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Spawner.Batch = 3
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Spawner.Batch != 3 {
		t.Errorf("batch = %d, want 3", loaded.Spawner.Batch)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
