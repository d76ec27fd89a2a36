package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	before := *cfg
	cfg.Validate()
	if *cfg != before {
		t.Error("defaults should survive validation unchanged")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Undo.MergeWindowMS != 1000 {
		t.Errorf("MergeWindowMS = %d, want default 1000", cfg.Undo.MergeWindowMS)
	}
}

func TestLoadOverridesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.toml")
	data := `
[scroll]
smooth = false
wheel_lines = 500

[undo]
merge_window_ms = 5
max_entries = 200
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scroll.Smooth {
		t.Error("smooth should be overridden to false")
	}
	if cfg.Scroll.WheelLines != 20 {
		t.Errorf("WheelLines = %d, want clamped 20", cfg.Scroll.WheelLines)
	}
	if cfg.Undo.MergeWindowMS != 100 {
		t.Errorf("MergeWindowMS = %d, want clamped 100", cfg.Undo.MergeWindowMS)
	}
	if cfg.Undo.MaxEntries != 200 {
		t.Errorf("MaxEntries = %d, want 200", cfg.Undo.MaxEntries)
	}
	// Untouched sections keep their defaults.
	if cfg.Layout.MaxCachedParagraphs != 150 {
		t.Errorf("MaxCachedParagraphs = %d, want default 150", cfg.Layout.MaxCachedParagraphs)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed TOML should fail")
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	if err := os.WriteFile(path, []byte("[scroll]\nwheel_lines = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 1)
	w, err := Watch(path, func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[scroll]\nwheel_lines = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Scroll.WheelLines != 7 {
			t.Errorf("WheelLines = %d, want 7", cfg.Scroll.WheelLines)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload within timeout")
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")

	reloaded := make(chan *Config, 1)
	w, err := Watch(path, func(c *Config) { reloaded <- c })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Error("sibling file change should not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
