package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Database.Path == "" {
		t.Error("default database path is empty")
	}
	if config.Playback.FPS < 1 {
		t.Errorf("default fps must be at least 1, got %d", config.Playback.FPS)
	}
	if len(config.Playback.FPSPresets) == 0 {
		t.Error("default config has no fps presets")
	}
	if config.Playback.PollIntervalMS <= 0 {
		t.Errorf("default poll interval must be positive, got %d", config.Playback.PollIntervalMS)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses overrides", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := `
[database]
path = "custom.db"

[playback]
fps = 120
rate = 0.5

[share]
copy_on_save = true
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "custom.db" {
			t.Errorf("expected custom.db, got %q", config.Database.Path)
		}
		if config.Playback.FPS != 120 {
			t.Errorf("expected fps 120, got %d", config.Playback.FPS)
		}
		if !config.Share.CopyOnSave {
			t.Error("expected copy_on_save true")
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("invalid toml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[database\npath="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid toml")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}

	// A second create must refuse to overwrite.
	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error creating config over an existing file")
	}
}

func TestMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}

	// Running twice must be a no-op.
	if err := RunMigrations(db); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}

	if _, err := db.Exec("INSERT INTO storage (key, value) VALUES ('k', 'v')"); err != nil {
		t.Errorf("storage table unusable: %v", err)
	}

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO storage (key, value) VALUES ('k2', 'v')"); err == nil {
		t.Error("storage table still present after rollback")
	}
}
