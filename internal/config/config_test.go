// ABOUTME: Tests for liftlog configuration management.
// ABOUTME: Covers load, save, env overrides, backend selection, fallback, and path expansion.
package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/liftlog/internal/storage"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != BackendAuto {
		t.Errorf("GetBackend() = %q, want %q", got, BackendAuto)
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: BackendKV}
	if got := cfg.GetBackend(); got != BackendKV {
		t.Errorf("GetBackend() = %q, want %q", got, BackendKV)
	}
}

func TestGetDataDirDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := &Config{}
	if got := cfg.GetDataDir(); got != "/tmp/xdg-data/liftlog" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/xdg-data/liftlog")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/liftlog-test"}
	if got := cfg.GetDataDir(); got != "/tmp/liftlog-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/liftlog-test")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/lifts", filepath.Join(home, "lifts")},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendAuto || cfg.LogLevel != "info" || cfg.KVSync {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{Backend: BackendSQLite, DataDir: "~/lifts", KVSync: true, LogLevel: "debug"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("config is not JSON: %v", err)
	}
	if raw["backend"] != BackendSQLite {
		t.Errorf("Expected backend in file, got %v", raw["backend"])
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Backend != BackendSQLite || loaded.DataDir != "~/lifts" || !loaded.KVSync || loaded.LogLevel != "debug" {
		t.Errorf("Loaded config mismatch: %+v", loaded)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := (&Config{Backend: BackendSQLite}).Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	t.Setenv("LIFTLOG_BACKEND", BackendKV)
	t.Setenv("LIFTLOG_KV_SYNC", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendKV || !cfg.KVSync {
		t.Errorf("Expected env overrides, got %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { os.Unsetenv("LIFTLOG_LOG_LEVEL") })

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LIFTLOG_LOG_LEVEL=trace\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "trace" {
		t.Errorf("Expected log level from .env, got %q", cfg.LogLevel)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid config JSON")
	}
}

func TestSet(t *testing.T) {
	cfg := &Config{}

	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"backend", "sqlite", false},
		{"backend", "postgres", true},
		{"kv_sync", "yes", true},
		{"kv_sync", "true", false},
		{"data_dir", "/tmp/lifts", false},
		{"log_level", "debug", false},
		{"colour", "blue", true},
	}

	for _, tt := range tests {
		err := cfg.Set(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}

	if cfg.Backend != BackendSQLite || !cfg.KVSync || cfg.DataDir != "/tmp/lifts" {
		t.Errorf("Unexpected config after Set: %+v", cfg)
	}
}

func TestOpenStorageBackends(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		cfg := &Config{Backend: BackendSQLite, DataDir: t.TempDir()}
		b, err := cfg.OpenStorage(ctx)
		if err != nil {
			t.Fatalf("OpenStorage failed: %v", err)
		}
		defer b.Close()
		if _, ok := b.(*storage.DB); !ok {
			t.Errorf("Expected *storage.DB, got %T", b)
		}
		if _, err := os.Stat(filepath.Join(cfg.DataDir, "liftlog.db")); err != nil {
			t.Errorf("Expected database file: %v", err)
		}
	})

	t.Run("kv", func(t *testing.T) {
		cfg := &Config{Backend: BackendKV, DataDir: t.TempDir()}
		b, err := cfg.OpenStorage(ctx)
		if err != nil {
			t.Fatalf("OpenStorage failed: %v", err)
		}
		defer b.Close()
		if b.Capabilities().ExerciseDetail {
			t.Error("Expected kv backend without exercise detail")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := &Config{Backend: "markdown"}
		if _, err := cfg.OpenStorage(ctx); err == nil {
			t.Error("Expected error for unknown backend")
		}
	})
}

func TestOpenStorageAutoFallsBackToKV(t *testing.T) {
	dataDir := t.TempDir()
	// A directory where the database file should be makes SQLite fail.
	if err := os.Mkdir(filepath.Join(dataDir, "liftlog.db"), 0750); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Backend: BackendAuto, DataDir: dataDir}
	b, err := cfg.OpenStorage(context.Background())
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer b.Close()

	if _, ok := b.(*storage.KVStore); !ok {
		t.Errorf("Expected fallback to *storage.KVStore, got %T", b)
	}
}

func TestOpenStorageAutoBothFail(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{DataDir: file}
	if _, err := cfg.OpenStorage(context.Background()); err == nil {
		t.Error("Expected error when neither backend can open")
	}
}
