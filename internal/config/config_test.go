package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"precision32": 1e-5, "tolerance_mode": "absolute"}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Precision32 != 1e-5 {
		t.Errorf("Precision32 = %v, want 1e-5", cfg.Precision32)
	}
	if cfg.ToleranceMode != "absolute" {
		t.Errorf("ToleranceMode = %q, want \"absolute\"", cfg.ToleranceMode)
	}
	if cfg.Precision64 != 0 {
		t.Errorf("Precision64 = %v, want 0 (unset)", cfg.Precision64)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"precision32":`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid JSON, got nil")
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"tolerance_mode": "logarithmic"}`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected schema validation error, got nil")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"precision32": 2e-5}`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if cfg.Precision32 != 2e-5 {
		t.Errorf("Precision32 = %v, want 2e-5", cfg.Precision32)
	}
	if cfg.Precision64 != DefaultPrecision64 {
		t.Errorf("Precision64 = %v, want default %v", cfg.Precision64, DefaultPrecision64)
	}
	if cfg.ToleranceMode != DefaultToleranceMode {
		t.Errorf("ToleranceMode = %q, want default %q", cfg.ToleranceMode, DefaultToleranceMode)
	}
	if cfg.NaNEqualsNaN == nil || *cfg.NaNEqualsNaN != DefaultNaNEqualsNaN {
		t.Errorf("NaNEqualsNaN = %v, want default %v", cfg.NaNEqualsNaN, DefaultNaNEqualsNaN)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Precision32 != DefaultPrecision32 {
		t.Errorf("Precision32 = %v, want %v", cfg.Precision32, DefaultPrecision32)
	}
	if cfg.Precision64 != DefaultPrecision64 {
		t.Errorf("Precision64 = %v, want %v", cfg.Precision64, DefaultPrecision64)
	}
}

func TestLoadFromDir_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, warnings, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if cfg.Precision32 != DefaultPrecision32 {
		t.Errorf("Precision32 = %v, want default %v", cfg.Precision32, DefaultPrecision32)
	}
}

func TestLoadAndValidate(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"$schema": "./schema.json", "precision64": 1e-10}`)

	cfg, warnings, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if cfg.Precision64 != 1e-10 {
		t.Errorf("Precision64 = %v, want 1e-10", cfg.Precision64)
	}
}

func TestLoadAndValidate_InvalidToleranceMode(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{"tolerance_mode": "fuzzy"}`)

	if _, _, err := LoadAndValidate(path); err == nil {
		t.Fatal("LoadAndValidate() expected error for invalid tolerance_mode, got nil")
	}
}
