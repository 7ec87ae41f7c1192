package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Load("")
	if p.Color != nil || p.Pager != nil || p.Formatting != nil || p.Wrap != nil {
		t.Fatalf("Load() = %+v, want all preferences unset", p)
	}
	if p.BufferSize != 0 {
		t.Fatalf("BufferSize = %d, want 0", p.BufferSize)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "loglens")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	contents := "pager = false\nbuffer_size = 65536\n"
	if err := os.WriteFile(prefsFile, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Pager == nil || *p.Pager {
		t.Fatalf("Pager = %v, want false", p.Pager)
	}
	if p.Color != nil {
		t.Fatalf("Color = %v, want unset", *p.Color)
	}
	if p.BufferSize != 65536 {
		t.Fatalf("BufferSize = %d, want 65536", p.BufferSize)
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "custom.toml")
	if err := os.WriteFile(prefsFile, []byte("color = true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Color == nil || !*p.Color {
		t.Fatalf("Color = %v, want true", p.Color)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	wrap := true
	if err := Save(prefsFile, Prefs{Wrap: &wrap}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := Load(prefsFile)
	if loaded.Wrap == nil || !*loaded.Wrap {
		t.Fatalf("Wrap = %v, want true", loaded.Wrap)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefaults(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Color != nil || p.Pager != nil {
		t.Fatalf("Load() = %+v, want all preferences unset", p)
	}
}
