package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loglens/loglens/internal/entry"
)

// noPrefs points prefs loading at a file that does not exist, so
// tests never pick up the developer's real preferences.
func noPrefs(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "prefs.toml")
}

func TestResolveValidatesBeforeIO(t *testing.T) {
	tests := []struct {
		name string
		f    flags
		want string
	}{
		{"bad since", flags{since: "not a time"}, "--since"},
		{"bad until", flags{until: "yesterday"}, "--until"},
		{"bad level", flags{level: "loud"}, "--level"},
		{"bad color", flags{color: "maybe"}, "--color"},
		{"bad pager", flags{pager: "1"}, "--pager"},
		{"negative limit", flags{limit: -1}, "--limit"},
		{"negative buffer", flags{bufferSize: -4096}, "--buffer-size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.f.prefsPath = noPrefs(t)
			_, err := resolve(tt.f, nil)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not name %s", err, tt.want)
			}
		})
	}
}

func TestResolveFilterFlags(t *testing.T) {
	opts, err := resolve(flags{
		since:     "2022-04-11 21:00",
		until:     "2022-04-11 22:00",
		level:     "warning",
		contains:  "disk",
		reverse:   true,
		prefsPath: noPrefs(t),
	}, []string{"a.log", "b.log"})
	if err != nil {
		t.Fatal(err)
	}

	if opts.Since == nil || opts.Until == nil {
		t.Fatal("time window not resolved")
	}
	if !opts.Since.Before(*opts.Until) {
		t.Error("since should precede until")
	}
	if opts.MinLevel == nil || *opts.MinLevel != entry.LevelWarning {
		t.Errorf("MinLevel = %v, want warning", opts.MinLevel)
	}
	if opts.Contains != "disk" {
		t.Errorf("Contains = %q", opts.Contains)
	}
	if opts.Direction != entry.Reverse {
		t.Error("reverse flag not applied")
	}
	if len(opts.Paths) != 2 {
		t.Errorf("Paths = %v", opts.Paths)
	}
}

func TestResolveSwitchPrecedence(t *testing.T) {
	prefOn := true
	tests := []struct {
		name    string
		flagVal string
		pref    *bool
		def     bool
		want    bool
	}{
		{"flag beats pref", "no", &prefOn, true, false},
		{"pref beats default", "", &prefOn, false, true},
		{"default when nothing set", "", nil, true, true},
		{"on is true", "on", nil, false, true},
		{"off is false", "off", nil, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSwitch("pager", tt.flagVal, tt.pref, tt.def)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("resolveSwitch = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePrefsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("pager = true\nbuffer_size = 65536\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := resolve(flags{prefsPath: path}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Pager {
		t.Error("pager preference not applied")
	}
	if opts.BufferCap != 65536 {
		t.Errorf("BufferCap = %d, want 65536", opts.BufferCap)
	}
}
