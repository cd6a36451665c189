// ABOUTME: Tests for settings loading, merging, validation, and keymap overrides
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{KillRingCapacity: 60, Clipboard: ClipboardOSC52, LogLevel: "warn"}
	project := &Settings{KillRingCapacity: 10, ExtendCommands: []string{"kill-line"}}

	result := merge(global, project)

	if result.KillRingCapacity != 10 {
		t.Errorf("KillRingCapacity = %d, want 10", result.KillRingCapacity)
	}
	if result.Clipboard != ClipboardOSC52 {
		t.Errorf("Clipboard = %q, want %q", result.Clipboard, ClipboardOSC52)
	}
	if !slices.Equal(result.ExtendCommands, []string{"kill-line"}) {
		t.Errorf("ExtendCommands = %v", result.ExtendCommands)
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	result := merge(nil, nil)
	if result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestMerge_KeymapPerKey(t *testing.T) {
	t.Parallel()

	global := &Settings{Keymap: map[string]string{"ctrl+k": "kill-line", "ctrl+y": "yank"}}
	project := &Settings{Keymap: map[string]string{"ctrl+y": "yank-pop", "ctrl+o": "recenter"}}

	result := merge(global, project)

	want := map[string]string{"ctrl+k": "kill-line", "ctrl+y": "yank-pop", "ctrl+o": "recenter"}
	if len(result.Keymap) != len(want) {
		t.Fatalf("Keymap = %v, want %v", result.Keymap, want)
	}
	for k, v := range want {
		if result.Keymap[k] != v {
			t.Errorf("Keymap[%q] = %q, want %q", k, result.Keymap[k], v)
		}
	}
	if global.Keymap["ctrl+y"] != "yank" {
		t.Error("merge mutated the global keymap")
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/settings.json")
	if !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}
	if s == nil {
		t.Error("expected non-nil default settings")
	}
}

func TestLoadFile_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"settings.json", `{"kill_ring_capacity": 7, "keymap": {"ctrl+t": "yank"}}`},
		{"settings.yaml", "kill_ring_capacity: 7\nkeymap:\n  ctrl+t: yank\n"},
		{"settings.yml", "kill_ring_capacity: 7\nkeymap: {ctrl+t: yank}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.name)
			writeFile(t, path, tt.content)

			s, err := loadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if s.KillRingCapacity != 7 {
				t.Errorf("KillRingCapacity = %d, want 7", s.KillRingCapacity)
			}
			if s.Keymap["ctrl+t"] != "yank" {
				t.Errorf("Keymap = %v", s.Keymap)
			}
		})
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"settings.json", "settings.yaml"} {
		path := filepath.Join(dir, name)
		writeFile(t, path, "{not: [valid")
		if _, err := loadFile(path); err == nil {
			t.Errorf("loadFile(%s) accepted malformed content", name)
		}
	}
}

func TestLoadFirst_PrefersJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "settings.json"), `{"log_level": "debug"}`)
	writeFile(t, filepath.Join(dir, "settings.yaml"), "log_level: error\n")

	s, err := loadFirst(SettingsFiles(dir))
	if err != nil {
		t.Fatal(err)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	project := t.TempDir()

	writeFile(t, filepath.Join(home, ".emacs-keys", "settings.yaml"), "kill_ring_capacity: 50\nclipboard: memory\n")
	writeFile(t, filepath.Join(project, ".emacs-keys", "settings.json"), `{"kill_ring_capacity": 5}`)

	s, err := Load(project)
	if err != nil {
		t.Fatal(err)
	}
	if s.KillRingCapacity != 5 {
		t.Errorf("KillRingCapacity = %d, want 5", s.KillRingCapacity)
	}
	if s.ClipboardBackend() != ClipboardMemory {
		t.Errorf("ClipboardBackend() = %q, want memory", s.ClipboardBackend())
	}
}

func TestLoad_NoFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s.ClipboardBackend() != ClipboardSystem {
		t.Errorf("ClipboardBackend() = %q, want system", s.ClipboardBackend())
	}
}

func TestLoad_RejectsMalformedProjectFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".emacs-keys", "settings.json"), `{"keymap": [1, 2]}`)

	if _, err := Load(project); err == nil {
		t.Fatal("Load() accepted a keymap that is not an object")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"zero", Settings{}, false},
		{"full", Settings{KillRingCapacity: 3, Clipboard: ClipboardOSC52, LogLevel: "debug"}, false},
		{"negative capacity", Settings{KillRingCapacity: -1}, true},
		{"unknown clipboard", Settings{Clipboard: "carrier-pigeon"}, true},
		{"bad log level", Settings{LogLevel: "loud"}, true},
		{"blank key", Settings{Keymap: map[string]string{" ": "yank"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.s.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Validate() = %v, want ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestResolvedKeymap(t *testing.T) {
	t.Parallel()

	s := &Settings{Keymap: map[string]string{
		"ctrl+k": "kill-word",
		"ctrl+y": "",
		"ctrl+t": "recenter",
	}}
	km := s.ResolvedKeymap()

	if km["ctrl+k"] != "kill-word" {
		t.Errorf("ctrl+k = %q, want override", km["ctrl+k"])
	}
	if _, ok := km["ctrl+y"]; ok {
		t.Error("ctrl+y should be unbound")
	}
	if km["ctrl+t"] != "recenter" {
		t.Errorf("ctrl+t = %q", km["ctrl+t"])
	}
	if km["alt+y"] != "yank-pop" {
		t.Errorf("default alt+y lost: %q", km["alt+y"])
	}
	if DefaultKeymap()["ctrl+y"] != "yank" {
		t.Error("ResolvedKeymap mutated the defaults")
	}
}

func TestWatchPaths(t *testing.T) {
	t.Parallel()

	paths := WatchPaths("/proj")
	if len(paths) != 2*len(settingsNames) {
		t.Fatalf("WatchPaths() = %v", paths)
	}
	if want := filepath.Join("/proj", ".emacs-keys", "settings.yml"); paths[len(paths)-1] != want {
		t.Errorf("last path = %q, want %q", paths[len(paths)-1], want)
	}
}
