// ABOUTME: Settings loading with global + project config merge
// ABOUTME: Reads settings.json or settings.yaml; project values override global ones

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/emacs-keys-go/internal/log"
)

// Clipboard backends selectable in settings.
const (
	ClipboardSystem = "system"
	ClipboardOSC52  = "osc52"
	ClipboardMemory = "memory"
)

// ErrInvalid marks settings that parse but cannot be used.
var ErrInvalid = errors.New("invalid settings")

// Settings holds the merged configuration.
type Settings struct {
	KillRingCapacity int               `json:"kill_ring_capacity,omitempty" yaml:"kill_ring_capacity,omitempty"`
	ExtendCommands   []string          `json:"extend_commands,omitempty" yaml:"extend_commands,omitempty"`
	BackwardCommands []string          `json:"backward_commands,omitempty" yaml:"backward_commands,omitempty"`
	Clipboard        string            `json:"clipboard,omitempty" yaml:"clipboard,omitempty"`
	LogLevel         string            `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Keymap           map[string]string `json:"keymap,omitempty" yaml:"keymap,omitempty"`
}

// Load reads and merges global and project-local settings.
// Missing files are not an error.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFirst(SettingsFiles(GlobalDir()))
	if err != nil {
		return nil, fmt.Errorf("loading global settings: %w", err)
	}

	project, err := loadFirst(SettingsFiles(ProjectDir(projectRoot)))
	if err != nil {
		return nil, fmt.Errorf("loading project settings: %w", err)
	}

	merged := merge(global, project)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFirst loads the first candidate that exists.
func loadFirst(paths []string) (*Settings, error) {
	for _, p := range paths {
		s, err := loadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Debug("config: loaded %s", p)
		return s, nil
	}
	return &Settings{}, nil
}

// loadFile reads Settings from a JSON or YAML file, chosen by extension.
// Returns zero Settings if the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}

	var s Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values; keymaps merge per key.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.KillRingCapacity != 0 {
		result.KillRingCapacity = project.KillRingCapacity
	}
	if project.ExtendCommands != nil {
		result.ExtendCommands = project.ExtendCommands
	}
	if project.BackwardCommands != nil {
		result.BackwardCommands = project.BackwardCommands
	}
	if project.Clipboard != "" {
		result.Clipboard = project.Clipboard
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}

	if len(project.Keymap) > 0 {
		km := make(map[string]string, len(global.Keymap)+len(project.Keymap))
		for k, v := range global.Keymap {
			km[k] = v
		}
		for k, v := range project.Keymap {
			km[k] = v
		}
		result.Keymap = km
	}

	return &result
}

// Validate rejects values no component can run with.
func (s *Settings) Validate() error {
	if s.KillRingCapacity < 0 {
		return fmt.Errorf("%w: kill_ring_capacity %d is negative", ErrInvalid, s.KillRingCapacity)
	}
	switch s.Clipboard {
	case "", ClipboardSystem, ClipboardOSC52, ClipboardMemory:
	default:
		return fmt.Errorf("%w: unknown clipboard %q", ErrInvalid, s.Clipboard)
	}
	if s.LogLevel != "" {
		if _, err := log.ParseLevel(s.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
		}
	}
	for key := range s.Keymap {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%w: empty key in keymap", ErrInvalid)
		}
	}
	return nil
}

// ClipboardBackend returns the configured backend, defaulting to system.
func (s *Settings) ClipboardBackend() string {
	if s.Clipboard == "" {
		return ClipboardSystem
	}
	return s.Clipboard
}
