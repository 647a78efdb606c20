package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"gopagefind/internal/indexer"
)

// Settings are default overrides supplied by a configuration store, merged
// beneath call-site overrides. Nil or empty fields are unset.
type Settings struct {
	Site    string
	RunWith *indexer.RunWith
	Version string
	Args    []string
}

// Provider supplies store settings. It is read once per config construction.
type Provider interface {
	Settings() (Settings, error)
}

var (
	globalMu       sync.RWMutex
	globalSettings Settings
)

// Configure mutates the process-wide settings table. It is how embedding
// applications install default overrides before constructing configs.
func Configure(fn func(*Settings)) {
	globalMu.Lock()
	defer globalMu.Unlock()
	fn(&globalSettings)
}

// ResetGlobal clears the process-wide settings table. Tests use this.
func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalSettings = Settings{}
}

// Global reads the process-wide settings table.
type Global struct{}

func (Global) Settings() (Settings, error) {
	globalMu.RLock()
	defer globalMu.RUnlock()

	s := globalSettings
	s.Args = append([]string(nil), globalSettings.Args...)
	if globalSettings.RunWith != nil {
		rw := *globalSettings.RunWith
		s.RunWith = &rw
	}
	return s, nil
}

// Static serves fixed settings. Tests use this in place of Global.
type Static struct {
	Values Settings
}

func (s Static) Settings() (Settings, error) {
	return s.Values, nil
}

// fileSettings is the yaml shape of a settings file. run_with accepts either
// a mode name or a command list.
type fileSettings struct {
	Site    string    `yaml:"site"`
	RunWith yaml.Node `yaml:"run_with"`
	Version string    `yaml:"version"`
	Args    []string  `yaml:"args"`
}

// File reads settings from a yaml file. A missing file yields empty settings
// so callers can point at an optional config path.
type File struct {
	Path string
}

func (f File) Settings() (Settings, error) {
	contents, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	var raw fileSettings
	if err := yaml.Unmarshal(contents, &raw); err != nil {
		return Settings{}, fmt.Errorf("parse settings file %s: %w", f.Path, err)
	}

	settings := Settings{Site: raw.Site, Version: raw.Version, Args: raw.Args}
	rw, err := decodeRunWith(raw.RunWith)
	if err != nil {
		return Settings{}, fmt.Errorf("parse settings file %s: %w", f.Path, err)
	}
	settings.RunWith = rw
	return settings, nil
}

// decodeRunWith interprets the run_with yaml node: absent means unset, a
// scalar names a mode, a sequence is a custom command.
func decodeRunWith(node yaml.Node) (*indexer.RunWith, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return nil, err
		}
		rw, err := indexer.ParseRunWith(name)
		if err != nil {
			return nil, err
		}
		return &rw, nil
	case yaml.SequenceNode:
		var command []string
		if err := node.Decode(&command); err != nil {
			return nil, fmt.Errorf("invalid run_with value: custom command must be a list of strings")
		}
		rw := indexer.Custom(command)
		return &rw, nil
	default:
		return nil, fmt.Errorf("invalid run_with value: expected a mode name or a command list")
	}
}
