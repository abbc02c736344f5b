// Package config reads the optional hilite.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up by FindConfig.
const FileName = "hilite.toml"

// Config is the decoded project configuration. Paths are absolute after
// Load resolved them against the config file's directory.
type Config struct {
	Path string `toml:"-"`

	Definitions DefinitionsConfig `toml:"definitions"`
	Editor      EditorConfig      `toml:"editor"`
	Completion  CompletionConfig  `toml:"completion"`
	Highlight   HighlightConfig   `toml:"highlight"`
	// FileTypes maps extensions to definition ids.
	FileTypes map[string]string `toml:"filetypes"`
	Fallback  string            `toml:"fallback"`
}

type DefinitionsConfig struct {
	Dirs  []string `toml:"dirs"`
	Watch bool     `toml:"watch"`
	Jobs  int      `toml:"jobs"`
}

type EditorConfig struct {
	Autocompletion bool `toml:"autocompletion"`
	StartHighlight bool `toml:"start_highlight"`
}

type CompletionConfig struct {
	// MaxLookback overrides the look-back window of every definition when
	// positive.
	MaxLookback int `toml:"max_lookback"`
}

type HighlightConfig struct {
	// Theme names a chroma style used as the fallback palette.
	Theme string `toml:"theme"`
}

// Default returns the configuration used when no hilite.toml exists.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			Autocompletion: true,
			StartHighlight: true,
		},
		FileTypes: map[string]string{},
		Fallback:  "conf",
	}
}

// FindConfig walks up from startDir to locate hilite.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads hilite.toml starting at startDir. Without a file
// it returns Default and ok=false.
func Discover(startDir string) (cfg Config, ok bool, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err = Load(path)
	if err != nil {
		return Default(), true, err
	}
	return cfg, true, nil
}

// Load decodes one config file. Keys left out keep their defaults; unknown
// keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("completion", "max_lookback") && cfg.Completion.MaxLookback <= 0 {
		return Config{}, fmt.Errorf("%s: [completion].max_lookback must be positive", path)
	}
	if meta.IsDefined("fallback") && strings.TrimSpace(cfg.Fallback) == "" {
		return Config{}, fmt.Errorf("%s: fallback must name a definition", path)
	}
	if cfg.Definitions.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [definitions].jobs must not be negative", path)
	}

	cfg.Path = path
	root := filepath.Dir(path)
	for i, dir := range cfg.Definitions.Dirs {
		if !filepath.IsAbs(dir) {
			cfg.Definitions.Dirs[i] = filepath.Join(root, filepath.FromSlash(dir))
		}
	}
	if cfg.FileTypes == nil {
		cfg.FileTypes = map[string]string{}
	}
	return cfg, nil
}
