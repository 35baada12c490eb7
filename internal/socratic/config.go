package socratic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Someblueman/codesocratic/internal/syntax"
)

// ConfigFileName is the project configuration looked up by the CLI.
const ConfigFileName = ".codesocratic.toml"

// Config mirrors .codesocratic.toml. Pointer fields distinguish unset
// keys from zero values.
type Config struct {
	Tone              string `toml:"tone"`
	Locale            string `toml:"locale"`
	Language          string `toml:"language"`
	Format            string `toml:"format"`
	Jobs              *int   `toml:"jobs"`
	CheckHandledAsync *bool  `toml:"check_handled_async"`
}

// FindConfig walks up from startDir looking for ConfigFileName.
func FindConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig decodes a configuration file. Unknown keys are rejected so
// typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Jobs != nil && *cfg.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: jobs must not be negative", path)
	}
	return cfg, nil
}

// Apply copies the keys set in cfg onto opts.
func (cfg Config) Apply(opts *Options) error {
	if cfg.Tone != "" {
		opts.Tone = Tone(cfg.Tone)
	}
	if cfg.Locale != "" {
		opts.Locale = cfg.Locale
	}
	if cfg.Language != "" {
		lang, err := syntax.ParseLanguage(cfg.Language)
		if err != nil {
			return err
		}
		opts.Language = lang
	}
	if cfg.CheckHandledAsync != nil {
		opts.CheckHandledAsync = *cfg.CheckHandledAsync
	}
	return nil
}
