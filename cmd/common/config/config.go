// Package config provides configuration loading for pwforge.
//
// Values come from ~/.pwforge/config.yaml, then PWFORGE_* environment
// variables (a .env file in the working directory is honored).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/gigurra/pwforge/cmd/common"
	"github.com/gigurra/pwforge/cmd/common/wordgen"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix = "PWFORGE_"
	// PathEnv overrides the config file location.
	PathEnv = EnvPrefix + "CONFIG"

	TokenizerSegment = "segment"
	TokenizerNone    = "none"
)

// Config represents the pwforge configuration file structure.
type Config struct {
	Generator GeneratorConfig `yaml:"generator" envPrefix:"GENERATOR_"`
	Output    OutputConfig    `yaml:"output" envPrefix:"OUTPUT_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Profile   Profile         `yaml:"profile" envPrefix:"PROFILE_"`
}

type GeneratorConfig struct {
	MaxWords      int    `yaml:"max_words" env:"MAX_WORDS"`
	AddReversed   bool   `yaml:"add_reversed" env:"ADD_REVERSED"`
	AddRepeats    bool   `yaml:"add_repeats" env:"ADD_REPEATS"`
	Tokenizer     string `yaml:"tokenizer" env:"TOKENIZER"`
	MaxCandidates int    `yaml:"max_candidates" env:"MAX_CANDIDATES"`
}

type OutputConfig struct {
	Path        string `yaml:"path" env:"PATH"`
	Compression string `yaml:"compression" env:"COMPRESSION"`
	// WorkFactor is the scrypt log2 work factor for encrypted output. 0 keeps the age default.
	WorkFactor int `yaml:"work_factor,omitempty" env:"WORK_FACTOR"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Pretty bool   `yaml:"pretty" env:"PRETTY"`
}

// Profile holds the personal inputs saved from a previous session.
type Profile struct {
	Names     []string `yaml:"names,omitempty" env:"NAMES"`
	Pets      []string `yaml:"pets,omitempty" env:"PETS"`
	Favorites []string `yaml:"favorites,omitempty" env:"FAVORITES"`
	Dates     []string `yaml:"dates,omitempty" env:"DATES"`
	Extra     []string `yaml:"extra,omitempty" env:"EXTRA"`
	Years     []string `yaml:"years,omitempty" env:"YEARS"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			MaxWords:  wordgen.DefaultMaxWords,
			Tokenizer: TokenizerSegment,
		},
		Output: OutputConfig{
			Path:        "wordlist.txt",
			Compression: "none",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Path returns the config file path, ~/.pwforge/config.yaml unless PWFORGE_CONFIG is set.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return filepath.Join(common.ConfigDir(), "config.yaml")
}

var dotenvLoaded sync.Once

// Load loads the config from Path().
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	dotenvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	return LoadFrom(Path())
}

// LoadFrom loads the config at path and applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = DefaultConfig()
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults back-fills missing values.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Generator.MaxWords <= 0 {
		c.Generator.MaxWords = def.Generator.MaxWords
	}
	if c.Generator.Tokenizer == "" {
		c.Generator.Tokenizer = def.Generator.Tokenizer
	}
	if c.Generator.MaxCandidates < 0 {
		c.Generator.MaxCandidates = 0
	}
	if c.Output.Path == "" {
		c.Output.Path = def.Output.Path
	}
	if c.Output.Compression == "" {
		c.Output.Compression = def.Output.Compression
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Save saves the config to Path().
func Save(cfg *Config) error {
	return SaveTo(cfg, Path())
}

// SaveTo writes the config as YAML to path.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// The profile holds personal details.
	return os.WriteFile(path, data, 0600)
}

// Tokens merges all profile categories into one token sequence.
func (p Profile) Tokens() []string {
	return wordgen.CollectTokens(p.fields()...)
}

// IsEmpty reports whether the profile holds no tokens and no years.
func (p Profile) IsEmpty() bool {
	return len(p.Tokens()) == 0 && len(p.Years) == 0
}

func (p Profile) fields() []string {
	var fields []string
	for _, category := range [][]string{p.Names, p.Pets, p.Favorites, p.Dates, p.Extra} {
		fields = append(fields, category...)
	}
	return fields
}
