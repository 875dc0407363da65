package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/haze/explorer"
	"github.com/katalvlaran/haze/section"
	"github.com/katalvlaran/haze/seedring"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HAZE_"

// ErrConfiguration is the class of every validation error.
var ErrConfiguration = errors.New("config: invalid configuration")

// Mode selects the exploration strategy.
type Mode string

// Exploration modes.
const (
	ModeBFS     Mode = "bfs"
	ModeDFS     Mode = "dfs"
	ModeMeander Mode = "meander"
)

// Mask is a seed clamp mask. It accepts decimal, 0x hex, 0o octal and 0b
// binary text in both YAML and environment variables.
type Mask uint32

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mask) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(strings.TrimSpace(string(text)), 0, 32)
	if err != nil {
		return fmt.Errorf("mask %q: %w", text, err)
	}
	*m = Mask(v)

	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Mask) UnmarshalYAML(node *yaml.Node) error {
	return m.UnmarshalText([]byte(node.Value))
}

// MarshalYAML implements yaml.Marshaler.
func (m Mask) MarshalYAML() (any, error) {
	return fmt.Sprintf("0x%X", uint32(m)), nil
}

// SpaceConfig describes the labyrinth.
type SpaceConfig struct {
	RingSize   int  `yaml:"ring_size" env:"RING_SIZE"`
	Oriented   bool `yaml:"oriented" env:"ORIENTED"`
	FoldOffset bool `yaml:"fold_offset" env:"FOLD_OFFSET"`
	Mask       Mask `yaml:"mask" env:"MASK"`

	// A doorway is a wall when its seed's low LowBits bits are below WallBelow.
	LowBits   uint   `yaml:"low_bits" env:"LOW_BITS"`
	WallBelow uint32 `yaml:"wall_below" env:"WALL_BELOW"`
	AllOpen   bool   `yaml:"all_open" env:"ALL_OPEN"`
}

// ExploreConfig describes the runs.
type ExploreConfig struct {
	Mode Mode `yaml:"mode" env:"MODE"`
	Runs int  `yaml:"runs" env:"RUNS"`

	// Origin fixes the first run's origin; later runs and an empty Origin
	// draw random origins from Seed. Seed 0 means seed from the clock.
	Origin []uint32 `yaml:"origin" env:"ORIGIN" envSeparator:","`
	Seed   int64    `yaml:"seed" env:"SEED"`

	MaxSections   int           `yaml:"max_sections" env:"MAX_SECTIONS"`
	MaxLayers     int           `yaml:"max_layers" env:"MAX_LAYERS"`
	MaxDepth      int           `yaml:"max_depth" env:"MAX_DEPTH"`
	Steps         int           `yaml:"steps" env:"STEPS"`
	Workers       int           `yaml:"workers" env:"WORKERS"`
	ProgressEvery int           `yaml:"progress_every" env:"PROGRESS_EVERY"`
	Timeout       time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Config is the full haze configuration.
type Config struct {
	Space   SpaceConfig   `yaml:"space" envPrefix:"SPACE_"`
	Explore ExploreConfig `yaml:"explore" envPrefix:"EXPLORE_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

// Default returns the classic configuration.
func Default() Config {
	return Config{
		Space: SpaceConfig{
			RingSize:  section.DefaultRingSize,
			Mask:      Mask(section.DefaultMask),
			LowBits:   section.DefaultLowBits,
			WallBelow: section.DefaultWallBelow,
		},
		Explore: ExploreConfig{
			Mode:          ModeBFS,
			Runs:          10,
			MaxSections:   1_000_000,
			MaxDepth:      64,
			Steps:         100_000,
			Workers:       1,
			ProgressEvery: 100_000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and HAZE_ environment variables, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// Validate checks every field and joins all problems into one error.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...)))
	}

	s := c.Space
	if s.RingSize < 1 {
		bad("space.ring_size must be >= 1 (got %d)", s.RingSize)
	}
	if seedring.Seed(s.Mask)&^seedring.OrientationBit == 0 && s.Oriented {
		bad("space.mask %#x leaves no magnitude bits for oriented rules", uint32(s.Mask))
	}
	if s.Mask == 0 {
		bad("space.mask must not be 0")
	}
	if !s.AllOpen {
		if s.LowBits < 1 || s.LowBits > 31 {
			bad("space.low_bits must be in [1,31] (got %d)", s.LowBits)
		} else if uint64(s.WallBelow) > uint64(1)<<s.LowBits {
			bad("space.wall_below must be <= %d (got %d)", uint64(1)<<s.LowBits, s.WallBelow)
		}
	}

	e := c.Explore
	switch e.Mode {
	case ModeBFS, ModeDFS, ModeMeander:
	default:
		bad("explore.mode must be one of bfs, dfs, meander (got %q)", e.Mode)
	}
	if e.Runs < 1 {
		bad("explore.runs must be >= 1 (got %d)", e.Runs)
	}
	if len(e.Origin) != 0 && len(e.Origin) != s.RingSize {
		bad("explore.origin has %d seeds, ring size is %d", len(e.Origin), s.RingSize)
	}
	if e.MaxSections < 0 {
		bad("explore.max_sections must be >= 0 (got %d)", e.MaxSections)
	}
	if e.MaxLayers < 0 {
		bad("explore.max_layers must be >= 0 (got %d)", e.MaxLayers)
	}
	if e.MaxDepth < 0 {
		bad("explore.max_depth must be >= 0 (got %d)", e.MaxDepth)
	}
	if e.Steps < 0 {
		bad("explore.steps must be >= 0 (got %d)", e.Steps)
	}
	if e.Workers < 1 {
		bad("explore.workers must be >= 1 (got %d)", e.Workers)
	}
	if e.ProgressEvery < 0 {
		bad("explore.progress_every must be >= 0 (got %d)", e.ProgressEvery)
	}
	if e.Timeout < 0 {
		bad("explore.timeout must be >= 0 (got %s)", e.Timeout)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		bad("log.level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		bad("log.format must be text or json (got %q)", c.Log.Format)
	}

	return errors.Join(errs...)
}

// Space builds the section.Space described by c.Space.
func (c Config) Space() (*section.Space, error) {
	var rules seedring.Rules = seedring.Basic{FoldOffset: c.Space.FoldOffset}
	if c.Space.Oriented {
		rules = seedring.Oriented{FoldOffset: c.Space.FoldOffset}
	}

	opts := []section.Option{
		section.WithRingSize(c.Space.RingSize),
		section.WithRules(rules),
		section.WithMask(seedring.Seed(c.Space.Mask)),
	}
	if c.Space.AllOpen {
		opts = append(opts, section.WithOpenFunc(section.AlwaysOpen))
	} else {
		opts = append(opts, section.WithThreshold(c.Space.LowBits, c.Space.WallBelow))
	}

	return section.NewSpace(opts...)
}

// ExplorerOptions returns the budget, layer cap, worker and progress options.
// Hooks, logger, recorder and tracer are left to the caller.
func (c Config) ExplorerOptions() []explorer.Option {
	return []explorer.Option{
		explorer.WithMaxSections(c.Explore.MaxSections),
		explorer.WithMaxLayers(c.Explore.MaxLayers),
		explorer.WithWorkers(c.Explore.Workers),
		explorer.WithProgressEvery(c.Explore.ProgressEvery),
	}
}

// Rand returns a generator seeded with c.Explore.Seed, or with the clock when
// the seed is 0. The seed actually used is returned alongside.
func (c Config) Rand() (*rand.Rand, int64) {
	seed := c.Explore.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)), seed
}

// Origin returns the configured origin for run 0, or a random one from rng.
func (c Config) Origin(sp *section.Space, rng *rand.Rand, run int) (section.Section, error) {
	if run == 0 && len(c.Explore.Origin) > 0 {
		return sp.New(c.Explore.Origin...)
	}

	return sp.RandomOrigin(rng)
}

// Logger builds a slog.Logger writing to w in the configured format and level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(s))

	return l, err
}
