// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/swarm/particles"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Store     StoreConfig     `yaml:"store"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawner   SpawnerConfig   `yaml:"spawner"`
	Despawn   DespawnConfig   `yaml:"despawn"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Stream    StreamConfig    `yaml:"stream"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Background string `yaml:"background"` // clear color, #RRGGBBAA
}

// WorldConfig holds simulation world dimensions.
// World can be larger than the screen; camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// StoreConfig holds particle store sizing.
type StoreConfig struct {
	InitialCapacity int  `yaml:"initial_capacity"`
	StagingCapacity int  `yaml:"staging_capacity"` // initial staging scalars (0 = let the store size it)
	LinkRepair      bool `yaml:"link_repair"`      // retarget links when a removal moves their target
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT                float64 `yaml:"dt"`
	GravityX          float64 `yaml:"gravity_x"`
	GravityY          float64 `yaml:"gravity_y"`
	AttractorStrength float64 `yaml:"attractor_strength"` // force toward the pointer while held
	AttractorRadius   float64 `yaml:"attractor_radius"`   // no pull beyond this distance
	WindStrength      float64 `yaml:"wind_strength"`      // 0 disables the noise wind
	WindScale         float64 `yaml:"wind_scale"`         // world units per noise cell
	WindSpeed         float64 `yaml:"wind_speed"`         // noise cells per second
}

// SpawnerConfig controls particle emission.
type SpawnerConfig struct {
	Interval     float64 `yaml:"interval"`      // seconds between batches
	Batch        int     `yaml:"batch"`         // particles per batch
	MaxParticles int     `yaml:"max_particles"` // stop emitting at this live count
	Speed        float64 `yaml:"speed"`         // max initial speed per axis
	RadiusMin    float64 `yaml:"radius_min"`
	RadiusMax    float64 `yaml:"radius_max"`
	StrokeChance float64 `yaml:"stroke_chance"` // probability of a visible outline
	LinkChance   float64 `yaml:"link_chance"`   // probability of linking to an existing particle
	StaticChance float64 `yaml:"static_chance"` // probability of spawning static
}

// DespawnConfig controls removal of particles that left the world.
type DespawnConfig struct {
	Enabled bool    `yaml:"enabled"`
	Margin  float64 `yaml:"margin"` // distance outside the world rect before removal
}

// RenderConfig holds drawing options.
type RenderConfig struct {
	ShowLinks bool `yaml:"show_links"`
	ShowHUD   bool `yaml:"show_hud"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// StreamConfig holds websocket streaming parameters.
type StreamConfig struct {
	Addr          string `yaml:"addr"` // listen address (empty = disabled)
	MaxClients    int    `yaml:"max_clients"`
	SendBuffer    int    `yaml:"send_buffer"`    // queued frames per client before dropping
	FrameInterval int    `yaml:"frame_interval"` // ticks between broadcast frames
	Compression   bool   `yaml:"compression"`    // per-message deflate
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32         // Physics.DT as float32
	ScreenW32  float32         // Screen.Width as float32
	ScreenH32  float32         // Screen.Height as float32
	WorldW32   float32         // Effective world width as float32
	WorldH32   float32         // Effective world height as float32
	Background particles.Color // Parsed Screen.Background
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	bg := particles.Black
	if c.Screen.Background != "" {
		parsed, err := particles.ParseColor(c.Screen.Background)
		if err != nil {
			return fmt.Errorf("screen.background: %w", err)
		}
		bg = parsed
	}
	c.Derived.Background = bg

	if c.Spawner.RadiusMax < c.Spawner.RadiusMin {
		c.Spawner.RadiusMax = c.Spawner.RadiusMin
	}
	if c.Stream.FrameInterval < 1 {
		c.Stream.FrameInterval = 1
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
