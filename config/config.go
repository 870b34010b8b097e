// Package config loads game settings from YAML, falling back to built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/lizard-arena/arena"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/input"
	"github.com/lixenwraith/lizard-arena/parameter"
)

const (
	// DefaultPath is read when neither the flag nor the environment names a file
	DefaultPath = "lizard-arena.yaml"

	// EnvConfigPath names the environment variable that overrides DefaultPath
	EnvConfigPath = "LIZARD_ARENA_CONFIG"
)

// Tuning holds the gameplay constants
type Tuning struct {
	PlayerSpeed       float64       `yaml:"player_speed"`
	Gravity           float64       `yaml:"gravity"`
	ProjectileSpeed   float64       `yaml:"projectile_speed"`
	MuzzleHeight      float64       `yaml:"muzzle_height"`
	ArenaHalfExtent   float64       `yaml:"arena_half_extent"`
	SpawnSearchRadius float64       `yaml:"spawn_search_radius"`
	FireCooldown      time.Duration `yaml:"fire_cooldown"`
	MaximumEnemies    int           `yaml:"maximum_enemies"`
	EnemySpeed        float64       `yaml:"enemy_speed"`
	EnemyRadius       float64       `yaml:"enemy_radius"`
}

// DefaultTuning mirrors engine.DefaultTuning
func DefaultTuning() Tuning {
	t := engine.DefaultTuning()
	return Tuning{
		PlayerSpeed:       t.PlayerSpeed,
		Gravity:           t.Gravity,
		ProjectileSpeed:   t.ProjectileSpeed,
		MuzzleHeight:      t.MuzzleHeight,
		ArenaHalfExtent:   t.ArenaHalfExtent,
		SpawnSearchRadius: t.SpawnSearchRadius,
		FireCooldown:      t.FireCooldown,
		MaximumEnemies:    t.MaximumEnemies,
		EnemySpeed:        t.Agent.MaxSpeed,
		EnemyRadius:       t.Agent.Radius,
	}
}

// Engine converts to the simulation's tuning
func (t Tuning) Engine() engine.Tuning {
	return engine.Tuning{
		PlayerSpeed:       t.PlayerSpeed,
		Gravity:           t.Gravity,
		ProjectileSpeed:   t.ProjectileSpeed,
		MuzzleHeight:      t.MuzzleHeight,
		ArenaHalfExtent:   t.ArenaHalfExtent,
		SpawnSearchRadius: t.SpawnSearchRadius,
		FireCooldown:      t.FireCooldown,
		MaximumEnemies:    t.MaximumEnemies,
		Agent: engine.AgentParams{
			Radius:   t.EnemyRadius,
			MaxSpeed: t.EnemySpeed,
		},
	}
}

// Box is an obstacle given by center and half extents
type Box struct {
	Center mgl64.Vec3 `yaml:"center"`
	Half   mgl64.Vec3 `yaml:"half"`
}

// Platform is a box oscillating vertically above its base center
type Platform struct {
	Center    mgl64.Vec3    `yaml:"center"`
	Half      mgl64.Vec3    `yaml:"half"`
	Amplitude float64       `yaml:"amplitude"`
	Period    time.Duration `yaml:"period"`
}

// Arena describes the static geometry and navigation grid
type Arena struct {
	GroundHalfExtent float64    `yaml:"ground_half_extent"`
	CellSize         float64    `yaml:"cell_size"`
	Obstacles        []Box      `yaml:"obstacles"`
	Platforms        []Platform `yaml:"platforms"`
	Layout           *Layout    `yaml:"layout"` // Optional generated crate field
}

// Layout generates crates from a braided maze over the ground
// Tiles around the player start, spawn points and the opening wave stay clear
type Layout struct {
	Seed       uint64  `yaml:"seed"` // 0 picks a new layout every run
	Tile       float64 `yaml:"tile"`
	Braiding   float64 `yaml:"braiding"`
	Density    float64 `yaml:"density"`
	KeepRadius float64 `yaml:"keep_radius"`
}

// ArenaOptions returns the world engine options with any generated layout appended to the obstacles
func (c Config) ArenaOptions() arena.Options {
	opts := c.Arena.Options(c.Tuning)
	l := c.Arena.Layout
	if l == nil {
		return opts
	}

	keep := []mgl64.Vec3{c.PlayerStart}
	for _, sp := range c.SpawnPoints {
		keep = append(keep, sp.Location)
	}
	keep = append(keep, c.InitialEnemies...)
	for _, b := range c.Arena.Obstacles {
		keep = append(keep, b.Center)
	}
	for _, p := range c.Arena.Platforms {
		keep = append(keep, p.Center)
	}

	opts.Obstacles = append(opts.Obstacles, arena.GenerateLayout(c.Arena.GroundHalfExtent, arena.LayoutOptions{
		Seed:       l.Seed,
		Tile:       l.Tile,
		Braiding:   l.Braiding,
		Density:    l.Density,
		Keep:       keep,
		KeepRadius: max(l.KeepRadius, l.Tile/2),
	})...)
	return opts
}

// Options converts to the world engine options; agent clearance follows the enemy radius
func (a Arena) Options(t Tuning) arena.Options {
	opts := arena.DefaultOptions()
	opts.GroundHalfExtent = a.GroundHalfExtent
	opts.CellSize = a.CellSize
	opts.AgentRadius = t.EnemyRadius
	for _, o := range a.Obstacles {
		opts.Obstacles = append(opts.Obstacles, arena.Box{Center: o.Center, Half: o.Half})
	}
	for _, p := range a.Platforms {
		opts.Platforms = append(opts.Platforms, arena.PlatformSpec{
			Box:       arena.Box{Center: p.Center, Half: p.Half},
			Amplitude: p.Amplitude,
			Period:    p.Period,
		})
	}
	return opts
}

// SpawnPoint produces an enemy every Period after an initial Cooldown
type SpawnPoint struct {
	Location mgl64.Vec3    `yaml:"location"`
	Period   time.Duration `yaml:"period"`
	Cooldown time.Duration `yaml:"cooldown"`
}

// Frame configures the frame loop
type Frame struct {
	FPS      int           `yaml:"fps"`
	MaxDelta time.Duration `yaml:"max_delta"`
}

// Interval returns the target frame interval
func (f Frame) Interval() time.Duration {
	if f.FPS <= 0 {
		return parameter.FrameUpdateInterval
	}
	return time.Second / time.Duration(f.FPS)
}

// Audio configures sound cues
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Gain in [0,1]
}

// Config holds all game settings
type Config struct {
	PlayerStart    mgl64.Vec3        `yaml:"player_start"`
	Tuning         Tuning            `yaml:"tuning"`
	Arena          Arena             `yaml:"arena"`
	SpawnPoints    []SpawnPoint      `yaml:"spawn_points"`
	InitialEnemies []mgl64.Vec3      `yaml:"initial_enemies"`
	Keys           map[string]string `yaml:"keys"` // Key name to action; "none" unbinds
	Frame          Frame             `yaml:"frame"`
	Audio          Audio             `yaml:"audio"`
	LogDir         string            `yaml:"log_dir"`
}

// Default returns the stock arena: a crate, a moving platform in the middle,
// a five-enemy opening wave and two spawn points
func Default() Config {
	return Config{
		PlayerStart: mgl64.Vec3{parameter.PlayerStartX, parameter.PlayerStartY, parameter.PlayerStartZ},
		Tuning:      DefaultTuning(),
		Arena: Arena{
			GroundHalfExtent: parameter.GroundHalfExtent,
			CellSize:         parameter.NavCellSize,
			Obstacles: []Box{
				{Center: mgl64.Vec3{-3, 1, 0}, Half: mgl64.Vec3{1, 1, 1}},
			},
			Platforms: []Platform{
				{Center: mgl64.Vec3{0, -1, 0}, Half: mgl64.Vec3{1, 1, 1}, Amplitude: 2, Period: 2 * time.Second},
			},
		},
		SpawnPoints: []SpawnPoint{
			{Location: mgl64.Vec3{6, 0, 6}, Period: parameter.SpawnPeriod},
			{Location: mgl64.Vec3{6, 0, -6}, Period: parameter.SpawnPeriod, Cooldown: time.Second},
		},
		InitialEnemies: []mgl64.Vec3{
			{3, 1, 4}, {3, 1, 2}, {3, 1, 0}, {3, 1, -2}, {3, 1, -4},
		},
		Frame: Frame{
			FPS:      60,
			MaxDelta: parameter.MaxFrameDelta,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.6,
		},
		LogDir: "logs",
	}
}

// Load reads a YAML file over the defaults
// A missing file yields the defaults; the result is validated either way
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolvePath picks the config file: explicit flag, then LIZARD_ARENA_CONFIG
// (a .env file in the working directory may set it), then DefaultPath
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("loading .env: %w", err)
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	return DefaultPath, nil
}

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Validate checks ranges the simulation relies on
func (c Config) Validate() error {
	t := c.Tuning
	switch {
	case t.PlayerSpeed < 0:
		return fmt.Errorf("%w: tuning.player_speed %v is negative", ErrInvalid, t.PlayerSpeed)
	case t.Gravity < 0:
		return fmt.Errorf("%w: tuning.gravity %v is negative", ErrInvalid, t.Gravity)
	case t.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: tuning.projectile_speed must be positive", ErrInvalid)
	case t.ArenaHalfExtent <= 0:
		return fmt.Errorf("%w: tuning.arena_half_extent must be positive", ErrInvalid)
	case t.FireCooldown < 0:
		return fmt.Errorf("%w: tuning.fire_cooldown %v is negative", ErrInvalid, t.FireCooldown)
	case t.MaximumEnemies < 0:
		return fmt.Errorf("%w: tuning.maximum_enemies %d is negative", ErrInvalid, t.MaximumEnemies)
	case t.SpawnSearchRadius < 0:
		return fmt.Errorf("%w: tuning.spawn_search_radius %v is negative", ErrInvalid, t.SpawnSearchRadius)
	case t.EnemySpeed < 0 || t.EnemyRadius < 0:
		return fmt.Errorf("%w: enemy speed and radius must not be negative", ErrInvalid)
	case c.Arena.GroundHalfExtent <= 0:
		return fmt.Errorf("%w: arena.ground_half_extent must be positive", ErrInvalid)
	case c.Arena.CellSize <= 0:
		return fmt.Errorf("%w: arena.cell_size must be positive", ErrInvalid)
	case c.Frame.FPS < 0:
		return fmt.Errorf("%w: frame.fps %d is negative", ErrInvalid, c.Frame.FPS)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v outside [0,1]", ErrInvalid, c.Audio.Volume)
	}

	for i, sp := range c.SpawnPoints {
		if sp.Period <= 0 {
			return fmt.Errorf("%w: spawn_points[%d].period must be positive", ErrInvalid, i)
		}
	}
	for i, p := range c.Arena.Platforms {
		if p.Period < 0 {
			return fmt.Errorf("%w: arena.platforms[%d].period is negative", ErrInvalid, i)
		}
	}
	if l := c.Arena.Layout; l != nil {
		switch {
		case l.Tile < 2*t.EnemyRadius:
			return fmt.Errorf("%w: arena.layout.tile %v is narrower than an enemy", ErrInvalid, l.Tile)
		case l.Braiding < 0 || l.Braiding > 1:
			return fmt.Errorf("%w: arena.layout.braiding %v outside [0,1]", ErrInvalid, l.Braiding)
		case l.Density < 0 || l.Density > 1:
			return fmt.Errorf("%w: arena.layout.density %v outside [0,1]", ErrInvalid, l.Density)
		}
	}
	for i, b := range c.Arena.Obstacles {
		if b.Half.X() <= 0 || b.Half.Y() <= 0 || b.Half.Z() <= 0 {
			return fmt.Errorf("%w: arena.obstacles[%d] has a non-positive half extent", ErrInvalid, i)
		}
	}
	if _, err := c.Bindings(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Bindings returns the default key bindings with the configured overrides applied
func (c Config) Bindings() (input.Bindings, error) {
	override, err := input.ParseBindings(c.Keys)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return input.MergeBindings(input.DefaultBindings(), override), nil
}
