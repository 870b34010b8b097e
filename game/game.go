package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oklog/ulid/v2"

	"github.com/lixenwraith/lizard-arena/arena"
	"github.com/lixenwraith/lizard-arena/config"
	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/input"
	"github.com/lixenwraith/lizard-arena/system"
)

// Game owns one arena session: the world engine, the state and the ordered phases
type Game struct {
	Config  config.Config
	Session ulid.ULID
	World   *arena.World
	State   *engine.GameState
	Sim     *engine.Simulation
	Spawner *system.SpawnSystem
	Player  core.Entity
}

// New builds the arena from cfg, drops the player in and seeds the opening wave
// Opening wave positions with no navigable point nearby are skipped and logged
func New(cfg config.Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	world, err := arena.New(cfg.ArenaOptions())
	if err != nil {
		return nil, fmt.Errorf("building arena: %w", err)
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}

	state := engine.NewGameState(world, input.NewLatch(bindings), cfg.Tuning.Engine())
	for _, sp := range cfg.SpawnPoints {
		state.AddSpawnPoint(sp.Location, sp.Period, sp.Cooldown)
	}

	sim := engine.NewSimulation(state)
	spawner := system.RegisterAll(sim)

	player, err := state.Registry.Spawn(core.KindPlayer, core.NewTransform(cfg.PlayerStart))
	if err != nil {
		return nil, fmt.Errorf("spawning player: %w", err)
	}

	g := &Game{
		Config:  cfg,
		Session: ulid.Make(),
		World:   world,
		State:   state,
		Sim:     sim,
		Spawner: spawner,
		Player:  player.ID,
	}

	for _, p := range cfg.InitialEnemies {
		if _, err := spawner.Spawn(state, p, system.InitialWave); err != nil {
			slog.Debug("initial enemy skipped", "position", p, "error", err)
		}
	}

	slog.Info("arena ready",
		"session", g.Session.String(),
		"obstacles", len(world.Obstacles()),
		"spawn_points", len(state.SpawnPoints),
		"enemies", state.Registry.Count(core.KindEnemy),
	)
	return g, nil
}

// Tick advances the world engine then runs one simulation step
// The world moves first so the phases see this frame's platform and agent positions
func (g *Game) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	g.World.Advance(dt)
	g.Sim.Step(dt)
}

// PlayerPosition returns the player's position, false once it is gone
func (g *Game) PlayerPosition() (mgl64.Vec3, bool) {
	p, ok := g.State.Registry.Player()
	if !ok {
		return mgl64.Vec3{}, false
	}
	return p.Transform.Position, true
}
