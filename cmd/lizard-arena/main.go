package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/lizard-arena/audio"
	"github.com/lixenwraith/lizard-arena/config"
	"github.com/lixenwraith/lizard-arena/core"
	"github.com/lixenwraith/lizard-arena/engine"
	"github.com/lixenwraith/lizard-arena/game"
	"github.com/lixenwraith/lizard-arena/input"
	"github.com/lixenwraith/lizard-arena/render"
	"github.com/lixenwraith/lizard-arena/replay"
)

var (
	configFlag = flag.String("config", "", "Config file (default $LIZARD_ARENA_CONFIG or lizard-arena.yaml)")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to the log directory")
	recordFlag = flag.String("record", "", "Record a replay to this file")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
	fpsFlag    = flag.Int("fps", 0, "Override the target frame rate")
)

func main() {
	os.Exit(execute())
}

// execute runs the game and returns the process exit code once every deferred cleanup has run
func execute() int {
	// Restore the terminal before reporting a crash on the main goroutine
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lizard-arena: %v\n", err)
		return 1
	}
	return 0
}

func run(ctx context.Context) error {
	path, err := config.ResolvePath(*configFlag)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *fpsFlag > 0 {
		cfg.Frame.FPS = *fpsFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}

	logFile, err := setupLogging(cfg.LogDir, *debugFlag)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	logger := slog.Default().With("session", g.Session.String())
	slog.SetDefault(logger)
	logger.Info("lizard-arena starting", "config", path, "fps", cfg.Frame.FPS)

	sound := audio.NewSoundManager(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the game runs without sound
			logger.Warn("audio unavailable", "error", err)
		}
		defer sound.Cleanup()
	}

	var recorder game.FrameRecorder
	if *recordFlag != "" {
		rec, err := replay.Create(*recordFlag, g.Session, time.Now())
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Error("closing replay", "error", err)
			}
			logger.Info("replay written", "path", *recordFlag, "frames", rec.Frames())
		}()
		recorder = rec
	}

	clock := engine.NewMonotonicTimeProvider()
	term, err := render.NewTerminal(clock)
	if err != nil {
		return err
	}
	defer term.Close()
	core.SetCrashReset(term.Close)
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	term.Keys().SetTapKeys(bindings.KeysFor(input.ActionFire)...)

	events := make(chan input.Event, 256)
	loop := game.NewLoop(game.LoopConfig{
		Game:      g,
		Time:      clock,
		Interval:  cfg.Frame.Interval(),
		MaxDelta:  cfg.Frame.MaxDelta,
		Input:     events,
		Expirer:   term.Keys(),
		Render:    term.Draw,
		Listeners: []game.Listener{sound},
		Recorder:  recorder,
		Logger:    logger,
	})
	w, h := term.Size()
	loop.Handle(input.Event{Kind: input.EventResize, Width: w, Height: h})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(core.Guard(func() error {
		return term.Pump(gctx, events)
	}))
	grp.Go(core.Guard(func() error {
		// Closing the screen unblocks the pump
		defer term.Close()
		defer cancel()
		return loop.Run(gctx)
	}))

	err = grp.Wait()
	logger.Info("lizard-arena stopped", g.State.Status.Attrs()...)
	return err
}
