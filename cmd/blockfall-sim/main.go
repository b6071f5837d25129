package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/internal/config"
	"github.com/plus3/blockfall/internal/logger"
	"github.com/plus3/blockfall/internal/spectate"
	"github.com/plus3/blockfall/replay"
	"github.com/plus3/blockfall/sim"
)

func main() {
	cfg := config.Load()

	variantName := flag.String("variant", cfg.Variant, "Rule variant to play.")
	games := flag.Int("games", 1, "Number of bot games to play. Zero plays until the duration ends.")
	duration := flag.Duration("duration", 0, "Stop after this long. Zero means no limit.")
	frames := flag.Int("frames", 0, "Stop after this many frames. Zero means no limit.")
	seed := flag.String("seed", cfg.Seed, "Seed for the piece generator.")
	think := flag.Int("think", 0, "Frames between bot inputs.")
	record := flag.Bool("record", false, "Save a replay of every finished game.")
	replayID := flag.String("replay", "", "Play back a stored replay instead of running the bot.")
	serve := flag.String("serve", cfg.ServeAddr, "Address to stream snapshots to websocket viewers on, e.g. :8080.")
	interval := flag.Duration("interval", 0, "Time between frames. Zero runs as fast as possible.")
	flag.Parse()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}
	ctx, finish := context.WithCancel(ctx)
	defer finish()

	var store replay.Store
	if *record || *replayID != "" {
		var err error
		store, err = openStore(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("failed to open replay store")
		}
	}

	var hub *spectate.Hub
	if *serve != "" {
		hub = spectate.NewHub(log)
		srv := &http.Server{Addr: *serve, Handler: hub}
		go func() {
			log.WithField("addr", *serve).Info("streaming snapshots")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("spectate server stopped")
			}
		}()
		defer func() {
			hub.Close()
			srv.Close()
		}()
	}

	scheduler := sim.NewScheduler()
	report := &Report{
		Variant:  *variantName,
		Seed:     *seed,
		Interval: *interval,
	}

	var game *sim.Game
	var player *replay.Player
	if *replayID != "" {
		session, err := store.Load(ctx, *replayID)
		if err != nil {
			log.WithError(err).Fatal("failed to load replay")
		}
		player, err = replay.NewPlayer(session, driver.Config{Logger: log})
		if err != nil {
			log.WithError(err).Fatal("failed to start replay")
		}
		report.Variant = session.Variant
		report.ReplayID = session.ID
		scheduler.RegisterNamed("Replay", sim.StepFunc(func(float64) {
			if !player.Step() {
				finish()
			}
		}))
	} else {
		dcfg := cfg.Driver()
		dcfg.Logger = log
		opts := sim.GameOptions{
			Variant: *variantName,
			Config:  dcfg,
			Seed:    *seed,
			Games:   *games,
			Think:   *think,
			OnDone:  finish,
			Logger:  log,
		}
		if *record {
			opts.Store = store
		}
		var err error
		game, err = sim.NewGame(opts)
		if err != nil {
			log.WithError(err).Fatal("failed to start game")
		}
		scheduler.Register(game)
	}

	if hub != nil {
		current := func() *driver.Driver {
			if player != nil {
				return player.Driver()
			}
			return game.Driver()
		}
		scheduler.RegisterNamed("Spectate", sim.StepFunc(func(float64) {
			if hub.Len() > 0 {
				hub.Broadcast(current().Snapshot())
			}
		}))
	}

	var frameCount int64
	scheduler.RegisterNamed("Frames", sim.StepFunc(func(float64) {
		frameCount++
		if *frames > 0 && frameCount >= int64(*frames) {
			finish()
		}
	}))

	runtime.ReadMemStats(&report.MemStatsStart)
	log.WithFields(logrus.Fields{
		"variant": report.Variant,
		"games":   *games,
	}).Info("simulation started")

	start := time.Now()
	scheduler.Run(ctx, *interval)
	report.TotalTime = time.Since(start)
	report.Frames = frameCount

	if game != nil {
		game.Stop()
		report.Results = game.Results()
	}
	if player != nil {
		d := player.Driver()
		report.Results = []sim.Result{{
			Variant:  d.Variant().Name(),
			Score:    d.Score(),
			Level:    d.Level(),
			Lines:    d.Lines(),
			Pieces:   d.Stats().Pieces,
			Frames:   player.Frame(),
			ReplayID: report.ReplayID,
		}}
	}
	report.Scheduler = scheduler.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished")

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

func openStore(ctx context.Context, cfg *config.Config) (replay.Store, error) {
	if cfg.RedisURL != "" {
		client, err := replay.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return replay.NewRedisStore(client, "blockfall:"), nil
	}
	return replay.NewFileStore(cfg.ReplayDir, replay.Binary)
}
