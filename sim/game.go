package sim

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/replay"
)

// Result summarizes one finished game.
type Result struct {
	Game     int
	Variant  string
	Score    int
	Level    int
	Lines    int
	Pieces   int
	Frames   int
	ReplayID string
}

// GameOptions configures a Game.
type GameOptions struct {
	Variant string
	Config  driver.Config
	// Seed is combined with the game number to seed each game.
	Seed string
	// Games stops the loop after this many games. Zero means no limit.
	Games int
	// Think is the number of frames between bot inputs. Zero issues one per frame.
	Think int
	// Store, when set, receives the recording of every finished game.
	Store replay.Store
	// Publish, when set, receives a snapshot after every frame.
	Publish func(driver.Snapshot)
	// OnDone is called once the last game has finished.
	OnDone func()
	Logger logrus.FieldLogger
}

// Game plays bot games back to back, one frame per Step.
type Game struct {
	opts    GameOptions
	log     logrus.FieldLogger
	bot     *Bot
	rec     *replay.Recorder
	number  int
	frame   int
	done    bool
	results []Result
}

// NewGame starts the first game.
func NewGame(opts GameOptions) (*Game, error) {
	log := opts.Logger
	if log == nil {
		log = opts.Config.Logger
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	opts.Config.Logger = log

	g := &Game{
		opts:    opts,
		log:     log,
		results: make([]Result, 0, max(opts.Games, 0)),
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) start() error {
	cfg := g.opts.Config
	cfg.Seed = fmt.Appendf(nil, "%s#%d", g.opts.Seed, g.number)
	rec, err := replay.NewRecorder(g.opts.Variant, cfg)
	if err != nil {
		return err
	}
	g.rec = rec
	g.frame = 0
	g.bot = NewBot()
	return nil
}

// Driver returns the driver of the game in progress.
func (g *Game) Driver() *driver.Driver { return g.rec.Driver() }

// Done reports whether the configured number of games has been played.
func (g *Game) Done() bool { return g.done }

// Played returns the number of finished games.
func (g *Game) Played() int { return len(g.results) }

// Results returns the finished games in the order they were played.
func (g *Game) Results() []Result {
	return slices.Clone(g.results)
}

// Stop ends the loop, counting the game in progress as finished.
func (g *Game) Stop() {
	if g.done {
		return
	}
	g.opts.Games = g.number + 1
	g.finish()
}

// Step plays one frame, finishing and restarting games as they end.
func (g *Game) Step(float64) {
	if g.done {
		return
	}
	d := g.rec.Driver()
	if d.GameOver() {
		g.finish()
		return
	}

	if g.frame%(g.opts.Think+1) == 0 {
		if a, ok := g.bot.Next(d); ok {
			g.rec.Do(a)
		}
	}
	g.rec.NextFrame()
	g.frame++

	if g.opts.Publish != nil {
		g.opts.Publish(d.Snapshot())
	}
}

func (g *Game) finish() {
	d := g.rec.Driver()
	stats := d.Stats()
	result := Result{
		Game:    g.number,
		Variant: d.Variant().Name(),
		Score:   d.Score(),
		Level:   d.Level(),
		Lines:   stats.Lines,
		Pieces:  stats.Pieces,
		Frames:  g.rec.Frame(),
	}

	if g.opts.Store != nil {
		s := g.rec.Session()
		s.ID = replay.NewID(fmt.Sprintf("%s-%d", result.Variant, result.Game), time.Now())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := g.opts.Store.Save(ctx, s); err != nil {
			g.log.WithError(err).Warn("failed to save replay")
		} else {
			result.ReplayID = s.ID
		}
		cancel()
	}

	g.results = append(g.results, result)
	g.log.WithFields(logrus.Fields{
		"game":   result.Game,
		"score":  result.Score,
		"lines":  result.Lines,
		"pieces": result.Pieces,
		"frames": result.Frames,
	}).Info("game finished")

	g.number++
	if g.opts.Games > 0 && g.number >= g.opts.Games {
		g.done = true
		if g.opts.OnDone != nil {
			g.opts.OnDone()
		}
		return
	}
	if err := g.start(); err != nil {
		g.log.WithError(err).Error("failed to restart")
		g.done = true
	}
}
