// Package sim executes batches of games concurrently and aggregates
// strategy performance across them.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/boardwalklabs/tycoon/internal/config"
	"github.com/boardwalklabs/tycoon/internal/game/board"
	"github.com/boardwalklabs/tycoon/internal/game/engine"
	"github.com/boardwalklabs/tycoon/internal/game/models"
	"github.com/boardwalklabs/tycoon/internal/game/utils"
)

// progressEvery is how many finished games pass between progress logs.
const progressEvery = 10

// GameRecord holds the outcome of a single game in a batch.
type GameRecord struct {
	ID             uuid.UUID              `json:"id"`
	Index          int                    `json:"index"`
	Seed           int64                  `json:"seed"`
	Turns          int                    `json:"turns"`
	Reason         engine.TerminalReason  `json:"reason"`
	WinnerSeat     int                    `json:"winnerSeat"` // -1 when nobody won
	Winner         string                 `json:"winner,omitempty"`
	WinnerStrategy models.Strategy        `json:"winnerStrategy,omitempty"`
	Players        []engine.PlayerSummary `json:"players"`
}

// Results holds every record from a finished batch.
type Results struct {
	RunID      uuid.UUID     `json:"runId"`
	Tag        string        `json:"tag"`
	MasterSeed int64         `json:"masterSeed"`
	Games      []GameRecord  `json:"games"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Runner plays batches of games over a fixed roster and board.
type Runner struct {
	cfg     *config.Config
	seats   []models.Seat
	catalog *board.Catalog
	logger  *zap.SugaredLogger
}

// NewRunner creates a batch runner from the application configuration.
// A nil catalog plays on the standard board.
func NewRunner(cfg *config.Config, catalog *board.Catalog, logger *zap.SugaredLogger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	seats, err := cfg.Seats()
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:     cfg,
		seats:   seats,
		catalog: catalog,
		logger:  logger,
	}, nil
}

// Run plays the configured number of games and collects their records.
// Every game seed derives from the master seed, so a batch replays
// identically regardless of worker count or scheduling.
func (r *Runner) Run(ctx context.Context) (*Results, error) {
	games := r.cfg.Simulation.Games
	workers := r.cfg.Simulation.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	masterSeed := r.cfg.Simulation.Seed
	if masterSeed == 0 {
		seed, err := utils.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("failed to draw a seed: %w", err)
		}
		masterSeed = seed
	}
	master := rand.New(rand.NewSource(masterSeed))
	seeds := make([]int64, games)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	tag, err := utils.GenerateRunTag()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run tag: %w", err)
	}

	results := &Results{
		RunID:      uuid.New(),
		Tag:        tag,
		MasterSeed: masterSeed,
		Games:      make([]GameRecord, games),
	}

	r.logger.Infow("Starting simulation batch",
		"run", results.Tag,
		"games", games,
		"workers", workers,
		"seed", masterSeed)

	start := time.Now()
	var finished int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := r.playOne(i, seeds[i])
			if err != nil {
				return fmt.Errorf("game %d/%d: %w", i+1, games, err)
			}
			results.Games[i] = record

			if n := atomic.AddInt64(&finished, 1); n%progressEvery == 0 {
				r.logger.Infof("Game %d/%d", n, games)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	results.Elapsed = time.Since(start)

	r.logger.Infow("Simulation batch finished",
		"run", results.Tag,
		"games", games,
		"elapsed", results.Elapsed)

	return results, nil
}

// playOne runs a single seeded game to completion.
func (r *Runner) playOne(index int, seed int64) (GameRecord, error) {
	game, err := engine.New(engine.Params{
		Seats:    r.seats,
		MaxTurns: r.cfg.Simulation.MaxTurns,
		Seed:     seed,
		Catalog:  r.catalog,
	}, r.logger)
	if err != nil {
		return GameRecord{}, err
	}

	winner := game.PlayGame()

	record := GameRecord{
		ID:         uuid.New(),
		Index:      index,
		Seed:       seed,
		Turns:      game.Turns(),
		Reason:     game.Reason(),
		WinnerSeat: -1,
		Players:    game.Summaries(),
	}
	if winner != nil {
		record.Winner = winner.Name
		record.WinnerStrategy = winner.Strategy
		for i, p := range game.Players() {
			if p == winner {
				record.WinnerSeat = i
				break
			}
		}
	}
	return record, nil
}
