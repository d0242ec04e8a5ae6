// Package sqlite archives finished simulation runs for later analysis.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/boardwalklabs/tycoon/internal/game/engine"
	"github.com/boardwalklabs/tycoon/internal/game/models"
	"github.com/boardwalklabs/tycoon/internal/sim"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when a run id is not in the archive.
var ErrNotFound = errors.New("run not found")

// Archive stores run and game records in a SQLite file.
type Archive struct {
	db *sql.DB
}

// RunInfo is one archived run's header row.
type RunInfo struct {
	ID           string
	Tag          string
	Seed         int64
	Games        int
	Elapsed      time.Duration
	AvgTurns     float64
	MedianTurns  float64
	LastStanding int
	TurnLimit    int
	CreatedAt    time.Time
}

// Open opens the archive at path, creating the file and schema when
// missing. The handle is limited to a single connection; the archive
// is written once per run and read casually.
func Open(path string) (*Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive handle.
func (a *Archive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// RecordRun stores a finished batch and its per-game records in one
// transaction.
func (a *Archive) RecordRun(ctx context.Context, results *sim.Results, agg *sim.Aggregate) error {
	if results == nil || agg == nil {
		return fmt.Errorf("results and aggregate are required")
	}

	aggJSON, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("failed to encode aggregate: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
		   id, tag, seed, games, elapsed_ms,
		   avg_turns, median_turns, last_standing, turn_limit,
		   aggregate_json, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID.String(),
		results.Tag,
		results.MasterSeed,
		agg.Games,
		results.Elapsed.Milliseconds(),
		agg.AvgTurns,
		agg.MedianTurns,
		agg.LastStanding,
		agg.TurnLimit,
		string(aggJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, rec := range results.Games {
		playersJSON, err := json.Marshal(rec.Players)
		if err != nil {
			return fmt.Errorf("failed to encode game %d players: %w", rec.Index, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO games (
			   run_id, game_index, id, seed, turns, reason,
			   winner_seat, winner, winner_strategy, players_json
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			results.RunID.String(),
			rec.Index,
			rec.ID.String(),
			rec.Seed,
			rec.Turns,
			string(rec.Reason),
			rec.WinnerSeat,
			rec.Winner,
			string(rec.WinnerStrategy),
			string(playersJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert game %d: %w", rec.Index, err)
		}
	}

	return tx.Commit()
}

// Runs lists archived runs, newest first.
func (a *Archive) Runs(ctx context.Context) ([]RunInfo, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, tag, seed, games, elapsed_ms,
		        avg_turns, median_turns, last_standing, turn_limit, created_at
		   FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var (
			info      RunInfo
			elapsedMS int64
			createdAt string
		)
		if err := rows.Scan(
			&info.ID, &info.Tag, &info.Seed, &info.Games, &elapsedMS,
			&info.AvgTurns, &info.MedianTurns, &info.LastStanding, &info.TurnLimit, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		info.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			info.CreatedAt = ts
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Aggregate loads the stored aggregate for one run.
func (a *Archive) Aggregate(ctx context.Context, runID string) (*sim.Aggregate, error) {
	var raw string
	err := a.db.QueryRowContext(ctx,
		`SELECT aggregate_json FROM runs WHERE id = ?`, runID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregate: %w", err)
	}

	var agg sim.Aggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return nil, fmt.Errorf("failed to decode aggregate: %w", err)
	}
	return &agg, nil
}

// Games loads the per-game records for one run in play order.
func (a *Archive) Games(ctx context.Context, runID string) ([]sim.GameRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT game_index, id, seed, turns, reason,
		        winner_seat, winner, winner_strategy, players_json
		   FROM games WHERE run_id = ? ORDER BY game_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var out []sim.GameRecord
	for rows.Next() {
		var (
			rec         sim.GameRecord
			id          string
			reason      string
			strategy    string
			playersJSON string
		)
		if err := rows.Scan(
			&rec.Index, &id, &rec.Seed, &rec.Turns, &reason,
			&rec.WinnerSeat, &rec.Winner, &strategy, &playersJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		rec.ID, _ = uuid.Parse(id)
		rec.Reason = engine.TerminalReason(reason)
		rec.WinnerStrategy = models.Strategy(strategy)
		if err := json.Unmarshal([]byte(playersJSON), &rec.Players); err != nil {
			return nil, fmt.Errorf("failed to decode game %d players: %w", rec.Index, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
