package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardwalklabs/tycoon/internal/game/engine"
	"github.com/boardwalklabs/tycoon/internal/game/models"
	"github.com/boardwalklabs/tycoon/internal/sim"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	archive, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func sampleBatch() (*sim.Results, *sim.Aggregate) {
	players := []engine.PlayerSummary{
		{Name: "Alice", Strategy: models.StrategyRandom, Cash: 120, NetWorth: 500, Properties: 3},
		{Name: "Bob", Strategy: models.StrategyAggressive, Cash: 0, Bankrupt: true},
	}
	results := &sim.Results{
		RunID:      uuid.New(),
		Tag:        "RUN234",
		MasterSeed: 777,
		Elapsed:    2300 * time.Millisecond,
		Games: []sim.GameRecord{
			{
				ID:             uuid.New(),
				Index:          0,
				Seed:           101,
				Turns:          58,
				Reason:         engine.ReasonLastStanding,
				WinnerSeat:     0,
				Winner:         "Alice",
				WinnerStrategy: models.StrategyRandom,
				Players:        players,
			},
			{
				ID:         uuid.New(),
				Index:      1,
				Seed:       102,
				Turns:      1000,
				Reason:     engine.ReasonTurnLimit,
				WinnerSeat: -1,
				Players:    players,
			},
		},
	}
	agg := sim.Summarize(results.Games)
	return results, agg
}

func TestOpenCreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")

	archive, err := Open(path)
	require.NoError(t, err)
	defer archive.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)

	// A fresh archive lists no runs
	runs, err := archive.Runs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestCloseNilSafe(t *testing.T) {
	var archive *Archive
	assert.NoError(t, archive.Close())
}

func TestRecordRunAndList(t *testing.T) {
	archive := openTestArchive(t)
	results, agg := sampleBatch()

	require.NoError(t, archive.RecordRun(context.Background(), results, agg))

	runs, err := archive.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, results.RunID.String(), run.ID)
	assert.Equal(t, "RUN234", run.Tag)
	assert.Equal(t, int64(777), run.Seed)
	assert.Equal(t, 2, run.Games)
	assert.Equal(t, 2300*time.Millisecond, run.Elapsed)
	assert.Equal(t, 1, run.LastStanding)
	assert.Equal(t, 1, run.TurnLimit)
	assert.WithinDuration(t, time.Now().UTC(), run.CreatedAt, time.Minute)
}

func TestRecordRunRejectsNilArgs(t *testing.T) {
	archive := openTestArchive(t)
	results, agg := sampleBatch()

	assert.Error(t, archive.RecordRun(context.Background(), nil, agg))
	assert.Error(t, archive.RecordRun(context.Background(), results, nil))
}

func TestAggregateRoundTrip(t *testing.T) {
	archive := openTestArchive(t)
	results, agg := sampleBatch()
	require.NoError(t, archive.RecordRun(context.Background(), results, agg))

	loaded, err := archive.Aggregate(context.Background(), results.RunID.String())
	require.NoError(t, err)
	assert.Equal(t, agg, loaded)
}

func TestAggregateNotFound(t *testing.T) {
	archive := openTestArchive(t)

	_, err := archive.Aggregate(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGamesRoundTrip(t *testing.T) {
	archive := openTestArchive(t)
	results, agg := sampleBatch()
	require.NoError(t, archive.RecordRun(context.Background(), results, agg))

	games, err := archive.Games(context.Background(), results.RunID.String())
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, results.Games[0].ID, games[0].ID)
	assert.Equal(t, results.Games[0].Seed, games[0].Seed)
	assert.Equal(t, results.Games[0].Turns, games[0].Turns)
	assert.Equal(t, engine.ReasonLastStanding, games[0].Reason)
	assert.Equal(t, "Alice", games[0].Winner)
	assert.Equal(t, models.StrategyRandom, games[0].WinnerStrategy)
	assert.Equal(t, results.Games[0].Players, games[0].Players)

	assert.Equal(t, -1, games[1].WinnerSeat)
	assert.Empty(t, games[1].Winner)
	assert.Equal(t, engine.ReasonTurnLimit, games[1].Reason)
}

func TestRecordRunTwiceKeepsRunsSeparate(t *testing.T) {
	archive := openTestArchive(t)

	first, firstAgg := sampleBatch()
	second, secondAgg := sampleBatch()
	require.NoError(t, archive.RecordRun(context.Background(), first, firstAgg))
	require.NoError(t, archive.RecordRun(context.Background(), second, secondAgg))

	runs, err := archive.Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	games, err := archive.Games(context.Background(), second.RunID.String())
	require.NoError(t, err)
	assert.Len(t, games, 2)
}
