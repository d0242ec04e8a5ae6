package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardwalklabs/tycoon/internal/game/models"
)

// validConfig returns a minimal configuration that passes validation.
func validConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{Games: 10, MaxTurns: 500},
		Players: []SeatConfig{
			{Name: "Alice", Strategy: "RANDOM"},
			{Name: "Bob", Strategy: "AGGRESSIVE"},
		},
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	// Simulation defaults match the classic batch shape
	assert.Equal(t, 50, cfg.Simulation.Games)
	assert.Equal(t, 1000, cfg.Simulation.MaxTurns)
	assert.Equal(t, int64(0), cfg.Simulation.Seed)
	assert.Equal(t, 0, cfg.Simulation.Workers)
	assert.False(t, cfg.Simulation.Verbose)
	assert.Empty(t, cfg.Archive.Path)

	// The default roster seats eight players covering every strategy
	require.Len(t, cfg.Players, 8)
	assert.Equal(t, "Random Player", cfg.Players[0].Name)
	assert.Equal(t, "House Hoarder", cfg.Players[7].Name)

	seats, err := cfg.Seats()
	require.NoError(t, err)
	assert.Equal(t, models.StrategyColorFocused, seats[3].Strategy)
	assert.Equal(t, []string{"dark_blue", "green", "yellow", "red", "orange", "pink", "light_blue", "brown"}, seats[3].PreferredColors)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	viper.Reset()

	path := filepath.Join(t.TempDir(), "tycoon.yaml")
	data := []byte(`simulation:
  games: 5
  max_turns: 200
  seed: 42
  workers: 2
archive:
  path: runs.db
players:
  - name: Alice
    strategy: conservative
  - name: Bob
    strategy: COLOR_FOCUSED
    colors: [red, yellow]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Simulation.Games)
	assert.Equal(t, 200, cfg.Simulation.MaxTurns)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 2, cfg.Simulation.Workers)
	assert.Equal(t, "runs.db", cfg.Archive.Path)

	// A configured roster replaces the default one entirely
	require.Len(t, cfg.Players, 2)
	seats, err := cfg.Seats()
	require.NoError(t, err)
	assert.Equal(t, models.StrategyConservative, seats[0].Strategy)
	assert.Equal(t, []string{"red", "yellow"}, seats[1].PreferredColors)
}

func TestLoadFileMissing(t *testing.T) {
	viper.Reset()

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	cfg := validConfig()
	cfg.Players[1].Strategy = "YOLO"

	err := cfg.Validate()
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	cfg := validConfig()
	cfg.Players[1].Name = "Alice"

	err := cfg.Validate()
	assert.ErrorContains(t, err, "duplicate player name")
}

func TestValidateRejectsColorsOffColorFocused(t *testing.T) {
	cfg := validConfig()
	cfg.Players[0].Colors = []string{"red"}

	err := cfg.Validate()
	assert.ErrorContains(t, err, "color preferences")
}

func TestValidateRejectsShortRoster(t *testing.T) {
	cfg := validConfig()
	cfg.Players = cfg.Players[:1]

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveGames(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.Games = 0

	assert.Error(t, cfg.Validate())
}
