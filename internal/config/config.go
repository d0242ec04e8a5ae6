package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/boardwalklabs/tycoon/internal/game/models"
)

// Config holds all configuration for the application
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Archive    ArchiveConfig    `mapstructure:"archive"`
	Players    []SeatConfig     `mapstructure:"players" validate:"min=2,dive"`
}

// SimulationConfig holds batch execution configuration
type SimulationConfig struct {
	Games     int    `mapstructure:"games" validate:"min=1"`
	MaxTurns  int    `mapstructure:"max_turns" validate:"min=1"`
	Seed      int64  `mapstructure:"seed" validate:"min=0"`
	Workers   int    `mapstructure:"workers" validate:"min=0"`
	BoardFile string `mapstructure:"board_file"`
	Verbose   bool   `mapstructure:"verbose"`
}

// ArchiveConfig holds result archive configuration
type ArchiveConfig struct {
	Path string `mapstructure:"path"`
}

// SeatConfig describes one seat at the table
type SeatConfig struct {
	Name     string   `mapstructure:"name" validate:"required"`
	Strategy string   `mapstructure:"strategy" validate:"required"`
	Colors   []string `mapstructure:"colors"`
}

// Load reads configuration from a file or environment variables
func Load() (*Config, error) {
	return load("")
}

// LoadFile reads configuration from an explicit file path
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("tycoon")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/tycoon")
	}

	// Environment variables
	viper.SetEnvPrefix("TYCOON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, err
		}
		// Config file not found; we'll just use environment and defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the configuration for values the simulator cannot run with
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	names := make(map[string]bool, len(c.Players))
	for _, seat := range c.Players {
		if names[seat.Name] {
			return fmt.Errorf("duplicate player name %q", seat.Name)
		}
		names[seat.Name] = true

		strategy, err := models.ParseStrategy(seat.Strategy)
		if err != nil {
			return fmt.Errorf("player %q: %w", seat.Name, err)
		}
		if len(seat.Colors) > 0 && strategy != models.StrategyColorFocused {
			return fmt.Errorf("player %q: color preferences only apply to %s", seat.Name, models.StrategyColorFocused)
		}
	}

	return nil
}

// Seats converts the configured players into game seats
func (c *Config) Seats() ([]models.Seat, error) {
	seats := make([]models.Seat, 0, len(c.Players))
	for _, p := range c.Players {
		strategy, err := models.ParseStrategy(p.Strategy)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", p.Name, err)
		}
		seats = append(seats, models.Seat{
			Name:            p.Name,
			Strategy:        strategy,
			PreferredColors: p.Colors,
		})
	}
	return seats, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	// Simulation defaults
	viper.SetDefault("simulation.games", 50)
	viper.SetDefault("simulation.max_turns", 1000)
	viper.SetDefault("simulation.seed", 0)    // 0 draws a fresh seed
	viper.SetDefault("simulation.workers", 0) // 0 uses one worker per CPU
	viper.SetDefault("simulation.board_file", "")
	viper.SetDefault("simulation.verbose", false)

	// Archive defaults
	viper.SetDefault("archive.path", "") // Empty disables the archive

	// Roster defaults
	viper.SetDefault("players", defaultRoster())
}

// defaultRoster seats eight players covering every strategy, with the
// color-focused seats sweeping the board from both ends.
func defaultRoster() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "Random Player", "strategy": "RANDOM"},
		{"name": "Aggressive Player", "strategy": "AGGRESSIVE"},
		{"name": "Conservative Player", "strategy": "CONSERVATIVE"},
		{"name": "Expensive-to-Cheap", "strategy": "COLOR_FOCUSED",
			"colors": []string{"dark_blue", "green", "yellow", "red", "orange", "pink", "light_blue", "brown"}},
		{"name": "Cheap-to-Expensive", "strategy": "COLOR_FOCUSED",
			"colors": []string{"brown", "light_blue", "pink", "orange", "red", "yellow", "green", "dark_blue"}},
		{"name": "Expensive-to-Cheaper", "strategy": "COLOR_FOCUSED",
			"colors": []string{"dark_blue", "green", "yellow", "red"}},
		{"name": "Second-Expensive", "strategy": "COLOR_FOCUSED",
			"colors": []string{"green", "yellow", "red", "orange"}},
		{"name": "House Hoarder", "strategy": "HOUSE_HOARDER"},
	}
}
