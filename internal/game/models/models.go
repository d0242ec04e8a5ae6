package models

import "fmt"

// Board geometry and bankroll constants shared across the engine.
const (
	// BoardSize is the number of spaces on the board; positions are 0..BoardSize-1.
	BoardSize = 40

	// StartingCash is the bankroll every player begins with.
	StartingCash = 1500

	// MaxHouses is the development level at which a street is eligible
	// for a hotel upgrade.
	MaxHouses = 4

	// HotelLevel is the development level that represents a hotel.
	HotelLevel = 5
)

// PropertyType represents the category of a board space.
type PropertyType string

const (
	PropertyTypeStreet   PropertyType = "street"
	PropertyTypeRailroad PropertyType = "railroad"
	PropertyTypeUtility  PropertyType = "utility"
	PropertyTypeSpecial  PropertyType = "special"
)

// Ownable reports whether a space of this type can be bought and owned.
func (t PropertyType) Ownable() bool {
	return t == PropertyTypeStreet || t == PropertyTypeRailroad || t == PropertyTypeUtility
}

// Property represents one purchasable space in the board catalog. The
// struct is immutable once loaded; mutable state (owner, development
// level) lives in the ownership ledger.
type Property struct {
	Name          string       `yaml:"name"`
	Position      int          `yaml:"position"`
	Type          PropertyType `yaml:"type"`
	ColorGroup    string       `yaml:"color_group"`
	Price         int          `yaml:"price"`
	Rent          []int        `yaml:"rent"`
	MortgageValue int          `yaml:"mortgage_value"`
	HouseCost     int          `yaml:"house_cost"`
}

// RentAt returns the scheduled rent for a development level between 0
// (undeveloped) and HotelLevel. Boards that omit an explicit hotel rent
// fall back to double the four-house rent.
func (p Property) RentAt(level int) int {
	if len(p.Rent) == 0 {
		return 0
	}
	if level <= 0 {
		return p.Rent[0]
	}
	if level >= HotelLevel {
		if len(p.Rent) > HotelLevel {
			return p.Rent[HotelLevel]
		}
		return p.Rent[len(p.Rent)-1] * 2
	}
	if level < len(p.Rent) {
		return p.Rent[level]
	}
	return p.Rent[len(p.Rent)-1]
}

// Strategy represents a scripted buying and building policy.
type Strategy string

const (
	StrategyRandom       Strategy = "RANDOM"
	StrategyColorFocused Strategy = "COLOR_FOCUSED"
	StrategyConservative Strategy = "CONSERVATIVE"
	StrategyAggressive   Strategy = "AGGRESSIVE"
	StrategyHouseHoarder Strategy = "HOUSE_HOARDER"
)

// Strategies lists every known strategy tag.
func Strategies() []Strategy {
	return []Strategy{
		StrategyRandom,
		StrategyColorFocused,
		StrategyConservative,
		StrategyAggressive,
		StrategyHouseHoarder,
	}
}

// ParseStrategy maps a config string such as "aggressive" or
// "COLOR_FOCUSED" to its Strategy tag.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies() {
		if string(st) == normalizeTag(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

func normalizeTag(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		case c == '-' || c == ' ':
			c = '_'
		}
		out = append(out, c)
	}
	return string(out)
}

// Seat represents one roster entry: who sits at the table and how they
// play. PreferredColors is only consulted by COLOR_FOCUSED seats.
type Seat struct {
	Name            string
	Strategy        Strategy
	PreferredColors []string
}

// Player represents one participant's mutable state during a game.
type Player struct {
	Name            string
	Strategy        Strategy
	PreferredColors []string
	Cash            int
	Position        int
	Properties      []int // board positions in acquisition order
	JailCards       int
	InJail          bool
	JailTurns       int
	Bankrupt        bool
}

// NewPlayer seats a player with the standard starting bankroll.
func NewPlayer(seat Seat) *Player {
	return &Player{
		Name:            seat.Name,
		Strategy:        seat.Strategy,
		PreferredColors: seat.PreferredColors,
		Cash:            StartingCash,
	}
}

// Pay deducts amount from the player's cash. The payment is
// all-or-nothing: if the player cannot cover it, no cash moves and Pay
// reports false.
func (p *Player) Pay(amount int) bool {
	if amount > p.Cash {
		return false
	}
	p.Cash -= amount
	return true
}

// Receive credits amount to the player's cash.
func (p *Player) Receive(amount int) {
	p.Cash += amount
}

// MoveBy advances the player by steps spaces, wrapping around the
// board. It reports whether the player crossed or landed on GO.
func (p *Player) MoveBy(steps, boardSize int) bool {
	passed := p.Position+steps >= boardSize
	p.Position = (p.Position + steps) % boardSize
	return passed
}

// Owns reports whether the player holds the deed at the given position.
func (p *Player) Owns(pos int) bool {
	for _, held := range p.Properties {
		if held == pos {
			return true
		}
	}
	return false
}

// AddProperty appends a deed to the player's holdings in acquisition
// order. Duplicate positions are ignored.
func (p *Player) AddProperty(pos int) {
	if p.Owns(pos) {
		return
	}
	p.Properties = append(p.Properties, pos)
}

// Active reports whether the player is still in the game.
func (p *Player) Active() bool {
	return !p.Bankrupt
}
