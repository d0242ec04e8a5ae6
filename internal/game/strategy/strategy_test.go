package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardwalklabs/tycoon/internal/game/board"
	"github.com/boardwalklabs/tycoon/internal/game/models"
)

func newLedger(t *testing.T) *board.Ledger {
	t.Helper()
	c, err := board.Default()
	require.NoError(t, err)
	return board.NewLedger(c)
}

func player(strat models.Strategy, colors ...string) *models.Player {
	return models.NewPlayer(models.Seat{Name: "Tester", Strategy: strat, PreferredColors: colors})
}

func own(t *testing.T, l *board.Ledger, p *models.Player, positions ...int) {
	t.Helper()
	for _, pos := range positions {
		prop, ok := l.Catalog().At(pos)
		require.True(t, ok)
		p.Receive(prop.Price)
		require.True(t, l.Buy(pos, p))
	}
}

func TestShouldBuyRequiresCoveredPrice(t *testing.T) {
	l := newLedger(t)
	rng := rand.New(rand.NewSource(1))
	prop, _ := l.Catalog().At(39)

	for _, strat := range models.Strategies() {
		p := player(strat)
		p.Cash = prop.Price - 1
		assert.False(t, ShouldBuy(rng, p, prop, l), string(strat))
	}
}

func TestCashFloorStrategies(t *testing.T) {
	l := newLedger(t)
	rng := rand.New(rand.NewSource(1))
	prop, _ := l.Catalog().At(1) // Mediterranean, price 60

	conservative := player(models.StrategyConservative)
	conservative.Cash = prop.Price * 3
	assert.False(t, ShouldBuy(rng, conservative, prop, l))
	conservative.Cash = prop.Price*3 + 1
	assert.True(t, ShouldBuy(rng, conservative, prop, l))

	aggressive := player(models.StrategyAggressive)
	aggressive.Cash = prop.Price + 100
	assert.False(t, ShouldBuy(rng, aggressive, prop, l))
	aggressive.Cash = prop.Price + 101
	assert.True(t, ShouldBuy(rng, aggressive, prop, l))

	hoarder := player(models.StrategyHouseHoarder)
	hoarder.Cash = prop.Price + 10
	assert.False(t, ShouldBuy(rng, hoarder, prop, l))
	hoarder.Cash = prop.Price + 11
	assert.True(t, ShouldBuy(rng, hoarder, prop, l))
}

func TestRandomBuyRate(t *testing.T) {
	l := newLedger(t)
	rng := rand.New(rand.NewSource(42))
	prop, _ := l.Catalog().At(1)
	p := player(models.StrategyRandom)

	const trials = 10000
	bought := 0
	for i := 0; i < trials; i++ {
		if ShouldBuy(rng, p, prop, l) {
			bought++
		}
	}
	rate := float64(bought) / trials
	assert.InDelta(t, 0.6, rate, 0.03)
}

func TestColorFocusedChance(t *testing.T) {
	l := newLedger(t)
	parkPlace, _ := l.Catalog().At(37)
	kentucky, _ := l.Catalog().At(21)
	oriental, _ := l.Catalog().At(6)
	reading, _ := l.Catalog().At(5)

	// No preference list: completion fraction drives the boost.
	p := player(models.StrategyColorFocused)
	assert.InDelta(t, 0.4, colorFocusedChance(p, parkPlace, l), 1e-9)
	own(t, l, p, 37)
	assert.InDelta(t, 0.4+0.3*0.5, colorFocusedChance(p, parkPlace, l), 1e-9)

	// The current target is wanted badly, more so once started.
	p = player(models.StrategyColorFocused, "dark_blue", "red", "yellow", "green", "orange")
	assert.InDelta(t, 0.85, colorFocusedChance(p, parkPlace, l), 1e-9)

	l2 := newLedger(t)
	p = player(models.StrategyColorFocused, "dark_blue", "red", "yellow", "green", "orange")
	own(t, l2, p, 37)
	assert.InDelta(t, 0.90, colorFocusedChance(p, parkPlace, l2), 1e-9)

	// Ranked colors decay by a tenth per step, floored at 0.1.
	l3 := newLedger(t)
	p = player(models.StrategyColorFocused, "dark_blue", "red", "yellow", "green", "orange")
	assert.InDelta(t, 0.30, colorFocusedChance(p, kentucky, l3), 1e-9)

	p = player(models.StrategyColorFocused, "dark_blue", "green", "yellow", "red", "orange")
	assert.InDelta(t, 0.10, colorFocusedChance(p, oriental, l3), 1e-9)

	// Unlisted groups, like railroads, are barely interesting.
	assert.InDelta(t, 0.10, colorFocusedChance(p, reading, l3), 1e-9)

	// With every listed color completed, interest drops league-wide.
	l4 := newLedger(t)
	p = player(models.StrategyColorFocused, "brown")
	own(t, l4, p, 1, 3)
	assert.InDelta(t, 0.15, colorFocusedChance(p, parkPlace, l4), 1e-9)
}

func TestShouldDevelopCashFloors(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	cases := []struct {
		strat models.Strategy
		floor int
	}{
		{models.StrategyAggressive, 500},
		{models.StrategyConservative, 1000},
		{models.StrategyColorFocused, 300},
		{models.StrategyHouseHoarder, 200},
	}
	for _, tc := range cases {
		p := player(tc.strat)
		p.Cash = tc.floor
		assert.False(t, ShouldDevelop(rng, p), string(tc.strat))
		p.Cash = tc.floor + 1
		assert.True(t, ShouldDevelop(rng, p), string(tc.strat))
	}

	// RANDOM develops about 30% of the time above its floor, never below.
	p := player(models.StrategyRandom)
	p.Cash = 400
	for i := 0; i < 100; i++ {
		assert.False(t, ShouldDevelop(rng, p))
	}
	p.Cash = 401
	hits := 0
	const trials = 10000
	for i := 0; i < trials; i++ {
		if ShouldDevelop(rng, p) {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/trials, 0.03)
}

func TestHouseHoarderNeverPicksHotelUpgrade(t *testing.T) {
	l := newLedger(t)
	p := player(models.StrategyHouseHoarder)
	own(t, l, p, 1, 3)
	p.Cash = 5000
	for i := 0; i < 7; i++ {
		pos, ok := ChooseDevelopmentTarget(p, l.Developable(p), l)
		require.True(t, ok)
		require.True(t, l.BuildHouse(pos, p))
	}

	// Seven builds leave the group at (4,3); the hoarder keeps building
	// houses on the laggard instead of taking the hotel upgrade.
	pos, ok := ChooseDevelopmentTarget(p, l.Developable(p), l)
	require.True(t, ok)
	assert.Equal(t, 3, pos)
	assert.Equal(t, 3, l.LevelAt(pos))

	require.True(t, l.BuildHouse(pos, p))

	// Both streets at four houses: only hotel upgrades remain, so the
	// hoarder declines.
	_, ok = ChooseDevelopmentTarget(p, l.Developable(p), l)
	assert.False(t, ok)
}

func TestColorFocusedDevelopsPreferredColorFirst(t *testing.T) {
	l := newLedger(t)
	p := player(models.StrategyColorFocused, "dark_blue", "brown")
	own(t, l, p, 1, 3, 37, 39)
	p.Cash = 5000

	pos, ok := ChooseDevelopmentTarget(p, l.Developable(p), l)
	require.True(t, ok)
	prop, _ := l.Catalog().At(pos)
	assert.Equal(t, "dark_blue", prop.ColorGroup)
}

func TestDefaultTargetMaximizesRentPerDollar(t *testing.T) {
	l := newLedger(t)
	p := player(models.StrategyAggressive)
	own(t, l, p, 1, 3, 37, 39)

	// First house: Boardwalk jumps 50 -> 200 for $200 (0.75/$), beating
	// both brown streets (0.16/$ and 0.32/$) and Park Place (0.7/$).
	pos, ok := ChooseDevelopmentTarget(p, l.Developable(p), l)
	require.True(t, ok)
	assert.Equal(t, 39, pos)
}

func TestCurrentTargetColorAdvances(t *testing.T) {
	l := newLedger(t)
	p := player(models.StrategyColorFocused, "brown", "dark_blue")

	target, ok := CurrentTargetColor(p, l)
	require.True(t, ok)
	assert.Equal(t, "brown", target)

	own(t, l, p, 1, 3)
	target, ok = CurrentTargetColor(p, l)
	require.True(t, ok)
	assert.Equal(t, "dark_blue", target)

	own(t, l, p, 37, 39)
	_, ok = CurrentTargetColor(p, l)
	assert.False(t, ok)

	// A color missing from the board never completes.
	p2 := player(models.StrategyColorFocused, "chartreuse")
	target, ok = CurrentTargetColor(p2, l)
	require.True(t, ok)
	assert.Equal(t, "chartreuse", target)

	// No preference list means no target.
	p3 := player(models.StrategyColorFocused)
	_, ok = CurrentTargetColor(p3, l)
	assert.False(t, ok)
}

func TestCompletedGroups(t *testing.T) {
	l := newLedger(t)
	p := player(models.StrategyAggressive)
	assert.Empty(t, CompletedGroups(p, l))

	own(t, l, p, 1, 3, 37, 39)
	assert.Equal(t, []string{"brown", "dark_blue"}, CompletedGroups(p, l))
}
