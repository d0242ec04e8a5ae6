// Package strategy implements the scripted buying and building
// policies seats can play. All decisions are pure functions of the
// player, the ledger, and the game's random source, so identically
// seeded games replay identically.
package strategy

import (
	"math"
	"math/rand"

	"github.com/boardwalklabs/tycoon/internal/game/board"
	"github.com/boardwalklabs/tycoon/internal/game/models"
)

// ShouldBuy decides whether the player takes an unowned property at
// its list price. No policy buys what it cannot pay for.
func ShouldBuy(rng *rand.Rand, p *models.Player, prop models.Property, ledger *board.Ledger) bool {
	if p.Cash < prop.Price {
		return false
	}
	switch p.Strategy {
	case models.StrategyRandom:
		return rng.Float64() < 0.6
	case models.StrategyColorFocused:
		return rng.Float64() < colorFocusedChance(p, prop, ledger)
	case models.StrategyConservative:
		return p.Cash > prop.Price*3
	case models.StrategyAggressive:
		return p.Cash > prop.Price+100
	case models.StrategyHouseHoarder:
		return p.Cash > prop.Price+10
	}
	return false
}

// colorFocusedChance scores an offer for a COLOR_FOCUSED player. With a
// preference list, the current target color is wanted at 0.85, boosted
// toward 0.95 as the group fills in; colors further down the list decay
// by 0.1 per rank; anything unlisted is taken at 0.1. Without a list
// the player leans on group completion alone.
func colorFocusedChance(p *models.Player, prop models.Property, ledger *board.Ledger) float64 {
	ownedInGroup := ledger.OwnedInGroup(p, prop.ColorGroup)
	groupSize := len(ledger.Catalog().PositionsInGroup(prop.ColorGroup))

	if len(p.PreferredColors) == 0 {
		chance := 0.4
		if ownedInGroup > 0 && groupSize > 0 {
			chance += 0.3 * float64(ownedInGroup) / float64(groupSize)
		}
		return chance
	}

	target, hasTarget := CurrentTargetColor(p, ledger)
	switch {
	case !hasTarget:
		return 0.15
	case prop.ColorGroup == target:
		chance := 0.85
		if ownedInGroup > 0 && groupSize > 0 {
			chance = math.Min(0.95, chance+0.1*float64(ownedInGroup)/float64(groupSize))
		}
		return chance
	default:
		if rank := indexOf(p.PreferredColors, prop.ColorGroup); rank >= 0 {
			return math.Max(0.1, 0.4-0.1*float64(rank))
		}
		return 0.1
	}
}

// ShouldDevelop decides whether the player spends on buildings this
// turn. Each policy keeps its own cash floor.
func ShouldDevelop(rng *rand.Rand, p *models.Player) bool {
	switch p.Strategy {
	case models.StrategyAggressive:
		return p.Cash > 500
	case models.StrategyConservative:
		return p.Cash > 1000
	case models.StrategyColorFocused:
		return p.Cash > 300
	case models.StrategyHouseHoarder:
		return p.Cash > 200
	default:
		return rng.Float64() < 0.3 && p.Cash > 400
	}
}

// ChooseDevelopmentTarget picks the candidate street to build on next.
// It reports false when the player declines every candidate, which for
// a HOUSE_HOARDER happens once only hotel upgrades remain.
func ChooseDevelopmentTarget(p *models.Player, candidates []int, ledger *board.Ledger) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	if p.Strategy == models.StrategyHouseHoarder {
		// Houses only, never hotels, spread across the thinnest streets.
		best, bestLevel := -1, 0
		for _, pos := range candidates {
			lv := ledger.LevelAt(pos)
			if lv >= models.MaxHouses {
				continue
			}
			if best == -1 || lv < bestLevel {
				best, bestLevel = pos, lv
			}
		}
		if best == -1 {
			return 0, false
		}
		return best, true
	}

	if p.Strategy == models.StrategyColorFocused && len(p.PreferredColors) > 0 {
		for _, color := range p.PreferredColors {
			for _, pos := range candidates {
				if prop, ok := ledger.Catalog().At(pos); ok && prop.ColorGroup == color {
					return pos, true
				}
			}
		}
	}

	// Default: best rent increase per dollar of house cost, first
	// candidate winning ties. When nothing improves rent, settle for
	// the first candidate anyway.
	best, bestRatio := -1, 0.0
	for _, pos := range candidates {
		prop, ok := ledger.Catalog().At(pos)
		if !ok {
			continue
		}
		level := ledger.LevelAt(pos)
		current := prop.RentAt(level)
		next := prop.RentAt(models.HotelLevel)
		if level < models.MaxHouses {
			next = prop.RentAt(level + 1)
		}
		ratio := float64(next-current) / float64(prop.HouseCost)
		if ratio > bestRatio {
			best, bestRatio = pos, ratio
		}
	}
	if best == -1 {
		best = candidates[0]
	}
	return best, true
}

// CurrentTargetColor returns the first color on the player's preference
// list they have not completed. It reports false when the player has no
// list or has finished every listed color.
func CurrentTargetColor(p *models.Player, ledger *board.Ledger) (string, bool) {
	for _, color := range p.PreferredColors {
		if !ledger.OwnsColorGroup(p, color) {
			return color, true
		}
	}
	return "", false
}

// CompletedGroups lists the street color groups the player fully owns,
// sorted by group name.
func CompletedGroups(p *models.Player, ledger *board.Ledger) []string {
	var done []string
	for _, group := range ledger.Catalog().StreetGroups() {
		if ledger.OwnsColorGroup(p, group) {
			done = append(done, group)
		}
	}
	return done
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
