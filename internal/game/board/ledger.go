package board

import (
	"github.com/boardwalklabs/tycoon/internal/game/models"
)

// Bank building stock available to a single game.
const (
	HousePool = 32
	HotelPool = 12
)

// Ledger tracks the mutable board state of one game: deed ownership,
// street development levels, and the bank's remaining building stock.
// Deeds held by a bankrupt player stay on the ledger; they charge no
// rent and never return to the market.
type Ledger struct {
	catalog *Catalog
	owners  map[int]*models.Player
	levels  map[int]int
	houses  int
	hotels  int
}

// NewLedger creates an empty ledger over a catalog with a full bank.
func NewLedger(c *Catalog) *Ledger {
	return &Ledger{
		catalog: c,
		owners:  make(map[int]*models.Player),
		levels:  make(map[int]int),
		houses:  HousePool,
		hotels:  HotelPool,
	}
}

// Catalog returns the board layout this ledger tracks.
func (l *Ledger) Catalog() *Catalog {
	return l.catalog
}

// IsOwned reports whether the deed at a position has been sold.
func (l *Ledger) IsOwned(pos int) bool {
	_, ok := l.owners[pos]
	return ok
}

// OwnerOf returns the player holding the deed at a position.
func (l *Ledger) OwnerOf(pos int) (*models.Player, bool) {
	p, ok := l.owners[pos]
	return p, ok
}

// LevelAt returns the development level of a street: 0 undeveloped,
// 1-4 houses, 5 hotel.
func (l *Ledger) LevelAt(pos int) int {
	return l.levels[pos]
}

// HousesRemaining returns the bank's house stock.
func (l *Ledger) HousesRemaining() int {
	return l.houses
}

// HotelsRemaining returns the bank's hotel stock.
func (l *Ledger) HotelsRemaining() int {
	return l.hotels
}

// Buy transfers the deed at pos to the player for its list price. The
// purchase fails without side effects if the position has no property,
// the deed is already owned, or the player cannot cover the price.
func (l *Ledger) Buy(pos int, p *models.Player) bool {
	prop, ok := l.catalog.At(pos)
	if !ok || l.IsOwned(pos) {
		return false
	}
	if !p.Pay(prop.Price) {
		return false
	}
	l.owners[pos] = p
	p.AddProperty(pos)
	return true
}

// OwnsColorGroup reports whether the player holds every street in a
// color group. Groups with no streets (railroad, utility) never count
// as monopolies.
func (l *Ledger) OwnsColorGroup(p *models.Player, group string) bool {
	streets := l.catalog.StreetsInGroup(group)
	if len(streets) == 0 {
		return false
	}
	for _, pos := range streets {
		if l.owners[pos] != p {
			return false
		}
	}
	return true
}

// OwnedInGroup counts the player's deeds carrying a color group label,
// regardless of property type.
func (l *Ledger) OwnedInGroup(p *models.Player, group string) int {
	n := 0
	for _, pos := range p.Properties {
		if prop, ok := l.catalog.At(pos); ok && prop.ColorGroup == group {
			n++
		}
	}
	return n
}

// CanBuildOn reports whether the player may add a house anywhere in a
// color group: they must hold the monopoly and the house counts across
// the group must not be spread more than one apart.
func (l *Ledger) CanBuildOn(group string, p *models.Player) bool {
	if !l.OwnsColorGroup(p, group) {
		return false
	}
	min, max := l.levelSpread(group)
	return max-min <= 1
}

func (l *Ledger) levelSpread(group string) (int, int) {
	streets := l.catalog.StreetsInGroup(group)
	min, max := l.levels[streets[0]], l.levels[streets[0]]
	for _, pos := range streets[1:] {
		lv := l.levels[pos]
		if lv < min {
			min = lv
		}
		if lv > max {
			max = lv
		}
	}
	return min, max
}

// BuildHouse adds one house to the street at pos. Houses go up evenly:
// the street must sit at its group's minimum level, so the spread never
// exceeds one after the build. The build fails without side effects
// unless the group passes CanBuildOn, the street is at the group
// minimum and below four houses, the bank has houses left, and the
// player can pay the house cost.
func (l *Ledger) BuildHouse(pos int, p *models.Player) bool {
	prop, ok := l.catalog.At(pos)
	if !ok || prop.Type != models.PropertyTypeStreet {
		return false
	}
	if !l.CanBuildOn(prop.ColorGroup, p) {
		return false
	}
	if min, _ := l.levelSpread(prop.ColorGroup); l.levels[pos] != min {
		return false
	}
	if l.levels[pos] >= models.MaxHouses {
		return false
	}
	if l.houses <= 0 {
		return false
	}
	if !p.Pay(prop.HouseCost) {
		return false
	}
	l.levels[pos]++
	l.houses--
	return true
}

// BuildHotel upgrades a four-house street to a hotel, returning its
// four houses to the bank. It requires exactly four houses on the
// street, hotel stock in the bank, and a covered payment.
func (l *Ledger) BuildHotel(pos int, p *models.Player) bool {
	prop, ok := l.catalog.At(pos)
	if !ok || prop.Type != models.PropertyTypeStreet {
		return false
	}
	if l.levels[pos] != models.MaxHouses {
		return false
	}
	if l.hotels <= 0 {
		return false
	}
	if !p.Pay(prop.HouseCost) {
		return false
	}
	l.levels[pos] = models.HotelLevel
	l.houses += models.MaxHouses
	l.hotels--
	return true
}

// Developable returns the positions where the player may build this
// turn, in deed acquisition order. For each fully owned color group it
// offers the streets at the group's minimum level (below four houses)
// plus any four-house street when the bank still has hotels.
func (l *Ledger) Developable(p *models.Player) []int {
	var order []string
	byGroup := make(map[string][]int)
	for _, pos := range p.Properties {
		prop, ok := l.catalog.At(pos)
		if !ok || prop.Type != models.PropertyTypeStreet {
			continue
		}
		if _, seen := byGroup[prop.ColorGroup]; !seen {
			order = append(order, prop.ColorGroup)
		}
		byGroup[prop.ColorGroup] = append(byGroup[prop.ColorGroup], pos)
	}

	var out []int
	for _, group := range order {
		if !l.OwnsColorGroup(p, group) {
			continue
		}
		min, _ := l.levelSpread(group)
		for _, pos := range byGroup[group] {
			lv := l.levels[pos]
			switch {
			case lv == min && lv < models.MaxHouses:
				out = append(out, pos)
			case lv == models.MaxHouses && l.hotels > 0:
				out = append(out, pos)
			}
		}
	}
	return out
}

// CurrentRent returns the scheduled rent of the property at pos given
// its current development level. Doubling for an undeveloped monopoly
// street is applied by RentOwed, not here.
func (l *Ledger) CurrentRent(pos int) int {
	prop, ok := l.catalog.At(pos)
	if !ok {
		return 0
	}
	return prop.RentAt(l.levels[pos])
}

// RentOwed computes the rent a visitor owes the owner for landing on
// pos. Railroad rent doubles per railroad the owner holds; utility rent
// multiplies a fresh two-die roll by 4, or by 10 when the owner holds
// both utilities; street rent follows the development schedule, with
// the base rent doubled on an undeveloped monopoly.
func (l *Ledger) RentOwed(owner *models.Player, pos int, utilityRoll int) int {
	prop, ok := l.catalog.At(pos)
	if !ok {
		return 0
	}
	switch prop.Type {
	case models.PropertyTypeRailroad:
		n := l.ownedOfType(owner, models.PropertyTypeRailroad)
		if n == 0 {
			return 0
		}
		return prop.RentAt(0) * (1 << (n - 1))
	case models.PropertyTypeUtility:
		n := l.ownedOfType(owner, models.PropertyTypeUtility)
		if n == 2 {
			return utilityRoll * 10
		}
		return utilityRoll * 4
	default:
		level := l.levels[pos]
		if level > 0 {
			return prop.RentAt(level)
		}
		base := prop.RentAt(0)
		if l.OwnsColorGroup(owner, prop.ColorGroup) {
			return base * 2
		}
		return base
	}
}

func (l *Ledger) ownedOfType(p *models.Player, t models.PropertyType) int {
	n := 0
	for _, pos := range p.Properties {
		if prop, ok := l.catalog.At(pos); ok && prop.Type == t {
			n++
		}
	}
	return n
}

// BuildingsOwned totals the player's standing houses and hotels. A
// hotel does not count toward the house total.
func (l *Ledger) BuildingsOwned(p *models.Player) (houses, hotels int) {
	for _, pos := range p.Properties {
		lv := l.levels[pos]
		if lv == models.HotelLevel {
			hotels++
		} else {
			houses += lv
		}
	}
	return houses, hotels
}

// NetWorth values a player as cash on hand plus the list price of every
// deed they hold.
func (l *Ledger) NetWorth(p *models.Player) int {
	total := p.Cash
	for _, pos := range p.Properties {
		if prop, ok := l.catalog.At(pos); ok {
			total += prop.Price
		}
	}
	return total
}
