// Package board holds the property catalog for a board layout and the
// per-game ownership ledger built on top of it. The catalog is immutable
// after loading; all mutable state lives in the Ledger.
package board

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/boardwalklabs/tycoon/internal/game/models"
)

//go:embed board.yaml
var defaultBoard []byte

// Catalog is the set of purchasable properties on a board, indexed by
// position.
type Catalog struct {
	props     map[int]models.Property
	positions []int
	streets   map[string][]int // color group -> street positions
	groups    map[string][]int // color group -> all positions
}

type boardFile struct {
	Properties []models.Property `yaml:"properties"`
}

// Default returns the catalog for the standard board compiled into the
// binary.
func Default() (*Catalog, error) {
	return parse(defaultBoard)
}

// LoadFile reads a custom board layout from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("board file %s: %w", path, err)
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var bf boardFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse board data: %w", err)
	}
	return New(bf.Properties)
}

// New validates a property list and builds a catalog from it.
func New(props []models.Property) (*Catalog, error) {
	if len(props) == 0 {
		return nil, fmt.Errorf("board defines no properties")
	}

	c := &Catalog{
		props:   make(map[int]models.Property, len(props)),
		streets: make(map[string][]int),
		groups:  make(map[string][]int),
	}

	for _, p := range props {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		if _, dup := c.props[p.Position]; dup {
			return nil, fmt.Errorf("duplicate property at position %d", p.Position)
		}
		if p.MortgageValue == 0 {
			p.MortgageValue = p.Price / 2
		}
		c.props[p.Position] = p
		c.positions = append(c.positions, p.Position)
		c.groups[p.ColorGroup] = append(c.groups[p.ColorGroup], p.Position)
		if p.Type == models.PropertyTypeStreet {
			c.streets[p.ColorGroup] = append(c.streets[p.ColorGroup], p.Position)
		}
	}

	sort.Ints(c.positions)
	for _, group := range c.groups {
		sort.Ints(group)
	}
	for _, group := range c.streets {
		sort.Ints(group)
	}

	return c, nil
}

func validate(p models.Property) error {
	if p.Name == "" {
		return fmt.Errorf("missing name")
	}
	if p.Position < 0 || p.Position >= models.BoardSize {
		return fmt.Errorf("position %d outside board", p.Position)
	}
	switch p.Type {
	case models.PropertyTypeStreet:
		if p.ColorGroup == "" {
			return fmt.Errorf("street without color group")
		}
		if len(p.Rent) < models.HotelLevel {
			return fmt.Errorf("rent schedule has %d entries, need at least %d", len(p.Rent), models.HotelLevel)
		}
		if p.HouseCost <= 0 {
			return fmt.Errorf("street without house cost")
		}
	case models.PropertyTypeRailroad, models.PropertyTypeUtility:
		if len(p.Rent) == 0 {
			return fmt.Errorf("empty rent schedule")
		}
	case models.PropertyTypeSpecial:
		return fmt.Errorf("special spaces are not listed in the catalog")
	default:
		return fmt.Errorf("unknown property type %q", p.Type)
	}
	if p.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	for _, r := range p.Rent {
		if r < 0 {
			return fmt.Errorf("negative rent")
		}
	}
	return nil
}

// At returns the property at a position, if one exists there.
func (c *Catalog) At(pos int) (models.Property, bool) {
	p, ok := c.props[pos]
	return p, ok
}

// Len returns the number of purchasable properties on the board.
func (c *Catalog) Len() int {
	return len(c.props)
}

// Positions returns every purchasable position in ascending order.
func (c *Catalog) Positions() []int {
	return c.positions
}

// StreetsInGroup returns the street positions belonging to a color
// group, in ascending order. Railroad and utility groups are empty.
func (c *Catalog) StreetsInGroup(group string) []int {
	return c.streets[group]
}

// PositionsInGroup returns every position sharing a color group label,
// regardless of property type.
func (c *Catalog) PositionsInGroup(group string) []int {
	return c.groups[group]
}

// StreetGroups returns the names of all street color groups in sorted
// order.
func (c *Catalog) StreetGroups() []string {
	names := make([]string, 0, len(c.streets))
	for name := range c.streets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Groups returns the names of all color groups, including railroad and
// utility pseudo-groups, in sorted order.
func (c *Catalog) Groups() []string {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
