package engine

import (
	"github.com/boardwalklabs/tycoon/internal/game/models"
	"github.com/boardwalklabs/tycoon/internal/game/strategy"
)

// PlayerSummary is one seat's final standing after a game.
type PlayerSummary struct {
	Name        string          `json:"name"`
	Strategy    models.Strategy `json:"strategy"`
	Cash        int             `json:"cash"`
	NetWorth    int             `json:"netWorth"`
	Properties  int             `json:"properties"`
	Houses      int             `json:"houses"`
	Hotels      int             `json:"hotels"`
	Bankrupt    bool            `json:"bankrupt"`
	Monopolies  []string        `json:"monopolies,omitempty"`
	TargetColor string          `json:"targetColor,omitempty"`
	Holdings    []Holding       `json:"holdings,omitempty"`
}

// Holding is one deed with its development level.
type Holding struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

// Summaries reports every seat's final standing in roster order.
func (g *Game) Summaries() []PlayerSummary {
	out := make([]PlayerSummary, 0, len(g.players))
	for _, p := range g.players {
		houses, hotels := g.ledger.BuildingsOwned(p)
		s := PlayerSummary{
			Name:       p.Name,
			Strategy:   p.Strategy,
			Cash:       p.Cash,
			NetWorth:   g.ledger.NetWorth(p),
			Properties: len(p.Properties),
			Houses:     houses,
			Hotels:     hotels,
			Bankrupt:   p.Bankrupt,
			Monopolies: strategy.CompletedGroups(p, g.ledger),
		}
		if target, ok := strategy.CurrentTargetColor(p, g.ledger); ok {
			s.TargetColor = target
		}
		for _, pos := range p.Properties {
			s.Holdings = append(s.Holdings, Holding{
				Position: pos,
				Name:     g.propName(pos),
				Level:    g.ledger.LevelAt(pos),
			})
		}
		out = append(out, s)
	}
	return out
}
