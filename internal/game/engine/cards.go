package engine

import "github.com/boardwalklabs/tycoon/internal/game/models"

// card pairs a display name with its effect. Decks never run out; each
// draw picks uniformly from the deck.
type card struct {
	name  string
	apply func(*Game, *models.Player)
}

var communityChestDeck = []card{
	{"Advance to GO", (*Game).advanceToGo},
	{"Bank error in your favor", func(g *Game, p *models.Player) { p.Receive(200) }},
	{"Pay hospital fees", func(g *Game, p *models.Player) { p.Pay(100) }},
	{"Get out of jail free", func(g *Game, p *models.Player) { p.JailCards++ }},
}

var chanceDeck = []card{
	{"Advance to GO", (*Game).advanceToGo},
	{"Go to Jail", (*Game).sendToJail},
	{"Pay each player $50", func(g *Game, p *models.Player) { g.payEachPlayer(p, 50) }},
	{"Collect $150", func(g *Game, p *models.Player) { p.Receive(150) }},
}

func (g *Game) drawCommunityChest(p *models.Player) {
	c := communityChestDeck[g.rng.Intn(len(communityChestDeck))]
	g.logger.Debugf("%s draws community chest: %s", p.Name, c.name)
	c.apply(g, p)
}

func (g *Game) drawChance(p *models.Player) {
	c := chanceDeck[g.rng.Intn(len(chanceDeck))]
	g.logger.Debugf("%s draws chance: %s", p.Name, c.name)
	c.apply(g, p)
}

// advanceToGo moves the player straight to GO and pays the salary.
func (g *Game) advanceToGo(p *models.Player) {
	p.Position = GoPosition
	p.Receive(GoSalary)
}

// sendToJail books the player without passing GO.
func (g *Game) sendToJail(p *models.Player) {
	p.Position = JailPosition
	p.InJail = true
}

// payEachPlayer hands amount to every solvent opponent in roster order,
// stopping at the first payment the player cannot cover. Running dry
// here is not a bankruptcy.
func (g *Game) payEachPlayer(p *models.Player, amount int) {
	for _, other := range g.players {
		if other == p || other.Bankrupt {
			continue
		}
		if !p.Pay(amount) {
			break
		}
		other.Receive(amount)
	}
}
