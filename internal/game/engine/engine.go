// Package engine drives a single game from seating to a winner: turn
// sequencing, jail handling, special spaces, card draws, rent
// settlement, purchases, and the development phase.
package engine

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/boardwalklabs/tycoon/internal/game/board"
	"github.com/boardwalklabs/tycoon/internal/game/models"
	"github.com/boardwalklabs/tycoon/internal/game/strategy"
)

// Fixed spaces and table stakes of the standard layout.
const (
	GoPosition          = 0
	IncomeTaxPosition   = 4
	JailPosition        = 10
	FreeParkingPosition = 20
	GoToJailPosition    = 30
	LuxuryTaxPosition   = 38

	GoSalary  = 200
	JailFee   = 50
	IncomeTax = 200
	LuxuryTax = 100

	maxJailTurns     = 3
	maxBuildsPerTurn = 3
)

// TerminalReason records how a game ended.
type TerminalReason string

const (
	// ReasonLastStanding means every other seat went bankrupt.
	ReasonLastStanding TerminalReason = "LAST_STANDING"
	// ReasonTurnLimit means the round cap was reached and the richest
	// seat was declared the winner.
	ReasonTurnLimit TerminalReason = "TURN_LIMIT"
)

// Params configures a single game.
type Params struct {
	Seats    []models.Seat
	MaxTurns int
	Seed     int64
	Catalog  *board.Catalog // nil selects the standard board
}

// Game is one match in progress. A Game is not safe for concurrent
// use; the batch runner gives every game its own instance.
type Game struct {
	logger    *zap.SugaredLogger
	rng       *rand.Rand
	dice      *Dice
	ledger    *board.Ledger
	players   []*models.Player
	current   int
	turnCount int
	maxTurns  int
	over      bool
	winner    *models.Player
	reason    TerminalReason
}

// New seats the roster on a fresh board. All randomness in the game
// flows from the given seed, so equal parameters replay equal games.
func New(params Params, logger *zap.SugaredLogger) (*Game, error) {
	if len(params.Seats) == 0 {
		return nil, fmt.Errorf("no seats configured")
	}
	if params.MaxTurns <= 0 {
		return nil, fmt.Errorf("max turns must be positive, got %d", params.MaxTurns)
	}

	catalog := params.Catalog
	if catalog == nil {
		var err error
		catalog, err = board.Default()
		if err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(params.Seed))
	g := &Game{
		logger:   logger,
		rng:      rng,
		dice:     NewDice(rng),
		ledger:   board.NewLedger(catalog),
		players:  make([]*models.Player, 0, len(params.Seats)),
		maxTurns: params.MaxTurns,
	}
	for _, seat := range params.Seats {
		g.players = append(g.players, models.NewPlayer(seat))
	}
	return g, nil
}

// PlayGame runs turns until the game ends and returns the winner, or
// nil if no seat survived.
func (g *Game) PlayGame() *models.Player {
	for !g.over {
		g.PlayTurn()
	}
	if g.winner != nil {
		g.logger.Debugf("game over after %d rounds: %s (%s) wins",
			g.turnCount, g.winner.Name, g.winner.Strategy)
	}
	return g.winner
}

// PlayTurn advances the game by one seat's turn. Calling it on a
// finished game is a no-op.
func (g *Game) PlayTurn() {
	if g.over {
		return
	}
	p := g.players[g.current]
	if p.Bankrupt {
		g.nextPlayer()
		return
	}

	// The roll happens before the jail check so doubles can spring the
	// player; the same roll then moves them.
	d1, d2 := g.dice.Roll()

	if p.InJail && !g.resolveJail(p, d1 == d2) {
		g.nextPlayer()
		return
	}

	passedGo := p.MoveBy(d1+d2, models.BoardSize)
	g.logger.Debugf("%s rolls %d+%d and lands on space %d", p.Name, d1, d2, p.Position)
	if passedGo {
		p.Receive(GoSalary)
		g.logger.Debugf("%s passes GO and collects $%d", p.Name, GoSalary)
	}

	g.applySpaceEffect(p)
	if !p.Bankrupt {
		g.handlePropertyLanding(p)
	}
	if !p.Bankrupt {
		g.developmentPhase(p)
	}

	g.nextPlayer()
}

// resolveJail works through the player's options in priority order:
// spend a card, roll doubles, pay the fee. A player who can do none of
// those sits out the turn; on the third stuck turn the fee becomes
// mandatory and an uncovered fee means bankruptcy. Spending a card does
// not reset the stuck-turn counter.
func (g *Game) resolveJail(p *models.Player, doubles bool) bool {
	switch {
	case p.JailCards > 0:
		p.JailCards--
		p.InJail = false
		g.logger.Debugf("%s plays a get-out-of-jail card", p.Name)
		return true
	case doubles:
		p.InJail = false
		p.JailTurns = 0
		g.logger.Debugf("%s rolls doubles and walks out of jail", p.Name)
		return true
	case p.Pay(JailFee):
		p.InJail = false
		p.JailTurns = 0
		g.logger.Debugf("%s pays the $%d jail fee", p.Name, JailFee)
		return true
	default:
		p.JailTurns++
		if p.JailTurns >= maxJailTurns {
			if p.Pay(JailFee) {
				p.InJail = false
				p.JailTurns = 0
				return true
			}
			p.Bankrupt = true
			g.logger.Debugf("%s cannot cover the jail fee and goes bankrupt", p.Name)
			return false
		}
		g.logger.Debugf("%s stays in jail (turn %d there)", p.Name, p.JailTurns)
		return false
	}
}

// applySpaceEffect applies whatever the landed space does before any
// property business. GO, jail visiting, and free parking do nothing.
// Taxes that the player cannot cover are skipped.
func (g *Game) applySpaceEffect(p *models.Player) {
	switch p.Position {
	case GoToJailPosition:
		g.sendToJail(p)
		g.logger.Debugf("%s is sent to jail", p.Name)
	case 2, 17, 33:
		g.drawCommunityChest(p)
	case 7, 22, 36:
		g.drawChance(p)
	case IncomeTaxPosition:
		if p.Pay(IncomeTax) {
			g.logger.Debugf("%s pays $%d income tax", p.Name, IncomeTax)
		}
	case LuxuryTaxPosition:
		if p.Pay(LuxuryTax) {
			g.logger.Debugf("%s pays $%d luxury tax", p.Name, LuxuryTax)
		}
	}
}

// handlePropertyLanding settles the player's business on a purchasable
// space: pay rent to a solvent owner, or consider buying an unowned
// deed. Rent the player cannot cover bankrupts them and pays the owner
// nothing.
func (g *Game) handlePropertyLanding(p *models.Player) {
	pos := p.Position
	prop, ok := g.ledger.Catalog().At(pos)
	if !ok {
		return
	}

	if owner, owned := g.ledger.OwnerOf(pos); owned {
		if owner == p || owner.Bankrupt {
			return
		}
		rent := g.ledger.RentOwed(owner, pos, g.utilityRoll(prop))
		if p.Pay(rent) {
			owner.Receive(rent)
			g.logger.Debugf("%s pays %s $%d rent for %s", p.Name, owner.Name, rent, prop.Name)
		} else {
			p.Bankrupt = true
			g.logger.Debugf("%s cannot cover $%d rent for %s and goes bankrupt", p.Name, rent, prop.Name)
		}
		return
	}

	if strategy.ShouldBuy(g.rng, p, prop, g.ledger) && g.ledger.Buy(pos, p) {
		g.logger.Debugf("%s buys %s for $%d", p.Name, prop.Name, prop.Price)
	}
}

func (g *Game) utilityRoll(prop models.Property) int {
	if prop.Type != models.PropertyTypeUtility {
		return 0
	}
	return g.dice.RollSum()
}

// developmentPhase lets the player build up to three times, re-deriving
// the candidate list after every successful build. The phase stops at
// the first refused or failed build.
func (g *Game) developmentPhase(p *models.Player) {
	candidates := g.ledger.Developable(p)
	builds := 0
	for len(candidates) > 0 && builds < maxBuildsPerTurn && strategy.ShouldDevelop(g.rng, p) {
		pos, ok := strategy.ChooseDevelopmentTarget(p, candidates, g.ledger)
		if !ok {
			break
		}

		var built bool
		if g.ledger.LevelAt(pos) == models.MaxHouses {
			built = g.ledger.BuildHotel(pos, p)
			if built {
				g.logger.Debugf("%s builds a hotel on %s", p.Name, g.propName(pos))
			}
		} else {
			built = g.ledger.BuildHouse(pos, p)
			if built {
				g.logger.Debugf("%s builds a house on %s (now %d)", p.Name, g.propName(pos), g.ledger.LevelAt(pos))
			}
		}
		if !built {
			break
		}
		builds++
		candidates = g.ledger.Developable(p)
	}
}

// nextPlayer passes the turn and checks the end conditions: one seat
// left standing, or the round cap with the richest seat winning.
func (g *Game) nextPlayer() {
	g.current = (g.current + 1) % len(g.players)
	if g.current == 0 {
		g.turnCount++
	}

	active := 0
	var last *models.Player
	for _, p := range g.players {
		if !p.Bankrupt {
			active++
			last = p
		}
	}

	switch {
	case active <= 1:
		g.over = true
		g.reason = ReasonLastStanding
		g.winner = last
	case g.turnCount >= g.maxTurns:
		g.over = true
		g.reason = ReasonTurnLimit
		g.winner = g.richest()
	}
}

// richest values every seat, bankrupt or not, at cash plus deed list
// prices. Earlier seats win ties.
func (g *Game) richest() *models.Player {
	best := g.players[0]
	bestWorth := g.ledger.NetWorth(best)
	for _, p := range g.players[1:] {
		if worth := g.ledger.NetWorth(p); worth > bestWorth {
			best, bestWorth = p, worth
		}
	}
	return best
}

func (g *Game) propName(pos int) string {
	if prop, ok := g.ledger.Catalog().At(pos); ok {
		return prop.Name
	}
	return fmt.Sprintf("space %d", pos)
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// Winner returns the winning player once the game is over.
func (g *Game) Winner() *models.Player {
	return g.winner
}

// Turns returns the number of completed rounds.
func (g *Game) Turns() int {
	return g.turnCount
}

// Reason returns how the game ended.
func (g *Game) Reason() TerminalReason {
	return g.reason
}

// Ledger exposes the game's board state.
func (g *Game) Ledger() *board.Ledger {
	return g.ledger
}

// Players returns the seats in roster order.
func (g *Game) Players() []*models.Player {
	return g.players
}
