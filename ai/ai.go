// Package ai plays for players nobody is sitting at.
package ai

import (
	"github.com/rs/zerolog"

	"github.com/undeconstructed/monopoly/game"
)

const (
	// BuyReserve is the cash kept back when buying or bidding
	BuyReserve = 300
	// UpgradeReserve is the cash kept back when building
	UpgradeReserve = 500
	// StayInJailRounds is how long into the game jail is worth staying in
	StayInJailRounds = 5
)

var _ game.Decider = (*Policy)(nil)

// Policy is a simple, greedy player. It keeps some cash back, bids the
// minimum and tries to complete and build on districts.
type Policy struct {
	source game.Source
	log    zerolog.Logger
}

// NewPolicy makes a policy drawing its random choices from source.
func NewPolicy(source game.Source, log zerolog.Logger) *Policy {
	return &Policy{source: source, log: log}
}

// WantToBuy says if buying the field leaves enough cash.
func WantToBuy(p *game.Player, f game.Buyable) bool {
	return p.Money()-f.Price() >= BuyReserve
}

// WantToUpgrade says if building leaves enough cash.
func WantToUpgrade(p *game.Player, housePrice int) bool {
	return p.Money()-housePrice >= UpgradeReserve
}

// DepositDecision says if paying to leave jail leaves enough cash.
func DepositDecision(p *game.Player, deposit int) bool {
	return p.Money()-deposit >= BuyReserve
}

// UseCardDecision says if there is a card to use.
func UseCardDecision(p *game.Player) bool {
	return p.GetOutCards() > 0
}

// WantToStayInJail is true early in the game, when jail costs turns that
// would be spent buying.
func WantToStayInJail(round int) bool {
	return round <= StayInJailRounds
}

// WantToBid returns the bid to make in an auction, or false to pass. The
// bid is always the smallest allowed.
func (a *Policy) WantToBid(p *game.Player, auction *game.Auction) (int, bool) {
	current := auction.CurrentBid
	if auction.Leader == nil {
		current = auction.StartBid
	}
	next := current + auction.Step
	if p.Money()-next < BuyReserve {
		return 0, false
	}
	if next > auction.Field.Price() {
		return 0, false
	}
	if a.source.Between(1, 10) > 9 {
		return 0, false
	}
	return auction.MinimumBid(), true
}

// Price asks between the bank price and twice that.
func (a *Policy) Price(f game.Buyable) int {
	return a.source.Between(f.Price(), 2*f.Price())
}

// ReplyForPricing takes an offer that is affordable and not above what the
// player would have asked for it.
func (a *Policy) ReplyForPricing(p *game.Player, f game.Buyable, price int) bool {
	return WantToBuy(p, f) && price <= a.Price(f)
}

// EarnFromHouses sells houses until the debt is covered.
func EarnFromHouses(p *game.Player, debt int) bool {
	return game.SellHouses(p, debt)
}

// EarnFromFields sells fields until the debt is covered.
func EarnFromFields(p *game.Player, debt int) bool {
	return game.SellFields(p, debt)
}

func (a *Policy) WantToBuy(g *game.Game, p *game.Player, f game.Buyable) bool {
	return WantToBuy(p, f)
}

func (a *Policy) Bid(g *game.Game, auction *game.Auction, p *game.Player) (int, bool) {
	return a.WantToBid(p, auction)
}

func (a *Policy) JailAction(g *game.Game, p *game.Player) game.JailAction {
	switch {
	case WantToStayInJail(g.CurrentRound()):
		return game.JailRoll
	case UseCardDecision(p):
		return game.JailCard
	case DepositDecision(p, g.Settings().Deposit):
		return game.JailPay
	}
	return game.JailRoll
}

func (a *Policy) RaiseMoney(g *game.Game, p *game.Player, debt int) {
	if !EarnFromHouses(p, debt) {
		EarnFromFields(p, debt)
	}
}

func (a *Policy) Pricing(g *game.Game, owner *game.Player, f game.Buyable, buyer *game.Player) (int, bool) {
	return a.Price(f), true
}

func (a *Policy) AcceptPrice(g *game.Game, buyer *game.Player, f game.Buyable, price int) bool {
	return a.ReplyForPricing(buyer, f, price)
}

// TurnActions tries to buy whatever would complete a district, then builds
// on one full district.
func (a *Policy) TurnActions(e *game.Engine, p *game.Player) {
	g := e.Game()
	for _, id := range MissingFieldIDs(p, g.Fields()) {
		for _, f := range g.FieldsForSell() {
			if f.ID() != id {
				continue
			}
			if _, err := e.Trade(p, f); err != nil {
				a.log.Debug().Err(err).Int("player", p.ID()).Int("field", id).Msg("trade")
			}
		}
	}

	for _, id := range a.BuildHousesIDs(p) {
		f, ok := p.Field(id)
		if !ok {
			continue
		}
		prop := f.(*game.Property)
		if !WantToUpgrade(p, prop.HousePrice()) {
			continue
		}
		status := game.TryBuildHouse(prop)
		a.log.Debug().Int("player", p.ID()).Int("field", id).Str("status", status.String()).Msg("build")
	}
}
