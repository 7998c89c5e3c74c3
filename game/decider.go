package game

// JailAction is what an arrested player chooses to do.
type JailAction int

const (
	JailRoll JailAction = iota
	JailPay
	JailCard
)

func (a JailAction) String() string {
	switch a {
	case JailPay:
		return "pay"
	case JailCard:
		return "card"
	}
	return "roll"
}

// Decider makes the choices for one player. The engine calls it in turn, on
// the engine's own goroutine.
type Decider interface {
	// WantToBuy is asked when standing on a field the bank owns.
	WantToBuy(g *Game, p *Player, f Buyable) bool
	// Bid returns the bid to make, or false to pass.
	Bid(g *Game, a *Auction, p *Player) (int, bool)
	// JailAction is asked at the start of each turn in jail.
	JailAction(g *Game, p *Player) JailAction
	// RaiseMoney should sell or mortgage until the player has debt in cash.
	RaiseMoney(g *Game, p *Player, debt int)
	// Pricing is asked of an owner when someone wants their field. False
	// means it is not for sale.
	Pricing(g *Game, owner *Player, f Buyable, buyer *Player) (int, bool)
	// AcceptPrice is asked of the buyer once the owner has named a price.
	AcceptPrice(g *Game, buyer *Player, f Buyable, price int) bool
	// TurnActions is the free part of the turn, after moving. Building,
	// mortgaging and trading happen here.
	TurnActions(e *Engine, p *Player)
}
