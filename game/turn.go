package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Change is one thing that happened, for news.
type Change struct {
	Round int    `json:"round"`
	Who   string `json:"who"`
	What  string `json:"what"`
	Where int    `json:"where"`
}

// Update is sent to the observer after every turn.
type Update struct {
	State GameState `json:"state"`
	News  []Change  `json:"news"`
}

// Engine drives a game turn by turn, asking each player's decider whenever
// there is a choice to make.
type Engine struct {
	g        *Game
	deciders map[int]Decider
	log      zerolog.Logger

	news     []Change
	observer func(Update)
}

// NewEngine makes an engine for a game that has its players and fields set.
func NewEngine(g *Game, deciders map[int]Decider, log zerolog.Logger) (*Engine, error) {
	for _, p := range g.Players() {
		if deciders[p.id] == nil {
			return nil, fmt.Errorf("no decider for player %d: %w", p.id, ErrInvalidId)
		}
	}
	if g.Jail() == nil {
		return nil, fmt.Errorf("board has no jail: %w", ErrInvalidId)
	}
	return &Engine{
		g:        g,
		deciders: deciders,
		log:      log,
	}, nil
}

// Game is the game being played.
func (e *Engine) Game() *Game { return e.g }

// Observe sets a function that gets every update. It is called on the
// engine's goroutine.
func (e *Engine) Observe(f func(Update)) { e.observer = f }

// News takes the events collected since it was last called.
func (e *Engine) News() []Change {
	out := e.news
	e.news = nil
	return out
}

func (e *Engine) decider(p *Player) Decider {
	return e.deciders[p.id]
}

func (e *Engine) addEvent(p *Player, msg string) {
	c := Change{Round: e.g.currentRound, Who: "bank", What: msg, Where: NoPosition}
	if p != nil {
		c.Who = p.name
		c.Where = p.position
	}
	e.news = append(e.news, c)
	e.log.Debug().Str("who", c.Who).Int("round", c.Round).Msg(msg)
}

func (e *Engine) addEventf(p *Player, format string, a ...interface{}) {
	e.addEvent(p, fmt.Sprintf(format, a...))
}

// Run plays until the game is finished or the context is done. The context
// is only looked at between turns.
func (e *Engine) Run(ctx context.Context) ([]*Player, error) {
	e.log.Info().Int("players", e.g.numberOfPlayers).Int("rounds", e.g.numberOfRounds).Msg("game starting")
	for !e.g.finished {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.Step()
	}
	winners := e.g.winners
	for _, w := range winners {
		e.addEventf(w, "wins the game with %d", w.Fortune())
	}
	e.publish()
	e.log.Info().Int("round", e.g.currentRound).Int("winners", len(winners)).Msg("game finished")
	return winners, nil
}

// Step plays one turn, passes on to the next player and checks for the end.
func (e *Engine) Step() {
	e.Turn()
	e.g.NextPlayer()
	e.g.CheckEnd()
	e.publish()
}

func (e *Engine) publish() {
	if e.observer == nil {
		return
	}
	e.observer(Update{State: e.g.State(), News: e.News()})
}

// Turn plays the current player's turn.
func (e *Engine) Turn() {
	p := e.g.CurrentPlayer()
	if p == nil || p.bankrupt {
		return
	}
	if p.Arrested() {
		e.arrestedTurn(p)
	} else {
		e.normalTurn(p)
	}
}

func (e *Engine) normalTurn(p *Player) {
	for {
		roll := e.g.RollDice()
		e.addEventf(p, "rolls %d and %d", roll[0], roll[1])

		if p.doublesInRow == DoublesToJail {
			e.arrest(p)
			return
		}

		e.move(p, roll)
		e.fieldAction(p)

		if p.bankrupt || p.Arrested() {
			return
		}

		e.decider(p).TurnActions(e, p)

		if p.bankrupt || p.doublesInRow == 0 {
			return
		}
	}
}

func (e *Engine) arrestedTurn(p *Player) {
	switch e.decider(p).JailAction(e.g, p) {
	case JailPay:
		if e.payDeposit(p) {
			return
		}
	case JailCard:
		if e.useCard(p) {
			return
		}
	}
	e.rollInJail(p)
}

func (e *Engine) payDeposit(p *Player) bool {
	if err := p.SubtractMoney(e.g.settings.Deposit); err != nil {
		e.addEvent(p, "cannot pay the deposit")
		return false
	}
	e.leaveJail(p)
	return true
}

func (e *Engine) useCard(p *Player) bool {
	if err := p.UseGetOutCard(); err != nil {
		e.addEvent(p, "has no card to get out of jail")
		return false
	}
	e.leaveJail(p)
	return true
}

func (e *Engine) rollInJail(p *Player) {
	roll := Throw(e.g.source)
	e.addEventf(p, "rolls %d and %d in jail", roll[0], roll[1])

	switch {
	case roll.Double():
		e.leaveJail(p)
	case p.jailRound >= JailRounds:
		e.forceToPay(p, e.g.settings.Deposit, nil)
		if p.bankrupt {
			return
		}
		e.leaveJail(p)
	default:
		_ = p.NextJailRound()
		e.addEvent(p, "stays in jail")
		return
	}

	e.move(p, roll)
	e.fieldAction(p)
	if p.bankrupt {
		return
	}
	e.decider(p).TurnActions(e, p)
}

func (e *Engine) leaveJail(p *Player) {
	if err := e.g.LeaveJail(p); err != nil {
		e.log.Warn().Err(err).Int("player", p.id).Msg("leave jail")
		return
	}
	e.addEvent(p, "leaves jail")
}

func (e *Engine) arrest(p *Player) {
	if err := e.g.Arrest(p); err != nil {
		e.log.Warn().Err(err).Int("player", p.id).Msg("arrest")
		return
	}
	e.addEvent(p, "goes to jail")
}

func (e *Engine) move(p *Player, roll Roll) {
	_ = p.Move(roll.Sum())
	if p.PassStart(e.g.BoardSize()) {
		_ = p.AddMoney(e.g.settings.Payment)
		e.addEventf(p, "passes start and gets %d", e.g.settings.Payment)
	}
	e.addEventf(p, "moves %d to %s", roll.Sum(), e.g.Field(p.position).Name())
}

func (e *Engine) fieldAction(p *Player) {
	switch f := e.g.Field(p.position).(type) {
	case *DrawField:
		e.draw(p)
	case *GoToJail:
		e.arrest(p)
	case *Tax:
		e.addEventf(p, "pays %d tax", f.Value())
		e.forceToPay(p, f.Value(), nil)
	case Buyable:
		e.standOnBuyable(p, f)
	}
}

func (e *Engine) draw(p *Player) {
	card := e.g.DrawCard()
	e.addEventf(p, "draws %s", card)
	e.chance(p, card)
}

func (e *Engine) chance(p *Player, card Card) {
	switch card {
	case CardTaxRefund:
		_ = p.AddMoney(30)
	case CardBigTaxRefund:
		_ = p.AddMoney(150)
	case CardWallet:
		_ = p.AddMoney(10)
	case CardDividend:
		_ = p.AddMoney(50)
	case CardInheritance:
		_ = p.AddMoney(100)
	case CardOverpayment:
		_ = p.AddMoney(len(p.fields) * perFieldTax)
	case CardScratch:
		roll := Throw(e.g.source)
		win := roll.Sum()
		if roll.Double() {
			win *= roll[0]
		}
		_ = p.AddMoney(win)
		e.addEventf(p, "scratches %d and %d and wins %d", roll[0], roll[1], win)
	case CardArrest, CardSecondArrest:
		e.arrest(p)
	case CardHolidays:
	case CardCondition:
		e.forceToPay(p, 200, nil)
	case CardUnderpayment:
		e.forceToPay(p, len(p.fields)*perFieldTax, nil)
	case CardFine:
		e.forceToPay(p, 15, nil)
	case CardRenovation:
		e.forceToPay(p, p.CountHouses()*perHouseRepair, nil)
	case CardTax:
		e.forceToPay(p, 100, nil)
	case CardGetOut, CardSecondGetOut:
		_ = p.AddGetOutCards(1)
	}
}

func (e *Engine) standOnBuyable(p *Player, f Buyable) {
	owner := f.Owner()
	switch {
	case f.Mortgaged():
		e.addEventf(p, "stands on mortgaged %s", f.Name())
	case owner == nil:
		e.bankOwned(p, f)
	case owner == p:
	default:
		rent := e.rent(p, f)
		e.addEventf(p, "pays %d rent to %s", rent, owner.name)
		e.forceToPay(p, rent, owner)
	}
}

func (e *Engine) bankOwned(p *Player, f Buyable) {
	if e.decider(p).WantToBuy(e.g, p, f) {
		if err := p.BuyFromBank(f); err == nil {
			e.addEventf(p, "buys %s for %d", f.Name(), f.Price())
			return
		}
		e.addEventf(p, "cannot afford %s", f.Name())
	}
	e.Auction(f, e.g.settings.StartBid)
}

func (e *Engine) rent(p *Player, f Buyable) int {
	switch f := f.(type) {
	case *Property:
		return f.Rent()
	case *Station:
		return f.Rent()
	case *Service:
		roll := Throw(e.g.source)
		e.addEventf(p, "rolls %d and %d for the rent", roll[0], roll[1])
		return f.Rent(roll)
	}
	return 0
}

// forceToPay takes money from the current player, to the receiver or to the
// bank when nil. Anyone short of cash has to raise it or go bankrupt.
func (e *Engine) forceToPay(p *Player, amount int, receiver *Player) {
	if amount <= 0 {
		return
	}
	if p.money < amount {
		e.noMoneyAction(p, amount, receiver)
		if p.bankrupt {
			return
		}
	}
	if receiver != nil {
		_ = p.PayRent(amount, receiver)
		return
	}
	_ = p.SubtractMoney(amount)
}

func (e *Engine) noMoneyAction(p *Player, amount int, creditor *Player) {
	if p.CanPay(amount) {
		e.addEventf(p, "has to raise %d", amount-p.money)
		e.decider(p).RaiseMoney(e.g, p, amount)
		if p.money < amount {
			e.log.Debug().Int("player", p.id).Int("debt", amount).Msg("forced sale")
			Liquidate(p, amount)
		}
		if p.money >= amount {
			return
		}
	}
	e.bankruptcy(p, creditor)
}

func (e *Engine) bankruptcy(p *Player, creditor *Player) {
	if creditor != nil {
		if err := e.g.DebtToPlayer(creditor); err == nil {
			e.addEventf(p, "is bankrupt and %s takes everything", creditor.name)
			e.log.Info().Int("player", p.id).Int("creditor", creditor.id).Msg("bankrupt")
			return
		}
		e.log.Info().Int("player", p.id).Int("creditor", creditor.id).Msg("creditor cannot take over, settling with bank")
	}
	fields := e.g.DebtToBank()
	e.addEvent(p, "is bankrupt and the bank takes everything")
	e.log.Info().Int("player", p.id).Int("fields", len(fields)).Msg("bankrupt")
	for _, f := range fields {
		if e.g.OneRemained() {
			break
		}
		e.Auction(f, e.g.settings.StartBid)
	}
}

// Liquidate sells houses, then fields, then mortgages what is left, until
// the player has the amount in cash or there is nothing left to sell. It
// says if the amount was raised.
func Liquidate(p *Player, amount int) bool {
	return SellHouses(p, amount) || SellFields(p, amount) || MortgageFields(p, amount)
}

// SellHouses sells houses back to the bank evenly, one per property per
// pass, until the player has the amount.
func SellHouses(p *Player, amount int) bool {
	for i := 0; i < MaxPropertyLevel; i++ {
		for _, f := range p.Fields() {
			if prop, ok := f.(*Property); ok {
				_ = prop.RemoveHouse()
			}
			if p.money >= amount {
				return true
			}
		}
	}
	return p.money >= amount
}

// SellFields sells fields to the bank one by one until the player has the
// amount. Mortgaged and built up fields are skipped.
func SellFields(p *Player, amount int) bool {
	for _, f := range p.Fields() {
		if p.money >= amount {
			return true
		}
		_ = p.SellToBank(f)
	}
	return p.money >= amount
}

// MortgageFields mortgages fields one by one until the player has the amount.
func MortgageFields(p *Player, amount int) bool {
	for _, f := range p.Fields() {
		if p.money >= amount {
			return true
		}
		_ = f.StartMortgage()
	}
	return p.money >= amount
}

// Trade asks the owner of a field to sell it to the buyer. It says if the
// deal was made.
func (e *Engine) Trade(buyer *Player, f Buyable) (bool, error) {
	owner := f.Owner()
	if owner == nil || owner == buyer || owner.bankrupt {
		return false, ErrNotForSale
	}
	if !Tradeable(f) {
		return false, ErrNotForSale
	}
	price, ok := e.decider(owner).Pricing(e.g, owner, f, buyer)
	if !ok {
		e.addEventf(owner, "will not sell %s to %s", f.Name(), buyer.name)
		return false, nil
	}
	if !e.decider(buyer).AcceptPrice(e.g, buyer, f, price) {
		e.addEventf(buyer, "does not buy %s for %d", f.Name(), price)
		return false, nil
	}
	if err := e.g.MakeDeal(buyer, f, price); err != nil {
		return false, err
	}
	e.addEventf(buyer, "buys %s from %s for %d", f.Name(), owner.name, price)
	return true, nil
}

// PutForAuction lets an owner sell one of their fields to the other players.
func (e *Engine) PutForAuction(owner *Player, f Buyable, startBid int) (*Player, error) {
	if f.Owner() != owner {
		return nil, ErrNotOwned
	}
	if f.Mortgaged() {
		return nil, ErrAlreadyMortgaged
	}
	if prop, ok := f.(*Property); ok && DistrictBuiltUp(prop) {
		return nil, ErrBuiltUp
	}
	if startBid <= 0 {
		return nil, ErrBadValue
	}
	winner, _ := e.Auction(f, startBid)
	return winner, nil
}
