package game

import (
	"fmt"
	"sort"
)

// Game is the state of the table: players, board and whose turn it is.
// It is built once with SetPlayers and SetFields and then changed turn by
// turn until it is finished. Nothing in here is safe for concurrent use.
type Game struct {
	settings Settings
	source   Source

	players         map[int]*Player
	fields          map[int]Field
	numberOfPlayers int
	numberOfRounds  int
	currentPlayerID int
	currentRound    int
	finished        bool
	winners         []*Player
}

// NewGame makes an empty game with the standard settings.
func NewGame(source Source) *Game {
	return NewGameWithSettings(DefaultSettings(), source)
}

// NewGameWithSettings makes an empty game.
func NewGameWithSettings(settings Settings, source Source) *Game {
	return &Game{
		settings:       settings,
		source:         source,
		players:        map[int]*Player{},
		fields:         map[int]Field{},
		numberOfRounds: NoRoundLimit,
		currentRound:   1,
	}
}

func (g *Game) Settings() Settings    { return g.settings }
func (g *Game) Source() Source        { return g.source }
func (g *Game) NumberOfPlayers() int  { return g.numberOfPlayers }
func (g *Game) NumberOfRounds() int   { return g.numberOfRounds }
func (g *Game) CurrentPlayerID() int  { return g.currentPlayerID }
func (g *Game) CurrentRound() int     { return g.currentRound }
func (g *Game) Finished() bool        { return g.finished }
func (g *Game) Winners() []*Player    { return g.winners }
func (g *Game) BoardSize() int        { return len(g.fields) }
func (g *Game) SetFinished()          { g.finished = true }
func (g *Game) Player(id int) *Player { return g.players[id] }
func (g *Game) Field(id int) Field    { return g.fields[id] }

// CurrentPlayer is the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.players[g.currentPlayerID]
}

// Players returns everyone, in id order.
func (g *Game) Players() []*Player {
	out := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, p)
	}
	sortPlayers(out)
	return out
}

// Fields returns the board, in id order.
func (g *Game) Fields() []Field {
	out := make([]Field, 0, len(g.fields))
	for _, f := range g.fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Buyable returns the field if it can be owned.
func (g *Game) Buyable(id int) (Buyable, bool) {
	f, ok := g.fields[id].(Buyable)
	return f, ok
}

// Jail returns the jail field.
func (g *Game) Jail() *Jail {
	j, _ := g.fields[JailID].(*Jail)
	return j
}

// SetPlayers seats the players. Ids must be unique and run from 0, since
// turns and bidding go round by id.
func (g *Game) SetPlayers(players ...*Player) error {
	n := len(players)
	if n < MinNumberOfPlayers || n > MaxNumberOfPlayers {
		return fmt.Errorf("%d players: %w", n, ErrInvalidPlayerCount)
	}
	byID := map[int]*Player{}
	for _, p := range players {
		if _, ok := byID[p.id]; ok {
			return fmt.Errorf("player %d: %w", p.id, ErrRepeatedId)
		}
		if p.id >= n {
			return fmt.Errorf("player %d of %d: %w", p.id, n, ErrInvalidId)
		}
		byID[p.id] = p
	}
	g.players = byID
	g.numberOfPlayers = len(byID)
	return nil
}

// SetFields lays out the board. Ids must be unique.
func (g *Game) SetFields(fields ...Field) error {
	byID := map[int]Field{}
	for _, f := range fields {
		if _, ok := byID[f.ID()]; ok {
			return fmt.Errorf("field %d: %w", f.ID(), ErrRepeatedId)
		}
		byID[f.ID()] = f
	}
	g.fields = byID
	return nil
}

// SetNumberOfPlayers checks and sets the number of seats.
func (g *Game) SetNumberOfPlayers(n int) error {
	if n < MinNumberOfPlayers || n > MaxNumberOfPlayers {
		return ErrInvalidPlayerCount
	}
	g.numberOfPlayers = n
	return nil
}

// SetNumberOfRounds sets the round limit, or NoRoundLimit.
func (g *Game) SetNumberOfRounds(n int) error {
	if n != NoRoundLimit && n < MinNumberOfRounds {
		return ErrRoundCountTooShort
	}
	g.numberOfRounds = n
	return nil
}

// RollDice throws for the current player and keeps count of doubles.
func (g *Game) RollDice() Roll {
	roll := Throw(g.source)
	p := g.CurrentPlayer()
	if roll.Double() {
		p.AddDouble()
	} else {
		p.ResetDoubles()
	}
	return roll
}

// Arrest sends a player to jail.
func (g *Game) Arrest(p *Player) error {
	p.ResetDoubles()
	if err := g.Jail().Add(p); err != nil {
		return err
	}
	return p.GoToJail()
}

// LeaveJail lets a player out.
func (g *Game) LeaveJail(p *Player) error {
	if err := g.Jail().Release(p); err != nil {
		return err
	}
	return p.LeaveJail()
}

// NextPlayer passes the turn to the next player still in the game, counting
// a new round each time it goes around.
func (g *Game) NextPlayer() {
	n := g.numberOfPlayers
	if n == 0 {
		return
	}
	for i := 0; i < 2*n; i++ {
		g.currentPlayerID++
		if g.currentPlayerID >= n {
			g.currentRound++
			g.currentPlayerID %= n
		}
		p, ok := g.players[g.currentPlayerID]
		if ok && !p.bankrupt {
			return
		}
	}
}

// BiddingPlayers are all solvent players apart from the current one.
func (g *Game) BiddingPlayers() map[int]*Player {
	out := map[int]*Player{}
	for id, p := range g.players {
		if id != g.currentPlayerID && !p.bankrupt {
			out[id] = p
		}
	}
	return out
}

// NextBidderID finds the next participant after id, going round by id.
func (g *Game) NextBidderID(id int, participants map[int]*Player) int {
	if len(participants) == 0 {
		return id
	}
	n := g.numberOfPlayers
	for i := 0; i < n; i++ {
		id = (id + 1) % n
		if _, ok := participants[id]; ok {
			return id
		}
	}
	return id
}

// FieldsForSell are fields the current player could ask to buy.
func (g *Game) FieldsForSell() []Buyable {
	current := g.CurrentPlayer()
	var out []Buyable
	for _, f := range g.Fields() {
		b, ok := f.(Buyable)
		if !ok || b.Owner() == nil || b.Owner() == current {
			continue
		}
		if Tradeable(b) {
			out = append(out, b)
		}
	}
	return out
}

// Tradeable says if a field can change hands between players. Properties
// cannot while mortgaged or while their district has houses.
func Tradeable(f Buyable) bool {
	if p, ok := f.(*Property); ok {
		return !p.Mortgaged() && !DistrictBuiltUp(p)
	}
	return true
}

// ReachedNumberOfRounds says if the round limit has passed.
func (g *Game) ReachedNumberOfRounds() bool {
	if g.numberOfRounds == NoRoundLimit {
		return false
	}
	return g.currentRound > g.numberOfRounds
}

// Solvent are the players still in the game.
func (g *Game) Solvent() []*Player {
	var out []*Player
	for _, p := range g.Players() {
		if !p.bankrupt {
			out = append(out, p)
		}
	}
	return out
}

// OneRemained says if everyone but one player is bankrupt.
func (g *Game) OneRemained() bool {
	return len(g.Solvent()) == 1
}

// SimpleWinner is the last player standing.
func (g *Game) SimpleWinner() (*Player, error) {
	solvent := g.Solvent()
	if len(solvent) != 1 {
		return nil, ErrNotAllBankrupt
	}
	return solvent[0], nil
}

// PlayersFortunes counts the fortune of each solvent player.
func (g *Game) PlayersFortunes() map[int]int {
	out := map[int]int{}
	for _, p := range g.Solvent() {
		out[p.id] = p.Fortune()
	}
	return out
}

// RichestPlayers are all solvent players with the highest fortune.
func (g *Game) RichestPlayers() []*Player {
	fortunes := g.PlayersFortunes()
	max := -1
	for _, f := range fortunes {
		if f > max {
			max = f
		}
	}
	var out []*Player
	for _, p := range g.Solvent() {
		if fortunes[p.id] == max {
			out = append(out, p)
		}
	}
	return out
}

// CheckEnd finishes the game when someone has won, and returns the winners.
func (g *Game) CheckEnd() []*Player {
	if g.finished {
		return g.winners
	}
	if w, err := g.SimpleWinner(); err == nil {
		g.winners = []*Player{w}
		g.finished = true
	} else if g.ReachedNumberOfRounds() {
		g.winners = g.RichestPlayers()
		g.finished = true
	}
	return g.winners
}

// MakeDeal sells a field to the buyer. The seller, if there is one, gets
// the price. Nothing changes if the buyer cannot pay.
func (g *Game) MakeDeal(buyer *Player, f Buyable, price int) error {
	if price < 0 {
		return ErrBadValue
	}
	if buyer.money < price {
		return ErrNoMoney
	}
	if seller := f.Owner(); seller != nil {
		if err := seller.AddMoney(price); err != nil {
			return err
		}
	}
	if err := buyer.SubtractMoney(price); err != nil {
		return err
	}
	transfer(f, buyer)
	return nil
}

// HousesValue is what the bank pays for all houses on the fields.
func HousesValue(fields []Buyable) int {
	v := 0
	for _, f := range fields {
		if p, ok := f.(*Property); ok {
			v += p.HousesValue()
		}
	}
	return v
}

// RemoveHouses knocks down all houses on the fields.
func RemoveHouses(fields []Buyable) {
	for _, f := range fields {
		if p, ok := f.(*Property); ok {
			p.RemoveAllHouses()
		}
	}
}

// Interests is 10% of the mortgage value of each mortgaged field.
func Interests(fields []Buyable) int {
	v := 0
	for _, f := range fields {
		if f.Mortgaged() {
			v += f.Interest()
		}
	}
	return v
}

// DebtToPlayer hands everything the current player has to the creditor and
// makes the current player bankrupt. Houses are sold to the bank for the
// creditor, who also pays the interest on mortgaged fields. If the creditor
// could not pay that interest nothing changes and ErrNoMoney is returned.
func (g *Game) DebtToPlayer(creditor *Player) error {
	debtor := g.CurrentPlayer()
	fields := debtor.Fields()
	money := debtor.money
	cards := debtor.getOutCards
	houses := HousesValue(fields)
	interests := Interests(fields)

	if creditor.money+money+houses < interests {
		return ErrNoMoney
	}

	RemoveHouses(fields)
	for _, f := range fields {
		transfer(f, creditor)
	}

	creditor.money += money + houses - interests
	creditor.getOutCards += cards

	debtor.money = 0
	debtor.getOutCards = 0
	g.bankrupt(debtor)
	return nil
}

// DebtToBank gives everything the current player has to the bank and makes
// them bankrupt. Houses go for nothing, mortgages are lifted and the money
// and cards disappear. The fields returned are now the bank's and should be
// auctioned.
func (g *Game) DebtToBank() []Buyable {
	debtor := g.CurrentPlayer()
	fields := debtor.Fields()

	RemoveHouses(fields)
	for _, f := range fields {
		if f.Mortgaged() {
			if err := f.EndMortgage(); err != nil {
				transfer(f, nil)
				_ = f.EndMortgage()
			}
		}
		transfer(f, nil)
	}

	debtor.money = 0
	debtor.getOutCards = 0
	g.bankrupt(debtor)
	return fields
}

func (g *Game) bankrupt(p *Player) {
	if j := g.Jail(); j != nil && j.Holds(p) {
		_ = j.Release(p)
	}
	p.jailRound = 0
	p.doublesInRow = 0
	p.SetBankrupt()
}
