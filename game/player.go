package game

import (
	"fmt"
	"sort"
)

// Player is someone sitting at the table, human or not. The game's player
// list owns players; fields only point back at their owner.
type Player struct {
	id       int
	name     string
	position int
	money    int
	fields   map[int]Buyable

	stationsOwned int
	servicesOwned int

	jailRound    int
	getOutCards  int
	bankrupt     bool
	doublesInRow int
}

// NewPlayer makes a player standing on Start with the standard money.
func NewPlayer(id int, name string) (*Player, error) {
	return NewPlayerWithMoney(id, name, DefaultSettings().StartMoney)
}

// NewPlayerWithMoney makes a player standing on Start.
func NewPlayerWithMoney(id int, name string, money int) (*Player, error) {
	if id < 0 || id >= MaxNumberOfPlayers {
		return nil, fmt.Errorf("player %d: %w", id, ErrInvalidId)
	}
	if money < 0 {
		return nil, fmt.Errorf("player %d: %w", id, ErrBadValue)
	}
	return &Player{
		id:       id,
		name:     name,
		position: StartID,
		money:    money,
		fields:   map[int]Buyable{},
	}, nil
}

func (p *Player) ID() int            { return p.id }
func (p *Player) Name() string       { return p.name }
func (p *Player) Position() int      { return p.position }
func (p *Player) Money() int         { return p.money }
func (p *Player) StationsOwned() int { return p.stationsOwned }
func (p *Player) ServicesOwned() int { return p.servicesOwned }
func (p *Player) JailRound() int     { return p.jailRound }
func (p *Player) GetOutCards() int   { return p.getOutCards }
func (p *Player) Bankrupt() bool     { return p.bankrupt }
func (p *Player) DoublesInRow() int  { return p.doublesInRow }
func (p *Player) Arrested() bool     { return p.jailRound > 0 }

// Fields returns the owned fields in id order.
func (p *Player) Fields() []Buyable {
	out := make([]Buyable, 0, len(p.fields))
	for _, id := range p.FieldIDs() {
		out = append(out, p.fields[id])
	}
	return out
}

// FieldIDs returns the ids of owned fields, ascending.
func (p *Player) FieldIDs() []int {
	ids := make([]int, 0, len(p.fields))
	for id := range p.fields {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Field returns an owned field.
func (p *Player) Field(id int) (Buyable, bool) {
	f, ok := p.fields[id]
	return f, ok
}

// Owns says if the field is in the player's set.
func (p *Player) Owns(f Buyable) bool {
	o, ok := p.fields[f.ID()]
	return ok && o == f
}

// Move walks forward, without wrapping around the board.
func (p *Player) Move(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("player cannot move back: %w", ErrBadValue)
	}
	p.position += steps
	return nil
}

// PassStart wraps the position around the board and says if it did.
func (p *Player) PassStart(boardSize int) bool {
	if p.position >= boardSize {
		p.position %= boardSize
		return true
	}
	return false
}

func (p *Player) AddMoney(amount int) error {
	if amount < 0 {
		return ErrBadValue
	}
	p.money += amount
	return nil
}

func (p *Player) SubtractMoney(amount int) error {
	if amount < 0 {
		return ErrBadValue
	}
	if p.money < amount {
		return ErrNoMoney
	}
	p.money -= amount
	return nil
}

// GoToJail moves the player to the jail field and starts counting rounds.
func (p *Player) GoToJail() error {
	if p.Arrested() {
		return ErrAlreadyArrested
	}
	p.position = JailID
	p.jailRound = 1
	return nil
}

func (p *Player) LeaveJail() error {
	if !p.Arrested() {
		return ErrNotArrested
	}
	p.jailRound = 0
	return nil
}

func (p *Player) NextJailRound() error {
	if !p.Arrested() {
		return ErrNotArrested
	}
	p.jailRound++
	return nil
}

func (p *Player) AddGetOutCards(n int) error {
	if n < 0 {
		return ErrBadValue
	}
	p.getOutCards += n
	return nil
}

func (p *Player) SubtractGetOutCards(n int) error {
	if n < 0 || n > p.getOutCards {
		return ErrBadValue
	}
	p.getOutCards -= n
	return nil
}

// UseGetOutCard spends one card.
func (p *Player) UseGetOutCard() error {
	if p.getOutCards == 0 {
		return ErrNoCards
	}
	p.getOutCards--
	return nil
}

func (p *Player) AddDouble()    { p.doublesInRow++ }
func (p *Player) ResetDoubles() { p.doublesInRow = 0 }

// BuyFromBank pays the price and takes the field.
func (p *Player) BuyFromBank(f Buyable) error {
	if f.Owner() != nil {
		return ErrAlreadyOwned
	}
	if p.money < f.Price() {
		return ErrNoMoney
	}
	if err := p.SubtractMoney(f.Price()); err != nil {
		return err
	}
	f.base().setOwner(p)
	p.addField(f)
	return nil
}

// SellToBank gives the field back for its mortgage value.
func (p *Player) SellToBank(f Buyable) error {
	if f.Owner() != p {
		return ErrNotOwned
	}
	if prop, ok := f.(*Property); ok && DistrictBuiltUp(prop) {
		return ErrBuiltUp
	}
	if f.Mortgaged() {
		return ErrAlreadyMortgaged
	}
	if err := p.AddMoney(f.MortgageValue()); err != nil {
		return err
	}
	f.base().setOwner(nil)
	p.removeField(f)
	return nil
}

// PayRent moves the rent to the owner.
func (p *Player) PayRent(rent int, owner *Player) error {
	if err := p.SubtractMoney(rent); err != nil {
		return err
	}
	return owner.AddMoney(rent)
}

func (p *Player) addField(f Buyable) {
	p.fields[f.ID()] = f
	switch f.(type) {
	case *Station:
		p.stationsOwned++
	case *Service:
		p.servicesOwned++
	}
}

func (p *Player) removeField(f Buyable) {
	if _, ok := p.fields[f.ID()]; !ok {
		return
	}
	delete(p.fields, f.ID())
	switch f.(type) {
	case *Station:
		p.stationsOwned--
	case *Service:
		p.servicesOwned--
	}
}

// transfer moves a field between owners, keeping both sides in step.
// Nil means the bank.
func transfer(f Buyable, to *Player) {
	if from := f.Owner(); from != nil {
		from.removeField(f)
	}
	f.base().setOwner(to)
	if to != nil {
		to.addField(f)
	}
}

// Fortune is cash plus what the bank would pay for everything owned.
func (p *Player) Fortune() int {
	fortune := p.money
	for _, f := range p.fields {
		fortune += f.Capitalisation()
	}
	return fortune
}

// CanPay says if selling everything would cover the amount.
func (p *Player) CanPay(amount int) bool {
	return p.Fortune() >= amount
}

// SetBankrupt takes the player out of the game for good.
func (p *Player) SetBankrupt() {
	p.bankrupt = true
	p.position = NoPosition
}

// CountHouses counts houses on all properties.
func (p *Player) CountHouses() int {
	n := 0
	for _, f := range p.fields {
		if prop, ok := f.(*Property); ok {
			n += prop.level
		}
	}
	return n
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%d)", p.name, p.id)
}
