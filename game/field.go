package game

import (
	"errors"
	"fmt"
	"sort"
)

// Kind is the type tag of a field.
type Kind string

const (
	KindStart     Kind = "start"
	KindJail      Kind = "jail"
	KindParking   Kind = "parking"
	KindGoToJail  Kind = "gotojail"
	KindTax       Kind = "tax"
	KindDrawField Kind = "draw"
	KindProperty  Kind = "property"
	KindStation   Kind = "station"
	KindService   Kind = "service"
)

// Field is one square of the board.
type Field interface {
	ID() int
	Name() string
	Kind() Kind
}

// Buyable is a field that players can own.
type Buyable interface {
	Field
	Price() int
	MortgageValue() int
	Mortgaged() bool
	Owner() *Player
	StartMortgage() error
	EndMortgage() error
	EndMortgageCost() int
	Interest() int
	Capitalisation() int

	base() *buyable
}

type baseField struct {
	id   int
	name string
}

func newBaseField(id int, name string) (baseField, error) {
	if id < 0 {
		return baseField{}, fmt.Errorf("field %d: %w", id, ErrInvalidId)
	}
	return baseField{id: id, name: name}, nil
}

func (f *baseField) ID() int      { return f.id }
func (f *baseField) Name() string { return f.name }

// Start pays a salary to everyone who passes it.
type Start struct{ baseField }

// Parking does nothing.
type Parking struct{ baseField }

// GoToJail sends whoever stops on it to jail.
type GoToJail struct{ baseField }

// DrawField makes the player draw a chance card.
type DrawField struct{ baseField }

func (*Start) Kind() Kind     { return KindStart }
func (*Parking) Kind() Kind   { return KindParking }
func (*GoToJail) Kind() Kind  { return KindGoToJail }
func (*DrawField) Kind() Kind { return KindDrawField }

// Jail keeps the roster of arrested players. It does not own them.
type Jail struct {
	baseField
	arrested map[int]*Player
}

func (*Jail) Kind() Kind { return KindJail }

// Arrested returns the players in jail, by id.
func (j *Jail) Arrested() []*Player {
	out := make([]*Player, 0, len(j.arrested))
	for _, p := range j.arrested {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID() < out[b].ID() })
	return out
}

// Holds says if the player is on the roster.
func (j *Jail) Holds(p *Player) bool {
	_, ok := j.arrested[p.ID()]
	return ok
}

// Add puts a player on the roster.
func (j *Jail) Add(p *Player) error {
	if j.Holds(p) {
		return ErrAlreadyArrested
	}
	j.arrested[p.ID()] = p
	return nil
}

// Release takes a player off the roster.
func (j *Jail) Release(p *Player) error {
	if !j.Holds(p) {
		return ErrNotArrested
	}
	delete(j.arrested, p.ID())
	return nil
}

// Tax takes a fixed amount from whoever stops on it.
type Tax struct {
	baseField
	value int
}

func (*Tax) Kind() Kind { return KindTax }

// Value is the amount to pay.
func (t *Tax) Value() int { return t.value }

// buyable is the state shared by everything that can be owned.
type buyable struct {
	baseField
	price         int
	mortgageValue int
	mortgaged     bool
	owner         *Player
}

func newBuyable(id int, name string, price int) (buyable, error) {
	bf, err := newBaseField(id, name)
	if err != nil {
		return buyable{}, err
	}
	if price <= 0 {
		return buyable{}, fmt.Errorf("field %d: price must be positive: %w", id, ErrBadValue)
	}
	return buyable{
		baseField:     bf,
		price:         price,
		mortgageValue: price / 2,
	}, nil
}

func (b *buyable) base() *buyable      { return b }
func (b *buyable) Price() int          { return b.price }
func (b *buyable) MortgageValue() int  { return b.mortgageValue }
func (b *buyable) Mortgaged() bool     { return b.mortgaged }
func (b *buyable) Owner() *Player      { return b.owner }
func (b *buyable) setOwner(p *Player)  { b.owner = p }
func (b *buyable) Capitalisation() int { return b.capitalisation() }

// EndMortgageCost is what the owner pays to buy a field back from the bank.
func (b *buyable) EndMortgageCost() int {
	return b.mortgageValue * 11 / 10
}

// Interest is what someone taking over a mortgaged field owes the bank.
func (b *buyable) Interest() int {
	return b.mortgageValue / 10
}

func (b *buyable) capitalisation() int {
	if b.mortgaged {
		return 0
	}
	return b.mortgageValue
}

func (b *buyable) startMortgage() error {
	if b.owner == nil {
		return ErrNotOwned
	}
	if b.mortgaged {
		return ErrAlreadyMortgaged
	}
	if err := b.owner.AddMoney(b.mortgageValue); err != nil {
		return err
	}
	b.mortgaged = true
	return nil
}

func (b *buyable) StartMortgage() error {
	return b.startMortgage()
}

// EndMortgage buys the field back. Fields held by the bank come back for free.
func (b *buyable) EndMortgage() error {
	if !b.mortgaged {
		return ErrNotMortgaged
	}
	if b.owner != nil {
		if err := b.owner.SubtractMoney(b.EndMortgageCost()); err != nil {
			return err
		}
	}
	b.mortgaged = false
	return nil
}

// Property can be built on once the owner has the whole district.
type Property struct {
	buyable
	district   District
	housePrice int
	rents      [MaxPropertyLevel + 1]int
	level      int
}

func (*Property) Kind() Kind { return KindProperty }

func (p *Property) District() District { return p.district }
func (p *Property) HousePrice() int    { return p.housePrice }
func (p *Property) Level() int         { return p.level }

// Rents returns the rent for every level.
func (p *Property) Rents() []int {
	return append([]int(nil), p.rents[:]...)
}

// SetLevel is for setting up positions directly.
func (p *Property) SetLevel(level int) error {
	if level < 0 || level > MaxPropertyLevel {
		return ErrPropertyLevel
	}
	p.level = level
	return nil
}

// Siblings returns the properties of the same district that have the same
// owner, including this one.
func (p *Property) Siblings() []*Property {
	if p.owner == nil {
		return []*Property{p}
	}
	var out []*Property
	for _, f := range p.owner.Fields() {
		if o, ok := f.(*Property); ok && o.district == p.district {
			out = append(out, o)
		}
	}
	return out
}

// DistrictBuiltUp says if any property in the owner's part of the district
// has buildings. Mortgaging and selling are blocked while it does.
func DistrictBuiltUp(p *Property) bool {
	for _, o := range p.Siblings() {
		if o.level > 0 {
			return true
		}
	}
	return false
}

// DistrictMortgaged says if any property in the owner's part of the district
// is mortgaged.
func DistrictMortgaged(p *Property) bool {
	for _, o := range p.Siblings() {
		if o.mortgaged {
			return true
		}
	}
	return false
}

// AllDistrictOwned says if the owner has every property of the district.
func (p *Property) AllDistrictOwned() bool {
	if p.owner == nil {
		return false
	}
	return len(p.Siblings()) == p.district.Size()
}

func (p *Property) StartMortgage() error {
	if p.owner == nil {
		return ErrNotOwned
	}
	if p.mortgaged {
		return ErrAlreadyMortgaged
	}
	if DistrictBuiltUp(p) {
		return ErrBuiltUp
	}
	return p.startMortgage()
}

func (p *Property) Capitalisation() int {
	if p.mortgaged {
		return 0
	}
	return p.mortgageValue + p.HousesValue()
}

// HousesValue is what the bank pays back for every house on the field.
func (p *Property) HousesValue() int {
	return p.level * p.housePrice / 2
}

func (p *Property) balancedUpgrade() bool {
	for _, o := range p.Siblings() {
		if p.level > o.level {
			return false
		}
	}
	return true
}

func (p *Property) balancedDowngrade() bool {
	for _, o := range p.Siblings() {
		if p.level < o.level {
			return false
		}
	}
	return true
}

// AllowToBeUpgraded returns why a house cannot be built, or nil.
func (p *Property) AllowToBeUpgraded() error {
	switch {
	case p.owner == nil:
		return ErrNotOwned
	case DistrictMortgaged(p):
		return ErrAlreadyMortgaged
	case !p.AllDistrictOwned():
		return ErrNotOwnedDistrict
	case p.level == MaxPropertyLevel:
		return ErrPropertyLevel
	case !p.balancedUpgrade():
		return ErrUnequalBuilding
	case p.owner.Money() < p.housePrice:
		return ErrNoMoney
	}
	return nil
}

// AllowToBeDowngraded returns why a house cannot be sold, or nil.
func (p *Property) AllowToBeDowngraded() error {
	switch {
	case p.level == 0:
		return ErrPropertyLevel
	case !p.balancedDowngrade():
		return ErrUnequalBuilding
	}
	return nil
}

// BuildHouse buys one house from the bank.
func (p *Property) BuildHouse() error {
	if err := p.AllowToBeUpgraded(); err != nil {
		return err
	}
	if err := p.owner.SubtractMoney(p.housePrice); err != nil {
		return err
	}
	p.level++
	return nil
}

// RemoveHouse sells one house back to the bank for half the price.
func (p *Property) RemoveHouse() error {
	if err := p.AllowToBeDowngraded(); err != nil {
		return err
	}
	if p.owner != nil {
		if err := p.owner.AddMoney(p.housePrice / 2); err != nil {
			return err
		}
	}
	p.level--
	return nil
}

// RemoveAllHouses knocks everything down without paying anyone.
func (p *Property) RemoveAllHouses() {
	p.level = 0
}

// Rent is the current rent, doubled on an empty field of a full district.
func (p *Property) Rent() int {
	rent := p.rents[p.level]
	if p.level == 0 && p.AllDistrictOwned() {
		return rent * 2
	}
	return rent
}

// Station rent depends on how many stations the owner has.
type Station struct {
	buyable
	rents [NumberOfStations]int
}

func (*Station) Kind() Kind { return KindStation }

func (s *Station) Rents() []int {
	return append([]int(nil), s.rents[:]...)
}

func (s *Station) Rent() int {
	if s.owner == nil || s.owner.StationsOwned() == 0 {
		return 0
	}
	return s.rents[s.owner.StationsOwned()-1]
}

// Service rent is the dice times a multiplier for how many services the
// owner has.
type Service struct {
	buyable
	multipliers [NumberOfServices]int
}

func (*Service) Kind() Kind { return KindService }

func (s *Service) Multipliers() []int {
	return append([]int(nil), s.multipliers[:]...)
}

func (s *Service) Rent(roll Roll) int {
	if s.owner == nil || s.owner.ServicesOwned() == 0 {
		return 0
	}
	return s.multipliers[s.owner.ServicesOwned()-1] * roll.Sum()
}

// BuildStatus is the outcome of trying to build a house.
type BuildStatus int

const (
	Built BuildStatus = iota
	BuildNotOwned
	BuildMortgaged
	BuildNotFullDistrict
	BuildMaxLevel
	BuildUnequal
	BuildNoMoney
)

func (s BuildStatus) String() string {
	switch s {
	case Built:
		return "built"
	case BuildNotOwned:
		return "not owned"
	case BuildMortgaged:
		return "mortgaged"
	case BuildNotFullDistrict:
		return "not full district"
	case BuildMaxLevel:
		return "max level"
	case BuildUnequal:
		return "unequal"
	case BuildNoMoney:
		return "no money"
	}
	return "unknown"
}

// TryBuildHouse builds a house and reports what happened instead of failing.
func TryBuildHouse(p *Property) BuildStatus {
	err := p.BuildHouse()
	switch {
	case err == nil:
		return Built
	case errors.Is(err, ErrNotOwned):
		return BuildNotOwned
	case errors.Is(err, ErrAlreadyMortgaged):
		return BuildMortgaged
	case errors.Is(err, ErrNotOwnedDistrict):
		return BuildNotFullDistrict
	case errors.Is(err, ErrPropertyLevel):
		return BuildMaxLevel
	case errors.Is(err, ErrUnequalBuilding):
		return BuildUnequal
	default:
		return BuildNoMoney
	}
}
