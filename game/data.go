package game

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

//go:embed board.json
var defaultBoard []byte

// BoardData is the contents of a board file.
type BoardData struct {
	Settings *Settings           `json:"settings"`
	Fields   map[string]FieldData `json:"fields"`
}

// FieldData is one board record. Which attributes matter depends on the id.
type FieldData struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Price       int            `json:"price,omitempty"`
	District    District       `json:"district,omitempty"`
	HousePrice  int            `json:"house_price,omitempty"`
	Rents       map[string]int `json:"rents,omitempty"`
	Multipliers map[string]int `json:"multipliers,omitempty"`
	Value       int            `json:"value,omitempty"`
}

// Board is a loaded board.
type Board struct {
	Settings Settings
	Fields   []Field
}

// DefaultBoard is the standard 40 field board.
func DefaultBoard() (Board, error) {
	return ReadBoard(bytes.NewReader(defaultBoard))
}

// LoadBoard reads a board file from disk.
func LoadBoard(path string) (Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return Board{}, err
	}
	defer f.Close()
	return ReadBoard(f)
}

// ReadBoard decodes and validates a board.
func ReadBoard(r io.Reader) (Board, error) {
	var data BoardData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return Board{}, fmt.Errorf("bad board: %w", err)
	}

	settings := DefaultSettings()
	if data.Settings != nil {
		settings = *data.Settings
	}
	if err := settings.Validate(); err != nil {
		return Board{}, fmt.Errorf("bad settings: %w", err)
	}

	var fields []Field
	seen := map[int]bool{}
	for key, fd := range data.Fields {
		id, err := strconv.Atoi(key)
		if err != nil {
			return Board{}, fmt.Errorf("field key %q: %w", key, ErrInvalidId)
		}
		if id != fd.ID {
			return Board{}, fmt.Errorf("field key %q has id %d: %w", key, fd.ID, ErrInvalidId)
		}
		if seen[id] {
			return Board{}, fmt.Errorf("field %d: %w", id, ErrRepeatedId)
		}
		seen[id] = true
		f, err := NewField(fd)
		if err != nil {
			return Board{}, err
		}
		fields = append(fields, f)
	}
	if len(fields) != NumberOfFields {
		return Board{}, fmt.Errorf("board has %d fields, want %d: %w", len(fields), NumberOfFields, ErrBadValue)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].ID() < fields[j].ID() })

	return Board{Settings: settings, Fields: fields}, nil
}

// KindOf says which type of field lives at an id.
func KindOf(id int) Kind {
	switch {
	case id == StartID:
		return KindStart
	case id == JailID:
		return KindJail
	case id == ParkingID:
		return KindParking
	case id == GoToJailID:
		return KindGoToJail
	case intListContains(TaxIDs, id):
		return KindTax
	case intListContains(StationIDs, id):
		return KindStation
	case intListContains(ServiceIDs, id):
		return KindService
	case intListContains(DrawFieldIDs, id):
		return KindDrawField
	case intListContains(PropertyIDs, id):
		return KindProperty
	}
	return ""
}

// NewField builds the right field type for the record's id.
func NewField(fd FieldData) (Field, error) {
	switch KindOf(fd.ID) {
	case KindStart:
		return NewStart(fd)
	case KindJail:
		return NewJail(fd)
	case KindParking:
		return NewParking(fd)
	case KindGoToJail:
		return NewGoToJail(fd)
	case KindTax:
		return NewTax(fd)
	case KindStation:
		return NewStation(fd)
	case KindService:
		return NewService(fd)
	case KindDrawField:
		return NewDrawField(fd)
	case KindProperty:
		return NewProperty(fd)
	}
	return nil, fmt.Errorf("field %d: %w", fd.ID, ErrInvalidId)
}

func NewStart(fd FieldData) (*Start, error) {
	bf, err := newBaseField(fd.ID, fd.Name)
	if err != nil {
		return nil, err
	}
	return &Start{bf}, nil
}

func NewParking(fd FieldData) (*Parking, error) {
	bf, err := newBaseField(fd.ID, fd.Name)
	if err != nil {
		return nil, err
	}
	return &Parking{bf}, nil
}

func NewGoToJail(fd FieldData) (*GoToJail, error) {
	bf, err := newBaseField(fd.ID, fd.Name)
	if err != nil {
		return nil, err
	}
	return &GoToJail{bf}, nil
}

func NewDrawField(fd FieldData) (*DrawField, error) {
	bf, err := newBaseField(fd.ID, fd.Name)
	if err != nil {
		return nil, err
	}
	return &DrawField{bf}, nil
}

func NewJail(fd FieldData) (*Jail, error) {
	bf, err := newBaseField(fd.ID, fd.Name)
	if err != nil {
		return nil, err
	}
	return &Jail{baseField: bf, arrested: map[int]*Player{}}, nil
}

func NewTax(fd FieldData) (*Tax, error) {
	bf, err := newBaseField(fd.ID, fd.Name)
	if err != nil {
		return nil, err
	}
	if fd.Value <= 0 {
		return nil, fmt.Errorf("field %d: tax must be positive: %w", fd.ID, ErrBadValue)
	}
	return &Tax{baseField: bf, value: fd.Value}, nil
}

func NewProperty(fd FieldData) (*Property, error) {
	b, err := newBuyable(fd.ID, fd.Name, fd.Price)
	if err != nil {
		return nil, err
	}
	if !fd.District.Valid() {
		return nil, fmt.Errorf("field %d: unknown district %q: %w", fd.ID, fd.District, ErrBadValue)
	}
	if fd.HousePrice <= 0 {
		return nil, fmt.Errorf("field %d: house price must be positive: %w", fd.ID, ErrBadValue)
	}
	rents, err := levelTable(fd.ID, fd.Rents, 0, MaxPropertyLevel)
	if err != nil {
		return nil, err
	}
	p := &Property{buyable: b, district: fd.District, housePrice: fd.HousePrice}
	copy(p.rents[:], rents)
	return p, nil
}

func NewStation(fd FieldData) (*Station, error) {
	b, err := newBuyable(fd.ID, fd.Name, fd.Price)
	if err != nil {
		return nil, err
	}
	rents, err := levelTable(fd.ID, fd.Rents, 1, NumberOfStations)
	if err != nil {
		return nil, err
	}
	s := &Station{buyable: b}
	copy(s.rents[:], rents)
	return s, nil
}

func NewService(fd FieldData) (*Service, error) {
	b, err := newBuyable(fd.ID, fd.Name, fd.Price)
	if err != nil {
		return nil, err
	}
	multipliers, err := levelTable(fd.ID, fd.Multipliers, 1, NumberOfServices)
	if err != nil {
		return nil, err
	}
	s := &Service{buyable: b}
	copy(s.multipliers[:], multipliers)
	return s, nil
}

// levelTable turns {"1": 25, "2": 50} into a slice, requiring every key in
// [from, to] and nothing else, all positive.
func levelTable(id int, table map[string]int, from, to int) ([]int, error) {
	if len(table) != to-from+1 {
		return nil, fmt.Errorf("field %d: want %d values, got %d: %w", id, to-from+1, len(table), ErrBadValue)
	}
	out := make([]int, 0, len(table))
	for n := from; n <= to; n++ {
		v, ok := table[strconv.Itoa(n)]
		if !ok {
			return nil, fmt.Errorf("field %d: missing value for %d: %w", id, n, ErrBadValue)
		}
		if v <= 0 {
			return nil, fmt.Errorf("field %d: value for %d must be positive: %w", id, n, ErrBadValue)
		}
		out = append(out, v)
	}
	return out, nil
}

// NewGame puts the board into a fresh game. The fields belong to that game
// from then on, so a board is only good for one game.
func (b Board) NewGame(source Source) (*Game, error) {
	g := NewGameWithSettings(b.Settings, source)
	if err := g.SetFields(b.Fields...); err != nil {
		return nil, err
	}
	return g, nil
}

// NewPlayers seats one player per name, with the board's start money.
func (b Board) NewPlayers(names ...string) ([]*Player, error) {
	var out []*Player
	for i, name := range names {
		if err := ValidateName(name); err != nil {
			return nil, fmt.Errorf("player %q: %w", name, err)
		}
		p, err := NewPlayerWithMoney(i, name, b.Settings.StartMoney)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
