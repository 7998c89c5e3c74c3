package game

// GameState is a read only view of a game, for showing and for sending.
type GameState struct {
	Round    int           `json:"round"`
	Rounds   int           `json:"rounds"`
	Playing  string        `json:"playing"`
	Finished bool          `json:"finished"`
	Winners  []string      `json:"winners"`
	Players  []PlayerState `json:"players"`
	Fields   []FieldState  `json:"fields"`
}

type PlayerState struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Position    int    `json:"position"`
	Money       int    `json:"money"`
	Fortune     int    `json:"fortune"`
	Fields      []int  `json:"fields"`
	JailRound   int    `json:"jailRound"`
	GetOutCards int    `json:"getOutCards"`
	Bankrupt    bool   `json:"bankrupt"`
}

type FieldState struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	Price     int    `json:"price,omitempty"`
	District  string `json:"district,omitempty"`
	Owner     *int   `json:"owner,omitempty"`
	Mortgaged bool   `json:"mortgaged,omitempty"`
	Level     int    `json:"level,omitempty"`
}

// State takes a snapshot. Nothing in it points back into the game.
func (g *Game) State() GameState {
	s := GameState{
		Round:    g.currentRound,
		Rounds:   g.numberOfRounds,
		Finished: g.finished,
		Winners:  playerNames(g.winners),
	}
	if p := g.CurrentPlayer(); p != nil {
		s.Playing = p.name
	}
	for _, p := range g.Players() {
		s.Players = append(s.Players, p.State())
	}
	for _, f := range g.Fields() {
		s.Fields = append(s.Fields, StateOf(f))
	}
	return s
}

// State is a snapshot of the player.
func (p *Player) State() PlayerState {
	return PlayerState{
		ID:          p.id,
		Name:        p.name,
		Position:    p.position,
		Money:       p.money,
		Fortune:     p.Fortune(),
		Fields:      p.FieldIDs(),
		JailRound:   p.jailRound,
		GetOutCards: p.getOutCards,
		Bankrupt:    p.bankrupt,
	}
}

// StateOf is a snapshot of any field.
func StateOf(f Field) FieldState {
	s := FieldState{ID: f.ID(), Name: f.Name(), Kind: f.Kind()}
	if b, ok := f.(Buyable); ok {
		s.Price = b.Price()
		s.Mortgaged = b.Mortgaged()
		if o := b.Owner(); o != nil {
			id := o.id
			s.Owner = &id
		}
	}
	if p, ok := f.(*Property); ok {
		s.District = string(p.district)
		s.Level = p.level
	}
	return s
}
