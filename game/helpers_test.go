package game

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

// fixedSource hands out the given numbers in order, then the minimum.
type fixedSource struct {
	values []int
}

func (s *fixedSource) Between(min, max int) int {
	if len(s.values) == 0 {
		return min
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (s *fixedSource) push(values ...int) {
	s.values = append(s.values, values...)
}

func testGame(t *testing.T, n int) (*Game, []*Player, *fixedSource) {
	t.Helper()
	board, err := DefaultBoard()
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	source := &fixedSource{}
	g, err := board.NewGame(source)
	if err != nil {
		t.Fatalf("game: %v", err)
	}
	var names []string
	for i := 0; i < n; i++ {
		names = append(names, fmt.Sprintf("p%d", i))
	}
	players, err := board.NewPlayers(names...)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if err := g.SetPlayers(players...); err != nil {
		t.Fatalf("set players: %v", err)
	}
	return g, players, source
}

func buy(t *testing.T, g *Game, p *Player, ids ...int) {
	t.Helper()
	for _, id := range ids {
		f, ok := g.Buyable(id)
		if !ok {
			t.Fatalf("field %d is not buyable", id)
		}
		if err := p.BuyFromBank(f); err != nil {
			t.Fatalf("buy %d: %v", id, err)
		}
	}
}

func property(t *testing.T, g *Game, id int) *Property {
	t.Helper()
	p, ok := g.Field(id).(*Property)
	if !ok {
		t.Fatalf("field %d is not a property", id)
	}
	return p
}

// scripted answers every question the same way, apart from bids and
// prices, which it takes from lists. -1 in bids is a pass.
type scripted struct {
	buy    bool
	bids   []int
	jail   JailAction
	prices []int
	accept bool
	raise  func(p *Player, debt int)
	turns  int
	asked  int
}

func (s *scripted) WantToBuy(g *Game, p *Player, f Buyable) bool { return s.buy }

func (s *scripted) Bid(g *Game, a *Auction, p *Player) (int, bool) {
	s.asked++
	if len(s.bids) == 0 {
		return 0, false
	}
	bid := s.bids[0]
	s.bids = s.bids[1:]
	return bid, bid >= 0
}

func (s *scripted) JailAction(g *Game, p *Player) JailAction { return s.jail }

func (s *scripted) RaiseMoney(g *Game, p *Player, debt int) {
	if s.raise != nil {
		s.raise(p, debt)
	}
}

func (s *scripted) Pricing(g *Game, owner *Player, f Buyable, buyer *Player) (int, bool) {
	if len(s.prices) == 0 {
		return 0, false
	}
	price := s.prices[0]
	s.prices = s.prices[1:]
	return price, true
}

func (s *scripted) AcceptPrice(g *Game, buyer *Player, f Buyable, price int) bool { return s.accept }

func (s *scripted) TurnActions(e *Engine, p *Player) { s.turns++ }

func testEngine(t *testing.T, g *Game, deciders ...*scripted) *Engine {
	t.Helper()
	ds := map[int]Decider{}
	for i, d := range deciders {
		ds[i] = d
	}
	e, err := NewEngine(g, ds, zerolog.Nop())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}
