package game

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewEngine_needsDeciders(t *testing.T) {
	g, _, _ := testGame(t, 2)
	if _, err := NewEngine(g, map[int]Decider{0: &scripted{}}, zerolog.Nop()); !errors.Is(err, ErrInvalidId) {
		t.Errorf("missing decider: %v", err)
	}
}

func TestTurn_tax(t *testing.T) {
	g, ps, src := testGame(t, 2)
	d := &scripted{}
	e := testEngine(t, g, d, &scripted{})
	src.push(1, 3)

	e.Turn()
	if ps[0].Position() != 4 || ps[0].Money() != 1300 {
		t.Errorf("after tax: %d %d", ps[0].Position(), ps[0].Money())
	}
	if d.turns != 1 {
		t.Errorf("turn actions %d", d.turns)
	}
	if len(e.News()) == 0 {
		t.Errorf("no news")
	}
	if len(e.News()) != 0 {
		t.Errorf("news not taken")
	}
}

func TestTurn_buy(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{buy: true}, &scripted{})
	src.push(1, 2)

	e.Turn()
	f, _ := g.Buyable(3)
	if f.Owner() != ps[0] || ps[0].Money() != 1440 {
		t.Errorf("after buy: %v %d", f.Owner(), ps[0].Money())
	}
}

func TestTurn_declineGoesToAuction(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{bids: []int{10}})
	src.push(1, 2)

	e.Turn()
	f, _ := g.Buyable(3)
	if f.Owner() != ps[1] || ps[1].Money() != 1490 || ps[0].Money() != 1500 {
		t.Errorf("after auction: %v %d", f.Owner(), ps[1].Money())
	}
}

func TestTurn_rent(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	buy(t, g, ps[1], 3)
	src.push(1, 2)

	e.Turn()
	if ps[0].Money() != 1496 || ps[1].Money() != 1444 {
		t.Errorf("after rent: %d %d", ps[0].Money(), ps[1].Money())
	}
}

func TestTurn_serviceRent(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	buy(t, g, ps[1], 12)
	ps[0].position = 9
	src.push(1, 2, 3, 4)

	e.Turn()
	if ps[0].Money() != 1472 || ps[1].Money() != 1378 {
		t.Errorf("after rent: %d %d", ps[0].Money(), ps[1].Money())
	}
}

func TestTurn_passStart(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	ps[0].position = 38
	src.push(1, 2)

	e.Turn()
	if ps[0].Position() != 1 || ps[0].Money() != 1700 {
		t.Errorf("passing: %d %d", ps[0].Position(), ps[0].Money())
	}

	g.currentPlayerID = 1
	ps[1].position = 37
	src.push(1, 2)
	e.Turn()
	if ps[1].Position() != 0 || ps[1].Money() != 1700 {
		t.Errorf("landing: %d %d", ps[1].Position(), ps[1].Money())
	}
}

func TestTurn_threeDoublesToJail(t *testing.T) {
	g, ps, src := testGame(t, 2)
	d := &scripted{}
	e := testEngine(t, g, d, &scripted{})
	src.push(2, 2, 3, 3, 1, 1)

	e.Turn()
	p := ps[0]
	if !p.Arrested() || p.Position() != JailID || !g.Jail().Holds(p) {
		t.Errorf("not in jail: %t %d", p.Arrested(), p.Position())
	}
	if p.DoublesInRow() != 0 || p.Money() != 1300 || d.turns != 2 {
		t.Errorf("after: %d %d %d", p.DoublesInRow(), p.Money(), d.turns)
	}
}

func TestTurn_jail(t *testing.T) {
	tests := []struct {
		name     string
		action   JailAction
		round    int
		cards    int
		dice     []int
		free     bool
		position int
		money    int
		round2   int
	}{
		{"roll double", JailRoll, 1, 0, []int{3, 3}, true, 16, 1500, 0},
		{"roll and stay", JailRoll, 1, 0, []int{1, 2}, false, JailID, 1500, 2},
		{"third round pays", JailRoll, 3, 0, []int{1, 2}, true, 13, 1450, 0},
		{"pay", JailPay, 1, 0, nil, true, JailID, 1450, 0},
		{"card", JailCard, 1, 1, nil, true, JailID, 1500, 0},
		{"no card rolls", JailCard, 1, 0, []int{1, 2}, false, JailID, 1500, 2},
	}
	for _, tt := range tests {
		g, ps, src := testGame(t, 2)
		e := testEngine(t, g, &scripted{jail: tt.action}, &scripted{})
		p := ps[0]
		_ = g.Arrest(p)
		p.jailRound = tt.round
		p.getOutCards = tt.cards
		src.push(tt.dice...)

		e.Turn()
		if p.Arrested() == tt.free || g.Jail().Holds(p) == tt.free {
			t.Errorf("%s: arrested %t", tt.name, p.Arrested())
		}
		if p.Position() != tt.position || p.Money() != tt.money || p.JailRound() != tt.round2 {
			t.Errorf("%s: position %d money %d round %d", tt.name, p.Position(), p.Money(), p.JailRound())
		}
		if p.GetOutCards() != 0 {
			t.Errorf("%s: cards %d", tt.name, p.GetOutCards())
		}
	}
}

func TestTurn_chance(t *testing.T) {
	g, ps, src := testGame(t, 2)
	d := &scripted{}
	e := testEngine(t, g, d, &scripted{})
	src.push(3, 4, int(CardInheritance))

	e.Turn()
	if ps[0].Position() != 7 || ps[0].Money() != 1600 {
		t.Errorf("inheritance: %d %d", ps[0].Position(), ps[0].Money())
	}

	ps[0].position = 0
	src.push(3, 4, int(CardArrest))
	e.Turn()
	if !ps[0].Arrested() || d.turns != 1 {
		t.Errorf("arrest card: %t %d", ps[0].Arrested(), d.turns)
	}
}

func TestChanceCards(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	p := ps[0]
	buy(t, g, p, 1, 3)
	_ = property(t, g, 1).SetLevel(2)
	_ = property(t, g, 3).SetLevel(1)
	p.money = 1000

	src.push(2, 2)
	e.chance(p, CardScratch)
	if p.Money() != 1008 {
		t.Errorf("scratch double: %d", p.Money())
	}
	e.chance(p, CardRenovation)
	if p.Money() != 1008-75 {
		t.Errorf("renovation: %d", p.Money())
	}
	e.chance(p, CardOverpayment)
	if p.Money() != 933+40 {
		t.Errorf("overpayment: %d", p.Money())
	}
	e.chance(p, CardGetOut)
	e.chance(p, CardSecondGetOut)
	if p.GetOutCards() != 2 {
		t.Errorf("cards: %d", p.GetOutCards())
	}
	e.chance(p, CardHolidays)
	if p.Money() != 973 {
		t.Errorf("holidays: %d", p.Money())
	}
}

func TestTurn_bankruptToBank(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	ps[0].money = 100
	src.push(1, 3)

	e.Step()
	if !ps[0].Bankrupt() {
		t.Errorf("not bankrupt")
	}
	if !g.Finished() || len(g.Winners()) != 1 || g.Winners()[0] != ps[1] {
		t.Errorf("winners: %v", g.Winners())
	}
}

func TestTurn_forcedSale(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	buy(t, g, ps[0], 39)
	ps[0].money = 100
	src.push(1, 3)

	e.Turn()
	mayfair, _ := g.Buyable(39)
	if ps[0].Bankrupt() || mayfair.Owner() != nil || ps[0].Money() != 100 {
		t.Errorf("after: %t %v %d", ps[0].Bankrupt(), mayfair.Owner(), ps[0].Money())
	}
}

func TestTurn_deciderRaisesMoney(t *testing.T) {
	g, ps, src := testGame(t, 2)
	d := &scripted{raise: func(p *Player, debt int) {
		_ = MortgageFields(p, debt)
	}}
	e := testEngine(t, g, d, &scripted{})
	buy(t, g, ps[0], 39)
	ps[0].money = 100
	src.push(1, 3)

	e.Turn()
	mayfair, _ := g.Buyable(39)
	if mayfair.Owner() != ps[0] || !mayfair.Mortgaged() || ps[0].Money() != 100 {
		t.Errorf("after: %v %t %d", mayfair.Owner(), mayfair.Mortgaged(), ps[0].Money())
	}
}

func TestTurn_bankruptToPlayer(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	buy(t, g, ps[1], 39)
	ps[0].position = 35
	ps[0].money = 10
	src.push(1, 3)

	e.Turn()
	if !ps[0].Bankrupt() || ps[1].Money() != 1110 {
		t.Errorf("after: %t %d", ps[0].Bankrupt(), ps[1].Money())
	}
}

func TestSellHouses(t *testing.T) {
	g, ps, _ := testGame(t, 2)
	p := ps[0]
	buy(t, g, p, 6, 8, 9)
	for _, id := range []int{6, 8, 9} {
		_ = property(t, g, id).SetLevel(2)
	}
	p.money = 0

	if !SellHouses(p, 75) {
		t.Fatalf("not raised")
	}
	if p.Money() != 75 || p.CountHouses() != 3 {
		t.Errorf("after: %d %d", p.Money(), p.CountHouses())
	}
	if SellHouses(p, 1000) {
		t.Errorf("raised too much")
	}
	if p.CountHouses() != 0 || p.Money() != 150 {
		t.Errorf("after all: %d %d", p.CountHouses(), p.Money())
	}
}

func TestTrade(t *testing.T) {
	g, ps, _ := testGame(t, 2)
	buyer := &scripted{accept: true}
	owner := &scripted{prices: []int{100}}
	e := testEngine(t, g, buyer, owner)
	buy(t, g, ps[1], 3, 39)
	whitechapel, _ := g.Buyable(3)
	mayfair, _ := g.Buyable(39)

	ok, err := e.Trade(ps[0], whitechapel)
	if err != nil || !ok {
		t.Fatalf("trade: %t %v", ok, err)
	}
	if whitechapel.Owner() != ps[0] || ps[0].Money() != 1400 || ps[1].Money() != 1040+100 {
		t.Errorf("after: %v %d %d", whitechapel.Owner(), ps[0].Money(), ps[1].Money())
	}

	if ok, err := e.Trade(ps[0], mayfair); ok || err != nil {
		t.Errorf("refused: %t %v", ok, err)
	}
	if _, err := e.Trade(ps[0], whitechapel); !errors.Is(err, ErrNotForSale) {
		t.Errorf("own field: %v", err)
	}
	_ = mayfair.StartMortgage()
	if _, err := e.Trade(ps[0], mayfair); !errors.Is(err, ErrNotForSale) {
		t.Errorf("mortgaged: %v", err)
	}
}

func TestRun(t *testing.T) {
	g, ps, src := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	var updates []Update
	e.Observe(func(u Update) { updates = append(updates, u) })
	ps[0].money = 100
	src.push(1, 3)

	winners, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(winners) != 1 || winners[0] != ps[1] {
		t.Errorf("winners: %v", winners)
	}
	if len(updates) == 0 || !updates[len(updates)-1].State.Finished {
		t.Errorf("no final update")
	}
	if w := updates[len(updates)-1].State.Winners; len(w) != 1 || w[0] != "p1" {
		t.Errorf("winners in state: %v", w)
	}
}

func TestRun_cancelled(t *testing.T) {
	g, _, _ := testGame(t, 2)
	e := testEngine(t, g, &scripted{}, &scripted{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("run: %v", err)
	}
}
