package game

// Auction is a field being sold to the highest bidder.
type Auction struct {
	Field      Buyable
	StartBid   int
	Step       int
	CurrentBid int
	Leader     *Player

	participants map[int]*Player
}

// MinimumBid is the lowest bid that would be taken now.
func (a *Auction) MinimumBid() int {
	if a.Leader == nil {
		return a.StartBid
	}
	return a.CurrentBid + a.Step
}

// Participants are the players who have not passed, by id.
func (a *Auction) Participants() []*Player {
	var out []*Player
	for _, p := range a.participants {
		out = append(out, p)
	}
	sortPlayers(out)
	return out
}

// Validate checks a bid could be taken from the player.
func (a *Auction) Validate(p *Player, bid int) error {
	if _, ok := a.participants[p.id]; !ok {
		return ErrNotForSale
	}
	if bid < a.MinimumBid() {
		return ErrBadValue
	}
	if bid > p.money {
		return ErrNoMoney
	}
	return nil
}

func (a *Auction) pass(p *Player) {
	delete(a.participants, p.id)
}

func (a *Auction) take(p *Player, bid int) {
	a.CurrentBid = bid
	a.Leader = p
}

// Auction sells a field to whoever bids most. Bidding goes round from the
// player after the current one, and anyone who passes or makes a bad bid is
// out. The winner pays the owner, or the bank if there is none.
func (e *Engine) Auction(f Buyable, startBid int) (*Player, int) {
	a := &Auction{
		Field:        f,
		StartBid:     startBid,
		Step:         e.g.settings.BidDifference,
		participants: e.g.BiddingPlayers(),
	}
	if owner := f.Owner(); owner != nil {
		a.pass(owner)
	}

	e.addEventf(nil, "auction of %s starts at %d", f.Name(), startBid)

	id := e.g.currentPlayerID
	for len(a.participants) > 0 {
		if len(a.participants) == 1 && a.Leader != nil {
			break
		}
		id = e.g.NextBidderID(id, a.participants)
		bidder := a.participants[id]
		if bidder == a.Leader {
			continue
		}
		bid, ok := e.decider(bidder).Bid(e.g, a, bidder)
		if !ok {
			a.pass(bidder)
			e.addEvent(bidder, "passes")
			continue
		}
		if err := a.Validate(bidder, bid); err != nil {
			a.pass(bidder)
			e.addEventf(bidder, "makes a bad bid of %d and is out", bid)
			continue
		}
		a.take(bidder, bid)
		e.addEventf(bidder, "bids %d", bid)
	}

	if a.Leader == nil {
		e.addEventf(nil, "nobody bids for %s", f.Name())
		return nil, 0
	}
	if err := e.g.MakeDeal(a.Leader, f, a.CurrentBid); err != nil {
		e.log.Warn().Err(err).Int("field", f.ID()).Msg("auction deal failed")
		return nil, 0
	}
	e.addEventf(a.Leader, "wins %s for %d", f.Name(), a.CurrentBid)
	return a.Leader, a.CurrentBid
}
