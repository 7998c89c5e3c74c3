// Package client lets people play at a terminal.
package client

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	rl "github.com/chzyer/readline"

	"github.com/undeconstructed/monopoly/game"
)

var _ game.Decider = (*Console)(nil)

// Console asks a person at the terminal for every decision. One console can
// serve every human player at the table, the prompt says whose go it is.
type Console struct {
	rl      LineReader
	out     io.Writer
	engine  *game.Engine
	closed  bool
	onClose func()
}

// NewConsole makes a console reading from r and writing to out.
func NewConsole(r LineReader, out io.Writer) *Console {
	return &Console{rl: r, out: out}
}

// Attach lets the console show the engine's news before asking anything.
func (c *Console) Attach(e *game.Engine) {
	c.engine = e
}

// OnClose is called once when the person hangs up. Every decision after that
// takes the safe default.
func (c *Console) OnClose(f func()) {
	c.onClose = f
}

// Closed says if the terminal has gone.
func (c *Console) Closed() bool {
	return c.closed
}

func (c *Console) close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.onClose != nil {
		c.onClose()
	}
}

func (c *Console) flush() {
	if c.engine != nil {
		PrintNews(c.out, c.engine.News())
	}
}

// ask shows a question and reads one line, false if there is no more input.
func (c *Console) ask(p *game.Player, question string) (string, bool) {
	if c.closed {
		return "", false
	}
	c.flush()
	if question != "" {
		fmt.Fprintln(c.out, question)
	}
	c.rl.SetPrompt(fmt.Sprintf("%s» ", p.Name()))
	for {
		line, err := c.rl.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				c.close()
				return "", false
			}
			continue
		} else if err != nil {
			c.close()
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

func (c *Console) yesNo(p *game.Player, question string) bool {
	for {
		line, ok := c.ask(p, question+" [y/n]")
		if !ok {
			return false
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

func (c *Console) printError(err error) {
	var gerr *game.GameError
	if errors.As(err, &gerr) {
		fmt.Fprintf(c.out, "error: %s (%s)\n", gerr.Msg, gerr.Code)
		return
	}
	fmt.Fprintf(c.out, "error: %v\n", err)
}

func (c *Console) WantToBuy(g *game.Game, p *game.Player, f game.Buyable) bool {
	printField(c.out, f)
	return c.yesNo(p, fmt.Sprintf("buy %s for %d? you have %d", f.Name(), f.Price(), p.Money()))
}

func (c *Console) Bid(g *game.Game, a *game.Auction, p *game.Player) (int, bool) {
	for {
		q := fmt.Sprintf("auction of %s: bid at least %d, you have %d, or pass", a.Field.Name(), a.MinimumBid(), p.Money())
		if a.Leader != nil {
			q = fmt.Sprintf("%s leads with %d. %s", a.Leader.Name(), a.CurrentBid, q)
		}
		line, ok := c.ask(p, q)
		if !ok {
			return 0, false
		}
		if line == "" || line == "p" || line == "pass" {
			return 0, false
		}
		bid, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(c.out, "a number, or pass\n")
			continue
		}
		if err := a.Validate(p, bid); err != nil {
			c.printError(err)
			continue
		}
		return bid, true
	}
}

func (c *Console) JailAction(g *game.Game, p *game.Player) game.JailAction {
	for {
		q := fmt.Sprintf("in jail, round %d: roll, pay %d or card (%d)", p.JailRound(), g.Settings().Deposit, p.GetOutCards())
		line, ok := c.ask(p, q)
		if !ok {
			return game.JailRoll
		}
		switch line {
		case "roll", "r", "":
			return game.JailRoll
		case "pay":
			return game.JailPay
		case "card":
			return game.JailCard
		}
	}
}

// RaiseMoney lets the player sell and mortgage until the debt is covered.
// Giving up leaves it to the forced sale.
func (c *Console) RaiseMoney(g *game.Game, p *game.Player, debt int) {
	for p.Money() < debt {
		q := fmt.Sprintf("you owe %d and have %d: mortgage, sell or sellhouse <field>, or giveup", debt, p.Money())
		line, ok := c.ask(p, q)
		if !ok {
			return
		}
		cmd, rest := splitCommand(line)
		switch cmd {
		case "giveup":
			return
		case "me":
			printPlayer(c.out, g, p)
		case "mortgage", "sell", "sellhouse":
			if err := c.fieldCommand(g, p, cmd, rest); err != nil {
				c.printError(err)
			}
		default:
			fmt.Fprintf(c.out, "unknown\n")
		}
	}
}

func (c *Console) Pricing(g *game.Game, owner *game.Player, f game.Buyable, buyer *game.Player) (int, bool) {
	for {
		q := fmt.Sprintf("%s wants to buy %s: name a price, or no", buyer.Name(), f.Name())
		line, ok := c.ask(owner, q)
		if !ok || line == "no" || line == "n" || line == "" {
			return 0, false
		}
		price, err := strconv.Atoi(line)
		if err != nil || price <= 0 {
			fmt.Fprintf(c.out, "a price, or no\n")
			continue
		}
		return price, true
	}
}

func (c *Console) AcceptPrice(g *game.Game, buyer *game.Player, f game.Buyable, price int) bool {
	owner := "bank"
	if o := f.Owner(); o != nil {
		owner = o.Name()
	}
	return c.yesNo(buyer, fmt.Sprintf("%s asks %d for %s, you have %d", owner, price, f.Name(), buyer.Money()))
}

// TurnActions is the turn prompt. An empty line or end finishes the turn.
func (c *Console) TurnActions(e *game.Engine, p *game.Player) {
	g := e.Game()
	for {
		line, ok := c.ask(p, "")
		if !ok {
			return
		}
		cmd, rest := splitCommand(line)
		switch cmd {
		case "", "end":
			return
		case "board":
			printBoard(c.out, g)
		case "players":
			printPlayers(c.out, g)
		case "me":
			printPlayer(c.out, g, p)
		case "field":
			id, err := strconv.Atoi(rest)
			if err != nil || g.Field(id) == nil {
				fmt.Fprintf(c.out, "field <id>\n")
				continue
			}
			printField(c.out, g.Field(id))
		case "market":
			for _, f := range g.FieldsForSell() {
				printField(c.out, f)
			}
		case "trade":
			f, err := buyableArg(g, rest)
			if err != nil {
				fmt.Fprintf(c.out, "trade <field>\n")
				continue
			}
			if _, err := e.Trade(p, f); err != nil {
				c.printError(err)
			}
		case "auction":
			var id, start int
			if _, err := fmt.Sscan(rest, &id, &start); err != nil {
				fmt.Fprintf(c.out, "auction <field> <start bid>\n")
				continue
			}
			f, ok := p.Field(id)
			if !ok {
				c.printError(game.ErrNotOwned)
				continue
			}
			if _, err := e.PutForAuction(p, f, start); err != nil {
				c.printError(err)
			}
		case "build", "sellhouse", "mortgage", "unmortgage", "sell":
			if err := c.fieldCommand(g, p, cmd, rest); err != nil {
				c.printError(err)
			}
		default:
			fmt.Fprintf(c.out, "unknown\n")
		}
	}
}

// fieldCommand does something to one of the player's own fields.
func (c *Console) fieldCommand(g *game.Game, p *game.Player, cmd, rest string) error {
	f, err := buyableArg(g, rest)
	if err != nil {
		return err
	}
	if f.Owner() != p {
		return game.ErrNotOwned
	}
	switch cmd {
	case "mortgage":
		err = f.StartMortgage()
	case "unmortgage":
		err = f.EndMortgage()
	case "sell":
		err = p.SellToBank(f)
	case "build", "sellhouse":
		prop, ok := f.(*game.Property)
		if !ok {
			return fmt.Errorf("%s is not a property: %w", f.Name(), game.ErrPropertyLevel)
		}
		if cmd == "build" {
			err = prop.BuildHouse()
		} else {
			err = prop.RemoveHouse()
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s done, you have %d\n", cmd, p.Money())
	return nil
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	cmd := parts[0]
	rest := ""
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return cmd, rest
}

func buyableArg(g *game.Game, arg string) (game.Buyable, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return nil, game.ErrInvalidId
	}
	f, ok := g.Buyable(id)
	if !ok {
		return nil, game.ErrInvalidId
	}
	return f, nil
}
