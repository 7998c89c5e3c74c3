package client

import (
	"fmt"
	"io"

	"github.com/undeconstructed/monopoly/game"
)

const (
	RED     = "\033[31m"
	GREEN   = "\033[32m"
	YELLOW  = "\033[33m"
	BLUE    = "\033[34m"
	MAGENTA = "\033[35m"
	CYAN    = "\033[36m"
	WHITE   = "\033[37m"
	GREY    = "\033[90m"
	RESET   = "\033[0m"
)

func col(d game.District) string {
	switch d {
	case game.Grey:
		return GREY
	case game.White:
		return WHITE
	case game.Magenta:
		return MAGENTA
	case game.Cyan:
		return CYAN
	case game.Red:
		return RED
	case game.Yellow:
		return YELLOW
	case game.Green:
		return GREEN
	case game.Blue:
		return BLUE
	default:
		return RESET
	}
}

func fieldLabel(f game.Field) string {
	if p, ok := f.(*game.Property); ok {
		return col(p.District()) + f.Name() + RESET
	}
	return f.Name()
}

func printField(w io.Writer, f game.Field) {
	fmt.Fprintf(w, "%2d %s", f.ID(), fieldLabel(f))
	b, ok := f.(game.Buyable)
	if !ok {
		if t, ok := f.(*game.Tax); ok {
			fmt.Fprintf(w, " (tax %d)", t.Value())
		}
		fmt.Fprintln(w)
		return
	}
	owner := "bank"
	if o := b.Owner(); o != nil {
		owner = o.Name()
	}
	fmt.Fprintf(w, " price %d, owner %s", b.Price(), owner)
	if b.Mortgaged() {
		fmt.Fprintf(w, ", mortgaged")
	}
	if p, ok := f.(*game.Property); ok {
		fmt.Fprintf(w, ", houses %d at %d, rents %v", p.Level(), p.HousePrice(), p.Rents())
	}
	fmt.Fprintln(w)
}

func printBoard(w io.Writer, g *game.Game) {
	here := map[int][]string{}
	for _, p := range g.Players() {
		if !p.Bankrupt() {
			here[p.Position()] = append(here[p.Position()], p.Name())
		}
	}
	for _, f := range g.Fields() {
		fmt.Fprintf(w, "%2d %-24s %v\n", f.ID(), fieldLabel(f), here[f.ID()])
	}
}

func printPlayer(w io.Writer, g *game.Game, p *game.Player) {
	fmt.Fprintf(w, "Player:   %s\n", p)
	fmt.Fprintf(w, "Money:    %d\n", p.Money())
	fmt.Fprintf(w, "Fortune:  %d\n", p.Fortune())
	if p.Bankrupt() {
		fmt.Fprintf(w, "Bankrupt\n")
		return
	}
	fmt.Fprintf(w, "Field:    %s\n", g.Field(p.Position()).Name())
	if p.Arrested() {
		fmt.Fprintf(w, "Jail:     round %d\n", p.JailRound())
	}
	fmt.Fprintf(w, "Cards:    %d\n", p.GetOutCards())
	for _, f := range p.Fields() {
		fmt.Fprintf(w, "  ")
		printField(w, f)
	}
}

func printPlayers(w io.Writer, g *game.Game) {
	for _, p := range g.Players() {
		state := "playing"
		switch {
		case p.Bankrupt():
			state = "bankrupt"
		case p.Arrested():
			state = "in jail"
		}
		fmt.Fprintf(w, "%-16s %6d %3d fields  %s\n", p.Name(), p.Money(), len(p.FieldIDs()), state)
	}
}

// PrintNews writes out what has happened.
func PrintNews(w io.Writer, news []game.Change) {
	for _, c := range news {
		fmt.Fprintf(w, "%s %s\n", c.Who, c.What)
	}
}

// PrintWinners writes out the end of a game.
func PrintWinners(w io.Writer, winners []*game.Player) {
	switch len(winners) {
	case 0:
		fmt.Fprintf(w, "nobody wins\n")
	case 1:
		fmt.Fprintf(w, "%s wins with %d\n", winners[0].Name(), winners[0].Fortune())
	default:
		fmt.Fprintf(w, "a draw between:\n")
		for _, p := range winners {
			fmt.Fprintf(w, "  %s with %d\n", p.Name(), p.Fortune())
		}
	}
}
