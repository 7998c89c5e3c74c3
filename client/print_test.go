package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/undeconstructed/monopoly/game"
)

func TestPrintWinners(t *testing.T) {
	board, _ := game.DefaultBoard()
	ps, err := board.NewPlayers("ann", "bob")
	if err != nil {
		t.Fatalf("players: %v", err)
	}

	tests := []struct {
		winners []*game.Player
		want    string
	}{
		{nil, "nobody wins\n"},
		{ps[:1], "ann wins with 1500\n"},
		{ps, "a draw between:\n  ann with 1500\n  bob with 1500\n"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		PrintWinners(&out, tt.winners)
		if out.String() != tt.want {
			t.Errorf("got %q, want %q", out.String(), tt.want)
		}
	}
}

func TestPrintField(t *testing.T) {
	board, _ := game.DefaultBoard()
	var out bytes.Buffer
	printField(&out, board.Fields[4])
	printField(&out, board.Fields[39])
	got := out.String()
	for _, want := range []string{"Income Tax (tax 200)", "Mayfair", "price 400, owner bank", "rents [50 200 600 1400 1700 2000]"} {
		if !strings.Contains(got, want) {
			t.Errorf("output has no %q: %q", want, got)
		}
	}
}

func TestPrintNews(t *testing.T) {
	var out bytes.Buffer
	PrintNews(&out, []game.Change{{Who: "ann", What: "rolls 1 and 2"}, {Who: "bank", What: "auction"}})
	if out.String() != "ann rolls 1 and 2\nbank auction\n" {
		t.Errorf("got %q", out.String())
	}
}
