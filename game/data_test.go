package game

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDefaultBoard(t *testing.T) {
	board, err := DefaultBoard()
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(board.Fields) != NumberOfFields {
		t.Fatalf("fields: %d", len(board.Fields))
	}
	if board.Settings != DefaultSettings() {
		t.Errorf("settings: %+v", board.Settings)
	}
	for i, f := range board.Fields {
		if f.ID() != i {
			t.Errorf("field %d has id %d", i, f.ID())
		}
		if f.Kind() != KindOf(i) {
			t.Errorf("field %d is %s", i, f.Kind())
		}
	}
	mayfair, ok := board.Fields[39].(*Property)
	if !ok || mayfair.Price() != 400 || mayfair.MortgageValue() != 200 || mayfair.District() != Blue {
		t.Errorf("mayfair: %+v", board.Fields[39])
	}
	if tax := board.Fields[38].(*Tax); tax.Value() != 100 {
		t.Errorf("super tax: %d", tax.Value())
	}
}

func boardWith(t *testing.T, change func(*BoardData)) []byte {
	t.Helper()
	var data BoardData
	if err := json.Unmarshal(defaultBoard, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	change(&data)
	out, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return out
}

func TestReadBoard_errors(t *testing.T) {
	tests := []struct {
		name   string
		change func(*BoardData)
		err    error
	}{
		{"missing field", func(d *BoardData) { delete(d.Fields, "20") }, ErrBadValue},
		{"key and id differ", func(d *BoardData) {
			f := d.Fields["20"]
			f.ID = 21
			d.Fields["20"] = f
		}, ErrInvalidId},
		{"bad key", func(d *BoardData) { d.Fields["x"] = FieldData{} }, ErrInvalidId},
		{"free property", func(d *BoardData) {
			f := d.Fields["1"]
			f.Price = 0
			d.Fields["1"] = f
		}, ErrBadValue},
		{"short rents", func(d *BoardData) {
			f := d.Fields["1"]
			f.Rents = map[string]int{"0": 2}
			d.Fields["1"] = f
		}, ErrBadValue},
		{"unknown district", func(d *BoardData) {
			f := d.Fields["1"]
			f.District = "pink"
			d.Fields["1"] = f
		}, ErrBadValue},
		{"no tax", func(d *BoardData) {
			f := d.Fields["4"]
			f.Value = 0
			d.Fields["4"] = f
		}, ErrBadValue},
		{"bad settings", func(d *BoardData) { d.Settings.StartBid = 0 }, ErrBadValue},
	}
	for _, tt := range tests {
		_, err := ReadBoard(bytes.NewReader(boardWith(t, tt.change)))
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.err)
		}
	}
}

func TestReadBoard_defaultSettings(t *testing.T) {
	board, err := ReadBoard(bytes.NewReader(boardWith(t, func(d *BoardData) { d.Settings = nil })))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if board.Settings != DefaultSettings() {
		t.Errorf("settings: %+v", board.Settings)
	}
}

func TestReadBoard_notJSON(t *testing.T) {
	if _, err := ReadBoard(strings.NewReader("fields")); err == nil {
		t.Errorf("no error")
	}
}

func TestBoard_newPlayers(t *testing.T) {
	board, _ := DefaultBoard()
	ps, err := board.NewPlayers("ann", "bob")
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(ps) != 2 || ps[1].ID() != 1 || ps[1].Money() != 1500 {
		t.Errorf("players: %v", ps)
	}
	if _, err := board.NewPlayers("ann", ""); !errors.Is(err, ErrBadValue) {
		t.Errorf("empty name: %v", err)
	}
	if _, err := board.NewPlayers("a name that is far too long"); !errors.Is(err, ErrBadValue) {
		t.Errorf("long name: %v", err)
	}
}
