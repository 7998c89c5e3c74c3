package ai

import "github.com/undeconstructed/monopoly/game"

// CountOwnedDistricts counts the player's properties in every district.
func CountOwnedDistricts(p *game.Player) map[game.District]int {
	out := map[game.District]int{}
	for _, d := range game.Districts {
		out[d] = 0
	}
	for _, f := range p.Fields() {
		if prop, ok := f.(*game.Property); ok {
			out[prop.District()]++
		}
	}
	return out
}

// AlmostFullDistricts are districts the player lacks exactly one field of.
func AlmostFullDistricts(p *game.Player) []game.District {
	owned := CountOwnedDistricts(p)
	var out []game.District
	for _, d := range game.Districts {
		if d.Size()-owned[d] == 1 {
			out = append(out, d)
		}
	}
	return out
}

// FullDistricts are districts the player owns completely.
func FullDistricts(p *game.Player) []game.District {
	owned := CountOwnedDistricts(p)
	var out []game.District
	for _, d := range game.Districts {
		if d.Size() == owned[d] {
			out = append(out, d)
		}
	}
	return out
}

// MissingFieldID finds the first property of the district that is not the
// player's.
func MissingFieldID(p *game.Player, d game.District, board []game.Field) (int, bool) {
	for _, f := range board {
		prop, ok := f.(*game.Property)
		if !ok || prop.District() != d {
			continue
		}
		if prop.Owner() != p {
			return prop.ID(), true
		}
	}
	return 0, false
}

// MissingFieldIDs finds the missing field of every almost full district.
func MissingFieldIDs(p *game.Player, board []game.Field) []int {
	var out []int
	for _, d := range AlmostFullDistricts(p) {
		if id, ok := MissingFieldID(p, d, board); ok {
			out = append(out, id)
		}
	}
	return out
}

// BuildHousesIDs picks one full district at random and returns the ids of
// its properties.
func (a *Policy) BuildHousesIDs(p *game.Player) []int {
	full := FullDistricts(p)
	if len(full) == 0 {
		return nil
	}
	d := full[a.source.Between(0, len(full)-1)]
	var out []int
	for _, f := range p.Fields() {
		if prop, ok := f.(*game.Property); ok && prop.District() == d {
			out = append(out, prop.ID())
		}
	}
	return out
}
