package game

import "sort"

func sortPlayers(l []*Player) {
	sort.Slice(l, func(i, j int) bool { return l[i].id < l[j].id })
}

func playerNames(l []*Player) []string {
	var out []string
	for _, p := range l {
		out = append(out, p.name)
	}
	return out
}

func intListContains(l []int, n int) bool {
	for _, x := range l {
		if x == n {
			return true
		}
	}
	return false
}
