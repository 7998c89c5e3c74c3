package game

import "math/rand"

// Source is where all randomness comes from, so games can be replayed.
type Source interface {
	// Between returns a number in [min, max].
	Between(min, max int) int
}

type randSource struct {
	r *rand.Rand
}

// NewSource makes a seeded source.
func NewSource(seed int64) Source {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

func (s *randSource) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

// Roll is the result of throwing two dice.
type Roll [2]int

// Sum is the number of fields to move.
func (r Roll) Sum() int {
	return r[0] + r[1]
}

// Double is both dice showing the same.
func (r Roll) Double() bool {
	return r[0] == r[1]
}

// Throw rolls two dice from the source.
func Throw(s Source) Roll {
	return Roll{s.Between(1, 6), s.Between(1, 6)}
}
