// Package server lets people watch games being played, but not join in.
package server

import (
	"sort"
	"sync"

	"github.com/undeconstructed/monopoly/game"
)

// NewsKept is how many events are kept per game.
const NewsKept = 200

type feed struct {
	box  *box
	news []game.Change
}

// Hub keeps the latest state of every game being watched. Engines publish
// into it from their own goroutines.
type Hub struct {
	l     sync.Mutex
	games map[string]*feed
}

func NewHub() *Hub {
	return &Hub{games: map[string]*feed{}}
}

func (h *Hub) feed(id string) *feed {
	h.l.Lock()
	defer h.l.Unlock()
	f, ok := h.games[id]
	if !ok {
		f = &feed{box: newBox()}
		h.games[id] = f
	}
	return f
}

// Observer returns a function for game.Engine.Observe that publishes the
// game under id.
func (h *Hub) Observer(id string) func(game.Update) {
	return func(u game.Update) {
		h.Publish(id, u)
	}
}

// Publish stores an update and wakes watchers.
func (h *Hub) Publish(id string, u game.Update) {
	f := h.feed(id)

	h.l.Lock()
	f.news = append(f.news, u.News...)
	if over := len(f.news) - NewsKept; over > 0 {
		f.news = append([]game.Change(nil), f.news[over:]...)
	}
	h.l.Unlock()

	f.box.Put(&u)
}

// Games lists the ids of games with at least one update.
func (h *Hub) Games() []string {
	h.l.Lock()
	defer h.l.Unlock()
	var out []string
	for id, f := range h.games {
		if f.box.Get() != nil {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// State is the latest state of a game.
func (h *Hub) State(id string) (game.GameState, bool) {
	h.l.Lock()
	f, ok := h.games[id]
	h.l.Unlock()
	if !ok {
		return game.GameState{}, false
	}
	u := f.box.Get()
	if u == nil {
		return game.GameState{}, false
	}
	return u.State, true
}

// News is the recent events of a game, oldest first.
func (h *Hub) News(id string) ([]game.Change, bool) {
	h.l.Lock()
	defer h.l.Unlock()
	f, ok := h.games[id]
	if !ok {
		return nil, false
	}
	return append([]game.Change(nil), f.news...), true
}

// Close wakes all watchers so they can go.
func (h *Hub) Close() {
	h.l.Lock()
	defer h.l.Unlock()
	for _, f := range h.games {
		f.box.Close()
	}
}
