package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/undeconstructed/monopoly/game"
)

func update(round int, finished bool, news ...string) game.Update {
	u := game.Update{State: game.GameState{Round: round, Finished: finished}}
	for _, n := range news {
		u.News = append(u.News, game.Change{Round: round, Who: "ann", What: n})
	}
	return u
}

func TestHub(t *testing.T) {
	h := NewHub()
	if _, ok := h.State("a"); ok {
		t.Errorf("state before publish")
	}

	h.Publish("b", update(1, false, "rolls"))
	h.Observer("a")(update(2, false, "buys", "pays"))
	h.Publish("a", update(3, true))

	if games := h.Games(); len(games) != 2 || games[0] != "a" || games[1] != "b" {
		t.Errorf("games: %v", games)
	}
	state, ok := h.State("a")
	if !ok || state.Round != 3 || !state.Finished {
		t.Errorf("state: %+v", state)
	}
	news, ok := h.News("a")
	if !ok || len(news) != 2 || news[1].What != "pays" {
		t.Errorf("news: %v", news)
	}
	if _, ok := h.News("c"); ok {
		t.Errorf("news of unknown game")
	}
}

func TestHub_newsKept(t *testing.T) {
	h := NewHub()
	for i := 0; i < NewsKept+10; i++ {
		h.Publish("a", update(i, false, fmt.Sprint(i)))
	}
	news, _ := h.News("a")
	if len(news) != NewsKept || news[0].What != "10" {
		t.Errorf("kept %d from %s", len(news), news[0].What)
	}
}

func TestBox(t *testing.T) {
	b := newBox()
	ch := b.Listen(context.Background(), nil)

	u := update(1, false)
	b.Put(&u)
	select {
	case got := <-ch:
		if got != &u {
			t.Errorf("got %v", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("no update")
	}

	if got, ok := b.Wait(context.Background(), nil); !ok || got != &u {
		t.Errorf("wait on old value: %v %t", got, ok)
	}

	ch = b.Listen(context.Background(), &u)
	b.Close()
	select {
	case _, ok := <-ch:
		if ok {
			t.Errorf("value after close")
		}
	case <-time.After(time.Second):
		t.Fatalf("not woken by close")
	}
}

func TestBox_listenStopsWithContext(t *testing.T) {
	b := newBox()
	u := update(1, true)
	b.Put(&u)

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Listen(ctx, &u)
	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			t.Errorf("value after cancel")
		}
	case <-time.After(time.Second):
		t.Fatalf("listener still waiting after cancel")
	}

	if _, ok := b.Wait(ctx, &u); ok {
		t.Errorf("wait on a done context")
	}
}
