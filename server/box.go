package server

import (
	"context"
	"sync"

	"github.com/undeconstructed/monopoly/game"
)

// box holds the latest update of one game and wakes anyone waiting for a
// newer one.
type box struct {
	l      sync.Mutex
	c      *sync.Cond
	v      *game.Update
	closed bool
}

func newBox() *box {
	b := &box{}
	b.c = sync.NewCond(&b.l)
	return b
}

func (b *box) Put(v *game.Update) {
	b.l.Lock()
	b.v = v
	b.l.Unlock()
	b.c.Broadcast()
}

func (b *box) Get() *game.Update {
	b.l.Lock()
	defer b.l.Unlock()
	return b.v
}

// Close wakes every waiter for good.
func (b *box) Close() {
	b.l.Lock()
	b.closed = true
	b.l.Unlock()
	b.c.Broadcast()
}

// Wait blocks until the value is not seen, the box is closed or the context
// is done.
func (b *box) Wait(ctx context.Context, seen *game.Update) (*game.Update, bool) {
	stop := context.AfterFunc(ctx, func() {
		b.l.Lock()
		b.l.Unlock()
		b.c.Broadcast()
	})
	defer stop()

	b.l.Lock()
	defer b.l.Unlock()
	for b.v == seen && !b.closed && ctx.Err() == nil {
		b.c.Wait()
	}
	return b.v, b.v != seen
}

// Listen is Wait on a channel. The channel is closed without a value when
// the box is closed or the context is done first.
func (b *box) Listen(ctx context.Context, seen *game.Update) <-chan *game.Update {
	ch := make(chan *game.Update, 1)
	go func() {
		if v, ok := b.Wait(ctx, seen); ok {
			ch <- v
		}
		close(ch)
	}()
	return ch
}
