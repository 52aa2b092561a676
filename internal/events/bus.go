// Package events is a small in-process publish/subscribe mechanism with typed payloads.
//
// Publishing is synchronous: Publish returns after every subscriber registered at the time of the call has run.
package events

import (
	"context"
	"sync"
)

// Handler reacts to a published event.
type Handler[T any] func(ctx context.Context, event T)

type subscription[T any] struct {
	id      uint64
	handler Handler[T]
}

// Bus fans out events of type T to its subscribers in subscription order. The zero value is ready to use.
type Bus[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription[T]
}

// Subscribe registers h and returns a function that removes it again. Calling the returned function more than once is
// a no-op.
func (b *Bus[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			// Copy on write so that an in-flight Publish keeps iterating its own snapshot.
			subs := make([]subscription[T], 0, len(b.subs)-1)
			subs = append(subs, b.subs[:i]...)
			b.subs = append(subs, b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every current subscriber with event. Subscribers may subscribe or unsubscribe from within a handler;
// such changes take effect from the next Publish.
func (b *Bus[T]) Publish(ctx context.Context, event T) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()
	for _, s := range subs {
		s.handler(ctx, event)
	}
}

// Len returns the number of subscribers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
