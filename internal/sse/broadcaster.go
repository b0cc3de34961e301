// Package sse fans committed change events out to live Server-Sent Events
// subscribers.
package sse

import (
	"context"
	"strings"
	"sync"

	"fyyur/internal/models"
)

// clientBuffer is how many events a slow subscriber may fall behind before
// events are dropped for it.
const clientBuffer = 10

// Broadcaster keeps the live subscribers, keyed by the entity they follow.
// The empty key follows every entity.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[string][]chan models.ChangeEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[string][]chan models.ChangeEvent)}
}

// Subscribe registers a client for entity ("venue", "artist", "show" or ""
// for all). The channel is closed once ctx is done.
func (b *Broadcaster) Subscribe(ctx context.Context, entity string) <-chan models.ChangeEvent {
	ch := make(chan models.ChangeEvent, clientBuffer)

	b.mu.Lock()
	b.clients[entity] = append(b.clients[entity], ch)
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(entity, ch)
	}()

	return ch
}

// Publish delivers event to the subscribers of its entity and to those
// following everything. It never blocks on a slow client.
func (b *Broadcaster) Publish(_ context.Context, event models.ChangeEvent) error {
	entity := EntityOf(event)

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, key := range []string{entity, ""} {
		for _, ch := range b.clients[key] {
			select {
			case ch <- event:
			default:
			}
		}
	}
	return nil
}

func (b *Broadcaster) remove(entity string, target chan models.ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	clients := b.clients[entity]
	for i, ch := range clients {
		if ch == target {
			b.clients[entity] = append(clients[:i], clients[i+1:]...)
			close(target)
			break
		}
	}
	if len(b.clients[entity]) == 0 {
		delete(b.clients, entity)
	}
}

// ClientCount returns the number of subscribers following entity.
func (b *Broadcaster) ClientCount(entity string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients[entity])
}

// EntityOf is the entity part of an event type, e.g. "venue" for
// "venue.listed".
func EntityOf(event models.ChangeEvent) string {
	entity, _, _ := strings.Cut(string(event.Type), ".")
	return entity
}
