package recordstore

import "sync"

// Bus is a minimal in-process publish/subscribe channel keyed by record key.
// It carries no payload: a tick on a subscription means "this key changed,
// re-read it". Publishes never block; a subscriber that has not drained its
// channel still holds one pending tick.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]chan struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]chan struct{})}
}

// Subscribe registers interest in changes to key. The returned cancel
// function must be called to release the subscription.
func (b *Bus) Subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.subs[key] = append(b.subs[key], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		channels := b.subs[key]
		for i, c := range channels {
			if c == ch {
				b.subs[key] = append(channels[:i], channels[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// Publish signals all subscribers of key. Ticks coalesce: a subscriber with
// an undelivered tick receives no additional one.
func (b *Bus) Publish(key string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
