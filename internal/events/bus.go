package events

import (
	"context"
	"reflect"
	"sync"

	ferrors "git.home.luguber.info/inful/imgcaptions/internal/foundation/errors"
)

// Bus hands typed events between goroutines of one process: image load
// notifications during a reading render and document changes in watch mode.
//
// Subscribers are keyed by the exact event type. Publish waits until every
// subscriber of that type took the event or ctx is done, so the subscriber
// channel buffer is the only queue. Nothing is persisted.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	nextID uint64
	subs   map[reflect.Type]map[uint64]subscriber
}

type subscriber interface {
	deliver(ctx context.Context, evt any) error
	stop()
}

func NewBus() *Bus {
	return &Bus{subs: make(map[reflect.Type]map[uint64]subscriber)}
}

// subscription owns the channel of one Subscribe call. done is closed before
// ch so a delivery blocked on a full channel returns instead of sending on a
// closed one.
type subscription[T any] struct {
	ch   chan T
	done chan struct{}
	mu   sync.RWMutex
	once sync.Once
}

func (s *subscription[T]) deliver(ctx context.Context, evt any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	select {
	case <-s.done:
		return nil
	default:
	}
	select {
	case s.ch <- evt.(T):
		return nil
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ferrors.WrapError(ctx.Err(), ferrors.CategoryRuntime, "event publish canceled").
			WithContext("event_type", reflect.TypeFor[T]().String()).
			Build()
	}
}

func (s *subscription[T]) stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		close(s.ch)
		s.mu.Unlock()
	})
}

// Subscribe registers a channel for events of type T, buffered by buffer.
// The returned func unsubscribes and closes the channel; it is safe to call
// more than once. Subscribing to a closed bus yields a closed channel.
func Subscribe[T any](b *Bus, buffer int) (<-chan T, func()) {
	s := &subscription[T]{ch: make(chan T, buffer), done: make(chan struct{})}
	key := reflect.TypeFor[T]()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		s.stop()
		return s.ch, func() {}
	}
	b.nextID++
	id := b.nextID
	if b.subs[key] == nil {
		b.subs[key] = make(map[uint64]subscriber)
	}
	b.subs[key][id] = s
	b.mu.Unlock()

	return s.ch, func() {
		b.mu.Lock()
		if typeSubs, ok := b.subs[key]; ok {
			delete(typeSubs, id)
			if len(typeSubs) == 0 {
				delete(b.subs, key)
			}
		}
		b.mu.Unlock()
		s.stop()
	}
}

// SubscriberCount returns the number of live subscriptions for T.
func SubscriberCount[T any](b *Bus) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[reflect.TypeFor[T]()])
}

// Publish delivers evt to every subscriber of its concrete type, in no
// particular order.
func (b *Bus) Publish(ctx context.Context, evt any) error {
	if evt == nil {
		return ferrors.ValidationError("event cannot be nil").Build()
	}
	if ctx == nil {
		return ferrors.ValidationError("context cannot be nil").Build()
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ferrors.RuntimeError("event bus is closed").Build()
	}
	typeSubs := b.subs[reflect.TypeOf(evt)]
	targets := make([]subscriber, 0, len(typeSubs))
	for _, s := range typeSubs {
		targets = append(targets, s)
	}
	b.mu.RUnlock()

	for _, s := range targets {
		if err := s.deliver(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}

// Close stops every subscription. Later publishes fail and later subscribers
// get closed channels.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	var all []subscriber
	for _, typeSubs := range b.subs {
		for _, s := range typeSubs {
			all = append(all, s)
		}
	}
	b.subs = nil
	b.mu.Unlock()

	for _, s := range all {
		s.stop()
	}
}
