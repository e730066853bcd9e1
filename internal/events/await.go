package events

import "context"

// AwaitOnce subscribes to events of type T and delivers the first event for
// which match returns true. A nil match accepts any event.
//
// The subscription is registered before AwaitOnce returns, so events
// published afterwards are never missed. The returned channel yields at most
// one value and is then closed; it is closed without a value when the bus
// closes or ctx is canceled first. Non-matching events are drained so
// publishers are not blocked.
func AwaitOnce[T any](ctx context.Context, b *Bus, match func(T) bool) <-chan T {
	events, unsubscribe := Subscribe[T](b, 1)
	result := make(chan T, 1)

	go func() {
		defer close(result)
		defer unsubscribe()

		for {
			select {
			case evt, ok := <-events:
				if !ok {
					return
				}
				if match == nil || match(evt) {
					result <- evt
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return result
}
