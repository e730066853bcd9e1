package watch

import (
	"context"

	"git.home.luguber.info/inful/imgcaptions/internal/events"
)

// Handler processes one document change. Returned errors are passed to the
// error callback of Consume and never stop consumption.
type Handler func(ctx context.Context, evt events.DocumentChanged) error

// Consume subscribes to DocumentChanged on bus and calls handle for each
// event, one at a time, until ctx is done or the bus closes. The
// subscription is registered before Consume returns.
func Consume(ctx context.Context, bus *events.Bus, handle Handler, onError func(events.DocumentChanged, error)) <-chan struct{} {
	ch, unsubscribe := events.Subscribe[events.DocumentChanged](bus, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				if err := handle(ctx, evt); err != nil && onError != nil {
					onError(evt, err)
				}
			}
		}
	}()
	return done
}
