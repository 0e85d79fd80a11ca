package scan

import (
	"context"

	"qrscan/internal/decoder"
)

// Run feeds decoder events into the session one at a time until ctx is done
// or events is closed. notify, when set, observes every outcome on the same
// goroutine.
func (s *Session) Run(ctx context.Context, events <-chan decoder.Event, notify func(decoder.Event, Outcome)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			outcome := s.OnDecoded(ev.Text)
			if notify != nil {
				notify(ev, outcome)
			}
		}
	}
}
