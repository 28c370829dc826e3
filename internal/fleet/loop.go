package fleet

import (
	"context"
	"log"
	"time"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
)

// Sink consumes poll outcomes from the background loop. snap is nil when
// err is set.
type Sink interface {
	HandlePoll(ctx context.Context, member *Member, snap *clickshare.Snapshot, err error)
}

// StartPolling walks the fleet on a fixed interval and feeds every outcome
// to the sinks. The first pass starts immediately; the loop stops with the
// context.
func (r *Registry) StartPolling(ctx context.Context, interval time.Duration, sinks ...Sink) {
	if interval <= 0 {
		return
	}
	go func() {
		r.pollOnce(ctx, sinks)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.pollOnce(ctx, sinks)
			}
		}
	}()
}

func (r *Registry) pollOnce(ctx context.Context, sinks []Sink) {
	for _, member := range r.Members() {
		snap, err := member.Poll(ctx)
		if err != nil {
			log.Printf("clickshare poll %s: %v", member.Name(), err)
		}
		for _, sink := range sinks {
			sink.HandlePoll(ctx, member, snap, err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
