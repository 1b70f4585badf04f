package mock

import (
	"context"
	"time"
)

// Latencies is the simulated network delay of each mock call.
type Latencies struct {
	Login      time.Duration
	Register   time.Duration
	FetchScore time.Duration
	Submit     time.Duration
}

// DefaultLatencies returns the delays the demo front-end used.
func DefaultLatencies() Latencies {
	return Latencies{
		Login:      1500 * time.Millisecond,
		Register:   2 * time.Second,
		FetchScore: 2 * time.Second,
		Submit:     3 * time.Second,
	}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
