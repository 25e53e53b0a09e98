package core

import "context"

// Pinger is implemented by storage backends able to report their health.
type Pinger interface {
	PingContext(ctx context.Context) error
}
