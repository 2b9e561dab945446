package application

import "context"

// Worker represents a long-running loop.
// Implementations must run until the context is canceled.
type Worker interface {
	Start(ctx context.Context)
}
