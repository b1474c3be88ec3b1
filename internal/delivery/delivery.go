// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a long-running server managed by the application lifecycle.
// Implementations block in Serve until shut down through their fx hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
