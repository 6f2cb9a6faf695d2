// Package delivery defines the contract every transport (HTTP, worker, ...) implements.
package delivery

import "context"

// Delivery is a long-running transport serving the application.
type Delivery interface {
	// Serve blocks, serving requests until the process shuts down.
	Serve(ctx context.Context) error
}
