// Package delivery defines the contract every transport implementation
// (HTTP, future gRPC) must satisfy.
package delivery

import "context"

// Delivery is a transport surface that can serve requests until its context
// is canceled or the fx lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
