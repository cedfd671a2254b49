// Package lifecycle holds shared constants for application startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdown of infrastructure
// components (database ping, HTTP server drain).
const DefaultTimeout = 10 * time.Second
