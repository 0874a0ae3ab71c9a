// Package gate holds the process-wide notification on/off switch.
//
// The switch is deliberately an injected capability rather than ambient
// global state: scheduler tasks consult whatever Store they were handed, and
// flipping it is immediately visible to every sleeping task on its next wake
// without a restart. Missing state always reads as off.
package gate

import "context"

// Store is a durable boolean surviving process restarts.
type Store interface {
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Enabled(ctx context.Context) (bool, error)
}
