package core

import "context"

// Worker is the background process of a module. Run blocks until ctx is
// done or the worker is shut down.
type Worker interface {
	Run(ctx context.Context) error
}
