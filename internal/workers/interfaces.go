// Package workers provides abstractions for managing and running
// long-lived workers in the application.
// It defines the Worker interface and a Workers group that runs several
// workers side by side and stops them together.
package workers

import "context"

// Worker is the interface that must be implemented by any long-lived worker.
// It defines a single Run method that blocks until the work is finished or
// ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
