// Package workers manages the background workers of the client: the
// periodic sync job and, when replies are pushed, the push connection.
// The Workers aggregate starts them together and stops them in reverse.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start must return promptly, spawning goroutines internally. Stop must
// block until those goroutines have exited and be safe to call more than
// once.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	}
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
