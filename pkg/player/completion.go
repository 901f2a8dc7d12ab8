package player

import (
	"context"
	"log"
	"sync"
	"time"
)

const completionTimeout = 30 * time.Second

// CompletionRunner executes per-item completion callbacks in the
// background. Dispatch returns immediately; the triggering state
// transition never waits on the callback. Callback errors are logged
// here and never surfaced to any caller. Wait blocks until all
// dispatched callbacks have run, so a shutdown cannot drop them.
type CompletionRunner struct {
	wg sync.WaitGroup
}

// NewCompletionRunner creates an empty runner.
func NewCompletionRunner() *CompletionRunner {
	return &CompletionRunner{}
}

// Dispatch hands fn off to a supervised goroutine. name is only used
// for logging.
func (r *CompletionRunner) Dispatch(name string, fn CompletionFunc) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Printf("completion callback for %q failed: %v", name, err)
		}
	}()
}

// Wait blocks until every dispatched callback has finished.
func (r *CompletionRunner) Wait() {
	r.wg.Wait()
}
