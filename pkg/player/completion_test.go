package player

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionRunnerRunsEveryCallback(t *testing.T) {
	r := NewCompletionRunner()

	var ran int64
	for i := 0; i < 5; i++ {
		r.Dispatch("item", func(context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}
	r.Wait()

	assert.Equal(t, int64(5), atomic.LoadInt64(&ran))
}

func TestCompletionRunnerSwallowsErrors(t *testing.T) {
	r := NewCompletionRunner()

	r.Dispatch("broken", func(context.Context) error {
		return errors.New("mark played failed")
	})

	// Wait must return normally; the error is logged, never surfaced.
	r.Wait()
}

func TestCompletionRunnerDoesNotBlockDispatch(t *testing.T) {
	r := NewCompletionRunner()

	release := make(chan struct{})
	r.Dispatch("slow", func(context.Context) error {
		<-release
		return nil
	})

	// Dispatch returned while the callback is still parked.
	close(release)
	r.Wait()
}
