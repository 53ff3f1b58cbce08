package sleepsort

import (
	"context"

	sferrors "github.com/vnykmshr/sleepflow/pkg/common/errors"
)

// Batch is the composite operation over all tasks started by one Schedule call.
// It resolves exactly once: with a nil error when every callback fired, or
// with an error matching errors.ErrCanceled when it was canceled first.
type Batch struct {
	size   int
	cancel context.CancelCauseFunc
	done   chan struct{}
	err    error
}

func newBatch(cancel context.CancelCauseFunc) *Batch {
	return &Batch{
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Len returns the number of tasks in the batch, one per input value.
func (b *Batch) Len() int {
	return b.size
}

// Done returns a channel that is closed when the batch resolves.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch resolves and returns its outcome.
// It may be called any number of times; callbacks are never re-invoked.
func (b *Batch) Wait() error {
	<-b.done
	return b.err
}

// Cancel aborts every task whose delay has not elapsed yet.
// Calling it after the batch resolved has no effect.
func (b *Batch) Cancel() {
	b.cancel(sferrors.ErrCanceled)
}

func (b *Batch) finish(err error) {
	b.err = err
	close(b.done)
}
