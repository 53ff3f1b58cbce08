/*
Package sleepsort invokes a callback once per value, in ascending order, by
giving every value its own timer whose delay is proportional to the value.

Basic Usage:

	err := sleepsort.Sort(ctx, []uint32{3, 1, 6, 4, 2, 5}, func(v uint32) {
		fmt.Println(v)
	})
	// prints 1 through 6, one per second

Sort uses the default one-second unit. Build a Scheduler to pick a different
unit, clock, logger, or lifecycle hooks:

	s := sleepsort.NewWithConfig[uint16](sleepsort.Config{
		Unit: 10 * time.Millisecond,
		Name: "priority_drain",
	})

	var seen sleepsort.Collector[uint16]
	if err := s.Sort(ctx, slices.Values(priorities), &seen); err != nil {
		return err
	}
	fmt.Println(seen.Values())

Batches:

Schedule returns a *Batch without blocking. All timers are already running
when it returns:

	batch := s.Schedule(ctx, slices.Values(values), sleepsort.CallbackFunc[uint16](handle))
	fmt.Println("tasks:", batch.Len())

	select {
	case <-batch.Done():
	case <-shutdown:
		batch.Cancel()
	}
	err := batch.Wait()

Wait can be called any number of times and always reports the same outcome.

Ordering:

Nothing sequences the callbacks. Order comes only from timers with shorter
delays firing first, so it holds for values whose gap, multiplied by the unit,
is well above the timer resolution and scheduling jitter. Equal values, and
values closer than that, fire in an unspecified order. Each one still fires
exactly once.

The time a batch takes is proportional to its largest value, not to its
size. This is not a general-purpose sort.

Cancellation:

Canceling the context passed to Schedule, or calling Batch.Cancel, resolves
the batch as canceled. No callback fires for a task whose delay had not
elapsed. A callback that is already running finishes. The resulting error
matches errors.ErrCanceled from pkg/common/errors and wraps the context
cause:

	err := batch.Wait()
	switch {
	case err == nil:
		// every callback fired
	case errors.Is(err, context.DeadlineExceeded):
		// parent deadline hit first
	case sferrors.IsCanceled(err):
		// canceled
	}

There is no report of which values fired before cancellation. Instrument
the callback, e.g. with a Collector, to track progress.

Callbacks:

The callback is shared by every task of a batch and may run concurrently
with itself. The scheduler takes no locks around it. Callbacks that touch
shared state must synchronize on their own; Collector is a ready-made
example.

Values and Delays:

Any unsigned integer type can be sorted. A value of n waits n*Unit. A value
whose delay overflows time.Duration saturates at the maximum duration, so it
effectively never fires.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics return a scheduler that records
batch and callback metrics through pkg/metrics. It also implements
metrics.Instrumentable. Several schedulers may share one registry, including
the default one from metrics.DefaultConfig:

	s := sleepsort.NewWithConfigAndMetrics[uint32](sleepsort.Config{}, "reports", metrics.DefaultConfig())

Enabling or disabling metrics affects batches scheduled afterwards.
*/
package sleepsort
