package sleepsort

import (
	"context"
	"iter"
	"log/slog"
	"math"
	"slices"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/vnykmshr/sleepflow/pkg/common/clock"
	sfcontext "github.com/vnykmshr/sleepflow/pkg/common/context"
	sferrors "github.com/vnykmshr/sleepflow/pkg/common/errors"
	"github.com/vnykmshr/sleepflow/pkg/common/validation"
)

const moduleName = "sleepsort"

// Value is the set of element types a batch can sort.
type Value interface {
	constraints.Unsigned
}

// Callback receives each value once its delay has elapsed.
// Invoke may be called concurrently from several tasks of the same batch.
type Callback[T Value] interface {
	Invoke(v T)
}

// CallbackFunc is a function type that implements the Callback interface.
type CallbackFunc[T Value] func(v T)

// Invoke implements the Callback interface for CallbackFunc.
func (f CallbackFunc[T]) Invoke(v T) {
	f(v)
}

// Scheduler turns a sequence of values into a batch of delayed callbacks.
type Scheduler[T Value] interface {
	// Schedule starts one delayed task per value and returns immediately.
	// Every task's timer is running by the time Schedule returns.
	// Canceling ctx cancels the whole batch.
	Schedule(ctx context.Context, values iter.Seq[T], cb Callback[T]) *Batch

	// Sort schedules the values and waits for the batch to resolve.
	Sort(ctx context.Context, values iter.Seq[T], cb Callback[T]) error

	// Delay returns how long the task for v waits before invoking the callback.
	Delay(v T) time.Duration
}

// Config holds scheduler configuration.
type Config struct {
	// Unit is the delay of one step of value (default: time.Second).
	Unit time.Duration

	// Clock provides timers. If nil, clock.System is used.
	Clock clock.Clock

	// Logger receives debug records for batch lifecycle. If nil, logs are discarded.
	Logger *slog.Logger

	// Name identifies the scheduler in logs and metrics (default: "sleepsort").
	Name string

	// OnBatchStart is called once all tasks of a batch have been started.
	OnBatchStart func(size int)

	// OnTaskFire is called right before a task invokes the callback.
	// Lateness is how far past its planned fire time the task woke up.
	OnTaskFire func(delay, lateness time.Duration)

	// OnBatchComplete is called once when a batch resolves, before Wait returns.
	OnBatchComplete func(result BatchResult)
}

// BatchResult summarizes a resolved batch.
type BatchResult struct {
	Name    string
	Size    int
	Elapsed time.Duration
	Err     error
}

type scheduler[T Value] struct {
	config Config
}

// hooks are the lifecycle callbacks of a single batch.
type hooks struct {
	onBatchStart    func(size int)
	onTaskFire      func(delay, lateness time.Duration)
	onBatchComplete func(result BatchResult)
}

func (c Config) hooks() hooks {
	return hooks{
		onBatchStart:    c.OnBatchStart,
		onTaskFire:      c.OnTaskFire,
		onBatchComplete: c.OnBatchComplete,
	}
}

// New creates a scheduler with default configuration.
func New[T Value]() Scheduler[T] {
	return NewWithConfig[T](Config{})
}

// NewWithConfig creates a scheduler with custom configuration.
// It panics if the configuration is invalid; use NewWithConfigSafe to get an error instead.
func NewWithConfig[T Value](cfg Config) Scheduler[T] {
	s, err := NewWithConfigSafe[T](cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithConfigSafe creates a scheduler with validation that returns an error instead of panicking.
func NewWithConfigSafe[T Value](cfg Config) (Scheduler[T], error) {
	s, err := newScheduler[T](cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newScheduler[T Value](cfg Config) (*scheduler[T], error) {
	if cfg.Unit == 0 {
		cfg.Unit = time.Second
	}
	if err := validation.ValidatePositiveDuration(moduleName, "unit", cfg.Unit); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Name == "" {
		cfg.Name = moduleName
	}

	return &scheduler[T]{config: cfg}, nil
}

// Sort invokes fn with each value in ascending order using a scheduler with
// default configuration, where a value of n waits n seconds.
func Sort[T Value](ctx context.Context, values []T, fn func(T)) error {
	if fn == nil {
		panic("sleepsort: callback cannot be nil")
	}
	return New[T]().Sort(ctx, slices.Values(values), CallbackFunc[T](fn))
}

// Delay saturates at the maximum time.Duration instead of overflowing.
func (s *scheduler[T]) Delay(v T) time.Duration {
	n := uint64(v)
	if n > uint64(math.MaxInt64/s.config.Unit) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(n) * s.config.Unit
}

func (s *scheduler[T]) Sort(ctx context.Context, values iter.Seq[T], cb Callback[T]) error {
	return s.Schedule(ctx, values, cb).Wait()
}

func (s *scheduler[T]) Schedule(ctx context.Context, values iter.Seq[T], cb Callback[T]) *Batch {
	return s.schedule(ctx, values, cb, s.config.hooks())
}

// isNil reports nil callbacks, including a nil CallbackFunc stored in the interface.
func isNil[T Value](cb Callback[T]) bool {
	if cb == nil {
		return true
	}
	f, ok := cb.(CallbackFunc[T])
	return ok && f == nil
}

func (s *scheduler[T]) schedule(ctx context.Context, values iter.Seq[T], cb Callback[T], h hooks) *Batch {
	if isNil(cb) {
		panic("sleepsort: callback cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancelCause(ctx)
	g, taskCtx := errgroup.WithContext(ctx)
	b := newBatch(cancel)

	start := s.config.Clock.Now()
	var maxDelay time.Duration
	if values != nil {
		for v := range values {
			delay := s.Delay(v)
			maxDelay = max(maxDelay, delay)
			timer := s.config.Clock.NewTimer(delay)
			b.size++
			g.Go(func() error {
				return s.await(taskCtx, timer, v, delay, start, cb, h.onTaskFire)
			})
		}
	}

	s.config.Logger.Debug("batch scheduled",
		slog.String("scheduler", s.config.Name),
		slog.Int("size", b.size),
		slog.Duration("max_delay", maxDelay),
	)
	if h.onBatchStart != nil {
		h.onBatchStart(b.size)
	}

	go func() {
		var err error
		outcome := "completed"
		if g.Wait() != nil {
			err = sferrors.Canceled(context.Cause(ctx))
			outcome = "canceled"
			if sfcontext.IsTimedOut(ctx) {
				outcome = "timed_out"
			}
		}
		cancel(nil)

		result := BatchResult{
			Name:    s.config.Name,
			Size:    b.size,
			Elapsed: s.config.Clock.Now().Sub(start),
			Err:     err,
		}
		s.config.Logger.Debug("batch resolved",
			slog.String("scheduler", result.Name),
			slog.Int("size", result.Size),
			slog.Duration("elapsed", result.Elapsed),
			slog.String("outcome", outcome),
		)
		if h.onBatchComplete != nil {
			h.onBatchComplete(result)
		}
		b.finish(err)
	}()

	return b
}

// await is the single suspension point of a task.
func (s *scheduler[T]) await(ctx context.Context, timer clock.Timer, v T, delay time.Duration, start time.Time, cb Callback[T], onFire func(delay, lateness time.Duration)) error {
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-timer.C():
	}

	// select picks at random when the timer and the cancel signal are both ready
	if ctx.Err() != nil {
		return context.Cause(ctx)
	}

	if onFire != nil {
		onFire(delay, s.config.Clock.Now().Sub(start.Add(delay)))
	}
	cb.Invoke(v)
	return nil
}
