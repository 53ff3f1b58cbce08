// Package integration contains integration tests that verify cross-package functionality.
// These tests ensure that different components work together correctly in realistic scenarios.
package integration

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	prom "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/sleepflow/internal/testutil"
	sfcontext "github.com/vnykmshr/sleepflow/pkg/common/context"
	sferrors "github.com/vnykmshr/sleepflow/pkg/common/errors"
	"github.com/vnykmshr/sleepflow/pkg/metrics"
	"github.com/vnykmshr/sleepflow/pkg/scheduling/sleepsort"
)

// TestSortWithMetrics runs a shuffled batch on a real clock through the
// metrics scheduler and checks both the output order and the recorded metrics.
func TestSortWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := sleepsort.NewWithConfigAndMetrics[uint16](
		sleepsort.Config{Unit: 10 * time.Millisecond},
		"integration",
		metrics.Config{Enabled: true, Registry: reg, Labels: prometheus.Labels{"suite": "integration"}},
	)

	values := []uint16{9, 3, 0, 7, 3, 1, 5}
	rand.New(rand.NewSource(7)).Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	var got sleepsort.Collector[uint16]
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()
	testutil.AssertNoError(t, s.Sort(ctx, slices.Values(values), &got))

	want := slices.Clone(values)
	slices.Sort(want)
	if diff := cmp.Diff(want, got.Values()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	count, err := prom.GatherAndCount(reg,
		"sleepflow_sleepsort_callbacks_invoked_total",
		"sleepflow_sleepsort_batches_completed_total",
	)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, count, 2)

	ms := s.(metrics.Instrumentable)
	testutil.AssertEqual(t, ms.MetricsEnabled(), true)
}

// TestConcurrentBatchesShareScheduler starts several batches on one scheduler
// and cancels one of them; the others must be unaffected.
func TestConcurrentBatchesShareScheduler(t *testing.T) {
	var completed, canceled int32
	s := sleepsort.NewWithConfig[uint8](sleepsort.Config{
		Unit: 5 * time.Millisecond,
		OnBatchComplete: func(r sleepsort.BatchResult) {
			if r.Err != nil {
				atomic.AddInt32(&canceled, 1)
				return
			}
			atomic.AddInt32(&completed, 1)
		},
	})

	const batches = 4
	collectors := make([]*sleepsort.Collector[uint8], batches)
	running := make([]*sleepsort.Batch, batches)
	for i := range running {
		collectors[i] = &sleepsort.Collector[uint8]{}
		running[i] = s.Schedule(context.Background(), slices.Values([]uint8{4, 2, 0, 6}), collectors[i])
	}

	doomed := s.Schedule(context.Background(), slices.Values([]uint8{200}), &sleepsort.Collector[uint8]{})
	doomed.Cancel()

	for i, b := range running {
		testutil.AssertNoError(t, b.Wait())
		if diff := cmp.Diff([]uint8{0, 2, 4, 6}, collectors[i].Values()); diff != "" {
			t.Errorf("batch %d order mismatch (-want +got):\n%s", i, diff)
		}
	}
	if err := doomed.Wait(); !errors.Is(err, sferrors.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}

	testutil.WaitForInt32(t, &completed, batches, testutil.TestTimeout)
	testutil.WaitForInt32(t, &canceled, 1, testutil.TestTimeout)
}

// TestTimeoutCancelsRemainingTasks checks that a context deadline cancels the
// tasks still waiting while keeping the callbacks that already fired.
func TestTimeoutCancelsRemainingTasks(t *testing.T) {
	s := sleepsort.NewWithConfig[uint32](sleepsort.Config{Unit: 20 * time.Millisecond})

	ctx, cancel := sfcontext.WithTimeoutOrCancel(context.Background(), 50*time.Millisecond)
	defer cancel()

	var got sleepsort.Collector[uint32]
	err := s.Sort(ctx, slices.Values([]uint32{1000, 0, 1, 500}), &got)

	testutil.AssertError(t, err)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if !sfcontext.IsTimedOut(ctx) {
		t.Error("expected context to report a timeout")
	}
	if diff := cmp.Diff([]uint32{0, 1}, got.Values()); diff != "" {
		t.Errorf("fired values mismatch (-want +got):\n%s", diff)
	}
}
