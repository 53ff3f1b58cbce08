/*
Package sleepflow schedules delayed callbacks whose firing order follows the
magnitude of their values.

Scheduling (pkg/scheduling):
  - sleepsort: One timer per value; callbacks fire in ascending order

Metrics (pkg/metrics):
  - Prometheus collectors for batches and callbacks

Example usage:

	import (
		"github.com/vnykmshr/sleepflow/pkg/scheduling/sleepsort"
	)

	s := sleepsort.NewWithConfig[uint](sleepsort.Config{Unit: 10 * time.Millisecond})
	var got sleepsort.Collector[uint]
	if err := s.Sort(ctx, slices.Values([]uint{3, 1, 2}), &got); err != nil {
		return err
	}
	fmt.Println(got.Values()) // [1 2 3]

The sleepflow command (cmd/sleepflow) exposes the same scheduler on the
command line.
*/
package sleepflow
