/*
Package scheduling groups the time-based execution primitives of sleepflow.

  - sleepsort: delayed invocation of a callback per value, ordered by value

	err := sleepsort.Sort(ctx, []uint8{2, 0, 1}, func(v uint8) {
		fmt.Println(v)
	})

All scheduling components are safe for concurrent use and integrate with
context for cancellation.
*/
package scheduling
