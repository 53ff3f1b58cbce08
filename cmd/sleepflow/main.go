// Command sleepflow prints its arguments in ascending order by waiting for
// each one in turn.
//
//	sleepflow sort --unit 100ms 3 1 2
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sleepflow: %s\n", err)
		os.Exit(1)
	}
}
