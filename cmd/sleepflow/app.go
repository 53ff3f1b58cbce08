package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/urfave/cli"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

const sortDescription = `Schedules one timer per value and prints each value once its timer fires.
   A value of n waits n times --unit, so the output comes out in ascending order.
   Interrupting the command or reaching --timeout cancels the values still waiting.`

var sortFlags = []cli.Flag{
	cli.DurationFlag{
		Name:   "unit, u",
		Usage:  "delay of one step of value",
		Value:  time.Second,
		EnvVar: "SLEEPFLOW_UNIT",
	},
	cli.DurationFlag{
		Name:   "timeout, t",
		Usage:  "cancel the batch after this long (default: no timeout)",
		EnvVar: "SLEEPFLOW_TIMEOUT",
	},
	cli.StringFlag{
		Name:   "log-level",
		Usage:  "log level for scheduler records on stderr (debug, info, warn, error)",
		Value:  "info",
		EnvVar: "SLEEPFLOW_LOG_LEVEL",
	},
	cli.StringFlag{
		Name:   "metrics-addr",
		Usage:  "serve Prometheus metrics on this address while sorting (default: disabled)",
		EnvVar: "SLEEPFLOW_METRICS_ADDR",
	},
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "sleepflow"
	app.HelpName = "sleepflow"
	app.Usage = "sort unsigned integers by sleeping on them"
	app.UsageText = "sleepflow <command> [arguments...]"
	app.Version = version
	app.HideVersion = true
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Commands = []cli.Command{
		{
			Name:        "sort",
			Aliases:     []string{"s"},
			Usage:       "print values in ascending order as their delays elapse",
			ArgsUsage:   "<values...>",
			Description: sortDescription,
			Flags:       sortFlags,
			Action:      sortAction,
		},
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "prints the sleepflow version",
			Action: func(c *cli.Context) error {
				_, err := fmt.Fprintf(c.App.Writer, "%s %s (%s_%s)\n", c.App.Name, c.App.Version, runtime.GOOS, runtime.GOARCH)
				return err
			},
		},
	}
	return app
}
