package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"

	sfcontext "github.com/vnykmshr/sleepflow/pkg/common/context"
	"github.com/vnykmshr/sleepflow/pkg/metrics"
	"github.com/vnykmshr/sleepflow/pkg/scheduling/sleepsort"
)

const shutdownTimeout = 5 * time.Second

func sortAction(c *cli.Context) error {
	values, err := parseValues(c.Args())
	if err != nil {
		return err
	}

	level, err := parseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	cfg := sleepsort.Config{
		Unit:   c.Duration("unit"),
		Logger: logger,
		Name:   "cli",
	}

	addr := c.String("metrics-addr")
	s, err := sleepsort.NewWithConfigAndMetricsSafe[uint64](cfg, cfg.Name, metrics.Config{Enabled: addr != ""})
	if err != nil {
		return err
	}
	if addr != "" {
		_, stop, err := serveMetrics(addr, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := sfcontext.WithTimeoutOrCancel(ctx, c.Duration("timeout"))
	defer cancel()

	if err := s.Sort(ctx, slices.Values(values), printer(c.App.Writer)); err != nil {
		return fmt.Errorf("sort canceled: %w", err)
	}
	return nil
}

func parseValues(args cli.Args) ([]uint64, error) {
	values := make([]uint64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: must be an unsigned integer", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// printer writes one value per line. Tasks fire concurrently.
func printer(w io.Writer) sleepsort.Callback[uint64] {
	var mu sync.Mutex
	return sleepsort.CallbackFunc[uint64](func(v uint64) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, v)
	})
}

func serveMetrics(addr string, logger *slog.Logger) (net.Addr, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return ln.Addr(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-done
	}, nil
}
