// Command resttimer is a terminal front end for the rest timer.
//
// Commands are read line by line from standard input:
//
//	s or space  start or pause
//	p           pause
//	r           reset
//	<seconds>   set the preset
//	h           pause as if the timer was hidden
//	q           quit
package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/myrjola/fitnesspro/internal/envstruct"
	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/logging"
	"github.com/myrjola/fitnesspro/internal/metrics"
	"github.com/myrjola/fitnesspro/internal/resttimer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type config struct {
	PresetSeconds int `env:"RESTTIMER_PRESET_SECONDS" envDefault:"60"`
	// Title shows the countdown in the terminal title.
	Title bool `env:"RESTTIMER_TITLE" envDefault:"true"`
	// MetricsAddr serves the Prometheus metrics on /metrics when set, e.g. localhost:9091.
	MetricsAddr string `env:"RESTTIMER_METRICS_ADDR" envDefault:""`
}

const helpText = `commands: s or space start/pause, p pause, r reset, <seconds> set preset, h hide, q quit
`

var errQuit = errors.NewSentinel("quit")

func run(
	ctx context.Context,
	logger *slog.Logger,
	lookupEnv func(string) (string, bool),
	in io.Reader,
	out io.Writer,
	registry *prometheus.Registry,
) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	m := metrics.NewManager("fitnesspro", "resttimer", registry)

	term := &terminal{mu: sync.Mutex{}, out: out}
	effects := resttimer.Effects{
		Sound:    &bell{term: term, logger: logger},
		WakeLock: noWakeLock{},
		Notifier: &printNotifier{term: term},
		Title:    nil,
	}
	if cfg.Title {
		effects.Title = &oscTitle{term: term}
	}

	ctrl, err := resttimer.New(ctx, logger, effects, cfg.PresetSeconds)
	if err != nil {
		return errors.Wrap(err, "new rest timer")
	}
	unsubscribe := ctrl.Subscribe(func(_ context.Context, s resttimer.State) {
		if s.Status == resttimer.Completed {
			m.CounterTimerCompletions.Inc()
		}
		term.printf("%s  %-9s %3.0f%%\n", s.Display(), s.Status, s.Progress())
	})
	defer unsubscribe()

	var metricsListener net.Listener
	if cfg.MetricsAddr != "" {
		lc := net.ListenConfig{} //nolint:exhaustruct // defaults.
		if metricsListener, err = lc.Listen(ctx, "tcp", cfg.MetricsAddr); err != nil {
			ctrl.Close(ctx)
			return errors.Wrap(err, "listen metrics", slog.String("addr", cfg.MetricsAddr))
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "serving metrics", slog.String("addr", metricsListener.Addr().String()))
	}

	term.printf(helpText)
	term.printf("%s  %-9s\n", ctrl.State().Display(), ctrl.State().Status)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(ctx, in)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				if cmdErr := dispatch(ctx, ctrl, term, line); cmdErr != nil {
					return cmdErr
				}
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		ctrl.Close(context.WithoutCancel(ctx))
		return nil
	})
	if metricsListener != nil {
		g.Go(func() error {
			return serveMetrics(ctx, metricsListener, registry)
		})
	}

	if err = g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return errors.Wrap(err, "rest timer")
	}
	return nil
}

// serveMetrics serves registry on /metrics until ctx is done.
func serveMetrics(ctx context.Context, l net.Listener, registry *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})) //nolint:exhaustruct // defaults.
	srv := &http.Server{ //nolint:exhaustruct // defaults are fine.
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
	}
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve metrics")
	}
	<-stopped
	return nil
}

// readLines feeds the lines of in to the returned channel until EOF or until ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func dispatch(ctx context.Context, ctrl *resttimer.Controller, term *terminal, line string) error {
	cmd := strings.TrimSpace(line)
	if cmd == "" && strings.Contains(line, " ") {
		cmd = "s"
	}
	switch cmd {
	case "":
	case "s":
		ctrl.Toggle(ctx)
	case "p":
		ctrl.Pause(ctx)
	case "r":
		ctrl.Reset(ctx)
	case "h":
		ctrl.HideView(ctx)
	case "q":
		return errQuit
	default:
		seconds, err := strconv.Atoi(cmd)
		if err != nil {
			term.printf(helpText)
			return nil
		}
		if _, err = ctrl.SetPreset(ctx, seconds); err != nil {
			term.printf("invalid preset: %d\n", seconds)
		}
	}
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	logger := logging.New(os.Stderr, slog.LevelInfo)
	if err := run(ctx, logger, os.LookupEnv, os.Stdin, os.Stdout, prometheus.NewRegistry()); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "rest timer failed", errors.SlogError(err))
		cancel()
		os.Exit(1) //nolint:gocritic // cancel is called above.
	}
}
