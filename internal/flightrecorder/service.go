// Package flightrecorder keeps a rolling runtime trace in memory and writes it to disk when a request times out.
package flightrecorder

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitnesspro/internal/errors"
)

const (
	defaultMinAge   = 5 * time.Minute
	defaultMaxBytes = 64 * 1024 * 1024
	defaultCooldown = 30 * time.Minute
)

var ErrConfig = errors.NewSentinel("invalid flight recorder config")

type Service struct {
	logger          *slog.Logger
	flightRecorder  *trace.FlightRecorder
	tracesDirectory string
	cooldown        time.Duration
	now             func() time.Time
	// lastCapture is the Unix time of the last written trace.
	lastCapture atomic.Int64
}

type Config struct {
	Logger          *slog.Logger
	MinAge          time.Duration
	MaxBytes        uint64
	TracesDirectory string
	// Cooldown is the minimum time between two written traces.
	Cooldown time.Duration
}

func New(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		return nil, errors.Wrap(ErrConfig, "logger is required")
	}
	if cfg.TracesDirectory == "" {
		return nil, errors.Wrap(ErrConfig, "traces directory is required")
	}

	if stat, err := os.Stat(cfg.TracesDirectory); err != nil {
		if err = os.MkdirAll(cfg.TracesDirectory, 0o700); err != nil { //nolint:mnd // owner only
			return nil, errors.Wrap(err, "create traces directory")
		}
	} else if !stat.IsDir() {
		return nil, errors.Wrap(ErrConfig, "traces path is not a directory",
			slog.String("path", cfg.TracesDirectory))
	}

	s := &Service{
		logger: cfg.Logger,
		flightRecorder: trace.NewFlightRecorder(trace.FlightRecorderConfig{
			MinAge:   cmp.Or(cfg.MinAge, defaultMinAge),
			MaxBytes: cmp.Or(cfg.MaxBytes, defaultMaxBytes),
		}),
		tracesDirectory: cfg.TracesDirectory,
		cooldown:        cmp.Or(cfg.Cooldown, defaultCooldown),
		now:             time.Now,
		lastCapture:     atomic.Int64{},
	}
	return s, nil
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.flightRecorder.Start(); err != nil {
		return errors.Wrap(err, "start flight recorder")
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("traces_directory", s.tracesDirectory),
		slog.Duration("cooldown", s.cooldown))
	return nil
}

func (s *Service) Stop(ctx context.Context) {
	s.flightRecorder.Stop()
	s.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// CaptureTimeoutTrace writes the buffered trace to timeout-<timestamp>.trace. Captures within the cooldown of the
// previous one are skipped and reported as false.
func (s *Service) CaptureTimeoutTrace(ctx context.Context) bool {
	now := s.now().Unix()
	last := s.lastCapture.Load()
	if last > 0 && time.Duration(now-last)*time.Second < s.cooldown {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture due to cooldown",
			slog.Time("last_capture", time.Unix(last, 0)))
		return false
	}
	if !s.lastCapture.CompareAndSwap(last, now) {
		return false
	}

	fPath := filepath.Join(s.tracesDirectory,
		fmt.Sprintf("timeout-%s.trace", time.Unix(now, 0).UTC().Format("20060102-150405")))
	if err := s.writeTrace(fPath); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to capture timeout trace", errors.SlogError(err))
		return false
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, "captured timeout trace", slog.String("file", fPath))
	return true
}

func (s *Service) writeTrace(fPath string) (err error) {
	file, err := os.Create(fPath)
	if err != nil {
		return errors.Wrap(err, "create trace file", slog.String("file", fPath))
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	if _, err = s.flightRecorder.WriteTo(file); err != nil {
		return errors.Wrap(err, "write trace", slog.String("file", fPath))
	}
	return nil
}
