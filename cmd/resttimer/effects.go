package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/resttimer"
)

// terminal serialises writes from the command loop and the controller callbacks.
type terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.out, format, args...)
}

// bell rings the terminal bell for every tone. Terminals have a single pitch, so the frequency only ends up in the
// debug log.
type bell struct {
	term   *terminal
	logger *slog.Logger
}

func (b *bell) Play(ctx context.Context, tone resttimer.Tone) error {
	b.term.printf("\a")
	b.logger.LogAttrs(ctx, slog.LevelDebug, "tone",
		slog.Int("frequency_hz", tone.FrequencyHz), slog.Duration("duration", tone.Duration))
	return nil
}

// oscTitle sets the terminal window title with the OSC 0 escape sequence.
type oscTitle struct {
	term *terminal
}

func (o *oscTitle) SetTitle(_ context.Context, title string) error {
	o.term.printf("\x1b]0;%s\x07", title)
	return nil
}

type printNotifier struct {
	term *terminal
}

func (p *printNotifier) Notify(_ context.Context, n resttimer.Notification) error {
	p.term.printf("\n*** %s ***\n%s\n", n.Title, n.Body)
	return nil
}

// noWakeLock reports that a terminal cannot keep the display awake.
type noWakeLock struct{}

func (noWakeLock) Acquire(context.Context) error {
	return errors.Wrap(errors.ErrUnsupported, "terminal wake lock")
}

func (noWakeLock) Release(context.Context) error { return nil }
