// Package resttimer is the countdown state machine behind the rest timer.
//
// A Controller owns one countdown. Commands (Start, Pause, Reset, SetPreset, Toggle, HideView) and the one second
// ticks are serialised through a single mutex, and every change is published to subscribers as a [State] snapshot.
package resttimer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/events"
)

const (
	DefaultPresetSeconds = 60
	TickInterval         = time.Second
	AutoResetDelay       = 3 * time.Second

	IdleTitle          = "Fitness Pro - Rest Timer"
	runningTitleSuffix = " - Fitness Pro Timer"
)

var ErrInvalidPreset = errors.NewSentinel("preset must be a positive number of seconds")

// Presets returns the countdown lengths offered as shortcuts, in seconds.
func Presets() []int {
	return []int{30, 60, 90, 120, 180} //nolint:mnd // preset buttons
}

// alertAt lists the remaining seconds that trigger an alert tone.
//
//nolint:gochecknoglobals // fixed cue points.
var alertAt = map[int]bool{10: true, 5: true}

// RunningTitle is the title shown while the countdown runs.
func RunningTitle(remaining int) string {
	return Format(remaining) + runningTitleSuffix
}

type Controller struct {
	logger  *slog.Logger
	effects Effects
	// ctx is used by timer callbacks that have no caller context.
	ctx context.Context //nolint:containedctx // timer callbacks need a context for logging and effects.

	mu        sync.Mutex
	state     State
	ticker    *time.Timer
	tickGen   uint64
	autoReset *time.Timer
	melody    []*time.Timer
	wakeHeld  bool
	closed    bool
	observers events.Bus[State]
}

// New creates an idle controller with presetSeconds on the clock.
func New(ctx context.Context, logger *slog.Logger, effects Effects, presetSeconds int) (*Controller, error) {
	if presetSeconds <= 0 {
		return nil, errors.Wrap(ErrInvalidPreset, "new rest timer", slog.Int("preset_seconds", presetSeconds))
	}
	return &Controller{
		logger:  logger,
		effects: effects,
		ctx:     context.WithoutCancel(ctx),
		mu:      sync.Mutex{},
		state: State{
			TotalSeconds:     presetSeconds,
			RemainingSeconds: presetSeconds,
			Status:           Idle,
		},
		ticker:    nil,
		tickGen:   0,
		autoReset: nil,
		melody:    nil,
		wakeHeld:  false,
		closed:    false,
		observers: events.Bus[State]{},
	}, nil
}

// Subscribe registers h for every state change. Handlers run while the controller is locked and must not call its
// methods.
func (c *Controller) Subscribe(h events.Handler[State]) (unsubscribe func()) {
	return c.observers.Subscribe(h)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins or resumes the countdown. Starting a completed countdown resets it first.
func (c *Controller) Start(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.state
	}
	c.start(ctx)
	return c.state
}

// Pause stops the countdown and keeps the remaining time. It does nothing unless the countdown runs.
func (c *Controller) Pause(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.state
	}
	c.pause(ctx)
	return c.state
}

// Reset returns to an idle countdown with the full preset on the clock. The reset tone plays every time.
func (c *Controller) Reset(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.state
	}
	c.reset(ctx)
	return c.state
}

// Toggle pauses a running countdown and starts anything else.
func (c *Controller) Toggle(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.state
	}
	if c.state.Status == Running {
		c.pause(ctx)
	} else {
		c.start(ctx)
	}
	return c.state
}

// HideView pauses a running countdown when its view is no longer visible.
func (c *Controller) HideView(ctx context.Context) State {
	return c.Pause(ctx)
}

// SetPreset pauses a running countdown and puts seconds on the clock.
func (c *Controller) SetPreset(ctx context.Context, seconds int) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seconds <= 0 {
		return c.state, errors.Wrap(ErrInvalidPreset, "set preset", slog.Int("preset_seconds", seconds))
	}
	if c.closed {
		return c.state, nil
	}
	c.pause(ctx)
	c.stopAutoReset()
	c.stopMelody()
	c.state = State{TotalSeconds: seconds, RemainingSeconds: seconds, Status: Idle}
	c.publish(ctx)
	return c.state, nil
}

// Close cancels every pending callback and releases the wake lock. Later commands are ignored.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTicker()
	c.stopAutoReset()
	c.stopMelody()
	c.releaseWakeLock(ctx)
}

func (c *Controller) start(ctx context.Context) {
	switch c.state.Status {
	case Running:
		return
	case Completed:
		c.reset(ctx)
	case Idle, Paused:
	}
	if c.state.RemainingSeconds <= 0 {
		c.reset(ctx)
	}

	c.stopMelody()
	c.state.Status = Running
	c.acquireWakeLock(ctx)
	c.startTicker()
	c.play(ctx, StartTone)
	c.setTitle(ctx, RunningTitle(c.state.RemainingSeconds))
	c.logger.LogAttrs(ctx, slog.LevelDebug, "rest timer started", slog.Int("remaining_seconds", c.state.RemainingSeconds))
	c.publish(ctx)
}

func (c *Controller) pause(ctx context.Context) {
	if c.state.Status != Running {
		return
	}
	c.stopTicker()
	c.state.Status = Paused
	c.play(ctx, PauseTone)
	c.releaseWakeLock(ctx)
	c.setTitle(ctx, IdleTitle)
	c.publish(ctx)
}

func (c *Controller) reset(ctx context.Context) {
	c.stopTicker()
	c.stopAutoReset()
	c.stopMelody()
	c.state.RemainingSeconds = c.state.TotalSeconds
	c.state.Status = Idle
	c.play(ctx, ResetTone)
	c.releaseWakeLock(ctx)
	c.setTitle(ctx, IdleTitle)
	c.publish(ctx)
}

func (c *Controller) startTicker() {
	c.tickGen++
	gen := c.tickGen
	c.ticker = time.AfterFunc(TickInterval, func() { c.tick(gen) })
}

func (c *Controller) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// tick is the timer callback. A tick from a stopped ticker carries a stale generation and does nothing.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker == nil || c.tickGen != gen || c.state.Status != Running {
		return
	}
	ctx := c.ctx

	c.state.RemainingSeconds--
	if alertAt[c.state.RemainingSeconds] {
		c.play(ctx, AlertTone)
	}
	if c.state.RemainingSeconds <= 0 {
		c.complete(ctx)
		return
	}
	c.setTitle(ctx, RunningTitle(c.state.RemainingSeconds))
	c.publish(ctx)
	c.ticker.Reset(TickInterval)
}

func (c *Controller) complete(ctx context.Context) {
	c.stopTicker()
	c.state.RemainingSeconds = 0
	c.state.Status = Completed
	c.releaseWakeLock(ctx)
	c.setTitle(ctx, IdleTitle)
	c.playMelody()
	c.notify(ctx)
	c.logger.LogAttrs(ctx, slog.LevelInfo, "rest timer completed", slog.Int("total_seconds", c.state.TotalSeconds))

	var t *time.Timer
	t = time.AfterFunc(AutoResetDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.autoReset != t || c.state.Status != Completed {
			return
		}
		c.autoReset = nil
		c.reset(c.ctx)
	})
	c.autoReset = t
	c.publish(ctx)
}

func (c *Controller) stopAutoReset() {
	if c.autoReset != nil {
		c.autoReset.Stop()
		c.autoReset = nil
	}
}

func (c *Controller) playMelody() {
	c.stopMelody()
	for i, tone := range CompletionMelody {
		c.melody = append(c.melody, time.AfterFunc(time.Duration(i)*MelodySpacing, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.closed {
				return
			}
			c.play(c.ctx, tone)
		}))
	}
}

func (c *Controller) stopMelody() {
	for _, t := range c.melody {
		t.Stop()
	}
	c.melody = nil
}

func (c *Controller) publish(ctx context.Context) {
	c.observers.Publish(ctx, c.state)
}

// Effect failures never stop the countdown.

func (c *Controller) effectFailed(ctx context.Context, effect string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, errors.ErrUnsupported) {
		level = slog.LevelDebug
	}
	c.logger.LogAttrs(ctx, level, fmt.Sprintf("rest timer %s unavailable", effect), errors.SlogError(err))
}

func (c *Controller) play(ctx context.Context, tone Tone) {
	if c.effects.Sound == nil {
		return
	}
	if err := c.effects.Sound.Play(ctx, tone); err != nil {
		c.effectFailed(ctx, "sound", errors.Wrap(err, "play tone", slog.Int("frequency_hz", tone.FrequencyHz)))
	}
}

func (c *Controller) acquireWakeLock(ctx context.Context) {
	if c.effects.WakeLock == nil || c.wakeHeld {
		return
	}
	if err := c.effects.WakeLock.Acquire(ctx); err != nil {
		c.effectFailed(ctx, "wake lock", errors.Wrap(err, "acquire wake lock"))
		return
	}
	c.wakeHeld = true
}

func (c *Controller) releaseWakeLock(ctx context.Context) {
	if !c.wakeHeld {
		return
	}
	c.wakeHeld = false
	if err := c.effects.WakeLock.Release(ctx); err != nil {
		c.effectFailed(ctx, "wake lock", errors.Wrap(err, "release wake lock"))
	}
}

func (c *Controller) notify(ctx context.Context) {
	if c.effects.Notifier == nil {
		return
	}
	if err := c.effects.Notifier.Notify(ctx, CompletionNotification); err != nil {
		c.effectFailed(ctx, "notification", errors.Wrap(err, "notify"))
	}
}

func (c *Controller) setTitle(ctx context.Context, title string) {
	if c.effects.Title == nil {
		return
	}
	if err := c.effects.Title.SetTitle(ctx, title); err != nil {
		c.effectFailed(ctx, "title", errors.Wrap(err, "set title"))
	}
}
