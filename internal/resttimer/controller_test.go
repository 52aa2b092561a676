package resttimer_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitnesspro/internal/resttimer"
	"github.com/myrjola/fitnesspro/internal/testhelpers"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder captures every side effect the controller produces.
type recorder struct {
	mu            sync.Mutex
	tones         []resttimer.Tone
	titles        []string
	notifications []resttimer.Notification
	acquired      int
	released      int
	soundErr      error
	acquireErr    error
}

func (r *recorder) Play(_ context.Context, tone resttimer.Tone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.soundErr != nil {
		return r.soundErr
	}
	r.tones = append(r.tones, tone)
	return nil
}

func (r *recorder) Acquire(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.acquireErr != nil {
		return r.acquireErr
	}
	r.acquired++
	return nil
}

func (r *recorder) Release(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released++
	return nil
}

func (r *recorder) Notify(_ context.Context, n resttimer.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *recorder) SetTitle(_ context.Context, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
	return nil
}

func (r *recorder) Tones() []resttimer.Tone {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tones)
}

func (r *recorder) LastTitle() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.titles) == 0 {
		return ""
	}
	return r.titles[len(r.titles)-1]
}

func (r *recorder) WakeLockHeld() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquired > r.released
}

func newController(t *testing.T, preset int) (*resttimer.Controller, *recorder) {
	t.Helper()
	rec := &recorder{} //nolint:exhaustruct // zero value records everything.
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	effects := resttimer.Effects{Sound: rec, WakeLock: rec, Notifier: rec, Title: rec}
	c, err := resttimer.New(t.Context(), logger, effects, preset)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { c.Close(context.Background()) })
	return c, rec
}

// sleep advances the fake clock and lets every timer callback due by then finish.
func sleep(d time.Duration) {
	time.Sleep(d)
	synctest.Wait()
}

func wantState(t *testing.T, c *resttimer.Controller, want resttimer.State) {
	t.Helper()
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestController_CountdownCompletesAndAutoResets(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 60)
		ctx := t.Context()

		c.Start(ctx)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 60, Status: resttimer.Running})
		if !rec.WakeLockHeld() {
			t.Error("wake lock not held while running")
		}

		sleep(55*time.Second + 500*time.Millisecond)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 5, Status: resttimer.Running})
		if got, want := rec.LastTitle(), "00:05 - Fitness Pro Timer"; got != want {
			t.Errorf("title = %q, want %q", got, want)
		}

		sleep(5 * time.Second)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 0, Status: resttimer.Completed})
		if rec.WakeLockHeld() {
			t.Error("wake lock still held after completion")
		}

		sleep(time.Second)
		if diff := cmp.Diff([]resttimer.Notification{resttimer.CompletionNotification}, rec.notifications); diff != "" {
			t.Errorf("notifications mismatch (-want +got):\n%s", diff)
		}

		sleep(2 * time.Second)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 60, Status: resttimer.Idle})
		if got := rec.LastTitle(); got != resttimer.IdleTitle {
			t.Errorf("title = %q, want %q", got, resttimer.IdleTitle)
		}

		want := slices.Concat(
			[]resttimer.Tone{resttimer.StartTone, resttimer.AlertTone, resttimer.AlertTone},
			resttimer.CompletionMelody,
			[]resttimer.Tone{resttimer.ResetTone},
		)
		if diff := cmp.Diff(want, rec.Tones()); diff != "" {
			t.Errorf("tones mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestController_PauseResume(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 60)
		ctx := t.Context()

		c.Start(ctx)
		sleep(30*time.Second + 500*time.Millisecond)
		c.Pause(ctx)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 30, Status: resttimer.Paused})
		if rec.WakeLockHeld() {
			t.Error("wake lock held while paused")
		}

		sleep(100 * time.Second)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 30, Status: resttimer.Paused})

		c.Start(ctx)
		sleep(10*time.Second + 500*time.Millisecond)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 20, Status: resttimer.Running})
	})
}

func TestController_ResetFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(ctx context.Context, c *resttimer.Controller)
	}{
		{
			name:  "idle",
			setup: func(_ context.Context, _ *resttimer.Controller) {},
		},
		{
			name: "running",
			setup: func(ctx context.Context, c *resttimer.Controller) {
				c.Start(ctx)
				sleep(12*time.Second + 500*time.Millisecond)
			},
		},
		{
			name: "paused",
			setup: func(ctx context.Context, c *resttimer.Controller) {
				c.Start(ctx)
				sleep(12*time.Second + 500*time.Millisecond)
				c.Pause(ctx)
			},
		},
		{
			name: "completed",
			setup: func(ctx context.Context, c *resttimer.Controller) {
				c.Start(ctx)
				sleep(62 * time.Second)
			},
		},
		{
			name: "completion melody playing",
			setup: func(ctx context.Context, c *resttimer.Controller) {
				c.Start(ctx)
				sleep(60*time.Second + 100*time.Millisecond)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				c, rec := newController(t, 60)
				ctx := t.Context()
				tt.setup(ctx, c)

				c.Reset(ctx)
				want := resttimer.State{TotalSeconds: 60, RemainingSeconds: 60, Status: resttimer.Idle}
				wantState(t, c, want)
				if rec.WakeLockHeld() {
					t.Error("wake lock held after reset")
				}

				// No stale tick or auto-reset may fire afterwards.
				tones := len(rec.Tones())
				sleep(10 * time.Second)
				wantState(t, c, want)
				if got := len(rec.Tones()); got != tones {
					t.Errorf("%d tones played after reset", got-tones)
				}
			})
		})
	}
}

func TestController_SetPresetStopsMelody(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 2)
		ctx := t.Context()
		c.Start(ctx)
		sleep(2*time.Second + 10*time.Millisecond)

		if _, err := c.SetPreset(ctx, 30); err != nil {
			t.Fatalf("SetPreset: %v", err)
		}
		tones := len(rec.Tones())
		sleep(5 * time.Second)
		if got := len(rec.Tones()); got != tones {
			t.Errorf("%d melody tones played after SetPreset", got-tones)
		}
		wantState(t, c, resttimer.State{TotalSeconds: 30, RemainingSeconds: 30, Status: resttimer.Idle})
	})
}

func TestController_Idempotence(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 60)
		ctx := t.Context()

		c.Start(ctx)
		sleep(3*time.Second + 500*time.Millisecond)
		first := c.Pause(ctx)
		tones := len(rec.Tones())
		if second := c.Pause(ctx); second != first {
			t.Errorf("second pause changed state from %+v to %+v", first, second)
		}
		if got := len(rec.Tones()); got != tones {
			t.Error("second pause played a tone")
		}

		first = c.Reset(ctx)
		if second := c.Reset(ctx); second != first {
			t.Errorf("second reset changed state from %+v to %+v", first, second)
		}
		tonesAfter := rec.Tones()
		if diff := cmp.Diff([]resttimer.Tone{resttimer.ResetTone, resttimer.ResetTone}, tonesAfter[tones:]); diff != "" {
			t.Errorf("reset tones mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestController_Toggle(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newController(t, 45)
		ctx := t.Context()

		if got := c.Toggle(ctx).Status; got != resttimer.Running {
			t.Errorf("Toggle() from idle = %s, want running", got)
		}
		sleep(5*time.Second + 500*time.Millisecond)
		if got := c.Toggle(ctx).Status; got != resttimer.Paused {
			t.Errorf("Toggle() from running = %s, want paused", got)
		}
		if got := c.Toggle(ctx).Status; got != resttimer.Running {
			t.Errorf("Toggle() from paused = %s, want running", got)
		}
		wantState(t, c, resttimer.State{TotalSeconds: 45, RemainingSeconds: 40, Status: resttimer.Running})
	})
}

func TestController_HideViewPausesRunningCountdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 60)
		ctx := t.Context()

		if got := c.HideView(ctx).Status; got != resttimer.Idle {
			t.Errorf("HideView() while idle = %s, want idle", got)
		}
		c.Start(ctx)
		sleep(2*time.Second + 500*time.Millisecond)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 58, Status: resttimer.Running})
		c.HideView(ctx)
		wantState(t, c, resttimer.State{TotalSeconds: 60, RemainingSeconds: 58, Status: resttimer.Paused})
		if rec.WakeLockHeld() {
			t.Error("wake lock held while the view is hidden")
		}
	})
}

func TestController_SetPreset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 60)
		ctx := t.Context()

		c.Start(ctx)
		sleep(5*time.Second + 500*time.Millisecond)
		state, err := c.SetPreset(ctx, 90)
		if err != nil {
			t.Fatalf("SetPreset() error = %v", err)
		}
		want := resttimer.State{TotalSeconds: 90, RemainingSeconds: 90, Status: resttimer.Idle}
		if diff := cmp.Diff(want, state); diff != "" {
			t.Errorf("SetPreset() mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]resttimer.Tone{resttimer.StartTone, resttimer.PauseTone}, rec.Tones()); diff != "" {
			t.Errorf("tones mismatch (-want +got):\n%s", diff)
		}

		if _, err = c.SetPreset(ctx, 0); !errors.Is(err, resttimer.ErrInvalidPreset) {
			t.Errorf("SetPreset(0) error = %v, want ErrInvalidPreset", err)
		}
		wantState(t, c, want)

		sleep(10 * time.Second)
		wantState(t, c, want)
	})
}

func TestController_StartAfterCompletionCancelsAutoReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newController(t, 10)
		ctx := t.Context()

		c.Start(ctx)
		sleep(11 * time.Second)
		wantState(t, c, resttimer.State{TotalSeconds: 10, RemainingSeconds: 0, Status: resttimer.Completed})

		c.Start(ctx)
		wantState(t, c, resttimer.State{TotalSeconds: 10, RemainingSeconds: 10, Status: resttimer.Running})

		// The auto-reset scheduled at completion would have fired by now.
		sleep(3*time.Second + 500*time.Millisecond)
		wantState(t, c, resttimer.State{TotalSeconds: 10, RemainingSeconds: 7, Status: resttimer.Running})
	})
}

func TestController_EffectFailuresDoNotStopTheCountdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 5)
		rec.soundErr = errors.New("no audio device")
		rec.acquireErr = errors.ErrUnsupported
		ctx := t.Context()

		c.Start(ctx)
		sleep(5*time.Second + 500*time.Millisecond)
		wantState(t, c, resttimer.State{TotalSeconds: 5, RemainingSeconds: 0, Status: resttimer.Completed})
		if rec.released != 0 {
			t.Errorf("released a wake lock that was never acquired %d times", rec.released)
		}
		sleep(3 * time.Second)
		wantState(t, c, resttimer.State{TotalSeconds: 5, RemainingSeconds: 5, Status: resttimer.Idle})
	})
}

func TestController_NoEffects(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
		c, err := resttimer.New(t.Context(), logger, resttimer.Effects{}, 2) //nolint:exhaustruct // no capabilities.
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer c.Close(t.Context())

		c.Start(t.Context())
		sleep(2*time.Second + 500*time.Millisecond)
		wantState(t, c, resttimer.State{TotalSeconds: 2, RemainingSeconds: 0, Status: resttimer.Completed})
	})
}

func TestController_Subscribe(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, _ := newController(t, 60)
		ctx := t.Context()

		var got []resttimer.State
		unsubscribe := c.Subscribe(func(_ context.Context, s resttimer.State) {
			got = append(got, s)
		})

		c.Start(ctx)
		sleep(2*time.Second + 500*time.Millisecond)
		c.Pause(ctx)
		unsubscribe()
		c.Reset(ctx)

		want := []resttimer.State{
			{TotalSeconds: 60, RemainingSeconds: 60, Status: resttimer.Running},
			{TotalSeconds: 60, RemainingSeconds: 59, Status: resttimer.Running},
			{TotalSeconds: 60, RemainingSeconds: 58, Status: resttimer.Running},
			{TotalSeconds: 60, RemainingSeconds: 58, Status: resttimer.Paused},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("published states mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestController_Close(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, rec := newController(t, 60)
		ctx := t.Context()

		c.Start(ctx)
		sleep(1*time.Second + 500*time.Millisecond)
		c.Close(ctx)
		if rec.WakeLockHeld() {
			t.Error("wake lock held after Close")
		}
		tones := len(rec.Tones())

		sleep(time.Minute)
		c.Start(ctx)
		if got := c.State().RemainingSeconds; got != 59 {
			t.Errorf("remaining = %d after Close, want 59", got)
		}
		if got := len(rec.Tones()); got != tones {
			t.Errorf("%d tones played after Close", got-tones)
		}
	})
}

func TestNew_InvalidPreset(t *testing.T) {
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	if _, err := resttimer.New(t.Context(), logger, resttimer.Effects{}, 0); !errors.Is(err, resttimer.ErrInvalidPreset) { //nolint:exhaustruct // no capabilities.
		t.Errorf("New(0) error = %v, want ErrInvalidPreset", err)
	}
}
