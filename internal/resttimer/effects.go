package resttimer

import (
	"context"
	"time"
)

// Tone is a single audio cue.
type Tone struct {
	FrequencyHz int
	Duration    time.Duration
}

//nolint:gochecknoglobals // fixed cue table.
var (
	StartTone = Tone{FrequencyHz: 523, Duration: 100 * time.Millisecond}
	PauseTone = Tone{FrequencyHz: 392, Duration: 100 * time.Millisecond}
	ResetTone = Tone{FrequencyHz: 261, Duration: 100 * time.Millisecond}
	AlertTone = Tone{FrequencyHz: 880, Duration: 100 * time.Millisecond}

	// CompletionMelody is played one note every MelodySpacing.
	CompletionMelody = []Tone{
		{FrequencyHz: 523, Duration: 200 * time.Millisecond},
		{FrequencyHz: 659, Duration: 200 * time.Millisecond},
		{FrequencyHz: 784, Duration: 200 * time.Millisecond},
		{FrequencyHz: 1046, Duration: 400 * time.Millisecond},
	}
)

const MelodySpacing = 250 * time.Millisecond

// Notification is raised when the countdown completes.
type Notification struct {
	Title string
	Body  string
}

//nolint:gochecknoglobals // fixed message.
var CompletionNotification = Notification{
	Title: "Rest time is over!",
	Body:  "Time to get back to your workout! 💪",
}

// Sound plays audio cues. Return [errors.ErrUnsupported] when there is no audio output.
type Sound interface {
	Play(ctx context.Context, tone Tone) error
}

// WakeLock keeps the display awake while the countdown runs.
type WakeLock interface {
	Acquire(ctx context.Context) error
	Release(ctx context.Context) error
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// TitleSetter shows the remaining time in the window or page title.
type TitleSetter interface {
	SetTitle(ctx context.Context, title string) error
}

// Effects are the side effects of the state machine. Any of them may be nil, which behaves like an environment
// without that capability.
//
// Effects are called while the controller holds its lock and must not call back into the [Controller].
type Effects struct {
	Sound    Sound
	WakeLock WakeLock
	Notifier Notifier
	Title    TitleSetter
}
