package resttimer

import "fmt"

type Status int

const (
	Idle Status = iota
	Running
	Paused
	Completed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is a snapshot of the controller. RemainingSeconds never exceeds TotalSeconds.
type State struct {
	TotalSeconds     int
	RemainingSeconds int
	Status           Status
}

// Format renders seconds as zero padded MM:SS.
func Format(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60) //nolint:mnd // seconds per minute
}

// Display is the MM:SS rendering of the remaining time.
func (s State) Display() string {
	return Format(s.RemainingSeconds)
}

// Progress is the remaining share of the preset in percent.
func (s State) Progress() float64 {
	if s.TotalSeconds <= 0 {
		return 0
	}
	return float64(s.RemainingSeconds) / float64(s.TotalSeconds) * 100 //nolint:mnd // percent
}

type Level string

const (
	LevelDanger  Level = "danger"
	LevelWarning Level = "warning"
	LevelOK      Level = "ok"
)

// ProgressLevel colours the progress bar: at most 20% left is danger, at most 50% a warning.
func (s State) ProgressLevel() Level {
	switch p := s.Progress(); {
	case p <= 20: //nolint:mnd // percent
		return LevelDanger
	case p <= 50: //nolint:mnd // percent
		return LevelWarning
	default:
		return LevelOK
	}
}

// Urgent reports whether the final ten seconds have been reached.
func (s State) Urgent() bool {
	return s.RemainingSeconds <= 10 //nolint:mnd // seconds
}
