package workout

import (
	"time"

	"github.com/myrjola/fitnesspro/internal/catalogue"
)

// Exercise is one prescribed exercise of a workout with its progress.
type Exercise struct {
	ExerciseID    string
	Series        int
	Reps          string
	Rest          time.Duration
	SetsCompleted int
	Completed     bool
}

// Details resolves the catalogue entry of the exercise.
func (e Exercise) Details() catalogue.Exercise {
	d, _ := catalogue.ExerciseByID(e.ExerciseID)
	return d
}

// Workout is the in-progress workout of a profile. There is at most one.
type Workout struct {
	PlanID   string
	PlanName string
	// CurrentExerciseIndex points at the first exercise that is not completed, or equals len(Exercises) when all are.
	CurrentExerciseIndex int
	StartedAt            time.Time
	Exercises            []Exercise
}

// Done reports whether every exercise is completed.
func (w Workout) Done() bool {
	return w.CurrentExerciseIndex >= len(w.Exercises)
}

// CompletedExercises counts the completed exercises.
func (w Workout) CompletedExercises() int {
	n := 0
	for _, e := range w.Exercises {
		if e.Completed {
			n++
		}
	}
	return n
}

// newWorkout prescribes the exercises of plan.
func newWorkout(plan catalogue.Plan, now time.Time) Workout {
	w := Workout{
		PlanID:               plan.ID,
		PlanName:             plan.Name,
		CurrentExerciseIndex: 0,
		StartedAt:            now,
		Exercises:            make([]Exercise, 0, len(plan.Exercises)),
	}
	for _, pe := range plan.Exercises {
		w.Exercises = append(w.Exercises, Exercise{
			ExerciseID:    pe.ExerciseID,
			Series:        pe.Series,
			Reps:          pe.Reps,
			Rest:          pe.Rest,
			SetsCompleted: 0,
			Completed:     false,
		})
	}
	return w
}

// completeSet records a finished set of the exercise at index. It reports false when the exercise was already
// completed.
func (w *Workout) completeSet(index int) (bool, error) {
	if index < 0 || index >= len(w.Exercises) {
		return false, ErrInvalidIndex
	}
	e := &w.Exercises[index]
	if e.Completed {
		return false, nil
	}
	e.SetsCompleted++
	if e.SetsCompleted >= e.Series {
		e.SetsCompleted = e.Series
		e.Completed = true
	}
	w.CurrentExerciseIndex = len(w.Exercises)
	for i, ex := range w.Exercises {
		if !ex.Completed {
			w.CurrentExerciseIndex = i
			break
		}
	}
	return true, nil
}
