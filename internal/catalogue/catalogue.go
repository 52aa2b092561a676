// Package catalogue holds the static exercise, training plan and nutrition plan data and the lookups over it.
package catalogue

import (
	"log/slog"
	"slices"

	"github.com/myrjola/fitnesspro/internal/errors"
)

var ErrNotFound = errors.NewSentinel("not found")

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

func (d Difficulty) Label() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	default:
		return string(d)
	}
}

type Equipment string

const (
	Barbell    Equipment = "barbell"
	Dumbbells  Equipment = "dumbbells"
	Machine    Equipment = "machine"
	Bodyweight Equipment = "bodyweight"
)

func (e Equipment) Label() string {
	switch e {
	case Barbell:
		return "Barbell"
	case Dumbbells:
		return "Dumbbells"
	case Machine:
		return "Machine"
	case Bodyweight:
		return "Bodyweight"
	default:
		return string(e)
	}
}

type MuscleGroup string

const (
	Chest     MuscleGroup = "chest"
	Back      MuscleGroup = "back"
	Legs      MuscleGroup = "legs"
	Shoulders MuscleGroup = "shoulders"
	Arms      MuscleGroup = "arms"
	Abs       MuscleGroup = "abs"
)

func (g MuscleGroup) Label() string {
	switch g {
	case Chest:
		return "Chest"
	case Back:
		return "Back"
	case Legs:
		return "Legs"
	case Shoulders:
		return "Shoulders"
	case Arms:
		return "Arms"
	case Abs:
		return "Abs"
	default:
		return string(g)
	}
}

// Exercise describes a single movement. Execution and Tips are Markdown.
type Exercise struct {
	ID               string
	Name             string
	Group            MuscleGroup
	Muscle           string
	SecondaryMuscles []string
	Difficulty       Difficulty
	Equipment        Equipment
	Description      string
	Execution        string
	Tips             string
	Series           string
	Rest             string
}

// ExerciseByID looks up an exercise by its identifier.
func ExerciseByID(id string) (Exercise, error) {
	for _, e := range exercises {
		if e.ID == id {
			return e, nil
		}
	}
	return Exercise{}, errors.Wrap(ErrNotFound, "exercise", slog.String("exercise_id", id))
}

// Exercises returns every exercise in catalogue order.
func Exercises() []Exercise {
	return slices.Clone(exercises)
}
