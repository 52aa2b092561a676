package catalogue

import (
	"log/slog"
	"slices"
	"time"

	"github.com/myrjola/fitnesspro/internal/errors"
)

const (
	PlanWeightLoss  = "weight-loss"
	PlanHypertrophy = "hypertrophy"
	PlanEndurance   = "endurance"

	// FilterAll selects every plan in [Plans].
	FilterAll = "all"
)

// PlanExercise prescribes an exercise within a plan.
type PlanExercise struct {
	ExerciseID string
	Series     int
	Reps       string
	Rest       time.Duration
}

// Exercise resolves the referenced exercise. Plans only reference catalogue exercises.
func (pe PlanExercise) Exercise() Exercise {
	e, _ := ExerciseByID(pe.ExerciseID)
	return e
}

type Plan struct {
	ID              string
	Name            string
	Description     string
	Objective       string
	Duration        string
	Frequency       string
	Difficulty      Difficulty
	Exercises       []PlanExercise
	Cardio          string
	Recommendations []string
}

//nolint:gochecknoglobals // static catalogue.
var plans = []Plan{
	{
		ID:          PlanWeightLoss,
		Name:        "Weight Loss Plan",
		Description: "Workouts focused on burning fat and boosting metabolism",
		Objective:   "Lose weight and reduce body fat",
		Duration:    "45-60 minutes",
		Frequency:   "5-6x per week",
		Difficulty:  Intermediate,
		Exercises: []PlanExercise{
			{ExerciseID: "lat-pulldown", Series: 4, Reps: "15-20", Rest: 60 * time.Second},
			{ExerciseID: "flat-bench-press", Series: 4, Reps: "15-20", Rest: 60 * time.Second},
			{ExerciseID: "t-bar-row", Series: 3, Reps: "15-20", Rest: 60 * time.Second},
			{ExerciseID: "dumbbell-fly", Series: 3, Reps: "15-20", Rest: 60 * time.Second},
			{ExerciseID: "lateral-raise", Series: 3, Reps: "15-20", Rest: 45 * time.Second},
			{ExerciseID: "crunch", Series: 3, Reps: "20-25", Rest: 45 * time.Second},
		},
		Cardio: "20-30 minutes of moderate cardio after the workout",
		Recommendations: []string{
			"Focus on high repetitions (15-20 reps)",
			"Short rest between sets (45-60s)",
			"Train in circuits when possible",
			"Prioritise compound exercises",
		},
	},
	{
		ID:          PlanHypertrophy,
		Name:        "Hypertrophy Plan",
		Description: "Workouts for building muscle mass and strength",
		Objective:   "Increase lean muscle mass",
		Duration:    "60-75 minutes",
		Frequency:   "4-5x per week",
		Difficulty:  Advanced,
		Exercises: []PlanExercise{
			{ExerciseID: "squat", Series: 4, Reps: "8-12", Rest: 120 * time.Second},
			{ExerciseID: "flat-bench-press", Series: 4, Reps: "8-12", Rest: 90 * time.Second},
			{ExerciseID: "lat-pulldown", Series: 4, Reps: "8-12", Rest: 90 * time.Second},
			{ExerciseID: "overhead-press", Series: 4, Reps: "8-12", Rest: 90 * time.Second},
			{ExerciseID: "barbell-curl", Series: 3, Reps: "10-12", Rest: 60 * time.Second},
			{ExerciseID: "skull-crusher", Series: 3, Reps: "10-12", Rest: 60 * time.Second},
		},
		Cardio: "",
		Recommendations: []string{
			"Focus on heavy loads (8-12 reps)",
			"Rest properly between sets (90-120s)",
			"Increase the load every week",
			"Perfect technique on every exercise",
		},
	},
	{
		ID:          PlanEndurance,
		Name:        "Endurance Plan",
		Description: "Workouts that improve cardiovascular capacity and muscular endurance",
		Objective:   "Improve overall conditioning",
		Duration:    "40-50 minutes",
		Frequency:   "4-5x per week",
		Difficulty:  Beginner,
		Exercises: []PlanExercise{
			{ExerciseID: "leg-press", Series: 3, Reps: "20-25", Rest: 45 * time.Second},
			{ExerciseID: "incline-bench-press", Series: 3, Reps: "20-25", Rest: 45 * time.Second},
			{ExerciseID: "lateral-raise", Series: 3, Reps: "20-25", Rest: 45 * time.Second},
			{ExerciseID: "crunch", Series: 3, Reps: "25-30", Rest: 30 * time.Second},
			{ExerciseID: "plank", Series: 3, Reps: "30-45s", Rest: 45 * time.Second},
		},
		Cardio: "15-20 minutes of interval cardio",
		Recommendations: []string{
			"High repetitions (20-25 reps)",
			"Short rest between sets (30-45s)",
			"Focus on technique and control",
			"Increase volume gradually",
		},
	},
}

// PlanByID looks up a training plan.
func PlanByID(id string) (Plan, error) {
	for _, p := range plans {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, errors.Wrap(ErrNotFound, "training plan", slog.String("plan_id", id))
}

// Plans returns the plans matching filter, which is either [FilterAll] or a plan ID. An empty filter matches all plans
// and an unknown one matches none.
func Plans(filter string) []Plan {
	if filter == "" || filter == FilterAll {
		return slices.Clone(plans)
	}
	var matched []Plan
	for _, p := range plans {
		if p.ID == filter {
			matched = append(matched, p)
		}
	}
	return matched
}

// RecommendedPlan maps a BMI value to a training plan. From obesity class I upwards the endurance plan is suggested
// again.
func RecommendedPlan(bmiValue float64) Plan {
	var id string
	switch {
	case bmiValue < 18.5: //nolint:mnd // BMI threshold
		id = PlanHypertrophy
	case bmiValue < 25: //nolint:mnd // BMI threshold
		id = PlanEndurance
	case bmiValue < 30: //nolint:mnd // BMI threshold
		id = PlanWeightLoss
	default:
		id = PlanEndurance
	}
	p, _ := PlanByID(id)
	return p
}
