package main

import (
	"net/http"

	"github.com/myrjola/fitnesspro/internal/bmi"
	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/workout"
)

type homeTemplateData struct {
	BaseTemplateData
	Result      bmi.Result
	HasResult   bool
	Plan        catalogue.Plan
	HasWorkout  bool
	Workout     workout.Workout
	TimerPreset int
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		TimerPreset:      defaultTimerPreset,
	}

	data.Result, data.HasResult = app.profiles.UserData(ctx)
	if data.HasResult {
		data.Plan = catalogue.RecommendedPlan(data.Result.Value)
	}

	wo, err := app.workouts.Current(ctx)
	switch {
	case err == nil:
		data.Workout, data.HasWorkout = wo, true
	case !isNotFound(err):
		app.serverError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "home", data)
}
