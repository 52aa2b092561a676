package main

import (
	"net/http"

	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/workout"
)

type workoutTemplateData struct {
	BaseTemplateData
	Workout workout.Workout
}

func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	wo, err := app.workouts.Current(r.Context())
	if err != nil {
		if isNotFound(err) {
			redirect(w, r, "/training")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "workout", workoutTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Workout:          wo,
	})
}

func (app *application) completeSetPOST(w http.ResponseWriter, r *http.Request) {
	index, ok := app.parseIndexParam(w, r)
	if !ok {
		return
	}
	if _, err := app.workouts.CompleteSet(r.Context(), index); err != nil {
		if isNotFound(err) || errors.Is(err, workout.ErrNoProfile) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	redirect(w, r, "/workout")
}

func (app *application) workoutFinishPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.workouts.Finish(r.Context()); err != nil && !isNotFound(err) &&
		!errors.Is(err, workout.ErrNoProfile) {
		app.serverError(w, r, err)
		return
	}
	redirect(w, r, "/training")
}
