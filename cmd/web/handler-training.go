package main

import (
	"net/http"

	"github.com/myrjola/fitnesspro/internal/catalogue"
)

type trainingTemplateData struct {
	BaseTemplateData
	Filter        string
	Filters       []catalogue.Plan
	Plans         []catalogue.Plan
	RecommendedID string
}

func (app *application) trainingGET(w http.ResponseWriter, r *http.Request) {
	rec, err := app.profiles.Recommendation(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = catalogue.FilterAll
	}
	app.render(w, r, http.StatusOK, "training", trainingTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Filter:           filter,
		Filters:          catalogue.Plans(catalogue.FilterAll),
		Plans:            catalogue.Plans(filter),
		RecommendedID:    rec.PlanID,
	})
}

type planTemplateData struct {
	BaseTemplateData
	Plan        catalogue.Plan
	Recommended bool
}

func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	plan, err := catalogue.PlanByID(r.PathValue("id"))
	if err != nil {
		app.notFound(w, r)
		return
	}
	rec, err := app.profiles.Recommendation(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "plan", planTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Plan:             plan,
		Recommended:      rec.PlanID == plan.ID,
	})
}

func (app *application) planStartPOST(w http.ResponseWriter, r *http.Request) {
	if _, err := app.workouts.Start(r.Context(), r.PathValue("id")); err != nil {
		if isNotFound(err) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	redirect(w, r, "/workout")
}
