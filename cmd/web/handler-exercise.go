package main

import (
	"net/http"

	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/errors"
)

type exercisesTemplateData struct {
	BaseTemplateData
	Group     string
	Groups    []catalogue.MuscleGroup
	Exercises []catalogue.Exercise
}

func muscleGroups() []catalogue.MuscleGroup {
	return []catalogue.MuscleGroup{
		catalogue.Chest, catalogue.Back, catalogue.Legs, catalogue.Shoulders, catalogue.Arms, catalogue.Abs,
	}
}

func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	var exercises []catalogue.Exercise
	for _, e := range catalogue.Exercises() {
		if group == "" || string(e.Group) == group {
			exercises = append(exercises, e)
		}
	}
	app.render(w, r, http.StatusOK, "exercises", exercisesTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Group:            group,
		Groups:           muscleGroups(),
		Exercises:        exercises,
	})
}

type exerciseTemplateData struct {
	BaseTemplateData
	Exercise catalogue.Exercise
	Favorite bool
}

func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	exercise, err := catalogue.ExerciseByID(r.PathValue("id"))
	if err != nil {
		app.notFound(w, r)
		return
	}
	favorites, err := app.profiles.Favorites(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	data := exerciseTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Exercise:         exercise,
		Favorite:         false,
	}
	for _, f := range favorites {
		if f.ID == exercise.ID {
			data.Favorite = true
		}
	}
	app.render(w, r, http.StatusOK, "exercise", data)
}

func (app *application) favoritePOST(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := app.profiles.AddFavorite(r.Context(), id); err != nil {
		if errors.Is(err, catalogue.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	redirect(w, r, "/exercises/"+id)
}

type favoritesTemplateData struct {
	BaseTemplateData
	Exercises []catalogue.Exercise
}

func (app *application) favoritesGET(w http.ResponseWriter, r *http.Request) {
	favorites, err := app.profiles.Favorites(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.render(w, r, http.StatusOK, "favorites", favoritesTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Exercises:        favorites,
	})
}
