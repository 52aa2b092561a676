package main

import (
	"net/http"

	"github.com/myrjola/fitnesspro/internal/bmi"
	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/profile"
)

// bmiForm holds the raw form values so that a rejected submission can be shown again as typed.
type bmiForm struct {
	Weight string
	Height string
	Age    string
	Gender string
	Errors map[string]string
}

type bmiTemplateData struct {
	BaseTemplateData
	Form          bmiForm
	Result        bmi.Result
	HasResult     bool
	DailyCalories int
	Categories    []bmi.Category
}

func (app *application) newBMITemplateData(r *http.Request) bmiTemplateData {
	data := bmiTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Categories:       bmi.Categories(),
	}
	data.Result, data.HasResult = app.profiles.UserData(r.Context())
	if data.HasResult {
		in := data.Result.Input
		data.DailyCalories = bmi.DailyCalories(in)
		data.Form = bmiForm{
			Weight: formatFloat(in.WeightKg),
			Height: formatFloat(in.HeightCm),
			Age:    formatFloat(float64(in.AgeYears)),
			Gender: string(in.Gender),
			Errors: nil,
		}
	}
	return data
}

func (app *application) bmiGET(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "bmi", app.newBMITemplateData(r))
}

func (app *application) bmiPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse bmi form"))
		return
	}

	_, err := app.profiles.SubmitForm(r.Context(), r.PostForm.Get)

	var verr *bmi.ValidationError
	switch {
	case err == nil:
		redirect(w, r, "/bmi")
	case errors.As(err, &verr):
		data := app.newBMITemplateData(r)
		data.Form = bmiForm{
			Weight: r.PostForm.Get(bmi.FieldWeight),
			Height: r.PostForm.Get(bmi.FieldHeight),
			Age:    r.PostForm.Get(bmi.FieldAge),
			Gender: r.PostForm.Get(bmi.FieldGender),
			Errors: verr.Fields,
		}
		app.render(w, r, http.StatusUnprocessableEntity, "bmi", data)
	default:
		app.serverError(w, r, err)
	}
}

func (app *application) bmiClearPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.profiles.ClearUserData(r.Context()); err != nil && !errors.Is(err, profile.ErrNoProfile) {
		app.serverError(w, r, err)
		return
	}
	redirect(w, r, "/bmi")
}
