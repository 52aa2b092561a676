package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/myrjola/fitnesspro/internal/catalogue"
)

type nutritionTemplateData struct {
	BaseTemplateData
	Plan        catalogue.NutritionPlan
	Plans       []catalogue.NutritionPlan
	Recommended catalogue.Objective
}

// nutritionGET shows the plan selected with ?objective=, falling back to the recommended one.
func (app *application) nutritionGET(w http.ResponseWriter, r *http.Request) {
	rec, err := app.profiles.Recommendation(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	objective := catalogue.Objective(r.URL.Query().Get("objective"))
	if objective == "" {
		objective = rec.Objective
	}
	plan, err := catalogue.NutritionPlanByID(objective)
	if err != nil {
		app.notFound(w, r)
		return
	}

	app.render(w, r, http.StatusOK, "nutrition", nutritionTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Plan:             plan,
		Plans:            catalogue.NutritionPlans(),
		Recommended:      rec.Objective,
	})
}

func (app *application) nutritionDownloadGET(w http.ResponseWriter, r *http.Request) {
	plan, err := catalogue.NutritionPlanByID(catalogue.Objective(r.PathValue("objective")))
	if err != nil {
		app.notFound(w, r)
		return
	}

	body := catalogue.ExportNutritionPlan(plan, time.Now())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+catalogue.ExportFilename(plan.ID)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write([]byte(body))

	app.metrics.CounterNutritionExports.WithLabelValues(string(plan.ID)).Inc()
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "exported nutrition plan",
		slog.String("objective", string(plan.ID)))
}
