package main

import (
	"net/http"
	"strconv"

	"github.com/myrjola/fitnesspro/internal/resttimer"
)

const (
	defaultTimerPreset = resttimer.DefaultPresetSeconds
	maxTimerPreset     = 60 * 60
)

type timerTemplateData struct {
	BaseTemplateData
	Presets []int
	Preset  int
	Title   string
}

// timerGET shows the rest timer with ?preset= seconds on the clock. Values outside (0, 1h] fall back to the default.
func (app *application) timerGET(w http.ResponseWriter, r *http.Request) {
	presets := resttimer.Presets()
	preset := defaultTimerPreset
	if p, err := strconv.Atoi(r.URL.Query().Get("preset")); err == nil && p > 0 && p <= maxTimerPreset {
		preset = p
	}
	app.render(w, r, http.StatusOK, "timer", timerTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Presets:          presets,
		Preset:           preset,
		Title:            resttimer.IdleTitle,
	})
}
