package main

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/fitnesspro/internal/catalogue"
	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/profile"
	"github.com/myrjola/fitnesspro/internal/workout"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error", errors.SlogError(err))
	app.render(w, r, http.StatusInternalServerError, "error", newBaseTemplateData(r))
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "not-found", newBaseTemplateData(r))
}

// redirect detects if the request is originating from a fetch API call or a top-level navigation and points the user
// to the correct URL.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	if r.Header.Get("Sec-Fetch-Dest") == "empty" {
		w.Header().Set("Content-Location", path)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, path, http.StatusSeeOther)
}

// parseIndexParam parses the "index" path parameter. On failure it renders the not-found page and reports false.
func (app *application) parseIndexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		app.notFound(w, r)
		return 0, false
	}
	return index, true
}

// isNotFound matches the not-found errors of the catalogue and the services.
func isNotFound(err error) bool {
	return errors.Is(err, catalogue.ErrNotFound) ||
		errors.Is(err, profile.ErrNotFound) ||
		errors.Is(err, workout.ErrNotFound) ||
		errors.Is(err, workout.ErrInvalidIndex)
}
