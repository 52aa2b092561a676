package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.requestMetrics(shared(next)))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.requestMetrics(noCache(app.sessionManager.LoadAndSave(
				app.loadProfile(shared(next))))))
		}
		// withProfile creates the profile on first use. It comes after the cross-origin check.
		withProfile = func(next http.Handler) http.Handler {
			return session(app.ensureProfile(next))
		}
	)

	mux.Handle("GET /bmi", session(http.HandlerFunc(app.bmiGET)))
	mux.Handle("POST /bmi", withProfile(http.HandlerFunc(app.bmiPOST)))
	mux.Handle("POST /bmi/clear", session(http.HandlerFunc(app.bmiClearPOST)))

	mux.Handle("GET /training", session(http.HandlerFunc(app.trainingGET)))
	mux.Handle("GET /training/plans/{id}", session(http.HandlerFunc(app.planGET)))
	mux.Handle("POST /training/plans/{id}/start", withProfile(http.HandlerFunc(app.planStartPOST)))

	mux.Handle("GET /workout", session(http.HandlerFunc(app.workoutGET)))
	mux.Handle("POST /workout/exercises/{index}/complete-set", session(http.HandlerFunc(app.completeSetPOST)))
	mux.Handle("POST /workout/finish", session(http.HandlerFunc(app.workoutFinishPOST)))

	mux.Handle("GET /exercises", session(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /exercises/{id}", session(http.HandlerFunc(app.exerciseGET)))
	mux.Handle("POST /exercises/{id}/favorite", withProfile(http.HandlerFunc(app.favoritePOST)))
	mux.Handle("GET /favorites", session(http.HandlerFunc(app.favoritesGET)))

	mux.Handle("GET /nutrition", session(http.HandlerFunc(app.nutritionGET)))
	mux.Handle("GET /nutrition/{objective}/download", session(http.HandlerFunc(app.nutritionDownloadGET)))

	mux.Handle("GET /timer", session(http.HandlerFunc(app.timerGET)))
	mux.Handle("GET /profile/export", session(http.HandlerFunc(app.profileExportGET)))
	mux.Handle("POST /theme/toggle", withProfile(http.HandlerFunc(app.themeTogglePOST)))
	mux.Handle("GET /offline", noSession(http.HandlerFunc(app.offline)))

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))
	mux.Handle("POST /api/csp-violation", noSession(http.HandlerFunc(app.cspViolation)))
	mux.Handle("GET /metrics", app.recoverPanic(promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))) //nolint:exhaustruct // defaults.

	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))

	// File server with custom 404 handling
	fileServerHandler, err := app.fileServerHandler()
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
