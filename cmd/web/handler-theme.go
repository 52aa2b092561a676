package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// themeTogglePOST switches between the light and dark theme and sends the visitor back to the page they came from.
func (app *application) themeTogglePOST(w http.ResponseWriter, r *http.Request) {
	theme, err := app.profiles.ToggleTheme(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.logger.LogAttrs(r.Context(), slog.LevelDebug, "toggled theme", slog.String("theme", theme))
	redirect(w, r, sameOriginReturnPath(r.PostFormValue("return_to")))
}

// sameOriginReturnPath accepts only local absolute paths and defaults to the home page.
func sameOriginReturnPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") ||
		strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	return u.RequestURI()
}
