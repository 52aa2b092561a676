package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/profile"
)

const exportFilename = "fitnesspro-profile.sqlite3"

// profileExportGET lets visitors download their data as a SQLite database.
func (app *application) profileExportGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dir, err := os.MkdirTemp("", "fitnesspro-export-")
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "create export dir"))
		return
	}
	defer func() {
		if removeErr := os.RemoveAll(dir); removeErr != nil {
			app.logger.LogAttrs(ctx, slog.LevelWarn, "remove export dir", errors.SlogError(removeErr))
		}
	}()

	path, err := app.profiles.Export(ctx, dir)
	if err != nil {
		if errors.Is(err, profile.ErrNoProfile) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.sqlite3")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	http.ServeFile(w, r, path)
}
