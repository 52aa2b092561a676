package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/myrjola/fitnesspro/internal/errors"
)

// maxCSPReportBytes caps the body of a violation report.
const maxCSPReportBytes = 64 << 10

type cspViolationReport struct {
	Body struct {
		DocumentURI        string `json:"document-uri"`
		ViolatedDirective  string `json:"violated-directive"`
		EffectiveDirective string `json:"effective-directive"`
		BlockedURI         string `json:"blocked-uri"`
		SourceFile         string `json:"source-file"`
		LineNumber         int    `json:"line-number"`
		Disposition        string `json:"disposition"`
	} `json:"csp-report"`
}

// cspViolation logs the reports browsers send to the report-uri of the Content-Security-Policy.
func (app *application) cspViolation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var report cspViolationReport
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCSPReportBytes)).Decode(&report); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "malformed csp violation report",
			errors.SlogError(err), slog.String("content_type", r.Header.Get("Content-Type")))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	v := report.Body
	app.logger.LogAttrs(ctx, slog.LevelWarn, "csp violation",
		slog.String("document_uri", v.DocumentURI),
		slog.String("violated_directive", v.ViolatedDirective),
		slog.String("effective_directive", v.EffectiveDirective),
		slog.String("blocked_uri", v.BlockedURI),
		slog.String("source_file", v.SourceFile),
		slog.Int("line_number", v.LineNumber),
		slog.String("disposition", v.Disposition),
		slog.String("user_agent", r.UserAgent()))

	w.WriteHeader(http.StatusNoContent)
}
