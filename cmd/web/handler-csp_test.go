package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func Test_application_cspViolation(t *testing.T) {
	var logBuffer bytes.Buffer
	app := &application{ //nolint:exhaustruct // this is a test
		logger: slog.New(slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{ //nolint:exhaustruct // test only
			Level: slog.LevelDebug,
		})),
	}

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		logContains []string
	}{
		{
			name: "Valid report",
			body: `{"csp-report": {"document-uri": "https://example.com/bmi", ` +
				`"violated-directive": "script-src", "effective-directive": "script-src", ` +
				`"blocked-uri": "https://evil.com/script.js", "line-number": 42, "disposition": "enforce"}}`,
			wantStatus:  http.StatusNoContent,
			logContains: []string{"csp violation", "script-src", "https://evil.com/script.js", "line_number=42"},
		},
		{
			name:        "Invalid JSON",
			body:        `{"invalid json structure`,
			wantStatus:  http.StatusBadRequest,
			logContains: []string{"malformed csp violation report"},
		},
		{
			name:        "Oversized body",
			body:        `{"csp-report": {"script-sample": "` + strings.Repeat("a", maxCSPReportBytes) + `"}}`,
			wantStatus:  http.StatusBadRequest,
			logContains: []string{"malformed csp violation report"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuffer.Reset()
			req := httptest.NewRequest(http.MethodPost, "/api/csp-violation", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/csp-report")
			w := httptest.NewRecorder()

			app.cspViolation(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			logOutput := logBuffer.String()
			for _, want := range tt.logContains {
				if !strings.Contains(logOutput, want) {
					t.Errorf("Expected log to contain %q, got: %s", want, logOutput)
				}
			}
		})
	}
}
