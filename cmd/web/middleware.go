package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/myrjola/fitnesspro/internal/contexthelpers"
	"github.com/myrjola/fitnesspro/internal/errors"
	"github.com/myrjola/fitnesspro/internal/logging"
)

// profileIDSessionKey stores the anonymous profile of the visitor in the session.
const profileIDSessionKey = "profile_id"

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
}

func newStatusResponseWriter(w http.ResponseWriter) *statusResponseWriter {
	return &statusResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
		headerWritten:  false,
	}
}

func (mw *statusResponseWriter) WriteHeader(statusCode int) {
	mw.ResponseWriter.WriteHeader(statusCode)

	if !mw.headerWritten {
		mw.statusCode = statusCode
		mw.headerWritten = true
	}
}

func (mw *statusResponseWriter) Write(b []byte) (int, error) {
	mw.headerWritten = true
	written, err := mw.ResponseWriter.Write(b)
	if err != nil {
		return written, fmt.Errorf("write response: %w", err)
	}
	return written, nil
}

func (mw *statusResponseWriter) Unwrap() http.ResponseWriter {
	return mw.ResponseWriter
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The nonce is added to the inline script and style tags of the templates.
		cspNonce := rand.Text()
		csp := fmt.Sprintf(`default-src 'none';
script-src 'nonce-%s' 'strict-dynamic' 'unsafe-inline' https: http:;
connect-src 'self';
img-src 'self' data:;
style-src 'nonce-%s' 'self';
frame-ancestors 'self';
form-action 'self';
font-src 'none';
object-src 'none';
manifest-src 'self';
worker-src 'self';
base-uri 'none';
report-uri /api/csp-violation;`, cspNonce, cspNonce)

		w.Header().Set("Content-Security-Policy", csp)
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")

		r = contexthelpers.SetCSPNonce(r, cspNonce)

		next.ServeHTTP(w, r)
	})
}

func cacheForever(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		next.ServeHTTP(w, r)
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logAndTraceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		ctx := r.Context()
		traceID := rand.Text()
		ctx = logging.WithAttrs(
			ctx,
			slog.Any("trace_id", traceID),
			slog.String("proto", proto),
			slog.String("method", method),
			slog.String("uri", uri),
		)
		r = r.WithContext(ctx)

		start := time.Now()
		app.logger.LogAttrs(ctx, slog.LevelDebug, "received request")

		sw := newStatusResponseWriter(w)

		if !trace.IsEnabled() {
			next.ServeHTTP(sw, r)
		} else {
			path := r.URL.Path
			traceCtx, task := trace.NewTask(ctx, fmt.Sprintf("HTTP %s %s", r.Method, path))
			trace.Log(traceCtx, "request", fmt.Sprintf("method=%s path=%s proto=%s", method, path, proto))
			trace.Log(traceCtx, "trace_id", traceID)
			defer func() {
				trace.Log(traceCtx, "response", fmt.Sprintf("status=%d duration=%v", sw.statusCode, time.Since(start)))
				task.End()
			}()

			next.ServeHTTP(sw, r.WithContext(traceCtx))
		}

		level := slog.LevelInfo
		if sw.statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		app.logger.LogAttrs(r.Context(), level, "request completed",
			slog.Int("status_code", sw.statusCode), slog.Duration("duration", time.Since(start)))
	})
}

// requestMetrics counts requests per method and status and observes their duration.
func (app *application) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.metrics.GaugeRequests.Inc()
		defer app.metrics.GaugeRequests.Dec()
		defer func(begin time.Time) {
			app.metrics.HistRequestDuration.Observe(time.Since(begin).Seconds())
		}(time.Now())

		sw := newStatusResponseWriter(w)
		next.ServeHTTP(sw, r)

		app.metrics.CounterRequests.WithLabelValues(r.Method, strconv.Itoa(sw.statusCode)).Inc()
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := errors.DecoratePanic(recover()); err != nil {
				app.metrics.CounterHandleRequestPanic.Inc()
				app.serverError(w, r, err)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCurrentPath(r, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// crossOriginProtection rejects cross-origin state-changing requests using Sec-Fetch-Site and Origin headers.
func (app *application) crossOriginProtection(next http.Handler) http.Handler {
	protection := http.NewCrossOriginProtection()
	return protection.Handler(next)
}

// timeout times out the request and cancels the context using http.TimeoutHandler. Timed out requests are captured
// by the flight recorder when it is enabled.
func (app *application) timeout(next http.Handler) http.Handler {
	captured := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if app.traces != nil && errors.Is(r.Context().Err(), context.DeadlineExceeded) {
			app.traces.CaptureTimeoutTrace(r.Context())
		}
	})
	// A little shorter than the server's write timeout so that the timeout handler has a chance to respond.
	return http.TimeoutHandler(captured, defaultTimeout-200*time.Millisecond, timeoutBody) //nolint:mnd // 200ms
}

// loadProfile puts the profile stored in the session into the request context together with its theme. Visitors
// without a profile, or whose profile has been removed, continue with profile ID zero.
func (app *application) loadProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		profileID := app.sessionManager.GetInt64(ctx, profileIDSessionKey)
		if profileID != 0 {
			exists, err := app.profiles.Exists(ctx, profileID)
			if err != nil {
				app.serverError(w, r, err)
				return
			}
			if !exists {
				app.logger.LogAttrs(ctx, slog.LevelWarn, "session references missing profile",
					slog.Int64("profile_id", profileID))
				app.sessionManager.Remove(ctx, profileIDSessionKey)
				profileID = 0
			}
		}

		r = contexthelpers.SetProfile(r, profileID, "")
		theme, err := app.profiles.Theme(r.Context())
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		r = contexthelpers.SetProfile(r, profileID, theme)
		if profileID != 0 {
			r = r.WithContext(logging.WithAttrs(r.Context(), slog.Int64("profile_id", profileID)))
		}
		next.ServeHTTP(w, r)
	})
}

// ensureProfile creates a profile for visitors that do not have one yet. Profiles are only created on state-changing
// requests so that crawlers do not fill the database.
func (app *application) ensureProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if contexthelpers.ProfileID(ctx) != 0 {
			next.ServeHTTP(w, r)
			return
		}
		profileID, err := app.profiles.CreateProfile(ctx)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		if err = app.sessionManager.RenewToken(ctx); err != nil {
			app.serverError(w, r, err)
			return
		}
		app.sessionManager.Put(ctx, profileIDSessionKey, profileID)
		r = contexthelpers.SetProfile(r, profileID, contexthelpers.Theme(ctx))
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.Int64("profile_id", profileID)))
		next.ServeHTTP(w, r)
	})
}
