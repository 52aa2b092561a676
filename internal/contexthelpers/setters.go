package contexthelpers

import (
	"context"
	"net/http"
)

func WithProfileID(ctx context.Context, profileID int64) context.Context {
	return context.WithValue(ctx, ProfileIDContextKey, profileID)
}

func SetProfile(r *http.Request, profileID int64, theme string) *http.Request {
	ctx := WithProfileID(r.Context(), profileID)
	ctx = context.WithValue(ctx, ThemeContextKey, theme)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), CurrentPathContextKey, currentPath))
}

func SetCSPNonce(r *http.Request, cspNonce string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), CspNonceContextKey, cspNonce))
}
