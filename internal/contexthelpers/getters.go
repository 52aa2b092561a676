package contexthelpers

import (
	"context"
)

func value[T any](ctx context.Context, key contextKey) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// ProfileID is the anonymous profile bound to the session, zero when none has been created yet.
func ProfileID(ctx context.Context) int64 {
	return value[int64](ctx, ProfileIDContextKey)
}

func CurrentPath(ctx context.Context) string {
	return value[string](ctx, CurrentPathContextKey)
}

func CSPNonce(ctx context.Context) string {
	return value[string](ctx, CspNonceContextKey)
}

// Theme returns "light" unless the profile switched to the dark theme.
func Theme(ctx context.Context) string {
	if theme := value[string](ctx, ThemeContextKey); theme != "" {
		return theme
	}
	return "light"
}
