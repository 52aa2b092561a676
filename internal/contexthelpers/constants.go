package contexthelpers

type contextKey string

const (
	ProfileIDContextKey   = contextKey("profileID")
	CurrentPathContextKey = contextKey("currentPath")
	CspNonceContextKey    = contextKey("cspNonce")
	ThemeContextKey       = contextKey("theme")
)
