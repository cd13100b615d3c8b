package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// CookieName is the HttpOnly cookie the login endpoint sets. The cookie is
// preferred; the Authorization header is the fallback for non-browser
// clients.
const CookieName = "auth_token"

// Middleware authenticates every request from the session cookie or bearer
// header and stores the verified claims in the request context. Requests
// without a verifiable credential are rejected before any business logic.
func Middleware(issuer *TokenIssuer, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			tokenStr := extractToken(c)
			if tokenStr == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			claims, err := issuer.Parse(tokenStr)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// extractToken prefers the session cookie over the Authorization header.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// ClaimsFromContext returns the verified claims, or nil outside an
// authenticated request.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// WithClaims returns a context carrying the given claims. Used by tests and
// by handlers that re-dispatch work under the caller's identity.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
