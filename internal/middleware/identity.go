package middleware

// identity.go holds the caller-identification helper shared by the rate
// limiter and cache key builders.

import (
    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// currentUserID extracts a user identifier from the request context. It
// first checks the "user_id" value set by JWTAuth, then falls back to the
// raw JWT claims for requests that passed through echo's own jwt middleware.
// Unauthenticated callers are keyed as "anon" so they share one bucket.
func currentUserID(c echo.Context) string {
    if s, ok := c.Get("user_id").(string); ok && s != "" {
        return s
    }
    if tok, ok := c.Get("user").(*jwt.Token); ok {
        if cl, ok := tok.Claims.(jwt.MapClaims); ok {
            if v, ok := cl["sub"].(string); ok && v != "" {
                return v
            }
        }
    }
    return "anon"
}
