package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/mediatrail/backend/internal/models"
)

// userIDKey is the echo context key the middleware stores the caller's id
// under.
const userIDKey = "userID"

// jwtSecret is the token-verification secret, installed once at startup
// from config. Empty means no secret is configured; every token is then
// rejected rather than verified against a default.
var jwtSecret string

// SetJWTSecret installs the secret bearer tokens are verified against.
func SetJWTSecret(secret string) {
	jwtSecret = secret
}

// RequireAuth checks for a valid JWT and stores the caller's user id in the
// request context. Requests without a valid token are rejected.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseToken(c)
			if err != nil {
				return err
			}
			c.Set(userIDKey, claims.UserID)
			return next(c)
		}
	}
}

// OptionalAuth stores the caller's user id when a valid token is present
// and lets the request through anonymously otherwise. Handlers use the
// distinction to decide whether viewer-scoped fields (user_liked) are
// attached or omitted.
func OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := parseToken(c); err == nil {
				c.Set(userIDKey, claims.UserID)
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller's id, or 0 for anonymous
// requests.
func UserID(c echo.Context) uint {
	if id, ok := c.Get(userIDKey).(uint); ok {
		return id
	}
	return 0
}

// ViewerID returns a pointer to the caller's id, or nil for anonymous
// requests.
func ViewerID(c echo.Context) *uint {
	if id, ok := c.Get(userIDKey).(uint); ok && id > 0 {
		return &id
	}
	return nil
}

func parseToken(c echo.Context) (*models.JwtCustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := parts[1]

	if jwtSecret == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Token verification not configured")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return claims, nil
}
