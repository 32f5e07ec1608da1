package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminAuth returns an Echo middleware that validates a Bearer session
// token and injects the token's subject and role claims into the request
// context.  The provided secret must match the one used when issuing
// tokens at admin login.  Admin routes wrap this middleware so handlers
// can access the authenticated operator via `c.Get("admin_id")` and
// `c.Get("role")`.  A missing or unverifiable token yields 401 so the
// caller can tell an authentication failure apart from a 404 and
// redirect to the login flow.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 and our secret; reject any other signing
			// method so a token cannot downgrade the algorithm.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Store the subject (admin id) and role in the context for
			// downstream middleware and handlers.  The sub claim comes
			// back as a JSON number; normalize it to a string.
			switch sub := claims["sub"].(type) {
			case string:
				c.Set("admin_id", sub)
			case float64:
				c.Set("admin_id", strconv.FormatUint(uint64(sub), 10))
			}
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
			return next(c)
		}
	}
}
