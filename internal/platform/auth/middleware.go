package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const identityKey contextKey = "identity"

// Claims is the bearer-token payload. Role gating and the policy guards read
// everything they need from here plus the directory.
type Claims struct {
	jwt.RegisteredClaims
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	AgentType     string   `json:"agent_type,omitempty"`
	HospitalIDs   []string `json:"hospital_ids,omitempty"`
	UniversityIDs []string `json:"university_ids,omitempty"`
}

// Identity is the resolved caller placed on the request context.
type Identity struct {
	ID            string
	Name          string
	Role          string
	AgentType     string
	HospitalIDs   []string
	UniversityIDs []string
}

// JWTMiddleware validates HMAC-signed bearer tokens and stores the caller's
// identity on the request context.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ident := &Identity{
				ID:            claims.Subject,
				Name:          claims.Name,
				Role:          claims.Role,
				AgentType:     claims.AgentType,
				HospitalIDs:   claims.HospitalIDs,
				UniversityIDs: claims.UniversityIDs,
			}
			c.SetRequest(c.Request().WithContext(withIdentity(c.Request().Context(), ident)))
			return next(c)
		}
	}
}

// DevAuthMiddleware grants every request an admin identity, overridable via
// X-Dev-Role / X-Dev-User headers. Development only.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := &Identity{
				ID:   "dev-admin",
				Name: "Development Admin",
				Role: "admin",
			}
			if role := c.Request().Header.Get("X-Dev-Role"); role != "" {
				ident.Role = role
				ident.ID = "dev-" + role
			}
			if id := c.Request().Header.Get("X-Dev-User"); id != "" {
				ident.ID = id
			}
			c.SetRequest(c.Request().WithContext(withIdentity(c.Request().Context(), ident)))
			return next(c)
		}
	}
}

func withIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext returns the caller's identity, or nil when the request
// was not authenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// RequireRole admits callers holding any of the listed roles. Admins pass
// every role check.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := IdentityFromContext(c.Request().Context())
			if ident == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			for _, required := range roles {
				if ident.Role == required || ident.Role == "admin" {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
