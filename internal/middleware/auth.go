package middleware

import (
	"net/http"
	"strings"

	"school-service/internal/model"
	"school-service/pkg/jwtutil"
	"school-service/pkg/logger"
	"school-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token from the Authorization header
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("organization_id", claims.OrganizationID)

		log.Debug("Request authenticated",
			zap.Uint("user_id", claims.UserID),
			zap.Uint("organization_id", claims.OrganizationID),
			zap.String("role", claims.Role))

		// Token is valid, proceed with the request
		return next(c)
	}
}

// RequireRole rejects authenticated requests whose role is not in the allowed set.
// Role checks happen here, on the server, regardless of what the client claims
// to be rendering.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			logger.FromContext(c).Warn("Forbidden: insufficient role",
				zap.String("role", role))
			prometheus.RecordAuthError("forbidden_role")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
		}
	}
}

// CallerOrganizationID resolves the organization a request is pinned to.
// Platform owners may pass an explicit organization_id query parameter to
// inspect any tenant; everyone else is locked to the organization carried in
// their token.
func CallerOrganizationID(c echo.Context, requested uint) uint {
	role, _ := c.Get("role").(string)
	if role == model.RolePlatformOwner {
		return requested
	}
	orgID, _ := c.Get("organization_id").(uint)
	return orgID
}
