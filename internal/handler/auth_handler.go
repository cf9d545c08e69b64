package handler

import (
	"net/http"
	"time"

	"school-service/internal/model"
	"school-service/pkg/jwtutil"
	"school-service/pkg/logger"
	"school-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler issues access tokens for existing users
type AuthHandler struct {
	db *gorm.DB
}

// NewAuthHandler creates the auth handler on the given database handle
func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := h.db.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Reject logins into organizations that are not active yet. The platform
	// organization is always active by construction.
	var org model.Organization
	if result := h.db.First(&org, user.OrganizationID); result.Error != nil {
		log.Error("Organization not found for user",
			zap.Uint("organization_id", user.OrganizationID))
		prometheus.RecordAuthError("organization_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if org.Status != model.OrgStatusActive {
		log.Error("Organization not active",
			zap.Uint("organization_id", org.ID),
			zap.String("status", string(org.Status)))
		prometheus.RecordAuthError("organization_inactive")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "organization is not active"})
	}

	// Generate JWT token carrying the tenant context
	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.OrganizationID, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Uint("organization_id", user.OrganizationID),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"organization_id": user.OrganizationID,
		},
		"organization": echo.Map{
			"id":   org.ID,
			"name": org.Name,
			"slug": org.Slug,
		},
	})
}
