package handler

import (
	"net/http"
	"strconv"
	"time"

	"school-service/internal/middleware"
	"school-service/internal/model"
	"school-service/internal/stats"
	"school-service/pkg/logger"
	"school-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardHandler serves the role-scoped dashboard statistics
type DashboardHandler struct {
	stats *stats.Aggregator
}

// NewDashboardHandler creates the dashboard handler on the given aggregator
func NewDashboardHandler(agg *stats.Aggregator) *DashboardHandler {
	return &DashboardHandler{stats: agg}
}

// Stats handles GET /dashboard/stats. Platform owners may request the
// platform-wide billing view with isPlatformOwner=true; that flag is
// re-validated against the token's role, never trusted from the client.
// Everyone else receives their own organization's counts.
func (h *DashboardHandler) Stats(c echo.Context) error {
	log := logger.FromContext(c)

	role, _ := c.Get("role").(string)
	wantsPlatform := c.QueryParam("isPlatformOwner") == "true"

	defer prometheus.TrackDBOperation("query")(time.Now())

	if wantsPlatform {
		if role != model.RolePlatformOwner {
			log.Warn("Platform stats requested without platform role",
				zap.String("role", role))
			prometheus.RecordAuthError("forbidden_platform_stats")
			return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
		}

		platform, err := h.stats.ForPlatform()
		if err != nil {
			log.Error("Failed to aggregate platform stats", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load statistics"})
		}
		return c.JSON(http.StatusOK, platform)
	}

	var requested uint
	if raw := c.QueryParam("organizationId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			log.Error("Invalid organization ID", zap.String("organizationId", raw))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid organization ID"})
		}
		requested = uint(parsed)
	}

	orgID := middleware.CallerOrganizationID(c, requested)
	orgStats, err := h.stats.ForOrganization(orgID)
	if err != nil {
		log.Error("Failed to aggregate organization stats",
			zap.Uint("organization_id", orgID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load statistics"})
	}

	return c.JSON(http.StatusOK, orgStats)
}
