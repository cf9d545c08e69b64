package handler

import (
	"net/http"
	"time"

	"school-service/internal/query"
	"school-service/pkg/logger"
	"school-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrganizationHandler serves the cross-tenant organization list.
// Routes using it are mounted behind RequireRole(PLATFORM_OWNER).
type OrganizationHandler struct {
	query *query.Composer
}

// NewOrganizationHandler creates the organization handler on the given composer
func NewOrganizationHandler(q *query.Composer) *OrganizationHandler {
	return &OrganizationHandler{query: q}
}

// List handles GET /organizations
func (h *OrganizationHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrganizationOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	orgs, err := h.query.Organizations()
	if err != nil {
		log.Error("Failed to list organizations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load organizations"})
	}

	return c.JSON(http.StatusOK, echo.Map{"organizations": orgs})
}
