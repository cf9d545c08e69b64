package handler

import (
	"net/http"
	"time"

	"school-service/internal/model"
	"school-service/pkg/config"
	"school-service/pkg/logger"
	"school-service/pkg/mailer"
	"school-service/pkg/tokenutil"
	"school-service/prometheus"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost matches the cost the platform has always hashed admin passwords with
const bcryptCost = 12

// InvitationHandler drives the organization invitation and signup lifecycle
type InvitationHandler struct {
	db         *gorm.DB
	tokens     *tokenutil.Service
	mail       mailer.Mailer
	validate   *validator.Validate
	appBaseURL string
}

// NewInvitationHandler wires the invitation workflow with its dependencies
func NewInvitationHandler(db *gorm.DB, tokens *tokenutil.Service, mail mailer.Mailer, cfg *config.MailConfig) *InvitationHandler {
	return &InvitationHandler{
		db:         db,
		tokens:     tokens,
		mail:       mail,
		validate:   validator.New(),
		appBaseURL: cfg.AppBaseURL,
	}
}

// Invite handles POST /organizations/invite: it provisions a pending
// organization and emails its future administrator a signup link. The email
// is dispatched before anything is written, so a delivery failure leaves no
// rows behind.
func (h *InvitationHandler) Invite(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.InvitationCounter.Inc()
	prometheus.RecordOrganizationOperation("invite")

	// Parse request
	var req struct {
		Email            string `json:"email"`
		OrganizationName string `json:"organizationName"`
		Subscription     string `json:"subscription,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse invitation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.OrganizationName == "" {
		log.Error("Invalid invitation data: missing organization name")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organizationName is required"})
	}
	if err := h.validate.Var(req.Email, "required,email"); err != nil {
		log.Error("Invalid invitation email", zap.String("email", req.Email))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}

	subscription := model.SubscriptionBasic
	if req.Subscription != "" {
		subscription = model.SubscriptionTier(req.Subscription)
		if !subscription.Valid() {
			log.Error("Invalid subscription tier", zap.String("subscription", req.Subscription))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription tier"})
		}
	}

	slug := model.Slugify(req.OrganizationName)

	// Duplicate organization by case-insensitive name or derived slug
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existing model.Organization
	result := h.db.Where("LOWER(name) = LOWER(?) OR slug = ?", req.OrganizationName, slug).First(&existing)
	if result.Error == nil {
		log.Error("Organization already exists",
			zap.String("name", req.OrganizationName),
			zap.Uint("id", existing.ID))
		prometheus.RecordOrganizationError(existing.ID, "duplicate_organization")
		return c.JSON(http.StatusConflict, echo.Map{"error": "an organization with this name already exists"})
	}

	// Duplicate administrator email
	var existingUser model.User
	if result := h.db.Where("email = ?", req.Email).First(&existingUser); result.Error == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a user with this email already exists"})
	}

	// Issue the invitation token
	token, err := h.tokens.Issue(req.Email, req.OrganizationName)
	if err != nil {
		log.Error("Failed to issue invitation token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create invitation"})
	}

	// Dispatch the invitation email. Nothing has been written yet; a failure
	// here must leave the store untouched.
	inviteLink := h.appBaseURL + "/signup?token=" + token
	msg := mailer.InvitationMessage(req.Email, req.OrganizationName, inviteLink)
	messageID, err := h.mail.Send(msg)
	if err != nil {
		log.Error("Failed to send invitation email",
			zap.String("email", req.Email),
			zap.Error(err))
		prometheus.RecordEmail("invitation", "failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to send invitation email"})
	}
	prometheus.RecordEmail("invitation", "sent")

	// Persist the pending organization and its invitation audit record
	tx := h.db.Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	org := model.Organization{
		Name:         req.OrganizationName,
		Slug:         slug,
		Subscription: subscription,
		Status:       model.OrgStatusPending,
		Settings:     model.DefaultOrgSettings(),
	}
	if result := tx.Create(&org); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create organization", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "organization creation failed"})
	}

	invitation := model.Invitation{
		OrganizationID: org.ID,
		Email:          req.Email,
		Token:          token,
		InvitedAt:      time.Now(),
	}
	if result := tx.Create(&invitation); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to record invitation", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invitation creation failed"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit transaction", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction commit failed"})
	}

	log.Info("Organization invited",
		zap.String("name", org.Name),
		zap.Uint("id", org.ID),
		zap.String("email", req.Email))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":          "Invitation sent successfully",
		"email":            req.Email,
		"organizationName": org.Name,
		"messageId":        messageID,
	})
}

// SignupInfo handles GET /signup: it validates the invitation token and
// returns the details the signup form renders. A completed or missing
// pending organization yields 410, since the link cannot be redeemed again.
func (h *InvitationHandler) SignupInfo(c echo.Context) error {
	log := logger.FromContext(c)

	claims, err := h.tokens.Verify(c.QueryParam("token"))
	if err != nil {
		log.Error("Invalid invitation token")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired invitation token"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var org model.Organization
	result := h.db.Where("name = ? AND status = ?", claims.OrganizationName, model.OrgStatusPending).First(&org)
	if result.Error != nil {
		log.Error("No pending organization for invitation",
			zap.String("name", claims.OrganizationName))
		return c.JSON(http.StatusGone, echo.Map{"error": "this invitation has already been used"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"valid":            true,
		"email":            claims.Email,
		"organizationName": claims.OrganizationName,
		"createdAt":        claims.CreatedAt,
		"organization": echo.Map{
			"id":           org.ID,
			"name":         org.Name,
			"subscription": org.Subscription,
		},
	})
}

// CompleteSignup handles POST /signup: it redeems the invitation by creating
// the organization administrator and activating the organization. Activation
// is a compare-and-swap on the status column inside the transaction, so when
// two redemptions race exactly one commits.
func (h *InvitationHandler) CompleteSignup(c echo.Context) error {
	log := logger.FromContext(c)

	// Parse request
	var req struct {
		Token    string `json:"token"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	claims, err := h.tokens.Verify(req.Token)
	if err != nil {
		log.Error("Invalid invitation token")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired invitation token"})
	}

	if req.Name == "" || req.Password == "" {
		log.Error("Invalid signup data: missing name or password")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and password are required"})
	}

	// A redeemed invitation leaves no pending organization behind, so a
	// replayed token fails here
	defer prometheus.TrackDBOperation("insert")(time.Now())
	var org model.Organization
	result := h.db.Where("name = ? AND status = ?", claims.OrganizationName, model.OrgStatusPending).First(&org)
	if result.Error != nil {
		log.Error("No pending organization for signup",
			zap.String("name", claims.OrganizationName))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found or already activated"})
	}

	var existingUser model.User
	if result := h.db.Where("email = ?", claims.Email).First(&existingUser); result.Error == nil {
		log.Error("User already exists", zap.String("email", claims.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a user with this email already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}

	// Begin transaction
	tx := h.db.Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	user := model.User{
		Name:           req.Name,
		Email:          claims.Email,
		Password:       string(hashed),
		Role:           model.RoleOrgAdmin,
		OrganizationID: org.ID,
	}
	if result := tx.Create(&user); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create administrator", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "user creation failed"})
	}

	// Activate the organization only if it is still pending. A raced signup
	// that lost sees zero affected rows and aborts.
	activate := tx.Model(&model.Organization{}).
		Where("id = ? AND status = ?", org.ID, model.OrgStatusPending).
		Update("status", model.OrgStatusActive)
	if activate.Error != nil {
		tx.Rollback()
		log.Error("Failed to activate organization", zap.Error(activate.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "organization activation failed"})
	}
	if activate.RowsAffected == 0 {
		tx.Rollback()
		log.Error("Organization no longer pending",
			zap.Uint("id", org.ID),
			zap.String("name", org.Name))
		prometheus.RecordOrganizationError(org.ID, "signup_race_lost")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "organization not found or already activated"})
	}

	// Stamp the invitation audit record
	now := time.Now()
	if result := tx.Model(&model.Invitation{}).
		Where("organization_id = ? AND email = ? AND completed_at IS NULL", org.ID, claims.Email).
		Update("completed_at", now); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to stamp invitation", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invitation update failed"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit transaction", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction commit failed"})
	}

	prometheus.SignupCounter.Inc()
	prometheus.RecordOrganizationOperation("activate")

	// Welcome email is best-effort: the signup already committed
	welcome := mailer.WelcomeMessage(claims.Email, org.Name, h.appBaseURL+"/login")
	if _, err := h.mail.Send(welcome); err != nil {
		log.Warn("Failed to send welcome email",
			zap.String("email", claims.Email),
			zap.Error(err))
		prometheus.RecordEmail("welcome", "failed")
	} else {
		prometheus.RecordEmail("welcome", "sent")
	}

	log.Info("Signup completed",
		zap.String("email", user.Email),
		zap.Uint("organization_id", org.ID),
		zap.String("organization", org.Name))

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Signup completed successfully",
		"user": echo.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
			"organization": echo.Map{
				"id":   org.ID,
				"name": org.Name,
				"slug": org.Slug,
			},
		},
	})
}
