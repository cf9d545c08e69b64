package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"school-service/internal/middleware"
	"school-service/internal/model"
	"school-service/internal/query"
	"school-service/internal/stats"
	"school-service/internal/testutil"
	"school-service/pkg/config"
	"school-service/pkg/jwtutil"
	"school-service/pkg/mailer"
	"school-service/pkg/tokenutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type env struct {
	e      *echo.Echo
	db     *gorm.DB
	mail   *mailer.ConsoleMailer
	tokens *tokenutil.Service
}

// setup wires a full router backed by an isolated in-memory database
func setup(t *testing.T) *env {
	t.Helper()

	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-access-key", ExpirationHours: 1})

	db := testutil.OpenDB(t)
	mail := mailer.NewConsoleMailer(zap.NewNop())
	tokens := tokenutil.NewService(&config.InviteConfig{
		SigningKey: "test-invite-key",
		TTL:        7 * 24 * time.Hour,
	})
	mailCfg := &config.MailConfig{
		Backend:    "console",
		AppBaseURL: "http://localhost:3000",
	}

	composer := query.New(db)
	aggregator := stats.New(db)
	invitations := NewInvitationHandler(db, tokens, mail, mailCfg)
	auth := NewAuthHandler(db)
	dashboard := NewDashboardHandler(aggregator)
	organizations := NewOrganizationHandler(composer)
	reads := NewReadHandler(composer)

	e := echo.New()
	e.POST("/auth/login", auth.Login)
	e.POST("/organizations/invite", invitations.Invite)
	e.GET("/signup", invitations.SignupInfo)
	e.POST("/signup", invitations.CompleteSignup)

	api := e.Group("", middleware.AuthMiddleware)
	api.GET("/dashboard/stats", dashboard.Stats)
	api.GET("/organizations", organizations.List, middleware.RequireRole(model.RolePlatformOwner))
	api.GET("/students", reads.Students)
	api.GET("/schools", reads.Schools)

	return &env{e: e, db: db, mail: mail, tokens: tokens}
}

// request runs a JSON request through the router and returns the recorder
func (te *env) request(t *testing.T, method, target, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	te.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// createUser provisions a user with a bcrypt-hashed password
func createUser(t *testing.T, db *gorm.DB, email, password, role string, orgID uint) model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{
		Name:           "Test User",
		Email:          email,
		Password:       string(hashed),
		Role:           role,
		OrganizationID: orgID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// createOrg provisions an organization in the given lifecycle state
func createOrg(t *testing.T, db *gorm.DB, name string, status model.OrganizationStatus) model.Organization {
	t.Helper()

	org := model.Organization{
		Name:         name,
		Slug:         model.Slugify(name),
		Subscription: model.SubscriptionBasic,
		Status:       status,
		Settings:     model.DefaultOrgSettings(),
	}
	require.NoError(t, db.Create(&org).Error)
	return org
}

// bearerFor returns an access token for the given user
func bearerFor(t *testing.T, user model.User) string {
	t.Helper()
	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.OrganizationID, user.Role)
	require.NoError(t, err)
	return token
}
