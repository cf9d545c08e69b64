package handler

import (
	"net/http"
	"testing"

	"school-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	te := setup(t)
	org := createOrg(t, te.db, "Active Org", model.OrgStatusActive)
	createUser(t, te.db, "admin@active.org", "pw123456", model.RoleOrgAdmin, org.ID)

	rec := te.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "admin@active.org",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin@active.org", user["email"])
	assert.Equal(t, model.RoleOrgAdmin, user["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	te := setup(t)
	org := createOrg(t, te.db, "Active Org", model.OrgStatusActive)
	createUser(t, te.db, "admin@active.org", "pw123456", model.RoleOrgAdmin, org.ID)

	rec := te.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "admin@active.org",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	te := setup(t)

	rec := te.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@nowhere.org",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginPendingOrganization(t *testing.T) {
	te := setup(t)
	org := createOrg(t, te.db, "Pending Org", model.OrgStatusPending)
	createUser(t, te.db, "admin@pending.org", "pw123456", model.RoleOrgAdmin, org.ID)

	rec := te.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "admin@pending.org",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
