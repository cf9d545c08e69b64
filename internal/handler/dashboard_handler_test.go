package handler

import (
	"fmt"
	"net/http"
	"testing"

	"school-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSchoolWithStudents(t *testing.T, db *gorm.DB, orgID uint, students int) model.School {
	t.Helper()

	school := model.School{OrganizationID: orgID, Name: fmt.Sprintf("School %d", orgID), Slug: fmt.Sprintf("school-%d", orgID)}
	require.NoError(t, db.Create(&school).Error)
	for i := 0; i < students; i++ {
		require.NoError(t, db.Create(&model.Student{
			OrganizationID: orgID,
			SchoolID:       school.ID,
			Name:           fmt.Sprintf("Student %d", i),
		}).Error)
	}
	return school
}

func platformOwner(t *testing.T, te *env) model.User {
	t.Helper()

	settings := model.DefaultOrgSettings()
	settings.IsPlatformOrg = true
	platform := model.Organization{
		Name:         "Platform",
		Slug:         "platform",
		Subscription: model.SubscriptionEnterprise,
		Status:       model.OrgStatusActive,
		Settings:     settings,
	}
	require.NoError(t, te.db.Create(&platform).Error)
	return createUser(t, te.db, "owner@platform.io", "pw123456", model.RolePlatformOwner, platform.ID)
}

func TestDashboardRequiresAuth(t *testing.T) {
	te := setup(t)

	rec := te.request(t, http.MethodGet, "/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = te.request(t, http.MethodGet, "/dashboard/stats", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardOrganizationStats(t *testing.T) {
	te := setup(t)
	org := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	seedSchoolWithStudents(t, te.db, org.ID, 4)
	admin := createUser(t, te.db, "admin@a.org", "pw123456", model.RoleOrgAdmin, org.ID)

	rec := te.request(t, http.MethodGet, "/dashboard/stats", bearerFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(4), body["totalStudents"])
	assert.Equal(t, float64(0), body["totalClasses"])
}

func TestDashboardPinsNonPlatformCallers(t *testing.T) {
	te := setup(t)
	orgA := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	orgB := createOrg(t, te.db, "Org B", model.OrgStatusActive)
	seedSchoolWithStudents(t, te.db, orgA.ID, 2)
	seedSchoolWithStudents(t, te.db, orgB.ID, 9)
	admin := createUser(t, te.db, "admin@a.org", "pw123456", model.RoleOrgAdmin, orgA.ID)

	// Asking for org B's stats still yields org A's numbers
	target := fmt.Sprintf("/dashboard/stats?organizationId=%d", orgB.ID)
	rec := te.request(t, http.MethodGet, target, bearerFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(2), body["totalStudents"])
}

func TestDashboardPlatformStatsForbiddenForOrgAdmin(t *testing.T) {
	te := setup(t)
	org := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	admin := createUser(t, te.db, "admin@a.org", "pw123456", model.RoleOrgAdmin, org.ID)

	rec := te.request(t, http.MethodGet, "/dashboard/stats?isPlatformOwner=true", bearerFor(t, admin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardPlatformStats(t *testing.T) {
	te := setup(t)
	owner := platformOwner(t, te)

	orgA := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	require.NoError(t, te.db.Model(&model.Organization{}).
		Where("id = ?", orgA.ID).
		Update("subscription", model.SubscriptionPremium).Error)
	seedSchoolWithStudents(t, te.db, orgA.ID, 10)

	rec := te.request(t, http.MethodGet, "/dashboard/stats?isPlatformOwner=true", bearerFor(t, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(80), body["totalRevenue"])
	assert.Equal(t, float64(10), body["totalStudents"])
	assert.Equal(t, float64(0), body["totalTeachers"])

	// The platform's own organization is not billed
	orgs := body["organizations"].([]interface{})
	require.Len(t, orgs, 1)
}

func TestOrganizationListRequiresPlatformRole(t *testing.T) {
	te := setup(t)
	org := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	admin := createUser(t, te.db, "admin@a.org", "pw123456", model.RoleOrgAdmin, org.ID)

	rec := te.request(t, http.MethodGet, "/organizations", bearerFor(t, admin), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrganizationList(t *testing.T) {
	te := setup(t)
	owner := platformOwner(t, te)
	org := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	seedSchoolWithStudents(t, te.db, org.ID, 3)

	rec := te.request(t, http.MethodGet, "/organizations", bearerFor(t, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	orgs := body["organizations"].([]interface{})
	require.Len(t, orgs, 2) // platform org included in the admin list

	var found bool
	for _, raw := range orgs {
		entry := raw.(map[string]interface{})
		if entry["name"] == "Org A" {
			found = true
			assert.Equal(t, float64(1), entry["school_count"])
			assert.Equal(t, float64(3), entry["student_count"])
		}
	}
	assert.True(t, found)
}

func TestStudentsOrgPinning(t *testing.T) {
	te := setup(t)
	orgA := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	orgB := createOrg(t, te.db, "Org B", model.OrgStatusActive)
	seedSchoolWithStudents(t, te.db, orgA.ID, 2)
	seedSchoolWithStudents(t, te.db, orgB.ID, 5)
	admin := createUser(t, te.db, "admin@a.org", "pw123456", model.RoleOrgAdmin, orgA.ID)

	// Explicitly requesting org B's students still returns only org A's
	target := fmt.Sprintf("/students?organizationId=%d", orgB.ID)
	rec := te.request(t, http.MethodGet, target, bearerFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	students := body["students"].([]interface{})
	require.Len(t, students, 2)
	for _, raw := range students {
		entry := raw.(map[string]interface{})
		assert.Equal(t, float64(orgA.ID), entry["organization_id"])
	}
}

func TestStudentsPlatformOwnerMayScopeAnywhere(t *testing.T) {
	te := setup(t)
	owner := platformOwner(t, te)
	orgB := createOrg(t, te.db, "Org B", model.OrgStatusActive)
	seedSchoolWithStudents(t, te.db, orgB.ID, 5)

	target := fmt.Sprintf("/students?organizationId=%d", orgB.ID)
	rec := te.request(t, http.MethodGet, target, bearerFor(t, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	students := body["students"].([]interface{})
	assert.Len(t, students, 5)
}

func TestStudentsRejectsMalformedScope(t *testing.T) {
	te := setup(t)
	org := createOrg(t, te.db, "Org A", model.OrgStatusActive)
	admin := createUser(t, te.db, "admin@a.org", "pw123456", model.RoleOrgAdmin, org.ID)

	rec := te.request(t, http.MethodGet, "/students?schoolId=abc", bearerFor(t, admin), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
