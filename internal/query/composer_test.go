package query

import (
	"testing"
	"time"

	"school-service/internal/model"
	"school-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	org     model.Organization
	school  model.School
	campus  model.Campus
	teacher model.User
	class   model.Class
}

// seedOrg provisions an active organization with one school, one campus,
// one teacher, one class and n students enrolled in the class
func seedOrg(t *testing.T, db *gorm.DB, name string, tier model.SubscriptionTier, n int) fixture {
	t.Helper()

	org := model.Organization{
		Name:         name,
		Slug:         model.Slugify(name),
		Subscription: tier,
		Status:       model.OrgStatusActive,
		Settings:     model.DefaultOrgSettings(),
	}
	require.NoError(t, db.Create(&org).Error)

	school := model.School{OrganizationID: org.ID, Name: name + " School", Slug: model.Slugify(name + " School")}
	require.NoError(t, db.Create(&school).Error)

	campus := model.Campus{OrganizationID: org.ID, SchoolID: school.ID, Name: "Main"}
	require.NoError(t, db.Create(&campus).Error)

	teacher := model.User{
		Name:           "Teacher " + name,
		Email:          "teacher@" + model.Slugify(name) + ".edu",
		Password:       "x",
		Role:           model.RoleTeacher,
		OrganizationID: org.ID,
	}
	require.NoError(t, db.Create(&teacher).Error)

	subject := model.Subject{OrganizationID: org.ID, SchoolID: school.ID, Name: "Mathematics", Code: "MATH"}
	require.NoError(t, db.Create(&subject).Error)

	class := model.Class{
		OrganizationID: org.ID,
		SchoolID:       school.ID,
		CampusID:       &campus.ID,
		SubjectID:      subject.ID,
		TeacherID:      teacher.ID,
		Name:           "Math A",
	}
	require.NoError(t, db.Create(&class).Error)

	for i := 0; i < n; i++ {
		student := model.Student{
			OrganizationID: org.ID,
			SchoolID:       school.ID,
			CampusID:       &campus.ID,
			Name:           "Student",
		}
		require.NoError(t, db.Create(&student).Error)
		enrollment := model.ClassStudent{
			OrganizationID: org.ID,
			ClassID:        class.ID,
			StudentID:      student.ID,
			EnrolledAt:     time.Now(),
		}
		require.NoError(t, db.Create(&enrollment).Error)
	}

	return fixture{org: org, school: school, campus: campus, teacher: teacher, class: class}
}

func TestStudentsTenantIsolation(t *testing.T) {
	db := testutil.OpenDB(t)
	a := seedOrg(t, db, "Org A", model.SubscriptionBasic, 3)
	seedOrg(t, db, "Org B", model.SubscriptionPremium, 5)

	composer := New(db)

	students, err := composer.Students(Filter{OrganizationID: a.org.ID})
	require.NoError(t, err)
	require.Len(t, students, 3)
	for _, s := range students {
		assert.Equal(t, a.org.ID, s.OrganizationID)
	}
}

func TestStudentsUnfilteredReturnsAll(t *testing.T) {
	db := testutil.OpenDB(t)
	seedOrg(t, db, "Org A", model.SubscriptionBasic, 3)
	seedOrg(t, db, "Org B", model.SubscriptionPremium, 5)

	composer := New(db)

	students, err := composer.Students(Filter{})
	require.NoError(t, err)
	assert.Len(t, students, 8)
}

func TestStudentsSchoolNarrowing(t *testing.T) {
	db := testutil.OpenDB(t)
	a := seedOrg(t, db, "Org A", model.SubscriptionBasic, 3)

	// Second school in the same org with its own students
	other := model.School{OrganizationID: a.org.ID, Name: "Annex", Slug: "annex"}
	require.NoError(t, db.Create(&other).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&model.Student{
			OrganizationID: a.org.ID,
			SchoolID:       other.ID,
			Name:           "Annex Student",
		}).Error)
	}

	composer := New(db)

	students, err := composer.Students(Filter{OrganizationID: a.org.ID, SchoolID: other.ID})
	require.NoError(t, err)
	require.Len(t, students, 2)
	for _, s := range students {
		assert.Equal(t, other.ID, s.SchoolID)
	}

	all, err := composer.Students(Filter{OrganizationID: a.org.ID})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStudentsPreloadRelations(t *testing.T) {
	db := testutil.OpenDB(t)
	a := seedOrg(t, db, "Org A", model.SubscriptionBasic, 1)

	composer := New(db)

	students, err := composer.Students(Filter{OrganizationID: a.org.ID})
	require.NoError(t, err)
	require.Len(t, students, 1)

	s := students[0]
	assert.Equal(t, a.org.Name, s.Organization.Name)
	assert.Equal(t, a.school.Name, s.School.Name)
	require.Len(t, s.ClassEnrollments, 1)
	assert.Equal(t, a.class.Name, s.ClassEnrollments[0].Class.Name)
	assert.Equal(t, "Mathematics", s.ClassEnrollments[0].Class.Subject.Name)
	assert.Equal(t, a.teacher.Name, s.ClassEnrollments[0].Class.Teacher.Name)
}

func TestClassesByTeacher(t *testing.T) {
	db := testutil.OpenDB(t)
	a := seedOrg(t, db, "Org A", model.SubscriptionBasic, 2)
	b := seedOrg(t, db, "Org B", model.SubscriptionBasic, 2)

	composer := New(db)

	classes, err := composer.Classes(Filter{OrganizationID: a.org.ID, TeacherID: a.teacher.ID})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, a.class.ID, classes[0].ID)
	assert.Len(t, classes[0].StudentEnrollments, 2)

	// A filter mixing org A with org B's teacher matches nothing
	classes, err = composer.Classes(Filter{OrganizationID: a.org.ID, TeacherID: b.teacher.ID})
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestCampusesBySchool(t *testing.T) {
	db := testutil.OpenDB(t)
	a := seedOrg(t, db, "Org A", model.SubscriptionBasic, 1)
	seedOrg(t, db, "Org B", model.SubscriptionBasic, 1)

	composer := New(db)

	campuses, err := composer.Campuses(Filter{OrganizationID: a.org.ID, SchoolID: a.school.ID})
	require.NoError(t, err)
	require.Len(t, campuses, 1)
	assert.Equal(t, a.campus.ID, campuses[0].ID)
	assert.Len(t, campuses[0].Students, 1)
}

func TestOrganizationsWithCounts(t *testing.T) {
	db := testutil.OpenDB(t)
	seedOrg(t, db, "Org A", model.SubscriptionBasic, 3)
	seedOrg(t, db, "Org B", model.SubscriptionPremium, 5)

	composer := New(db)

	overviews, err := composer.Organizations()
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	byName := map[string]OrganizationOverview{}
	for _, o := range overviews {
		byName[o.Name] = o
	}
	assert.Equal(t, int64(1), byName["Org A"].SchoolCount)
	assert.Equal(t, int64(3), byName["Org A"].StudentCount)
	assert.Equal(t, int64(5), byName["Org B"].StudentCount)
	require.Len(t, byName["Org A"].Schools, 1)
	assert.Len(t, byName["Org A"].Schools[0].Students, 3)
}
