package query

import (
	"school-service/internal/model"

	"gorm.io/gorm"
)

// Filter identifies the slice of the tenant hierarchy a read is scoped to.
// Zero fields impose no constraint; present fields constrain conjunctively.
// Each entry point applies only the fields that are meaningful for its
// entity, so a query scoped to one organization can never return rows owned
// by another.
type Filter struct {
	OrganizationID uint
	SchoolID       uint
	CampusID       uint
	ClassID        uint
	TeacherID      uint
	StudentID      uint
}

// Composer builds tenant-scoped read queries. All reads are side-effect-free
// and safe to run concurrently.
type Composer struct {
	db *gorm.DB
}

// New creates a composer on the given database handle
func New(db *gorm.DB) *Composer {
	return &Composer{db: db}
}

func (f Filter) byOrganization(db *gorm.DB) *gorm.DB {
	if f.OrganizationID != 0 {
		db = db.Where("organization_id = ?", f.OrganizationID)
	}
	return db
}

func (f Filter) bySchool(db *gorm.DB) *gorm.DB {
	if f.SchoolID != 0 {
		db = db.Where("school_id = ?", f.SchoolID)
	}
	return db
}

func (f Filter) byCampus(db *gorm.DB) *gorm.DB {
	if f.CampusID != 0 {
		db = db.Where("campus_id = ?", f.CampusID)
	}
	return db
}

func (f Filter) byClass(db *gorm.DB) *gorm.DB {
	if f.ClassID != 0 {
		db = db.Where("class_id = ?", f.ClassID)
	}
	return db
}

func (f Filter) byTeacher(db *gorm.DB) *gorm.DB {
	if f.TeacherID != 0 {
		db = db.Where("teacher_id = ?", f.TeacherID)
	}
	return db
}

func (f Filter) byStudent(db *gorm.DB) *gorm.DB {
	if f.StudentID != 0 {
		db = db.Where("student_id = ?", f.StudentID)
	}
	return db
}

// Students returns students within the filter scope together with their
// enrollments (class, subject, teacher) and grades (assignment, class)
func (c *Composer) Students(f Filter) ([]model.Student, error) {
	db := f.byCampus(f.bySchool(f.byOrganization(c.db.Model(&model.Student{}))))

	var students []model.Student
	err := db.
		Preload("Organization").
		Preload("School").
		Preload("Campus").
		Preload("ClassEnrollments.Class.Subject").
		Preload("ClassEnrollments.Class.Teacher").
		Preload("Grades.Assignment").
		Preload("Grades.Class").
		Find(&students).Error
	return students, err
}

// Schools returns schools within the filter scope with their campuses and students
func (c *Composer) Schools(f Filter) ([]model.School, error) {
	db := f.byOrganization(c.db.Model(&model.School{}))

	var schools []model.School
	err := db.
		Preload("Organization").
		Preload("Campuses").
		Preload("Students").
		Find(&schools).Error
	return schools, err
}

// Campuses returns campuses within the filter scope with their students and classes
func (c *Composer) Campuses(f Filter) ([]model.Campus, error) {
	db := f.bySchool(f.byOrganization(c.db.Model(&model.Campus{})))

	var campuses []model.Campus
	err := db.
		Preload("Organization").
		Preload("School").
		Preload("Students").
		Preload("Classes").
		Find(&campuses).Error
	return campuses, err
}

// Classes returns classes within the filter scope with subject, teacher,
// enrolled students and assignments
func (c *Composer) Classes(f Filter) ([]model.Class, error) {
	db := f.byTeacher(f.byCampus(f.bySchool(f.byOrganization(c.db.Model(&model.Class{})))))

	var classes []model.Class
	err := db.
		Preload("Organization").
		Preload("School").
		Preload("Campus").
		Preload("Subject").
		Preload("Teacher").
		Preload("StudentEnrollments.Student").
		Preload("Assignments").
		Find(&classes).Error
	return classes, err
}

// Subjects returns subjects within the filter scope with their classes
func (c *Composer) Subjects(f Filter) ([]model.Subject, error) {
	db := f.bySchool(f.byOrganization(c.db.Model(&model.Subject{})))

	var subjects []model.Subject
	err := db.
		Preload("Organization").
		Preload("School").
		Preload("Classes.Teacher").
		Find(&subjects).Error
	return subjects, err
}

// Assignments returns assignments within the filter scope with class,
// teacher and grades
func (c *Composer) Assignments(f Filter) ([]model.Assignment, error) {
	db := f.byTeacher(f.byClass(f.bySchool(f.byOrganization(c.db.Model(&model.Assignment{})))))

	var assignments []model.Assignment
	err := db.
		Preload("Organization").
		Preload("School").
		Preload("Class.Subject").
		Preload("Teacher").
		Preload("Grades.Student").
		Find(&assignments).Error
	return assignments, err
}

// Grades returns grades within the filter scope with student, assignment,
// class and teacher
func (c *Composer) Grades(f Filter) ([]model.Grade, error) {
	db := f.byClass(f.byStudent(f.byOrganization(c.db.Model(&model.Grade{}))))

	var grades []model.Grade
	err := db.
		Preload("Student").
		Preload("Assignment").
		Preload("Class.Subject").
		Preload("Teacher").
		Find(&grades).Error
	return grades, err
}

// OrganizationOverview is an organization together with its hierarchy counts
type OrganizationOverview struct {
	model.Organization
	SchoolCount  int64 `json:"school_count"`
	StudentCount int64 `json:"student_count"`
}

// Organizations returns every organization with its schools (students
// preloaded) and school/student counts
func (c *Composer) Organizations() ([]OrganizationOverview, error) {
	var orgs []model.Organization
	if err := c.db.
		Preload("Schools.Students").
		Find(&orgs).Error; err != nil {
		return nil, err
	}

	overviews := make([]OrganizationOverview, 0, len(orgs))
	for _, org := range orgs {
		var schoolCount, studentCount int64
		if err := c.db.Model(&model.School{}).Where("organization_id = ?", org.ID).Count(&schoolCount).Error; err != nil {
			return nil, err
		}
		if err := c.db.Model(&model.Student{}).Where("organization_id = ?", org.ID).Count(&studentCount).Error; err != nil {
			return nil, err
		}
		overviews = append(overviews, OrganizationOverview{
			Organization: org,
			SchoolCount:  schoolCount,
			StudentCount: studentCount,
		})
	}
	return overviews, nil
}
