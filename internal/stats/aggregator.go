package stats

import (
	"school-service/internal/model"

	"gorm.io/gorm"
)

// recentGradeLimit caps the grade sample on the organization dashboard
const recentGradeLimit = 10

// OrganizationStats is the per-organization dashboard payload
type OrganizationStats struct {
	TotalStudents    int64         `json:"totalStudents"`
	TotalTeachers    int64         `json:"totalTeachers"`
	TotalClasses     int64         `json:"totalClasses"`
	TotalAssignments int64         `json:"totalAssignments"`
	RecentGrades     []model.Grade `json:"recentGrades"`
}

// OrganizationRollup is one organization's row in the platform view
type OrganizationRollup struct {
	model.Organization
	SchoolCount    int64 `json:"school_count"`
	StudentCount   int64 `json:"student_count"`
	MonthlyRevenue int   `json:"monthly_revenue"`
}

// PlatformStats is the platform-owner billing dashboard payload
type PlatformStats struct {
	Organizations []OrganizationRollup `json:"organizations"`
	TotalRevenue  int                  `json:"totalRevenue"`
	TotalStudents int64                `json:"totalStudents"`
	TotalTeachers int64                `json:"totalTeachers"`
}

// Aggregator computes role-scoped dashboard statistics. Both aggregations
// are plain reads of current store state: no caching, no snapshots beyond
// what a single query provides.
type Aggregator struct {
	db *gorm.DB
}

// New creates an aggregator on the given database handle
func New(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// ForOrganization computes the dashboard counts and recent-grade sample for
// one organization. With organizationID zero the counts are platform-wide
// (legacy behavior of the unscoped dashboard).
func (a *Aggregator) ForOrganization(organizationID uint) (*OrganizationStats, error) {
	scoped := func(db *gorm.DB) *gorm.DB {
		if organizationID != 0 {
			return db.Where("organization_id = ?", organizationID)
		}
		return db
	}

	out := &OrganizationStats{}

	if err := scoped(a.db.Model(&model.Student{})).Count(&out.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := scoped(a.db.Model(&model.User{})).Where("role = ?", model.RoleTeacher).Count(&out.TotalTeachers).Error; err != nil {
		return nil, err
	}
	if err := scoped(a.db.Model(&model.Class{})).Count(&out.TotalClasses).Error; err != nil {
		return nil, err
	}
	if err := scoped(a.db.Model(&model.Assignment{})).Count(&out.TotalAssignments).Error; err != nil {
		return nil, err
	}

	err := scoped(a.db.Model(&model.Grade{})).
		Preload("Student").
		Preload("Assignment").
		Preload("Class.Subject").
		Order("graded_at DESC").
		Limit(recentGradeLimit).
		Find(&out.RecentGrades).Error
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ForPlatform rolls up every customer organization for the billing view.
// Organizations flagged isPlatformOrg are excluded. Monthly revenue is
// studentCount times the subscription tier's per-student rate.
//
// TotalTeachers is reported as zero here; the platform view never computed
// it and consumers treat the field as informational only.
func (a *Aggregator) ForPlatform() (*PlatformStats, error) {
	var orgs []model.Organization
	if err := a.db.Find(&orgs).Error; err != nil {
		return nil, err
	}

	out := &PlatformStats{Organizations: make([]OrganizationRollup, 0, len(orgs))}

	for _, org := range orgs {
		if org.Settings.IsPlatformOrg {
			continue
		}

		var schoolCount, studentCount int64
		if err := a.db.Model(&model.School{}).Where("organization_id = ?", org.ID).Count(&schoolCount).Error; err != nil {
			return nil, err
		}
		if err := a.db.Model(&model.Student{}).Where("organization_id = ?", org.ID).Count(&studentCount).Error; err != nil {
			return nil, err
		}

		revenue := int(studentCount) * org.Subscription.MonthlyRate()

		out.Organizations = append(out.Organizations, OrganizationRollup{
			Organization:   org,
			SchoolCount:    schoolCount,
			StudentCount:   studentCount,
			MonthlyRevenue: revenue,
		})
		out.TotalRevenue += revenue
		out.TotalStudents += studentCount
	}

	return out, nil
}
