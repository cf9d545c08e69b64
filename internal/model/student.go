package model

import (
	"time"

	"gorm.io/gorm"
)

// Student represents an enrolled student. Students always belong to an
// organization and a school; the campus is optional.
type Student struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	SchoolID       uint           `json:"school_id" gorm:"index;not null"`
	CampusID       *uint          `json:"campus_id,omitempty" gorm:"index"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Email          string         `json:"email,omitempty" gorm:"type:varchar(100)"`
	StudentNumber  string         `json:"student_number" gorm:"type:varchar(50);index"`
	GradeLevel     string         `json:"grade_level" gorm:"type:varchar(20)"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization     Organization   `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	School           School         `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Campus           *Campus        `json:"campus,omitempty" gorm:"foreignKey:CampusID"`
	ClassEnrollments []ClassStudent `json:"class_enrollments,omitempty" gorm:"foreignKey:StudentID"`
	Grades           []Grade        `json:"grades,omitempty" gorm:"foreignKey:StudentID"`
}
