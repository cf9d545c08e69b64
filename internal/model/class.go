package model

import (
	"time"

	"gorm.io/gorm"
)

// Class represents a taught class: a subject, a teacher and a set of
// enrolled students
type Class struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	SchoolID       uint           `json:"school_id" gorm:"index;not null"`
	CampusID       *uint          `json:"campus_id,omitempty" gorm:"index"`
	SubjectID      uint           `json:"subject_id" gorm:"index;not null"`
	TeacherID      uint           `json:"teacher_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Section        string         `json:"section,omitempty" gorm:"type:varchar(20)"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization       Organization   `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	School             School         `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Campus             *Campus        `json:"campus,omitempty" gorm:"foreignKey:CampusID"`
	Subject            Subject        `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Teacher            User           `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	StudentEnrollments []ClassStudent `json:"student_enrollments,omitempty" gorm:"foreignKey:ClassID"`
	Assignments        []Assignment   `json:"assignments,omitempty" gorm:"foreignKey:ClassID"`
}

// ClassStudent is the enrollment of a student in a class
type ClassStudent struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrganizationID uint      `json:"organization_id" gorm:"index;not null"`
	ClassID        uint      `json:"class_id" gorm:"index;not null"`
	StudentID      uint      `json:"student_id" gorm:"index;not null"`
	EnrolledAt     time.Time `json:"enrolled_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Class   Class   `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}
