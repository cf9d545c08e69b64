package model

import (
	"time"

	"gorm.io/gorm"
)

// Assignment represents graded work given to a class
type Assignment struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	SchoolID       uint           `json:"school_id" gorm:"index;not null"`
	ClassID        uint           `json:"class_id" gorm:"index;not null"`
	TeacherID      uint           `json:"teacher_id" gorm:"index;not null"`
	Title          string         `json:"title" gorm:"type:varchar(150);not null"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	TotalPoints    float64        `json:"total_points"`
	DueDate        *time.Time     `json:"due_date,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	School       School       `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Class        Class        `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Teacher      User         `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Grades       []Grade      `json:"grades,omitempty" gorm:"foreignKey:AssignmentID"`
}
