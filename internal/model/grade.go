package model

import (
	"time"

	"gorm.io/gorm"
)

// Grade represents a score a student received on an assignment
type Grade struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	StudentID      uint           `json:"student_id" gorm:"index;not null"`
	AssignmentID   uint           `json:"assignment_id" gorm:"index;not null"`
	ClassID        uint           `json:"class_id" gorm:"index;not null"`
	TeacherID      uint           `json:"teacher_id" gorm:"index;not null"`
	Score          float64        `json:"score"`
	Letter         string         `json:"letter,omitempty" gorm:"type:varchar(5)"`
	GradedAt       time.Time      `json:"graded_at" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Student    Student    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Assignment Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`
	Class      Class      `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Teacher    User       `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}
