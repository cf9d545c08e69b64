package model

import (
	"time"

	"gorm.io/gorm"
)

// Subject represents a taught subject within a school's curriculum
type Subject struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	SchoolID       uint           `json:"school_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Code           string         `json:"code" gorm:"type:varchar(20)"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	School       School       `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Classes      []Class      `json:"classes,omitempty" gorm:"foreignKey:SubjectID"`
}
