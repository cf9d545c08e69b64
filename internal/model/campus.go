package model

import (
	"time"

	"gorm.io/gorm"
)

// Campus represents a physical campus of a school
type Campus struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	SchoolID       uint           `json:"school_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug           string         `json:"slug" gorm:"type:varchar(100)"`
	Address        string         `json:"address" gorm:"type:varchar(255)"`
	Phone          string         `json:"phone" gorm:"type:varchar(50)"`
	Capacity       int            `json:"capacity"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	School       School       `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Students     []Student    `json:"students,omitempty" gorm:"foreignKey:CampusID"`
	Classes      []Class      `json:"classes,omitempty" gorm:"foreignKey:CampusID"`
}
