package model

import (
	"time"

	"gorm.io/gorm"
)

// School represents a school within an organization
type School struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug           string         `json:"slug" gorm:"type:varchar(100);uniqueIndex"`
	Address        string         `json:"address" gorm:"type:varchar(255)"`
	Phone          string         `json:"phone" gorm:"type:varchar(50)"`
	Email          string         `json:"email" gorm:"type:varchar(100)"`
	Website        string         `json:"website,omitempty" gorm:"type:varchar(100)"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Campuses     []Campus     `json:"campuses,omitempty" gorm:"foreignKey:SchoolID"`
	Students     []Student    `json:"students,omitempty" gorm:"foreignKey:SchoolID"`
}
