package model

import (
	"time"
)

// Invitation is the audit record of an organization invitation. The token
// itself is a bearer credential; this row tracks who was invited, when, and
// when the invitation was redeemed. The authoritative pending/active state
// lives on Organization.Status.
type Invitation struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	OrganizationID uint       `json:"organization_id" gorm:"index;not null"`
	Email          string     `json:"email" gorm:"type:varchar(100);index;not null"`
	Token          string     `json:"-" gorm:"type:text"`
	InvitedAt      time.Time  `json:"invited_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}
