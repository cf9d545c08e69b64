package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles. A user has exactly one role within their organization.
const (
	RolePlatformOwner   = "PLATFORM_OWNER"
	RoleOrgAdmin        = "ORG_ADMIN"
	RoleSchoolPrincipal = "SCHOOL_PRINCIPAL"
	RoleTeacher         = "TEACHER"
	RoleStudent         = "STUDENT"
	RoleParent          = "PARENT"
)

// User represents a staff or platform account stored in the database.
// Users are created via signup completion (invited org admins) or by
// seed/admin provisioning (all other roles), never both paths for the
// same email.
type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(100)"`
	Email          string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password       string         `json:"-" gorm:"type:varchar(255)"`
	Role           string         `json:"role" gorm:"type:varchar(50);index;not null"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// IsPlatformOwner reports whether the user may access cross-tenant views
func (u *User) IsPlatformOwner() bool {
	return u.Role == RolePlatformOwner
}
