package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// SubscriptionTier is the billing plan an organization subscribes to
type SubscriptionTier string

const (
	SubscriptionBasic      SubscriptionTier = "BASIC"
	SubscriptionPremium    SubscriptionTier = "PREMIUM"
	SubscriptionEnterprise SubscriptionTier = "ENTERPRISE"
)

// MonthlyRate returns the monthly price per student in currency units.
// Unrecognized tiers contribute nothing to revenue.
func (t SubscriptionTier) MonthlyRate() int {
	switch t {
	case SubscriptionBasic:
		return 5
	case SubscriptionPremium:
		return 8
	case SubscriptionEnterprise:
		return 12
	default:
		return 0
	}
}

// Valid reports whether the tier is one of the known plans
func (t SubscriptionTier) Valid() bool {
	switch t {
	case SubscriptionBasic, SubscriptionPremium, SubscriptionEnterprise:
		return true
	}
	return false
}

// OrganizationStatus tracks the invitation lifecycle of an organization.
// An organization is created PENDING by an invitation and becomes ACTIVE
// exactly once, when the invitation is redeemed.
type OrganizationStatus string

const (
	OrgStatusPending   OrganizationStatus = "PENDING"
	OrgStatusActive    OrganizationStatus = "ACTIVE"
	OrgStatusSuspended OrganizationStatus = "SUSPENDED"
)

// OrgSettings is the per-organization settings bag. Additive only; new keys
// get a zero value on old rows instead of a schema migration.
type OrgSettings struct {
	Timezone      string `json:"timezone"`
	Currency      string `json:"currency"`
	DateFormat    string `json:"dateFormat"`
	Language      string `json:"language"`
	IsPlatformOrg bool   `json:"isPlatformOrg,omitempty"`
}

// DefaultOrgSettings returns the settings applied to newly created organizations
func DefaultOrgSettings() OrgSettings {
	return OrgSettings{
		Timezone:   "UTC",
		Currency:   "USD",
		DateFormat: "MM/DD/YYYY",
		Language:   "en",
	}
}

// Organization represents a school or district tenant.
// This is the root of the multi-tenant hierarchy: every other entity carries
// its organization's ID and is exclusively owned by it.
type Organization struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	Name         string             `json:"name" gorm:"type:varchar(100);uniqueIndex"`
	Slug         string             `json:"slug" gorm:"type:varchar(100);uniqueIndex"`
	Subscription SubscriptionTier   `json:"subscription" gorm:"type:varchar(20);default:'BASIC'"`
	Status       OrganizationStatus `json:"status" gorm:"type:varchar(20);index;default:'PENDING'"`
	Settings     OrgSettings        `json:"settings" gorm:"serializer:json"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `json:"-" gorm:"index"`

	// Relations
	Schools  []School  `json:"schools,omitempty" gorm:"foreignKey:OrganizationID"`
	Students []Student `json:"students,omitempty" gorm:"foreignKey:OrganizationID"`
}

// Slugify derives the URL slug for an organization or school name:
// lowercase, every non-alphanumeric character replaced with '-'.
// Deterministic and pure; runs of punctuation are not collapsed.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
