package domain

import (
	"strings"
	"time"
)

type ProfileStatus string

const (
	ProfileActive   ProfileStatus = "active"
	ProfileInactive ProfileStatus = "inactive"
)

// SystemDisplayName is shown for an inviter with no name on record.
const SystemDisplayName = "System Administrator"

// UserProfile is one authenticated person. ID is the subject of their access
// token. OrganizationID stays empty until onboarding completes.
type UserProfile struct {
	ID             string
	OrganizationID string
	Role           Role
	FirstName      string
	LastName       string
	Status         ProfileStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName joins the trimmed name parts.
func DisplayName(first, last string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return SystemDisplayName
	}
	return name
}

// Principal is the caller of a guarded operation, built per request from the
// verified token subject and the matching profile.
type Principal struct {
	ProfileID      string
	OrganizationID string
	Role           Role
	Status         ProfileStatus
}

// PrincipalFor builds the Principal for p.
func PrincipalFor(p UserProfile) Principal {
	return Principal{
		ProfileID:      p.ID,
		OrganizationID: p.OrganizationID,
		Role:           p.Role,
		Status:         p.Status,
	}
}

// HasOrganization reports whether onboarding has completed.
func (p Principal) HasOrganization() bool { return p.OrganizationID != "" }

// IsActive reports whether the profile has not been deactivated.
func (p Principal) IsActive() bool { return p.Status == ProfileActive }
