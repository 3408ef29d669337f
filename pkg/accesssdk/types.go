package accesssdk

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Code    string       `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError names a request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ============================================================================
// Invitations
// ============================================================================

type ValidateInvitationRequest struct {
	InvitationToken string `json:"invitation_token"`
}

// InvitationSummary is the public view of a pending invitation.
type InvitationSummary struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	OrganizationName string    `json:"organization_name"`
	OrganizationID   string    `json:"organization_id"`
	InvitedByName    string    `json:"invited_by_name"`
	ExpiresAt        time.Time `json:"expires_at"`
	RegionName       *string   `json:"region_name,omitempty"`
}

type ValidateInvitationResponse struct {
	Success    bool               `json:"success"`
	Invitation *InvitationSummary `json:"invitation"`
}

type CreateInvitationRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Role     string `json:"role" validate:"required,role"`
	RegionID string `json:"region_id,omitempty" validate:"omitempty,ulid"`

	// TTLHours defaults to the server setting when zero.
	TTLHours int `json:"ttl_hours,omitempty" validate:"gte=0,lte=720"`
}

// Invitation is the administrator view of an invitation.
type Invitation struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	RegionID   string    `json:"region_id,omitempty"`
	InvitedBy  string    `json:"invited_by"`
	AcceptedBy string    `json:"accepted_by,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateInvitationResponse struct {
	Success    bool       `json:"success"`
	Invitation Invitation `json:"invitation"`

	// Token is shown once. Only its fingerprint is stored.
	Token string `json:"invitation_token"`
}

type InvitationResponse struct {
	Success    bool       `json:"success"`
	Invitation Invitation `json:"invitation"`
}

type ListInvitationsResponse struct {
	Success     bool         `json:"success"`
	Invitations []Invitation `json:"invitations"`
}

type AcceptInvitationRequest struct {
	InvitationToken string `json:"invitation_token" validate:"required"`
}

// ============================================================================
// Profiles
// ============================================================================

type EnsureProfileRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"max=100"`
	LastName  string `json:"last_name,omitempty" validate:"max=100"`
}

type Profile struct {
	ID             string   `json:"id"`
	OrganizationID string   `json:"organization_id,omitempty"`
	Role           string   `json:"role"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Status         string   `json:"status"`
	Permissions    []string `json:"permissions"`
}

type ProfileResponse struct {
	Success bool    `json:"success"`
	Profile Profile `json:"profile"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// ============================================================================
// Organizations
// ============================================================================

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type OrganizationResponse struct {
	Success      bool         `json:"success"`
	Organization Organization `json:"organization"`
}

type CreateRegionRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type Region struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type RegionResponse struct {
	Success bool   `json:"success"`
	Region  Region `json:"region"`
}

type ListRegionsResponse struct {
	Success bool     `json:"success"`
	Regions []Region `json:"regions"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}
