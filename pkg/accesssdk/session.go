package accesssdk

import (
	"context"
	"net/http"
	"net/url"
)

// EnsureProfile creates the caller's profile on first sign-in, or returns
// the existing one.
func (s *Session) EnsureProfile(ctx context.Context, req EnsureProfileRequest) (*Profile, error) {
	var resp ProfileResponse
	if err := s.do(ctx, http.MethodPost, "/v1/profiles/me", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// GetProfile returns the caller's profile with its effective permissions.
func (s *Session) GetProfile(ctx context.Context) (*Profile, error) {
	var resp ProfileResponse
	if err := s.do(ctx, http.MethodGet, "/v1/profiles/me", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

func (s *Session) ChangeRole(ctx context.Context, profileID, role string) (*Profile, error) {
	var resp ProfileResponse
	path := "/v1/profiles/" + url.PathEscape(profileID) + "/role"
	if err := s.do(ctx, http.MethodPatch, path, ChangeRoleRequest{Role: role}, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

func (s *Session) DeactivateProfile(ctx context.Context, profileID string) (*Profile, error) {
	var resp ProfileResponse
	path := "/v1/profiles/" + url.PathEscape(profileID) + "/deactivate"
	if err := s.do(ctx, http.MethodPost, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// CreateOrganization makes the caller the owner of a new organization.
func (s *Session) CreateOrganization(ctx context.Context, name string) (*Organization, error) {
	var resp OrganizationResponse
	err := s.do(ctx, http.MethodPost, "/v1/organizations", CreateOrganizationRequest{Name: name}, &resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &resp.Organization, nil
}

func (s *Session) CreateRegion(ctx context.Context, name string) (*Region, error) {
	var resp RegionResponse
	if err := s.do(ctx, http.MethodPost, "/v1/regions", CreateRegionRequest{Name: name}, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp.Region, nil
}

func (s *Session) ListRegions(ctx context.Context) ([]Region, error) {
	var resp ListRegionsResponse
	if err := s.do(ctx, http.MethodGet, "/v1/regions", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Regions, nil
}

// CreateInvitation returns the invitation and its one-time token.
func (s *Session) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*CreateInvitationResponse, error) {
	var resp CreateInvitationResponse
	if err := s.do(ctx, http.MethodPost, "/v1/invitations", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListInvitations lists the organization's invitations, optionally
// filtered by status.
func (s *Session) ListInvitations(ctx context.Context, status string) ([]Invitation, error) {
	path := "/v1/invitations"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var resp ListInvitationsResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.Invitations, nil
}

// AcceptInvitation joins the invitation's organization. The token's email
// claim must match the invited address.
func (s *Session) AcceptInvitation(ctx context.Context, token string) (*Profile, error) {
	var resp ProfileResponse
	err := s.do(ctx, http.MethodPost, "/v1/invitations/accept", AcceptInvitationRequest{InvitationToken: token}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

func (s *Session) RevokeInvitation(ctx context.Context, invitationID string) (*Invitation, error) {
	var resp InvitationResponse
	path := "/v1/invitations/" + url.PathEscape(invitationID) + "/revoke"
	if err := s.do(ctx, http.MethodPost, path, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp.Invitation, nil
}
