package http

import (
	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/pkg/accesssdk"
)

func summaryView(s service.InvitationSummary) *accesssdk.InvitationSummary {
	return &accesssdk.InvitationSummary{
		ID:               s.ID,
		Email:            s.Email,
		Role:             string(s.Role),
		OrganizationName: s.OrganizationName,
		OrganizationID:   s.OrganizationID,
		InvitedByName:    s.InvitedByName,
		ExpiresAt:        s.ExpiresAt,
		RegionName:       s.RegionName,
	}
}

func invitationView(inv domain.Invitation) accesssdk.Invitation {
	return accesssdk.Invitation{
		ID:         inv.ID,
		Email:      inv.Email,
		Role:       string(inv.Role),
		Status:     string(inv.Status),
		RegionID:   inv.RegionID,
		InvitedBy:  inv.InvitedBy,
		AcceptedBy: inv.AcceptedBy,
		ExpiresAt:  inv.ExpiresAt,
		CreatedAt:  inv.CreatedAt,
	}
}

func profileView(p domain.UserProfile) accesssdk.Profile {
	perms := domain.Permissions(p.Role)
	// Without an organization the role grants nothing yet.
	if p.OrganizationID == "" || p.Status != domain.ProfileActive {
		perms = nil
	}
	out := make([]string, len(perms))
	for i, perm := range perms {
		out[i] = string(perm)
	}
	return accesssdk.Profile{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Role:           string(p.Role),
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Status:         string(p.Status),
		Permissions:    out,
	}
}

func organizationView(o domain.Organization) accesssdk.Organization {
	return accesssdk.Organization{ID: o.ID, Name: o.Name, CreatedAt: o.CreatedAt}
}

func regionView(r domain.Region) accesssdk.Region {
	return accesssdk.Region{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}
