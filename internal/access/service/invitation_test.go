package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
)

func TestValidateInvitation_Valid(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "abc123", nil)

	got, err := e.invitations.ValidateInvitation(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
	require.Equal(t, "Acme Water", got.OrganizationName)
	require.Equal(t, e.org.ID, got.OrganizationID)
	require.Equal(t, domain.RoleManager, got.Role)
	require.Equal(t, "new.hire@acme.example", got.Email)
	require.Equal(t, "Grace Hopper", got.InvitedByName)
	require.Nil(t, got.RegionName)
	require.True(t, got.ExpiresAt.Equal(inv.ExpiresAt))

	// Validation is read-only for live invitations.
	stored, err := e.st.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, stored.Status)
	require.True(t, stored.UpdatedAt.Equal(inv.UpdatedAt))
}

func TestValidateInvitation_RegionAndSystemInviter(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	nameless := e.addProfile(t, domain.RoleAdmin, e.org.ID, "  ", "")
	e.addInvitation(t, "regional", func(inv *domain.Invitation) {
		inv.RegionID = e.region.ID
		inv.InvitedBy = nameless.ID
	})

	got, err := e.invitations.ValidateInvitation(ctx, "regional")
	require.NoError(t, err)
	require.NotNil(t, got.RegionName)
	require.Equal(t, "North Catchment", *got.RegionName)
	require.Equal(t, domain.SystemDisplayName, got.InvitedByName)
}

func TestValidateInvitation_ExpiresOnceThenResolved(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "abc123", func(inv *domain.Invitation) {
		inv.CreatedAt = e.now.Add(-2 * time.Hour)
		inv.ExpiresAt = e.now.Add(-time.Hour)
	})

	_, err := e.invitations.ValidateInvitation(ctx, "abc123")
	require.ErrorIs(t, err, domain.ErrInvitationExpired)
	require.Equal(t, domain.InvitationExpired, e.status(t, inv.ID))

	_, err = e.invitations.ValidateInvitation(ctx, "abc123")
	var resolved *service.AlreadyResolvedError
	require.ErrorAs(t, err, &resolved)
	require.Equal(t, domain.InvitationExpired, resolved.Status)
	require.Equal(t, "expired", resolved.Reason())
	require.Equal(t, domain.InvitationExpired, e.status(t, inv.ID))
}

func TestValidateInvitation_ExpiryBoundaryIsInclusive(t *testing.T) {
	e := newEnv(t)
	e.addInvitation(t, "edge", func(inv *domain.Invitation) { inv.ExpiresAt = e.now })

	_, err := e.invitations.ValidateInvitation(context.Background(), "edge")
	require.ErrorIs(t, err, domain.ErrInvitationExpired)
}

func TestValidateInvitation_NotFound(t *testing.T) {
	e := newEnv(t)
	e.addInvitation(t, "abc123", nil)

	_, err := e.invitations.ValidateInvitation(context.Background(), "zzz")
	require.ErrorIs(t, err, service.ErrInvitationNotFound)
}

func TestValidateInvitation_TerminalReasons(t *testing.T) {
	tests := []struct {
		status domain.InvitationStatus
		reason string
	}{
		{domain.InvitationAccepted, "already accepted"},
		{domain.InvitationExpired, "expired"},
		{domain.InvitationRevoked, "revoked"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := newEnv(t)
			inv := e.addInvitation(t, "tok", func(inv *domain.Invitation) { inv.Status = tt.status })

			_, err := e.invitations.ValidateInvitation(context.Background(), "tok")
			var resolved *service.AlreadyResolvedError
			require.ErrorAs(t, err, &resolved)
			require.Equal(t, tt.reason, resolved.Reason())

			// Terminal records never move, even past their deadline.
			e.now = e.now.Add(48 * time.Hour)
			_, err = e.invitations.ValidateInvitation(context.Background(), "tok")
			require.ErrorAs(t, err, &resolved)
			require.Equal(t, tt.status, e.status(t, inv.ID))
		})
	}
}

func TestValidateInvitation_StoreFailure(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.st.Close())

	_, err := e.invitations.ValidateInvitation(context.Background(), "abc123")
	var sf *service.StoreFailureError
	require.ErrorAs(t, err, &sf)
	require.Equal(t, "get invitation", sf.Op)
	require.NotNil(t, errors.Unwrap(err))
}

func TestCreateInvitation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	created, err := e.invitations.CreateInvitation(ctx, principal(e.admin), service.CreateInvitationInput{
		Email:    "  Field.Tech@Acme.Example ",
		Role:     domain.RoleOperator,
		RegionID: e.region.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)
	require.NotEqual(t, created.Token, created.Invitation.TokenHash)
	require.Equal(t, "field.tech@acme.example", created.Invitation.Email)
	require.Equal(t, e.now.Add(service.DefaultInvitationTTL), created.Invitation.ExpiresAt)

	got, err := e.invitations.ValidateInvitation(ctx, created.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleOperator, got.Role)
	require.Equal(t, "Ada Lovelace", got.InvitedByName)
	require.Equal(t, "North Catchment", *got.RegionName)
}

func TestCreateInvitation_Rejections(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	other := domain.Organization{ID: "01J0000000000000000000OTHR", Name: "Other", CreatedAt: e.now}
	require.NoError(t, e.st.Organizations().CreateOrganization(ctx, other))
	foreignRegion := domain.Region{ID: "01J0000000000000000000RGN2", OrganizationID: other.ID, Name: "South", CreatedAt: e.now}
	require.NoError(t, e.st.Regions().CreateRegion(ctx, foreignRegion))

	e.addInvitation(t, "taken", func(inv *domain.Invitation) { inv.Email = "dupe@acme.example" })

	tests := []struct {
		name string
		by   domain.UserProfile
		in   service.CreateInvitationInput
		want error
	}{
		{"manager cannot invite", e.manager, service.CreateInvitationInput{Email: "a@acme.example", Role: domain.RoleViewer}, service.ErrForbidden},
		{"admin cannot invite owner", e.admin, service.CreateInvitationInput{Email: "a@acme.example", Role: domain.RoleOwner}, service.ErrForbidden},
		{"unknown role", e.owner, service.CreateInvitationInput{Email: "a@acme.example", Role: "root"}, service.ErrInvalidRole},
		{"ttl too long", e.owner, service.CreateInvitationInput{Email: "a@acme.example", Role: domain.RoleViewer, TTL: 31 * 24 * time.Hour}, service.ErrInvalidTTL},
		{"negative ttl", e.owner, service.CreateInvitationInput{Email: "a@acme.example", Role: domain.RoleViewer, TTL: -time.Hour}, service.ErrInvalidTTL},
		{"foreign region", e.owner, service.CreateInvitationInput{Email: "a@acme.example", Role: domain.RoleViewer, RegionID: foreignRegion.ID}, service.ErrRegionNotFound},
		{"duplicate pending", e.owner, service.CreateInvitationInput{Email: "DUPE@acme.example", Role: domain.RoleViewer}, service.ErrDuplicateInvite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.invitations.CreateInvitation(ctx, principal(tt.by), tt.in)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateInvitation_OwnerMayInviteOwner(t *testing.T) {
	e := newEnv(t)
	_, err := e.invitations.CreateInvitation(context.Background(), principal(e.owner), service.CreateInvitationInput{
		Email: "cofounder@acme.example",
		Role:  domain.RoleOwner,
		TTL:   service.MaxInvitationTTL,
	})
	require.NoError(t, err)
}

func TestAcceptInvitation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "abc123", nil)
	newcomer := e.addProfile(t, domain.RoleViewer, "", "Barbara", "Liskov")

	t.Run("email must match", func(t *testing.T) {
		_, err := e.invitations.AcceptInvitation(ctx, principal(newcomer), "abc123", "someone@else.example")
		require.ErrorIs(t, err, service.ErrEmailMismatch)
		require.Equal(t, domain.InvitationPending, e.status(t, inv.ID))
	})

	t.Run("members cannot accept", func(t *testing.T) {
		_, err := e.invitations.AcceptInvitation(ctx, principal(e.viewer), "abc123", "new.hire@acme.example")
		require.ErrorIs(t, err, service.ErrAlreadyInOrg)
	})

	t.Run("joins organization with invited role", func(t *testing.T) {
		joined, err := e.invitations.AcceptInvitation(ctx, principal(newcomer), "abc123", "New.Hire@acme.example")
		require.NoError(t, err)
		require.Equal(t, e.org.ID, joined.OrganizationID)
		require.Equal(t, domain.RoleManager, joined.Role)

		stored, err := e.st.Invitations().GetInvitationByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationAccepted, stored.Status)
		require.Equal(t, newcomer.ID, stored.AcceptedBy)
	})

	t.Run("second acceptance reports resolved", func(t *testing.T) {
		late := e.addProfile(t, domain.RoleViewer, "", "Late", "Comer")
		_, err := e.invitations.AcceptInvitation(ctx, principal(late), "abc123", "new.hire@acme.example")
		var resolved *service.AlreadyResolvedError
		require.ErrorAs(t, err, &resolved)
		require.Equal(t, "already accepted", resolved.Reason())
	})
}

func TestAcceptInvitation_Expired(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "old", func(inv *domain.Invitation) { inv.ExpiresAt = e.now.Add(-time.Minute) })
	newcomer := e.addProfile(t, domain.RoleViewer, "", "Barbara", "Liskov")

	_, err := e.invitations.AcceptInvitation(ctx, principal(newcomer), "old", inv.Email)
	require.ErrorIs(t, err, domain.ErrInvitationExpired)
	require.Equal(t, domain.InvitationExpired, e.status(t, inv.ID))

	p, err := e.profiles.GetProfile(ctx, newcomer.ID)
	require.NoError(t, err)
	require.Empty(t, p.OrganizationID)
}

func TestRevokeInvitation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "abc123", nil)

	_, err := e.invitations.RevokeInvitation(ctx, principal(e.manager), inv.ID)
	require.ErrorIs(t, err, service.ErrForbidden)

	revoked, err := e.invitations.RevokeInvitation(ctx, principal(e.admin), inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationRevoked, revoked.Status)
	require.Equal(t, domain.InvitationRevoked, e.status(t, inv.ID))

	_, err = e.invitations.RevokeInvitation(ctx, principal(e.admin), inv.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = e.invitations.ValidateInvitation(ctx, "abc123")
	var resolved *service.AlreadyResolvedError
	require.ErrorAs(t, err, &resolved)
	require.Equal(t, "revoked", resolved.Reason())

	_, err = e.invitations.RevokeInvitation(ctx, principal(e.admin), "01J00000000000000000000000")
	require.ErrorIs(t, err, service.ErrInvitationNotFound)
}

func TestRevokeInvitation_StampsServiceClock(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "abc123", nil)
	e.now = e.now.Add(17 * time.Minute)

	_, err := e.invitations.RevokeInvitation(ctx, principal(e.admin), inv.ID)
	require.NoError(t, err)

	got, err := e.st.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.True(t, got.UpdatedAt.Equal(e.now), "updated_at = %s", got.UpdatedAt)
}

func TestRevokeInvitation_PastDeadlineExpires(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "old", func(inv *domain.Invitation) { inv.ExpiresAt = e.now.Add(-time.Minute) })

	_, err := e.invitations.RevokeInvitation(ctx, principal(e.admin), inv.ID)
	require.ErrorIs(t, err, domain.ErrInvitationExpired)
	require.Equal(t, domain.InvitationExpired, e.status(t, inv.ID))

	_, err = e.invitations.RevokeInvitation(ctx, principal(e.admin), inv.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// conflictingStore reports every conditional invitation update as conflicted
// while leaving the row untouched.
type conflictingStore struct {
	store.Store
}

func (s conflictingStore) Invitations() store.Invitations {
	return conflictingInvitations{s.Store.Invitations()}
}

type conflictingInvitations struct {
	store.Invitations
}

func (conflictingInvitations) UpdateStatusByTokenHash(context.Context, string, domain.InvitationStatus, domain.InvitationStatus, string, time.Time) error {
	return store.ErrConflict
}

func TestRevokeInvitation_ConflictWhileStillPending(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "abc123", nil)
	svc := &service.InvitationService{Store: conflictingStore{e.st}, Now: func() time.Time { return e.now }}

	got, err := svc.RevokeInvitation(ctx, principal(e.admin), inv.ID)
	require.Error(t, err)
	require.Empty(t, got.ID)

	var sf *service.StoreFailureError
	require.ErrorAs(t, err, &sf)
	require.Equal(t, "revoke invitation", sf.Op)
	require.ErrorIs(t, err, store.ErrConflict)
	require.Equal(t, domain.InvitationPending, e.status(t, inv.ID))
}

func TestRevokeInvitation_OtherOrganization(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	inv := e.addInvitation(t, "abc123", nil)

	other := domain.Organization{ID: "01J0000000000000000000OTHR", Name: "Other", CreatedAt: e.now}
	require.NoError(t, e.st.Organizations().CreateOrganization(ctx, other))
	outsider := e.addProfile(t, domain.RoleOwner, other.ID, "Out", "Sider")

	_, err := e.invitations.RevokeInvitation(ctx, principal(outsider), inv.ID)
	require.ErrorIs(t, err, service.ErrInvitationNotFound)
	require.Equal(t, domain.InvitationPending, e.status(t, inv.ID))
}

func TestListInvitations(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.addInvitation(t, "one", nil)
	e.addInvitation(t, "two", func(inv *domain.Invitation) {
		inv.Email = "two@acme.example"
		inv.Status = domain.InvitationRevoked
	})

	all, err := e.invitations.ListInvitations(ctx, principal(e.manager), "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	revoked, err := e.invitations.ListInvitations(ctx, principal(e.manager), domain.InvitationRevoked)
	require.NoError(t, err)
	require.Len(t, revoked, 1)

	_, err = e.invitations.ListInvitations(ctx, principal(e.manager), "bogus")
	require.ErrorIs(t, err, service.ErrInvalidStatusQuery)

	_, err = e.invitations.ListInvitations(ctx, principal(e.viewer), "")
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestListInvitations_ExpiresOverdue(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	fresh := e.addInvitation(t, "fresh", nil)
	stale := e.addInvitation(t, "stale", func(inv *domain.Invitation) {
		inv.Email = "stale@acme.example"
		inv.ExpiresAt = e.now.Add(-time.Minute)
	})

	pending, err := e.invitations.ListInvitations(ctx, principal(e.manager), domain.InvitationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, fresh.ID, pending[0].ID)
	require.Equal(t, domain.InvitationExpired, e.status(t, stale.ID))

	all, err := e.invitations.ListInvitations(ctx, principal(e.manager), "")
	require.NoError(t, err)
	statuses := map[string]domain.InvitationStatus{}
	for _, inv := range all {
		statuses[inv.ID] = inv.Status
	}
	require.Equal(t, map[string]domain.InvitationStatus{
		fresh.ID: domain.InvitationPending,
		stale.ID: domain.InvitationExpired,
	}, statuses)
}
