package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
	"github.com/aussiebroadwan/reservoir/internal/access/store/drivers/sqlite"
	"github.com/aussiebroadwan/reservoir/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

type fixture struct {
	org     domain.Organization
	region  domain.Region
	inviter domain.UserProfile
}

func seed(t *testing.T, st store.Store) fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	org := domain.Organization{ID: idx.New().String(), Name: "Acme Water", CreatedAt: now}
	require.NoError(t, st.Organizations().CreateOrganization(ctx, org))

	region := domain.Region{ID: idx.New().String(), OrganizationID: org.ID, Name: "North", CreatedAt: now}
	require.NoError(t, st.Regions().CreateRegion(ctx, region))

	inviter := domain.UserProfile{
		ID:             idx.New().String(),
		OrganizationID: org.ID,
		Role:           domain.RoleOwner,
		FirstName:      "Grace",
		LastName:       "Hopper",
		Status:         domain.ProfileActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, st.Profiles().CreateProfile(ctx, inviter))

	return fixture{org: org, region: region, inviter: inviter}
}

func newInvitation(f fixture, hash string, regionID string) domain.Invitation {
	now := time.Now().UTC()
	return domain.Invitation{
		ID:             idx.New().String(),
		TokenHash:      hash,
		Email:          "new@acme.example",
		Role:           domain.RoleManager,
		OrganizationID: f.org.ID,
		RegionID:       regionID,
		InvitedBy:      f.inviter.ID,
		Status:         domain.InvitationPending,
		ExpiresAt:      now.Add(time.Hour),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestInvitationsJoinDisplayFields(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	f := seed(t, st)

	inv := newInvitation(f, "hash-1", f.region.ID)
	require.NoError(t, st.Invitations().CreateInvitation(ctx, inv))

	got, err := st.Invitations().GetInvitationByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
	require.Equal(t, domain.RoleManager, got.Role)
	require.Equal(t, domain.InvitationPending, got.Status)
	require.Equal(t, "Acme Water", got.OrganizationName)
	require.Equal(t, "North", got.RegionName)
	require.Equal(t, "Grace", got.InviterFirstName)
	require.Equal(t, "Hopper", got.InviterLastName)
	require.WithinDuration(t, inv.ExpiresAt, got.ExpiresAt, time.Millisecond)

	t.Run("region is optional", func(t *testing.T) {
		require.NoError(t, st.Invitations().CreateInvitation(ctx, newInvitation(f, "hash-2", "")))

		got, err := st.Invitations().GetInvitationByTokenHash(ctx, "hash-2")
		require.NoError(t, err)
		require.Empty(t, got.RegionID)
		require.Empty(t, got.RegionName)
	})

	t.Run("unknown hash", func(t *testing.T) {
		_, err := st.Invitations().GetInvitationByTokenHash(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate token hash", func(t *testing.T) {
		err := st.Invitations().CreateInvitation(ctx, newInvitation(f, "hash-1", ""))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestInvitationsConditionalStatusUpdate(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	f := seed(t, st)

	inv := newInvitation(f, "hash-1", "")
	require.NoError(t, st.Invitations().CreateInvitation(ctx, inv))

	repo := st.Invitations()
	at := inv.CreatedAt.Add(7 * time.Minute).Truncate(time.Second)
	require.NoError(t, repo.UpdateStatusByTokenHash(ctx, "hash-1",
		domain.InvitationPending, domain.InvitationAccepted, f.inviter.ID, at))

	got, err := repo.GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, got.Status)
	require.Equal(t, f.inviter.ID, got.AcceptedBy)
	require.True(t, got.UpdatedAt.Equal(at))

	err = repo.UpdateStatusByTokenHash(ctx, "hash-1",
		domain.InvitationPending, domain.InvitationExpired, "", at)
	require.ErrorIs(t, err, store.ErrConflict)

	err = repo.UpdateStatusByTokenHash(ctx, "missing",
		domain.InvitationPending, domain.InvitationExpired, "", at)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListInvitationsFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	f := seed(t, st)

	require.NoError(t, st.Invitations().CreateInvitation(ctx, newInvitation(f, "a", "")))
	require.NoError(t, st.Invitations().CreateInvitation(ctx, newInvitation(f, "b", "")))
	require.NoError(t, st.Invitations().UpdateStatusByTokenHash(ctx, "b",
		domain.InvitationPending, domain.InvitationRevoked, "", time.Now()))

	all, err := st.Invitations().ListInvitations(ctx, f.org.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	revoked, err := st.Invitations().ListInvitations(ctx, f.org.ID, domain.InvitationRevoked)
	require.NoError(t, err)
	require.Len(t, revoked, 1)
	require.Equal(t, "b", revoked[0].TokenHash)
}

func TestProfilesJoinOrganization(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	f := seed(t, st)
	now := time.Now().UTC()

	p := domain.UserProfile{
		ID:        idx.New().String(),
		Role:      domain.RoleViewer,
		Status:    domain.ProfileActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Profiles().CreateProfile(ctx, p))
	require.ErrorIs(t, st.Profiles().CreateProfile(ctx, p), store.ErrAlreadyExists)

	require.NoError(t, st.Profiles().JoinOrganization(ctx, p.ID, f.org.ID, domain.RoleOperator))

	got, err := st.Profiles().GetProfileByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, f.org.ID, got.OrganizationID)
	require.Equal(t, domain.RoleOperator, got.Role)

	require.ErrorIs(t, st.Profiles().JoinOrganization(ctx, p.ID, f.org.ID, domain.RoleAdmin), store.ErrConflict)
	require.ErrorIs(t, st.Profiles().JoinOrganization(ctx, "missing", f.org.ID, domain.RoleAdmin), store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	org := domain.Organization{ID: idx.New().String(), Name: "Rolled Back", CreatedAt: time.Now().UTC()}
	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Organizations().CreateOrganization(ctx, org))
		return store.ErrConflict
	})
	require.ErrorIs(t, err, store.ErrConflict)

	_, err = st.Organizations().GetOrganizationByID(ctx, org.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}
