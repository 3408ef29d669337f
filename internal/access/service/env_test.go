package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/internal/access/store/drivers/sqlite"
	"github.com/aussiebroadwan/reservoir/pkg/cryptox"
	"github.com/aussiebroadwan/reservoir/pkg/idx"
)

// env is an Acme Water organization with one member per role on a fixed
// clock.
type env struct {
	st  *sqlite.Store
	now time.Time

	org    domain.Organization
	region domain.Region

	owner, admin, manager, viewer domain.UserProfile

	invitations *service.InvitationService
	profiles    *service.ProfileService
	orgs        *service.OrganizationService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	e := &env{st: st, now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return e.now }

	e.invitations = &service.InvitationService{Store: st, Now: clock}
	e.profiles = &service.ProfileService{Store: st, Now: clock}
	e.orgs = &service.OrganizationService{Store: st, Now: clock}

	ctx := context.Background()
	e.org = domain.Organization{ID: idx.New().String(), Name: "Acme Water", CreatedAt: e.now}
	require.NoError(t, st.Organizations().CreateOrganization(ctx, e.org))

	e.region = domain.Region{ID: idx.New().String(), OrganizationID: e.org.ID, Name: "North Catchment", CreatedAt: e.now}
	require.NoError(t, st.Regions().CreateRegion(ctx, e.region))

	e.owner = e.addProfile(t, domain.RoleOwner, e.org.ID, "Grace", "Hopper")
	e.admin = e.addProfile(t, domain.RoleAdmin, e.org.ID, "Ada", "Lovelace")
	e.manager = e.addProfile(t, domain.RoleManager, e.org.ID, "Alan", "Turing")
	e.viewer = e.addProfile(t, domain.RoleViewer, e.org.ID, "Edsger", "Dijkstra")
	return e
}

func (e *env) addProfile(t *testing.T, role domain.Role, orgID, first, last string) domain.UserProfile {
	t.Helper()
	p := domain.UserProfile{
		ID:             idx.New().String(),
		OrganizationID: orgID,
		Role:           role,
		FirstName:      first,
		LastName:       last,
		Status:         domain.ProfileActive,
		CreatedAt:      e.now,
		UpdatedAt:      e.now,
	}
	require.NoError(t, e.st.Profiles().CreateProfile(context.Background(), p))
	return p
}

// addInvitation stores a pending manager invitation for token, invited by
// the owner and expiring in one hour, after applying mut.
func (e *env) addInvitation(t *testing.T, token string, mut func(*domain.Invitation)) domain.Invitation {
	t.Helper()
	inv := domain.Invitation{
		ID:             idx.New().String(),
		TokenHash:      cryptox.FingerprintToken(token),
		Email:          "new.hire@acme.example",
		Role:           domain.RoleManager,
		OrganizationID: e.org.ID,
		InvitedBy:      e.owner.ID,
		Status:         domain.InvitationPending,
		ExpiresAt:      e.now.Add(time.Hour),
		CreatedAt:      e.now.Add(-time.Hour),
		UpdatedAt:      e.now.Add(-time.Hour),
	}
	if mut != nil {
		mut(&inv)
	}
	require.NoError(t, e.st.Invitations().CreateInvitation(context.Background(), inv))
	return inv
}

func (e *env) status(t *testing.T, id string) domain.InvitationStatus {
	t.Helper()
	inv, err := e.st.Invitations().GetInvitationByID(context.Background(), id)
	require.NoError(t, err)
	return inv.Status
}

func principal(p domain.UserProfile) domain.Principal {
	return domain.PrincipalFor(p)
}
