//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
	"github.com/aussiebroadwan/reservoir/internal/access/store/drivers/postgres"
	"github.com/aussiebroadwan/reservoir/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway PostgreSQL container and returns its DSN.
func setupPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "reservoir",
			"POSTGRES_PASSWORD": "reservoir",
			"POSTGRES_DB":       "access",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://reservoir:reservoir@%s:%s/access?sslmode=disable", host, port.Port())
}

func TestPostgresInvitationLifecycle(t *testing.T) {
	ctx := context.Background()

	st, err := postgres.NewStore(setupPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	now := time.Now().UTC()
	org := domain.Organization{ID: idx.New().String(), Name: "Acme Water", CreatedAt: now}
	require.NoError(t, st.Organizations().CreateOrganization(ctx, org))

	owner := domain.UserProfile{
		ID: idx.New().String(), OrganizationID: org.ID, Role: domain.RoleOwner,
		FirstName: "Grace", Status: domain.ProfileActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Profiles().CreateProfile(ctx, owner))

	inv := domain.Invitation{
		ID: idx.New().String(), TokenHash: "hash-1", Email: "new@acme.example",
		Role: domain.RoleManager, OrganizationID: org.ID, InvitedBy: owner.ID,
		Status: domain.InvitationPending, ExpiresAt: now.Add(time.Hour),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.Invitations().CreateInvitation(ctx, inv))

	got, err := st.Invitations().GetInvitationByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, "Acme Water", got.OrganizationName)
	require.Equal(t, "Grace", got.InviterFirstName)

	require.NoError(t, st.Invitations().UpdateStatusByTokenHash(ctx, "hash-1",
		domain.InvitationPending, domain.InvitationExpired, "", now))
	require.ErrorIs(t, st.Invitations().UpdateStatusByTokenHash(ctx, "hash-1",
		domain.InvitationPending, domain.InvitationExpired, "", now), store.ErrConflict)

	t.Run("expiry must follow creation", func(t *testing.T) {
		bad := inv
		bad.ID = idx.New().String()
		bad.TokenHash = "hash-2"
		bad.ExpiresAt = bad.CreatedAt
		require.Error(t, st.Invitations().CreateInvitation(ctx, bad))
	})
}
