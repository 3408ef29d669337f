package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
	"github.com/aussiebroadwan/reservoir/internal/access/store/drivers/postgres"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return postgres.NewStoreFromDB(db), mock
}

var invitationDetailColumns = []string{
	"id", "token_hash", "email", "role", "organization_id", "region_id",
	"invited_by", "status", "expires_at", "accepted_by", "created_at", "updated_at",
	"org_name", "region_name", "first_name", "last_name",
}

func TestGetInvitationByTokenHash(t *testing.T) {
	ctx := context.Background()
	st, mock := newMockStore(t)
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.token_hash = $1")).
		WithArgs("hash-1").
		WillReturnRows(sqlmock.NewRows(invitationDetailColumns).AddRow(
			"inv-1", "hash-1", "new@acme.example", "manager", "org-1", nil,
			"prof-1", "pending", now.Add(time.Hour), nil, now, now,
			"Acme Water", "", "", "",
		))

	got, err := st.Invitations().GetInvitationByTokenHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, "inv-1", got.ID)
	require.Equal(t, domain.RoleManager, got.Role)
	require.Equal(t, domain.InvitationPending, got.Status)
	require.Equal(t, "Acme Water", got.OrganizationName)
	require.Empty(t, got.RegionID)
	require.Empty(t, got.AcceptedBy)
	require.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestGetInvitationByTokenHashNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.token_hash = $1")).
		WithArgs("zzz").
		WillReturnRows(sqlmock.NewRows(invitationDetailColumns))

	_, err := st.Invitations().GetInvitationByTokenHash(context.Background(), "zzz")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateStatusByTokenHash(t *testing.T) {
	ctx := context.Background()
	update := regexp.QuoteMeta("UPDATE invitations")
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	t.Run("applies when still pending", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectExec(update).
			WithArgs("expired", sqlmock.AnyArg(), at, "hash-1", "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := st.Invitations().UpdateStatusByTokenHash(ctx, "hash-1",
			domain.InvitationPending, domain.InvitationExpired, "", at)
		require.NoError(t, err)
	})

	t.Run("conflict when no longer pending", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM invitations")).
			WithArgs("hash-1").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		err := st.Invitations().UpdateStatusByTokenHash(ctx, "hash-1",
			domain.InvitationPending, domain.InvitationExpired, "", at)
		require.ErrorIs(t, err, store.ErrConflict)
	})

	t.Run("not found when the token is unknown", func(t *testing.T) {
		st, mock := newMockStore(t)
		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM invitations")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

		err := st.Invitations().UpdateStatusByTokenHash(ctx, "missing",
			domain.InvitationPending, domain.InvitationExpired, "", at)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("driver errors pass through", func(t *testing.T) {
		st, mock := newMockStore(t)
		boom := errors.New("connection reset")
		mock.ExpectExec(update).WillReturnError(boom)

		err := st.Invitations().UpdateStatusByTokenHash(ctx, "hash-1",
			domain.InvitationPending, domain.InvitationExpired, "", at)
		require.ErrorIs(t, err, boom)
	})
}

func TestCreateInvitationUniqueViolation(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invitations")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := st.Invitations().CreateInvitation(context.Background(), domain.Invitation{
		ID:        "inv-1",
		TokenHash: "hash-1",
		Status:    domain.InvitationPending,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestWithTxRollsBack(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET role")).
		WithArgs("admin", "prof-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := st.WithTx(context.Background(), func(tx store.Tx) error {
		return tx.Profiles().UpdateRole(context.Background(), "prof-1", domain.RoleAdmin)
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}
