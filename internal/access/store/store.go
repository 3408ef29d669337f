package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional updates whose precondition no
	// longer holds (e.g. the invitation is no longer pending).
	ErrConflict = errors.New("store: conditional update did not apply")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are exposed as methods so a Tx-scoped Store
// hands out repos bound to the same transaction.
type Store interface {
	Organizations() Organizations
	Regions() Regions
	Profiles() Profiles
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction. The transaction is committed when
	// fn returns nil and rolled back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organizations interface {
	CreateOrganization(ctx context.Context, org domain.Organization) error
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)
}

type Regions interface {
	CreateRegion(ctx context.Context, r domain.Region) error
	GetRegionByID(ctx context.Context, id string) (domain.Region, error)

	// ListRegions returns an organization's regions ordered by name.
	ListRegions(ctx context.Context, organizationID string) ([]domain.Region, error)
}

type Profiles interface {
	CreateProfile(ctx context.Context, p domain.UserProfile) error
	GetProfileByID(ctx context.Context, id string) (domain.UserProfile, error)

	UpdateName(ctx context.Context, id, firstName, lastName string) error
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	UpdateStatus(ctx context.Context, id string, status domain.ProfileStatus) error

	// JoinOrganization sets organization and role for a profile that has no
	// organization yet. Returns ErrConflict if it already belongs to one.
	JoinOrganization(ctx context.Context, id, organizationID string, role domain.Role) error
}

type Invitations interface {
	// CreateInvitation writes a new pending invitation (token_hash is the
	// SHA-256 fingerprint of the opaque token).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByTokenHash returns the invitation joined with its
	// organization name, region name and inviter name parts.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.InvitationDetails, error)

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// ListInvitations returns an organization's invitations, newest first.
	// An empty status lists every status.
	ListInvitations(ctx context.Context, organizationID string, status domain.InvitationStatus) ([]domain.Invitation, error)

	// UpdateStatusByTokenHash moves the invitation from `from` to `to`,
	// applying only if its current status is still `from`. acceptedBy is
	// stored when non-empty and updated_at is set to at. Returns ErrConflict
	// if the precondition failed and ErrNotFound if there is no such
	// invitation.
	UpdateStatusByTokenHash(
		ctx context.Context,
		hash string,
		from, to domain.InvitationStatus,
		acceptedBy string,
		at time.Time,
	) error
}
