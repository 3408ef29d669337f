package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
)

type invitationsRepo struct {
	q querier
}

const invitationColumns = `i.id, i.token_hash, i.email, i.role, i.organization_id, i.region_id,
	i.invited_by, i.status, i.expires_at, i.accepted_by, i.created_at, i.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invitations (id, token_hash, email, role, organization_id, region_id,
		                          invited_by, status, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TokenHash, inv.Email, string(inv.Role), inv.OrganizationID,
		mapStringNull(inv.RegionID), inv.InvitedBy, string(inv.Status),
		inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByTokenHash(
	ctx context.Context,
	hash string,
) (domain.InvitationDetails, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+`,
		        o.name, COALESCE(rg.name, ''), COALESCE(p.first_name, ''), COALESCE(p.last_name, '')
		   FROM invitations i
		   JOIN organizations o ON o.id = i.organization_id
		   LEFT JOIN regions rg ON rg.id = i.region_id
		   LEFT JOIN profiles p ON p.id = i.invited_by
		  WHERE i.token_hash = ?`,
		hash,
	)

	var d domain.InvitationDetails
	err := scanInvitation(row, &d.Invitation,
		&d.OrganizationName, &d.RegionName, &d.InviterFirstName, &d.InviterLastName)
	if err != nil {
		return domain.InvitationDetails{}, mapNotFound(err)
	}
	return d, nil
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations i WHERE i.id = ?`, id)

	var inv domain.Invitation
	if err := scanInvitation(row, &inv); err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) ListInvitations(
	ctx context.Context,
	organizationID string,
	status domain.InvitationStatus,
) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invitationColumns+`
		   FROM invitations i
		  WHERE i.organization_id = ? AND (? = '' OR i.status = ?)
		  ORDER BY i.created_at DESC, i.id DESC`,
		organizationID, string(status), string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := scanInvitation(rows, &inv); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) UpdateStatusByTokenHash(
	ctx context.Context,
	hash string,
	from, to domain.InvitationStatus,
	acceptedBy string,
	at time.Time,
) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invitations
		    SET status = ?, accepted_by = COALESCE(?, accepted_by), updated_at = ?
		  WHERE token_hash = ? AND status = ?`,
		string(to), mapStringNull(acceptedBy), at.UTC(), hash, string(from),
	)
	if err != nil {
		return err
	}
	if err := requireOneRow(res); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		var exists int
		if err := r.q.QueryRowContext(ctx,
			`SELECT 1 FROM invitations WHERE token_hash = ?`, hash,
		).Scan(&exists); err != nil {
			return mapNotFound(err)
		}
		return store.ErrConflict
	}
	return nil
}

// scanInvitation scans the invitationColumns into inv followed by any extra
// destinations.
func scanInvitation(row rowScanner, inv *domain.Invitation, extra ...any) error {
	var (
		role, status         string
		regionID, acceptedBy sql.NullString
	)
	dest := []any{
		&inv.ID, &inv.TokenHash, &inv.Email, &role, &inv.OrganizationID, &regionID,
		&inv.InvitedBy, &status, &inv.ExpiresAt, &acceptedBy, &inv.CreatedAt, &inv.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	inv.RegionID = mapNullString(regionID)
	inv.AcceptedBy = mapNullString(acceptedBy)
	return nil
}
