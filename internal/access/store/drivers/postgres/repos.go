package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
)

type organizationsRepo struct{ q querier }

func (r *organizationsRepo) CreateOrganization(ctx context.Context, org domain.Organization) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO organizations (id, name, created_at) VALUES ($1, $2, $3)`,
		org.ID, org.Name, org.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	var org domain.Organization
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM organizations WHERE id = $1`, id,
	).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return org, nil
}

type regionsRepo struct{ q querier }

func (r *regionsRepo) CreateRegion(ctx context.Context, region domain.Region) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO regions (id, organization_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		region.ID, region.OrganizationID, region.Name, region.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *regionsRepo) GetRegionByID(ctx context.Context, id string) (domain.Region, error) {
	var region domain.Region
	err := r.q.QueryRowContext(ctx,
		`SELECT id, organization_id, name, created_at FROM regions WHERE id = $1`, id,
	).Scan(&region.ID, &region.OrganizationID, &region.Name, &region.CreatedAt)
	if err != nil {
		return domain.Region{}, mapNotFound(err)
	}
	return region, nil
}

func (r *regionsRepo) ListRegions(ctx context.Context, organizationID string) ([]domain.Region, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, organization_id, name, created_at
		   FROM regions WHERE organization_id = $1 ORDER BY name`,
		organizationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Region
	for rows.Next() {
		var region domain.Region
		if err := rows.Scan(&region.ID, &region.OrganizationID, &region.Name, &region.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, region)
	}
	return out, rows.Err()
}

type profilesRepo struct{ q querier }

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.UserProfile) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (id, organization_id, role, first_name, last_name, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, nullString(p.OrganizationID), string(p.Role), p.FirstName, p.LastName,
		string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.UserProfile, error) {
	var (
		p            domain.UserProfile
		orgID        sql.NullString
		role, status string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, organization_id, role, first_name, last_name, status, created_at, updated_at
		   FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &orgID, &role, &p.FirstName, &p.LastName, &status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.UserProfile{}, mapNotFound(err)
	}
	p.OrganizationID = orgID.String
	p.Role = domain.Role(role)
	p.Status = domain.ProfileStatus(status)
	return p, nil
}

func (r *profilesRepo) UpdateName(ctx context.Context, id, firstName, lastName string) error {
	return r.exec(ctx,
		`UPDATE profiles SET first_name = $1, last_name = $2, updated_at = now() WHERE id = $3`,
		firstName, lastName, id)
}

func (r *profilesRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	return r.exec(ctx,
		`UPDATE profiles SET role = $1, updated_at = now() WHERE id = $2`, string(role), id)
}

func (r *profilesRepo) UpdateStatus(ctx context.Context, id string, status domain.ProfileStatus) error {
	return r.exec(ctx,
		`UPDATE profiles SET status = $1, updated_at = now() WHERE id = $2`, string(status), id)
}

func (r *profilesRepo) JoinOrganization(ctx context.Context, id, organizationID string, role domain.Role) error {
	err := r.exec(ctx,
		`UPDATE profiles SET organization_id = $1, role = $2, updated_at = now()
		  WHERE id = $3 AND organization_id IS NULL`,
		organizationID, string(role), id)
	if errors.Is(err, store.ErrNotFound) {
		if _, getErr := r.GetProfileByID(ctx, id); getErr != nil {
			return getErr
		}
		return store.ErrConflict
	}
	return err
}

func (r *profilesRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

type invitationsRepo struct{ q querier }

const invitationColumns = `i.id, i.token_hash, i.email, i.role, i.organization_id, i.region_id,
	i.invited_by, i.status, i.expires_at, i.accepted_by, i.created_at, i.updated_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invitations (id, token_hash, email, role, organization_id, region_id,
		                          invited_by, status, expires_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		inv.ID, inv.TokenHash, inv.Email, string(inv.Role), inv.OrganizationID,
		nullString(inv.RegionID), inv.InvitedBy, string(inv.Status),
		inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.InvitationDetails, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+`,
		        o.name, COALESCE(rg.name, ''), COALESCE(p.first_name, ''), COALESCE(p.last_name, '')
		   FROM invitations i
		   JOIN organizations o ON o.id = i.organization_id
		   LEFT JOIN regions rg ON rg.id = i.region_id
		   LEFT JOIN profiles p ON p.id = i.invited_by
		  WHERE i.token_hash = $1`,
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
		`SELECT `+invitationColumns+` FROM invitations i WHERE i.id = $1`, id)

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
		  WHERE i.organization_id = $1 AND ($2 = '' OR i.status = $2)
		  ORDER BY i.created_at DESC, i.id DESC`,
		organizationID, string(status),
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
		    SET status = $1, accepted_by = COALESCE($2, accepted_by), updated_at = $3
		  WHERE token_hash = $4 AND status = $5`,
		string(to), nullString(acceptedBy), at.UTC(), hash, string(from),
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
			`SELECT 1 FROM invitations WHERE token_hash = $1`, hash,
		).Scan(&exists); err != nil {
			return mapNotFound(err)
		}
		return store.ErrConflict
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

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
	inv.RegionID = regionID.String
	inv.AcceptedBy = acceptedBy.String
	return nil
}
