package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
)

type profilesRepo struct {
	q querier
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.UserProfile) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (id, organization_id, role, first_name, last_name, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, mapStringNull(p.OrganizationID), string(p.Role), p.FirstName, p.LastName,
		string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfileByID(ctx context.Context, id string) (domain.UserProfile, error) {
	var (
		p     domain.UserProfile
		orgID sql.NullString
		role  string
		st    string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, organization_id, role, first_name, last_name, status, created_at, updated_at
		   FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &orgID, &role, &p.FirstName, &p.LastName, &st, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.UserProfile{}, mapNotFound(err)
	}
	p.OrganizationID = mapNullString(orgID)
	p.Role = domain.Role(role)
	p.Status = domain.ProfileStatus(st)
	return p, nil
}

func (r *profilesRepo) UpdateName(ctx context.Context, id, firstName, lastName string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles SET first_name = ?, last_name = ?, updated_at = ? WHERE id = ?`,
		firstName, lastName, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *profilesRepo) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *profilesRepo) UpdateStatus(ctx context.Context, id string, status domain.ProfileStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *profilesRepo) JoinOrganization(ctx context.Context, id, organizationID string, role domain.Role) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles
		    SET organization_id = ?, role = ?, updated_at = ?
		  WHERE id = ? AND organization_id IS NULL`,
		organizationID, string(role), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if err := requireOneRow(res); err != nil {
		// Distinguish a missing profile from one that already has an organization.
		if _, getErr := r.GetProfileByID(ctx, id); getErr != nil {
			return getErr
		}
		return store.ErrConflict
	}
	return nil
}
