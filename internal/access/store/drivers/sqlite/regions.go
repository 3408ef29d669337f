package sqlite

import (
	"context"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
)

type regionsRepo struct {
	q querier
}

func (r *regionsRepo) CreateRegion(ctx context.Context, region domain.Region) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO regions (id, organization_id, name, created_at) VALUES (?, ?, ?, ?)`,
		region.ID, region.OrganizationID, region.Name, region.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *regionsRepo) GetRegionByID(ctx context.Context, id string) (domain.Region, error) {
	var region domain.Region
	err := r.q.QueryRowContext(ctx,
		`SELECT id, organization_id, name, created_at FROM regions WHERE id = ?`, id,
	).Scan(&region.ID, &region.OrganizationID, &region.Name, &region.CreatedAt)
	if err != nil {
		return domain.Region{}, mapNotFound(err)
	}
	return region, nil
}

func (r *regionsRepo) ListRegions(ctx context.Context, organizationID string) ([]domain.Region, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, organization_id, name, created_at
		   FROM regions
		  WHERE organization_id = ?
		  ORDER BY name`,
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
