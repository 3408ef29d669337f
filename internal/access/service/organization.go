package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
	"github.com/aussiebroadwan/reservoir/pkg/idx"
	"github.com/aussiebroadwan/reservoir/pkg/slogx"
)

type OrganizationService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *OrganizationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func cleanTitle(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 120 {
		return "", ErrInvalidOrgName
	}
	return name, nil
}

// CreateOrganization onboards a caller without an organization: the new
// organization is created and the caller becomes its owner.
func (s *OrganizationService) CreateOrganization(ctx context.Context, p domain.Principal, name string) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	if !p.IsActive() {
		return domain.Organization{}, ErrProfileInactive
	}
	if p.HasOrganization() {
		return domain.Organization{}, ErrAlreadyInOrg
	}
	name, err := cleanTitle(name)
	if err != nil {
		return domain.Organization{}, err
	}

	now := s.now()
	org := domain.Organization{ID: idx.NewAt(now).String(), Name: name, CreatedAt: now}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			return err
		}
		return tx.Profiles().JoinOrganization(ctx, p.ProfileID, org.ID, domain.RoleOwner)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			return domain.Organization{}, ErrAlreadyInOrg
		case errors.Is(err, store.ErrNotFound):
			return domain.Organization{}, ErrProfileNotFound
		}
		log.Error("failed to create organization", slog.Any("error", err))
		return domain.Organization{}, storeFailure("create organization", err)
	}

	log.Info("organization created", slog.String("organization_id", org.ID))
	return org, nil
}

// GetOrganization returns the caller's organization.
func (s *OrganizationService) GetOrganization(ctx context.Context, p domain.Principal) (domain.Organization, error) {
	if err := requirePermission(ctx, p, domain.PermViewDashboard); err != nil {
		return domain.Organization{}, err
	}
	org, err := s.Store.Organizations().GetOrganizationByID(ctx, p.OrganizationID)
	if err != nil {
		return domain.Organization{}, storeFailure("get organization", err)
	}
	return org, nil
}

// CreateRegion adds a region to the caller's organization.
func (s *OrganizationService) CreateRegion(ctx context.Context, p domain.Principal, name string) (domain.Region, error) {
	if err := requirePermission(ctx, p, domain.PermManageRegions); err != nil {
		return domain.Region{}, err
	}
	name, err := cleanTitle(name)
	if err != nil {
		return domain.Region{}, err
	}

	now := s.now()
	r := domain.Region{ID: idx.NewAt(now).String(), OrganizationID: p.OrganizationID, Name: name, CreatedAt: now}
	if err := s.Store.Regions().CreateRegion(ctx, r); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Region{}, ErrDuplicateRegion
		}
		return domain.Region{}, storeFailure("create region", err)
	}

	slogx.FromContext(ctx).Info("region created", slog.String("region_id", r.ID))
	return r, nil
}

// ListRegions lists the caller's organization regions by name.
func (s *OrganizationService) ListRegions(ctx context.Context, p domain.Principal) ([]domain.Region, error) {
	if err := requirePermission(ctx, p, domain.PermViewAssets); err != nil {
		return nil, err
	}
	regions, err := s.Store.Regions().ListRegions(ctx, p.OrganizationID)
	if err != nil {
		return nil, storeFailure("list regions", err)
	}
	return regions, nil
}
