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
	"github.com/aussiebroadwan/reservoir/pkg/slogx"
)

const maxNameLen = 100

type ProfileService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ProfileService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func cleanName(first, last string) (string, string, error) {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if utf8.RuneCountInString(first) > maxNameLen || utf8.RuneCountInString(last) > maxNameLen {
		return "", "", ErrInvalidName
	}
	return first, last, nil
}

// EnsureProfile returns the profile for subject, creating a viewer profile
// without an organization on first sign-in.
func (s *ProfileService) EnsureProfile(ctx context.Context, subject, first, last string) (domain.UserProfile, error) {
	log := slogx.FromContext(ctx)

	existing, err := s.Store.Profiles().GetProfileByID(ctx, subject)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.UserProfile{}, storeFailure("get profile", err)
	}

	first, last, err = cleanName(first, last)
	if err != nil {
		return domain.UserProfile{}, err
	}

	now := s.now()
	p := domain.UserProfile{
		ID:        subject,
		Role:      domain.RoleViewer,
		FirstName: first,
		LastName:  last,
		Status:    domain.ProfileActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Profiles().CreateProfile(ctx, p); err != nil {
		// Two first requests racing each other.
		if errors.Is(err, store.ErrAlreadyExists) {
			return s.GetProfile(ctx, subject)
		}
		log.Error("failed to create profile", slog.Any("error", err))
		return domain.UserProfile{}, storeFailure("create profile", err)
	}

	log.Info("profile created", slog.String("profile_id", subject))
	return p, nil
}

// GetProfile loads a profile by ID.
func (s *ProfileService) GetProfile(ctx context.Context, id string) (domain.UserProfile, error) {
	p, err := s.Store.Profiles().GetProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserProfile{}, ErrProfileNotFound
		}
		return domain.UserProfile{}, storeFailure("get profile", err)
	}
	return p, nil
}

// Principal resolves the caller of a guarded operation.
func (s *ProfileService) Principal(ctx context.Context, subject string) (domain.Principal, error) {
	p, err := s.GetProfile(ctx, subject)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.PrincipalFor(p), nil
}

// UpdateName changes the caller's own display name.
func (s *ProfileService) UpdateName(ctx context.Context, p domain.Principal, first, last string) (domain.UserProfile, error) {
	if !p.IsActive() {
		return domain.UserProfile{}, ErrProfileInactive
	}
	first, last, err := cleanName(first, last)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if err := s.Store.Profiles().UpdateName(ctx, p.ProfileID, first, last); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserProfile{}, ErrProfileNotFound
		}
		return domain.UserProfile{}, storeFailure("update name", err)
	}
	return s.GetProfile(ctx, p.ProfileID)
}

// loadManageable fetches target and checks the caller may administer it.
func (s *ProfileService) loadManageable(ctx context.Context, p domain.Principal, targetID string) (domain.UserProfile, error) {
	if err := requirePermission(ctx, p, domain.PermManageUsers); err != nil {
		return domain.UserProfile{}, err
	}
	if targetID == p.ProfileID {
		return domain.UserProfile{}, ErrSelfTarget
	}

	target, err := s.GetProfile(ctx, targetID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	// Profiles outside the caller's organization are invisible.
	if target.OrganizationID != p.OrganizationID {
		return domain.UserProfile{}, ErrProfileNotFound
	}
	if !CanManage(p.Role, target.Role) {
		return domain.UserProfile{}, ErrForbidden
	}
	return target, nil
}

// ChangeRole assigns role to another member of the caller's organization.
// The caller must outrank or equal both the current and the new role.
func (s *ProfileService) ChangeRole(ctx context.Context, p domain.Principal, targetID string, role domain.Role) (domain.UserProfile, error) {
	log := slogx.FromContext(ctx)

	if !role.IsValid() {
		return domain.UserProfile{}, ErrInvalidRole
	}
	target, err := s.loadManageable(ctx, p, targetID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !CanManage(p.Role, role) {
		return domain.UserProfile{}, ErrForbidden
	}

	if err := s.Store.Profiles().UpdateRole(ctx, target.ID, role); err != nil {
		return domain.UserProfile{}, storeFailure("update role", err)
	}

	log.Info("role changed",
		slog.String("target_id", target.ID),
		slog.String("from", string(target.Role)),
		slog.String("to", string(role)),
	)
	return s.GetProfile(ctx, target.ID)
}

// Deactivate marks another member inactive. Profiles are never deleted.
func (s *ProfileService) Deactivate(ctx context.Context, p domain.Principal, targetID string) (domain.UserProfile, error) {
	target, err := s.loadManageable(ctx, p, targetID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if target.Status == domain.ProfileInactive {
		return target, nil
	}

	if err := s.Store.Profiles().UpdateStatus(ctx, target.ID, domain.ProfileInactive); err != nil {
		return domain.UserProfile{}, storeFailure("update status", err)
	}

	slogx.FromContext(ctx).Info("profile deactivated", slog.String("target_id", target.ID))
	return s.GetProfile(ctx, target.ID)
}
