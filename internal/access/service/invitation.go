package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/metrics"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
	"github.com/aussiebroadwan/reservoir/pkg/cryptox"
	"github.com/aussiebroadwan/reservoir/pkg/idx"
	"github.com/aussiebroadwan/reservoir/pkg/slogx"
)

const (
	DefaultInvitationTTL = 7 * 24 * time.Hour
	MaxInvitationTTL     = 30 * 24 * time.Hour
)

// InvitationSummary is what an invitee sees before accepting.
type InvitationSummary struct {
	ID               string
	Email            string
	Role             domain.Role
	OrganizationID   string
	OrganizationName string
	InvitedByName    string
	ExpiresAt        time.Time
	RegionName       *string
}

// CreateInvitationInput describes a new invitation. Zero TTL uses the
// service default.
type CreateInvitationInput struct {
	Email    string
	Role     domain.Role
	RegionID string
	TTL      time.Duration
}

// CreatedInvitation carries the raw token, which is never retrievable again.
type CreatedInvitation struct {
	Invitation domain.Invitation
	Token      string
}

type InvitationService struct {
	Store store.Store

	// DefaultTTL applies when CreateInvitationInput.TTL is zero.
	DefaultTTL time.Duration

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ValidateInvitation resolves a raw token to the invitation it grants. It is
// public: the token is the only credential.
//
// Returns ErrInvitationNotFound, *AlreadyResolvedError, domain.ErrInvitationExpired
// (after persisting the expiry) or *StoreFailureError.
func (s *InvitationService) ValidateInvitation(ctx context.Context, token string) (InvitationSummary, error) {
	summary, _, err := s.validate(ctx, token, s.now())
	return summary, err
}

func (s *InvitationService) validate(ctx context.Context, token string, now time.Time) (InvitationSummary, domain.InvitationDetails, error) {
	log := slogx.FromContext(ctx)
	hash := cryptox.FingerprintToken(token)

	// 1. Look up by fingerprint.
	d, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.InvitationValidationsTotal.WithLabelValues("not_found").Inc()
			log.Info("invitation token not found")
			return InvitationSummary{}, domain.InvitationDetails{}, ErrInvitationNotFound
		}
		metrics.InvitationValidationsTotal.WithLabelValues("error").Inc()
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return InvitationSummary{}, domain.InvitationDetails{}, storeFailure("get invitation", err)
	}

	log = log.With(slog.String("invitation_id", d.ID))

	// 2. Terminal statuses are reported as recorded.
	if d.Status != domain.InvitationPending {
		metrics.InvitationValidationsTotal.WithLabelValues(string(d.Status)).Inc()
		log.Info("invitation already resolved", slog.String("status", string(d.Status)))
		return InvitationSummary{}, d, &AlreadyResolvedError{Status: d.Status}
	}

	// 3. Pending but past its deadline: persist the expiry first.
	if d.IsExpiredAt(now) {
		if err := s.expire(ctx, s.Store, hash, now); err != nil {
			metrics.InvitationValidationsTotal.WithLabelValues("error").Inc()
			return InvitationSummary{}, d, err
		}
		metrics.InvitationValidationsTotal.WithLabelValues("expired").Inc()
		log.Warn("invitation expired on validation", slog.Time("expires_at", d.ExpiresAt))
		return InvitationSummary{}, d, domain.ErrInvitationExpired
	}

	// 4. Valid: report without touching the record.
	metrics.InvitationValidationsTotal.WithLabelValues("valid").Inc()
	return summarize(d), d, nil
}

// expire moves a pending invitation to expired. Losing the race to another
// writer means the invitation is already terminal, which is treated as done.
func (s *InvitationService) expire(ctx context.Context, st store.Store, hash string, now time.Time) error {
	log := slogx.FromContext(ctx)

	if err := domain.Transition(domain.InvitationPending, domain.InvitationExpired); err != nil {
		log.Error("state machine rejected expiry", slog.Any("error", err))
		return err
	}

	err := st.Invitations().UpdateStatusByTokenHash(ctx, hash, domain.InvitationPending, domain.InvitationExpired, "", now)
	switch {
	case err == nil:
		metrics.InvitationTransitionsTotal.WithLabelValues(string(domain.InvitationExpired)).Inc()
		return nil
	case errors.Is(err, store.ErrConflict):
		log.Info("invitation left pending concurrently")
		return nil
	default:
		log.Error("failed to persist invitation expiry", slog.Any("error", err))
		return storeFailure("expire invitation", err)
	}
}

func summarize(d domain.InvitationDetails) InvitationSummary {
	out := InvitationSummary{
		ID:               d.ID,
		Email:            d.Email,
		Role:             d.Role,
		OrganizationID:   d.OrganizationID,
		OrganizationName: d.OrganizationName,
		InvitedByName:    domain.DisplayName(d.InviterFirstName, d.InviterLastName),
		ExpiresAt:        d.ExpiresAt,
	}
	if d.RegionName != "" {
		name := d.RegionName
		out.RegionName = &name
	}
	return out
}

// CreateInvitation issues a pending invitation into the caller's
// organization. The raw token is returned once and only its fingerprint is
// stored.
func (s *InvitationService) CreateInvitation(ctx context.Context, p domain.Principal, in CreateInvitationInput) (CreatedInvitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Caller must be allowed to invite at all.
	if err := requirePermission(ctx, p, domain.PermInviteUsers); err != nil {
		return CreatedInvitation{}, err
	}

	// 2. Nobody invites above their own rank.
	if !in.Role.IsValid() {
		return CreatedInvitation{}, ErrInvalidRole
	}
	if !CanManage(p.Role, in.Role) {
		log.Warn("attempted to invite above own role",
			slog.String("role", string(p.Role)),
			slog.String("invited_role", string(in.Role)),
		)
		return CreatedInvitation{}, ErrForbidden
	}

	// 3. Lifetime.
	ttl := in.TTL
	if ttl == 0 {
		ttl = s.DefaultTTL
	}
	if ttl == 0 {
		ttl = DefaultInvitationTTL
	}
	if ttl < 0 || ttl > MaxInvitationTTL {
		return CreatedInvitation{}, ErrInvalidTTL
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	// 4. Region must belong to the caller's organization.
	if in.RegionID != "" {
		region, err := s.Store.Regions().GetRegionByID(ctx, in.RegionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return CreatedInvitation{}, ErrRegionNotFound
			}
			return CreatedInvitation{}, storeFailure("get region", err)
		}
		if region.OrganizationID != p.OrganizationID {
			return CreatedInvitation{}, ErrRegionNotFound
		}
	}

	now := s.now()

	// 5. One live invitation per email.
	pending, err := s.Store.Invitations().ListInvitations(ctx, p.OrganizationID, domain.InvitationPending)
	if err != nil {
		return CreatedInvitation{}, storeFailure("list invitations", err)
	}
	for _, existing := range pending {
		if strings.EqualFold(existing.Email, email) && !existing.IsExpiredAt(now) {
			return CreatedInvitation{}, ErrDuplicateInvite
		}
	}

	// 6. Mint and store.
	token, err := cryptox.NewInvitationToken()
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return CreatedInvitation{}, err
	}

	inv := domain.Invitation{
		ID:             idx.NewAt(now).String(),
		TokenHash:      cryptox.FingerprintToken(token),
		Email:          email,
		Role:           in.Role,
		OrganizationID: p.OrganizationID,
		RegionID:       in.RegionID,
		InvitedBy:      p.ProfileID,
		Status:         domain.InvitationPending,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation", slog.String("invitation_id", inv.ID), slog.Any("error", err))
		return CreatedInvitation{}, storeFailure("create invitation", err)
	}

	metrics.InvitationsCreatedTotal.WithLabelValues(string(inv.Role)).Inc()
	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("role", string(inv.Role)),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	return CreatedInvitation{Invitation: inv, Token: token}, nil
}

// AcceptInvitation redeems token for the caller. email is the caller's
// verified address and must match the invitation. The status change and the
// profile's organization assignment commit together.
func (s *InvitationService) AcceptInvitation(ctx context.Context, p domain.Principal, token, email string) (domain.UserProfile, error) {
	log := slogx.FromContext(ctx)

	if !p.IsActive() {
		return domain.UserProfile{}, ErrProfileInactive
	}
	if p.HasOrganization() {
		return domain.UserProfile{}, ErrAlreadyInOrg
	}

	now := s.now()

	// 1. Same checks an invitee sees on the landing page.
	summary, d, err := s.validate(ctx, token, now)
	if err != nil {
		return domain.UserProfile{}, err
	}

	// 2. Invitations are personal.
	if !strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(summary.Email)) {
		log.Warn("invitation email mismatch", slog.String("invitation_id", summary.ID))
		return domain.UserProfile{}, ErrEmailMismatch
	}

	inv := d.Invitation
	if err := inv.Accept(now, p.ProfileID); err != nil {
		return domain.UserProfile{}, err
	}

	// 3. Flip the invitation and join the organization atomically.
	var joined domain.UserProfile
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		err := tx.Invitations().UpdateStatusByTokenHash(ctx, inv.TokenHash,
			domain.InvitationPending, domain.InvitationAccepted, p.ProfileID, now)
		if err != nil {
			return err
		}
		if err := tx.Profiles().JoinOrganization(ctx, p.ProfileID, inv.OrganizationID, inv.Role); err != nil {
			return err
		}
		joined, err = tx.Profiles().GetProfileByID(ctx, p.ProfileID)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrConflict):
			// Someone else resolved it, or the profile joined elsewhere
			// in the meantime. Report the current state.
			return domain.UserProfile{}, s.resolvedAfterRace(ctx, inv.TokenHash, p.ProfileID)
		case errors.Is(err, store.ErrNotFound):
			return domain.UserProfile{}, ErrProfileNotFound
		default:
			log.Error("failed to accept invitation", slog.Any("error", err))
			return domain.UserProfile{}, storeFailure("accept invitation", err)
		}
	}

	metrics.InvitationTransitionsTotal.WithLabelValues(string(domain.InvitationAccepted)).Inc()
	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("organization_id", inv.OrganizationID),
		slog.String("role", string(inv.Role)),
	)
	return joined, nil
}

func (s *InvitationService) resolvedAfterRace(ctx context.Context, hash, profileID string) error {
	d, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, hash)
	if err != nil {
		return storeFailure("get invitation", err)
	}
	if d.Status != domain.InvitationPending {
		return &AlreadyResolvedError{Status: d.Status}
	}
	// Still pending, so the profile side conflicted.
	slogx.FromContext(ctx).Info("profile joined an organization concurrently", slog.String("profile_id", profileID))
	return ErrAlreadyInOrg
}

// RevokeInvitation withdraws a pending invitation in the caller's
// organization. Revoking a resolved invitation is domain.ErrInvalidTransition.
// A pending invitation past its deadline is expired instead and reported as
// domain.ErrInvitationExpired.
func (s *InvitationService) RevokeInvitation(ctx context.Context, p domain.Principal, invitationID string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if err := requirePermission(ctx, p, domain.PermRevokeInvitations); err != nil {
		return domain.Invitation{}, err
	}

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		return domain.Invitation{}, storeFailure("get invitation", err)
	}
	// Other organizations' invitations do not exist as far as the caller knows.
	if inv.OrganizationID != p.OrganizationID {
		return domain.Invitation{}, ErrInvitationNotFound
	}

	now := s.now()
	if inv.Status == domain.InvitationPending && inv.IsExpiredAt(now) {
		if err := s.expire(ctx, s.Store, inv.TokenHash, now); err != nil {
			return domain.Invitation{}, err
		}
		log.Info("revoke found invitation expired", slog.String("invitation_id", inv.ID))
		return domain.Invitation{}, domain.ErrInvitationExpired
	}
	if err := inv.Revoke(now); err != nil {
		log.Info("revoke rejected", slog.String("invitation_id", inv.ID), slog.String("status", string(inv.Status)))
		return domain.Invitation{}, err
	}

	err = s.Store.Invitations().UpdateStatusByTokenHash(ctx, inv.TokenHash,
		domain.InvitationPending, domain.InvitationRevoked, "", now)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Resolved between our read and write.
			cur, gerr := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
			if gerr != nil {
				return domain.Invitation{}, storeFailure("get invitation", gerr)
			}
			if cur.Status == domain.InvitationPending {
				log.Error("revoke conflicted but invitation is still pending", slog.String("invitation_id", inv.ID))
				return domain.Invitation{}, storeFailure("revoke invitation", err)
			}
			return domain.Invitation{}, domain.Transition(cur.Status, domain.InvitationRevoked)
		}
		log.Error("failed to revoke invitation", slog.Any("error", err))
		return domain.Invitation{}, storeFailure("revoke invitation", err)
	}

	metrics.InvitationTransitionsTotal.WithLabelValues(string(domain.InvitationRevoked)).Inc()
	log.Info("invitation revoked", slog.String("invitation_id", inv.ID))
	return inv, nil
}

// ListInvitations returns the caller's organization invitations. An empty
// status lists all of them. Pending invitations past their deadline are
// expired before the list is returned.
func (s *InvitationService) ListInvitations(ctx context.Context, p domain.Principal, status domain.InvitationStatus) ([]domain.Invitation, error) {
	if err := requirePermission(ctx, p, domain.PermViewInvitations); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatusQuery
	}

	invs, err := s.Store.Invitations().ListInvitations(ctx, p.OrganizationID, status)
	if err != nil {
		return nil, storeFailure("list invitations", err)
	}

	now := s.now()
	swept := false
	for _, inv := range invs {
		if inv.Status != domain.InvitationPending || !inv.IsExpiredAt(now) {
			continue
		}
		if err := s.expire(ctx, s.Store, inv.TokenHash, now); err != nil {
			return nil, err
		}
		swept = true
	}
	if !swept {
		return invs, nil
	}

	// Re-read so each row reports what was actually persisted.
	invs, err = s.Store.Invitations().ListInvitations(ctx, p.OrganizationID, status)
	if err != nil {
		return nil, storeFailure("list invitations", err)
	}
	return invs, nil
}
