package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/metrics"
	"github.com/aussiebroadwan/reservoir/pkg/slogx"
)

// Authorize reports whether role grants perm.
func Authorize(role domain.Role, perm domain.Permission) bool {
	return domain.HasPermission(role, perm)
}

// CanManage reports whether a user holding acting may administer a user
// holding target: acting must be at least as senior and hold manage_users.
// Unknown roles on either side are never manageable.
func CanManage(acting, target domain.Role) bool {
	ai, ok := domain.RoleIndex(acting)
	if !ok {
		return false
	}
	ti, ok := domain.RoleIndex(target)
	if !ok {
		return false
	}
	return ai <= ti && domain.HasPermission(acting, domain.PermManageUsers)
}

// requireMember checks the caller is active and onboarded.
func requireMember(p domain.Principal) error {
	if !p.IsActive() {
		return ErrProfileInactive
	}
	if !p.HasOrganization() {
		return ErrNoOrganization
	}
	return nil
}

// requirePermission is requireMember plus a permission check.
func requirePermission(ctx context.Context, p domain.Principal, perm domain.Permission) error {
	if err := requireMember(p); err != nil {
		return err
	}
	if !Authorize(p.Role, perm) {
		metrics.AuthorizationDeniedTotal.WithLabelValues(string(perm)).Inc()
		slogx.FromContext(ctx).Warn("permission denied",
			slog.String("profile_id", p.ProfileID),
			slog.String("role", string(p.Role)),
			slog.String("permission", string(perm)),
		)
		return ErrForbidden
	}
	return nil
}
