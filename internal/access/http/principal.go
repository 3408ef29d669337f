package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/pkg/accesssdk"
	"github.com/aussiebroadwan/reservoir/pkg/httpx"
	"github.com/aussiebroadwan/reservoir/pkg/slogx"
)

type ctxKey struct{}

func withPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func principalFrom(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(ctxKey{}).(domain.Principal)
	return p
}

// PrincipalMiddleware loads the profile of the authenticated subject. It
// must run after httpx.AuthnMiddleware.
func PrincipalMiddleware(profiles *service.ProfileService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sub := httpx.SubjectFromContext(ctx)
			if sub == "" {
				httpx.WriteError(w, http.StatusUnauthorized, accesssdk.CodeUnauthorized, "missing subject")
				return
			}

			p, err := profiles.Principal(ctx, sub)
			if err != nil {
				if errors.Is(err, service.ErrProfileNotFound) {
					httpx.WriteError(w, http.StatusForbidden, "profile_required",
						"No profile for this account, create one with POST /v1/profiles/me")
					return
				}
				slogx.FromContext(ctx).Error("failed to load principal", slog.Any("error", err))
				httpx.WriteError(w, http.StatusInternalServerError, accesssdk.CodeServerError, "Internal server error")
				return
			}

			ctx = slogx.With(withPrincipal(ctx, p), "role", string(p.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
