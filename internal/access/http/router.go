package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/reservoir/api/access" // Swagger docs
	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/metrics"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/internal/access/store"
	"github.com/aussiebroadwan/reservoir/pkg/httpx"
	"github.com/aussiebroadwan/reservoir/pkg/jwtx"
	"github.com/aussiebroadwan/reservoir/pkg/slogx"
	"github.com/aussiebroadwan/reservoir/pkg/validate"
)

// RouterOptions are the settings that do not come from a dependency.
type RouterOptions struct {
	BuildVersion string
	CORS         httpx.CORSConfig

	// Limits per endpoint class. A zero value uses the httpx defaults.
	Limits RateLimits
}

// RateLimits groups the limits applied per endpoint class.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
}

// DefaultRateLimits reads RATELIMIT_{STRICT,MODERATE,LENIENT}_* overrides.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		Moderate: httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
		Lenient:  httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       RateLimits
	validator    *validate.Validator

	store               store.Store
	InvitationService   *service.InvitationService
	ProfileService      *service.ProfileService
	OrganizationService *service.OrganizationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	st store.Store,
	logger *slog.Logger,
	opts RouterOptions,
) *Router {
	limits := opts.Limits
	if limits == (RateLimits{}) {
		limits = RateLimits{Strict: httpx.StrictLimit, Moderate: httpx.ModerateLimit, Lenient: httpx.LenientLimit}
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: opts.BuildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limits:       limits,
		validator:    newValidator(),
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(opts.CORS),
	}

	return r
}

func newValidator() *validate.Validator {
	v := validate.New()
	roles := make([]string, len(domain.Hierarchy))
	for i, role := range domain.Hierarchy {
		roles[i] = string(role)
	}
	if err := v.RegisterEnum("role", roles); err != nil {
		panic("register role validation: " + err.Error())
	}
	return v
}

func (r *Router) ApplyRoutes() {
	r.registerInvitations()
	r.registerProfiles()
	r.registerOrganizations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Reservoir Access Service API
//	@version		0.1.0
//	@description	Organization membership, roles and invitations for the reservoir monitoring platform.
//	@description
//	@description				Access tokens are issued by an external identity provider and verified against its JWKS.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/reservoir
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under pattern with latency metrics labelled by pattern.
func (r *Router) handle(pattern string, h http.Handler) {
	r.Mux.Handle(pattern, metrics.InstrumentRoute(pattern, h))
}

// authenticated verifies the bearer token only. Used where the caller may
// not have a profile yet.
func (r *Router) authenticated(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitBySubject(limit),
	)
}

// member verifies the bearer token and resolves the caller's profile.
func (r *Router) member(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitBySubject(limit),
		PrincipalMiddleware(r.ProfileService),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService, Validator: r.validator}

	// POST /validate - strict rate limit by IP (public, token is the only credential)
	r.handle("POST /v1/invitations/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// Accepting is also a token guess, keep it strict.
	r.handle("POST /v1/invitations/accept", r.member(h.HandleAccept, r.limits.Strict))

	r.handle("POST /v1/invitations", r.member(h.HandleCreate, r.limits.Moderate))
	r.handle("GET /v1/invitations", r.member(h.HandleList, r.limits.Moderate))
	r.handle("POST /v1/invitations/{id}/revoke", r.member(h.HandleRevoke, r.limits.Moderate))
}

func (r *Router) registerProfiles() {
	h := &ProfilesHandler{ProfileService: r.ProfileService, Validator: r.validator}

	r.handle("POST /v1/profiles/me", r.authenticated(h.HandleEnsure, r.limits.Moderate))
	r.handle("GET /v1/profiles/me", r.member(h.HandleGetMe, r.limits.Lenient))
	r.handle("PATCH /v1/profiles/me", r.member(h.HandleUpdateMe, r.limits.Moderate))
	r.handle("PATCH /v1/profiles/{id}/role", r.member(h.HandleChangeRole, r.limits.Moderate))
	r.handle("POST /v1/profiles/{id}/deactivate", r.member(h.HandleDeactivate, r.limits.Moderate))
}

func (r *Router) registerOrganizations() {
	h := &OrganizationsHandler{OrganizationService: r.OrganizationService, Validator: r.validator}

	r.handle("POST /v1/organizations", r.member(h.HandleCreate, r.limits.Strict))
	r.handle("GET /v1/organizations/me", r.member(h.HandleGetMine, r.limits.Lenient))
	r.handle("POST /v1/regions", r.member(h.HandleCreateRegion, r.limits.Moderate))
	r.handle("GET /v1/regions", r.member(h.HandleListRegions, r.limits.Lenient))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
