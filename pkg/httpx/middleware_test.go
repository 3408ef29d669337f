package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/reservoir/pkg/httpx"
	"github.com/aussiebroadwan/reservoir/pkg/jwtx/jwtxtest"
)

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, tag("outer"), tag("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestCORS(t *testing.T) {
	h := httpx.CORS(httpx.DefaultCORS())(okHandler)

	t.Run("preflight on any path", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/anything/at/all", nil))

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("specific origin gets credentials", func(t *testing.T) {
		cfg := httpx.DefaultCORS()
		cfg.AllowedOrigins = []string{"https://dash.example"}
		h := httpx.CORS(cfg)(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/v1/regions", nil)
		req.Header.Set("Origin", "https://dash.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets no allow-origin", func(t *testing.T) {
		cfg := httpx.DefaultCORS()
		cfg.AllowedOrigins = []string{"https://dash.example"}
		h := httpx.CORS(cfg)(okHandler)

		req := httptest.NewRequest(http.MethodGet, "/v1/regions", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAuthnMiddleware(t *testing.T) {
	iss := jwtxtest.NewIssuer(t)

	var gotSub string
	h := httpx.AuthnMiddleware(iss.Verifier(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub = httpx.SubjectFromContext(r.Context())
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "alex@example.com", claims.Email)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil)
		req.Header.Set("Authorization", "Bearer "+iss.Token(t, "profile-9", "alex@example.com"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "profile-9", gotSub)
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic Zm9vOmJhcg==",
		"garbage token":  "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/profiles/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		})
	}
}
