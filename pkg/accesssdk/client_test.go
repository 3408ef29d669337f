package accesssdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/reservoir/pkg/accesssdk"
)

func TestValidateInvitation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/invitations/validate", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var req accesssdk.ValidateInvitationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		switch req.InvitationToken {
		case "abc123":
			_, _ = w.Write([]byte(`{"success":true,"invitation":{"id":"inv-1","email":"a@acme.example","role":"manager","organization_name":"Acme Water","organization_id":"org-1","invited_by_name":"Grace Hopper","expires_at":"2026-05-01T10:00:00Z"}}`))
		case "old":
			w.WriteHeader(http.StatusGone)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invitation expired","code":"expired"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invitation not found","code":"not_found"}`))
		}
	}))
	defer srv.Close()

	c := accesssdk.NewClient(srv.URL + "/")
	ctx := context.Background()

	inv, err := c.ValidateInvitation(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, "Acme Water", inv.OrganizationName)
	require.Nil(t, inv.RegionName)

	_, err = c.ValidateInvitation(ctx, "old")
	require.True(t, accesssdk.IsGone(err))
	var apiErr *accesssdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, accesssdk.CodeInvitationExpired, apiErr.Code)

	_, err = c.ValidateInvitation(ctx, "zzz")
	require.True(t, accesssdk.IsNotFound(err))
}

func TestSessionSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/invitations":
			require.Equal(t, "pending", r.URL.Query().Get("status"))
			_, _ = w.Write([]byte(`{"success":true,"invitations":[{"id":"inv-1","status":"pending"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/invitations/inv-1/revoke":
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invitation can no longer be revoked","code":"invalid_transition"}`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer srv.Close()

	s := accesssdk.NewClient(srv.URL).WithToken("tok-1")
	ctx := context.Background()

	invs, err := s.ListInvitations(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, invs, 1)

	_, err = s.RevokeInvitation(ctx, "inv-1")
	var apiErr *accesssdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, accesssdk.CodeInvalidState, apiErr.Code)

	// Bodies that are not an ErrorResponse still produce an APIError.
	_, err = s.ListRegions(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTeapot, apiErr.StatusCode)
}
