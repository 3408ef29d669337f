package http

import (
	"net/http"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/pkg/accesssdk"
	"github.com/aussiebroadwan/reservoir/pkg/httpx"
	"github.com/aussiebroadwan/reservoir/pkg/validate"
)

type ProfilesHandler struct {
	ProfileService *service.ProfileService
	Validator      *validate.Validator
}

func (h *ProfilesHandler) writeProfile(w http.ResponseWriter, r *http.Request, p domain.UserProfile, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accesssdk.ProfileResponse{Success: true, Profile: profileView(p)})
}

// HandleEnsure godoc
//
//	@Summary		Ensure Profile Endpoint
//	@Description	Create the caller's profile on first sign-in, or return the existing one.
//	@Description	Names default to the token's given_name and family_name claims. The body is optional.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accesssdk.EnsureProfileRequest	false	"Display name"
//	@Success		200		{object}	accesssdk.ProfileResponse		"profile"
//	@Failure		400		{object}	accesssdk.ErrorResponse			"validation failed"
//	@Failure		401		{object}	accesssdk.ErrorResponse			"unauthorized"
//	@Router			/v1/profiles/me [post].
func (h *ProfilesHandler) HandleEnsure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.EnsureProfileRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			writeBadRequest(w, err.Error())
			return
		}
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	claims, _ := httpx.ClaimsFromContext(ctx)
	if req.FirstName == "" && req.LastName == "" {
		req.FirstName, req.LastName = claims.GivenName, claims.FamilyName
	}

	p, err := h.ProfileService.EnsureProfile(ctx, claims.Subject, req.FirstName, req.LastName)
	h.writeProfile(w, r, p, err)
}

// HandleGetMe godoc
//
//	@Summary		Current Profile Endpoint
//	@Description	The caller's profile with its effective permissions.
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accesssdk.ProfileResponse	"profile"
//	@Failure		403	{object}	accesssdk.ErrorResponse		"no profile yet"
//	@Router			/v1/profiles/me [get].
func (h *ProfilesHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.ProfileService.GetProfile(ctx, principalFrom(ctx).ProfileID)
	h.writeProfile(w, r, p, err)
}

// HandleUpdateMe godoc
//
//	@Summary		Update Profile Endpoint
//	@Description	Change the caller's display name.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accesssdk.EnsureProfileRequest	true	"Display name"
//	@Success		200		{object}	accesssdk.ProfileResponse		"profile"
//	@Failure		400		{object}	accesssdk.ErrorResponse			"validation failed"
//	@Failure		403		{object}	accesssdk.ErrorResponse			"profile deactivated"
//	@Router			/v1/profiles/me [patch].
func (h *ProfilesHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.EnsureProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.ProfileService.UpdateName(ctx, principalFrom(ctx), req.FirstName, req.LastName)
	h.writeProfile(w, r, p, err)
}

// HandleChangeRole godoc
//
//	@Summary		Change Role Endpoint
//	@Description	Assign a role to another member. The caller must be at least as senior as both the current and the new role.
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Profile ID"
//	@Param			request	body		accesssdk.ChangeRoleRequest	true	"New role"
//	@Success		200		{object}	accesssdk.ProfileResponse	"profile"
//	@Failure		400		{object}	accesssdk.ErrorResponse		"validation failed"
//	@Failure		403		{object}	accesssdk.ErrorResponse		"insufficient permissions"
//	@Failure		404		{object}	accesssdk.ErrorResponse		"profile not found"
//	@Router			/v1/profiles/{id}/role [patch].
func (h *ProfilesHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.ChangeRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.ProfileService.ChangeRole(ctx, principalFrom(ctx), r.PathValue("id"), domain.Role(req.Role))
	h.writeProfile(w, r, p, err)
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate Profile Endpoint
//	@Description	Mark another member inactive. Repeating the call is a no-op.
//	@Tags			Profiles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string						true	"Profile ID"
//	@Success		200	{object}	accesssdk.ProfileResponse	"profile"
//	@Failure		403	{object}	accesssdk.ErrorResponse		"insufficient permissions"
//	@Failure		404	{object}	accesssdk.ErrorResponse		"profile not found"
//	@Router			/v1/profiles/{id}/deactivate [post].
func (h *ProfilesHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.ProfileService.Deactivate(ctx, principalFrom(ctx), r.PathValue("id"))
	h.writeProfile(w, r, p, err)
}
