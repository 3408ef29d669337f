package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/pkg/accesssdk"
	"github.com/aussiebroadwan/reservoir/pkg/httpx"
	"github.com/aussiebroadwan/reservoir/pkg/validate"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
	Validator         *validate.Validator
}

// HandleValidate godoc
//
//	@Summary		Validate Invitation Endpoint
//	@Description	Resolve an invitation token to the invitation it grants, without accepting it.
//	@Description	A pending invitation past its expiry is marked expired by this call.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accesssdk.ValidateInvitationRequest		true	"Invitation token"
//	@Success		200		{object}	accesssdk.ValidateInvitationResponse	"success, invitation"
//	@Failure		400		{object}	accesssdk.ErrorResponse					"missing token"
//	@Failure		404		{object}	accesssdk.ErrorResponse					"token not found"
//	@Failure		410		{object}	accesssdk.ErrorResponse					"invitation accepted, expired or revoked"
//	@Failure		500		{object}	accesssdk.ErrorResponse					"server error"
//	@Router			/v1/invitations/validate [post].
func (h *InvitationsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req accesssdk.ValidateInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, "invitation_token is required")
		return
	}

	token := strings.TrimSpace(req.InvitationToken)
	if token == "" {
		writeBadRequest(w, "invitation_token is required")
		return
	}

	summary, err := h.InvitationService.ValidateInvitation(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accesssdk.ValidateInvitationResponse{
		Success:    true,
		Invitation: summaryView(summary),
	})
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation Endpoint
//	@Description	Join the invitation's organization with its role. The token's email claim must match the invited address.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accesssdk.AcceptInvitationRequest	true	"Invitation token"
//	@Success		200		{object}	accesssdk.ProfileResponse			"updated profile"
//	@Failure		400		{object}	accesssdk.ErrorResponse				"missing token"
//	@Failure		403		{object}	accesssdk.ErrorResponse				"email mismatch or inactive profile"
//	@Failure		404		{object}	accesssdk.ErrorResponse				"token not found"
//	@Failure		409		{object}	accesssdk.ErrorResponse				"already in an organization"
//	@Failure		410		{object}	accesssdk.ErrorResponse				"invitation accepted, expired or revoked"
//	@Router			/v1/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.AcceptInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	claims, _ := httpx.ClaimsFromContext(ctx)
	profile, err := h.InvitationService.AcceptInvitation(ctx, principalFrom(ctx),
		strings.TrimSpace(req.InvitationToken), claims.NormalizedEmail())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accesssdk.ProfileResponse{Success: true, Profile: profileView(profile)})
}

// HandleCreate godoc
//
//	@Summary		Create Invitation Endpoint
//	@Description	Invite an email address into the caller's organization. The token is returned once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accesssdk.CreateInvitationRequest	true	"Invitation"
//	@Success		201		{object}	accesssdk.CreateInvitationResponse	"invitation, invitation_token"
//	@Failure		400		{object}	accesssdk.ErrorResponse				"validation failed"
//	@Failure		403		{object}	accesssdk.ErrorResponse				"insufficient permissions"
//	@Failure		404		{object}	accesssdk.ErrorResponse				"region not found"
//	@Failure		409		{object}	accesssdk.ErrorResponse				"pending invitation exists"
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.CreateInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.InvitationService.CreateInvitation(ctx, principalFrom(ctx), service.CreateInvitationInput{
		Email:    req.Email,
		Role:     domain.Role(req.Role),
		RegionID: req.RegionID,
		TTL:      time.Duration(req.TTLHours) * time.Hour,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, accesssdk.CreateInvitationResponse{
		Success:    true,
		Invitation: invitationView(created.Invitation),
		Token:      created.Token,
	})
}

// HandleList godoc
//
//	@Summary		List Invitations Endpoint
//	@Description	List the caller's organization invitations, newest first.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			status	query		string								false	"pending, accepted, expired or revoked"
//	@Success		200		{object}	accesssdk.ListInvitationsResponse	"invitations"
//	@Failure		400		{object}	accesssdk.ErrorResponse				"invalid status"
//	@Failure		403		{object}	accesssdk.ErrorResponse				"insufficient permissions"
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := domain.InvitationStatus(r.URL.Query().Get("status"))
	invs, err := h.InvitationService.ListInvitations(ctx, principalFrom(ctx), status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]accesssdk.Invitation, len(invs))
	for i, inv := range invs {
		out[i] = invitationView(inv)
	}
	httpx.WriteJSON(w, http.StatusOK, accesssdk.ListInvitationsResponse{Success: true, Invitations: out})
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation Endpoint
//	@Description	Withdraw a pending invitation.
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string							true	"Invitation ID"
//	@Success		200	{object}	accesssdk.InvitationResponse	"revoked invitation"
//	@Failure		403	{object}	accesssdk.ErrorResponse			"insufficient permissions"
//	@Failure		404	{object}	accesssdk.ErrorResponse			"invitation not found"
//	@Failure		409	{object}	accesssdk.ErrorResponse			"invitation already resolved"
//	@Failure		410	{object}	accesssdk.ErrorResponse			"invitation expired"
//	@Router			/v1/invitations/{id}/revoke [post].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := h.InvitationService.RevokeInvitation(ctx, principalFrom(ctx), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accesssdk.InvitationResponse{Success: true, Invitation: invitationView(inv)})
}
