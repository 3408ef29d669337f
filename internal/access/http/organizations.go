package http

import (
	"net/http"

	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/pkg/accesssdk"
	"github.com/aussiebroadwan/reservoir/pkg/httpx"
	"github.com/aussiebroadwan/reservoir/pkg/validate"
)

type OrganizationsHandler struct {
	OrganizationService *service.OrganizationService
	Validator           *validate.Validator
}

// HandleCreate godoc
//
//	@Summary		Create Organization Endpoint
//	@Description	Create an organization with the caller as its owner. Only for callers without an organization.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accesssdk.CreateOrganizationRequest	true	"Organization"
//	@Success		201		{object}	accesssdk.OrganizationResponse		"organization"
//	@Failure		400		{object}	accesssdk.ErrorResponse				"validation failed"
//	@Failure		409		{object}	accesssdk.ErrorResponse				"already in an organization"
//	@Router			/v1/organizations [post].
func (h *OrganizationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.CreateOrganizationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	org, err := h.OrganizationService.CreateOrganization(ctx, principalFrom(ctx), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, accesssdk.OrganizationResponse{Success: true, Organization: organizationView(org)})
}

// HandleGetMine godoc
//
//	@Summary		Current Organization Endpoint
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accesssdk.OrganizationResponse	"organization"
//	@Failure		403	{object}	accesssdk.ErrorResponse			"no organization"
//	@Router			/v1/organizations/me [get].
func (h *OrganizationsHandler) HandleGetMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	org, err := h.OrganizationService.GetOrganization(ctx, principalFrom(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accesssdk.OrganizationResponse{Success: true, Organization: organizationView(org)})
}

// HandleCreateRegion godoc
//
//	@Summary		Create Region Endpoint
//	@Tags			Regions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		accesssdk.CreateRegionRequest	true	"Region"
//	@Success		201		{object}	accesssdk.RegionResponse		"region"
//	@Failure		400		{object}	accesssdk.ErrorResponse			"validation failed"
//	@Failure		403		{object}	accesssdk.ErrorResponse			"insufficient permissions"
//	@Failure		409		{object}	accesssdk.ErrorResponse			"duplicate region name"
//	@Router			/v1/regions [post].
func (h *OrganizationsHandler) HandleCreateRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accesssdk.CreateRegionRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	region, err := h.OrganizationService.CreateRegion(ctx, principalFrom(ctx), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, accesssdk.RegionResponse{Success: true, Region: regionView(region)})
}

// HandleListRegions godoc
//
//	@Summary		List Regions Endpoint
//	@Tags			Regions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accesssdk.ListRegionsResponse	"regions"
//	@Failure		403	{object}	accesssdk.ErrorResponse			"insufficient permissions"
//	@Router			/v1/regions [get].
func (h *OrganizationsHandler) HandleListRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regions, err := h.OrganizationService.ListRegions(ctx, principalFrom(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]accesssdk.Region, len(regions))
	for i, reg := range regions {
		out[i] = regionView(reg)
	}
	httpx.WriteJSON(w, http.StatusOK, accesssdk.ListRegionsResponse{Success: true, Regions: out})
}
