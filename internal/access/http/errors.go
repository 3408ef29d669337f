package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
	"github.com/aussiebroadwan/reservoir/internal/access/service"
	"github.com/aussiebroadwan/reservoir/pkg/accesssdk"
	"github.com/aussiebroadwan/reservoir/pkg/httpx"
	"github.com/aussiebroadwan/reservoir/pkg/slogx"
	"github.com/aussiebroadwan/reservoir/pkg/validate"
)

// Terminal invitation messages shown to the invitee.
var resolvedMessages = map[domain.InvitationStatus]string{
	domain.InvitationAccepted: "This invitation has already been accepted",
	domain.InvitationExpired:  "This invitation has expired",
	domain.InvitationRevoked:  "This invitation has been revoked",
}

func writeResolved(w http.ResponseWriter, status domain.InvitationStatus) {
	msg, ok := resolvedMessages[status]
	if !ok {
		msg = "This invitation can no longer be used"
	}
	httpx.WriteError(w, http.StatusGone, string(status), msg)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	httpx.WriteError(w, http.StatusBadRequest, accesssdk.CodeInvalidRequest, msg)
}

// writeError maps a service error to its response. Anything unrecognised is
// a 500 whose cause stays in the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var resolved *service.AlreadyResolvedError
	var fields validate.Errors

	switch {
	case errors.As(err, &resolved):
		writeResolved(w, resolved.Status)
	case errors.Is(err, domain.ErrInvitationExpired):
		writeResolved(w, domain.InvitationExpired)

	case errors.As(err, &fields):
		out := make([]accesssdk.FieldError, len(fields))
		for i, f := range fields {
			out[i] = accesssdk.FieldError{Field: f.Field, Message: f.Message}
		}
		httpx.WriteJSON(w, http.StatusBadRequest, accesssdk.ErrorResponse{
			Error:  "Request validation failed",
			Code:   accesssdk.CodeValidationFailed,
			Fields: out,
		})
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidTTL),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidOrgName),
		errors.Is(err, service.ErrInvalidStatusQuery):
		writeBadRequest(w, err.Error())

	case errors.Is(err, service.ErrInvitationNotFound):
		httpx.WriteError(w, http.StatusNotFound, accesssdk.CodeNotFound, "Invitation not found")
	case errors.Is(err, service.ErrProfileNotFound):
		httpx.WriteError(w, http.StatusNotFound, accesssdk.CodeNotFound, "Profile not found")
	case errors.Is(err, service.ErrRegionNotFound):
		httpx.WriteError(w, http.StatusNotFound, accesssdk.CodeNotFound, "Region not found")

	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, accesssdk.CodeForbidden, "Insufficient permissions")
	case errors.Is(err, service.ErrProfileInactive):
		httpx.WriteError(w, http.StatusForbidden, "profile_inactive", "Profile is deactivated")
	case errors.Is(err, service.ErrNoOrganization):
		httpx.WriteError(w, http.StatusForbidden, "no_organization", "Profile does not belong to an organization")
	case errors.Is(err, service.ErrSelfTarget):
		httpx.WriteError(w, http.StatusForbidden, accesssdk.CodeForbidden, "You cannot change your own access")
	case errors.Is(err, service.ErrEmailMismatch):
		httpx.WriteError(w, http.StatusForbidden, "email_mismatch", "Invitation was issued to a different email address")

	case errors.Is(err, service.ErrAlreadyInOrg),
		errors.Is(err, service.ErrDuplicateInvite),
		errors.Is(err, service.ErrDuplicateRegion):
		httpx.WriteError(w, http.StatusConflict, accesssdk.CodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		log.Error("invalid invitation transition", slog.Any("error", err))
		httpx.WriteError(w, http.StatusConflict, accesssdk.CodeInvalidState, "Invitation can no longer change status")

	default:
		log.Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, accesssdk.CodeServerError, "Internal server error")
	}
}
