package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/reservoir/internal/access/domain"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")

	ErrForbidden          = errors.New("insufficient permissions")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileInactive    = errors.New("profile is deactivated")
	ErrNoOrganization     = errors.New("profile does not belong to an organization")
	ErrAlreadyInOrg       = errors.New("profile already belongs to an organization")
	ErrSelfTarget         = errors.New("cannot change your own access")
	ErrEmailMismatch      = errors.New("invitation was issued to a different email address")
	ErrRegionNotFound     = errors.New("region not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidTTL         = errors.New("invalid invitation lifetime")
	ErrInvalidName        = errors.New("invalid name")
	ErrDuplicateInvite    = errors.New("a pending invitation already exists for this email")
	ErrInvalidStatusQuery = errors.New("invalid invitation status filter")
	ErrInvalidOrgName     = errors.New("invalid organization or region name")
	ErrDuplicateRegion    = errors.New("a region with this name already exists")
)

// AlreadyResolvedError reports a token whose invitation is in a terminal
// status recorded before this lookup.
type AlreadyResolvedError struct {
	Status domain.InvitationStatus
}

func (e *AlreadyResolvedError) Error() string {
	return "invitation " + e.Reason()
}

// Reason is the status-specific description shown to the invitee.
func (e *AlreadyResolvedError) Reason() string {
	switch e.Status {
	case domain.InvitationAccepted:
		return "already accepted"
	case domain.InvitationExpired:
		return "expired"
	case domain.InvitationRevoked:
		return "revoked"
	default:
		return string(e.Status)
	}
}

// StoreFailureError wraps an unexpected persistence fault. Cause is for
// server-side logs only.
type StoreFailureError struct {
	Op    string
	Cause error
}

func (e *StoreFailureError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Cause)
}

func (e *StoreFailureError) Unwrap() error { return e.Cause }

func storeFailure(op string, err error) error {
	return &StoreFailureError{Op: op, Cause: err}
}
