package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid invitation status transition")
	ErrInvitationExpired = errors.New("invitation has expired")
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
	InvitationRevoked  InvitationStatus = "revoked"
)

// InvitationStatuses is the closed set of statuses.
var InvitationStatuses = []InvitationStatus{
	InvitationPending,
	InvitationAccepted,
	InvitationExpired,
	InvitationRevoked,
}

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationExpired, InvitationRevoked:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s InvitationStatus) IsTerminal() bool {
	return s == InvitationAccepted || s == InvitationExpired || s == InvitationRevoked
}

func (s InvitationStatus) String() string { return string(s) }

// CanTransition reports whether from -> to is a legal move. Only pending
// moves forward, and only into a terminal status.
func CanTransition(from, to InvitationStatus) bool {
	return from == InvitationPending && to.IsTerminal()
}

// Transition returns ErrInvalidTransition for anything CanTransition rejects.
func Transition(from, to InvitationStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Invitation grants Role in OrganizationID to whoever proves ownership of
// Email. Only the fingerprint of the token is ever stored.
type Invitation struct {
	ID             string
	TokenHash      string
	Email          string
	Role           Role
	OrganizationID string
	RegionID       string // Empty when not scoped to a region
	InvitedBy      string
	Status         InvitationStatus
	ExpiresAt      time.Time
	AcceptedBy     string // Empty until accepted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsExpiredAt reports whether now is at or past ExpiresAt.
func (i *Invitation) IsExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

func (i *Invitation) moveTo(to InvitationStatus, now time.Time) error {
	if err := Transition(i.Status, to); err != nil {
		return err
	}
	i.Status = to
	i.UpdatedAt = now
	return nil
}

// Expire moves a pending invitation to expired.
func (i *Invitation) Expire(now time.Time) error {
	return i.moveTo(InvitationExpired, now)
}

// Revoke moves a pending invitation to revoked.
func (i *Invitation) Revoke(now time.Time) error {
	return i.moveTo(InvitationRevoked, now)
}

// Accept moves a pending, unexpired invitation to accepted.
func (i *Invitation) Accept(now time.Time, profileID string) error {
	if i.Status == InvitationPending && i.IsExpiredAt(now) {
		return ErrInvitationExpired
	}
	if err := i.moveTo(InvitationAccepted, now); err != nil {
		return err
	}
	i.AcceptedBy = profileID
	return nil
}

// InvitationDetails is an invitation joined with the display fields needed to
// describe it to an invitee.
type InvitationDetails struct {
	Invitation

	OrganizationName string
	RegionName       string // Empty when the invitation has no region
	InviterFirstName string
	InviterLastName  string
}
