package unit

import "errors"

var (
	ErrUnitNotFound       = errors.New("unit not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotMember          = errors.New("not an active member of this unit")
	ErrNotAdmin           = errors.New("admin role required")
	ErrAlreadyMember      = errors.New("user is already a member of this unit")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid member status transition")
	ErrLastAdmin          = errors.New("unit must retain at least one active admin")
)
