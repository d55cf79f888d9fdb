package unit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const recentTasksLimit = 5

// UserDirectory resolves users outside this domain. Implementations
// return ErrUserNotFound when no user matches.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	GetByID(ctx context.Context, id string) (*UserSnapshot, error)
}

// InviteNotifier delivers the invitation notice. Implementations handle
// their own failures; a lost email never fails the invite.
type InviteNotifier interface {
	InvitationCreated(ctx context.Context, email, unitName, inviterName string)
}

type Service struct {
	repo      Repository
	directory UserDirectory
	notifier  InviteNotifier
}

func NewService(repo Repository, directory UserDirectory, notifier InviteNotifier) *Service {
	return &Service{repo: repo, directory: directory, notifier: notifier}
}

// CreateUnit creates the unit and its first admin member atomically.
func (s *Service) CreateUnit(ctx context.Context, creatorID, name string) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	var result Unit
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		created := Unit{
			ID:   uuid.NewString(),
			Name: name,
		}
		if err := tx.CreateUnit(ctx, &created); err != nil {
			return err
		}

		member := UnitMember{
			ID:     uuid.NewString(),
			UnitID: created.ID,
			UserID: creatorID,
			Role:   RoleAdmin,
			Status: StatusActive,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) ListUnits(ctx context.Context, userID string) ([]UnitSummary, error) {
	return s.repo.ListUnitsByUser(ctx, userID)
}

func (s *Service) GetUnit(ctx context.Context, unitID, userID string) (*UnitDetails, error) {
	if _, err := s.requireActiveMember(ctx, s.repo, unitID, userID); err != nil {
		return nil, err
	}

	found, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListMembers(ctx, unitID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListRecentTasks(ctx, unitID, recentTasksLimit)
	if err != nil {
		return nil, err
	}

	return &UnitDetails{Unit: *found, Members: members, RecentTasks: tasks}, nil
}

func (s *Service) UpdateUnit(ctx context.Context, unitID, userID, name string) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if _, err := s.requireActiveAdmin(ctx, s.repo, unitID, userID); err != nil {
		return nil, err
	}

	found, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateUnitName(ctx, unitID, name); err != nil {
		return nil, err
	}

	found.Name = name
	return found, nil
}

// DeleteUnit removes the unit; members, tasks and media go with it via
// the schema's cascade rules.
func (s *Service) DeleteUnit(ctx context.Context, unitID, userID string) error {
	if _, err := s.requireActiveAdmin(ctx, s.repo, unitID, userID); err != nil {
		return err
	}
	return s.repo.DeleteUnit(ctx, unitID)
}

func (s *Service) InviteMember(ctx context.Context, unitID, requesterID, email, role string) (*UnitMember, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = RoleMember
	}

	requester, err := s.requireActiveAdmin(ctx, s.repo, unitID, requesterID)
	if err != nil {
		return nil, err
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	invitee, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetMember(ctx, unitID, invitee.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	member := UnitMember{
		ID:     uuid.NewString(),
		UnitID: unitID,
		UserID: invitee.ID,
		Role:   role,
		Status: StatusPending,
	}
	if err := s.repo.AddMember(ctx, &member); err != nil {
		return nil, err
	}

	inviterName := requester.UserID
	if inviter, err := s.directory.GetByID(ctx, requester.UserID); err == nil {
		inviterName = inviter.Username
	}
	if found, err := s.repo.GetUnit(ctx, unitID); err == nil {
		s.notifier.InvitationCreated(ctx, invitee.Email, found.Name, inviterName)
	}

	return &member, nil
}

func (s *Service) ListInvitations(ctx context.Context, userID string) ([]Invitation, error) {
	return s.repo.ListPendingInvitations(ctx, userID)
}

func (s *Service) RespondToInvitation(ctx context.Context, invitationID, userID string, accept bool) (*UnitMember, error) {
	invitation, err := s.repo.GetPendingInvitation(ctx, invitationID, userID)
	if err != nil {
		return nil, err
	}

	if !accept {
		if err := s.repo.DeleteMember(ctx, invitation.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.repo.UpdateMemberStatus(ctx, invitation.ID, StatusActive); err != nil {
		return nil, err
	}
	invitation.Status = StatusActive
	return invitation, nil
}

// UpdateMemberRole changes a member's role. The admin check, the
// last-admin check and the write run in one transaction so two concurrent
// demotions cannot both pass the precondition.
func (s *Service) UpdateMemberRole(ctx context.Context, unitID, memberID, newRole, requesterID string) (*UnitMember, error) {
	var result UnitMember
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := s.requireActiveAdmin(ctx, tx, unitID, requesterID); err != nil {
			return err
		}
		if !validRole(newRole) {
			return ErrInvalidRole
		}

		target, err := s.memberInUnit(ctx, tx, unitID, memberID)
		if err != nil {
			return err
		}

		if target.IsActiveAdmin() && newRole != RoleAdmin {
			if err := s.ensureNotLastAdmin(ctx, tx, unitID); err != nil {
				return err
			}
		}

		if err := tx.UpdateMemberRole(ctx, memberID, newRole); err != nil {
			return err
		}

		result = *target
		result.Role = newRole
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// RemoveMember deletes a membership. Admins may remove anyone, members may
// remove themselves. Tasks assigned to the removed user are unassigned
// first so no dangling assignee reference survives.
func (s *Service) RemoveMember(ctx context.Context, unitID, memberID, requesterID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		target, err := s.memberInUnit(ctx, tx, unitID, memberID)
		if err != nil {
			return err
		}

		if target.UserID != requesterID {
			if _, err := s.requireActiveAdmin(ctx, tx, unitID, requesterID); err != nil {
				return err
			}
		}

		if target.IsActiveAdmin() {
			if err := s.ensureNotLastAdmin(ctx, tx, unitID); err != nil {
				return err
			}
		}

		if err := tx.UnassignMemberTasks(ctx, unitID, target.UserID); err != nil {
			return err
		}
		return tx.DeleteMember(ctx, target.ID)
	})
}

// SetMemberStatus blocks or unblocks a member. Only transitions between
// active and blocked are allowed; pending rows are invitations and go through
// RespondToInvitation instead.
func (s *Service) SetMemberStatus(ctx context.Context, unitID, memberID, status, requesterID string) (*UnitMember, error) {
	if status != StatusActive && status != StatusBlocked {
		return nil, ErrInvalidStatus
	}

	var result UnitMember
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := s.requireActiveAdmin(ctx, tx, unitID, requesterID); err != nil {
			return err
		}

		target, err := s.memberInUnit(ctx, tx, unitID, memberID)
		if err != nil {
			return err
		}
		if target.Status == StatusPending || target.Status == status {
			return ErrInvalidStatus
		}

		if status == StatusBlocked {
			if target.IsActiveAdmin() {
				if err := s.ensureNotLastAdmin(ctx, tx, unitID); err != nil {
					return err
				}
			}
			if err := tx.UnassignMemberTasks(ctx, unitID, target.UserID); err != nil {
				return err
			}
		}

		if err := tx.UpdateMemberStatus(ctx, target.ID, status); err != nil {
			return err
		}

		result = *target
		result.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ActiveMember returns the user's active membership in the unit, or
// ErrNotMember. Other domains use this as their permission gate.
func (s *Service) ActiveMember(ctx context.Context, unitID, userID string) (*UnitMember, error) {
	return s.requireActiveMember(ctx, s.repo, unitID, userID)
}

// HasPermission is a pure lookup: active membership plus the static
// role permission table.
func (s *Service) HasPermission(ctx context.Context, userID, unitID, permission string) (bool, error) {
	member, err := s.repo.GetMember(ctx, unitID, userID)
	if errors.Is(err, ErrMemberNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !member.IsActive() {
		return false, nil
	}
	return roleHasPermission(member.Role, permission), nil
}

func (s *Service) requireActiveMember(ctx context.Context, repo Repository, unitID, userID string) (*UnitMember, error) {
	member, err := repo.GetMember(ctx, unitID, userID)
	if errors.Is(err, ErrMemberNotFound) {
		return nil, ErrNotMember
	}
	if err != nil {
		return nil, err
	}
	if !member.IsActive() {
		return nil, ErrNotMember
	}
	return member, nil
}

func (s *Service) requireActiveAdmin(ctx context.Context, repo Repository, unitID, userID string) (*UnitMember, error) {
	member, err := s.requireActiveMember(ctx, repo, unitID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != RoleAdmin {
		return nil, ErrNotAdmin
	}
	return member, nil
}

func (s *Service) memberInUnit(ctx context.Context, repo Repository, unitID, memberID string) (*UnitMember, error) {
	target, err := repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if target.UnitID != unitID {
		return nil, ErrMemberNotFound
	}
	return target, nil
}

// ensureNotLastAdmin fails when the unit has one or fewer active admins.
// Only status=active admins count toward the quorum.
func (s *Service) ensureNotLastAdmin(ctx context.Context, repo Repository, unitID string) error {
	count, err := repo.CountActiveAdmins(ctx, unitID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}
