package unit

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateUnit(ctx context.Context, u *Unit) error
	GetUnit(ctx context.Context, unitID string) (*Unit, error)
	ListUnitsByUser(ctx context.Context, userID string) ([]UnitSummary, error)
	UpdateUnitName(ctx context.Context, unitID, name string) error
	DeleteUnit(ctx context.Context, unitID string) error

	AddMember(ctx context.Context, member *UnitMember) error
	GetMember(ctx context.Context, unitID, userID string) (*UnitMember, error)
	GetMemberByID(ctx context.Context, memberID string) (*UnitMember, error)
	ListMembers(ctx context.Context, unitID string) ([]MemberWithUser, error)
	CountActiveAdmins(ctx context.Context, unitID string) (int64, error)
	UpdateMemberRole(ctx context.Context, memberID, role string) error
	UpdateMemberStatus(ctx context.Context, memberID, status string) error
	DeleteMember(ctx context.Context, memberID string) error

	ListPendingInvitations(ctx context.Context, userID string) ([]Invitation, error)
	GetPendingInvitation(ctx context.Context, invitationID, userID string) (*UnitMember, error)

	ListRecentTasks(ctx context.Context, unitID string, limit int) ([]TaskSummary, error)
	UnassignMemberTasks(ctx context.Context, unitID, userID string) error
}
