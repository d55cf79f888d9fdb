package unit

import "time"

const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type Unit struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// UnitMember links a user to a unit. A row with StatusPending doubles as
// an invitation; acceptance flips it to StatusActive, rejection deletes it.
type UnitMember struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UnitID    string    `gorm:"type:uuid;index;not null;uniqueIndex:idx_unit_members_user_unit,priority:2"`
	UserID    string    `gorm:"type:uuid;index;not null;uniqueIndex:idx_unit_members_user_unit,priority:1"`
	Role      string    `gorm:"type:varchar(16);not null"`
	Status    string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (m *UnitMember) IsActive() bool {
	return m.Status == StatusActive
}

func (m *UnitMember) IsActiveAdmin() bool {
	return m.Role == RoleAdmin && m.Status == StatusActive
}

// UserSnapshot is the slice of the user record exposed alongside
// memberships.
type UserSnapshot struct {
	ID       string
	Username string
	Email    string
}

type MemberWithUser struct {
	Member UnitMember
	User   UserSnapshot
}

// UnitSummary is a listing row with member and task counts.
type UnitSummary struct {
	Unit        Unit
	MemberCount int64
	TaskCount   int64
}

// TaskSummary is the slim task view embedded in unit details.
type TaskSummary struct {
	ID         string
	Title      string
	Status     string
	DueDate    *time.Time
	AssigneeID *string
	CreatedAt  time.Time
}

type UnitDetails struct {
	Unit        Unit
	Members     []MemberWithUser
	RecentTasks []TaskSummary
}

// Invitation is a pending membership together with the unit it offers.
type Invitation struct {
	Member UnitMember
	Unit   Unit
}

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}
