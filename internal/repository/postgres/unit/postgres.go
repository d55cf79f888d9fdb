package unit

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	unitdomain "hometeam-go/internal/domain/unit"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(unitdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateUnit(ctx context.Context, u *unitdomain.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *PostgresRepository) GetUnit(ctx context.Context, unitID string) (*unitdomain.Unit, error) {
	var u unitdomain.Unit
	if err := r.db.WithContext(ctx).Where("id = ?", unitID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unitdomain.ErrUnitNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresRepository) ListUnitsByUser(ctx context.Context, userID string) ([]unitdomain.UnitSummary, error) {
	type summaryRow struct {
		ID          string    `gorm:"column:id"`
		Name        string    `gorm:"column:name"`
		CreatedAt   time.Time `gorm:"column:created_at"`
		UpdatedAt   time.Time `gorm:"column:updated_at"`
		MemberCount int64     `gorm:"column:member_count"`
		TaskCount   int64     `gorm:"column:task_count"`
	}

	var rows []summaryRow
	err := r.db.WithContext(ctx).
		Table("units").
		Select(`units.id, units.name, units.created_at, units.updated_at,
			(select count(*) from unit_members m where m.unit_id = units.id and m.status = ?) as member_count,
			(select count(*) from tasks t where t.unit_id = units.id) as task_count`,
			unitdomain.StatusActive).
		Joins("join unit_members on unit_members.unit_id = units.id").
		Where("unit_members.user_id = ? AND unit_members.status = ?", userID, unitdomain.StatusActive).
		Order("units.created_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]unitdomain.UnitSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, unitdomain.UnitSummary{
			Unit: unitdomain.Unit{
				ID:        row.ID,
				Name:      row.Name,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			MemberCount: row.MemberCount,
			TaskCount:   row.TaskCount,
		})
	}
	return summaries, nil
}

func (r *PostgresRepository) UpdateUnitName(ctx context.Context, unitID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&unitdomain.Unit{}).
		Where("id = ?", unitID).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return unitdomain.ErrUnitNotFound
	}
	return nil
}

// DeleteUnit relies on ON DELETE CASCADE for members, tasks, media and
// messages.
func (r *PostgresRepository) DeleteUnit(ctx context.Context, unitID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", unitID).Delete(&unitdomain.Unit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return unitdomain.ErrUnitNotFound
	}
	return nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *unitdomain.UnitMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) GetMember(ctx context.Context, unitID, userID string) (*unitdomain.UnitMember, error) {
	var member unitdomain.UnitMember
	err := r.db.WithContext(ctx).
		Where("unit_id = ? AND user_id = ?", unitID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unitdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) GetMemberByID(ctx context.Context, memberID string) (*unitdomain.UnitMember, error) {
	var member unitdomain.UnitMember
	if err := r.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unitdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, unitID string) ([]unitdomain.MemberWithUser, error) {
	type memberRow struct {
		ID        string    `gorm:"column:id"`
		UnitID    string    `gorm:"column:unit_id"`
		UserID    string    `gorm:"column:user_id"`
		Role      string    `gorm:"column:role"`
		Status    string    `gorm:"column:status"`
		CreatedAt time.Time `gorm:"column:created_at"`
		UpdatedAt time.Time `gorm:"column:updated_at"`
		Username  string    `gorm:"column:username"`
		Email     string    `gorm:"column:email"`
	}

	var rows []memberRow
	err := r.db.WithContext(ctx).
		Table("unit_members").
		Select("unit_members.*, users.username, users.email").
		Joins("join users on users.id = unit_members.user_id").
		Where("unit_members.unit_id = ?", unitID).
		Order("unit_members.created_at asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]unitdomain.MemberWithUser, 0, len(rows))
	for _, row := range rows {
		members = append(members, unitdomain.MemberWithUser{
			Member: unitdomain.UnitMember{
				ID:        row.ID,
				UnitID:    row.UnitID,
				UserID:    row.UserID,
				Role:      row.Role,
				Status:    row.Status,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
			User: unitdomain.UserSnapshot{
				ID:       row.UserID,
				Username: row.Username,
				Email:    row.Email,
			},
		})
	}
	return members, nil
}

// CountActiveAdmins locks the unit's active admin rows for the rest of
// the transaction, so concurrent demotions cannot both pass the quorum
// check. Postgres does not allow FOR UPDATE on an aggregate, hence the
// pluck-and-count.
func (r *PostgresRepository) CountActiveAdmins(ctx context.Context, unitID string) (int64, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&unitdomain.UnitMember{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("unit_id = ? AND role = ? AND status = ?", unitID, unitdomain.RoleAdmin, unitdomain.StatusActive).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (r *PostgresRepository) UpdateMemberRole(ctx context.Context, memberID, role string) error {
	return r.updateMember(ctx, memberID, map[string]any{"role": role})
}

func (r *PostgresRepository) UpdateMemberStatus(ctx context.Context, memberID, status string) error {
	return r.updateMember(ctx, memberID, map[string]any{"status": status})
}

func (r *PostgresRepository) updateMember(ctx context.Context, memberID string, fields map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&unitdomain.UnitMember{}).
		Where("id = ?", memberID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return unitdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, memberID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", memberID).Delete(&unitdomain.UnitMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return unitdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) ListPendingInvitations(ctx context.Context, userID string) ([]unitdomain.Invitation, error) {
	var members []unitdomain.UnitMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, unitdomain.StatusPending).
		Order("created_at desc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	unitIDs := make([]string, 0, len(members))
	for _, m := range members {
		unitIDs = append(unitIDs, m.UnitID)
	}

	var units []unitdomain.Unit
	if err := r.db.WithContext(ctx).Where("id IN ?", unitIDs).Find(&units).Error; err != nil {
		return nil, err
	}
	unitsByID := make(map[string]unitdomain.Unit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
	}

	invitations := make([]unitdomain.Invitation, 0, len(members))
	for _, m := range members {
		invitations = append(invitations, unitdomain.Invitation{
			Member: m,
			Unit:   unitsByID[m.UnitID],
		})
	}
	return invitations, nil
}

func (r *PostgresRepository) GetPendingInvitation(ctx context.Context, invitationID, userID string) (*unitdomain.UnitMember, error) {
	var member unitdomain.UnitMember
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", invitationID, userID, unitdomain.StatusPending).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unitdomain.ErrInvitationNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListRecentTasks(ctx context.Context, unitID string, limit int) ([]unitdomain.TaskSummary, error) {
	type taskRow struct {
		ID         string     `gorm:"column:id"`
		Title      string     `gorm:"column:title"`
		Status     string     `gorm:"column:status"`
		DueDate    *time.Time `gorm:"column:due_date"`
		AssigneeID *string    `gorm:"column:assignee_id"`
		CreatedAt  time.Time  `gorm:"column:created_at"`
	}

	var rows []taskRow
	err := r.db.WithContext(ctx).
		Table("tasks").
		Select("id, title, status, due_date, assignee_id, created_at").
		Where("unit_id = ?", unitID).
		Order("created_at desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]unitdomain.TaskSummary, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, unitdomain.TaskSummary{
			ID:         row.ID,
			Title:      row.Title,
			Status:     row.Status,
			DueDate:    row.DueDate,
			AssigneeID: row.AssigneeID,
			CreatedAt:  row.CreatedAt,
		})
	}
	return tasks, nil
}

func (r *PostgresRepository) UnassignMemberTasks(ctx context.Context, unitID, userID string) error {
	return r.db.WithContext(ctx).
		Table("tasks").
		Where("unit_id = ? AND assignee_id = ?", unitID, userID).
		Update("assignee_id", nil).Error
}
