package message

import (
	"context"

	"gorm.io/gorm"

	messagedomain "hometeam-go/internal/domain/message"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *messagedomain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *PostgresRepository) ListByUnit(ctx context.Context, unitID string, limit int) ([]messagedomain.Message, error) {
	var messages []messagedomain.Message
	err := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("created_at desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
