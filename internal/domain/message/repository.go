package message

import "context"

type Repository interface {
	Create(ctx context.Context, msg *Message) error
	ListByUnit(ctx context.Context, unitID string, limit int) ([]Message, error)
}
