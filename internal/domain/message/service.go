package message

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"hometeam-go/internal/domain/unit"
)

const defaultListLimit = 50

// MembershipResolver gates reads and writes on active unit membership.
// Implemented by unit.Service.
type MembershipResolver interface {
	ActiveMember(ctx context.Context, unitID, userID string) (*unit.UnitMember, error)
}

type Service struct {
	repo    Repository
	members MembershipResolver
}

func NewService(repo Repository, members MembershipResolver) *Service {
	return &Service{repo: repo, members: members}
}

func (s *Service) PostMessage(ctx context.Context, unitID, senderID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.members.ActiveMember(ctx, unitID, senderID); err != nil {
		return nil, err
	}

	msg := Message{
		ID:       uuid.NewString(),
		UnitID:   unitID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, &msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	return &msg, nil
}

// ListMessages returns the most recent messages of a unit, newest first.
func (s *Service) ListMessages(ctx context.Context, unitID, requesterID string, limit int) ([]Message, error) {
	if _, err := s.members.ActiveMember(ctx, unitID, requesterID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	return s.repo.ListByUnit(ctx, unitID, limit)
}
