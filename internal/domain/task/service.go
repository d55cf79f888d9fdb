package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"hometeam-go/internal/domain/unit"
)

// MembershipResolver is the membership-service dependency; it gates every
// task mutation. Implemented by unit.Service.
type MembershipResolver interface {
	ActiveMember(ctx context.Context, unitID, userID string) (*unit.UnitMember, error)
}

// UploadSigner issues time-limited PUT URLs for completion media.
// Implemented by the S3 gateway in internal/storage.
type UploadSigner interface {
	SignPutURL(ctx context.Context, key, contentType string) (uploadURL, fileURL string, err error)
}

type Service struct {
	repo    Repository
	members MembershipResolver
	signer  UploadSigner
}

func NewService(repo Repository, members MembershipResolver, signer UploadSigner) *Service {
	return &Service{repo: repo, members: members, signer: signer}
}

func (s *Service) CreateTask(ctx context.Context, creatorID string, input CreateTaskInput) (*Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	if _, err := s.members.ActiveMember(ctx, input.UnitID, creatorID); err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		if _, err := s.members.ActiveMember(ctx, input.UnitID, *input.AssigneeID); err != nil {
			if errors.Is(err, unit.ErrNotMember) {
				return nil, ErrInvalidAssignee
			}
			return nil, err
		}
	}

	created := Task{
		ID:          uuid.NewString(),
		UnitID:      input.UnitID,
		CreatorID:   creatorID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusPending,
		DueDate:     input.DueDate,
	}
	if err := s.repo.CreateTask(ctx, &created); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return &created, nil
}

func (s *Service) ListUnitTasks(ctx context.Context, unitID, requesterID string) ([]Task, error) {
	if _, err := s.members.ActiveMember(ctx, unitID, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListUnitTasks(ctx, unitID)
}

func (s *Service) GetTask(ctx context.Context, taskID, requesterID string) (*Task, error) {
	found, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.ActiveMember(ctx, found.UnitID, requesterID); err != nil {
		return nil, err
	}
	return found, nil
}

// UpdateStatus moves a task through the pending/inProgress/completed
// machine. Completion is restricted to the assignee or a unit admin.
func (s *Service) UpdateStatus(ctx context.Context, taskID, requesterID, newStatus string) (*Task, error) {
	if !validStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	found, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	member, err := s.members.ActiveMember(ctx, found.UnitID, requesterID)
	if err != nil {
		return nil, err
	}

	if newStatus == StatusCompleted {
		isAssignee := found.AssigneeID != nil && *found.AssigneeID == requesterID
		if !isAssignee && member.Role != unit.RoleAdmin {
			return nil, ErrCompleteForbidden
		}
	}

	if err := s.repo.UpdateTaskStatus(ctx, taskID, newStatus); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	found.Status = newStatus
	return found, nil
}

// AssignTask hands a task to an active member. Reassigning a completed
// task invalidates its prior completion and reverts it to inProgress.
func (s *Service) AssignTask(ctx context.Context, taskID, requesterID, assigneeID string) (*Task, error) {
	found, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	member, err := s.members.ActiveMember(ctx, found.UnitID, requesterID)
	if err != nil {
		return nil, err
	}
	if found.CreatorID != requesterID && member.Role != unit.RoleAdmin {
		return nil, ErrEditForbidden
	}

	if _, err := s.members.ActiveMember(ctx, found.UnitID, assigneeID); err != nil {
		if errors.Is(err, unit.ErrNotMember) {
			return nil, ErrInvalidAssignee
		}
		return nil, err
	}

	status := found.Status
	if status == StatusCompleted {
		status = StatusInProgress
	}

	if err := s.repo.UpdateTaskAssignment(ctx, taskID, assigneeID, status); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}

	found.AssigneeID = &assigneeID
	found.Status = status
	return found, nil
}

// RequestUploadURL issues a presigned PUT URL for completion evidence and
// records the media item as pending. The task stays in its current status
// until ConfirmUpload.
func (s *Service) RequestUploadURL(ctx context.Context, taskID, requesterID, filename, contentType string) (*UploadTicket, error) {
	if s.signer == nil {
		return nil, ErrStorageDisabled
	}

	mediaType, ok := allowedMediaTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedMedia
	}

	found, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if found.AssigneeID == nil || *found.AssigneeID != requesterID {
		return nil, ErrNotAssignee
	}

	key := fmt.Sprintf("tasks/%s/%s-%s", taskID, uuid.NewString(), filename)
	uploadURL, fileURL, err := s.signer.SignPutURL(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("sign upload url: %w", err)
	}

	item := MediaItem{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		URL:          fileURL,
		Type:         mediaType,
		Filename:     filename,
		MimeType:     contentType,
		Size:         0,
		UploadStatus: UploadPending,
		StorageKey:   key,
	}
	if err := s.repo.CreateMediaItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("create media item: %w", err)
	}

	return &UploadTicket{UploadURL: uploadURL, MediaID: item.ID, FileURL: fileURL}, nil
}

// ConfirmUpload finalizes the evidence after the client has PUT the bytes:
// the media item is marked completed with its real size and the task
// transitions to completed. Idempotent for already-confirmed media.
func (s *Service) ConfirmUpload(ctx context.Context, taskID, mediaID, requesterID string, size int64) (*MediaItem, error) {
	found, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if found.AssigneeID == nil || *found.AssigneeID != requesterID {
		return nil, ErrNotAssignee
	}

	item, err := s.repo.GetMediaItem(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	if item.TaskID != taskID {
		return nil, ErrMediaNotFound
	}
	if item.UploadStatus == UploadCompleted {
		return item, nil
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CompleteMediaItem(ctx, mediaID, size); err != nil {
			return err
		}
		return tx.UpdateTaskStatus(ctx, taskID, StatusCompleted)
	})
	if err != nil {
		return nil, fmt.Errorf("confirm upload: %w", err)
	}

	item.UploadStatus = UploadCompleted
	item.Size = size
	return item, nil
}

// DeleteTask removes the task and its media rows. Objects already
// uploaded to the bucket are left behind and cleaned up out of band.
func (s *Service) DeleteTask(ctx context.Context, taskID, requesterID string) error {
	found, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	member, err := s.members.ActiveMember(ctx, found.UnitID, requesterID)
	if err != nil {
		return err
	}
	if found.CreatorID != requesterID && member.Role != unit.RoleAdmin {
		return ErrEditForbidden
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteTaskMedia(ctx, taskID); err != nil {
			return err
		}
		return tx.DeleteTask(ctx, taskID)
	})
}
