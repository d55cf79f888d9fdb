package task

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrMediaNotFound     = errors.New("media item not found")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidAssignee   = errors.New("assignee is not an active member of this unit")
	ErrNotAssignee       = errors.New("only the assigned user may upload completion media")
	ErrCompleteForbidden = errors.New("only the assignee or an admin may complete a task")
	ErrEditForbidden     = errors.New("only the task creator or an admin may modify this task")
	ErrUnsupportedMedia  = errors.New("file type not allowed")
	ErrStorageDisabled   = errors.New("media storage is not configured")
)
