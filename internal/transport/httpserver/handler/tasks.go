package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	taskdomain "hometeam-go/internal/domain/task"
	"hometeam-go/internal/transport/httpserver/handler/common"
	"hometeam-go/internal/transport/httpserver/middleware"
)

type createTaskRequest struct {
	UnitID      string     `json:"unitId" validate:"required,uuid"`
	Title       string     `json:"title" validate:"required,min=1,max=256"`
	Description *string    `json:"description" validate:"omitempty,max=4096"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  *string    `json:"assigneeId" validate:"omitempty,uuid"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type assignTaskRequest struct {
	AssigneeID string `json:"assigneeId" validate:"required,uuid"`
}

type uploadURLRequest struct {
	Filename    string `json:"filename" validate:"required,max=256"`
	ContentType string `json:"contentType" validate:"required"`
}

type confirmUploadRequest struct {
	Size int64 `json:"size" validate:"min=0"`
}

type mediaResponse struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"taskId"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	Filename     string    `json:"filename"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	UploadStatus string    `json:"uploadStatus"`
	CreatedAt    time.Time `json:"createdAt"`
}

type taskResponse struct {
	ID          string          `json:"id"`
	UnitID      string          `json:"unitId"`
	CreatorID   string          `json:"creatorId"`
	AssigneeID  *string         `json:"assigneeId,omitempty"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Status      string          `json:"status"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Media       []mediaResponse `json:"media"`
}

type uploadTicketResponse struct {
	UploadURL string `json:"uploadUrl"`
	MediaID   string `json:"mediaId"`
	FileURL   string `json:"fileUrl"`
}

func toMediaResponse(m taskdomain.MediaItem) mediaResponse {
	return mediaResponse{
		ID:           m.ID,
		TaskID:       m.TaskID,
		URL:          m.URL,
		Type:         m.Type,
		Filename:     m.Filename,
		MimeType:     m.MimeType,
		Size:         m.Size,
		UploadStatus: m.UploadStatus,
		CreatedAt:    m.CreatedAt,
	}
}

func toTaskResponse(t taskdomain.Task) taskResponse {
	media := make([]mediaResponse, 0, len(t.Media))
	for _, m := range t.Media {
		media = append(media, toMediaResponse(m))
	}
	return taskResponse{
		ID:          t.ID,
		UnitID:      t.UnitID,
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Media:       media,
	}
}

func taskErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, taskdomain.ErrTaskNotFound):
		return http.StatusNotFound, "task_not_found", true
	case errors.Is(err, taskdomain.ErrMediaNotFound):
		return http.StatusNotFound, "media_not_found", true
	case errors.Is(err, taskdomain.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_status", true
	case errors.Is(err, taskdomain.ErrInvalidAssignee):
		return http.StatusBadRequest, "invalid_assignee", true
	case errors.Is(err, taskdomain.ErrUnsupportedMedia):
		return http.StatusBadRequest, "unsupported_media", true
	case errors.Is(err, taskdomain.ErrNotAssignee):
		return http.StatusForbidden, "not_assignee", true
	case errors.Is(err, taskdomain.ErrCompleteForbidden):
		return http.StatusForbidden, "complete_forbidden", true
	case errors.Is(err, taskdomain.ErrEditForbidden):
		return http.StatusForbidden, "edit_forbidden", true
	case errors.Is(err, taskdomain.ErrStorageDisabled):
		return http.StatusServiceUnavailable, "storage_disabled", true
	}
	return unitErrorStatus(err)
}

func (h *Handlers) writeTaskError(w http.ResponseWriter, op string, err error, args ...any) {
	if status, code, ok := taskErrorStatus(err); ok {
		h.log.BusinessError(op, err, args...)
		common.WriteError(w, status, code, err.Error())
		return
	}
	h.log.InternalError(op, err, args...)
	common.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createTaskRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.Tasks.CreateTask(r.Context(), user.ID, taskdomain.CreateTaskInput{
		UnitID:      req.UnitID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		h.writeTaskError(w, "tasks.create failed", err, "unit_id", req.UnitID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, toTaskResponse(*created))
}

func (h *Handlers) ListUnitTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	tasks, err := h.Tasks.ListUnitTasks(r.Context(), unitID, user.ID)
	if err != nil {
		h.writeTaskError(w, "tasks.list failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	items := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, toTaskResponse(t))
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "task_id")

	found, err := h.Tasks.GetTask(r.Context(), taskID, user.ID)
	if err != nil {
		h.writeTaskError(w, "tasks.get failed", err, "task_id", taskID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, toTaskResponse(*found))
}

func (h *Handlers) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "task_id")

	var req updateTaskStatusRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.Tasks.UpdateStatus(r.Context(), taskID, user.ID, req.Status)
	if err != nil {
		h.writeTaskError(w, "tasks.update_status failed", err, "task_id", taskID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, toTaskResponse(*updated))
}

func (h *Handlers) AssignTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "task_id")

	var req assignTaskRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.Tasks.AssignTask(r.Context(), taskID, user.ID, req.AssigneeID)
	if err != nil {
		h.writeTaskError(w, "tasks.assign failed", err, "task_id", taskID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, toTaskResponse(*updated))
}

func (h *Handlers) RequestUploadURL(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "task_id")

	var req uploadURLRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ticket, err := h.Tasks.RequestUploadURL(r.Context(), taskID, user.ID, req.Filename, req.ContentType)
	if err != nil {
		h.writeTaskError(w, "tasks.upload_url failed", err, "task_id", taskID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, uploadTicketResponse{
		UploadURL: ticket.UploadURL,
		MediaID:   ticket.MediaID,
		FileURL:   ticket.FileURL,
	})
}

func (h *Handlers) ConfirmUpload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "task_id")
	mediaID := chi.URLParam(r, "media_id")

	var req confirmUploadRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	item, err := h.Tasks.ConfirmUpload(r.Context(), taskID, mediaID, user.ID, req.Size)
	if err != nil {
		h.writeTaskError(w, "tasks.confirm_upload failed", err, "task_id", taskID, "media_id", mediaID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, toMediaResponse(*item))
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	taskID := chi.URLParam(r, "task_id")

	if err := h.Tasks.DeleteTask(r.Context(), taskID, user.ID); err != nil {
		h.writeTaskError(w, "tasks.delete failed", err, "task_id", taskID, "user_id", user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
