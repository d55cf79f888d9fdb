package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	unitdomain "hometeam-go/internal/domain/unit"
	"hometeam-go/internal/transport/httpserver/handler/common"
	"hometeam-go/internal/transport/httpserver/middleware"
)

type createUnitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

type updateUnitRequest struct {
	Name string `json:"name" validate:"required,min=1,max=128"`
}

type unitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type unitSummaryResponse struct {
	unitResponse
	MemberCount int64 `json:"memberCount"`
	TaskCount   int64 `json:"taskCount"`
}

type memberResponse struct {
	ID          string             `json:"id"`
	UnitID      string             `json:"unitId"`
	UserID      string             `json:"userId"`
	Role        string             `json:"role"`
	Status      string             `json:"status"`
	Permissions []string           `json:"permissions"`
	JoinedAt    time.Time          `json:"joinedAt"`
	User        *memberUserPayload `json:"user,omitempty"`
}

type memberUserPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type taskSummaryResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	AssigneeID *string    `json:"assigneeId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type unitDetailsResponse struct {
	unitResponse
	Members     []memberResponse      `json:"members"`
	RecentTasks []taskSummaryResponse `json:"recentTasks"`
}

func toUnitResponse(u unitdomain.Unit) unitResponse {
	return unitResponse{
		ID:        u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toMemberResponse(m unitdomain.UnitMember) memberResponse {
	return memberResponse{
		ID:          m.ID,
		UnitID:      m.UnitID,
		UserID:      m.UserID,
		Role:        m.Role,
		Status:      m.Status,
		Permissions: unitdomain.PermissionsForRole(m.Role),
		JoinedAt:    m.CreatedAt,
	}
}

func toMemberWithUserResponse(m unitdomain.MemberWithUser) memberResponse {
	resp := toMemberResponse(m.Member)
	resp.User = &memberUserPayload{
		ID:       m.User.ID,
		Username: m.User.Username,
		Email:    m.User.Email,
	}
	return resp
}

func toTaskSummaryResponse(t unitdomain.TaskSummary) taskSummaryResponse {
	return taskSummaryResponse{
		ID:         t.ID,
		Title:      t.Title,
		Status:     t.Status,
		DueDate:    t.DueDate,
		AssigneeID: t.AssigneeID,
		CreatedAt:  t.CreatedAt,
	}
}

// unitErrorStatus maps unit domain errors to an HTTP status and error
// code. Unmapped errors are internal.
func unitErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, unitdomain.ErrUnitNotFound):
		return http.StatusNotFound, "unit_not_found", true
	case errors.Is(err, unitdomain.ErrMemberNotFound):
		return http.StatusNotFound, "member_not_found", true
	case errors.Is(err, unitdomain.ErrInvitationNotFound):
		return http.StatusNotFound, "invitation_not_found", true
	case errors.Is(err, unitdomain.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found", true
	case errors.Is(err, unitdomain.ErrNotMember):
		return http.StatusForbidden, "not_member", true
	case errors.Is(err, unitdomain.ErrNotAdmin):
		return http.StatusForbidden, "not_admin", true
	case errors.Is(err, unitdomain.ErrAlreadyMember):
		return http.StatusConflict, "already_member", true
	case errors.Is(err, unitdomain.ErrLastAdmin):
		return http.StatusBadRequest, "last_admin", true
	case errors.Is(err, unitdomain.ErrInvalidRole):
		return http.StatusBadRequest, "invalid_role", true
	case errors.Is(err, unitdomain.ErrInvalidStatus):
		return http.StatusBadRequest, "invalid_status", true
	}
	return 0, "", false
}

func (h *Handlers) writeUnitError(w http.ResponseWriter, op string, err error, args ...any) {
	if status, code, ok := unitErrorStatus(err); ok {
		h.log.BusinessError(op, err, args...)
		common.WriteError(w, status, code, err.Error())
		return
	}
	h.log.InternalError(op, err, args...)
	common.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func (h *Handlers) CreateUnit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createUnitRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.Units.CreateUnit(r.Context(), user.ID, req.Name)
	if err != nil {
		h.writeUnitError(w, "units.create failed", err, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, toUnitResponse(*created))
}

func (h *Handlers) ListUnits(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	summaries, err := h.Units.ListUnits(r.Context(), user.ID)
	if err != nil {
		h.writeUnitError(w, "units.list failed", err, "user_id", user.ID)
		return
	}

	items := make([]unitSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, unitSummaryResponse{
			unitResponse: toUnitResponse(s.Unit),
			MemberCount:  s.MemberCount,
			TaskCount:    s.TaskCount,
		})
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) GetUnit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	details, err := h.Units.GetUnit(r.Context(), unitID, user.ID)
	if err != nil {
		h.writeUnitError(w, "units.get failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	members := make([]memberResponse, 0, len(details.Members))
	for _, m := range details.Members {
		members = append(members, toMemberWithUserResponse(m))
	}
	tasks := make([]taskSummaryResponse, 0, len(details.RecentTasks))
	for _, t := range details.RecentTasks {
		tasks = append(tasks, toTaskSummaryResponse(t))
	}

	common.WriteJSON(w, http.StatusOK, unitDetailsResponse{
		unitResponse: toUnitResponse(details.Unit),
		Members:      members,
		RecentTasks:  tasks,
	})
}

func (h *Handlers) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	var req updateUnitRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.Units.UpdateUnit(r.Context(), unitID, user.ID, req.Name)
	if err != nil {
		h.writeUnitError(w, "units.update failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, toUnitResponse(*updated))
}

func (h *Handlers) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	if err := h.Units.DeleteUnit(r.Context(), unitID, user.ID); err != nil {
		h.writeUnitError(w, "units.delete failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
