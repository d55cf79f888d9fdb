package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hometeam-go/internal/transport/httpserver/handler/common"
	"hometeam-go/internal/transport/httpserver/middleware"
)

type inviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin member"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}

type setMemberStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

func (h *Handlers) InviteMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	var req inviteMemberRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	invited, err := h.Units.InviteMember(r.Context(), unitID, user.ID, req.Email, req.Role)
	if err != nil {
		h.writeUnitError(w, "members.invite failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, toMemberResponse(*invited))
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	details, err := h.Units.GetUnit(r.Context(), unitID, user.ID)
	if err != nil {
		h.writeUnitError(w, "members.list failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	items := make([]memberResponse, 0, len(details.Members))
	for _, m := range details.Members {
		items = append(items, toMemberWithUserResponse(m))
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")
	memberID := chi.URLParam(r, "member_id")

	var req updateMemberRoleRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.Units.UpdateMemberRole(r.Context(), unitID, memberID, req.Role, user.ID)
	if err != nil {
		h.writeUnitError(w, "members.update_role failed", err, "unit_id", unitID, "member_id", memberID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, toMemberResponse(*updated))
}

func (h *Handlers) SetMemberStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")
	memberID := chi.URLParam(r, "member_id")

	var req setMemberStatusRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.Units.SetMemberStatus(r.Context(), unitID, memberID, req.Status, user.ID)
	if err != nil {
		h.writeUnitError(w, "members.set_status failed", err, "unit_id", unitID, "member_id", memberID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusOK, toMemberResponse(*updated))
}

func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")
	memberID := chi.URLParam(r, "member_id")

	if err := h.Units.RemoveMember(r.Context(), unitID, memberID, user.ID); err != nil {
		h.writeUnitError(w, "members.remove failed", err, "unit_id", unitID, "member_id", memberID, "user_id", user.ID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
