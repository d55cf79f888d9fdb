package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	unitdomain "hometeam-go/internal/domain/unit"
	"hometeam-go/internal/transport/httpserver/handler/common"
	"hometeam-go/internal/transport/httpserver/middleware"
)

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

type invitationResponse struct {
	ID        string       `json:"id"`
	Role      string       `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
	Unit      unitResponse `json:"unit"`
}

func toInvitationResponse(inv unitdomain.Invitation) invitationResponse {
	return invitationResponse{
		ID:        inv.Member.ID,
		Role:      inv.Member.Role,
		CreatedAt: inv.Member.CreatedAt,
		Unit:      toUnitResponse(inv.Unit),
	}
}

func (h *Handlers) ListInvitations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	invitations, err := h.Units.ListInvitations(r.Context(), user.ID)
	if err != nil {
		h.writeUnitError(w, "invitations.list failed", err, "user_id", user.ID)
		return
	}

	items := make([]invitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		items = append(items, toInvitationResponse(inv))
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	invitationID := chi.URLParam(r, "invitation_id")

	var req respondInvitationRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	member, err := h.Units.RespondToInvitation(r.Context(), invitationID, user.ID, req.Accept)
	if err != nil {
		h.writeUnitError(w, "invitations.respond failed", err, "invitation_id", invitationID, "user_id", user.ID)
		return
	}

	if member == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	common.WriteJSON(w, http.StatusOK, toMemberResponse(*member))
}
