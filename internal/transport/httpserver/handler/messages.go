package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	messagedomain "hometeam-go/internal/domain/message"
	"hometeam-go/internal/transport/httpserver/handler/common"
	"hometeam-go/internal/transport/httpserver/middleware"
)

type postMessageRequest struct {
	Content string `json:"content" validate:"required,max=4096"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	UnitID    string    `json:"unitId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func toMessageResponse(m messagedomain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		UnitID:    m.UnitID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func (h *Handlers) PostMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	var req postMessageRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	posted, err := h.Messages.PostMessage(r.Context(), unitID, user.ID, req.Content)
	if err != nil {
		if errors.Is(err, messagedomain.ErrEmptyContent) {
			common.WriteError(w, http.StatusBadRequest, "invalid_request", "message content is empty")
			return
		}
		h.writeUnitError(w, "messages.post failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	common.WriteJSON(w, http.StatusCreated, toMessageResponse(*posted))
}

func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	unitID := chi.URLParam(r, "unit_id")

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			common.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
			return
		}
		limit = parsed
	}

	messages, err := h.Messages.ListMessages(r.Context(), unitID, user.ID, limit)
	if err != nil {
		h.writeUnitError(w, "messages.list failed", err, "unit_id", unitID, "user_id", user.ID)
		return
	}

	items := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, toMessageResponse(m))
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
