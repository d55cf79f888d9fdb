package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	messagedomain "hometeam-go/internal/domain/message"
	taskdomain "hometeam-go/internal/domain/task"
	unitdomain "hometeam-go/internal/domain/unit"
	userdomain "hometeam-go/internal/domain/user"
	"hometeam-go/internal/transport/httpserver/handler/common"
	"hometeam-go/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	Units    *unitdomain.Service
	Tasks    *taskdomain.Service
	Messages *messagedomain.Service

	validate *validator.Validate
	log      logger.Logger
}

func New(users *userdomain.Service, units *unitdomain.Service, tasks *taskdomain.Service, messages *messagedomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    users,
		Units:    units,
		Tasks:    tasks,
		Messages: messages,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
