package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"hometeam-go/internal/config"
	"hometeam-go/internal/transport/httpserver/handler"
	authmw "hometeam-go/internal/transport/httpserver/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.JWTAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/units", handlers.ListUnits)
			r.Post("/units", handlers.CreateUnit)
			r.Get("/units/{unit_id}", handlers.GetUnit)
			r.Put("/units/{unit_id}", handlers.UpdateUnit)
			r.Delete("/units/{unit_id}", handlers.DeleteUnit)

			r.Get("/units/{unit_id}/members", handlers.ListMembers)
			r.Post("/units/{unit_id}/members", handlers.InviteMember)
			r.Put("/units/{unit_id}/members/{member_id}", handlers.UpdateMemberRole)
			r.Put("/units/{unit_id}/members/{member_id}/status", handlers.SetMemberStatus)
			r.Delete("/units/{unit_id}/members/{member_id}", handlers.RemoveMember)

			r.Get("/invitations", handlers.ListInvitations)
			r.Put("/invitations/{invitation_id}", handlers.RespondToInvitation)

			r.Post("/tasks", handlers.CreateTask)
			r.Get("/tasks/unit/{unit_id}", handlers.ListUnitTasks)
			r.Get("/tasks/{task_id}", handlers.GetTask)
			r.Patch("/tasks/{task_id}/status", handlers.UpdateTaskStatus)
			r.Patch("/tasks/{task_id}/assign", handlers.AssignTask)
			r.Post("/tasks/{task_id}/media-upload-url", handlers.RequestUploadURL)
			r.Post("/tasks/{task_id}/media/{media_id}/confirm", handlers.ConfirmUpload)
			r.Delete("/tasks/{task_id}", handlers.DeleteTask)

			r.Get("/units/{unit_id}/messages", handlers.ListMessages)
			r.Post("/units/{unit_id}/messages", handlers.PostMessage)
		})
	})

	return r
}
