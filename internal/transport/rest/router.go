package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/rosterguard/roster-guardian/internal/auth"
	"github.com/rosterguard/roster-guardian/internal/comment"
	"github.com/rosterguard/roster-guardian/internal/issue"
	"github.com/rosterguard/roster-guardian/internal/roster"
	"github.com/rosterguard/roster-guardian/internal/status"
	"github.com/rosterguard/roster-guardian/internal/transport/middleware"
	"github.com/rosterguard/roster-guardian/internal/transport/swagger"
	"github.com/rosterguard/roster-guardian/internal/user"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	statusHandler *status.Handler,
	issueHandler *issue.Handler,
	commentHandler *comment.Handler,
	rosterHandler *roster.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Everything past this point requires a valid access token.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", userHandler.Me)
				ur.Get("/", userHandler.ListUsers)
				ur.Get("/{id}", userHandler.GetUser)

				ur.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Post("/", userHandler.Register)
					ar.Put("/{id}", userHandler.UpdateUser)
					ar.Delete("/{id}", userHandler.DeleteUser)
				})
			})

			pr.Route("/issues", func(ir chi.Router) {
				// Status catalog. Registered before /{id} so the literal
				// segment wins.
				ir.Get("/statuses", statusHandler.ListStatuses)
				ir.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Post("/statuses", statusHandler.CreateStatus)
					ar.Put("/statuses/{id}", statusHandler.UpdateStatus)
					ar.Delete("/statuses/{id}", statusHandler.DeleteStatus)
				})

				ir.Post("/", issueHandler.CreateIssue)
				ir.Get("/range", issueHandler.ListRange)
				ir.Get("/date/{date}", issueHandler.ListByDate)
				ir.Get("/{id}", issueHandler.GetIssue)
				ir.Put("/{id}/status", issueHandler.ChangeStatus)

				ir.Post("/{id}/comments", commentHandler.AddComment)
				ir.Get("/{id}/comments", commentHandler.ListComments)

				ir.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Delete("/{id}", issueHandler.DeleteIssue)
				})
			})

			pr.Route("/comments", func(cr chi.Router) {
				cr.Post("/{commentId}/reactions", commentHandler.AddReaction)
				cr.Delete("/{commentId}/reactions", commentHandler.RemoveReaction)
			})

			pr.Route("/roster", func(rr chi.Router) {
				rr.Get("/", rosterHandler.ListRange)

				rr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Post("/", rosterHandler.Assign)
					ar.Put("/{id}", rosterHandler.Reassign)
					ar.Delete("/{id}", rosterHandler.Unassign)
				})
			})
		})
	})
}
