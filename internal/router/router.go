package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/despachos/equipcheck/internal/auth"
	"github.com/despachos/equipcheck/internal/handler"
	mw "github.com/despachos/equipcheck/internal/middleware"
	"github.com/despachos/equipcheck/internal/models"
)

func New(
	jwtSecret string,
	log zerolog.Logger,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	equipH *handler.EquipmentHandler,
	subH *handler.SubmissionHandler,
	apprH *handler.ApprovalHandler,
	dashH *handler.DashboardHandler,
	exportH *handler.ExportHandler,
	adminH *handler.AdminHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery(log))
	r.Use(mw.Logger(log))
	r.Use(mw.CORS)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authH.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			// Auth
			r.Get("/auth/me", authH.Me)

			// Checklist definitions
			r.Get("/equipment", equipH.List)
			r.Get("/equipment/{name}", equipH.Items)

			// Submissions
			r.Post("/submissions", subH.Create)
			r.Get("/submissions/mine", subH.ListMine)
			r.Get("/submissions/{id}", subH.Get)
			r.Get("/submissions/{id}/pdf", subH.DownloadPDF)
			r.Get("/submissions/{id}/photos/{photoId}", subH.DownloadPhoto)

			// Supervisor-only routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(models.RoleSupervisor))

				r.Get("/submissions", subH.List)
				r.Get("/submissions/pending", subH.ListPending)
				r.Post("/submissions/{id}/approve", apprH.Approve)

				r.Get("/users", userH.List)
				r.Post("/users", userH.Upsert)
				r.Delete("/users/{username}", userH.Delete)

				r.Get("/dashboard", dashH.Dashboard)
				r.Get("/export/weekly", exportH.Weekly)

				r.Get("/admin/db/stats", adminH.Stats)
				r.Post("/admin/db/vacuum", adminH.Vacuum)
			})
		})
	})

	return r
}
