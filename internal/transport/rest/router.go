package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/compliance-management/internal/audit"
	"github.com/frahmantamala/compliance-management/internal/auth"
	"github.com/frahmantamala/compliance-management/internal/department"
	"github.com/frahmantamala/compliance-management/internal/importer"
	"github.com/frahmantamala/compliance-management/internal/portal"
	"github.com/frahmantamala/compliance-management/internal/report"
	"github.com/frahmantamala/compliance-management/internal/staff"
	"github.com/frahmantamala/compliance-management/internal/transport/middleware"
	"github.com/frahmantamala/compliance-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Staff      *staff.Handler
	Report     *report.Handler
	Importer   *importer.Handler
	Department *department.Handler
	Audit      *audit.Handler
	Portal     *portal.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbac *auth.RBACAuthorization, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
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
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Self-service portal: unauthenticated by design, this is the front
		// door for staff settling their own undertaking.
		r.Route("/portal", func(sr chi.Router) {
			sr.Post("/lookup", h.Portal.Lookup)
			sr.Post("/upload", h.Portal.Upload)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.Auth.Me)

			pr.Get("/dashboard", h.Report.Dashboard)

			pr.Route("/staff", func(sr chi.Router) {
				sr.Get("/", h.Staff.ListRecords)
				sr.Get("/export", h.Report.ExportCSV)
				sr.Get("/{email}", h.Staff.GetRecord)

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageRecords())
					mr.Post("/", h.Staff.SaveRecord)
					mr.Delete("/{email}", h.Staff.DeleteRecord)
					mr.Patch("/{email}/notification", h.Staff.ToggleNotification)
					mr.Patch("/{email}/undertaking", h.Staff.ToggleUndertaking)
				})

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireImportRecords())
					mr.Post("/import", h.Importer.Import)
				})

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireWipeDatabase())
					mr.Delete("/", h.Staff.WipeAll)
				})
			})

			pr.Route("/departments", func(sr chi.Router) {
				sr.Get("/", h.Department.List)

				sr.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManageDepartments())
					mr.Post("/", h.Department.Create)
					mr.Post("/{name}/members", h.Department.MoveMembers)
					mr.Put("/{name}/metadata", h.Department.UpsertMetadata)
				})
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireViewAuditLogs())
				ar.Get("/audit-logs", h.Audit.List)
			})
		})
	})
}
