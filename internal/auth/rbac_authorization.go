package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/compliance-management/internal"
)

// RBACAuthorization guards mutating routes. An authenticated user without the
// required permission is in view-only mode: the guard rejects before any
// handler or repository work happens.
type RBACAuthorization struct {
	checker PermissionChecker
	logger  *slog.Logger
}

func NewRBACAuthorization(checker PermissionChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		checker: checker,
		logger:  logger,
	}
}

func (ra *RBACAuthorization) RequireManageRecords() func(http.Handler) http.Handler {
	return ra.require("manage records", ra.checker.CanManageRecords)
}

func (ra *RBACAuthorization) RequireImportRecords() func(http.Handler) http.Handler {
	return ra.require("import records", ra.checker.CanImportRecords)
}

func (ra *RBACAuthorization) RequireManageDepartments() func(http.Handler) http.Handler {
	return ra.require("manage departments", ra.checker.CanManageDepartments)
}

func (ra *RBACAuthorization) RequireWipeDatabase() func(http.Handler) http.Handler {
	return ra.require("wipe database", ra.checker.CanWipeDatabase)
}

func (ra *RBACAuthorization) RequireViewAuditLogs() func(http.Handler) http.Handler {
	return ra.require("view audit logs", ra.checker.CanViewAuditLogs)
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.require("admin", ra.checker.IsAdmin)
}

func (ra *RBACAuthorization) require(label string, allowed func([]string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.logger.Warn("authorization check failed: no user in context", "required", label)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed(user.Permissions) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required", label,
					"user_permissions", user.Permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
