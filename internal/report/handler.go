package report

import (
	"context"
	"io"
	"net/http"

	"github.com/frahmantamala/compliance-management/internal/transport"
)

type ServiceAPI interface {
	Dashboard() (*Summary, error)
	ExportCSV(ctx context.Context, w io.Writer) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// Dashboard handles GET /dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Dashboard()
	if err != nil {
		h.Logger.Error("Dashboard: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

// ExportCSV handles GET /staff/export and streams the registry as a CSV
// attachment.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="compliance_report.csv"`)

	count, err := h.Service.ExportCSV(r.Context(), w)
	if err != nil {
		h.Logger.Error("ExportCSV: service error", "error", err)
		// Headers are already out; nothing useful left to write.
		return
	}

	h.Logger.Info("ExportCSV: report downloaded", "records", count)
}
