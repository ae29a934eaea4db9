package importer

import (
	"context"
	"io"
	"net/http"

	"github.com/frahmantamala/compliance-management/internal/transport"
)

type ServiceAPI interface {
	Import(ctx context.Context, filename string, data []byte) (*ImportResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service        ServiceAPI
	MaxUploadBytes int64
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{
		BaseHandler:    base,
		Service:        service,
		MaxUploadBytes: maxUploadBytes,
	}
}

// Import handles POST /staff/import with a multipart "file" field.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		h.Logger.Error("Import: invalid multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, "no file selected or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Error("Import: missing file field", "error", err)
		h.WriteError(w, http.StatusBadRequest, "no file selected")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Error("Import: failed to read upload", "error", err)
		h.WriteError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := h.Service.Import(r.Context(), header.Filename, data)
	if err != nil {
		h.Logger.Error("Import: service error", "error", err, "filename", header.Filename)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("Import: completed",
		"filename", header.Filename,
		"new", result.NewCount,
		"updated", result.UpdatedCount)

	h.WriteJSON(w, http.StatusOK, result)
}
